package cosim

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects which simulation backend drives a run.
type Mode string

const (
	// ModeFake runs the internal turbine model.
	ModeFake Mode = "fake"
	// ModeCLI runs an external batch simulation tool (declared, unsupported).
	ModeCLI Mode = "cli"
	// ModeSIL runs an in-process simulation library (declared, unsupported).
	ModeSIL Mode = "sil"
)

// ParseMode maps a user-supplied mode string to a Mode. Unknown modes are a
// configuration error, never a silent default.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(s)); m {
	case ModeFake, ModeCLI, ModeSIL:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q (want fake, cli, or sil)", s)
}

// LoopConfig groups step-loop timing parameters.
type LoopConfig struct {
	StepSize        float64       // seconds of simulated time per tick (must be > 0)
	EndTime         float64       // total simulated seconds (must be >= 0)
	InitialPitchDeg float64       // pitch command in effect before any controller feedback
	Pacing          time.Duration // advisory wall-clock sleep between ticks (0 = none)
}

// NewLoopConfig creates a LoopConfig with the given fields.
func NewLoopConfig(stepSize, endTime, initialPitchDeg float64, pacing time.Duration) LoopConfig {
	return LoopConfig{
		StepSize:        stepSize,
		EndTime:         endTime,
		InitialPitchDeg: initialPitchDeg,
		Pacing:          pacing,
	}
}

// TurbineParams groups the plant parameters, fixed at construction.
type TurbineParams struct {
	WindSpeed    float64 // steady wind speed (m/s)
	Inertia      float64 // rotor inertia term
	Damping      float64 // damping coefficient (carried for calibration files; the torque model uses a fixed drag constant)
	InitialSpeed float64 // rotor speed at t=0 (rpm)
}

// NewTurbineParams creates a TurbineParams with the given fields.
func NewTurbineParams(windSpeed, inertia, damping, initialSpeed float64) TurbineParams {
	return TurbineParams{
		WindSpeed:    windSpeed,
		Inertia:      inertia,
		Damping:      damping,
		InitialSpeed: initialSpeed,
	}
}

// DefaultTurbineParams returns the stock test turbine.
func DefaultTurbineParams() TurbineParams {
	return TurbineParams{WindSpeed: 8.0, Inertia: 1.0, Damping: 0.02}
}

// SerialConfig groups controller link parameters.
type SerialConfig struct {
	Port    string        // device address, e.g. COM3 or /dev/ttyUSB0
	Baud    int           // line rate (must be > 0)
	Timeout time.Duration // per-exchange response timeout (must be > 0)
}

// NewSerialConfig creates a SerialConfig with the given fields.
func NewSerialConfig(port string, baud int, timeout time.Duration) SerialConfig {
	return SerialConfig{Port: port, Baud: baud, Timeout: timeout}
}

// Validate checks the link parameters before a session is opened.
func (c SerialConfig) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("serial port is required")
	}
	if c.Baud <= 0 {
		return fmt.Errorf("baud rate must be > 0, got %d", c.Baud)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("response timeout must be > 0, got %v", c.Timeout)
	}
	return nil
}
