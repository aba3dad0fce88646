// Package qblade declares the bridge boundary to the external QBlade
// simulation tool. The tool invocation itself is installation-specific and
// deliberately not implemented; what is implemented is the file contract
// around it: the prescribed-pitch input the tool consumes and the
// rotor-speed column selection rule its output must satisfy.
package qblade

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/turbine-cosim/turbine-cosim/cosim"
)

// CLIConfig holds the paths a batch-tool run needs. All fields are
// required.
type CLIConfig struct {
	ExePath     string // QBlade executable
	ProjectPath string // project file (.qprj)
	SimName     string // time-domain simulation name inside the project
	OutputCSV   string // where the tool writes its tabular output
}

// CLIBackend is the external-batch-tool variant of the simulation backend.
// It validates its configuration but refuses to run: the QBlade command
// line differs across installations and must be supplied by the
// integrator.
type CLIBackend struct {
	cfg CLIConfig
}

// NewCLIBackend validates the batch-tool configuration. A missing path is a
// configuration error naming the field; it never degrades to a partial
// run.
func NewCLIBackend(cfg CLIConfig) (*CLIBackend, error) {
	switch {
	case cfg.ExePath == "":
		return nil, fmt.Errorf("cli mode requires the qblade executable path")
	case cfg.ProjectPath == "":
		return nil, fmt.Errorf("cli mode requires the qblade project path")
	case cfg.SimName == "":
		return nil, fmt.Errorf("cli mode requires the simulation name")
	case cfg.OutputCSV == "":
		return nil, fmt.Errorf("cli mode requires the tool output csv path")
	}
	return &CLIBackend{cfg: cfg}, nil
}

// Check reports whether the backend can run at all. Callers invoke it
// before the loop starts so unsupported modes abort before any tick.
func (b *CLIBackend) Check() error {
	return fmt.Errorf("qblade batch invocation is installation-specific and not implemented: %w",
		cosim.ErrUnsupportedMode)
}

// Step refuses rather than partially executing.
func (b *CLIBackend) Step(pitchDeg, dt float64) (float64, error) {
	return 0, b.Check()
}

// SILBackend is the in-process-library variant of the simulation backend.
// The QBlade SIL API needs the vendor SDK; the variant exists so mode
// selection is total.
type SILBackend struct{}

// NewSILBackend creates the declared-but-unsupported SIL backend.
func NewSILBackend() *SILBackend {
	return &SILBackend{}
}

// Check always refuses: the SIL API bindings are not part of this build.
func (b *SILBackend) Check() error {
	return fmt.Errorf("qblade sil api requires the vendor sdk and is not implemented: %w",
		cosim.ErrUnsupportedMode)
}

// Step refuses rather than partially executing.
func (b *SILBackend) Step(pitchDeg, dt float64) (float64, error) {
	return 0, b.Check()
}

// WritePrescribedPitch writes the two-row prescribed-pitch input file the
// batch tool consumes: the same pitch held across the whole window.
func WritePrescribedPitch(path string, pitchDeg, duration float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating prescribed-pitch directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating prescribed-pitch file: %w", err)
	}
	defer f.Close()

	pitch := strconv.FormatFloat(pitchDeg, 'f', -1, 64)
	cw := csv.NewWriter(f)
	rows := [][]string{
		{"time[s]", "pitch[deg]"},
		{"0.0", pitch},
		{strconv.FormatFloat(duration, 'f', -1, 64), pitch},
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing prescribed-pitch row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
