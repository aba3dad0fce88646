package cosim

import "errors"

// ErrUnsupportedMode marks a simulation backend that is declared but not
// implemented in this build. Runs selecting such a backend must abort
// before the first tick.
var ErrUnsupportedMode = errors.New("unsupported simulation mode")

// Backend advances the plant (simulated or external) by one time step and
// returns the resulting rotor speed.
type Backend interface {
	Step(pitchDeg, dt float64) (rotorSpeed float64, err error)
}
