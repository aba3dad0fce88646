package cosim

import "math"

// Torque model constants. The turbine is deliberately a crude 1-DOF
// placeholder for exercising the control loop, not an aerodynamic model;
// keep the numbers stable so control-logic tests stay stable.
const (
	aeroTorqueCoeff = 0.0008
	dragTorqueCoeff = 0.002
	inertiaFloor    = 0.1
)

// Turbine is a simple one-degree-of-freedom rotor model mapping blade pitch
// to rotor speed. It is the only Backend implemented in this build.
type Turbine struct {
	params TurbineParams
	speed  float64
}

// NewTurbine creates a turbine with the given parameters, spinning at the
// configured initial speed.
func NewTurbine(params TurbineParams) *Turbine {
	return &Turbine{params: params, speed: params.InitialSpeed}
}

// Step integrates the rotor speed over dt under the given pitch command
// using explicit Euler. Less pitch means more aerodynamic torque. The
// result is floored at zero since negative rotor speed is physically
// invalid. Never errors.
func (t *Turbine) Step(pitchDeg, dt float64) (float64, error) {
	torque := aeroTorqueCoeff*math.Pow(t.params.WindSpeed, 3)*math.Max(0, math.Cos(pitchDeg*math.Pi/180)) -
		dragTorqueCoeff*t.speed
	t.speed += torque / (inertiaFloor + t.params.Inertia) * dt
	if t.speed < 0 {
		t.speed = 0
	}
	return t.speed, nil
}

// Speed returns the current rotor speed.
func (t *Turbine) Speed() float64 {
	return t.speed
}
