package cosim

import "fmt"

// Clock tracks simulated time for one run. Time starts at zero and advances
// by exactly StepSize per tick until it reaches EndTime.
type Clock struct {
	Now      float64 // current simulated time (seconds)
	StepSize float64 // seconds of simulated time per tick
	EndTime  float64 // total simulated seconds
}

// NewClock validates the timing parameters and returns a clock at t=0.
func NewClock(stepSize, endTime float64) (Clock, error) {
	if stepSize <= 0 {
		return Clock{}, fmt.Errorf("step size must be > 0, got %v", stepSize)
	}
	if endTime < 0 {
		return Clock{}, fmt.Errorf("end time must be >= 0, got %v", endTime)
	}
	return Clock{StepSize: stepSize, EndTime: endTime}, nil
}

// Advance moves the clock forward by one tick.
func (c *Clock) Advance() {
	c.Now += c.StepSize
}

// Done reports whether the run horizon has been reached.
func (c *Clock) Done() bool {
	return c.Now >= c.EndTime
}
