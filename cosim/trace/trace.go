// Package trace records co-simulation runs for later analysis. It has no
// dependency on cosim — it stores pure data and satisfies the result-sink
// contract structurally.
package trace

// TickRecord captures one step of the loop.
type TickRecord struct {
	Time       float64 // simulated time (seconds)
	RotorSpeed float64 // measurement produced by the plant this tick
	PitchDeg   float64 // pitch command that drove this tick
}

// RunTrace collects tick records and controller diagnostics during a run.
type RunTrace struct {
	Ticks       []TickRecord
	Diagnostics []string
}

// NewRunTrace creates a RunTrace ready for recording.
func NewRunTrace() *RunTrace {
	return &RunTrace{
		Ticks:       make([]TickRecord, 0),
		Diagnostics: make([]string, 0),
	}
}

// Tick appends one step record.
func (rt *RunTrace) Tick(t, rotorSpeed, pitchDeg float64) {
	rt.Ticks = append(rt.Ticks, TickRecord{Time: t, RotorSpeed: rotorSpeed, PitchDeg: pitchDeg})
}

// Diagnostic appends one out-of-band controller line.
func (rt *RunTrace) Diagnostic(line string) {
	rt.Diagnostics = append(rt.Diagnostics, line)
}
