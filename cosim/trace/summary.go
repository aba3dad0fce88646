package trace

// Summary aggregates statistics from a RunTrace.
type Summary struct {
	TickCount       int
	DiagnosticCount int
	FinalSpeed      float64
	MaxSpeed        float64
	MeanSpeed       float64
	FinalPitchDeg   float64
	PitchUpdates    int // ticks whose pitch command differs from the previous tick's
}

// Summarize computes aggregate statistics from a RunTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(rt *RunTrace) *Summary {
	summary := &Summary{}
	if rt == nil {
		return summary
	}

	summary.TickCount = len(rt.Ticks)
	summary.DiagnosticCount = len(rt.Diagnostics)
	if len(rt.Ticks) == 0 {
		return summary
	}

	total := 0.0
	for i, tick := range rt.Ticks {
		total += tick.RotorSpeed
		if tick.RotorSpeed > summary.MaxSpeed {
			summary.MaxSpeed = tick.RotorSpeed
		}
		if i > 0 && tick.PitchDeg != rt.Ticks[i-1].PitchDeg {
			summary.PitchUpdates++
		}
	}

	last := rt.Ticks[len(rt.Ticks)-1]
	summary.FinalSpeed = last.RotorSpeed
	summary.FinalPitchDeg = last.PitchDeg
	summary.MeanSpeed = total / float64(len(rt.Ticks))

	return summary
}
