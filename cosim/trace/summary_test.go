package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_NilAndEmpty(t *testing.T) {
	assert.Equal(t, &Summary{}, Summarize(nil))
	assert.Equal(t, &Summary{}, Summarize(NewRunTrace()))
}

func TestSummarize_Aggregates(t *testing.T) {
	rt := NewRunTrace()
	rt.Tick(0.0, 10.0, 0.0)
	rt.Tick(0.1, 30.0, 0.0)
	rt.Tick(0.2, 20.0, 4.0) // pitch update 1
	rt.Tick(0.3, 25.0, 4.0)
	rt.Tick(0.4, 22.0, 2.0) // pitch update 2
	rt.Diagnostic("hello")

	s := Summarize(rt)
	assert.Equal(t, 5, s.TickCount)
	assert.Equal(t, 1, s.DiagnosticCount)
	assert.Equal(t, 22.0, s.FinalSpeed)
	assert.Equal(t, 30.0, s.MaxSpeed)
	assert.InDelta(t, (10.0+30.0+20.0+25.0+22.0)/5.0, s.MeanSpeed, 1e-12)
	assert.Equal(t, 2.0, s.FinalPitchDeg)
	assert.Equal(t, 2, s.PitchUpdates)
}
