package cosim

import "github.com/sirupsen/logrus"

// Sink consumes the per-tick result stream and out-of-band controller
// diagnostics. Implementations decide storage and format.
type Sink interface {
	Tick(t, rotorSpeed, pitchDeg float64)
	Diagnostic(line string)
}

// LogSink writes ticks and diagnostics to the process log.
type LogSink struct{}

// Tick logs one step of the loop.
func (LogSink) Tick(t, rotorSpeed, pitchDeg float64) {
	logrus.Infof("time=%.2fs rpm=%.3f pitch_cmd=%.3f", t, rotorSpeed, pitchDeg)
}

// Diagnostic logs one free-text controller line.
func (LogSink) Diagnostic(line string) {
	logrus.Infof("controller: %s", line)
}

// MultiSink fans every record out to each member in order.
type MultiSink []Sink

func (m MultiSink) Tick(t, rotorSpeed, pitchDeg float64) {
	for _, s := range m {
		s.Tick(t, rotorSpeed, pitchDeg)
	}
}

func (m MultiSink) Diagnostic(line string) {
	for _, s := range m {
		s.Diagnostic(line)
	}
}
