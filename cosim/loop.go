package cosim

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// State tracks the orchestrator lifecycle.
type State int

const (
	StateInit State = iota
	StateRunning
	StateFinished
)

// Loop owns simulated time, the plant backend, and the optional controller
// session, and drives the per-tick measurement/command exchange.
//
// Ordering contract: each tick steps the plant with the previous tick's
// pitch command, emits the result, and only then asks the controller for a
// new command. A command returned at tick n therefore takes effect at tick
// n+1, never at tick n. Without a controller the loop is a pure
// pass-through: the pitch command never changes and no local control law is
// substituted.
type Loop struct {
	clock     Clock
	backend   Backend
	transport Exchanger // nil = open loop
	sink      Sink
	pacing    time.Duration
	pitchCmd  float64
	state     State
}

// NewLoop wires a step loop. transport may be nil for an open-loop run; a
// nil sink falls back to the process log.
func NewLoop(cfg LoopConfig, backend Backend, transport Exchanger, sink Sink) (*Loop, error) {
	clock, err := NewClock(cfg.StepSize, cfg.EndTime)
	if err != nil {
		return nil, err
	}
	if backend == nil {
		return nil, fmt.Errorf("step loop requires a backend")
	}
	if sink == nil {
		sink = LogSink{}
	}
	return &Loop{
		clock:     clock,
		backend:   backend,
		transport: transport,
		sink:      sink,
		pacing:    cfg.Pacing,
		pitchCmd:  cfg.InitialPitchDeg,
		state:     StateInit,
	}, nil
}

// Run executes ticks until the clock horizon is reached or ctx is
// cancelled, then releases the controller session. The context is checked
// between ticks only; an in-flight exchange still runs to its own timeout,
// so no tick blocks longer than the configured exchange timeout.
func (l *Loop) Run(ctx context.Context) error {
	l.state = StateRunning
	defer func() {
		l.state = StateFinished
		if l.transport != nil {
			if err := l.transport.Close(); err != nil {
				logrus.Warnf("closing controller session: %v", err)
			}
		}
	}()
	for !l.clock.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		speed, err := l.backend.Step(l.pitchCmd, l.clock.StepSize)
		if err != nil {
			return fmt.Errorf("plant step at t=%.2fs: %w", l.clock.Now, err)
		}
		l.sink.Tick(l.clock.Now, speed, l.pitchCmd)
		if l.transport != nil {
			if pitch, ok := l.transport.Exchange(speed); ok {
				l.pitchCmd = pitch
			}
		}
		l.clock.Advance()
		// Pacing is advisory CPU throttling, not part of the timing
		// contract.
		if l.pacing > 0 {
			time.Sleep(l.pacing)
		}
	}
	logrus.Infof("simulation ended at t=%.2fs", l.clock.Now)
	return nil
}

// PitchCmd returns the pitch command that will drive the next tick.
func (l *Loop) PitchCmd() float64 {
	return l.pitchCmd
}

// State returns the lifecycle state.
func (l *Loop) State() State {
	return l.state
}

// Now returns the current simulated time.
func (l *Loop) Now() float64 {
	return l.clock.Now
}
