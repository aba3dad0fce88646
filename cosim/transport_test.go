package cosim

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeWire is an in-memory stand-in for a serial port. Each Read drains one
// scripted chunk; once the script is exhausted reads return (0, readErr),
// which with a nil readErr behaves like a sliced read timeout with no data.
type fakeWire struct {
	reads    [][]byte     // scripted controller output, one chunk per Read
	out      bytes.Buffer // bytes written toward the controller
	readErr  error
	writeErr error
	closed   bool
}

func (f *fakeWire) feed(chunks ...string) {
	for _, c := range chunks {
		f.reads = append(f.reads, []byte(c))
	}
}

func (f *fakeWire) Read(p []byte) (int, error) {
	if len(f.reads) == 0 {
		return 0, f.readErr
	}
	chunk := f.reads[0]
	n := copy(p, chunk)
	if n < len(chunk) {
		f.reads[0] = chunk[n:]
	} else {
		f.reads = f.reads[1:]
	}
	return n, nil
}

func (f *fakeWire) Write(p []byte) (int, error) {
	if f.writeErr != nil {
		return 0, f.writeErr
	}
	return f.out.Write(p)
}

func (f *fakeWire) Close() error {
	f.closed = true
	return nil
}

func (f *fakeWire) SetReadTimeout(time.Duration) error { return nil }

// captureSink records everything it is handed.
type captureSink struct {
	ticks []tickSample
	diags []string
}

type tickSample struct {
	time, rotorSpeed, pitchDeg float64
}

func (c *captureSink) Tick(t, rotorSpeed, pitchDeg float64) {
	c.ticks = append(c.ticks, tickSample{t, rotorSpeed, pitchDeg})
}

func (c *captureSink) Diagnostic(line string) {
	c.diags = append(c.diags, line)
}

func TestSession_Exchange_Success(t *testing.T) {
	// GIVEN a controller that replies with a valid pitch line
	w := &fakeWire{}
	w.feed("PITCH:4.25\n")
	sink := &captureSink{}
	s := newSession(w, 50*time.Millisecond, sink)

	// WHEN exchanging one measurement
	pitch, ok := s.Exchange(142.3712)

	// THEN the request went out on the wire and the command came back
	assert.True(t, ok)
	assert.Equal(t, 4.25, pitch)
	assert.Equal(t, "RPM:142.371\n", w.out.String())
	assert.Empty(t, sink.diags)
}

func TestSession_Exchange_SkipsNoiseUntilCommand(t *testing.T) {
	// GIVEN a chatty controller: a debug line, a blank, a garbled response,
	// then the real command
	w := &fakeWire{}
	w.feed("DEBUG boot complete\n\nPITCH:not-a-number\nPITCH:2.50\n")
	sink := &captureSink{}
	s := newSession(w, 50*time.Millisecond, sink)

	// WHEN exchanging
	pitch, ok := s.Exchange(10)

	// THEN the command is found, the debug line is surfaced as a
	// diagnostic, and the blank and garbled lines are skipped
	assert.True(t, ok)
	assert.Equal(t, 2.5, pitch)
	assert.Equal(t, []string{"DEBUG boot complete"}, sink.diags)
}

func TestSession_Exchange_TimeoutReturnsAbsent(t *testing.T) {
	// GIVEN a silent controller
	w := &fakeWire{}
	s := newSession(w, 20*time.Millisecond, &captureSink{})

	// WHEN exchanging
	start := time.Now()
	_, ok := s.Exchange(10)

	// THEN the exchange reports absence after roughly the timeout
	assert.False(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	// the request itself still went out
	assert.Equal(t, "RPM:10.000\n", w.out.String())
}

func TestSession_Exchange_DiagnosticsOnlyTimesOut(t *testing.T) {
	// Diagnostic chatter without a command still times out as absent.
	w := &fakeWire{}
	w.feed("warming up\nstill warming up\n")
	sink := &captureSink{}
	s := newSession(w, 20*time.Millisecond, sink)

	_, ok := s.Exchange(10)
	assert.False(t, ok)
	assert.Equal(t, []string{"warming up", "still warming up"}, sink.diags)
}

func TestSession_Exchange_WriteFailureIsAbsent(t *testing.T) {
	w := &fakeWire{writeErr: errors.New("device gone")}
	s := newSession(w, 20*time.Millisecond, &captureSink{})

	_, ok := s.Exchange(10)
	assert.False(t, ok)
}

func TestSession_Exchange_ReadFailureIsAbsent(t *testing.T) {
	w := &fakeWire{readErr: errors.New("device gone")}
	s := newSession(w, time.Second, &captureSink{})

	start := time.Now()
	_, ok := s.Exchange(10)
	assert.False(t, ok)
	// fails on the read error, not by burning the whole timeout
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestSession_Exchange_PartialLineReassembled(t *testing.T) {
	// A line split across reads is reassembled before decoding.
	w := &fakeWire{}
	w.feed("PITCH:", "3.7", "5\n")
	s := newSession(w, 50*time.Millisecond, &captureSink{})

	pitch, ok := s.Exchange(10)
	assert.True(t, ok)
	assert.Equal(t, 3.75, pitch)
}

func TestSession_Exchange_LeftoverBytesCarryOver(t *testing.T) {
	// Bytes past the first newline belong to the next exchange.
	w := &fakeWire{}
	w.feed("PITCH:1.00\nPITCH:2.00\n")
	s := newSession(w, 50*time.Millisecond, &captureSink{})

	pitch, ok := s.Exchange(10)
	assert.True(t, ok)
	assert.Equal(t, 1.0, pitch)

	pitch, ok = s.Exchange(11)
	assert.True(t, ok)
	assert.Equal(t, 2.0, pitch)
}

func TestSession_Close(t *testing.T) {
	w := &fakeWire{}
	s := newSession(w, time.Second, &captureSink{})
	assert.NoError(t, s.Close())
	assert.True(t, w.closed)
}
