package cosim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.bug.st/serial"
)

// Exchanger is the request/response channel to a pitch controller. A nil
// Exchanger at the loop means no controller is attached and the run is
// open-loop.
type Exchanger interface {
	// Exchange sends one rotor-speed measurement and waits up to the
	// session timeout for a pitch command. ok is false when no command
	// arrived (timeout or link failure); both are recoverable and the loop
	// keeps its previous command.
	Exchange(rotorSpeed float64) (pitchDeg float64, ok bool)
	Close() error
}

// settleDelay gives controller boards that auto-reset on connection
// establishment time to boot before the first request.
const settleDelay = 2 * time.Second

// readSlice bounds a single port read so the exchange deadline is checked
// at least this often.
const readSlice = 100 * time.Millisecond

// errRespTimeout reports that the exchange deadline passed with no command
// decoded.
var errRespTimeout = errors.New("response timeout")

// wire is the slice of serial.Port the session needs; tests substitute an
// in-memory implementation.
type wire interface {
	io.ReadWriteCloser
	SetReadTimeout(time.Duration) error
}

// Session owns one open controller link for the lifetime of a run. It is
// created once before the loop starts and never re-opened mid-run; the
// step loop is its only user.
type Session struct {
	port    wire
	timeout time.Duration
	sink    Sink
	pending []byte // bytes read past the last newline
}

// OpenSession connects to the controller device. Open failure is fatal for
// the whole run; callers must not start the loop without a session when
// one was requested.
func OpenSession(cfg SerialConfig, sink Sink) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("controller link config: %w", err)
	}
	port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.Baud})
	if err != nil {
		return nil, fmt.Errorf("opening controller serial port %s: %w", cfg.Port, err)
	}
	s := newSession(port, cfg.Timeout, sink)
	time.Sleep(settleDelay) // board may reset on connect
	logrus.Infof("connected to controller on %s", cfg.Port)
	return s, nil
}

func newSession(port wire, timeout time.Duration, sink Sink) *Session {
	// Slice reads rather than blocking indefinitely; Exchange re-checks its
	// own deadline between slices.
	_ = port.SetReadTimeout(readSlice)
	return &Session{port: port, timeout: timeout, sink: sink}
}

// Exchange implements one protocol round trip: write the request line, then
// read lines until a PITCH: response decodes or the timeout elapses.
// Diagnostic lines are forwarded to the sink, unparseable responses are
// logged and skipped, blank lines are skipped silently.
func (s *Session) Exchange(rotorSpeed float64) (float64, bool) {
	if _, err := s.port.Write(EncodeRequest(rotorSpeed)); err != nil {
		logrus.Warnf("controller write failed: %v", err)
		return 0, false
	}
	deadline := time.Now().Add(s.timeout)
	for {
		line, err := s.readLine(deadline)
		if err != nil {
			if errors.Is(err, errRespTimeout) {
				logrus.Warn("controller response timeout")
			} else {
				logrus.Warnf("controller read failed: %v", err)
			}
			return 0, false
		}
		switch d := DecodeResponse(line); d.Kind {
		case KindCommand:
			return d.PitchDeg, true
		case KindDiagnostic:
			s.sink.Diagnostic(d.Text)
		case KindIgnored:
			if d.Text != "" {
				logrus.Warnf("unparseable controller response: %q", d.Text)
			}
		}
	}
}

// readLine returns the next newline-terminated line, buffering partial
// reads across calls, until the deadline passes.
func (s *Session) readLine(deadline time.Time) (string, error) {
	for {
		if i := bytes.IndexByte(s.pending, '\n'); i >= 0 {
			line := string(s.pending[:i])
			s.pending = s.pending[i+1:]
			return line, nil
		}
		if !time.Now().Before(deadline) {
			return "", errRespTimeout
		}
		chunk := make([]byte, 256)
		n, err := s.port.Read(chunk)
		if n > 0 {
			s.pending = append(s.pending, chunk[:n]...)
		}
		if err != nil {
			return "", err
		}
	}
}

// Close releases the serial port.
func (s *Session) Close() error {
	return s.port.Close()
}
