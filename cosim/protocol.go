package cosim

import (
	"fmt"
	"strconv"
	"strings"
)

// Wire protocol line prefixes. Requests carry one rotor-speed measurement
// toward the controller; responses carry one pitch command back.
const (
	requestPrefix  = "RPM:"
	responsePrefix = "PITCH:"
)

// EncodeRequest renders one rotor-speed measurement as a request line:
// "RPM:" plus the value to exactly three decimal places, newline
// terminated, ASCII.
func EncodeRequest(rotorSpeed float64) []byte {
	return []byte(fmt.Sprintf("%s%.3f\n", requestPrefix, rotorSpeed))
}

// DecodeKind classifies one received line.
type DecodeKind int

const (
	// KindIgnored lines carry nothing: blanks, or responses whose value
	// failed to parse. Text is empty for blanks.
	KindIgnored DecodeKind = iota
	// KindCommand lines carry a pitch command.
	KindCommand
	// KindDiagnostic lines are free-text controller output, surfaced to the
	// result sink rather than parsed.
	KindDiagnostic
)

// Decoded is the three-way result of decoding one response line.
type Decoded struct {
	Kind     DecodeKind
	PitchDeg float64 // set when Kind == KindCommand
	Text     string  // raw line for diagnostics and unparseable responses
}

// DecodeResponse classifies one received line (newline already stripped).
// The PITCH: prefix is matched case-insensitively; the remainder after the
// first colon is parsed as a float. A response whose value does not parse
// is ignored, never an error that aborts the session. Pure function.
func DecodeResponse(line string) Decoded {
	line = strings.TrimSpace(line)
	if line == "" {
		return Decoded{Kind: KindIgnored}
	}
	if !strings.HasPrefix(strings.ToUpper(line), responsePrefix) {
		return Decoded{Kind: KindDiagnostic, Text: line}
	}
	rest := line[strings.Index(line, ":")+1:]
	pitch, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
	if err != nil {
		return Decoded{Kind: KindIgnored, Text: line}
	}
	return Decoded{Kind: KindCommand, PitchDeg: pitch}
}
