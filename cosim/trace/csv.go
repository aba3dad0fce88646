package trace

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// CSV column headers for run result files.
var resultColumns = []string{"time_s", "rotor_speed_rpm", "pitch_deg"}

// WriteCSV writes the tick records as CSV. Times keep two decimals to match
// the tick log; speeds and pitch keep three.
func (rt *RunTrace) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(resultColumns); err != nil {
		return fmt.Errorf("writing result header: %w", err)
	}
	for _, tick := range rt.Ticks {
		row := []string{
			strconv.FormatFloat(tick.Time, 'f', 2, 64),
			strconv.FormatFloat(tick.RotorSpeed, 'f', 3, 64),
			strconv.FormatFloat(tick.PitchDeg, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing result row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV loads tick records written by WriteCSV.
func ReadCSV(r io.Reader) (*RunTrace, error) {
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading result csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty result csv")
	}
	rt := NewRunTrace()
	for i, row := range rows[1:] {
		if len(row) < 3 {
			return nil, fmt.Errorf("result row %d: want 3 columns, got %d", i+1, len(row))
		}
		t, errT := strconv.ParseFloat(row[0], 64)
		speed, errS := strconv.ParseFloat(row[1], 64)
		pitch, errP := strconv.ParseFloat(row[2], 64)
		if errT != nil || errS != nil || errP != nil {
			return nil, fmt.Errorf("result row %d: non-numeric value", i+1)
		}
		rt.Tick(t, speed, pitch)
	}
	return rt, nil
}
