package qblade

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// LatestRotorSpeed reads the batch tool's tabular output and returns the
// last value of the rotor-speed series. Column selection: the first column
// whose name mentions "rpm", or both "rotor" and "speed" (case
// insensitive); otherwise the first column whose values are numeric. This
// is the contract the tool's output must satisfy, nothing more.
func LatestRotorSpeed(r io.Reader) (float64, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return 0, fmt.Errorf("reading tool output: %w", err)
	}
	if len(rows) < 2 {
		return 0, fmt.Errorf("tool output has no data rows")
	}
	header, data := rows[0], rows[1:]

	col := -1
	for i, name := range header {
		lower := strings.ToLower(name)
		if strings.Contains(lower, "rpm") ||
			(strings.Contains(lower, "rotor") && strings.Contains(lower, "speed")) {
			col = i
			break
		}
	}
	if col < 0 {
		// No speed-named column; fall back to the first numeric one.
		for i := range header {
			if i >= len(data[0]) {
				break
			}
			if _, err := strconv.ParseFloat(strings.TrimSpace(data[0][i]), 64); err == nil {
				col = i
				break
			}
		}
	}
	if col < 0 {
		return 0, fmt.Errorf("no numeric columns in tool output")
	}

	last := data[len(data)-1]
	if col >= len(last) {
		return 0, fmt.Errorf("tool output last row has no column %d", col)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(last[col]), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing rotor speed %q: %w", last[col], err)
	}
	return v, nil
}

// LatestRotorSpeedFile is LatestRotorSpeed over a file on disk.
func LatestRotorSpeedFile(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening tool output: %w", err)
	}
	defer f.Close()
	return LatestRotorSpeed(f)
}
