package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/turbine-cosim/turbine-cosim/cosim/trace"
)

// summarizeCmd prints aggregate statistics for a recorded run.
var summarizeCmd = &cobra.Command{
	Use:   "summarize <results.csv>",
	Short: "Summarize a results CSV produced by run --results",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			logrus.Fatalf("Failed to open results: %v", err)
		}
		defer f.Close()

		rt, err := trace.ReadCSV(f)
		if err != nil {
			logrus.Fatalf("Failed to read results: %v", err)
		}
		printSummary(trace.Summarize(rt))
	},
}

func printSummary(s *trace.Summary) {
	fmt.Printf("ticks:          %d\n", s.TickCount)
	fmt.Printf("final rpm:      %.3f\n", s.FinalSpeed)
	fmt.Printf("max rpm:        %.3f\n", s.MaxSpeed)
	fmt.Printf("mean rpm:       %.3f\n", s.MeanSpeed)
	fmt.Printf("final pitch:    %.3f deg\n", s.FinalPitchDeg)
	fmt.Printf("pitch updates:  %d\n", s.PitchUpdates)
}
