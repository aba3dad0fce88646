package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/turbine-cosim/turbine-cosim/cosim"
	"github.com/turbine-cosim/turbine-cosim/cosim/qblade"
	"github.com/turbine-cosim/turbine-cosim/cosim/trace"
)

var (
	// CLI flags for the co-simulation run
	mode        string        // fake, cli, or sil
	port        string        // controller serial device (empty = open loop)
	baud        int           // serial line rate
	stepSize    float64       // seconds of simulated time per tick
	tEnd        float64       // total simulated seconds
	respTimeout time.Duration // controller response timeout per exchange
	pacing      time.Duration // advisory wall-clock sleep between ticks
	logLevel    string        // log verbosity level
	windSpeed   float64       // steady wind speed for the fake turbine
	resultsPath string        // optional CSV output for tick records

	// turbine calibration file flags
	turbineConfigPath string
	turbineProfile    string

	// QBlade bridge flags (cli mode)
	qbladeExe     string
	qbladeProject string
	qbladeSim     string
	qbladeOutput  string
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "turbine-cosim",
	Short: "Real-time rotor/pitch co-simulation loop",
}

// runCmd executes one co-simulation run using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the co-simulation loop",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		// .env / environment fallback for the controller link
		_ = godotenv.Load()
		if port == "" {
			port = os.Getenv("COSIM_PORT")
		}

		m, err := cosim.ParseMode(mode)
		if err != nil {
			logrus.Fatalf("Invalid mode: %v", err)
		}

		backend, err := buildBackend(m)
		if err != nil {
			logrus.Fatalf("Backend unavailable: %v", err)
		}

		sink := cosim.MultiSink{cosim.LogSink{}}
		var rec *trace.RunTrace
		if resultsPath != "" {
			rec = trace.NewRunTrace()
			sink = append(sink, rec)
		}

		// Open the controller session once, before the loop. Failure here
		// is fatal; there is no mid-run reconnection.
		var transport cosim.Exchanger
		if port != "" {
			logrus.Infof("attempting to open controller serial port %s", port)
			session, err := cosim.OpenSession(cosim.SerialConfig{Port: port, Baud: baud, Timeout: respTimeout}, sink)
			if err != nil {
				logrus.Fatalf("Controller unavailable: %v", err)
			}
			transport = session
		}

		loop, err := cosim.NewLoop(cosim.LoopConfig{
			StepSize: stepSize,
			EndTime:  tEnd,
			Pacing:   pacing,
		}, backend, transport, sink)
		if err != nil {
			logrus.Fatalf("Invalid run configuration: %v", err)
		}

		logrus.Infof("Starting run: mode=%s step=%.3fs t_end=%.1fs controller=%t",
			m, stepSize, tEnd, transport != nil)
		if err := loop.Run(context.Background()); err != nil {
			logrus.Fatalf("Run aborted: %v", err)
		}

		if rec != nil {
			if err := writeResults(rec, resultsPath); err != nil {
				logrus.Fatalf("Writing results: %v", err)
			}
			logrus.Infof("Results written to %s", resultsPath)
		}
		logrus.Info("Co-simulation complete.")
	},
}

// buildBackend selects the simulation backend for the requested mode.
// Unsupported variants refuse here, before the loop starts.
func buildBackend(m cosim.Mode) (cosim.Backend, error) {
	switch m {
	case cosim.ModeFake:
		params, err := turbineParams()
		if err != nil {
			return nil, err
		}
		return cosim.NewTurbine(params), nil
	case cosim.ModeCLI:
		backend, err := qblade.NewCLIBackend(qblade.CLIConfig{
			ExePath:     qbladeExe,
			ProjectPath: qbladeProject,
			SimName:     qbladeSim,
			OutputCSV:   qbladeOutput,
		})
		if err != nil {
			return nil, err
		}
		return backend, backend.Check()
	case cosim.ModeSIL:
		backend := qblade.NewSILBackend()
		return backend, backend.Check()
	}
	return nil, fmt.Errorf("unknown mode %q", m)
}

// turbineParams resolves plant parameters: the calibration file when given,
// otherwise the stock turbine with the wind-speed flag applied.
func turbineParams() (cosim.TurbineParams, error) {
	if turbineConfigPath != "" {
		return LoadTurbineParams(turbineConfigPath, turbineProfile)
	}
	params := cosim.DefaultTurbineParams()
	params.WindSpeed = windSpeed
	return params, nil
}

func writeResults(rt *trace.RunTrace, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return rt.WriteCSV(f)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&mode, "mode", "fake", "Simulation backend: fake, cli, or sil")
	runCmd.Flags().StringVar(&port, "port", "", "Controller serial port, e.g. COM3 or /dev/ttyUSB0 (COSIM_PORT env fallback; empty = open loop)")
	runCmd.Flags().IntVar(&baud, "baud", 115200, "Controller serial baud rate")
	runCmd.Flags().Float64Var(&stepSize, "step-size", 0.1, "Seconds of simulated time per tick")
	runCmd.Flags().Float64Var(&tEnd, "t-end", 60.0, "Total simulated seconds")
	runCmd.Flags().DurationVar(&respTimeout, "timeout", time.Second, "Controller response timeout per exchange")
	runCmd.Flags().DurationVar(&pacing, "pacing", 10*time.Millisecond, "Wall-clock sleep between ticks (0 = none)")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().Float64Var(&windSpeed, "wind-speed", 8.0, "Steady wind speed for the fake turbine (m/s)")
	runCmd.Flags().StringVar(&resultsPath, "results", "", "Write tick records to this CSV file")

	// turbine calibration file
	runCmd.Flags().StringVar(&turbineConfigPath, "turbine-config", "", "YAML turbine calibration file")
	runCmd.Flags().StringVar(&turbineProfile, "turbine", "default", "Profile name inside the calibration file")

	// QBlade bridge configs (cli mode)
	runCmd.Flags().StringVar(&qbladeExe, "qblade-exe", "", "QBlade executable (cli mode)")
	runCmd.Flags().StringVar(&qbladeProject, "qblade-project", "", "QBlade project file (cli mode)")
	runCmd.Flags().StringVar(&qbladeSim, "qblade-sim", "", "Simulation name inside the project (cli mode)")
	runCmd.Flags().StringVar(&qbladeOutput, "qblade-output", "", "Output CSV the tool writes (cli mode)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(summarizeCmd)
}
