package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/edflow-sim/edflow-sim/sim"
)

var (
	// CLI flags; each overrides the corresponding config-file field when set.
	configPath     string  // Path to a yaml run configuration
	seed           int64   // Master seed for all random processes
	horizonMinutes float64 // Simulated run length in minutes
	warmupMinutes  float64 // Window excluded from aggregate metrics
	arrivalRate    float64 // Patient arrivals per hour
	logLevel       string  // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "edflow-sim",
	Short: "Discrete-event simulator for Emergency Department patient flow",
}

// runCmd executes one simulation run using parameters from the optional
// config file and CLI flags.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ED patient-flow simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := LoadRunConfiguration(configPath)
		if err != nil {
			logrus.Fatalf("unable to read run configuration; %v", err)
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if cmd.Flags().Changed("horizon-minutes") {
			cfg.HorizonMinutes = horizonMinutes
		}
		if cmd.Flags().Changed("warmup-minutes") {
			cfg.WarmupMinutes = warmupMinutes
		}
		if cmd.Flags().Changed("arrival-rate") {
			cfg.ArrivalRatePerHour = arrivalRate
		}

		logrus.Infof("Starting run: %.0f min horizon, %.1f arrivals/hr, seed=%d",
			cfg.HorizonMinutes, cfg.ArrivalRatePerHour, cfg.Seed)

		s, err := sim.NewSimulator(cfg, nil)
		if err != nil {
			logrus.Fatalf("run rejected: %v", err)
		}
		s.Run(context.Background())
		s.Metrics.Print()

		logrus.Info("Simulation complete.")
	},
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Path to yaml run configuration (defaults apply when empty)")
	runCmd.Flags().Int64Var(&seed, "seed", 88, "Master seed for all random processes")
	runCmd.Flags().Float64Var(&horizonMinutes, "horizon-minutes", 21*24*60, "Simulated run length in minutes")
	runCmd.Flags().Float64Var(&warmupMinutes, "warmup-minutes", 2*24*60, "Warm-up window excluded from metrics")
	runCmd.Flags().Float64Var(&arrivalRate, "arrival-rate", 10, "Patient arrivals per hour")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
