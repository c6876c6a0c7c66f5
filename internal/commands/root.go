package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"costguardian/internal/config"
	"costguardian/internal/logging"
)

var (
	verbose bool
	profile string
	region  string
	version string
	commit  string
	date    string
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "costguardian",
	Short: "AWS spend monitor and optimizer",
	Long: `costguardian reports month-to-date AWS spending with a month-end
projection, flags idle infrastructure (stopped EC2 instances, unattached EBS
volumes, RDS instances worth reviewing) with savings estimates, and detects
day-over-day cost anomalies over a trailing 30-day window.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)
		loaded, err := config.Load(".")
		if err != nil {
			slog.Warn("Failed to load config file", "error", err)
			cfg = config.Default()
		} else {
			cfg = loaded
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with injected build info.
func Execute(v, c, d string) error {
	version = v
	commit = c
	date = d
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS profile name")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region")
	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(anomaliesCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}
