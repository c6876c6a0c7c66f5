package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"costguardian/internal/analyzer"
	"costguardian/internal/aws"
	"costguardian/internal/report"
)

var anomaliesFlags struct {
	windowDays int
	format     string
	outputFile string
	timeout    time.Duration
}

var anomaliesCmd = &cobra.Command{
	Use:   "anomalies",
	Short: "Detect day-over-day cost anomalies",
	Long: `Fetches per-service daily costs for the trailing window and flags days
where a service exceeded 1.5x its baseline average.`,
	RunE: runAnomalies,
}

func init() {
	anomaliesCmd.Flags().IntVar(&anomaliesFlags.windowDays, "window-days", aws.DefaultAnomalyWindowDays, "Trailing window to analyze (days)")
	anomaliesCmd.Flags().StringVar(&anomaliesFlags.format, "format", "text", "Output format: text, json")
	anomaliesCmd.Flags().StringVarP(&anomaliesFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	anomaliesCmd.Flags().DurationVar(&anomaliesFlags.timeout, "timeout", defaultCommandTimeout, "Run timeout")
}

func runAnomalies(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), effectiveTimeout(anomaliesFlags.timeout))
	defer cancel()

	client, err := aws.NewClient(ctx, effectiveProfile(), effectiveRegion())
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}
	costs := aws.NewCostClient(client.Config())

	series, err := costs.FetchDailySeries(ctx, anomaliesFlags.windowDays)
	if err != nil {
		return enhanceError("fetch daily cost series", err)
	}

	anomalies, err := analyzer.DetectAnomalies(series)
	if err != nil {
		return enhanceError("detect anomalies", err)
	}
	if anomalies == nil {
		anomalies = []analyzer.CostAnomaly{}
	}

	reporter, err := selectReporter(effectiveFormat(anomaliesFlags.format), anomaliesFlags.outputFile)
	if err != nil {
		return err
	}
	return reporter.Generate(report.Data{
		Tool:      "costguardian",
		Version:   version,
		Timestamp: time.Now().UTC(),
		Anomalies: anomalies,
	})
}
