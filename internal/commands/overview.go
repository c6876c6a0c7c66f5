package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"costguardian/internal/analyzer"
	"costguardian/internal/aws"
	"costguardian/internal/report"
)

var overviewFlags struct {
	format     string
	outputFile string
	timeout    time.Duration
}

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show current month spending and projection",
	Long: `Fetches month-to-date cost grouped by service plus a forecast for the
remainder of the month, and prints totals with a per-service breakdown.`,
	RunE: runOverview,
}

func init() {
	overviewCmd.Flags().StringVar(&overviewFlags.format, "format", "text", "Output format: text, json")
	overviewCmd.Flags().StringVarP(&overviewFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	overviewCmd.Flags().DurationVar(&overviewFlags.timeout, "timeout", defaultCommandTimeout, "Run timeout")
}

func runOverview(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), effectiveTimeout(overviewFlags.timeout))
	defer cancel()

	client, err := aws.NewClient(ctx, effectiveProfile(), effectiveRegion())
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}
	costs := aws.NewCostClient(client.Config())

	items, err := costs.FetchMonthToDate(ctx)
	if err != nil {
		return enhanceError("fetch month-to-date cost", err)
	}

	// A failed forecast must not hide the month-to-date numbers; it simply
	// degrades to zero additional spend.
	var fetchErrs []string
	forecast, err := costs.FetchForecast(ctx)
	if err != nil {
		slog.Warn("Forecast unavailable", "error", err)
		fetchErrs = append(fetchErrs, fmt.Sprintf("forecast: %v", err))
		forecast = decimal.Zero
	}

	overview := analyzer.ComputeCostOverview(items, forecast)

	reporter, err := selectReporter(effectiveFormat(overviewFlags.format), overviewFlags.outputFile)
	if err != nil {
		return err
	}
	return reporter.Generate(report.Data{
		Tool:      "costguardian",
		Version:   version,
		Timestamp: time.Now().UTC(),
		Overview:  &overview,
		Errors:    fetchErrs,
	})
}
