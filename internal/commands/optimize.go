package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"costguardian/internal/analyzer"
	"costguardian/internal/aws"
	"costguardian/internal/report"
)

var optimizeFlags struct {
	format     string
	outputFile string
	timeout    time.Duration
}

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Find idle resources and estimate savings",
	Long: `Scans for stopped EC2 instances, unattached EBS volumes, and RDS
instances worth reviewing, and estimates potential monthly savings per
category. A failed inventory fetch leaves that category empty and is
reported as a warning.`,
	RunE: runOptimize,
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeFlags.format, "format", "text", "Output format: text, json")
	optimizeCmd.Flags().StringVarP(&optimizeFlags.outputFile, "output", "o", "", "Output file path (default: stdout)")
	optimizeCmd.Flags().DurationVar(&optimizeFlags.timeout, "timeout", defaultCommandTimeout, "Run timeout")
}

func runOptimize(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), effectiveTimeout(optimizeFlags.timeout))
	defer cancel()

	client, err := aws.NewClient(ctx, effectiveProfile(), effectiveRegion())
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}

	snap, fetchErrs := aws.NewInventory(client.Config()).FetchSnapshot(ctx)

	idle, err := analyzer.DetectIdleResources(snap)
	if err != nil {
		return enhanceError("detect idle resources", err)
	}

	reporter, err := selectReporter(effectiveFormat(optimizeFlags.format), optimizeFlags.outputFile)
	if err != nil {
		return err
	}
	return reporter.Generate(report.Data{
		Tool:      "costguardian",
		Version:   version,
		Timestamp: time.Now().UTC(),
		Idle:      idle,
		Errors:    fetchErrs,
	})
}
