package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"costguardian/internal/report"
)

// defaultCommandTimeout bounds a single fetch-and-report run.
const defaultCommandTimeout = 5 * time.Minute

// enhanceError wraps an error with context and suggestions for common AWS issues.
func enhanceError(action string, err error) error {
	msg := err.Error()

	var hint string
	switch {
	case strings.Contains(msg, "NoCredentialProviders"):
		hint = "Configure AWS credentials: set AWS_PROFILE, AWS_ACCESS_KEY_ID/AWS_SECRET_ACCESS_KEY, or run 'aws configure'"
	case strings.Contains(msg, "ExpiredToken"):
		hint = "AWS session token expired. Refresh credentials or run 'aws sso login'"
	case strings.Contains(msg, "AccessDenied") || strings.Contains(msg, "UnauthorizedAccess"):
		hint = "Insufficient permissions. Apply the IAM policy from 'costguardian init' to your role/user"
	case strings.Contains(msg, "DataUnavailableException"):
		hint = "Cost Explorer has no data yet. Enable it at https://console.aws.amazon.com/cost-management/home"
	case strings.Contains(msg, "Throttling"):
		hint = "AWS API rate limit hit. Retry in a moment or increase the timeout"
	}

	if hint != "" {
		return fmt.Errorf("%s: %w\n  hint: %s", action, err, hint)
	}
	return fmt.Errorf("%s: %w", action, err)
}

// effectiveProfile resolves the AWS profile from the flag or config file.
func effectiveProfile() string {
	if profile != "" {
		return profile
	}
	return cfg.Profile
}

// effectiveRegion resolves the AWS region from the flag or config file.
func effectiveRegion() string {
	if region != "" {
		return region
	}
	return cfg.Region
}

// effectiveTimeout resolves the run timeout from the flag or config file.
func effectiveTimeout(flagValue time.Duration) time.Duration {
	if flagValue != defaultCommandTimeout {
		return flagValue
	}
	if d := cfg.TimeoutDuration(); d > 0 {
		return d
	}
	return flagValue
}

// effectiveFormat resolves the output format from the flag or config file.
func effectiveFormat(flagValue string) string {
	if flagValue != "text" {
		return flagValue
	}
	if cfg.Format != "" {
		return cfg.Format
	}
	return flagValue
}

func selectReporter(format, outputFile string) (report.Reporter, error) {
	w := os.Stdout
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return nil, fmt.Errorf("create output file: %w", err)
		}
		w = f
	}

	switch format {
	case "json":
		return &report.JSONReporter{Writer: w}, nil
	case "text":
		return &report.TextReporter{Writer: w}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (use text or json)", format)
	}
}
