package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initFlags struct {
	force bool
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate sample config and IAM policy",
	Long:  `Creates a sample .costguardian.yaml config file and an IAM policy JSON file covering the permissions costguardian needs.`,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initFlags.force, "force", false, "Overwrite existing files")
}

func runInit(_ *cobra.Command, _ []string) error {
	configPath := ".costguardian.yaml"
	policyPath := "costguardian-policy.json"

	if err := writeIfNotExists(configPath, sampleConfig, initFlags.force); err != nil {
		return err
	}
	if err := writeIfNotExists(policyPath, sampleIAMPolicy, initFlags.force); err != nil {
		return err
	}

	fmt.Printf("Created %s and %s\n", configPath, policyPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit .costguardian.yaml to customize settings")
	fmt.Println("  2. Apply costguardian-policy.json to your AWS IAM role/user")
	fmt.Println("  3. Run: costguardian overview")
	return nil
}

func writeIfNotExists(path, content string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Skipping %s (already exists, use --force to overwrite)\n", path)
			return nil
		}
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return os.WriteFile(path, []byte(content), 0o644)
}

const sampleConfig = `# costguardian configuration

# AWS profile (or set AWS_PROFILE env var)
# profile: default

# AWS region (or set AWS_REGION env var)
# region: us-east-1

# Output format: text or json
format: text

# Run timeout
timeout: 5m

# Alert when projected spend reaches this percentage of budget
budget_alert_threshold_pct: 80

# Reserved: minimum days a resource must be idle before flagging
idle_threshold_days: 7

# Skip confirmation prompts during cleanup (use with care)
auto_cleanup: false

reporting:
  daily_summary: false
  weekly_summary: true
`

const sampleIAMPolicy = `{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Sid": "CostGuardianReadOnly",
      "Effect": "Allow",
      "Action": [
        "ce:GetCostAndUsage",
        "ce:GetCostForecast",
        "ec2:DescribeInstances",
        "ec2:DescribeVolumes",
        "rds:DescribeDBInstances",
        "sts:GetCallerIdentity"
      ],
      "Resource": "*"
    },
    {
      "Sid": "CostGuardianCleanup",
      "Effect": "Allow",
      "Action": [
        "ec2:TerminateInstances",
        "ec2:DeleteVolume"
      ],
      "Resource": "*"
    }
  ]
}
`
