package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"costguardian/internal/analyzer"
	"costguardian/internal/aws"
)

var cleanupFlags struct {
	dryRun  bool
	timeout time.Duration
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Terminate stopped instances and delete unattached volumes",
	Long: `Lists idle-resource candidates and, outside dry-run mode, asks for
confirmation before terminating stopped instances and deleting unattached
volumes. Database instances are never touched; they are review-only.

Setting auto_cleanup: true in .costguardian.yaml skips the confirmation
prompts.`,
	RunE: runCleanup,
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupFlags.dryRun, "dry-run", true, "List candidates without making changes")
	cleanupCmd.Flags().DurationVar(&cleanupFlags.timeout, "timeout", defaultCommandTimeout, "Run timeout")
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), effectiveTimeout(cleanupFlags.timeout))
	defer cancel()

	client, err := aws.NewClient(ctx, effectiveProfile(), effectiveRegion())
	if err != nil {
		return enhanceError("initialize AWS client", err)
	}

	snap, fetchErrs := aws.NewInventory(client.Config()).FetchSnapshot(ctx)
	for _, e := range fetchErrs {
		fmt.Printf("warning: %s\n", e)
	}

	idle, err := analyzer.DetectIdleResources(snap)
	if err != nil {
		return enhanceError("detect idle resources", err)
	}

	if len(idle.Candidates()) == 0 {
		fmt.Println("No idle resources found for cleanup.")
		return nil
	}

	if cleanupFlags.dryRun {
		fmt.Println("DRY RUN - no resources will be modified")
	}
	printCandidates(idle)

	if cleanupFlags.dryRun {
		fmt.Println("\nRe-run with --dry-run=false to act on these candidates.")
		return nil
	}

	stdin := bufio.NewReader(os.Stdin)
	executor := aws.NewExecutor(client.Config())

	if len(idle.Instances) > 0 {
		prompt := fmt.Sprintf("Terminate %d stopped instance(s)?", len(idle.Instances))
		if cfg.AutoCleanup || confirm(stdin, prompt) {
			ids := make([]string, 0, len(idle.Instances))
			for _, inst := range idle.Instances {
				ids = append(ids, inst.ID)
			}
			if err := executor.TerminateInstances(ctx, ids); err != nil {
				return enhanceError("terminate instances", err)
			}
			fmt.Println("Instances terminated.")
		}
	}

	if len(idle.Volumes) > 0 {
		prompt := fmt.Sprintf("Delete %d unattached volume(s)?", len(idle.Volumes))
		if cfg.AutoCleanup || confirm(stdin, prompt) {
			ids := make([]string, 0, len(idle.Volumes))
			for _, vol := range idle.Volumes {
				ids = append(ids, vol.ID)
			}
			if errs := executor.DeleteVolumes(ctx, ids); len(errs) > 0 {
				for _, e := range errs {
					fmt.Printf("failed: %s\n", e)
				}
				return fmt.Errorf("%d of %d volume deletions failed", len(errs), len(ids))
			}
			fmt.Println("Volumes deleted.")
		}
	}

	return nil
}

func printCandidates(idle *analyzer.IdleReport) {
	for _, c := range idle.Candidates() {
		switch c.Category() {
		case analyzer.CategoryDatabase:
			fmt.Printf("  - [%s] %s (review only)\n", c.Category(), c.ResourceID())
		default:
			fmt.Printf("  - [%s] %s (%s)\n", c.Category(), c.ResourceID(), c.DisplayName())
		}
	}
}

func confirm(r *bufio.Reader, prompt string) bool {
	fmt.Printf("%s (y/n): ", prompt)
	line, err := r.ReadString('\n')
	if err != nil {
		return false
	}
	return strings.TrimSpace(strings.ToLower(line)) == "y"
}
