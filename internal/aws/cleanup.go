package aws

import (
	"context"
	"fmt"
	"log/slog"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// CleanupAPI is the minimal interface for the destructive EC2 operations.
type CleanupAPI interface {
	TerminateInstances(ctx context.Context, input *ec2.TerminateInstancesInput, opts ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error)
	DeleteVolume(ctx context.Context, input *ec2.DeleteVolumeInput, opts ...func(*ec2.Options)) (*ec2.DeleteVolumeOutput, error)
}

// Executor carries out the side-effecting actions recommended by the idle
// detector. It runs only after the caller confirmed the candidates.
type Executor struct {
	client CleanupAPI
}

// NewExecutor creates an executor from an AWS config.
func NewExecutor(cfg awssdk.Config) *Executor {
	return &Executor{client: ec2.NewFromConfig(cfg)}
}

// NewExecutorWithAPI creates an executor with a custom API implementation.
func NewExecutorWithAPI(api CleanupAPI) *Executor {
	return &Executor{client: api}
}

// TerminateInstances terminates the given instances in a single call.
func (e *Executor) TerminateInstances(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if _, err := e.client.TerminateInstances(ctx, &ec2.TerminateInstancesInput{
		InstanceIds: ids,
	}); err != nil {
		return fmt.Errorf("terminate instances: %w", err)
	}
	slog.Info("Terminated instances", "count", len(ids))
	return nil
}

// DeleteVolumes deletes volumes one by one, collecting per-volume failures
// so a single refusal does not stop the rest.
func (e *Executor) DeleteVolumes(ctx context.Context, ids []string) []string {
	var errs []string
	for _, id := range ids {
		if _, err := e.client.DeleteVolume(ctx, &ec2.DeleteVolumeInput{
			VolumeId: awssdk.String(id),
		}); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", id, err))
			slog.Warn("Failed to delete volume", "volume", id, "error", err)
			continue
		}
		slog.Info("Deleted volume", "volume", id)
	}
	return errs
}
