package aws

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"golang.org/x/sync/errgroup"

	"costguardian/internal/analyzer"
)

// EC2API is the minimal interface for EC2 instance and volume operations.
type EC2API interface {
	DescribeInstances(ctx context.Context, input *ec2.DescribeInstancesInput, opts ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeVolumes(ctx context.Context, input *ec2.DescribeVolumesInput, opts ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
}

// RDSAPI is the minimal interface for RDS operations.
type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, input *rds.DescribeDBInstancesInput, opts ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// Inventory fetches the resource snapshots consumed by the idle detector.
type Inventory struct {
	ec2 EC2API
	rds RDSAPI
}

// NewInventory creates an inventory fetcher from an AWS config.
func NewInventory(cfg awssdk.Config) *Inventory {
	return &Inventory{
		ec2: ec2.NewFromConfig(cfg),
		rds: rds.NewFromConfig(cfg),
	}
}

// NewInventoryWithAPIs creates an inventory fetcher with custom API
// implementations.
func NewInventoryWithAPIs(ec2Client EC2API, rdsClient RDSAPI) *Inventory {
	return &Inventory{ec2: ec2Client, rds: rdsClient}
}

// FetchSnapshot runs the three inventory fetches concurrently. A failed
// fetch logs a warning, records the failure, and leaves that class empty so
// the other classes still get analyzed.
func (inv *Inventory) FetchSnapshot(ctx context.Context) (analyzer.ResourceSnapshot, []string) {
	var (
		mu   sync.Mutex
		snap analyzer.ResourceSnapshot
		errs []string
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := inv.listStoppedInstances(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, fmt.Sprintf("ec2: %v", err))
			slog.Warn("EC2 inventory fetch failed", "error", err)
			return nil
		}
		snap.Instances = records
		return nil
	})

	g.Go(func() error {
		records, err := inv.listAvailableVolumes(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, fmt.Sprintf("ebs: %v", err))
			slog.Warn("EBS inventory fetch failed", "error", err)
			return nil
		}
		snap.Volumes = records
		return nil
	})

	g.Go(func() error {
		records, err := inv.listDatabases(ctx)
		mu.Lock()
		defer mu.Unlock()
		if err != nil {
			errs = append(errs, fmt.Sprintf("rds: %v", err))
			slog.Warn("RDS inventory fetch failed", "error", err)
			return nil
		}
		snap.Databases = records
		return nil
	})

	_ = g.Wait() // goroutines report failures via errs, never abort siblings
	return snap, errs
}

func (inv *Inventory) listStoppedInstances(ctx context.Context) ([]analyzer.InstanceRecord, error) {
	var records []analyzer.InstanceRecord
	paginator := ec2.NewDescribeInstancesPaginator(inv.ec2, &ec2.DescribeInstancesInput{
		Filters: []ec2types.Filter{
			{
				Name:   awssdk.String("instance-state-name"),
				Values: []string{"stopped"},
			},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe instances: %w", err)
		}
		for _, res := range page.Reservations {
			for _, inst := range res.Instances {
				var state string
				if inst.State != nil {
					state = string(inst.State.Name)
				}
				records = append(records, analyzer.InstanceRecord{
					ID:                    deref(inst.InstanceId),
					InstanceType:          string(inst.InstanceType),
					State:                 state,
					Tags:                  ec2TagsToMap(inst.Tags),
					StateTransitionReason: deref(inst.StateTransitionReason),
				})
			}
		}
	}
	return records, nil
}

func (inv *Inventory) listAvailableVolumes(ctx context.Context) ([]analyzer.VolumeRecord, error) {
	var records []analyzer.VolumeRecord
	paginator := ec2.NewDescribeVolumesPaginator(inv.ec2, &ec2.DescribeVolumesInput{
		Filters: []ec2types.Filter{
			{
				Name:   awssdk.String("status"),
				Values: []string{"available"},
			},
		},
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe volumes: %w", err)
		}
		for _, vol := range page.Volumes {
			var created string
			if vol.CreateTime != nil {
				created = vol.CreateTime.UTC().Format(dateLayout)
			}
			records = append(records, analyzer.VolumeRecord{
				ID:         deref(vol.VolumeId),
				VolumeType: string(vol.VolumeType),
				SizeGiB:    int(derefInt32(vol.Size)),
				Tags:       ec2TagsToMap(vol.Tags),
				Status:     string(vol.State),
				Created:    created,
			})
		}
	}
	return records, nil
}

func (inv *Inventory) listDatabases(ctx context.Context) ([]analyzer.DBRecord, error) {
	var records []analyzer.DBRecord
	paginator := rds.NewDescribeDBInstancesPaginator(inv.rds, &rds.DescribeDBInstancesInput{})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describe db instances: %w", err)
		}
		for _, inst := range page.DBInstances {
			records = append(records, analyzer.DBRecord{
				ID:            deref(inst.DBInstanceIdentifier),
				InstanceClass: deref(inst.DBInstanceClass),
				Engine:        deref(inst.Engine),
				Status:        deref(inst.DBInstanceStatus),
			})
		}
	}
	return records, nil
}

func ec2TagsToMap(tags []ec2types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		m[deref(tag.Key)] = deref(tag.Value)
	}
	return m
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt32(v *int32) int32 {
	if v == nil {
		return 0
	}
	return *v
}
