package analyzer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"costguardian/internal/pricing"
)

const (
	unnamedResource = "Unnamed"
	unknownStopTime = "Unknown"
)

// userInitiatedPrefix marks stop reasons that carry a parenthesized
// timestamp, e.g. "User initiated (2026-08-01 14:02:11 GMT)".
const userInitiatedPrefix = "User initiated"

// DetectIdleResources classifies the snapshot into idle candidates per
// resource class and estimates monthly savings for compute and volumes.
// Classes are independent: an empty class yields an empty candidate list and
// a zero estimate without affecting the others. The only error condition is
// a contract violation in the input, such as a negative volume size.
func DetectIdleResources(snap ResourceSnapshot) (*IdleReport, error) {
	report := &IdleReport{
		ComputeSavings: SavingsEstimate{Category: CategoryCompute, Monthly: decimal.Zero},
		VolumeSavings:  SavingsEstimate{Category: CategoryVolume, Monthly: decimal.Zero},
	}

	for _, rec := range snap.Instances {
		if rec.State != stateStopped {
			continue
		}
		report.Instances = append(report.Instances, ComputeInstance{
			ID:           rec.ID,
			Name:         tagName(rec.Tags),
			InstanceType: rec.InstanceType,
			State:        rec.State,
			StoppedSince: stoppedSince(rec.StateTransitionReason),
		})
		report.ComputeSavings.Monthly = report.ComputeSavings.Monthly.Add(
			pricing.MonthlyComputeCost(rec.InstanceType))
	}

	for _, rec := range snap.Volumes {
		if rec.Status != statusAvailable {
			continue
		}
		if rec.SizeGiB < 0 {
			return nil, fmt.Errorf("volume %s: negative size %d GiB", rec.ID, rec.SizeGiB)
		}
		report.Volumes = append(report.Volumes, BlockVolume{
			ID:         rec.ID,
			Name:       tagName(rec.Tags),
			SizeGiB:    rec.SizeGiB,
			VolumeType: rec.VolumeType,
			Created:    rec.Created,
		})
		report.VolumeSavings.Monthly = report.VolumeSavings.Monthly.Add(
			pricing.MonthlyVolumeCost(rec.VolumeType, rec.SizeGiB))
	}

	// Status "available" is a liveness check, not a utilization signal, so
	// databases are review-only and carry no savings estimate.
	for _, rec := range snap.Databases {
		if rec.Status != statusAvailable {
			continue
		}
		report.Databases = append(report.Databases, DatabaseInstance{
			ID:            rec.ID,
			InstanceClass: rec.InstanceClass,
			Engine:        rec.Engine,
			Status:        rec.Status,
		})
	}

	return report, nil
}

func tagName(tags map[string]string) string {
	if name, ok := tags["Name"]; ok {
		return name
	}
	return unnamedResource
}

// stoppedSince extracts the parenthesized timestamp from a user-initiated
// stop reason. Any shape it cannot extract from degrades to "Unknown";
// it never fails.
func stoppedSince(reason string) string {
	if !strings.HasPrefix(reason, userInitiatedPrefix) {
		return unknownStopTime
	}
	_, rest, ok := strings.Cut(reason, "(")
	if !ok {
		return unknownStopTime
	}
	ts, _, ok := strings.Cut(rest, ")")
	if !ok || ts == "" {
		return unknownStopTime
	}
	return ts
}
