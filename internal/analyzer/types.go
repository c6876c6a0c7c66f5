package analyzer

import (
	"time"

	"github.com/shopspring/decimal"
)

// ResourceCategory identifies the class of an idle-resource candidate.
type ResourceCategory string

const (
	CategoryCompute  ResourceCategory = "compute"
	CategoryVolume   ResourceCategory = "volume"
	CategoryDatabase ResourceCategory = "database"
)

// Lifecycle states the detectors key on.
const (
	stateStopped    = "stopped"
	statusAvailable = "available"
)

// CostLineItem is a single month-to-date cost entry for one service, as
// returned by the billing fetch layer. Immutable once constructed.
type CostLineItem struct {
	Service     string
	Amount      decimal.Decimal
	Currency    string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// BreakdownEntry is one row of the per-service cost breakdown.
type BreakdownEntry struct {
	Service string          `json:"service"`
	Amount  decimal.Decimal `json:"amount"`
	Percent decimal.Decimal `json:"percent"`
}

// CostOverview summarizes month-to-date spend with a month-end projection.
// ProjectedTotal is always MonthToDate + ForecastAdditional.
type CostOverview struct {
	MonthToDate        decimal.Decimal  `json:"month_to_date"`
	ForecastAdditional decimal.Decimal  `json:"forecast_additional"`
	ProjectedTotal     decimal.Decimal  `json:"projected_total"`
	Breakdown          []BreakdownEntry `json:"breakdown"`
}

// InstanceRecord is a raw compute-instance inventory entry. The fetch layer
// converts SDK shapes into these so the detectors stay SDK-free.
type InstanceRecord struct {
	ID                    string
	InstanceType          string
	State                 string
	Tags                  map[string]string
	StateTransitionReason string
}

// VolumeRecord is a raw block-volume inventory entry.
type VolumeRecord struct {
	ID         string
	VolumeType string
	SizeGiB    int
	Tags       map[string]string
	Status     string
	Created    string
}

// DBRecord is a raw managed-database inventory entry.
type DBRecord struct {
	ID            string
	InstanceClass string
	Engine        string
	Status        string
}

// ResourceSnapshot holds the three inventory classes for one detection pass.
// A class whose fetch failed is simply left empty.
type ResourceSnapshot struct {
	Instances []InstanceRecord
	Volumes   []VolumeRecord
	Databases []DBRecord
}

// IdleCandidate is implemented by each idle-resource variant so callers can
// enumerate candidates without branching on the concrete type.
type IdleCandidate interface {
	Category() ResourceCategory
	ResourceID() string
	DisplayName() string
}

// ComputeInstance is a stopped compute instance flagged for termination.
type ComputeInstance struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	InstanceType string `json:"instance_type"`
	State        string `json:"state"`
	StoppedSince string `json:"stopped_since"`
}

func (c ComputeInstance) Category() ResourceCategory { return CategoryCompute }
func (c ComputeInstance) ResourceID() string         { return c.ID }
func (c ComputeInstance) DisplayName() string        { return c.Name }

// BlockVolume is an unattached block volume flagged for deletion.
type BlockVolume struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	SizeGiB    int    `json:"size_gib"`
	VolumeType string `json:"volume_type"`
	Created    string `json:"created"`
}

func (v BlockVolume) Category() ResourceCategory { return CategoryVolume }
func (v BlockVolume) ResourceID() string         { return v.ID }
func (v BlockVolume) DisplayName() string        { return v.Name }

// DatabaseInstance is a database instance flagged for utilization review.
// The "available" status check is a coarse liveness signal, not a true
// utilization metric, so these are review-only candidates.
type DatabaseInstance struct {
	ID            string `json:"id"`
	InstanceClass string `json:"instance_class"`
	Engine        string `json:"engine"`
	Status        string `json:"status"`
}

func (d DatabaseInstance) Category() ResourceCategory { return CategoryDatabase }
func (d DatabaseInstance) ResourceID() string         { return d.ID }
func (d DatabaseInstance) DisplayName() string        { return d.ID }

// SavingsEstimate is the estimated monthly saving for one resource category,
// derived from the static rate tables in internal/pricing.
type SavingsEstimate struct {
	Category ResourceCategory `json:"category"`
	Monthly  decimal.Decimal  `json:"monthly"`
}

// IdleReport holds all idle-resource candidates from one detection pass plus
// per-category savings estimates. Databases carry no estimate.
type IdleReport struct {
	Instances      []ComputeInstance  `json:"instances"`
	Volumes        []BlockVolume      `json:"volumes"`
	Databases      []DatabaseInstance `json:"databases"`
	ComputeSavings SavingsEstimate    `json:"compute_savings"`
	VolumeSavings  SavingsEstimate    `json:"volume_savings"`
}

// Candidates returns every candidate in the report as the common interface,
// instances first, then volumes, then databases.
func (r *IdleReport) Candidates() []IdleCandidate {
	out := make([]IdleCandidate, 0, len(r.Instances)+len(r.Volumes)+len(r.Databases))
	for _, c := range r.Instances {
		out = append(out, c)
	}
	for _, v := range r.Volumes {
		out = append(out, v)
	}
	for _, d := range r.Databases {
		out = append(out, d)
	}
	return out
}

// DailyCost is one day of spend for a single service. Date is ISO YYYY-MM-DD.
type DailyCost struct {
	Date   string
	Amount decimal.Decimal
}

// DailyCostSeries maps a service name to its chronological daily costs over
// the trailing detection window.
type DailyCostSeries map[string][]DailyCost

// CostAnomaly is a recent daily cost observation that exceeded the baseline
// threshold for its service.
type CostAnomaly struct {
	Service         string          `json:"service"`
	Date            string          `json:"date"`
	Amount          decimal.Decimal `json:"amount"`
	Baseline        decimal.Decimal `json:"baseline"`
	PercentIncrease decimal.Decimal `json:"percent_increase"`
}
