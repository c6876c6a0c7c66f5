// Package pricing holds the static rate tables behind idle-resource savings
// estimates. The rates are coarse on-demand approximations by instance-type
// family and volume type, not a substitute for the AWS price list.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// hoursPerMonth is the flat 24x30 month used for compute estimates.
var hoursPerMonth = decimal.NewFromInt(24 * 30)

type prefixRate struct {
	prefix string
	hourly decimal.Decimal
}

// computeRates maps instance-type prefixes to estimated hourly rates.
// First match wins; unknown families fall back to defaultComputeHourly.
var computeRates = []prefixRate{
	{"t2.", decimal.RequireFromString("0.02")},
	{"t3.", decimal.RequireFromString("0.03")},
	{"m5.", decimal.RequireFromString("0.10")},
	{"c5.", decimal.RequireFromString("0.12")},
}

var defaultComputeHourly = decimal.RequireFromString("0.05")

// volumeRates maps block-volume types to per-GiB-month rates, exact match.
var volumeRates = map[string]decimal.Decimal{
	"gp2": decimal.RequireFromString("0.10"),
	"gp3": decimal.RequireFromString("0.08"),
	"io1": decimal.RequireFromString("0.125"),
}

var defaultVolumeRate = decimal.RequireFromString("0.05")

// HourlyComputeRate returns the estimated hourly rate for an instance type.
func HourlyComputeRate(instanceType string) decimal.Decimal {
	for _, r := range computeRates {
		if strings.HasPrefix(instanceType, r.prefix) {
			return r.hourly
		}
	}
	return defaultComputeHourly
}

// MonthlyComputeCost returns the estimated monthly cost of keeping an
// instance of the given type provisioned.
func MonthlyComputeCost(instanceType string) decimal.Decimal {
	return HourlyComputeRate(instanceType).Mul(hoursPerMonth)
}

// MonthlyVolumeCost returns the estimated monthly storage cost for a volume
// of the given type and size.
func MonthlyVolumeCost(volumeType string, sizeGiB int) decimal.Decimal {
	rate, ok := volumeRates[volumeType]
	if !ok {
		rate = defaultVolumeRate
	}
	return rate.Mul(decimal.NewFromInt(int64(sizeGiB)))
}
