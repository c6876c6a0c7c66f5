package analyzer

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// recentWindowDays is the fixed number of trailing days compared
	// against the baseline average.
	recentWindowDays = 10

	seriesDateLayout = "2006-01-02"
)

// baselineMultiplier is the relative-increase threshold: a recent day is
// anomalous when it exceeds 1.5x the baseline average.
var baselineMultiplier = decimal.RequireFromString("1.5")

// DetectAnomalies flags recent daily costs that exceed each service's
// baseline average by more than the fixed multiplier. Services with fewer
// than two data points are skipped. Results are ordered by percent increase,
// biggest first. A malformed or out-of-order date in the series is a
// contract violation and fails the whole pass.
func DetectAnomalies(series DailyCostSeries) ([]CostAnomaly, error) {
	var anomalies []CostAnomaly

	for service, points := range series {
		if err := checkChronology(service, points); err != nil {
			return nil, err
		}
		if len(points) < 2 {
			continue
		}

		baseline := points[:len(points)-1]
		recent := points[len(points)-1:]
		if len(points) > recentWindowDays {
			baseline = points[:len(points)-recentWindowDays]
			recent = points[len(points)-recentWindowDays:]
		}
		if len(baseline) == 0 {
			continue
		}

		sum := decimal.Zero
		for _, p := range baseline {
			sum = sum.Add(p.Amount)
		}
		avg := sum.Div(decimal.NewFromInt(int64(len(baseline))))
		if !avg.IsPositive() {
			continue
		}

		threshold := avg.Mul(baselineMultiplier)
		for _, p := range recent {
			if p.Amount.GreaterThan(threshold) {
				anomalies = append(anomalies, CostAnomaly{
					Service:         service,
					Date:            p.Date,
					Amount:          p.Amount,
					Baseline:        avg,
					PercentIncrease: p.Amount.Sub(avg).Div(avg).Mul(hundred),
				})
			}
		}
	}

	// Percent increase descending; service then date break ties so the
	// output is deterministic across map iteration orders.
	sort.SliceStable(anomalies, func(i, j int) bool {
		if !anomalies[i].PercentIncrease.Equal(anomalies[j].PercentIncrease) {
			return anomalies[i].PercentIncrease.GreaterThan(anomalies[j].PercentIncrease)
		}
		if anomalies[i].Service != anomalies[j].Service {
			return anomalies[i].Service < anomalies[j].Service
		}
		return anomalies[i].Date < anomalies[j].Date
	})

	return anomalies, nil
}

func checkChronology(service string, points []DailyCost) error {
	var prev time.Time
	for i, p := range points {
		ts, err := time.Parse(seriesDateLayout, p.Date)
		if err != nil {
			return fmt.Errorf("series for %s: malformed date %q: %w", service, p.Date, err)
		}
		if i > 0 && !ts.After(prev) {
			return fmt.Errorf("series for %s: date %s is not after %s", service, p.Date, prev.Format(seriesDateLayout))
		}
		prev = ts
	}
	return nil
}
