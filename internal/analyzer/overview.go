package analyzer

import (
	"sort"

	"github.com/shopspring/decimal"
)

// topBreakdownEntries caps the per-service breakdown at the biggest spenders.
const topBreakdownEntries = 10

var hundred = decimal.NewFromInt(100)

// ComputeCostOverview aggregates month-to-date line items and combines them
// with the forecast for the remainder of the month. An empty input window is
// a valid state and yields an all-zero overview, not an error.
func ComputeCostOverview(items []CostLineItem, forecast decimal.Decimal) CostOverview {
	totals := make(map[string]decimal.Decimal, len(items))
	var order []string
	for _, item := range items {
		if _, seen := totals[item.Service]; !seen {
			order = append(order, item.Service)
		}
		totals[item.Service] = totals[item.Service].Add(item.Amount)
	}

	total := decimal.Zero
	entries := make([]BreakdownEntry, 0, len(order))
	for _, svc := range order {
		total = total.Add(totals[svc])
		entries = append(entries, BreakdownEntry{Service: svc, Amount: totals[svc]})
	}

	// Descending by amount; stable so ties keep input order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount.GreaterThan(entries[j].Amount)
	})
	if len(entries) > topBreakdownEntries {
		entries = entries[:topBreakdownEntries]
	}

	// Percentages are computed against the full total, not the truncated
	// subset, and are zero when there is no spend at all.
	for i := range entries {
		if total.IsPositive() {
			entries[i].Percent = entries[i].Amount.Div(total).Mul(hundred)
		} else {
			entries[i].Percent = decimal.Zero
		}
	}

	return CostOverview{
		MonthToDate:        total,
		ForecastAdditional: forecast,
		ProjectedTotal:     total.Add(forecast),
		Breakdown:          entries,
	}
}
