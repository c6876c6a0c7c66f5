package aws

import (
	"context"
	"fmt"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/shopspring/decimal"

	"costguardian/internal/analyzer"
)

const (
	dateLayout = "2006-01-02"

	// DefaultAnomalyWindowDays is the trailing window fetched for anomaly
	// detection.
	DefaultAnomalyWindowDays = 30

	costMetric = "UnblendedCost"
)

// CostExplorerAPI is the minimal interface for Cost Explorer operations.
type CostExplorerAPI interface {
	GetCostAndUsage(ctx context.Context, input *costexplorer.GetCostAndUsageInput, opts ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
	GetCostForecast(ctx context.Context, input *costexplorer.GetCostForecastInput, opts ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error)
}

// CostClient fetches billing data from AWS Cost Explorer and converts it
// into the analyzer's value objects.
type CostClient struct {
	ce  CostExplorerAPI
	now func() time.Time
}

// NewCostClient creates a cost client from an AWS config.
func NewCostClient(cfg awssdk.Config) *CostClient {
	return &CostClient{ce: costexplorer.NewFromConfig(cfg), now: time.Now}
}

// NewCostClientWithAPI creates a cost client with a custom API implementation.
func NewCostClientWithAPI(api CostExplorerAPI) *CostClient {
	return &CostClient{ce: api, now: time.Now}
}

// FetchMonthToDate returns one cost line item per service for the current
// month-to-date window, first of the month through today. On the first day
// of the month there is no complete day to query and the result is empty.
func (c *CostClient) FetchMonthToDate(ctx context.Context) ([]analyzer.CostLineItem, error) {
	now := c.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !today.After(monthStart) {
		return nil, nil
	}

	out, err := c.ce.GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: awssdk.String(monthStart.Format(dateLayout)),
			End:   awssdk.String(today.Format(dateLayout)),
		},
		Granularity: cetypes.GranularityMonthly,
		Metrics:     []string{costMetric},
		GroupBy: []cetypes.GroupDefinition{
			{Type: cetypes.GroupDefinitionTypeDimension, Key: awssdk.String("SERVICE")},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get cost and usage: %w", err)
	}

	var items []analyzer.CostLineItem
	for _, res := range out.ResultsByTime {
		start, end := parsePeriod(res.TimePeriod)
		for _, group := range res.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			mv, ok := group.Metrics[costMetric]
			if !ok {
				continue
			}
			amount, err := decimal.NewFromString(awssdk.ToString(mv.Amount))
			if err != nil {
				return nil, fmt.Errorf("parse amount for %s: %w", group.Keys[0], err)
			}
			items = append(items, analyzer.CostLineItem{
				Service:     group.Keys[0],
				Amount:      amount,
				Currency:    awssdk.ToString(mv.Unit),
				PeriodStart: start,
				PeriodEnd:   end,
			})
		}
	}
	return items, nil
}

// FetchForecast returns the predicted additional spend from today through
// the end of the month. A response without a total yields zero.
func (c *CostClient) FetchForecast(ctx context.Context) (decimal.Decimal, error) {
	now := c.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	monthEnd := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	out, err := c.ce.GetCostForecast(ctx, &costexplorer.GetCostForecastInput{
		TimePeriod: &cetypes.DateInterval{
			Start: awssdk.String(today.Format(dateLayout)),
			End:   awssdk.String(monthEnd.Format(dateLayout)),
		},
		Granularity: cetypes.GranularityMonthly,
		Metric:      cetypes.MetricUnblendedCost,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("get cost forecast: %w", err)
	}

	if out.Total == nil || out.Total.Amount == nil {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(*out.Total.Amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse forecast amount: %w", err)
	}
	return amount, nil
}

// FetchDailySeries returns per-service daily costs for the trailing window.
// Cost Explorer returns daily buckets in chronological order, which the
// anomaly detector relies on.
func (c *CostClient) FetchDailySeries(ctx context.Context, windowDays int) (analyzer.DailyCostSeries, error) {
	if windowDays <= 0 {
		windowDays = DefaultAnomalyWindowDays
	}

	now := c.now().UTC()
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -windowDays)

	out, err := c.ce.GetCostAndUsage(ctx, &costexplorer.GetCostAndUsageInput{
		TimePeriod: &cetypes.DateInterval{
			Start: awssdk.String(start.Format(dateLayout)),
			End:   awssdk.String(end.Format(dateLayout)),
		},
		Granularity: cetypes.GranularityDaily,
		Metrics:     []string{costMetric},
		GroupBy: []cetypes.GroupDefinition{
			{Type: cetypes.GroupDefinitionTypeDimension, Key: awssdk.String("SERVICE")},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("get daily cost series: %w", err)
	}

	series := make(analyzer.DailyCostSeries)
	for _, res := range out.ResultsByTime {
		if res.TimePeriod == nil {
			continue
		}
		date := awssdk.ToString(res.TimePeriod.Start)
		for _, group := range res.Groups {
			if len(group.Keys) == 0 {
				continue
			}
			mv, ok := group.Metrics[costMetric]
			if !ok {
				continue
			}
			amount, err := decimal.NewFromString(awssdk.ToString(mv.Amount))
			if err != nil {
				return nil, fmt.Errorf("parse amount for %s on %s: %w", group.Keys[0], date, err)
			}
			svc := group.Keys[0]
			series[svc] = append(series[svc], analyzer.DailyCost{Date: date, Amount: amount})
		}
	}
	return series, nil
}

func parsePeriod(period *cetypes.DateInterval) (start, end time.Time) {
	if period == nil {
		return start, end
	}
	start, _ = time.Parse(dateLayout, awssdk.ToString(period.Start))
	end, _ = time.Parse(dateLayout, awssdk.ToString(period.End))
	return start, end
}
