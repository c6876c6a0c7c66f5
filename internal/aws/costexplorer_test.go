package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/costexplorer"
	cetypes "github.com/aws/aws-sdk-go-v2/service/costexplorer/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCostExplorerAPI struct {
	getCostAndUsageFunc func(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error)
	getCostForecastFunc func(ctx context.Context, params *costexplorer.GetCostForecastInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error)
}

func (m *mockCostExplorerAPI) GetCostAndUsage(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
	return m.getCostAndUsageFunc(ctx, params, optFns...)
}

func (m *mockCostExplorerAPI) GetCostForecast(ctx context.Context, params *costexplorer.GetCostForecastInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error) {
	return m.getCostForecastFunc(ctx, params, optFns...)
}

func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestFetchMonthToDate(t *testing.T) {
	mock := &mockCostExplorerAPI{
		getCostAndUsageFunc: func(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
			assert.Equal(t, "2026-08-01", awssdk.ToString(params.TimePeriod.Start))
			assert.Equal(t, "2026-08-15", awssdk.ToString(params.TimePeriod.End))
			assert.Equal(t, cetypes.GranularityMonthly, params.Granularity)
			return &costexplorer.GetCostAndUsageOutput{
				ResultsByTime: []cetypes.ResultByTime{
					{
						TimePeriod: &cetypes.DateInterval{
							Start: awssdk.String("2026-08-01"),
							End:   awssdk.String("2026-08-15"),
						},
						Groups: []cetypes.Group{
							{
								Keys: []string{"Amazon EC2"},
								Metrics: map[string]cetypes.MetricValue{
									"UnblendedCost": {Amount: awssdk.String("50.25"), Unit: awssdk.String("USD")},
								},
							},
							{
								Keys: []string{"Amazon S3"},
								Metrics: map[string]cetypes.MetricValue{
									"UnblendedCost": {Amount: awssdk.String("20.00"), Unit: awssdk.String("USD")},
								},
							},
						},
					},
				},
			}, nil
		},
	}

	client := NewCostClientWithAPI(mock)
	client.now = fixedNow(time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC))

	items, err := client.FetchMonthToDate(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Amazon EC2", items[0].Service)
	assert.Equal(t, "50.25", items[0].Amount.String())
	assert.Equal(t, "USD", items[0].Currency)
	assert.Equal(t, "2026-08-01", items[0].PeriodStart.Format("2006-01-02"))
	assert.Equal(t, "Amazon S3", items[1].Service)
}

func TestFetchMonthToDate_FirstOfMonth(t *testing.T) {
	mock := &mockCostExplorerAPI{
		getCostAndUsageFunc: func(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
			t.Fatal("no call expected on the first of the month")
			return nil, nil
		},
	}

	client := NewCostClientWithAPI(mock)
	client.now = fixedNow(time.Date(2026, 9, 1, 3, 0, 0, 0, time.UTC))

	items, err := client.FetchMonthToDate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchMonthToDate_BadAmount(t *testing.T) {
	mock := &mockCostExplorerAPI{
		getCostAndUsageFunc: func(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
			return &costexplorer.GetCostAndUsageOutput{
				ResultsByTime: []cetypes.ResultByTime{
					{
						Groups: []cetypes.Group{
							{
								Keys: []string{"Amazon EC2"},
								Metrics: map[string]cetypes.MetricValue{
									"UnblendedCost": {Amount: awssdk.String("not-a-number")},
								},
							},
						},
					},
				},
			}, nil
		},
	}

	client := NewCostClientWithAPI(mock)
	client.now = fixedNow(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))

	_, err := client.FetchMonthToDate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Amazon EC2")
}

func TestFetchForecast(t *testing.T) {
	mock := &mockCostExplorerAPI{
		getCostForecastFunc: func(ctx context.Context, params *costexplorer.GetCostForecastInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error) {
			assert.Equal(t, "2026-08-15", awssdk.ToString(params.TimePeriod.Start))
			assert.Equal(t, "2026-09-01", awssdk.ToString(params.TimePeriod.End))
			return &costexplorer.GetCostForecastOutput{
				Total: &cetypes.MetricValue{
					Amount: awssdk.String("123.45"),
					Unit:   awssdk.String("USD"),
				},
			}, nil
		},
	}

	client := NewCostClientWithAPI(mock)
	client.now = fixedNow(time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC))

	forecast, err := client.FetchForecast(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "123.45", forecast.String())
}

func TestFetchForecast_NoTotal(t *testing.T) {
	mock := &mockCostExplorerAPI{
		getCostForecastFunc: func(ctx context.Context, params *costexplorer.GetCostForecastInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error) {
			return &costexplorer.GetCostForecastOutput{}, nil
		},
	}

	client := NewCostClientWithAPI(mock)
	client.now = fixedNow(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))

	forecast, err := client.FetchForecast(context.Background())
	require.NoError(t, err)
	assert.True(t, forecast.IsZero())
}

func TestFetchForecast_APIError(t *testing.T) {
	mock := &mockCostExplorerAPI{
		getCostForecastFunc: func(ctx context.Context, params *costexplorer.GetCostForecastInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostForecastOutput, error) {
			return nil, errors.New("DataUnavailableException: no data")
		},
	}

	client := NewCostClientWithAPI(mock)
	client.now = fixedNow(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))

	_, err := client.FetchForecast(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get cost forecast")
}

func TestFetchDailySeries(t *testing.T) {
	mock := &mockCostExplorerAPI{
		getCostAndUsageFunc: func(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
			assert.Equal(t, cetypes.GranularityDaily, params.Granularity)
			assert.Equal(t, "2026-08-13", awssdk.ToString(params.TimePeriod.Start))
			assert.Equal(t, "2026-08-15", awssdk.ToString(params.TimePeriod.End))
			return &costexplorer.GetCostAndUsageOutput{
				ResultsByTime: []cetypes.ResultByTime{
					{
						TimePeriod: &cetypes.DateInterval{Start: awssdk.String("2026-08-13"), End: awssdk.String("2026-08-14")},
						Groups: []cetypes.Group{
							{
								Keys:    []string{"Amazon EC2"},
								Metrics: map[string]cetypes.MetricValue{"UnblendedCost": {Amount: awssdk.String("10.00")}},
							},
						},
					},
					{
						TimePeriod: &cetypes.DateInterval{Start: awssdk.String("2026-08-14"), End: awssdk.String("2026-08-15")},
						Groups: []cetypes.Group{
							{
								Keys:    []string{"Amazon EC2"},
								Metrics: map[string]cetypes.MetricValue{"UnblendedCost": {Amount: awssdk.String("25.00")}},
							},
							{
								Keys:    []string{"Amazon RDS"},
								Metrics: map[string]cetypes.MetricValue{"UnblendedCost": {Amount: awssdk.String("5.00")}},
							},
						},
					},
				},
			}, nil
		},
	}

	client := NewCostClientWithAPI(mock)
	client.now = fixedNow(time.Date(2026, 8, 15, 6, 0, 0, 0, time.UTC))

	series, err := client.FetchDailySeries(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, series, 2)

	ec2Points := series["Amazon EC2"]
	require.Len(t, ec2Points, 2)
	assert.Equal(t, "2026-08-13", ec2Points[0].Date)
	assert.Equal(t, "10", ec2Points[0].Amount.String())
	assert.Equal(t, "2026-08-14", ec2Points[1].Date)
	assert.Equal(t, "25", ec2Points[1].Amount.String())

	require.Len(t, series["Amazon RDS"], 1)
}

func TestFetchDailySeries_DefaultWindow(t *testing.T) {
	mock := &mockCostExplorerAPI{
		getCostAndUsageFunc: func(ctx context.Context, params *costexplorer.GetCostAndUsageInput, optFns ...func(*costexplorer.Options)) (*costexplorer.GetCostAndUsageOutput, error) {
			assert.Equal(t, "2026-07-16", awssdk.ToString(params.TimePeriod.Start))
			assert.Equal(t, "2026-08-15", awssdk.ToString(params.TimePeriod.End))
			return &costexplorer.GetCostAndUsageOutput{}, nil
		},
	}

	client := NewCostClientWithAPI(mock)
	client.now = fixedNow(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))

	series, err := client.FetchDailySeries(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, series)
}
