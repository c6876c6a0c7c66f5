package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 80.0, cfg.BudgetAlertThresholdPct)
	assert.Equal(t, 7, cfg.IdleThresholdDays)
	assert.False(t, cfg.AutoCleanup)
	assert.False(t, cfg.Reporting.DailySummary)
	assert.True(t, cfg.Reporting.WeeklySummary)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	data := []byte(`profile: billing
region: eu-west-1
format: json
timeout: 2m
budget_alert_threshold_pct: 90
auto_cleanup: true
reporting:
  daily_summary: true
  weekly_summary: false
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".costguardian.yaml"), data, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "billing", cfg.Profile)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, 2*time.Minute, cfg.TimeoutDuration())
	assert.Equal(t, 90.0, cfg.BudgetAlertThresholdPct)
	assert.True(t, cfg.AutoCleanup)
	assert.True(t, cfg.Reporting.DailySummary)
	assert.False(t, cfg.Reporting.WeeklySummary)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".costguardian.yml"), []byte("region: us-west-2\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, 80.0, cfg.BudgetAlertThresholdPct)
	assert.Equal(t, 7, cfg.IdleThresholdDays)
	assert.True(t, cfg.Reporting.WeeklySummary)
}

func TestLoad_YamlPreferredOverYml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".costguardian.yaml"), []byte("profile: first\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".costguardian.yml"), []byte("profile: second\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.Profile)
}

func TestLoad_InvalidYaml(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".costguardian.yaml"), []byte("profile: [unclosed\n"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestTimeoutDuration_Empty(t *testing.T) {
	assert.Equal(t, time.Duration(0), Config{}.TimeoutDuration())
}
