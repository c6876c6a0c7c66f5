package pricing

import "testing"

func TestHourlyComputeRate(t *testing.T) {
	tests := []struct {
		name         string
		instanceType string
		want         string
	}{
		{"t2 family", "t2.micro", "0.02"},
		{"t3 family", "t3.large", "0.03"},
		{"m5 family", "m5.xlarge", "0.1"},
		{"c5 family", "c5.2xlarge", "0.12"},
		{"unknown family falls back", "r6g.large", "0.05"},
		{"empty type falls back", "", "0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HourlyComputeRate(tt.instanceType).String(); got != tt.want {
				t.Fatalf("HourlyComputeRate(%q) = %s, want %s", tt.instanceType, got, tt.want)
			}
		})
	}
}

func TestMonthlyComputeCost(t *testing.T) {
	// t2.micro: $0.02/hr * 720 hrs = $14.40 exactly.
	if got := MonthlyComputeCost("t2.micro").StringFixed(2); got != "14.40" {
		t.Fatalf("expected $14.40, got $%s", got)
	}
	// c5: $0.12/hr * 720 hrs = $86.40.
	if got := MonthlyComputeCost("c5.large").StringFixed(2); got != "86.40" {
		t.Fatalf("expected $86.40, got $%s", got)
	}
}

func TestMonthlyVolumeCost(t *testing.T) {
	tests := []struct {
		name       string
		volumeType string
		sizeGiB    int
		want       string
	}{
		{"gp3 50 GiB", "gp3", 50, "4.00"},
		{"gp2 100 GiB", "gp2", 100, "10.00"},
		{"io1 40 GiB", "io1", 40, "5.00"},
		{"unknown type falls back", "st1", 100, "5.00"},
		{"zero size", "gp3", 0, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyVolumeCost(tt.volumeType, tt.sizeGiB).StringFixed(2); got != tt.want {
				t.Fatalf("MonthlyVolumeCost(%q, %d) = $%s, want $%s", tt.volumeType, tt.sizeGiB, got, tt.want)
			}
		})
	}
}
