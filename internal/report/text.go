package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"costguardian/internal/analyzer"
)

// TextReporter writes a human-readable report with aligned tables.
type TextReporter struct {
	Writer io.Writer
}

// Generate renders whichever sections the data carries.
func (r *TextReporter) Generate(data Data) error {
	if data.Overview != nil {
		if err := r.writeOverview(data.Overview); err != nil {
			return err
		}
	}
	if data.Idle != nil {
		if err := r.writeIdle(data.Idle); err != nil {
			return err
		}
	}
	if data.Anomalies != nil {
		if err := r.writeAnomalies(data.Anomalies); err != nil {
			return err
		}
	}
	for _, e := range data.Errors {
		fmt.Fprintf(r.Writer, "warning: %s\n", e)
	}
	return nil
}

func (r *TextReporter) writeOverview(o *analyzer.CostOverview) error {
	fmt.Fprintln(r.Writer, "Cost Overview")
	fmt.Fprintln(r.Writer, "=============")

	w := tabwriter.NewWriter(r.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Month-to-Date Spend\t%s\n", usd(o.MonthToDate))
	fmt.Fprintf(w, "Forecasted Additional Spend\t%s\n", usd(o.ForecastAdditional))
	fmt.Fprintf(w, "Projected Monthly Total\t%s\n", usd(o.ProjectedTotal))
	if err := w.Flush(); err != nil {
		return err
	}

	if len(o.Breakdown) == 0 {
		fmt.Fprintln(r.Writer, "\nNo cost data available for this month.")
		return nil
	}

	fmt.Fprintln(r.Writer, "\nBreakdown by Service")
	w = tabwriter.NewWriter(r.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tCOST\tPERCENT")
	for _, entry := range o.Breakdown {
		fmt.Fprintf(w, "%s\t%s\t%s%%\n", entry.Service, usd(entry.Amount), entry.Percent.StringFixed(1))
	}
	return w.Flush()
}

func (r *TextReporter) writeIdle(idle *analyzer.IdleReport) error {
	fmt.Fprintln(r.Writer, "Cost Optimization Recommendations")
	fmt.Fprintln(r.Writer, "=================================")

	if len(idle.Instances) > 0 {
		fmt.Fprintln(r.Writer, "\nStopped Compute Instances")
		w := tabwriter.NewWriter(r.Writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "INSTANCE ID\tNAME\tTYPE\tSTATE\tSTOPPED SINCE")
		for _, inst := range idle.Instances {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", inst.ID, inst.Name, inst.InstanceType, inst.State, inst.StoppedSince)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(r.Writer, "Potential monthly savings: %s\n", usd(idle.ComputeSavings.Monthly))
		fmt.Fprintln(r.Writer, "Consider terminating these instances if they are no longer needed.")
	} else {
		fmt.Fprintln(r.Writer, "\nNo stopped compute instances found.")
	}

	if len(idle.Volumes) > 0 {
		fmt.Fprintln(r.Writer, "\nUnattached Volumes")
		w := tabwriter.NewWriter(r.Writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "VOLUME ID\tNAME\tSIZE (GiB)\tTYPE\tCREATED")
		for _, vol := range idle.Volumes {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", vol.ID, vol.Name, vol.SizeGiB, vol.VolumeType, vol.Created)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(r.Writer, "Potential monthly savings: %s\n", usd(idle.VolumeSavings.Monthly))
		fmt.Fprintln(r.Writer, "Delete these unattached volumes to save on storage costs.")
	} else {
		fmt.Fprintln(r.Writer, "\nNo unattached volumes found.")
	}

	if len(idle.Databases) > 0 {
		fmt.Fprintln(r.Writer, "\nDatabase Instances to Review")
		w := tabwriter.NewWriter(r.Writer, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "INSTANCE ID\tCLASS\tENGINE\tSTATUS")
		for _, db := range idle.Databases {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", db.ID, db.InstanceClass, db.Engine, db.Status)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(r.Writer, "Review these instances for utilization and consider downsizing.")
	} else {
		fmt.Fprintln(r.Writer, "\nNo database instances found for review.")
	}

	return nil
}

func (r *TextReporter) writeAnomalies(anomalies []analyzer.CostAnomaly) error {
	if len(anomalies) == 0 {
		fmt.Fprintln(r.Writer, "No significant cost anomalies detected.")
		return nil
	}

	fmt.Fprintln(r.Writer, "Cost Anomalies Detected")
	fmt.Fprintln(r.Writer, "=======================")
	w := tabwriter.NewWriter(r.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tDATE\tCOST\tBASELINE\tINCREASE")
	for _, a := range anomalies {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t+%s%%\n",
			a.Service, a.Date, usd(a.Amount), usd(a.Baseline), a.PercentIncrease.StringFixed(1))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(r.Writer, "Investigate these services for unexpected usage.")
	return nil
}

func usd(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
