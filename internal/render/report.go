package render

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/utkarsh5026/rtbench/harness"
)

// Report prints the per-core and per-task tables of a run followed by the
// global miss rate line.
func Report(w io.Writer, r *harness.Report) error {
	printSectionHeader(w, "PER-CORE DELAY",
		"Delay is job execution time divided by WCET (1.00 = exactly WCET)")

	cores := tablewriter.NewWriter(w)
	cores.Header("Core", "Jobs", "Misses", "Miss Rate", "Mean Delay", "Min Delay", "Max Delay")
	for _, c := range r.Cores {
		_ = cores.Append(
			fmt.Sprintf("%d", c.Core),
			FormatNumber(c.Jobs),
			FormatNumber(c.Misses),
			FormatPercent(c.MissRate),
			fmt.Sprintf("%.4f", c.MeanDelay),
			fmt.Sprintf("%.4f", c.MinDelay),
			fmt.Sprintf("%.4f", c.MaxDelay),
		)
	}
	if err := cores.Render(); err != nil {
		return fmt.Errorf("failed to render core table: %w", err)
	}

	printSectionHeader(w, "PER-TASK RESULTS")

	tasks := tablewriter.NewWriter(w)
	tasks.Header("Task", "Core", "Period (µs)", "WCET (µs)", "Jobs", "Misses", "Miss Rate", "Mean Delay", "Max Delay")
	for _, t := range r.Tasks {
		_ = tasks.Append(
			fmt.Sprintf("%d", t.TaskID),
			fmt.Sprintf("%d", t.Core),
			FormatNumber(int64(t.Period)),
			FormatNumber(int64(t.WCET)),
			FormatNumber(t.Jobs),
			FormatNumber(t.Misses),
			FormatPercent(t.MissRate),
			fmt.Sprintf("%.4f", t.MeanDelay),
			fmt.Sprintf("%.4f", t.MaxDelay),
		)
	}
	if err := tasks.Render(); err != nil {
		return fmt.Errorf("failed to render task table: %w", err)
	}

	if len(r.Warnings) > 0 {
		_, _ = fmt.Fprintln(w)
		colorPrintLn(w, Yellow, "⚠️  Scheduling warnings:")
		for _, warn := range r.Warnings {
			colorPrintf(w, Yellow, "  • %v\n", warn)
		}
	}

	_, _ = fmt.Fprintln(w)
	status := Green
	if r.Misses > 0 {
		status = Red
	}
	colorPrintf(w, status, "%s\n", GlobalLine(r))
	return nil
}

// GlobalLine is the one-line run summary.
func GlobalLine(r *harness.Report) string {
	return fmt.Sprintf("Global miss rate: %.2f%%  (misses=%d / jobs=%d)", r.MissRate*100, r.Misses, r.Jobs)
}
