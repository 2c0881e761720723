package render

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/utkarsh5026/rtbench/taskset"
)

// TaskSet prints one row per task with its segment breakdown.
func TaskSet(w io.Writer, ts *taskset.TaskSet) error {
	printSectionHeader(w, fmt.Sprintf("TASK SET (M=%d, N=%d)", ts.Meta.Cores, ts.Meta.Tasks))

	table := tablewriter.NewWriter(w)
	table.Header("Task", "Core", "Priority", "Period (µs)", "WCET (µs)", "RaF Budget", "NF Budget", "Fragments")
	for _, t := range ts.Tasks {
		var raf, nf int
		for _, s := range t.Segments {
			if s.Kind == taskset.ContendedAccess {
				raf += s.Budget
			} else {
				nf += s.Budget
			}
		}
		_ = table.Append(
			fmt.Sprintf("%d", t.ID),
			fmt.Sprintf("%d", t.Core),
			fmt.Sprintf("%d", t.Priority),
			FormatNumber(int64(t.Period)),
			FormatNumber(int64(t.WCET)),
			FormatNumber(int64(raf)),
			FormatNumber(int64(nf)),
			FormatNumber(int64(len(t.Fragments()))),
		)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render task set: %w", err)
	}
	return nil
}

// Catalogs prints both fragment catalogs with their costs.
func Catalogs(w io.Writer, shared, plain taskset.Catalog) error {
	printSectionHeader(w, "FRAGMENT CATALOG", "Costs are measured execution times in µs")

	table := tablewriter.NewWriter(w)
	table.Header("Kind", "Name", "Parallel Variant", "Cost (µs)")
	add := func(kind string, c taskset.Catalog) {
		for _, f := range c {
			para := "-"
			if f.HasParallel() {
				para = f.ParallelName
			}
			_ = table.Append(kind, f.Name, para, fmt.Sprintf("%.2f", f.Cost))
		}
	}
	add(taskset.ContendedAccess.String(), shared)
	add(taskset.Uncontended.String(), plain)

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render catalog: %w", err)
	}
	return nil
}
