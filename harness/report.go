package harness

import "time"

// CoreStats summarizes every job executed on one core. A core without jobs
// reports zero for every field.
type CoreStats struct {
	Core       int
	MeanDelay  float64
	MinDelay   float64
	MaxDelay   float64
	DelayCount int64
	Jobs       int64
	Misses     int64
	MissRate   float64
}

// TaskStats summarizes the jobs of one task.
type TaskStats struct {
	TaskID    int
	Core      int
	Period    int
	WCET      int
	Jobs      int64
	Misses    int64
	MissRate  float64
	MeanDelay float64
	MaxDelay  float64
}

// Report is the outcome of a completed run. Rates are fractions in [0, 1].
type Report struct {
	Start    time.Time
	End      time.Time
	Cores    []CoreStats
	Tasks    []TaskStats
	Jobs     int64
	Misses   int64
	MissRate float64
	Warnings []error
}

// Duration is the measurement window length.
func (r *Report) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func taskStats(p *plan, log *TaskLog) TaskStats {
	s := TaskStats{
		TaskID: p.id,
		Core:   p.core,
		Period: p.period,
		WCET:   p.wcet,
		Jobs:   int64(len(log.Entries)),
		Misses: log.misses,
	}

	var sum float64
	for _, e := range log.Entries {
		sum += e.DelayRatio
		s.MaxDelay = max(s.MaxDelay, e.DelayRatio)
	}
	if s.Jobs > 0 {
		s.MeanDelay = sum / float64(s.Jobs)
	}
	s.MissRate = ratio(s.Misses, s.Jobs)
	return s
}

func (h *Harness) buildReport(w window, warnings []error) *Report {
	r := &Report{
		Start:    w.start,
		End:      w.end,
		Cores:    make([]CoreStats, len(h.cores)),
		Tasks:    make([]TaskStats, len(h.plans)),
		Warnings: warnings,
	}

	for core, agg := range h.cores {
		r.Cores[core] = agg.stats(core)
		r.Jobs += r.Cores[core].Jobs
		r.Misses += r.Cores[core].Misses
	}
	for i, p := range h.plans {
		r.Tasks[i] = taskStats(p, h.logs[i])
	}
	r.MissRate = ratio(r.Misses, r.Jobs)
	return r
}
