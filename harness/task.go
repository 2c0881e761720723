package harness

import "time"

// runTask is the periodic loop of one task thread. Releases are absolute:
// next advances by one period per job, and an overrun realigns next to now
// instead of releasing back-to-back jobs to catch up.
func (h *Harness) runTask(p *plan, log *TaskLog, w window) {
	agg := h.cores[p.core]
	period := p.periodDuration()
	wcet := float64(p.wcet)
	deadline := float64(p.period)

	next := w.start
	sleepUntil(next)

	for idx := 0; time.Now().Before(w.end); idx++ {
		jobStart := time.Now()
		for _, call := range p.calls {
			call()
		}
		elapsed := float64(time.Since(jobStart)) / float64(time.Microsecond)

		var delay float64
		if p.wcet > 0 {
			delay = elapsed / wcet
		}
		missed := elapsed > deadline

		log.append(Entry{PeriodIndex: idx, DelayRatio: delay, Missed: missed})
		agg.record(delay, missed)
		h.jobs.Add(1)
		if missed {
			h.misses.Add(1)
		}

		next = next.Add(period)
		if now := time.Now(); !now.Before(next) {
			next = now
			continue
		}
		sleepUntil(next)
	}
}

func sleepUntil(t time.Time) {
	if d := time.Until(t); d > 0 {
		time.Sleep(d)
	}
}
