package harness

import (
	"math"
	"sync"
)

// Entry is one job of a task.
type Entry struct {
	PeriodIndex int
	DelayRatio  float64
	Missed      bool
}

// TaskLog is the job history of one task. Only the owning task thread writes
// it while the harness runs.
type TaskLog struct {
	TaskID  int
	Entries []Entry
	misses  int64
}

func newTaskLog(id, capacity int) *TaskLog {
	return &TaskLog{TaskID: id, Entries: make([]Entry, 0, capacity)}
}

func (l *TaskLog) append(e Entry) {
	l.Entries = append(l.Entries, e)
	if e.Missed {
		l.misses++
	}
}

func (l *TaskLog) clone() TaskLog {
	out := TaskLog{TaskID: l.TaskID, misses: l.misses}
	out.Entries = append(make([]Entry, 0, len(l.Entries)), l.Entries...)
	return out
}

// coreAggregate accumulates delay statistics of every task on one core.
// Writers hold mu only for the update.
type coreAggregate struct {
	mu     sync.Mutex
	sum    float64
	min    float64
	max    float64
	count  int64
	jobs   int64
	misses int64
}

func newCoreAggregate() *coreAggregate {
	return &coreAggregate{min: math.MaxFloat64, max: -math.MaxFloat64}
}

func (a *coreAggregate) record(ratio float64, missed bool) {
	a.mu.Lock()
	a.sum += ratio
	a.count++
	if ratio < a.min {
		a.min = ratio
	}
	if ratio > a.max {
		a.max = ratio
	}
	a.jobs++
	if missed {
		a.misses++
	}
	a.mu.Unlock()
}

func (a *coreAggregate) stats(core int) CoreStats {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := CoreStats{Core: core, DelayCount: a.count, Jobs: a.jobs, Misses: a.misses}
	if a.count > 0 {
		s.MeanDelay = a.sum / float64(a.count)
		s.MinDelay = a.min
		s.MaxDelay = a.max
	}
	s.MissRate = ratio(a.misses, a.jobs)
	return s
}

func ratio(n, d int64) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}
