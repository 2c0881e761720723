package harness

import (
	"time"

	"github.com/utkarsh5026/rtbench/taskset"
)

// plan is a task compiled for execution: its fragment names already resolved
// to the closures the thread calls in order.
type plan struct {
	id     int
	core   int
	period int
	wcet   int
	calls  []func()
}

func (p *plan) periodDuration() time.Duration {
	return time.Duration(p.period) * time.Microsecond
}

func compile(ts *taskset.TaskSet, reg Registry) ([]*plan, error) {
	plans := make([]*plan, 0, len(ts.Tasks))
	for _, t := range ts.Tasks {
		names := t.Fragments()
		p := &plan{
			id:     t.ID,
			core:   t.Core,
			period: t.Period,
			wcet:   t.WCET,
			calls:  make([]func(), 0, len(names)),
		}

		for _, name := range names {
			fn, ok := resolve(reg, name, t.Core)
			if !ok || fn == nil {
				return nil, &UnresolvedFragmentError{TaskID: t.ID, Name: name}
			}
			p.calls = append(p.calls, fn)
		}
		plans = append(plans, p)
	}
	return plans, nil
}
