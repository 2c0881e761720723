package harness

import (
	"time"

	"github.com/utkarsh5026/rtbench/taskset"
)

const testRunDuration = 30 * time.Millisecond

func buildTaskSet(cores int, tasks ...taskset.Task) *taskset.TaskSet {
	return &taskset.TaskSet{
		Meta:  taskset.Meta{Cores: cores, Tasks: len(tasks)},
		Tasks: tasks,
	}
}

func task(id, core, period, wcet int, fragments ...string) taskset.Task {
	return taskset.Task{
		ID:       id,
		Core:     core,
		Priority: id + 1,
		Period:   period,
		WCET:     wcet,
		Segments: []taskset.Segment{
			{Kind: taskset.ContendedAccess, Budget: wcet, Fragments: fragments},
		},
	}
}

// testOptions keeps runs short and leaves the test threads in the default
// scheduling class.
func testOptions(extra ...Option) []Option {
	return append([]Option{
		WithStartupMargin(5 * time.Millisecond),
		WithRunDuration(testRunDuration),
		WithRealtimePriority(0),
		WithPinning(false),
	}, extra...)
}

func spin(d time.Duration) func() {
	return func() {
		end := time.Now().Add(d)
		for time.Now().Before(end) {
		}
	}
}

func noop() {}
