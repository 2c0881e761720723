package taskset

import (
	"fmt"
	"strings"
)

// SegmentKind tells which catalog a segment is filled from.
type SegmentKind int

const (
	// ContendedAccess segments (RaF) invoke shared-resource fragments.
	ContendedAccess SegmentKind = iota
	// Uncontended segments (NF) invoke plain fragments.
	Uncontended
)

func (k SegmentKind) String() string {
	switch k {
	case ContendedAccess:
		return "RaF"
	case Uncontended:
		return "NF"
	default:
		return fmt.Sprintf("SegmentKind(%d)", int(k))
	}
}

// MarshalText encodes the kind as "RaF" or "NF".
func (k SegmentKind) MarshalText() ([]byte, error) {
	switch k {
	case ContendedAccess, Uncontended:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("invalid segment kind %d", int(k))
	}
}

// UnmarshalText accepts "RaF" or "NF" (case-insensitive).
func (k *SegmentKind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "raf":
		*k = ContendedAccess
	case "nf":
		*k = Uncontended
	default:
		return fmt.Errorf("invalid segment kind %q", string(text))
	}
	return nil
}

// Segment is a slice of a task's WCET filled with fragments.
// Budget is fixed at creation and Fragments is never modified after filling.
type Segment struct {
	Kind      SegmentKind `json:"type" yaml:"type"`
	Budget    int         `json:"duration" yaml:"duration"`
	Fragments []string    `json:"apis" yaml:"apis"`
}

// Cost sums the catalog cost of the segment's fragments. Names unknown to the
// catalog contribute nothing.
func (s Segment) Cost(c Catalog) float64 {
	var total float64
	for _, name := range s.Fragments {
		cost, _ := c.Cost(name)
		total += cost
	}
	return total
}

// Task is one periodic task of a TaskSet.
//
// Priority is a unique value in 1..N drawn at synthesis time. It is carried in
// the model and the serialized artifact but the execution harness does not
// consume it: every task thread runs at the same real-time priority.
type Task struct {
	ID       int       `json:"id" yaml:"id"`
	Core     int       `json:"core" yaml:"core"`
	Priority int       `json:"priority" yaml:"priority"`
	Period   int       `json:"period" yaml:"period"`
	WCET     int       `json:"wcet" yaml:"wcet"`
	Segments []Segment `json:"segments" yaml:"segments"`
}

// Fragments flattens the fragment names of all segments in execution order.
func (t Task) Fragments() []string {
	n := 0
	for _, s := range t.Segments {
		n += len(s.Fragments)
	}

	names := make([]string, 0, n)
	for _, s := range t.Segments {
		names = append(names, s.Fragments...)
	}
	return names
}

// Meta records the shape of a TaskSet and the parameters it was built from.
type Meta struct {
	Cores        int     `json:"M" yaml:"M"`
	Tasks        int     `json:"N" yaml:"N"`
	Seed         int64   `json:"seed,omitempty" yaml:"seed,omitempty"`
	PeriodFactor int     `json:"period_factor,omitempty" yaml:"period_factor,omitempty"`
	Partition    string  `json:"partition,omitempty" yaml:"partition,omitempty"`
	Params       *Params `json:"params,omitempty" yaml:"params,omitempty"`
}

// TaskSet is the interchange artifact between synthesis and execution.
// It is built once by Synthesize and must not be mutated afterwards.
type TaskSet struct {
	Meta  Meta   `json:"meta" yaml:"meta"`
	Tasks []Task `json:"tasks" yaml:"tasks"`
}

// Cores returns the number of cores M the task set targets.
func (ts *TaskSet) Cores() int { return ts.Meta.Cores }

// Validate checks the structural invariants a harness relies on: the task
// count matches the metadata, ids are unique, every core lies in [0, M) and
// timing values are non-negative.
func (ts *TaskSet) Validate() error {
	if ts == nil {
		return configErr("taskset", "task set is nil")
	}
	if ts.Meta.Cores <= 0 {
		return configErr("M", "core count must be positive, got %d", ts.Meta.Cores)
	}
	if ts.Meta.Tasks != len(ts.Tasks) {
		return configErr("N", "metadata declares %d tasks but %d are present", ts.Meta.Tasks, len(ts.Tasks))
	}

	seen := make(map[int]struct{}, len(ts.Tasks))
	for _, t := range ts.Tasks {
		if _, dup := seen[t.ID]; dup {
			return configErr("id", "duplicate task id %d", t.ID)
		}
		seen[t.ID] = struct{}{}

		if t.Core < 0 || t.Core >= ts.Meta.Cores {
			return configErr("core", "task %d is assigned to core %d outside [0, %d)", t.ID, t.Core, ts.Meta.Cores)
		}
		if t.WCET < 0 || t.Period < 0 {
			return configErr("wcet", "task %d has negative timing (wcet=%d, period=%d)", t.ID, t.WCET, t.Period)
		}
	}
	return nil
}
