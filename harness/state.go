package harness

import "fmt"

// State is a lifecycle stage of a Harness.
type State int32

const (
	Initialized State = iota
	Armed
	Running
	Draining
	Reported
	Terminal
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Armed:
		return "armed"
	case Running:
		return "running"
	case Draining:
		return "draining"
	case Reported:
		return "reported"
	case Terminal:
		return "terminal"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}
