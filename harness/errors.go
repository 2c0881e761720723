package harness

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedFragment is returned by New when a task references a name
	// the registry cannot resolve.
	ErrUnresolvedFragment = errors.New("unresolved fragment")
	// ErrSchedulingSetup marks a pinning or priority failure on one task
	// thread. It is a warning: the run continues without that guarantee.
	ErrSchedulingSetup = errors.New("scheduling setup failed")
	// ErrThreadCreation aborts a run whose task threads could not all be armed.
	ErrThreadCreation = errors.New("task thread creation failed")
	// ErrJoin aborts a run whose task thread terminated abnormally.
	ErrJoin = errors.New("task thread join failed")

	ErrAlreadyRun  = errors.New("harness already run")
	ErrNotReported = errors.New("harness has no report")
	ErrNilTaskSet  = errors.New("nil task set")
	ErrNilRegistry = errors.New("nil registry")
)

// UnresolvedFragmentError names the task and fragment that failed to resolve.
type UnresolvedFragmentError struct {
	TaskID int
	Name   string
}

func (e *UnresolvedFragmentError) Error() string {
	return fmt.Sprintf("%s: task %d references %q", ErrUnresolvedFragment.Error(), e.TaskID, e.Name)
}

func (e *UnresolvedFragmentError) Unwrap() error { return ErrUnresolvedFragment }

// SchedulingSetupError records which setup step (Op) failed for a task.
type SchedulingSetupError struct {
	TaskID int
	Core   int
	Op     string
	Err    error
}

func (e *SchedulingSetupError) Error() string {
	return fmt.Sprintf("%s: task %d core %d: %s: %v", ErrSchedulingSetup.Error(), e.TaskID, e.Core, e.Op, e.Err)
}

func (e *SchedulingSetupError) Unwrap() []error { return []error{ErrSchedulingSetup, e.Err} }

// ThreadCreationError reports how many task threads reached the barrier.
type ThreadCreationError struct {
	Armed int
	Want  int
	Err   error
}

func (e *ThreadCreationError) Error() string {
	msg := fmt.Sprintf("%s: %d of %d threads armed", ErrThreadCreation.Error(), e.Armed, e.Want)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ThreadCreationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrThreadCreation}
	}
	return []error{ErrThreadCreation, e.Err}
}

// TaskPanicError carries a panic recovered on a task thread.
type TaskPanicError struct {
	TaskID int
	Value  any
	Stack  []byte
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("%s: task %d panic: %v\nstack trace:\n%s", ErrJoin.Error(), e.TaskID, e.Value, e.Stack)
}

func (e *TaskPanicError) Unwrap() error { return ErrJoin }
