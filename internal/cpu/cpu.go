// Package cpu binds goroutines to OS threads, cores and real-time scheduling
// classes. Only linux supports every operation; other platforms lock the
// thread and report the rest as unsupported.
package cpu

import (
	"errors"
	"fmt"
	"runtime"
)

// Priority bounds accepted by SetRealtimePriority.
const (
	MinRealtimePriority = 1
	MaxRealtimePriority = 99
)

var (
	ErrCoreOutOfRange  = errors.New("cpu: core out of range")
	ErrInvalidPriority = errors.New("cpu: invalid real-time priority")
)

// LockThread wires the calling goroutine to its current OS thread.
// The returned function undoes it and should be deferred.
func LockThread() func() {
	runtime.LockOSThread()
	return runtime.UnlockOSThread
}

// NumCPU returns the number of logical CPUs available.
func NumCPU() int {
	return runtime.NumCPU()
}

func checkCore(core int) error {
	if core < 0 || core >= NumCPU() {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrCoreOutOfRange, core, NumCPU())
	}
	return nil
}

func checkPriority(prio int) error {
	if prio < MinRealtimePriority || prio > MaxRealtimePriority {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidPriority, prio, MinRealtimePriority, MaxRealtimePriority)
	}
	return nil
}
