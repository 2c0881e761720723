//go:build windows

package cpu

import (
	"errors"
	"fmt"
	"syscall"
)

var (
	kernel32              = syscall.NewLazyDLL("kernel32.dll")
	setThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	getCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// PinToCore restricts the current OS thread to a single CPU core.
// Must be called after LockThread.
func PinToCore(core int) error {
	if err := checkCore(core); err != nil {
		return err
	}

	handle, _, _ := getCurrentThread.Call()

	// Bit N = CPU N
	mask := uintptr(1) << uint(core)

	prevMask, _, err := setThreadAffinityMask.Call(handle, mask)
	if prevMask == 0 {
		return fmt.Errorf("SetThreadAffinityMask core %d: %w", core, err)
	}
	return nil
}

// SetRealtimePriority is not implemented on windows.
func SetRealtimePriority(prio int) error {
	if err := checkPriority(prio); err != nil {
		return err
	}
	return fmt.Errorf("real-time priority: %w", errors.ErrUnsupported)
}

// AllowedCores reports every logical CPU.
func AllowedCores() ([]int, error) {
	cores := make([]int, NumCPU())
	for i := range cores {
		cores[i] = i
	}
	return cores, nil
}
