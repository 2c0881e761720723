//go:build !linux && !windows

package cpu

import (
	"errors"
	"fmt"
)

// PinToCore is not available here (macOS has no hard affinity).
func PinToCore(core int) error {
	if err := checkCore(core); err != nil {
		return err
	}
	return fmt.Errorf("cpu pinning: %w", errors.ErrUnsupported)
}

// SetRealtimePriority is not available here.
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
