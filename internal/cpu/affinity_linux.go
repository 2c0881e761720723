//go:build linux

package cpu

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// PinToCore restricts the current OS thread to a single CPU core.
// Must be called after LockThread.
func PinToCore(core int) error {
	if err := checkCore(core); err != nil {
		return err
	}

	var mask unix.CPUSet
	mask.Zero()
	mask.Set(core)

	if err := unix.SchedSetaffinity(0, &mask); err != nil { // 0 = current thread
		return fmt.Errorf("sched_setaffinity core %d: %w", core, err)
	}
	return nil
}

// SetRealtimePriority moves the current OS thread into SCHED_FIFO with the
// given static priority. Usually requires CAP_SYS_NICE.
// Must be called after LockThread.
func SetRealtimePriority(prio int) error {
	if err := checkPriority(prio); err != nil {
		return err
	}

	attr := unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   unix.SCHED_FIFO,
		Priority: uint32(prio),
	}
	if err := unix.SchedSetAttr(0, &attr, 0); err != nil {
		return fmt.Errorf("sched_setattr SCHED_FIFO %d: %w", prio, err)
	}
	return nil
}

// AllowedCores lists the cores the current thread may run on.
func AllowedCores() ([]int, error) {
	var mask unix.CPUSet
	if err := unix.SchedGetaffinity(0, &mask); err != nil {
		return nil, fmt.Errorf("sched_getaffinity: %w", err)
	}

	cores := make([]int, 0, mask.Count())
	for i := 0; i < NumCPU() && len(cores) < mask.Count(); i++ {
		if mask.IsSet(i) {
			cores = append(cores, i)
		}
	}
	return cores, nil
}
