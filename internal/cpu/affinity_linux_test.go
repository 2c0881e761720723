//go:build linux

package cpu

import (
	"testing"

	"golang.org/x/sys/unix"
)

func TestPinToCore(t *testing.T) {
	cores, err := AllowedCores()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	target := cores[len(cores)-1]

	done := make(chan error, 1)
	go func() {
		// The thread is discarded on exit without unlocking, so the
		// narrowed mask never leaks to other goroutines.
		LockThread()

		if err := PinToCore(target); err != nil {
			done <- err
			return
		}

		var mask unix.CPUSet
		if err := unix.SchedGetaffinity(0, &mask); err != nil {
			done <- err
			return
		}
		if mask.Count() != 1 || !mask.IsSet(target) {
			t.Errorf("expected mask {%d}, got count %d", target, mask.Count())
		}
		done <- nil
	}()

	if err := <-done; err != nil {
		t.Fatalf("pin failed: %v", err)
	}
}
