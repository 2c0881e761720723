//go:build linux

package fragments

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// signal is an eventfd in semaphore mode; every round trip is two syscalls.
type signal struct {
	fd int
}

func newSignal() (*signal, error) {
	fd, err := unix.Eventfd(0, unix.EFD_SEMAPHORE|unix.EFD_CLOEXEC)
	if err != nil {
		return nil, fmt.Errorf("eventfd: %w", err)
	}
	return &signal{fd: fd}, nil
}

func (s *signal) pingPong(rounds int) {
	var one, val [8]byte
	binary.NativeEndian.PutUint64(one[:], 1)

	for range rounds {
		for {
			if _, err := unix.Write(s.fd, one[:]); !errors.Is(err, unix.EINTR) {
				break
			}
		}
		for {
			if _, err := unix.Read(s.fd, val[:]); !errors.Is(err, unix.EINTR) {
				break
			}
		}
	}
}

func (s *signal) close() error {
	if s.fd < 0 {
		return nil
	}
	err := unix.Close(s.fd)
	s.fd = -1
	return err
}
