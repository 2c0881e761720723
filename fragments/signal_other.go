//go:build !linux

package fragments

// signal falls back to a counting channel where eventfd is unavailable.
type signal struct {
	ch chan struct{}
}

func newSignal() (*signal, error) {
	return &signal{ch: make(chan struct{}, queueSize)}, nil
}

func (s *signal) pingPong(rounds int) {
	for range rounds {
		s.ch <- struct{}{}
		<-s.ch
	}
}

func (s *signal) close() error {
	return nil
}
