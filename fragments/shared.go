package fragments

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

const (
	lockRounds   = 100
	queueRounds  = 50
	signalRounds = 10
	queueSize    = 1024
)

// bank is one copy of every shared resource. Hot fields are padded apart so
// neighbouring banks do not share cache lines.
type bank struct {
	sem     *semaphore.Weighted
	semSink int64
	_       [56]byte

	mu     sync.Mutex
	muSink int64
	_      [56]byte

	queue chan int

	spin     spinLock
	spinSink int64
	_        [56]byte

	rw     sync.RWMutex
	rwSink int64
	_      [56]byte

	counter atomic.Int64
	_       [56]byte

	signal *signal
}

func newBank() (*bank, error) {
	sig, err := newSignal()
	if err != nil {
		return nil, err
	}
	return &bank{
		sem:    semaphore.NewWeighted(1),
		queue:  make(chan int, queueSize),
		signal: sig,
	}, nil
}

func (b *bank) close() error {
	return b.signal.close()
}

// semaphoreRounds guards an increment with a binary semaphore.
func (b *bank) semaphoreRounds() {
	ctx := context.Background()
	for range lockRounds {
		// Acquire only fails on a done context.
		_ = b.sem.Acquire(ctx, 1)
		b.semSink++
		b.sem.Release(1)
	}
}

func (b *bank) mutexRounds() {
	for range lockRounds {
		b.mu.Lock()
		b.muSink++
		b.mu.Unlock()
	}
}

// queueRoundTrips pushes two values and pops two back through a bounded
// blocking queue.
func (b *bank) queueRoundTrips() {
	for i := range queueRounds {
		b.queue <- i
		b.queue <- i + 1
		<-b.queue
		<-b.queue
	}
}

func (b *bank) spinRounds() {
	for range lockRounds {
		b.spin.Lock()
		b.spinSink++
		b.spin.Unlock()
	}
}

// readLockRounds only ever takes the read side, so sharers proceed together.
func (b *bank) readLockRounds() {
	var x int64
	for range lockRounds {
		b.rw.RLock()
		x += b.rwSink
		b.rw.RUnlock()
	}
	runtime.KeepAlive(x)
}

func (b *bank) signalRoundTrips() {
	b.signal.pingPong(signalRounds)
}

func (b *bank) atomicAdds() {
	for range lockRounds {
		b.counter.Add(1)
	}
}

type spinLock struct {
	held atomic.Bool
}

func (s *spinLock) Lock() {
	for !s.held.CompareAndSwap(false, true) {
	}
}

func (s *spinLock) Unlock() {
	s.held.Store(false)
}

type pairOp struct {
	shared   string
	parallel string
	run      func(*bank)
}

var pairOps = []pairOp{
	{"API_fragment0", "API_para_fragment0", (*bank).semaphoreRounds},
	{"API_fragment1", "API_para_fragment1", (*bank).mutexRounds},
	{"API_fragment2", "API_para_fragment2", (*bank).queueRoundTrips},
	{"API_fragment3", "API_para_fragment3", (*bank).spinRounds},
	{"API_fragment4", "API_para_fragment4", (*bank).readLockRounds},
	{"API_fragment5", "API_para_fragment5", (*bank).signalRoundTrips},
	// No catalog lists the atomic pair; it is reachable through Lookup and
	// the benchmarks only.
	{"API_fragment6", "API_para_fragment6", (*bank).atomicAdds},
}
