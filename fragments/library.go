// Package fragments holds the runtime bodies behind every fragment name a
// task set can reference.
//
// Shared-resource fragments come in pairs. The plain name contends on one
// process-wide object; the parallel name works on a per-core copy of the same
// object so tasks on different cores never touch the same state. Plain
// fragments are short compute kernels with no shared state at all.
package fragments

import (
	"errors"
	"fmt"
	"sort"

	"github.com/utkarsh5026/rtbench/taskset"
)

// DefaultBanks is the number of per-core resource copies used when New is
// given a non-positive count.
const DefaultBanks = 16

// Library resolves fragment names to callable bodies.
type Library struct {
	shared  *bank
	perCore []*bank

	pairs   map[string]pairOp // keyed by both names of a pair
	kernels map[string]func()
}

// New allocates the shared objects and banks per-core copies. Parallel
// variants running on core c use copy c mod banks.
func New(banks int) (*Library, error) {
	if banks <= 0 {
		banks = DefaultBanks
	}

	shared, err := newBank()
	if err != nil {
		return nil, err
	}

	lib := &Library{
		shared:  shared,
		perCore: make([]*bank, 0, banks),
		pairs:   make(map[string]pairOp, 2*len(pairOps)),
		kernels: make(map[string]func(), len(kernels)),
	}

	for range banks {
		b, err := newBank()
		if err != nil {
			_ = lib.Close()
			return nil, err
		}
		lib.perCore = append(lib.perCore, b)
	}

	for _, op := range pairOps {
		lib.pairs[op.shared] = op
		lib.pairs[op.parallel] = op
	}
	for name, fn := range kernels {
		lib.kernels[name] = fn
	}
	return lib, nil
}

// Lookup resolves a name. Parallel variants are bound to the first bank;
// callers that know the executing core should use LookupOnCore.
func (l *Library) Lookup(name string) (func(), bool) {
	return l.LookupOnCore(name, 0)
}

// LookupOnCore resolves a name for a task pinned to core.
func (l *Library) LookupOnCore(name string, core int) (func(), bool) {
	if fn, ok := l.kernels[name]; ok {
		return fn, true
	}

	op, ok := l.pairs[name]
	if !ok {
		return nil, false
	}

	b := l.shared
	if name == op.parallel {
		b = l.bankFor(core)
	}
	run := op.run
	return func() { run(b) }, true
}

func (l *Library) bankFor(core int) *bank {
	if core < 0 {
		core = -core
	}
	return l.perCore[core%len(l.perCore)]
}

// Names lists every resolvable fragment name, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.pairs)+len(l.kernels))
	for name := range l.pairs {
		names = append(names, name)
	}
	for name := range l.kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Covers reports the first catalog entry (either variant) this library
// cannot run.
func (l *Library) Covers(c taskset.Catalog) error {
	for _, name := range c.Names() {
		if _, ok := l.Lookup(name); !ok {
			return fmt.Errorf("fragment %q has no runtime body", name)
		}
	}
	return nil
}

// Close releases kernel objects held by the library.
func (l *Library) Close() error {
	var errs []error
	if l.shared != nil {
		errs = append(errs, l.shared.close())
	}
	for _, b := range l.perCore {
		errs = append(errs, b.close())
	}
	return errors.Join(errs...)
}
