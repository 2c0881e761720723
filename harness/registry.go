package harness

// Registry resolves a fragment name to the body the task thread will call.
type Registry interface {
	Lookup(name string) (func(), bool)
}

// CoreRegistry is implemented by registries whose bodies depend on the core
// the calling task is pinned to (per-core parallel variants). The harness
// prefers it over Lookup when available.
type CoreRegistry interface {
	LookupOnCore(name string, core int) (func(), bool)
}

// Funcs is a Registry backed by a plain map.
type Funcs map[string]func()

func (f Funcs) Lookup(name string) (func(), bool) {
	fn, ok := f[name]
	return fn, ok && fn != nil
}

func resolve(reg Registry, name string, core int) (func(), bool) {
	if cr, ok := reg.(CoreRegistry); ok {
		return cr.LookupOnCore(name, core)
	}
	return reg.Lookup(name)
}
