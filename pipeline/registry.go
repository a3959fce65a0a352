package pipeline

import (
	"sort"
	"sync"
)

// Registry maps operation names to registered operations. Chains built
// against a registry can extend with any operation it holds, regardless
// of the shape produced by the previous step; shape compatibility is the
// engine's concern.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]*Operation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{ops: make(map[string]*Operation)}
}

// Register adds an operation. It fails with a RegistrationError when the
// operation is invalid or the name is already taken; registered
// operations are never replaced.
func (r *Registry) Register(op *Operation) error {
	if op == nil || op.Name == "" {
		return &RegistrationError{Message: "operation must have a name"}
	}
	if op.Fn == nil {
		return &RegistrationError{Name: op.Name, Message: "operation must have a transform"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ops[op.Name]; exists {
		return &RegistrationError{Name: op.Name, Message: "already registered"}
	}
	r.ops[op.Name] = op
	return nil
}

// MustRegister is Register that panics on error. Catalog packages use it
// from init, where a duplicate name is a programming error.
func (r *Registry) MustRegister(op *Operation) {
	if err := r.Register(op); err != nil {
		panic(err)
	}
}

// Lookup returns the operation for a name and whether it exists.
func (r *Registry) Lookup(name string) (*Operation, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	op, ok := r.ops[name]
	return op, ok
}

// Names returns all registered operation names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry that the ops package
// populates at import time and that New builds chains against.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds an operation to the default registry.
func Register(op *Operation) error {
	return defaultRegistry.Register(op)
}

// MustRegister adds an operation to the default registry, panicking on
// error.
func MustRegister(op *Operation) {
	defaultRegistry.MustRegister(op)
}
