package chain

import (
	"fmt"
	"slices"
	"sync"
)

// Wrap returns the Action for c. An *Action is returned as is; a *Unit is
// wrapped on first use and the same Action is returned afterwards. The Action
// lives on the Unit, so it is collected together with it.
func Wrap(c Callable) *Action {
	switch v := c.(type) {
	case *Action:
		return v
	case *Unit:
		return v.wrap()
	default:
		panic(fmt.Sprintf("chain: cannot wrap %T", c))
	}
}

// Decorator configures the Action for a Callable and returns it.
type Decorator func(Callable) *Action

// MapArguments returns a Decorator that merges mapping (param -> store name)
// into the wrapped action's input mapping.
func MapArguments(mapping map[string]string) Decorator {
	return func(c Callable) *Action {
		return Wrap(c).MapArguments(mapping)
	}
}

// Output returns a Decorator that appends names to the wrapped action's
// output names.
func Output(names ...string) Decorator {
	return func(c Callable) *Action {
		return Wrap(c).Output(names...)
	}
}

// Registry maps names to actions. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	named map[string]*Action
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{named: make(map[string]*Action)}
}

// Register wraps c and makes it available under the action's name.
// Overwrites any existing registration under that name.
func (r *Registry) Register(c Callable) *Action {
	a := Wrap(c)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.named == nil {
		r.named = make(map[string]*Action)
	}
	r.named[a.Name()] = a
	return a
}

// Get returns the action registered under name.
func (r *Registry) Get(name string) (*Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.named[name]
	return a, ok
}

// MustGet returns the action registered under name, or panics if not found.
func (r *Registry) MustGet(name string) *Action {
	a, ok := r.Get(name)
	if !ok {
		panic(fmt.Sprintf("chain: action %q not registered", name))
	}
	return a
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.named))
	for n := range r.named {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
