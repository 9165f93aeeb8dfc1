package chain

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"
)

// Args holds the keyword arguments of one invocation, keyed by parameter name.
type Args map[string]any

// Arg returns args[name] as a T. It fails with a MissingBindingError when the
// name is absent and with a type error when the value is not a T.
func Arg[T any](args Args, name string) (T, error) {
	var zero T
	v, ok := args[name]
	if !ok {
		return zero, &MissingBindingError{Name: name}
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("arg %q: expected %T, got %T", name, zero, v)
	}
	return t, nil
}

// Func is a plain unit of work. args holds one value per declared parameter.
type Func func(ctx context.Context, args Args) (any, error)

// Hook is an error or cleanup callback. It receives the arguments its action
// was last invoked with.
type Hook func(ctx context.Context, args Args) error

// Callable is anything a Chain accepts: a plain *Unit or an already configured
// *Action. Units are wrapped into Actions when they enter a chain.
type Callable interface {
	callable()
}

// Unit describes a plain function: its display name and doc, the names of its
// parameters in order, and the function itself.
type Unit struct {
	Name   string
	Doc    string
	Params []string
	Fn     Func

	mu     sync.Mutex
	action *Action // set by the first Wrap
}

// Fn returns a Unit for fn taking the named parameters.
func Fn(name string, fn Func, params ...string) *Unit {
	return &Unit{Name: name, Params: params, Fn: fn}
}

func (*Unit) callable() {}

func (u *Unit) wrap() *Action {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.action == nil {
		u.action = NewAction(u)
	}
	return u.action
}

// Action wraps a Unit with its binding metadata and optional hooks.
type Action struct {
	name   string
	doc    string
	params []string
	fn     Func

	inputMapping map[string]string
	outputNames  []string
	onError      Hook
	cleanup      Hook

	lastInput  Args
	lastOutput any
}

// NewAction always wraps u into a new Action. Use Wrap to get the same Action
// back for the same Unit.
func NewAction(u *Unit) *Action {
	return &Action{
		name:         u.Name,
		doc:          u.Doc,
		params:       slices.Clone(u.Params),
		fn:           u.Fn,
		inputMapping: make(map[string]string),
	}
}

func (*Action) callable() {}

// MapArguments merges param -> store name pairs into the input mapping.
func (a *Action) MapArguments(mapping map[string]string) *Action {
	if a.inputMapping == nil {
		a.inputMapping = make(map[string]string, len(mapping))
	}
	maps.Copy(a.inputMapping, mapping)
	return a
}

// Output appends names to the declared output names.
func (a *Action) Output(names ...string) *Action {
	a.outputNames = append(a.outputNames, names...)
	return a
}

// OnError sets the hook run when this action, or one started after it, fails.
func (a *Action) OnError(h Hook) *Action {
	a.onError = h
	return a
}

// Cleanup sets the hook run after every execution this action took part in.
func (a *Action) Cleanup(h Hook) *Action {
	a.cleanup = h
	return a
}

// Clone returns a copy with its own metadata and no invocation history.
func (a *Action) Clone() *Action {
	return &Action{
		name:         a.name,
		doc:          a.doc,
		params:       slices.Clone(a.params),
		fn:           a.fn,
		inputMapping: maps.Clone(a.inputMapping),
		outputNames:  slices.Clone(a.outputNames),
		onError:      a.onError,
		cleanup:      a.cleanup,
	}
}

func (a *Action) Name() string                    { return a.name }
func (a *Action) Doc() string                     { return a.doc }
func (a *Action) Params() []string                { return slices.Clone(a.params) }
func (a *Action) InputMapping() map[string]string { return maps.Clone(a.inputMapping) }
func (a *Action) OutputNames() []string           { return slices.Clone(a.outputNames) }
func (a *Action) LastInput() Args                 { return a.lastInput }
func (a *Action) LastOutput() any                 { return a.lastOutput }
func (a *Action) String() string                  { return a.name }

// storeName is the store key feeding param.
func (a *Action) storeName(param string) string {
	if name, ok := a.inputMapping[param]; ok {
		return name
	}
	return param
}

// ExtractInput builds the arguments for the next call from store.
func (a *Action) ExtractInput(store map[string]any) (Args, error) {
	args := make(Args, len(a.params))
	for _, p := range a.params {
		name := a.storeName(p)
		v, ok := store[name]
		if !ok {
			return nil, &MissingBindingError{Name: name}
		}
		args[p] = v
	}
	return args, nil
}

// Call invokes the wrapped function and records a copy of args and the return
// value for the hooks. A panic in the function is returned as a *PanicError.
func (a *Action) Call(ctx context.Context, args Args) (out any, err error) {
	a.lastInput = maps.Clone(args)
	a.lastOutput = nil
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, &PanicError{Action: a.name, Value: r}
		}
	}()
	out, err = a.fn(ctx, args)
	a.lastOutput = out
	return out, err
}

// ProducedOutputs maps the declared output names to the last return value.
// A single name receives the whole value; several names require a slice or
// array of the same length, bound in declared order. With no output names the
// return value is discarded, whatever it is; it stays available as LastOutput.
func (a *Action) ProducedOutputs() (map[string]any, error) {
	switch len(a.outputNames) {
	case 0:
		return map[string]any{}, nil
	case 1:
		return map[string]any{a.outputNames[0]: a.lastOutput}, nil
	}
	v := reflect.ValueOf(a.lastOutput)
	if !v.IsValid() || (v.Kind() != reflect.Slice && v.Kind() != reflect.Array) {
		return nil, fmt.Errorf("%s: %w: got %T", a.name, ErrNotSequence, a.lastOutput)
	}
	if v.Len() != len(a.outputNames) {
		return nil, &OutputArityError{Action: a.name, Got: v.Len(), Want: len(a.outputNames)}
	}
	out := make(map[string]any, len(a.outputNames))
	for i, name := range a.outputNames {
		out[name] = v.Index(i).Interface()
	}
	return out, nil
}

// runHook calls h with the last input, turning a panic into an error.
func (a *Action) runHook(ctx context.Context, h Hook) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Action: a.name, Value: r}
		}
	}()
	return h(ctx, a.lastInput)
}
