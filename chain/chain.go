package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Result is the outcome of one Execute call. Err is the error that aborted the
// run, exactly as the failing action returned it. HookErr joins the errors
// returned by OnError and Cleanup hooks; it never makes a run fail.
type Result struct {
	RunID     string
	Succeeded bool
	Err       error
	HookErr   error
	Started   []string // names of the actions invoked, in start order
	Duration  time.Duration
}

// Chain is an ordered, mutable list of Actions sharing one store of named
// values. Insertion order is execution order. The zero value is ready to use.
type Chain struct {
	Name     string
	Logger   *slog.Logger // nil uses slog.Default()
	Observer Observer     // optional

	actions []*Action
	store   map[string]any
	last    Result
}

// New returns an empty chain.
func New(name string) *Chain {
	return &Chain{Name: name, store: make(map[string]any)}
}

func (c *Chain) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Chain) wrap(cs []Callable) []*Action {
	out := make([]*Action, len(cs))
	for i, v := range cs {
		out[i] = Wrap(v)
	}
	return out
}

// --- store ---

// Set binds name to v in the shared store.
func (c *Chain) Set(name string, v any) {
	if c.store == nil {
		c.store = make(map[string]any)
	}
	c.store[name] = v
}

// Get returns the value bound to name, or a MissingBindingError.
func (c *Chain) Get(name string) (any, error) {
	v, ok := c.store[name]
	if !ok {
		return nil, &MissingBindingError{Name: name}
	}
	return v, nil
}

// Has reports whether name is bound.
func (c *Chain) Has(name string) bool {
	_, ok := c.store[name]
	return ok
}

// Unset removes name from the store.
func (c *Chain) Unset(name string) { delete(c.store, name) }

// Store returns a copy of the shared store.
func (c *Chain) Store() map[string]any { return maps.Clone(c.store) }

// Value returns the value bound to name as a T.
func Value[T any](c *Chain, name string) (T, error) {
	var zero T
	v, err := c.Get(name)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("value %q: expected %T, got %T", name, zero, v)
	}
	return t, nil
}

// --- ordered collection ---
// Indexes out of range panic, as with slices.

// Len returns the number of actions.
func (c *Chain) Len() int { return len(c.actions) }

// At returns the action at index i.
func (c *Chain) At(i int) *Action { return c.actions[i] }

// Actions returns a copy of the action list.
func (c *Chain) Actions() []*Action { return slices.Clone(c.actions) }

// Append wraps and appends each callable.
func (c *Chain) Append(cs ...Callable) {
	c.actions = append(c.actions, c.wrap(cs)...)
}

// Insert wraps v and inserts it at index i (0 <= i <= Len()).
func (c *Chain) Insert(i int, v Callable) {
	c.actions = slices.Insert(c.actions, i, c.wrap([]Callable{v})...)
}

// Replace wraps v and stores it at index i.
func (c *Chain) Replace(i int, v Callable) {
	c.actions[i] = c.wrap([]Callable{v})[0]
}

// ReplaceRange replaces actions [i:j] with the wrapped callables; the number
// of callables may differ from j-i.
func (c *Chain) ReplaceRange(i, j int, cs ...Callable) {
	c.actions = slices.Replace(c.actions, i, j, c.wrap(cs)...)
}

// Delete removes the action at index i.
func (c *Chain) Delete(i int) { c.DeleteRange(i, i+1) }

// DeleteRange removes actions [i:j].
func (c *Chain) DeleteRange(i, j int) {
	c.actions = slices.Delete(c.actions, i, j)
}

// String renders the chain as "a -> b -> c" in execution order.
func (c *Chain) String() string {
	names := make([]string, len(c.actions))
	for i, a := range c.actions {
		names[i] = a.String()
	}
	return strings.Join(names, " -> ")
}

// --- execution ---

// LastResult returns the result of the most recent Execute.
func (c *Chain) LastResult() Result { return c.last }

// LastRunSucceeded reports whether the most recent Execute succeeded.
func (c *Chain) LastRunSucceeded() bool { return c.last.Succeeded }

// LastErr returns the error that aborted the most recent Execute, or nil.
func (c *Chain) LastErr() error { return c.last.Err }

// Execute runs every action in order: it extracts the action's arguments from
// the store, invokes it and merges its outputs into the store, overwriting
// existing names. The first failure (missing binding, action error or panic,
// output arity) stops the run; the actions invoked so far then get their
// OnError hooks called in reverse start order. Cleanup hooks of the invoked
// actions run last, in reverse start order, whether the run failed or not.
//
// Execute never returns an action failure; check the Result (or LastResult).
func (c *Chain) Execute(ctx context.Context) Result {
	if c.store == nil {
		c.store = make(map[string]any)
	}
	runID := uuid.NewString()
	log := c.logger().With("chain", c.Name, "run_id", runID)
	start := time.Now()

	if c.Observer != nil {
		if err := c.Observer.BeforeChain(ctx, runID, c.Name, c.Store()); err != nil {
			log.Warn("observer: before chain", "err", err)
		}
	}

	started, runErr := c.runActions(ctx, runID, log)

	var hookErrs []error
	if runErr != nil {
		log.Error("chain failed", "err", runErr)
		hookErrs = append(hookErrs, unwind(ctx, log, started, "on_error", func(a *Action) Hook { return a.onError })...)
	}
	hookErrs = append(hookErrs, unwind(ctx, log, started, "cleanup", func(a *Action) Hook { return a.cleanup })...)

	names := make([]string, len(started))
	for i, a := range started {
		names[i] = a.Name()
	}
	res := Result{
		RunID:     runID,
		Succeeded: runErr == nil,
		Err:       runErr,
		HookErr:   errors.Join(hookErrs...),
		Started:   names,
		Duration:  time.Since(start),
	}
	c.last = res

	if c.Observer != nil {
		if err := c.Observer.AfterChain(ctx, runID, res); err != nil {
			log.Warn("observer: after chain", "err", err)
		}
	}
	log.Debug("chain finished", "succeeded", res.Succeeded, "duration", res.Duration)
	return res
}

// runActions runs actions until one fails and returns those it invoked.
func (c *Chain) runActions(ctx context.Context, runID string, log *slog.Logger) ([]*Action, error) {
	actions := slices.Clone(c.actions)
	started := make([]*Action, 0, len(actions))
	for i, a := range actions {
		args, err := a.ExtractInput(c.store)
		if err != nil {
			log.Warn("action input", "index", i, "action", a.Name(), "err", err)
			return started, err
		}
		started = append(started, a)
		if c.Observer != nil {
			if err := c.Observer.BeforeAction(ctx, runID, i, a.Name(), args); err != nil {
				log.Warn("observer: before action", "index", i, "action", a.Name(), "err", err)
			}
		}
		t := time.Now()
		out, err := a.Call(ctx, args)
		var outputs map[string]any
		if err == nil {
			outputs, err = a.ProducedOutputs()
		}
		d := time.Since(t)
		if c.Observer != nil {
			if postErr := c.Observer.AfterAction(ctx, runID, i, a.Name(), args, out, err, d); postErr != nil {
				log.Warn("observer: after action", "index", i, "action", a.Name(), "err", postErr)
			}
		}
		if err != nil {
			log.Warn("action failed", "index", i, "action", a.Name(), "err", err, "duration", d)
			return started, err
		}
		maps.Copy(c.store, outputs)
		log.Debug("action done", "index", i, "action", a.Name(), "duration", d)
	}
	return started, nil
}

// unwind runs the hook picked from each started action, most recent first.
// Every hook runs; failures are logged and returned.
func unwind(ctx context.Context, log *slog.Logger, started []*Action, kind string, pick func(*Action) Hook) []error {
	var errs []error
	for _, a := range slices.Backward(started) {
		h := pick(a)
		if h == nil {
			continue
		}
		if err := a.runHook(ctx, h); err != nil {
			log.Error("hook failed", "hook", kind, "action", a.Name(), "err", err)
			errs = append(errs, fmt.Errorf("%s %s: %w", a.Name(), kind, err))
		}
	}
	return errs
}
