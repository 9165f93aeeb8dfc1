package observer

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dcshock/callchain/chain"
)

// Event is one observed hook call.
type Event struct {
	Kind     string // before_chain, after_chain, before_action, after_action
	RunID    string
	Index    int    // action index; -1 for chain events
	Action   string // action name, or chain name for before_chain
	Output   any
	Err      error
	Duration time.Duration
}

func (e Event) String() string {
	if e.Index < 0 {
		return e.Kind
	}
	return fmt.Sprintf("%s:%d:%s", e.Kind, e.Index, e.Action)
}

// Recorder keeps every event in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

func (r *Recorder) add(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// BeforeChain implements chain.Observer.
func (r *Recorder) BeforeChain(ctx context.Context, runID, name string, store map[string]any) error {
	r.add(Event{Kind: "before_chain", RunID: runID, Index: -1, Action: name})
	return nil
}

// AfterChain implements chain.Observer.
func (r *Recorder) AfterChain(ctx context.Context, runID string, result chain.Result) error {
	r.add(Event{Kind: "after_chain", RunID: runID, Index: -1, Err: result.Err, Duration: result.Duration})
	return nil
}

// BeforeAction implements chain.Observer.
func (r *Recorder) BeforeAction(ctx context.Context, runID string, index int, action string, args chain.Args) error {
	r.add(Event{Kind: "before_action", RunID: runID, Index: index, Action: action})
	return nil
}

// AfterAction implements chain.Observer.
func (r *Recorder) AfterAction(ctx context.Context, runID string, index int, action string, args chain.Args, output any, actionErr error, duration time.Duration) error {
	r.add(Event{Kind: "after_action", RunID: runID, Index: index, Action: action, Output: output, Err: actionErr, Duration: duration})
	return nil
}

var _ chain.Observer = (*Recorder)(nil)
