package observer

import (
	"context"
	"errors"
	"time"

	"github.com/dcshock/callchain/chain"
)

type multi []chain.Observer

// Multi returns an observer calling each of obs in order for every event.
// All observers are called; their errors are joined. Nil entries are skipped.
func Multi(obs ...chain.Observer) chain.Observer {
	m := make(multi, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			m = append(m, o)
		}
	}
	return m
}

func (m multi) each(fn func(chain.Observer) error) error {
	var errs []error
	for _, o := range m {
		if err := fn(o); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multi) BeforeChain(ctx context.Context, runID, name string, store map[string]any) error {
	return m.each(func(o chain.Observer) error { return o.BeforeChain(ctx, runID, name, store) })
}

func (m multi) AfterChain(ctx context.Context, runID string, result chain.Result) error {
	return m.each(func(o chain.Observer) error { return o.AfterChain(ctx, runID, result) })
}

func (m multi) BeforeAction(ctx context.Context, runID string, index int, action string, args chain.Args) error {
	return m.each(func(o chain.Observer) error { return o.BeforeAction(ctx, runID, index, action, args) })
}

func (m multi) AfterAction(ctx context.Context, runID string, index int, action string, args chain.Args, output any, actionErr error, duration time.Duration) error {
	return m.each(func(o chain.Observer) error {
		return o.AfterAction(ctx, runID, index, action, args, output, actionErr, duration)
	})
}
