package chain

import (
	"context"
	"time"
)

// Observer provides pre/post hooks around a chain run and each action in it,
// e.g. for logging or metrics. BeforeChain is called before any action runs;
// BeforeAction/AfterAction surround each invocation (AfterAction also sees the
// arguments, the return value, the error and the duration); AfterChain is
// called with the run result once all hooks have run.
//
// Observer errors are logged by the chain and never change the run outcome.
type Observer interface {
	BeforeChain(ctx context.Context, runID, name string, store map[string]any) error
	AfterChain(ctx context.Context, runID string, result Result) error
	BeforeAction(ctx context.Context, runID string, index int, action string, args Args) error
	AfterAction(ctx context.Context, runID string, index int, action string, args Args, output any, actionErr error, duration time.Duration) error
}
