package observer

import (
	"context"
	"log/slog"
	"time"

	"github.com/dcshock/callchain/chain"
)

// LogObserver logs chain and action events to a slog.Logger. Action starts are
// logged at debug level, action ends at info (or warn on failure), and a
// failed chain at error level.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver returns an observer writing to logger (nil uses slog.Default()).
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

// BeforeChain implements chain.Observer.
func (o *LogObserver) BeforeChain(ctx context.Context, runID, name string, store map[string]any) error {
	o.logger.InfoContext(ctx, "chain started", "run_id", runID, "chain", name, "bound", len(store))
	return nil
}

// AfterChain implements chain.Observer.
func (o *LogObserver) AfterChain(ctx context.Context, runID string, result chain.Result) error {
	attrs := []any{"run_id", runID, "succeeded", result.Succeeded, "started", len(result.Started), "duration", result.Duration}
	if result.HookErr != nil {
		attrs = append(attrs, "hook_err", result.HookErr)
	}
	if result.Err != nil {
		o.logger.ErrorContext(ctx, "chain failed", append(attrs, "err", result.Err)...)
		return nil
	}
	o.logger.InfoContext(ctx, "chain finished", attrs...)
	return nil
}

// BeforeAction implements chain.Observer.
func (o *LogObserver) BeforeAction(ctx context.Context, runID string, index int, action string, args chain.Args) error {
	o.logger.DebugContext(ctx, "action started", "run_id", runID, "index", index, "action", action)
	return nil
}

// AfterAction implements chain.Observer.
func (o *LogObserver) AfterAction(ctx context.Context, runID string, index int, action string, args chain.Args, output any, actionErr error, duration time.Duration) error {
	if actionErr != nil {
		o.logger.WarnContext(ctx, "action failed", "run_id", runID, "index", index, "action", action, "err", actionErr, "duration", duration)
		return nil
	}
	o.logger.InfoContext(ctx, "action finished", "run_id", runID, "index", index, "action", action, "duration", duration)
	return nil
}

var _ chain.Observer = (*LogObserver)(nil)
