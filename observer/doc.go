// Package observer provides chain.Observer implementations.
//
//   - Log: writes one structured slog record per chain and action event
//     (start, end, duration, error) so runs can be followed in the logs.
//   - Multi: fans every event out to several observers, joining their errors.
//   - Recorder: keeps the events in memory, e.g. for tests or for dumping the
//     last run when something went wrong.
//
// Set one on a chain directly (chain.Chain.Observer) or via
// config.BuildOptions.Observer.
package observer
