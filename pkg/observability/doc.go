/*
Package observability provides lifecycle hooks for monitoring turing engines.

Metrics exports Prometheus counters and histograms; LogHooks writes
structured run records to a slog.Logger; Merge fans hooks out so both can
be attached to the same engine.
*/
package observability
