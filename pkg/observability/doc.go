/*
Package observability provides loggers that watch an exploration without
deriving an artifact from it.

It includes lifecycle hooks for ad-hoc callbacks, a structured event log on
top of log/slog, and OpenTelemetry tracing where every node becomes a span
that stays open until its subtree is complete.
*/
package observability
