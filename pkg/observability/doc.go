/*
Package observability provides transport decorators for watching a quill
session: Logging writes every transport call to a slog.Logger, and Metrics
counts them in Prometheus collectors.

Both wrap a ports.Requester and can sit anywhere in the chain. Wrapping the
raw transport observes what the operator actually sees and types.
*/
package observability
