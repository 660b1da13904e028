/*
Package quill builds typed values by asking an operator for them, one answer
at a time, and displays existing values the same way.

A value's shape is a schema.Type: built in Go with the schema factories,
parsed from a type expression or a YAML schema document, or derived from a Go
type with schema.Of. The transcript medium is any ports.Requester: a console
(pkg/adapters/stdio), a line editor (pkg/adapters/liner), a JSON lines stream
(pkg/adapters/jsonl) or a fixed list of answers (pkg/adapters/script).

# Sessions

Build composes three layers over the transport. Compaction folds scopes with
a single child into the label of the next line. The meta-command filter turns
answers starting with '!' into operator actions:

	!!              escape a literal answer starting with '!'
	!c[ancel]       cancel the session
	!u[ndo][<n>]    undo the last answer, or the last <n> answers
	!r[estart][<n>] restart from the beginning, or keep the first <n> answers
	!h[elp]         list the variants and the commands

The answer log records every answer. A walk cannot be stepped backwards, so
undo and restart start a new walk that is fed the logged answers before live
prompting resumes. Values rejected by their type are retried the same way.

# Usage

	type Order struct {
		ID    uint32   `quill:"id"`
		Items []string `quill:"items"`
	}

	var order Order
	console := stdio.New(os.Stdin, os.Stdout)
	if err := quill.BuildInto(ctx, console, &order); err != nil {
		log.Fatal(err)
	}
	_ = quill.DisplayValue(stdio.NewResponder(os.Stdout), order)

Sessions can be persisted with WithCheckpoint, so that an interrupted build
resumes where it stopped.
*/
package quill
