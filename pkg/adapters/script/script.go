// Package script provides a transport that answers requests from a fixed list
// and records every call it receives. It backs unattended sessions (answers
// loaded from a file) and doubles as the transcript probe in tests.
package script

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/quill/pkg/domain"
)

// EntryKind identifies a recorded call.
type EntryKind int

const (
	EntryBeginScope EntryKind = iota
	EntryEndScope
	EntryResponse
	EntryReport
)

// Entry is one recorded transport call.
type Entry struct {
	Kind       EntryKind
	Name       string // scope name
	Size       int    // scope size hint
	Request    domain.RequestKind
	Label      string
	Variants   []string
	Text       string // answer text or report message
	ReportKind domain.ReportKind
}

// Begin builds the entry recorded for BeginScope.
func Begin(name string, size int) Entry {
	return Entry{Kind: EntryBeginScope, Name: name, Size: size}
}

// End builds the entry recorded for EndScope.
func End() Entry { return Entry{Kind: EntryEndScope} }

// Response builds the entry recorded for Respond or an answered Request.
func Response(kind domain.RequestKind, label string, variants []string, text string) Entry {
	return Entry{Kind: EntryResponse, Request: kind, Label: label, Variants: variants, Text: text}
}

// Report builds the entry recorded for Report.
func Report(kind domain.ReportKind, msg string) Entry {
	return Entry{Kind: EntryReport, ReportKind: kind, Text: msg}
}

// Transport answers requests from a fixed list of answers.
type Transport struct {
	answers     []string
	pos         int
	interactive bool
	level       int
	log         []Entry
}

// Option configures a Transport.
type Option func(*Transport)

// Interactive makes the transport report itself as interactive, so rejected
// answers are asked for again instead of failing the session.
func Interactive(v bool) Option {
	return func(t *Transport) {
		t.interactive = v
	}
}

// New creates a transport that hands out answers in order.
func New(answers []string, opts ...Option) *Transport {
	t := &Transport{answers: append([]string(nil), answers...)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transport) BeginScope(name string, size int) error {
	t.level++
	t.log = append(t.log, Begin(name, size))
	return nil
}

func (t *Transport) EndScope() error {
	if t.level == 0 {
		return fmt.Errorf("%w: end without begin", domain.ErrScopeMismatch)
	}
	t.level--
	t.log = append(t.log, End())
	return nil
}

func (t *Transport) Respond(kind domain.RequestKind, label, text string) error {
	t.log = append(t.log, Response(kind, label, nil, text))
	return nil
}

func (t *Transport) IsInteractive() bool { return t.interactive }

func (t *Transport) Request(ctx context.Context, kind domain.RequestKind, label string, variants []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if t.pos >= len(t.answers) {
		return "", &domain.TransportError{Op: "request " + label, Err: io.EOF}
	}
	answer := t.answers[t.pos]
	t.pos++
	t.log = append(t.log, Response(kind, label, variants, answer))
	return answer, nil
}

func (t *Transport) Report(kind domain.ReportKind, msg string) error {
	t.log = append(t.log, Report(kind, msg))
	return nil
}

// Log returns the recorded calls.
func (t *Transport) Log() []Entry { return t.log }

// Level returns the number of scopes currently open.
func (t *Transport) Level() int { return t.level }

// Remaining returns the number of answers not yet handed out.
func (t *Transport) Remaining() int { return len(t.answers) - t.pos }

// Responses returns the text of every recorded non-synthetic response, in
// order. Feeding them back as answers rebuilds the same value.
func (t *Transport) Responses() []string {
	var out []string
	for _, e := range t.log {
		if e.Kind == EntryResponse && e.Request != domain.Synthetic {
			out = append(out, e.Text)
		}
	}
	return out
}

// ScopeNames returns the names of every scope opened, in order.
func (t *Transport) ScopeNames() []string {
	var out []string
	for _, e := range t.log {
		if e.Kind == EntryBeginScope {
			out = append(out, e.Name)
		}
	}
	return out
}

// Reports returns the messages of every recorded report of the given kind.
func (t *Transport) Reports(kind domain.ReportKind) []string {
	var out []string
	for _, e := range t.log {
		if e.Kind == EntryReport && e.ReportKind == kind {
			out = append(out, e.Text)
		}
	}
	return out
}
