// Package liner provides an interactive console transport with line
// editing, answer history, and tab completion of enum variants.
package liner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/quill/pkg/adapters/stdio"
	"github.com/aretw0/quill/pkg/domain"
	"github.com/peterh/liner"
)

// Editor is the part of *liner.State the transport uses.
type Editor interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
	SetCompleter(f liner.Completer)
}

// Transport is an always-interactive console backed by a line editor.
// Ctrl-C at a prompt cancels the session.
type Transport struct {
	*stdio.Frame

	editor  Editor
	state   *liner.State
	history string
	style   stdio.ReportStyle
}

// Option configures a Transport.
type Option func(*Transport)

// WithHistoryFile loads answer history from path and saves it on Close.
func WithHistoryFile(path string) Option {
	return func(t *Transport) {
		t.history = path
	}
}

// WithReportStyle decorates report lines.
func WithReportStyle(style stdio.ReportStyle) Option {
	return func(t *Transport) {
		t.style = style
	}
}

// New opens the terminal line editor. Close must be called to restore the
// terminal.
func New(opts ...Option) *Transport {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	t := NewWithEditor(state, os.Stdout, opts...)
	t.state = state
	if t.history != "" {
		if f, err := os.Open(t.history); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return t
}

// NewWithEditor creates a transport over any Editor, writing the transcript to w.
func NewWithEditor(editor Editor, w io.Writer, opts ...Option) *Transport {
	t := &Transport{editor: editor}
	for _, opt := range opts {
		opt(t)
	}
	t.Frame = stdio.NewFrame(w, t.style)
	return t
}

// Close saves the history and restores the terminal.
func (t *Transport) Close() error {
	if t.state == nil {
		return nil
	}
	if t.history != "" {
		if f, err := os.Create(t.history); err == nil {
			_, _ = t.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return t.state.Close()
}

func (t *Transport) IsInteractive() bool { return true }

func (t *Transport) Request(ctx context.Context, kind domain.RequestKind, label string, variants []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	t.editor.SetCompleter(completer(variants))
	defer t.editor.SetCompleter(completer(nil))

	for {
		line, err := t.editor.Prompt(t.Prompt(label))
		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			return "", domain.Cancel()
		case err != nil:
			return "", &domain.TransportError{Op: "request " + label, Err: err}
		}

		clean, err := stdio.SanitizeInput(line)
		if err != nil {
			if err := t.Report(domain.BadResponse, fmt.Sprintf("Error: %v. Please try again.", err)); err != nil {
				return "", err
			}
			continue
		}
		if strings.TrimSpace(clean) != "" {
			t.editor.AppendHistory(clean)
		}
		return clean, nil
	}
}

// completer offers the variants that start with the typed text.
func completer(variants []string) liner.Completer {
	return func(line string) []string {
		var out []string
		for _, v := range variants {
			if strings.HasPrefix(v, line) {
				out = append(out, v)
			}
		}
		return out
	}
}
