// Package jsonl provides a transport for machine drivers: every transport
// call is emitted as one JSON object per line, and answers are read one per
// line, either as JSON strings or as raw text.
package jsonl

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/quill/pkg/adapters/stdio"
	"github.com/aretw0/quill/pkg/domain"
)

// Event types.
const (
	EventBegin   = "begin"
	EventEnd     = "end"
	EventRespond = "respond"
	EventRequest = "request"
	EventReport  = "report"
	EventValue   = "value"
)

// Event is one line of output.
type Event struct {
	Type     string   `json:"type"`
	Level    int      `json:"level"`
	Name     string   `json:"name,omitempty"`
	Size     *int     `json:"size,omitempty"`
	Kind     string   `json:"kind,omitempty"`
	Label    string   `json:"label,omitempty"`
	Text     string   `json:"text,omitempty"`
	Variants []string `json:"variants,omitempty"`
	Value    any      `json:"value,omitempty"`
}

// Handler implements ports.Requester over JSON lines.
type Handler struct {
	Reader      *bufio.Reader
	Encoder     *json.Encoder
	interactive bool
	level       int
}

// Option configures a Handler.
type Option func(*Handler)

// WithInteractive marks the driver as able to retry rejected answers.
func WithInteractive(v bool) Option {
	return func(h *Handler) {
		h.interactive = v
	}
}

// New creates a handler reading answers from r and writing events to w.
// Nil defaults to the process's stdin and stdout.
func New(r io.Reader, w io.Writer, opts ...Option) *Handler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	h := &Handler{
		Reader:  bufio.NewReader(r),
		Encoder: json.NewEncoder(w),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) emit(e Event) error {
	e.Level = h.level
	if err := h.Encoder.Encode(e); err != nil {
		return &domain.TransportError{Op: e.Type, Err: err}
	}
	return nil
}

func (h *Handler) BeginScope(name string, size int) error {
	e := Event{Type: EventBegin, Name: name}
	if size != domain.NoSize {
		e.Size = &size
	}
	if err := h.emit(e); err != nil {
		return err
	}
	h.level++
	return nil
}

func (h *Handler) EndScope() error {
	if h.level == 0 {
		return fmt.Errorf("%w: end without begin", domain.ErrScopeMismatch)
	}
	h.level--
	return h.emit(Event{Type: EventEnd})
}

func (h *Handler) Respond(kind domain.RequestKind, label, text string) error {
	return h.emit(Event{Type: EventRespond, Kind: kind.String(), Label: label, Text: text})
}

func (h *Handler) IsInteractive() bool { return h.interactive }

func (h *Handler) Request(ctx context.Context, kind domain.RequestKind, label string, variants []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := h.emit(Event{Type: EventRequest, Kind: kind.String(), Label: label, Variants: variants}); err != nil {
		return "", err
	}

	text, err := h.Reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", &domain.TransportError{Op: "request " + label, Err: err}
	}
	text = strings.TrimRight(text, "\r\n")

	// A JSON string is unquoted; anything else is taken as raw text.
	var val string
	if err := json.Unmarshal([]byte(text), &val); err == nil {
		text = val
	}
	return stdio.SanitizeInput(text)
}

func (h *Handler) Report(kind domain.ReportKind, msg string) error {
	return h.emit(Event{Type: EventReport, Kind: kind.String(), Text: msg})
}

// WriteValue emits the finished value as the last event of a build.
func (h *Handler) WriteValue(v any) error {
	return h.emit(Event{Type: EventValue, Value: v})
}
