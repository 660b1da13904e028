package stdio

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/quill/pkg/domain"
)

// IndentWidth is the number of spaces per open scope.
const IndentWidth = 2

// ReportStyle decorates report lines, e.g. with terminal colors.
type ReportStyle func(kind domain.ReportKind, msg string) string

// Frame writes the indented transcript shared by the console transports:
//
//	Order {
//	  item: apple
//	  count: 3
//	}
type Frame struct {
	w     io.Writer
	level int
	style ReportStyle
}

// NewFrame creates a Frame writing to w.
func NewFrame(w io.Writer, style ReportStyle) *Frame {
	return &Frame{w: w, style: style}
}

// Level returns the number of open scopes.
func (f *Frame) Level() int { return f.level }

func (f *Frame) indent() string {
	return strings.Repeat(" ", IndentWidth*f.level)
}

func (f *Frame) BeginScope(name string, size int) error {
	if _, err := fmt.Fprintf(f.w, "%s%s {\n", f.indent(), name); err != nil {
		return &domain.TransportError{Op: "begin scope", Err: err}
	}
	f.level++
	return nil
}

func (f *Frame) EndScope() error {
	if f.level == 0 {
		return fmt.Errorf("%w: end without begin", domain.ErrScopeMismatch)
	}
	f.level--
	if _, err := fmt.Fprintf(f.w, "%s}\n", f.indent()); err != nil {
		return &domain.TransportError{Op: "end scope", Err: err}
	}
	return nil
}

func (f *Frame) Respond(kind domain.RequestKind, label, text string) error {
	if _, err := fmt.Fprintf(f.w, "%s%s: %s\n", f.indent(), label, text); err != nil {
		return &domain.TransportError{Op: "respond", Err: err}
	}
	return nil
}

// Report writes msg on its own line at the current indentation.
func (f *Frame) Report(kind domain.ReportKind, msg string) error {
	for _, line := range strings.Split(msg, "\n") {
		if f.style != nil {
			line = f.style(kind, line)
		}
		if _, err := fmt.Fprintf(f.w, "%s%s\n", f.indent(), line); err != nil {
			return &domain.TransportError{Op: "report", Err: err}
		}
	}
	return nil
}

// Prompt returns the prompt of a request for label.
func (f *Frame) Prompt(label string) string {
	return f.indent() + label + ": "
}
