package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
)

// LabelSeparator joins the names folded into a compound label.
const LabelSeparator = " -> "

type compactFrame struct {
	name    string
	compact bool
}

// Compact folds scopes with exactly one child into the label of whatever
// comes next, so "Order { id { uint32: 7 } }" reads "Order -> id -> uint32: 7".
// Synthetic statements are dropped.
type Compact struct {
	inner  ports.Requester
	frames []compactFrame
}

// NewCompact wraps inner with scope compaction.
func NewCompact(inner ports.Requester) *Compact {
	return &Compact{inner: inner}
}

func (c *Compact) compoundName(name string) string {
	i := len(c.frames)
	for i > 0 && c.frames[i-1].compact {
		i--
	}
	if i == len(c.frames) {
		return name
	}
	names := make([]string, 0, len(c.frames)-i+1)
	for _, f := range c.frames[i:] {
		names = append(names, f.name)
	}
	return strings.Join(append(names, name), LabelSeparator)
}

func (c *Compact) BeginScope(name string, size int) error {
	compact := size == 1
	if !compact {
		if err := c.inner.BeginScope(c.compoundName(name), size); err != nil {
			return err
		}
	}
	c.frames = append(c.frames, compactFrame{name: name, compact: compact})
	return nil
}

func (c *Compact) EndScope() error {
	n := len(c.frames)
	if n == 0 {
		return fmt.Errorf("%w: compact frame underflow", domain.ErrScopeMismatch)
	}
	f := c.frames[n-1]
	c.frames = c.frames[:n-1]
	if f.compact {
		return nil
	}
	return c.inner.EndScope()
}

func (c *Compact) Respond(kind domain.RequestKind, label, text string) error {
	if kind == domain.Synthetic {
		return nil
	}
	return c.inner.Respond(kind, c.compoundName(label), text)
}

func (c *Compact) IsInteractive() bool { return c.inner.IsInteractive() }

func (c *Compact) Request(ctx context.Context, kind domain.RequestKind, label string, variants []string) (string, error) {
	return c.inner.Request(ctx, kind, c.compoundName(label), variants)
}

func (c *Compact) Report(kind domain.ReportKind, msg string) error {
	return c.inner.Report(kind, msg)
}
