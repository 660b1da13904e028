package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
)

// HelpText is reported, one line at a time, when the operator asks for help.
var HelpText = []string{
	"Quill Meta-Command Reference: [optional] <argument>",
	"  !!              - Escape responses beginning with an exclamation mark",
	"  !c[ancel]       - Cancel the session",
	"  !u[ndo][<n>]    - Undo the previous or the last <n> responses",
	"  !r[estart][<n>] - Restart from the beginning or from the <n>th response",
	"  !h[elp]         - This message",
}

const badCommand = "Bad user action (try !help for help)"

// Meta interprets answers starting with '!' as meta-commands.
type Meta struct {
	inner ports.Requester
}

// NewMeta wraps inner with meta-command handling.
func NewMeta(inner ports.Requester) *Meta {
	return &Meta{inner: inner}
}

func (m *Meta) BeginScope(name string, size int) error { return m.inner.BeginScope(name, size) }

func (m *Meta) EndScope() error { return m.inner.EndScope() }

// Respond escapes statements starting with '!' so that a displayed transcript
// can be fed back as answers.
func (m *Meta) Respond(kind domain.RequestKind, label, text string) error {
	if strings.HasPrefix(text, "!") {
		text = "!" + text
	}
	return m.inner.Respond(kind, label, text)
}

func (m *Meta) IsInteractive() bool { return m.inner.IsInteractive() }

func (m *Meta) Report(kind domain.ReportKind, msg string) error { return m.inner.Report(kind, msg) }

// Request asks inner for an answer. Control commands surface as an
// *domain.ActionError; help and unknown commands are reported and the
// question is asked again.
func (m *Meta) Request(ctx context.Context, kind domain.RequestKind, label string, variants []string) (string, error) {
	for {
		s, err := m.inner.Request(ctx, kind, label, variants)
		if err != nil {
			return "", err
		}
		if !strings.HasPrefix(s, "!") {
			return s, nil
		}
		if strings.HasPrefix(s, "!!") {
			return s[1:], nil
		}

		if err := m.command(s, variants); err != nil {
			return "", err
		}
		if !m.inner.IsInteractive() {
			return "", domain.ErrBadResponse
		}
	}
}

// command runs a meta-command. It returns the action to raise, or nil once
// the command has been answered with a report.
func (m *Meta) command(s string, variants []string) error {
	name := strings.TrimRight(s, "0123456789")
	arg, hasArg, ok := parseArg(s[len(name):])

	switch {
	case !ok:
	case (name == "!c" || name == "!cancel") && !hasArg:
		return domain.Cancel()
	case name == "!u" || name == "!undo":
		if !hasArg {
			arg = 1
		}
		return domain.Undo(arg)
	case name == "!r" || name == "!restart":
		return domain.Restart(arg)
	case (name == "!h" || name == "!help") && !hasArg:
		if err := m.inner.Report(domain.Help, "Variants are: "+formatVariants(variants)); err != nil {
			return err
		}
		for _, line := range HelpText {
			if err := m.inner.Report(domain.Help, line); err != nil {
				return err
			}
		}
		return nil
	}
	return m.inner.Report(domain.BadResponse, badCommand)
}

// parseArg parses a decimal command argument. ok is false when the digits overflow.
func parseArg(digits string) (n int, present, ok bool) {
	if digits == "" {
		return 0, false, true
	}
	v, err := strconv.ParseUint(digits, 10, strconv.IntSize-1)
	if err != nil {
		return 0, true, false
	}
	return int(v), true, true
}

func formatVariants(variants []string) string {
	quoted := make([]string, len(variants))
	for i, v := range variants {
		quoted[i] = strconv.Quote(v)
	}
	return fmt.Sprintf("[%s]", strings.Join(quoted, ", "))
}
