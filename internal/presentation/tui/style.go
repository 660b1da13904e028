package tui

import (
	"github.com/aretw0/quill/pkg/domain"
	"github.com/muesli/termenv"
)

// ReportStyle colors report lines: bad responses in red, help dimmed.
func ReportStyle() func(domain.ReportKind, string) string {
	p := termenv.ColorProfile()
	return func(kind domain.ReportKind, msg string) string {
		switch kind {
		case domain.BadResponse:
			return termenv.String(msg).Foreground(p.Color("#f87171")).String()
		case domain.Help:
			return termenv.String(msg).Foreground(p.Color("#a78bfa")).String()
		}
		return msg
	}
}
