package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown for the terminal.
// Without a usable renderer the markdown is returned unchanged.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}

// Intro is the markdown shown before an interactive session.
func Intro(typeName string, commands []string) string {
	var sb strings.Builder
	sb.WriteString("## Building `" + typeName + "`\n\n")
	sb.WriteString("Answer each prompt in turn. Answers starting with `!` are commands:\n\n")
	sb.WriteString("```\n")
	for _, c := range commands {
		sb.WriteString(c)
		sb.WriteString("\n")
	}
	sb.WriteString("```\n")
	return sb.String()
}
