package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{`   ____        _ _ _ `, "#818cf8"},
	{`  / __ \__  __(_) | |`, "#a78bfa"},
	{` / / / / / / / / | |`, "#c084fc"},
	{`/ /_/ / /_/ / / /| |`, "#e879f9"},
	{`\___\_\__,_/_/_/ |_|`, "#f472b6"},
}

// PrintBanner writes the quill banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
