package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/aretw0/quill/internal/presentation/tui"
	"github.com/aretw0/quill/pkg/adapters/jsonl"
	"github.com/aretw0/quill/pkg/adapters/liner"
	"github.com/aretw0/quill/pkg/adapters/script"
	"github.com/aretw0/quill/pkg/adapters/stdio"
	"github.com/aretw0/quill/pkg/ports"
)

// historyFile is where the line editor keeps its history.
func historyFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "quill", "history")
}

// newTransport picks the transcript medium for a build. The returned close
// function releases it.
func newTransport(opts BuildOptions, in io.Reader, out io.Writer) (ports.Requester, func() error, error) {
	noop := func() error { return nil }

	switch {
	case opts.AnswersPath != "":
		answers, err := readAnswers(opts.AnswersPath)
		if err != nil {
			return nil, nil, err
		}
		return script.New(answers), noop, nil
	case opts.JSON:
		return jsonl.New(in, out, jsonl.WithInteractive(true)), noop, nil
	case opts.LineEditor:
		var lopts []liner.Option
		if path := historyFile(); path != "" {
			_ = os.MkdirAll(filepath.Dir(path), 0o755)
			lopts = append(lopts, liner.WithHistoryFile(path))
		}
		lopts = append(lopts, liner.WithReportStyle(tui.ReportStyle()))
		t := liner.New(lopts...)
		return t, t.Close, nil
	}
	return stdio.New(in, out, stdio.WithReportStyle(tui.ReportStyle())), noop, nil
}
