package cli

import (
	"io"
	"strings"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/internal/presentation/tui"
	"github.com/aretw0/quill/pkg/adapters/jsonl"
	"github.com/aretw0/quill/pkg/adapters/stdio"
	"github.com/aretw0/quill/pkg/ports"
)

// RunShow displays a value file as a value of the selected schema type.
func RunShow(opts ShowOptions, out io.Writer) error {
	t, err := loadType(opts.SchemaPath, opts.TypeName)
	if err != nil {
		return err
	}
	value, err := readValue(opts.ValuePath)
	if err != nil {
		return err
	}

	var r ports.Responder = stdio.NewResponder(out, stdio.WithReportStyle(tui.ReportStyle()))
	if opts.JSON {
		r = jsonl.New(strings.NewReader(""), out)
	}
	return quill.Display(r, t, value)
}
