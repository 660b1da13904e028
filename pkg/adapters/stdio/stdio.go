package stdio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/aretw0/quill/pkg/domain"
	"golang.org/x/term"
)

// ErrNoInput is returned by Request on a console created by NewResponder.
var ErrNoInput = errors.New("console has no input")

// Console is a line-oriented transport over a reader and a writer.
// Safe for use by one session at a time.
type Console struct {
	*Frame

	reader      *bufio.Reader
	writer      io.Writer
	interactive bool

	inputChan chan inputResult
	startOnce sync.Once
}

type inputResult struct {
	text string
	err  error
}

// Option configures a Console.
type Option func(*consoleConfig)

type consoleConfig struct {
	interactive *bool
	style       ReportStyle
}

// WithInteractive overrides terminal detection.
func WithInteractive(v bool) Option {
	return func(c *consoleConfig) {
		c.interactive = &v
	}
}

// WithReportStyle decorates report lines.
func WithReportStyle(style ReportStyle) Option {
	return func(c *consoleConfig) {
		c.style = style
	}
}

// New creates a console reading answers from r and writing the transcript to
// w. Nil defaults to the process's stdin and stdout. The console is
// interactive when r is a terminal, unless WithInteractive says otherwise.
func New(r io.Reader, w io.Writer, opts ...Option) *Console {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	cfg := &consoleConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	interactive := IsTerminal(r)
	if cfg.interactive != nil {
		interactive = *cfg.interactive
	}
	return &Console{
		Frame:       NewFrame(w, cfg.style),
		reader:      bufio.NewReader(r),
		writer:      w,
		interactive: interactive,
	}
}

// NewResponder creates an output-only console, for displaying values.
func NewResponder(w io.Writer, opts ...Option) *Console {
	if w == nil {
		w = os.Stdout
	}
	cfg := &consoleConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Console{Frame: NewFrame(w, cfg.style), writer: w}
}

// IsTerminal reports whether r is a terminal.
func IsTerminal(r any) bool {
	f, ok := r.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

func (c *Console) IsInteractive() bool { return c.interactive }

func (c *Console) initPump() {
	c.startOnce.Do(func() {
		c.inputChan = make(chan inputResult)
		go c.pump()
	})
}

// pump reads lines in the background so that Request can honor ctx while a
// read is pending.
func (c *Console) pump() {
	for {
		text, err := c.reader.ReadString('\n')
		if text != "" {
			c.inputChan <- inputResult{text: text}
		}
		if err != nil {
			c.inputChan <- inputResult{err: err}
			close(c.inputChan)
			return
		}
	}
}

func (c *Console) Request(ctx context.Context, kind domain.RequestKind, label string, variants []string) (string, error) {
	if c.reader == nil {
		return "", ErrNoInput
	}
	c.initPump()

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if _, err := fmt.Fprint(c.writer, c.Prompt(label)); err != nil {
			return "", &domain.TransportError{Op: "request " + label, Err: err}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case res, ok := <-c.inputChan:
			if !ok {
				res.err = io.EOF
			}
			if res.err != nil {
				return "", &domain.TransportError{Op: "request " + label, Err: res.err}
			}
			clean, err := SanitizeInput(trimNewline(res.text))
			if err != nil {
				if !c.interactive {
					if err := c.Report(domain.BadResponse, fmt.Sprintf("Error: %v.", err)); err != nil {
						return "", err
					}
					return "", fmt.Errorf("%w: %w", domain.ErrBadResponse, err)
				}
				if err := c.Report(domain.BadResponse, fmt.Sprintf("Error: %v. Please try again.", err)); err != nil {
					return "", err
				}
				continue
			}
			return clean, nil
		}
	}
}
