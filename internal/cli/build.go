package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/quill"
	"github.com/aretw0/quill/internal/presentation/tui"
	"github.com/aretw0/quill/pkg/adapters/jsonl"
	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/observability"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/aretw0/quill/pkg/prompt"
	"github.com/aretw0/quill/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
)

// RunBuild asks for a value of the selected schema type and writes it out.
func RunBuild(ctx context.Context, opts BuildOptions, in io.Reader, out, errOut io.Writer) error {
	logger := createLogger(errOut, opts.Debug, opts.JSON)

	t, err := loadType(opts.SchemaPath, opts.TypeName)
	if err != nil {
		return err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	p, closeTransport, err := newTransport(opts, in, out)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeTransport(); err != nil {
			logger.Warn("Failed to close transport", "err", err)
		}
	}()

	quiet := opts.Quiet || opts.JSON || opts.AnswersPath != ""
	if !quiet && p.IsInteractive() {
		tui.PrintBanner(out, quill.Version)
		if intro, err := tui.NewRenderer()(tui.Intro(t.Name(), prompt.HelpText[1:])); err == nil {
			fmt.Fprint(out, intro)
		}
	}

	hooks := createDebugHooks(logger)
	var mws []quill.Middleware
	if opts.Debug {
		mws = append(mws, func(p ports.Requester) ports.Requester {
			return observability.NewLogging(p, logger)
		})
	}
	if opts.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		metrics := observability.NewMetrics("quill")
		if err := metrics.Register(reg); err != nil {
			return err
		}
		mws = append(mws, metrics.Instrument)
		hooks = mergeHooks(hooks, metrics.Hooks())
		serveMetrics(ctx, opts.MetricsAddr, reg, logger)
	}

	buildOpts := []quill.Option{
		quill.WithLogger(logger),
		quill.WithLifecycleHooks(hooks),
		quill.WithMiddleware(mws...),
	}

	if opts.SessionID != "" {
		mgr, closeStore, err := OpenSessions(opts.Store, logger)
		if err != nil {
			return err
		}
		defer closeStore()

		if opts.Fresh {
			if err := mgr.Delete(ctx, opts.SessionID); err != nil && !errors.Is(err, domain.ErrSessionNotFound) {
				return fmt.Errorf("failed to reset session: %w", err)
			}
		}
		buildOpts = append(buildOpts, quill.WithSession(mgr, opts.SessionID))
		if !quiet {
			printSystemMessage(out, "Session '%s' active.", opts.SessionID)
		}
	}

	value, err := quill.Build(ctx, p, t, buildOpts...)
	if err != nil {
		if domain.IsCancel(err) && !quiet {
			printSystemMessage(out, "Cancelled.")
		}
		return handleExecutionError(err)
	}

	if h, ok := p.(*jsonl.Handler); ok && opts.OutputPath == "" {
		return h.WriteValue(schema.Plain(value))
	}
	return emit(out, opts.OutputPath, value, opts.Format)
}

func emit(out io.Writer, path string, value any, format string) error {
	if path == "" {
		return writeValue(out, value, format)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeValue(f, value, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
