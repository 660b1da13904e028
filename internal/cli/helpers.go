package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/quill/internal/logging"
	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// createLogger configures the application logger. Outside debug mode
// nothing is logged.
func createLogger(w io.Writer, debug, asJSON bool) *slog.Logger {
	if debug {
		return logging.NewWithWriter(w, slog.LevelDebug, asJSON)
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// loadType reads a schema document and selects typeName, or its root type.
func loadType(path, typeName string) (schema.Type, error) {
	doc, err := schema.LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return doc.Type(typeName)
}

// mergeHooks calls every non-nil hook of each set in order.
func mergeHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var merged domain.LifecycleHooks
	for _, h := range sets {
		merged.OnPassStart = chain(merged.OnPassStart, h.OnPassStart)
		merged.OnPassEnd = chain(merged.OnPassEnd, h.OnPassEnd)
		merged.OnAction = chain(merged.OnAction, h.OnAction)
		merged.OnAccepted = chain(merged.OnAccepted, h.OnAccepted)
	}
	return merged
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAction: func(ctx context.Context, e *domain.ActionEvent) {
			logger.Debug("Action", "action", e.Action.String(), "reason", e.Reason)
		},
		OnAccepted: func(ctx context.Context, e *domain.PassEvent) {
			logger.Debug("Value Accepted", "passes", e.Pass)
		},
	}
}

// serveMetrics exposes reg on addr until ctx is done.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// handleExecutionError maps operator cancellation and interrupts to a clean exit.
func handleExecutionError(err error) error {
	if err == nil || domain.IsCancel(err) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
