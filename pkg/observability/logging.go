package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
)

// Logging logs every transport call at Debug level.
type Logging struct {
	inner  ports.Requester
	logger *slog.Logger
}

// NewLogging wraps inner. A nil logger discards everything.
func NewLogging(inner ports.Requester, logger *slog.Logger) *Logging {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Logging{inner: inner, logger: logger}
}

func (l *Logging) BeginScope(name string, size int) error {
	l.logger.Debug("begin scope", "name", name, "size", size)
	return l.inner.BeginScope(name, size)
}

func (l *Logging) EndScope() error {
	l.logger.Debug("end scope")
	return l.inner.EndScope()
}

func (l *Logging) Respond(kind domain.RequestKind, label, text string) error {
	l.logger.Debug("respond", "kind", kind, "label", label, "text", text)
	return l.inner.Respond(kind, label, text)
}

func (l *Logging) IsInteractive() bool { return l.inner.IsInteractive() }

func (l *Logging) Request(ctx context.Context, kind domain.RequestKind, label string, variants []string) (string, error) {
	l.logger.Debug("request", "kind", kind, "label", label, "variants", len(variants))
	s, err := l.inner.Request(ctx, kind, label, variants)
	if err != nil {
		if a, ok := domain.AsAction(err); ok {
			l.logger.Debug("action", "label", label, "action", a.String())
		} else {
			l.logger.Debug("request failed", "label", label, "error", err)
		}
		return "", err
	}
	l.logger.Debug("answer", "label", label, "text", s)
	return s, nil
}

func (l *Logging) Report(kind domain.ReportKind, msg string) error {
	level := slog.LevelDebug
	if kind == domain.BadResponse {
		level = slog.LevelInfo
	}
	l.logger.Log(context.Background(), level, "report", "kind", kind, "text", msg)
	return l.inner.Report(kind, msg)
}
