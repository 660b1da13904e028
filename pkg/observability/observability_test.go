package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/quill/pkg/adapters/script"
	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/prompt"
	"github.com/aretw0/quill/pkg/walk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPair(t *testing.T, p *walk.Builder) {
	t.Helper()
	_, err := p.Tuple("", 2, func(i int) (any, error) {
		if i == 0 {
			return p.Bool()
		}
		return p.Uint(32)
	})
	require.NoError(t, err)
}

func TestLogging_PassesThrough(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	inner := script.New([]string{"maybe", "true", "7"}, script.Interactive(true))
	l := NewLogging(inner, logger)

	b := walk.NewBuilder(context.Background(), l)
	buildPair(t, b)
	require.NoError(t, b.Close())

	assert.Equal(t, []string{"tuple", "[1/2]", "[2/2]"}, inner.ScopeNames())
	assert.True(t, l.IsInteractive())

	out := buf.String()
	assert.Contains(t, out, "begin scope")
	assert.Contains(t, out, "name=tuple")
	assert.Contains(t, out, "level=INFO msg=report kind=bad_response")
	assert.Contains(t, out, "text=7")
}

func TestLogging_Action(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	l := NewLogging(prompt.NewMeta(script.New([]string{"!u3"})), logger)

	_, err := l.Request(context.Background(), domain.Datum, "string", nil)
	a, ok := domain.AsAction(err)
	require.True(t, ok)
	assert.Equal(t, domain.ActionUndo, a.Kind)
	assert.Contains(t, buf.String(), "action=undo(3)")
}

func TestLogging_NilLogger(t *testing.T) {
	l := NewLogging(script.New(nil), nil)
	assert.NoError(t, l.BeginScope("x", 1))
	assert.NoError(t, l.EndScope())
}

func TestMetrics_Instrument(t *testing.T) {
	m := NewMetrics("quill")
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	inner := script.New([]string{"maybe", "true", "7"}, script.Interactive(true))
	b := walk.NewBuilder(context.Background(), m.Instrument(inner))
	buildPair(t, b)
	require.NoError(t, b.Close())

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Scopes))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Requests.WithLabelValues("datum")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Reports.WithLabelValues("bad_response")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestMetrics_Hooks(t *testing.T) {
	m := NewMetrics("quill")
	hooks := m.Hooks()
	ctx := context.Background()

	hooks.OnPassStart(ctx, &domain.PassEvent{Pass: 1})
	hooks.OnPassStart(ctx, &domain.PassEvent{Pass: 2})
	hooks.OnAction(ctx, &domain.ActionEvent{Action: domain.Action{Kind: domain.ActionUndo, N: 1}})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Passes))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Actions.WithLabelValues("undo")))
}

func TestMetrics_RegisterTwice(t *testing.T) {
	m := NewMetrics("quill")
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))
	assert.Error(t, m.Register(reg))
}
