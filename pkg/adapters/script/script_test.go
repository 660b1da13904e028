package script

import (
	"context"
	"io"
	"testing"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransport_RecordsCalls(t *testing.T) {
	tr := New([]string{"yes", "42"})
	ctx := context.Background()

	require.NoError(t, tr.BeginScope("seq", domain.NoSize))
	a, err := tr.Request(ctx, domain.Question, "Add element?", []string{"yes", "no"})
	require.NoError(t, err)
	assert.Equal(t, "yes", a)
	require.NoError(t, tr.Respond(domain.Synthetic, "unit", "()"))
	_, err = tr.Request(ctx, domain.Datum, "int32", nil)
	require.NoError(t, err)
	require.NoError(t, tr.Report(domain.BadResponse, "nope"))
	require.NoError(t, tr.EndScope())

	assert.Equal(t, []Entry{
		Begin("seq", domain.NoSize),
		Response(domain.Question, "Add element?", []string{"yes", "no"}, "yes"),
		Response(domain.Synthetic, "unit", nil, "()"),
		Response(domain.Datum, "int32", nil, "42"),
		Report(domain.BadResponse, "nope"),
		End(),
	}, tr.Log())
	assert.Equal(t, []string{"yes", "42"}, tr.Responses())
	assert.Equal(t, []string{"seq"}, tr.ScopeNames())
	assert.Equal(t, []string{"nope"}, tr.Reports(domain.BadResponse))
	assert.Zero(t, tr.Level())
	assert.Zero(t, tr.Remaining())
}

func TestTransport_Exhausted(t *testing.T) {
	tr := New(nil)
	_, err := tr.Request(context.Background(), domain.Datum, "string", nil)

	var te *domain.TransportError
	require.ErrorAs(t, err, &te)
	assert.ErrorIs(t, err, io.EOF)
}

func TestTransport_UnbalancedEnd(t *testing.T) {
	tr := New(nil)
	assert.ErrorIs(t, tr.EndScope(), domain.ErrScopeMismatch)
}

func TestTransport_ContextCancelled(t *testing.T) {
	tr := New([]string{"x"}, Interactive(true))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tr.Request(ctx, domain.Datum, "string", nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, tr.IsInteractive())
	assert.Equal(t, 1, tr.Remaining())
}
