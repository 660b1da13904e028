package stdio

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsole_Transcript(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(strings.NewReader("apple\r\n  3 \n"), out)
	ctx := context.Background()

	require.NoError(t, c.BeginScope("Order", 2))
	item, err := c.Request(ctx, domain.Datum, "item", nil)
	require.NoError(t, err)
	require.NoError(t, c.BeginScope("count", 1))
	count, err := c.Request(ctx, domain.Datum, "uint32", nil)
	require.NoError(t, err)
	require.NoError(t, c.Report(domain.BadResponse, "Failed to parse"))
	require.NoError(t, c.EndScope())
	require.NoError(t, c.Respond(domain.Datum, "note", "none"))
	require.NoError(t, c.EndScope())

	assert.Equal(t, "apple", item)
	assert.Equal(t, "  3 ", count, "only the line terminator is trimmed")
	assert.Equal(t, strings.Join([]string{
		"Order {",
		"  item:   count {",
		"    uint32:     Failed to parse",
		"  }",
		"  note: none",
		"}",
		"",
	}, "\n"), out.String())
	assert.Zero(t, c.Level())
}

func TestConsole_NotATerminal(t *testing.T) {
	assert.False(t, New(strings.NewReader(""), io.Discard).IsInteractive())
	assert.True(t, New(strings.NewReader(""), io.Discard, WithInteractive(true)).IsInteractive())
}

func TestConsole_EOF(t *testing.T) {
	c := New(strings.NewReader("last"), io.Discard)
	ctx := context.Background()

	v, err := c.Request(ctx, domain.Datum, "a", nil)
	require.NoError(t, err)
	assert.Equal(t, "last", v)

	_, err = c.Request(ctx, domain.Datum, "b", nil)
	var terr *domain.TransportError
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, io.EOF)

	_, err = c.Request(ctx, domain.Datum, "c", nil)
	assert.ErrorIs(t, err, io.EOF)
}

func TestConsole_ContextCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	c := New(r, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Request(ctx, domain.Datum, "string", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConsole_SanitizeRetry(t *testing.T) {
	out := &bytes.Buffer{}
	c := New(strings.NewReader("bad\xff\nok\x1b[31m\n"), out, WithInteractive(true))

	v, err := c.Request(context.Background(), domain.Datum, "string", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok[31m", v)
	assert.Contains(t, out.String(), "Error: input contains invalid UTF-8 sequences. Please try again.")
}

func TestConsole_SanitizeFailsWhenScripted(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "8")
	out := &bytes.Buffer{}
	c := New(strings.NewReader("this line is too long\n123\n"), out, WithInteractive(false))
	ctx := context.Background()

	_, err := c.Request(ctx, domain.Datum, "uint32", nil)
	assert.ErrorIs(t, err, domain.ErrBadResponse)
	assert.ErrorIs(t, err, ErrInputTooLarge)
	assert.NotContains(t, out.String(), "Please try again")

	// the next line stays queued for the next request
	v, err := c.Request(ctx, domain.Datum, "uint32", nil)
	require.NoError(t, err)
	assert.Equal(t, "123", v)
}

func TestConsole_Responder(t *testing.T) {
	out := &bytes.Buffer{}
	c := NewResponder(out, WithReportStyle(func(kind domain.ReportKind, msg string) string {
		return "[" + kind.String() + "] " + msg
	}))

	_, err := c.Request(context.Background(), domain.Datum, "x", nil)
	assert.ErrorIs(t, err, ErrNoInput)
	assert.False(t, c.IsInteractive())

	require.NoError(t, c.Report(domain.Help, "one\ntwo"))
	assert.ErrorIs(t, c.EndScope(), domain.ErrScopeMismatch)
	assert.Equal(t, "[help] one\n[help] two\n", out.String())
}
