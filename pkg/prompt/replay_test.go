package prompt_test

import (
	"context"
	"testing"

	"github.com/aretw0/quill/pkg/adapters/script"
	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ask(t *testing.T, r *prompt.Replay) string {
	t.Helper()
	s, err := r.Request(context.Background(), domain.Datum, "string", nil)
	require.NoError(t, err)
	return s
}

func TestReplay_RecordsAnswers(t *testing.T) {
	tr := script.New([]string{"a", "b", "c"}, script.Interactive(true))
	r := prompt.NewReplay(tr)
	assert.Equal(t, prompt.ModeDisabled, r.Mode())

	ask(t, r)
	assert.Empty(t, r.Entries(), "nothing is logged while disabled")

	r.Record()
	ask(t, r)
	require.NoError(t, r.Respond(domain.Synthetic, "unit", "()"))
	require.NoError(t, r.Respond(domain.Datum, "string", "stated"))
	ask(t, r)
	assert.Equal(t, []string{"b", "stated", "c"}, r.Entries())

	require.NoError(t, r.Report(domain.BadResponse, "rejected"))
	assert.Equal(t, []string{"b", "stated"}, r.Entries())

	require.NoError(t, r.Report(domain.Help, "info"))
	assert.Equal(t, []string{"b", "stated"}, r.Entries())
}

func TestReplay_UndoAndRestart(t *testing.T) {
	r := prompt.NewReplay(script.New(nil))
	r.Seed([]string{"1", "2", "3", "4"})

	r.Undo(1)
	assert.Equal(t, []string{"1", "2", "3"}, r.Entries())
	r.RestartFrom(5)
	assert.Equal(t, []string{"1", "2", "3"}, r.Entries())
	r.RestartFrom(1)
	assert.Equal(t, []string{"1"}, r.Entries())
	r.Undo(10)
	assert.Empty(t, r.Entries())
}

func TestReplay_FeedsLogBack(t *testing.T) {
	tr := script.New([]string{"live"}, script.Interactive(true))
	r := prompt.NewReplay(tr)
	r.Seed([]string{"x", "y"})

	require.NoError(t, r.Replay())
	assert.Equal(t, prompt.ModeReplaying, r.Mode())
	assert.False(t, r.IsInteractive())
	assert.Equal(t, 2, r.Pending())

	assert.Equal(t, "x", ask(t, r))
	assert.Equal(t, "y", ask(t, r))
	assert.Equal(t, "live", ask(t, r))
	assert.Equal(t, prompt.ModeRecording, r.Mode())
	assert.True(t, r.IsInteractive())

	assert.Equal(t, []string{"x", "y", "live"}, r.Entries())
	assert.Equal(t, []script.Entry{
		script.Response(domain.Datum, "string", nil, "x"),
		script.Response(domain.Datum, "string", nil, "y"),
		script.Response(domain.Datum, "string", nil, "live"),
	}, tr.Log())
}

func TestReplay_CannotReplay(t *testing.T) {
	r := prompt.NewReplay(script.New(nil))
	assert.ErrorIs(t, r.Replay(), domain.ErrCannotReplay)

	r.Seed([]string{"x"})
	require.NoError(t, r.Replay())
	assert.ErrorIs(t, r.Replay(), domain.ErrCannotReplay)

	r.Reset()
	assert.Equal(t, prompt.ModeDisabled, r.Mode())
	assert.ErrorIs(t, r.Replay(), domain.ErrCannotReplay)
}

func TestReplay_Abandon(t *testing.T) {
	r := prompt.NewReplay(script.New(nil))
	r.Seed([]string{"a", "b", "c"})
	require.NoError(t, r.Replay())
	ask(t, r)

	r.Abandon()
	assert.Equal(t, prompt.ModeRecording, r.Mode())
	assert.Zero(t, r.Pending())
	assert.Equal(t, []string{"a"}, r.Entries())

	r.Abandon()
	assert.Equal(t, []string{"a"}, r.Entries())
}

func TestReplay_Observer(t *testing.T) {
	var seen [][]string
	r := prompt.NewReplay(script.New([]string{"a", "b"}), prompt.WithObserver(func(entries []string) {
		seen = append(seen, entries)
	}))

	r.Record()
	ask(t, r)
	ask(t, r)
	r.Undo(1)

	assert.Equal(t, [][]string{nil, {"a"}, {"a", "b"}, {"a"}}, seen)
}
