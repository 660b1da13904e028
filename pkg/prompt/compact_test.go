package prompt_test

import (
	"context"
	"testing"

	"github.com/aretw0/quill/pkg/adapters/script"
	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
	"github.com/aretw0/quill/pkg/prompt"
	"github.com/aretw0/quill/pkg/walk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompact_SingleFieldStruct(t *testing.T) {
	tr := script.New([]string{"hello"})
	b := walk.NewBuilder(context.Background(), prompt.NewCompact(tr))

	fields, err := b.Struct("SimpleStruct", []string{"my_field"}, func(int) (any, error) {
		return b.String()
	})
	require.NoError(t, err)
	require.NoError(t, b.Close())

	assert.Equal(t, []any{"hello"}, fields)
	assert.Equal(t, []script.Entry{
		script.Response(domain.Datum, "SimpleStruct -> my_field -> string", nil, "hello"),
	}, tr.Log())
}

func TestCompact_EnumField(t *testing.T) {
	tr := script.New([]string{"B"})
	b := walk.NewBuilder(context.Background(), prompt.NewCompact(tr))

	_, err := b.Struct("SimpleStruct", []string{"my_field"}, func(int) (any, error) {
		_, v, err := b.Enum("SimpleEnum", []string{"A", "B"}, func(int) (any, error) { return nil, nil })
		return v, err
	})
	require.NoError(t, err)

	assert.Equal(t, []script.Entry{
		script.Begin("SimpleStruct -> my_field -> SimpleEnum", domain.NoSize),
		script.Response(domain.Datum, "variant", []string{"A", "B"}, "B"),
		script.End(),
	}, tr.Log())
}

func TestCompact_DropsSynthetic(t *testing.T) {
	tr := script.New(nil)
	c := prompt.NewCompact(tr)
	d := walk.NewDisplayer(c)

	require.NoError(t, d.Tuple("Pair", 2, func(i int) error {
		if i == 0 {
			return d.Unit()
		}
		return d.Newtype("Meters", func() error { return d.Float(64, 1.5) })
	}))

	assert.Equal(t, []script.Entry{
		script.Begin("Pair", 2),
		script.Response(domain.Datum, "[2/2] -> Meters -> float64", nil, "1.5"),
		script.End(),
	}, tr.Log())
}

func TestCompact_Underflow(t *testing.T) {
	c := prompt.NewCompact(script.New(nil))
	assert.ErrorIs(t, c.EndScope(), domain.ErrScopeMismatch)
}

func TestAsRequester(t *testing.T) {
	tr := script.New(nil)
	assert.Same(t, tr, prompt.AsRequester(tr))

	r := prompt.AsRequester(displayOnly{tr})
	assert.False(t, r.IsInteractive())
	_, err := r.Request(context.Background(), domain.Datum, "string", nil)
	assert.ErrorIs(t, err, prompt.ErrNotRequester)
	assert.NoError(t, r.Report(domain.Help, "dropped"))
	assert.Empty(t, tr.Reports(domain.Help))
}

type displayOnly struct {
	ports.Responder
}
