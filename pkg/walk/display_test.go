package walk

import (
	"context"
	"testing"

	"github.com/aretw0/quill/pkg/adapters/script"
	"github.com/aretw0/quill/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// displayPair states a fixed value: struct Pair { id: uint16, note: Option<String>, raw: bytes }
func displayPair(d *Displayer) error {
	return d.Struct("Pair", []string{"id", "note", "raw"}, func(i int) error {
		switch i {
		case 0:
			return d.Uint(16, 9)
		case 1:
			return d.Option(true, func() error { return d.String("!bang") })
		default:
			return d.Bytes([]byte{1, 2})
		}
	})
}

func buildPair(b *Builder) ([]any, error) {
	return b.Struct("Pair", []string{"id", "note", "raw"}, func(i int) (any, error) {
		switch i {
		case 0:
			return b.Uint(16)
		case 1:
			v, _, err := b.Option(func() (any, error) { return b.String() })
			return v, err
		default:
			return b.Bytes()
		}
	})
}

func TestDisplayer_MirrorsBuilder(t *testing.T) {
	shown := script.New(nil)
	d := NewDisplayer(shown)
	require.NoError(t, displayPair(d))
	require.NoError(t, d.Close())
	assert.Zero(t, shown.Level())

	assert.Equal(t, []string{"9", "yes", "!bang", "yes", "1", "yes", "2", "no"}, shown.Responses())

	built := script.New(shown.Responses())
	b := NewBuilder(context.Background(), built)
	fields, err := buildPair(b)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	assert.Equal(t, []any{uint64(9), "!bang", []byte{1, 2}}, fields)
	assert.Equal(t, shown.ScopeNames(), built.ScopeNames())
	assert.Zero(t, built.Remaining())
}

func TestDisplayer_SequenceSlots(t *testing.T) {
	tr := script.New(nil)
	d := NewDisplayer(tr)
	require.NoError(t, d.Seq(2, func(i int) error { return d.Int(32, int64(i)) }))

	assert.Equal(t, []string{"seq", "[0]", "[1]", "[2]"}, tr.ScopeNames())
	assert.Equal(t, []string{"yes", "0", "yes", "1", "no"}, tr.Responses())
	assert.Zero(t, tr.Level())
}

func TestDisplayer_Enum(t *testing.T) {
	tr := script.New(nil)
	d := NewDisplayer(tr)
	require.NoError(t, d.Enum("Shape", []string{"Dot", "Line"}, 1, func() error {
		return d.Tuple("Line", 2, func(i int) error { return d.Float(64, float64(i)+0.5) })
	}))
	require.NoError(t, d.Enum("Only", []string{"One"}, 0, func() error { return nil }))

	assert.Equal(t, []string{"Line", "0.5", "1.5"}, tr.Responses())
	assert.Equal(t, []string{"Shape", "Line", "[1/2]", "[2/2]", "Only"}, tr.ScopeNames())
	assert.Error(t, d.Enum("Bad", []string{"A"}, 3, func() error { return nil }))
}

func TestDisplayer_UnitShapes(t *testing.T) {
	tr := script.New(nil)
	d := NewDisplayer(tr)
	require.NoError(t, d.Newtype("Wrapper", d.Unit))
	require.NoError(t, d.UnitStruct("Marker"))

	assert.Equal(t, []script.Entry{
		script.Begin("Wrapper", 1),
		script.Response(domain.Synthetic, "unit", nil, "()"),
		script.End(),
		script.Begin("Marker", 1),
		script.Response(domain.Synthetic, "unit", nil, "()"),
		script.End(),
	}, tr.Log())
	assert.Empty(t, tr.Responses())
}
