package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

func (color) Variants() []string { return []string{"red", "green"} }

type point struct {
	X int32 `quill:"x"`
	Y int32 `quill:"y"`
}

type marker struct{}

type shape struct {
	Name    string            `quill:"name"`
	Color   color             `quill:"color"`
	Corners []point           `quill:"corners"`
	Tag     *string           `quill:"tag"`
	Initial rune              `quill:"initial,char"`
	Labels  map[string]uint8  `quill:"labels"`
	Center  [2]float64        `quill:"center"`
	Marker  marker            `quill:"marker"`
	Hidden  int               `quill:"-"`
	Extra   map[string]string `quill:"-"`
	secret  string
}

type node struct {
	Value int   `quill:"value"`
	Next  *node `quill:"next"`
}

func TestTypeOf_Names(t *testing.T) {
	tests := []struct {
		value any
		want  string
	}{
		{true, "bool"},
		{int16(0), "int16"},
		{uint(0), "uint"},
		{"", "string"},
		{[]byte(nil), "bytes"},
		{[]string(nil), "[string]"},
		{map[string]int(nil), "{string: int}"},
		{(*int)(nil), "?int"},
		{[2]bool{}, "(bool, bool)"},
		{struct{}{}, "unit"},
		{marker{}, "marker"},
		{color(""), "color"},
		{point{}, "point"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			typ, err := TypeOf(reflect.TypeOf(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, typ.Name())
		})
	}
}

func TestTypeOf_Unsupported(t *testing.T) {
	_, err := Of(struct{ F func() }{})
	assert.ErrorContains(t, err, "unsupported Go type")

	_, err = Of(nil)
	assert.Error(t, err)
}

func TestOf_BuildDecodeDisplay(t *testing.T) {
	typ, err := Of(&shape{})
	require.NoError(t, err)

	st, ok := typ.(*StructType)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "color", "corners", "tag", "initial", "labels", "center", "marker"}, fieldNames(st.Fields()))

	answers := []string{
		"box",
		"red",
		"yes", "1", "2", "yes", "-3", "4", "no",
		"yes", "wide",
		"b",
		"yes", "depth", "7", "no",
		"0.5", "1.5",
	}
	v, _ := build(t, typ, answers)

	var got shape
	require.NoError(t, Decode(v, &got))

	tag := "wide"
	want := shape{
		Name:    "box",
		Color:   "red",
		Corners: []point{{X: 1, Y: 2}, {X: -3, Y: 4}},
		Tag:     &tag,
		Initial: 'b',
		Labels:  map[string]uint8{"depth": 7},
		Center:  [2]float64{0.5, 1.5},
	}
	assert.Equal(t, want, got)

	out := display(t, typ, got)
	assert.Equal(t, answers, out.Responses())
}

func TestOf_Recursive(t *testing.T) {
	typ, err := Of(node{})
	require.NoError(t, err)

	v, _ := build(t, typ, []string{"1", "yes", "2", "yes", "3", "no"})

	var got node
	require.NoError(t, Decode(v, &got))
	require.NotNil(t, got.Next)
	require.NotNil(t, got.Next.Next)
	assert.Equal(t, 1, got.Value)
	assert.Equal(t, 2, got.Next.Value)
	assert.Equal(t, 3, got.Next.Next.Value)
	assert.Nil(t, got.Next.Next.Next)
}

func TestDecode_Enums(t *testing.T) {
	var c color
	require.NoError(t, Decode(Variant{Name: "green"}, &c))
	assert.Equal(t, color("green"), c)

	var m map[string]any
	require.NoError(t, Decode(Variant{Name: "Circle", Value: 1.5}, &m))
	assert.Equal(t, map[string]any{"Circle": 1.5}, m)

	var keyed map[string]int
	require.NoError(t, Decode([]Entry{{Key: Variant{Name: "Apple"}, Value: Some{Value: 3}}}, &keyed))
	assert.Equal(t, map[string]int{"Apple": 3}, keyed)
}

func TestPlain(t *testing.T) {
	v := map[string]any{
		"opt":   Some{Value: Variant{Name: "Circle", Value: []any{1.5}}},
		"none":  nil,
		"unit":  UnitValue{},
		"color": Variant{Name: "green"},
		"map":   []Entry{{Key: uint8(1), Value: Some{Value: "x"}}},
	}
	assert.Equal(t, map[string]any{
		"opt":   map[string]any{"Circle": []any{1.5}},
		"none":  nil,
		"unit":  map[string]any{},
		"color": "green",
		"map":   map[string]any{"1": "x"},
	}, Plain(v))
}
