package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"string", "string"},
		{"byte", "uint8"},
		{"float", "float64"},
		{"?int32", "?int32"},
		{"[string]", "[string]"},
		{"[[char]]", "[[char]]"},
		{"{string: uint16}", "{string: uint16}"},
		{"( int ,  bool )", "(int, bool)"},
		{"()", "unit"},
		{"?[{identifier: ?bytes}]", "?[{identifier: ?bytes}]"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			typ, err := ParseType(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, typ.Name())
		})
	}
}

func TestParseType_Errors(t *testing.T) {
	for _, expr := range []string{"", "[int", "{string uint8}", "(int,", "Person", "int]"} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseType(expr)
			assert.Error(t, err)
		})
	}
}

func TestRegistry_ParseRefs(t *testing.T) {
	reg := NewRegistry()
	typ, err := reg.Parse("[Person]")
	require.NoError(t, err)
	assert.Equal(t, "[Person]", typ.Name())

	reg.Define("People", typ)
	assert.ErrorContains(t, reg.Check(), `undefined type "Person"`)

	reg.Define("Person", Struct("Person", Field{Name: "name", Type: String()}))
	require.NoError(t, reg.Check())

	v, _ := build(t, typ, []string{"yes", "Ada", "no"})
	assert.Equal(t, []any{map[string]any{"name": "Ada"}}, v)
}

func TestRegistry_Recursive(t *testing.T) {
	reg := NewRegistry()
	reg.Define("List", Struct("List",
		Field{Name: "head", Type: Int()},
		Field{Name: "tail", Type: Option(reg.Ref("List"))},
	))
	require.NoError(t, reg.Check())
	assert.Equal(t, []string{"List"}, reg.Names())

	list, ok := reg.Lookup("List")
	require.True(t, ok)

	v := roundTrip(t, list,
		[]string{"1", "yes", "2", "no"},
		[]string{"List", "head", "tail", "option", "List", "head", "tail", "option"},
	)
	assert.Equal(t, map[string]any{
		"head": 1,
		"tail": Some{Value: map[string]any{"head": 2, "tail": nil}},
	}, v)
}

func TestParseTypeMap(t *testing.T) {
	s, err := ParseTypeMap(map[string]string{
		"api_key": "string",
		"retries": "int",
		"tags":    "[string]",
	})
	require.NoError(t, err)
	require.Len(t, s, 3)
	assert.Equal(t, "[string]", s["tags"].Name())

	_, err = ParseTypeMap(map[string]string{"bad": "widget"})
	assert.ErrorContains(t, err, "field bad")
}
