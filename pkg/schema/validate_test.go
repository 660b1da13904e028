package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Success(t *testing.T) {
	s := Schema{
		"api_key": String(),
		"retries": Int(),
		"timeout": Float64(),
		"enabled": Bool(),
		"tags":    Slice(String()),
		"proxy":   Option(String()),
	}

	data := map[string]any{
		"api_key": "secret123",
		"retries": 3,
		"timeout": 30.5,
		"enabled": true,
		"tags":    []string{"prod", "critical"},
	}

	assert.NoError(t, Validate(s, data))
}

func TestValidate_MissingField(t *testing.T) {
	s := Schema{
		"api_key": String(),
		"retries": Int(),
	}

	err := Validate(s, map[string]any{"api_key": "secret123"})
	require.Error(t, err)

	errs := ValidationErrors(err)
	require.Len(t, errs, 1)
	var verr *ValidationError
	require.ErrorAs(t, errs[0], &verr)
	assert.Equal(t, "retries", verr.Path)
	assert.Equal(t, "required", verr.Reason)
}

func TestValidate_MultipleErrors(t *testing.T) {
	s := Schema{
		"a": Int8(),
		"b": Bool(),
		"c": Char(),
	}

	err := Validate(s, map[string]any{"a": 300, "b": "yes", "c": "xy"})
	require.Error(t, err)
	assert.Len(t, ValidationErrors(err), 3)
	assert.Contains(t, err.Error(), "3 validation errors")
}

func TestValidate_EmptySchema(t *testing.T) {
	assert.NoError(t, Validate(nil, map[string]any{"anything": 1}))
}

func TestStructType_ValidateGoStruct(t *testing.T) {
	type server struct {
		Host string `quill:"host"`
		Port uint16 `quill:"port"`
	}
	typ := Struct("Server",
		Field{Name: "host", Type: String()},
		Field{Name: "port", Type: Uint16()},
	)

	assert.NoError(t, typ.Validate(server{Host: "localhost", Port: 8080}))
	assert.NoError(t, typ.Validate(&server{Host: "localhost"}))
	assert.Error(t, typ.Validate(map[string]any{"host": "localhost", "port": -1}))
	assert.Error(t, typ.Validate(nil))
}
