package schema

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// Decode stores a built value into dst, which must be a pointer. Struct
// fields are matched by their `quill` tag, like in TypeOf.
func Decode(value any, dst any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.DecodeHookFuncType(plainHook),
		TagName:    "quill",
		Result:     dst,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(value); err != nil {
		return fmt.Errorf("failed to decode value: %w", err)
	}
	return nil
}

// plainHook rewrites the value types of this package into plain Go values
// before mapstructure sees them.
func plainHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from == to {
		return data, nil
	}
	switch v := data.(type) {
	case Some:
		return v.Value, nil
	case UnitValue:
		return map[string]any{}, nil
	case Variant:
		if v.Value == nil {
			return v.Name, nil
		}
		return map[string]any{v.Name: v.Value}, nil
	case []Entry:
		m := make(map[any]any, len(v))
		for _, e := range v {
			m[plain(e.Key)] = e.Value
		}
		return m, nil
	}
	return data, nil
}

// plain unwraps a map key so that it can be hashed.
func plain(key any) any {
	switch k := key.(type) {
	case Some:
		return plain(k.Value)
	case Variant:
		if k.Value == nil {
			return k.Name
		}
	case UnitValue:
		return struct{}{}
	}
	if rv := reflect.ValueOf(key); rv.IsValid() && !rv.Type().Comparable() {
		return fmt.Sprint(key)
	}
	return key
}

// Plain rewrites a built value into plain data for encoders such as
// encoding/json and yaml.v3: options become their value or nil, enums become
// the variant name or a single-key map, and maps become map[string]any.
// The result displays as the same value.
func Plain(value any) any {
	switch v := value.(type) {
	case Some:
		return Plain(v.Value)
	case UnitValue:
		return map[string]any{}
	case Variant:
		if v.Value == nil {
			return v.Name
		}
		return map[string]any{v.Name: Plain(v.Value)}
	case []Entry:
		m := make(map[string]any, len(v))
		for _, e := range v {
			m[fmt.Sprint(Plain(e.Key))] = Plain(e.Value)
		}
		return m
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = Plain(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = Plain(e)
		}
		return out
	}
	return value
}
