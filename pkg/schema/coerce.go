package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// indirect follows pointers and interfaces. ok is false for nil.
func indirect(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}

func toInt64(v any) (int64, bool) {
	if n, ok := v.(json.Number); ok {
		i, err := n.Int64()
		return i, err == nil
	}
	rv, ok := indirect(v)
	if !ok {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		return int64(u), u <= math.MaxInt64
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return int64(f), f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64
	}
	return 0, false
}

func toUint64(v any) (uint64, bool) {
	if n, ok := v.(json.Number); ok {
		i, err := n.Int64()
		return uint64(i), err == nil && i >= 0
	}
	rv, ok := indirect(v)
	if !ok {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		return uint64(i), i >= 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return uint64(f), f == math.Trunc(f) && f >= 0 && f < math.MaxUint64
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv, ok := indirect(v)
	if !ok {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	}
	return 0, false
}

func toString(v any) (string, bool) {
	rv, ok := indirect(v)
	if !ok || rv.Kind() != reflect.String {
		return "", false
	}
	return rv.String(), true
}

func toBool(v any) (bool, bool) {
	rv, ok := indirect(v)
	if !ok || rv.Kind() != reflect.Bool {
		return false, false
	}
	return rv.Bool(), true
}

// toList returns the elements of a slice or array value.
func toList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	rv, ok := indirect(v)
	if !ok || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// toEntries returns the entries of a map value. Go maps are visited in key
// order so that display is deterministic.
func toEntries(v any) ([]Entry, bool) {
	if e, ok := v.([]Entry); ok {
		return e, true
	}
	rv, ok := indirect(v)
	if !ok || rv.Kind() != reflect.Map {
		return nil, false
	}
	keys := rv.MapKeys()
	sortValues(keys)
	out := make([]Entry, len(keys))
	for i, k := range keys {
		out[i] = Entry{Key: k.Interface(), Value: rv.MapIndex(k).Interface()}
	}
	return out, true
}

// field looks up a struct field in a map keyed by name or in a Go struct,
// matching the quill tag first and the Go field name second.
func field(v any, name string) (any, bool) {
	if m, ok := v.(map[string]any); ok {
		f, ok := m[name]
		return f, ok
	}
	rv, ok := indirect(v)
	if !ok {
		return nil, false
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		f := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !f.IsValid() {
			return nil, false
		}
		return f.Interface(), true
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			if tagName(sf) == name {
				return rv.Field(i).Interface(), true
			}
		}
	}
	return nil, false
}

// tagName returns the name of a struct field as seen by the walkers.
func tagName(sf reflect.StructField) string {
	tag := sf.Tag.Get("quill")
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return sf.Name
}

func sortValues(keys []reflect.Value) {
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		switch a.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return a.Int() < b.Int()
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return a.Uint() < b.Uint()
		case reflect.Float32, reflect.Float64:
			return a.Float() < b.Float()
		case reflect.String:
			return a.String() < b.String()
		}
		return fmt.Sprint(a.Interface()) < fmt.Sprint(b.Interface())
	})
}
