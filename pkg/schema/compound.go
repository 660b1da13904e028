package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/quill/pkg/walk"
)

// OptionType is a value that may be absent. Absent is nil, present is Some.
type OptionType struct {
	inner Type
}

func (t *OptionType) Name() string { return "?" + t.inner.Name() }

func (t *OptionType) Validate(value any) error { return validate(t, value) }

func (t *OptionType) Build(b *walk.Builder) (any, error) {
	v, some, err := b.Option(func() (any, error) { return t.inner.Build(b) })
	if err != nil || !some {
		return nil, err
	}
	return Some{Value: v}, nil
}

func (t *OptionType) Display(d *walk.Displayer, value any) error {
	inner, present := unwrapOption(value)
	return d.Option(present, func() error { return t.inner.Display(d, inner) })
}

// unwrapOption accepts nil, Some, and pointers as optional values.
// Anything else is a present value.
func unwrapOption(value any) (any, bool) {
	switch v := value.(type) {
	case nil:
		return nil, false
	case Some:
		return v.Value, true
	case *Some:
		if v == nil {
			return nil, false
		}
		return v.Value, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		return rv.Elem().Interface(), true
	}
	return value, true
}

// NewtypeType is a named wrapper around a single value. The wrapper is
// transparent: its value is the inner value.
type NewtypeType struct {
	name  string
	inner Type
}

func (t *NewtypeType) Name() string { return t.name }

func (t *NewtypeType) Validate(value any) error { return validate(t, value) }

func (t *NewtypeType) Build(b *walk.Builder) (any, error) {
	return b.Newtype(t.name, func() (any, error) { return t.inner.Build(b) })
}

func (t *NewtypeType) Display(d *walk.Displayer, value any) error {
	return d.Newtype(t.name, func() error { return t.inner.Display(d, value) })
}

// UnitStructType is a named value that carries no data.
type UnitStructType struct {
	name string
}

func (t *UnitStructType) Name() string { return t.name }

func (t *UnitStructType) Validate(value any) error { return nil }

func (t *UnitStructType) Build(b *walk.Builder) (any, error) {
	return UnitValue{}, b.UnitStruct(t.name)
}

func (t *UnitStructType) Display(d *walk.Displayer, value any) error {
	return d.UnitStruct(t.name)
}

// TupleType is a fixed number of values of fixed types. A named tuple is a
// tuple struct.
type TupleType struct {
	name  string
	elems []Type
}

func (t *TupleType) Name() string {
	if t.name != "" {
		return t.name
	}
	names := make([]string, len(t.elems))
	for i, e := range t.elems {
		names[i] = e.Name()
	}
	return "(" + strings.Join(names, ", ") + ")"
}

func (t *TupleType) Validate(value any) error { return validate(t, value) }

func (t *TupleType) Build(b *walk.Builder) (any, error) {
	return b.Tuple(t.name, len(t.elems), func(i int) (any, error) { return t.elems[i].Build(b) })
}

func (t *TupleType) Display(d *walk.Displayer, value any) error {
	list, ok := toList(value)
	if !ok {
		return mismatch(t.Name(), "list", value)
	}
	if len(list) != len(t.elems) {
		return &ValidationError{
			Path:   t.Name(),
			Reason: fmt.Sprintf("expected %d elements, got %d", len(t.elems), len(list)),
		}
	}
	return d.Tuple(t.name, len(t.elems), func(i int) error { return t.elems[i].Display(d, list[i]) })
}

// SliceType is a sequence of any length of elements of one type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error { return validate(t, value) }

func (t *SliceType) Build(b *walk.Builder) (any, error) {
	return b.Seq(func(int) (any, error) { return t.elemType.Build(b) })
}

func (t *SliceType) Display(d *walk.Displayer, value any) error {
	list, ok := toList(value)
	if !ok {
		return mismatch(t.Name(), "list", value)
	}
	return d.Seq(len(list), func(i int) error { return t.elemType.Display(d, list[i]) })
}

// MapType is a list of key/value entries. Keys must be distinct.
type MapType struct {
	key   Type
	value Type
}

func (t *MapType) Name() string {
	return fmt.Sprintf("{%s: %s}", t.key.Name(), t.value.Name())
}

func (t *MapType) Validate(value any) error { return validate(t, value) }

func (t *MapType) Build(b *walk.Builder) (any, error) {
	var seen []any
	return b.Map(
		func(int) (any, error) {
			k, err := t.key.Build(b)
			if err != nil {
				return nil, err
			}
			for _, s := range seen {
				if reflect.DeepEqual(s, k) {
					return nil, &ValidationError{Path: t.Name(), Reason: "duplicate key", Value: k}
				}
			}
			seen = append(seen, k)
			return k, nil
		},
		func(int, any) (any, error) { return t.value.Build(b) },
	)
}

func (t *MapType) Display(d *walk.Displayer, value any) error {
	entries, ok := toEntries(value)
	if !ok {
		return mismatch(t.Name(), "map", value)
	}
	return d.Map(len(entries),
		func(i int) error { return t.key.Display(d, entries[i].Key) },
		func(i int) error { return t.value.Display(d, entries[i].Value) },
	)
}

// Field is a named member of a struct or struct variant.
type Field struct {
	Name string
	Type Type
}

// StructType is a fixed list of named fields. Its value is a map keyed by field name.
type StructType struct {
	name   string
	fields []Field
}

func (t *StructType) Name() string { return t.name }

// Fields returns the struct's fields in order.
func (t *StructType) Fields() []Field { return t.fields }

func (t *StructType) Validate(value any) error {
	s := make(Schema, len(t.fields))
	for _, f := range t.fields {
		s[f.Name] = f.Type
	}
	data, err := record(t.fields, value)
	if err != nil {
		return err
	}
	return Validate(s, data)
}

func (t *StructType) Build(b *walk.Builder) (any, error) {
	return buildFields(b, t.name, t.fields)
}

func (t *StructType) Display(d *walk.Displayer, value any) error {
	return displayFields(d, t.name, t.fields, value)
}

func fieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

func buildFields(b *walk.Builder, name string, fields []Field) (any, error) {
	vals, err := b.Struct(name, fieldNames(fields), func(i int) (any, error) { return fields[i].Type.Build(b) })
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(fields))
	for i, f := range fields {
		out[f.Name] = vals[i]
	}
	return out, nil
}

func displayFields(d *walk.Displayer, name string, fields []Field, value any) error {
	data, err := record(fields, value)
	if err != nil {
		return err
	}
	return d.Struct(name, fieldNames(fields), func(i int) error {
		return fields[i].Type.Display(d, data[fields[i].Name])
	})
}

// record gathers the fields of value by name. Missing optional fields read as
// absent; any other missing field is an error.
func record(fields []Field, value any) (map[string]any, error) {
	if _, ok := indirect(value); !ok {
		return nil, mismatch("struct", "record", value)
	}
	out := make(map[string]any, len(fields))
	var errs []error
	for _, f := range fields {
		v, ok := field(value, f.Name)
		if !ok {
			if _, optional := resolve(f.Type).(*OptionType); !optional {
				errs = append(errs, &ValidationError{Path: f.Name, Reason: "required"})
			}
			continue
		}
		out[f.Name] = v
	}
	if len(errs) > 0 {
		return nil, &AggregateError{Errors: errs}
	}
	return out, nil
}

// Option creates a type for values that may be absent.
func Option(inner Type) Type { return &OptionType{inner: inner} }

// Newtype creates a named wrapper around inner.
func Newtype(name string, inner Type) Type { return &NewtypeType{name: name, inner: inner} }

// UnitStruct creates a named type that carries no data.
func UnitStruct(name string) Type { return &UnitStructType{name: name} }

// Tuple creates an anonymous tuple of elems.
func Tuple(elems ...Type) Type { return &TupleType{elems: elems} }

// TupleStruct creates a named tuple of elems.
func TupleStruct(name string, elems ...Type) Type { return &TupleType{name: name, elems: elems} }

// Slice creates a sequence type for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Map creates a map type.
func Map(key, value Type) Type { return &MapType{key: key, value: value} }

// Struct creates a struct type with the given fields, in order.
func Struct(name string, fields ...Field) Type { return &StructType{name: name, fields: fields} }
