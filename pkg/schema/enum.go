package schema

import (
	"fmt"
	"reflect"

	"github.com/aretw0/quill/pkg/walk"
)

// CaseKind is the payload shape of an enum variant.
type CaseKind int

const (
	UnitCase CaseKind = iota
	NewtypeCase
	TupleCase
	StructCase
)

// Case declares one variant of an enum.
type Case struct {
	Name   string
	Kind   CaseKind
	Inner  Type    // NewtypeCase
	Elems  []Type  // TupleCase
	Fields []Field // StructCase
}

// UnitVariant declares a variant without payload.
func UnitVariant(name string) Case { return Case{Name: name, Kind: UnitCase} }

// NewtypeVariant declares a variant wrapping a single value.
func NewtypeVariant(name string, inner Type) Case {
	return Case{Name: name, Kind: NewtypeCase, Inner: inner}
}

// TupleVariant declares a variant holding a tuple.
func TupleVariant(name string, elems ...Type) Case {
	return Case{Name: name, Kind: TupleCase, Elems: elems}
}

// StructVariant declares a variant holding named fields.
func StructVariant(name string, fields ...Field) Case {
	return Case{Name: name, Kind: StructCase, Fields: fields}
}

// EnumType is a choice between named variants. Its value is a Variant.
type EnumType struct {
	name  string
	cases []Case
}

func (t *EnumType) Name() string { return t.name }

// Variants returns the variant names in declaration order.
func (t *EnumType) Variants() []string {
	names := make([]string, len(t.cases))
	for i, c := range t.cases {
		names[i] = c.Name
	}
	return names
}

func (t *EnumType) Validate(value any) error { return validate(t, value) }

func (t *EnumType) Build(b *walk.Builder) (any, error) {
	idx, payload, err := b.Enum(t.name, t.Variants(), func(i int) (any, error) {
		c := t.cases[i]
		switch c.Kind {
		case NewtypeCase:
			return c.Inner.Build(b)
		case TupleCase:
			return b.Tuple(c.Name, len(c.Elems), func(j int) (any, error) { return c.Elems[j].Build(b) })
		case StructCase:
			return buildFields(b, c.Name, c.Fields)
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return Variant{Name: t.cases[idx].Name, Value: payload}, nil
}

func (t *EnumType) Display(d *walk.Displayer, value any) error {
	name, payload, err := t.split(value)
	if err != nil {
		return err
	}
	idx := -1
	for i, c := range t.cases {
		if c.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return &ValidationError{Path: t.name, Reason: fmt.Sprintf("unknown variant %q", name)}
	}
	c := t.cases[idx]
	return d.Enum(t.name, t.Variants(), idx, func() error {
		switch c.Kind {
		case NewtypeCase:
			return c.Inner.Display(d, payload)
		case TupleCase:
			list, ok := toList(payload)
			if !ok || len(list) != len(c.Elems) {
				return mismatch(c.Name, fmt.Sprintf("%d elements", len(c.Elems)), payload)
			}
			return d.Tuple(c.Name, len(c.Elems), func(j int) error { return c.Elems[j].Display(d, list[j]) })
		case StructCase:
			return displayFields(d, c.Name, c.Fields, payload)
		}
		return nil
	})
}

// split accepts a Variant, a bare variant name, or a single-key map
// {"Name": payload} as enum values.
func (t *EnumType) split(value any) (string, any, error) {
	switch v := value.(type) {
	case Variant:
		return v.Name, v.Value, nil
	case *Variant:
		if v != nil {
			return v.Name, v.Value, nil
		}
	}
	if s, ok := toString(value); ok {
		return s, nil, nil
	}
	if rv, ok := indirect(value); ok && rv.Kind() == reflect.Map && rv.Len() == 1 {
		it := rv.MapRange()
		it.Next()
		if name, ok := toString(it.Key().Interface()); ok {
			return name, it.Value().Interface(), nil
		}
	}
	return "", nil, mismatch(t.name, "variant", value)
}

// Enum creates an enum type. A single-variant enum is chosen without asking.
func Enum(name string, cases ...Case) Type { return &EnumType{name: name, cases: cases} }
