package schema

import "github.com/aretw0/quill/pkg/walk"

// Some marks a present optional value. An absent one is nil.
type Some struct {
	Value any
}

// UnitValue is the value of unit types and unit structs.
type UnitValue struct{}

// Entry is one key/value pair of a map value. Map values are []Entry so
// that entry order and non-comparable keys survive.
type Entry = walk.Entry

// Variant is the value of an enum: the chosen variant and its payload.
// Unit variants carry a nil Value.
type Variant struct {
	Name  string
	Value any
}

// Enumerated is implemented by named string types that stand for enums with
// unit variants only. The reflection bridge maps them to Enum types.
type Enumerated interface {
	Variants() []string
}
