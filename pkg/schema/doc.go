// Package schema describes the shape of the values a session builds or
// displays.
//
// A Type knows how to build a value through a walk.Builder and how to
// display one through a walk.Displayer. Leaves (bool, the sized integers,
// floats, char, string, identifier, bytes, unit) are composed with Option,
// Newtype, Tuple, Slice, Map, Struct and Enum:
//
//	order := schema.Struct("Order",
//	    schema.Field{Name: "item", Type: schema.String()},
//	    schema.Field{Name: "count", Type: schema.Uint32()},
//	    schema.Field{Name: "note", Type: schema.Option(schema.String())},
//	)
//
// Built values are plain Go values: structs become map[string]any keyed by
// field name, sequences []any, maps []Entry, enums Variant and present
// options Some. Decode binds them to a Go struct.
//
// Types can also be parsed from expressions ("[string]", "?int32",
// "{identifier: float64}"), loaded from a YAML or JSON document of named
// types with LoadDocument, or derived from Go types with Of:
//
//	typ, err := schema.Of(&cfg)
//
// Named types live in a Registry, which lets types refer to each other,
// recursively if needed. Refine and Custom attach extra checks; a built
// value that fails one is reported as a ValidationError.
package schema
