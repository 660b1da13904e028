package dto

// SchemaDocument is the on-disk form of a set of named types (YAML or JSON).
// It uses "mapstructure" tags so that any decoded map can be bound to it.
type SchemaDocument struct {
	Version int                `json:"version,omitempty" mapstructure:"version"`
	Root    string             `json:"root" mapstructure:"root"`
	Types   map[string]TypeDef `json:"types" mapstructure:"types"`
}

// TypeDef declares one named type.
//
// Kind is one of struct, enum, newtype, tuple, unit, seq, map, option or alias.
// Type and Types hold type expressions such as "uint32" or "[Item]".
type TypeDef struct {
	Kind        string       `json:"kind" mapstructure:"kind"`
	Description string       `json:"description,omitempty" mapstructure:"description"`
	Type        string       `json:"type,omitempty" mapstructure:"type"`
	Key         string       `json:"key,omitempty" mapstructure:"key"`
	Types       []string     `json:"types,omitempty" mapstructure:"types"`
	Fields      []FieldDef   `json:"fields,omitempty" mapstructure:"fields"`
	Variants    []VariantDef `json:"variants,omitempty" mapstructure:"variants"`

	// Constraints (alias only)
	Min     *float64 `json:"min,omitempty" mapstructure:"min"`
	Max     *float64 `json:"max,omitempty" mapstructure:"max"`
	MinLen  *int     `json:"min_len,omitempty" mapstructure:"min_len"`
	MaxLen  *int     `json:"max_len,omitempty" mapstructure:"max_len"`
	Pattern string   `json:"pattern,omitempty" mapstructure:"pattern"`
	OneOf   []string `json:"one_of,omitempty" mapstructure:"one_of"`
}

// FieldDef declares a struct field.
type FieldDef struct {
	Name string `json:"name" mapstructure:"name"`
	Type string `json:"type" mapstructure:"type"`
}

// VariantDef declares an enum variant. With no payload keys it is a unit
// variant; Type makes it a newtype variant, Types a tuple variant and
// Fields a struct variant.
type VariantDef struct {
	Name   string     `json:"name" mapstructure:"name"`
	Type   string     `json:"type,omitempty" mapstructure:"type"`
	Types  []string   `json:"types,omitempty" mapstructure:"types"`
	Fields []FieldDef `json:"fields,omitempty" mapstructure:"fields"`
}
