package schema

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"unicode/utf8"

	"github.com/aretw0/quill/internal/dto"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the newest schema document format this package reads.
// Documents without a version field are read as version 1.
const FormatVersion = 1

// Document is a set of named types loaded from a schema file.
type Document struct {
	Registry *Registry
	Root     string
}

// Type returns the named type, or the document root when name is empty.
func (d *Document) Type(name string) (Type, error) {
	if name == "" {
		name = d.Root
	}
	if name == "" {
		return nil, errors.New("schema document has no root type; pass a type name")
	}
	if t, ok := d.Registry.Lookup(name); ok {
		return t, nil
	}
	return d.Registry.Parse(name)
}

// LoadDocument reads a schema document from a YAML or JSON file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseDocument decodes a schema document. JSON is accepted as a subset of YAML.
func ParseDocument(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	var src dto.SchemaDocument
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &src,
		ErrorUnused: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	if src.Version > FormatVersion {
		return nil, fmt.Errorf("schema format version %d is newer than supported version %d", src.Version, FormatVersion)
	}

	reg := NewRegistry()
	for name, def := range src.Types {
		t, err := compile(reg, name, def)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", name, err)
		}
		reg.Define(name, t)
	}
	if err := reg.Check(); err != nil {
		return nil, err
	}
	if src.Root != "" {
		if _, ok := reg.Lookup(src.Root); !ok {
			return nil, fmt.Errorf("root type %q is not defined", src.Root)
		}
	}
	return &Document{Registry: reg, Root: src.Root}, nil
}

func compile(reg *Registry, name string, def dto.TypeDef) (Type, error) {
	switch def.Kind {
	case "struct":
		fields, err := compileFields(reg, def.Fields)
		if err != nil {
			return nil, err
		}
		return Struct(name, fields...), nil
	case "enum":
		if len(def.Variants) == 0 {
			return nil, errors.New("enum needs at least one variant")
		}
		cases := make([]Case, 0, len(def.Variants))
		for _, v := range def.Variants {
			c, err := compileVariant(reg, v)
			if err != nil {
				return nil, fmt.Errorf("variant %s: %w", v.Name, err)
			}
			cases = append(cases, c)
		}
		return Enum(name, cases...), nil
	case "newtype":
		inner, err := reg.Parse(def.Type)
		if err != nil {
			return nil, err
		}
		return Newtype(name, inner), nil
	case "tuple":
		elems, err := compileTypes(reg, def.Types)
		if err != nil {
			return nil, err
		}
		return TupleStruct(name, elems...), nil
	case "unit":
		return UnitStruct(name), nil
	case "seq":
		elem, err := reg.Parse(def.Type)
		if err != nil {
			return nil, err
		}
		return Slice(elem), nil
	case "map":
		key, err := reg.Parse(def.Key)
		if err != nil {
			return nil, err
		}
		value, err := reg.Parse(def.Type)
		if err != nil {
			return nil, err
		}
		return Map(key, value), nil
	case "option":
		inner, err := reg.Parse(def.Type)
		if err != nil {
			return nil, err
		}
		return Option(inner), nil
	case "alias":
		base, err := reg.Parse(def.Type)
		if err != nil {
			return nil, err
		}
		check, err := constraints(def)
		if err != nil {
			return nil, err
		}
		if check == nil {
			return base, nil
		}
		return Refine(name, base, check), nil
	}
	return nil, fmt.Errorf("unknown kind %q", def.Kind)
}

func compileTypes(reg *Registry, exprs []string) ([]Type, error) {
	out := make([]Type, len(exprs))
	for i, e := range exprs {
		t, err := reg.Parse(e)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

func compileFields(reg *Registry, defs []dto.FieldDef) ([]Field, error) {
	out := make([]Field, len(defs))
	for i, f := range defs {
		if f.Name == "" {
			return nil, fmt.Errorf("field %d has no name", i)
		}
		t, err := reg.Parse(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		out[i] = Field{Name: f.Name, Type: t}
	}
	return out, nil
}

func compileVariant(reg *Registry, v dto.VariantDef) (Case, error) {
	switch {
	case v.Type != "":
		inner, err := reg.Parse(v.Type)
		if err != nil {
			return Case{}, err
		}
		return NewtypeVariant(v.Name, inner), nil
	case len(v.Types) > 0:
		elems, err := compileTypes(reg, v.Types)
		if err != nil {
			return Case{}, err
		}
		return TupleVariant(v.Name, elems...), nil
	case len(v.Fields) > 0:
		fields, err := compileFields(reg, v.Fields)
		if err != nil {
			return Case{}, err
		}
		return StructVariant(v.Name, fields...), nil
	}
	return UnitVariant(v.Name), nil
}

// constraints builds the check of an alias, or nil when it declares none.
func constraints(def dto.TypeDef) (func(any) error, error) {
	var checks []func(any) error

	if def.Min != nil || def.Max != nil {
		checks = append(checks, func(v any) error {
			f, ok := toFloat64(v)
			if !ok {
				return errors.New("expected a number")
			}
			if def.Min != nil && f < *def.Min {
				return fmt.Errorf("must be at least %v", *def.Min)
			}
			if def.Max != nil && f > *def.Max {
				return fmt.Errorf("must be at most %v", *def.Max)
			}
			return nil
		})
	}
	if def.MinLen != nil || def.MaxLen != nil {
		checks = append(checks, func(v any) error {
			n, ok := length(v)
			if !ok {
				return errors.New("value has no length")
			}
			if def.MinLen != nil && n < *def.MinLen {
				return fmt.Errorf("must have at least %d elements", *def.MinLen)
			}
			if def.MaxLen != nil && n > *def.MaxLen {
				return fmt.Errorf("must have at most %d elements", *def.MaxLen)
			}
			return nil
		})
	}
	if def.Pattern != "" {
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		checks = append(checks, func(v any) error {
			s, ok := toString(v)
			if !ok || !re.MatchString(s) {
				return fmt.Errorf("must match %s", def.Pattern)
			}
			return nil
		})
	}
	if len(def.OneOf) > 0 {
		checks = append(checks, func(v any) error {
			s, _ := toString(v)
			for _, o := range def.OneOf {
				if o == s {
					return nil
				}
			}
			return fmt.Errorf("must be one of %v", def.OneOf)
		})
	}

	if len(checks) == 0 {
		return nil, nil
	}
	return func(v any) error {
		for _, c := range checks {
			if err := c(v); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

func length(v any) (int, bool) {
	if s, ok := toString(v); ok {
		return utf8.RuneCountInString(s), true
	}
	if b, ok := v.([]byte); ok {
		return len(b), true
	}
	if l, ok := toList(v); ok {
		return len(l), true
	}
	if e, ok := toEntries(v); ok {
		return len(e), true
	}
	return 0, false
}
