package schema

import (
	"fmt"
	"unicode"
)

var builtins = map[string]func() Type{
	"bool":       Bool,
	"int":        Int,
	"int8":       Int8,
	"int16":      Int16,
	"int32":      Int32,
	"int64":      Int64,
	"uint":       Uint,
	"uint8":      Uint8,
	"byte":       Uint8,
	"uint16":     Uint16,
	"uint32":     Uint32,
	"uint64":     Uint64,
	"float":      Float64,
	"float32":    Float32,
	"float64":    Float64,
	"char":       Char,
	"string":     String,
	"identifier": Identifier,
	"bytes":      Bytes,
	"unit":       Unit,
}

// ParseType converts a type expression to a Type.
// Supports the built-in names ("string", "int32", "bytes", ...) and the
// compositions "[T]" (sequence), "?T" (option), "{K: V}" (map) and
// "(T, U, ...)" (tuple; "()" is unit).
func ParseType(typeStr string) (Type, error) {
	return parseType(typeStr, nil)
}

// Parse is like ParseType but resolves any other name as a reference into r.
func (r *Registry) Parse(typeStr string) (Type, error) {
	return parseType(typeStr, r)
}

func parseType(typeStr string, reg *Registry) (Type, error) {
	p := &parser{src: typeStr, reg: reg}
	t, err := p.parse()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

type parser struct {
	src string
	pos int
	reg *Registry
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("type %q at %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		return p.errorf("expected %q", c)
	}
	p.pos++
	return nil
}

func (p *parser) parse() (Type, error) {
	switch p.peek() {
	case '?':
		p.pos++
		inner, err := p.parse()
		if err != nil {
			return nil, err
		}
		return Option(inner), nil
	case '[':
		p.pos++
		elem, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		return Slice(elem), nil
	case '{':
		p.pos++
		key, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect(':'); err != nil {
			return nil, err
		}
		value, err := p.parse()
		if err != nil {
			return nil, err
		}
		if err := p.expect('}'); err != nil {
			return nil, err
		}
		return Map(key, value), nil
	case '(':
		p.pos++
		if p.peek() == ')' {
			p.pos++
			return Unit(), nil
		}
		var elems []Type
		for {
			elem, err := p.parse()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			if p.peek() != ',' {
				break
			}
			p.pos++
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return Tuple(elems...), nil
	case 0:
		return nil, p.errorf("unexpected end")
	}
	return p.name()
}

func (p *parser) name() (Type, error) {
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '.' {
			break
		}
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == "" {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	if f, ok := builtins[name]; ok {
		return f(), nil
	}
	if p.reg == nil {
		return nil, fmt.Errorf("unsupported type: %s", name)
	}
	return p.reg.Ref(name), nil
}

// ParseTypeMap converts a map of field names to type strings into a Schema.
// Example: {"api_key": "string", "retries": "int"}
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema)
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}
