package schema

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/walk"
)

// Type describes the shape of a value and walks it in both directions.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "[int32]", "Order").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
	// Build asks for a value of this type.
	Build(b *walk.Builder) (any, error)
	// Display states value as a value of this type.
	Display(d *walk.Displayer, value any) error
}

// validate checks value by displaying it to a transport that discards everything.
func validate(t Type, value any) error {
	d := walk.NewDisplayer(discard{})
	defer d.Close()
	return t.Display(d, value)
}

type discard struct{}

func (discard) BeginScope(string, int) error { return nil }

func (discard) EndScope() error { return nil }

func (discard) Respond(domain.RequestKind, string, string) error { return nil }

// --- Built-in Type Implementations ---

// BoolType handles "true" and "false".
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error { return validate(t, value) }

func (t *BoolType) Build(b *walk.Builder) (any, error) { return b.Bool() }

func (t *BoolType) Display(d *walk.Displayer, value any) error {
	v, ok := toBool(value)
	if !ok {
		return mismatch(t.Name(), "bool", value)
	}
	return d.Bool(v)
}

// IntType handles signed integers of a fixed width. Bits 0 is the platform int.
type IntType struct {
	bits int
}

func (t *IntType) Name() string {
	if t.bits == 0 {
		return "int"
	}
	return fmt.Sprintf("int%d", t.bits)
}

func (t *IntType) Validate(value any) error { return validate(t, value) }

func (t *IntType) Build(b *walk.Builder) (any, error) {
	n, err := b.Int(t.bits)
	if err != nil {
		return nil, err
	}
	switch t.bits {
	case 8:
		return int8(n), nil
	case 16:
		return int16(n), nil
	case 32:
		return int32(n), nil
	case 64:
		return n, nil
	}
	return int(n), nil
}

func (t *IntType) Display(d *walk.Displayer, value any) error {
	n, ok := toInt64(value)
	if !ok {
		return mismatch(t.Name(), "integer", value)
	}
	if t.bits > 0 && t.bits < 64 {
		limit := int64(1) << (t.bits - 1)
		if n < -limit || n >= limit {
			return &ValidationError{Path: t.Name(), Reason: "out of range", Value: value}
		}
	}
	return d.Int(t.bits, n)
}

// UintType handles unsigned integers of a fixed width. Bits 0 is the platform uint.
type UintType struct {
	bits int
}

func (t *UintType) Name() string {
	if t.bits == 0 {
		return "uint"
	}
	return fmt.Sprintf("uint%d", t.bits)
}

func (t *UintType) Validate(value any) error { return validate(t, value) }

func (t *UintType) Build(b *walk.Builder) (any, error) {
	n, err := b.Uint(t.bits)
	if err != nil {
		return nil, err
	}
	switch t.bits {
	case 8:
		return uint8(n), nil
	case 16:
		return uint16(n), nil
	case 32:
		return uint32(n), nil
	case 64:
		return n, nil
	}
	return uint(n), nil
}

func (t *UintType) Display(d *walk.Displayer, value any) error {
	n, ok := toUint64(value)
	if !ok {
		return mismatch(t.Name(), "unsigned integer", value)
	}
	if t.bits > 0 && t.bits < 64 && n >= uint64(1)<<t.bits {
		return &ValidationError{Path: t.Name(), Reason: "out of range", Value: value}
	}
	return d.Uint(t.bits, n)
}

// FloatType handles floating point numbers of 32 or 64 bits.
type FloatType struct {
	bits int
}

func (t *FloatType) Name() string { return fmt.Sprintf("float%d", t.bits) }

func (t *FloatType) Validate(value any) error { return validate(t, value) }

func (t *FloatType) Build(b *walk.Builder) (any, error) {
	f, err := b.Float(t.bits)
	if err != nil {
		return nil, err
	}
	if t.bits == 32 {
		return float32(f), nil
	}
	return f, nil
}

func (t *FloatType) Display(d *walk.Displayer, value any) error {
	f, ok := toFloat64(value)
	if !ok {
		return mismatch(t.Name(), "number", value)
	}
	if t.bits == 32 && !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
		return &ValidationError{Path: t.Name(), Reason: "out of range", Value: value}
	}
	return d.Float(t.bits, f)
}

// CharType handles a single character, built as a rune.
type CharType struct{}

func (t *CharType) Name() string { return "char" }

func (t *CharType) Validate(value any) error { return validate(t, value) }

func (t *CharType) Build(b *walk.Builder) (any, error) { return b.Char() }

func (t *CharType) Display(d *walk.Displayer, value any) error {
	switch v := value.(type) {
	case rune:
		return d.Char(v)
	case string:
		if utf8.RuneCountInString(v) == 1 {
			r, _ := utf8.DecodeRuneInString(v)
			return d.Char(r)
		}
	}
	return mismatch(t.Name(), "single character", value)
}

// StringType handles free text.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error { return validate(t, value) }

func (t *StringType) Build(b *walk.Builder) (any, error) { return b.String() }

func (t *StringType) Display(d *walk.Displayer, value any) error {
	s, ok := toString(value)
	if !ok {
		return mismatch(t.Name(), "string", value)
	}
	return d.String(s)
}

// IdentifierType handles names, such as the keys of a dynamic record.
type IdentifierType struct{}

func (t *IdentifierType) Name() string { return "identifier" }

func (t *IdentifierType) Validate(value any) error { return validate(t, value) }

func (t *IdentifierType) Build(b *walk.Builder) (any, error) { return b.Identifier() }

func (t *IdentifierType) Display(d *walk.Displayer, value any) error {
	s, ok := toString(value)
	if !ok {
		return mismatch(t.Name(), "string", value)
	}
	return d.Identifier(s)
}

// BytesType handles a byte string, asked for one byte at a time.
type BytesType struct{}

func (t *BytesType) Name() string { return "bytes" }

func (t *BytesType) Validate(value any) error { return validate(t, value) }

func (t *BytesType) Build(b *walk.Builder) (any, error) { return b.Bytes() }

func (t *BytesType) Display(d *walk.Displayer, value any) error {
	switch v := value.(type) {
	case []byte:
		return d.Bytes(v)
	case string:
		return d.Bytes([]byte(v))
	}
	list, ok := toList(value)
	if !ok {
		return mismatch(t.Name(), "bytes", value)
	}
	buf := make([]byte, len(list))
	for i, e := range list {
		n, ok := toUint64(e)
		if !ok || n > math.MaxUint8 {
			return mismatch(fmt.Sprintf("%s[%d]", t.Name(), i), "byte", e)
		}
		buf[i] = byte(n)
	}
	return d.Bytes(buf)
}

// UnitType handles the value that carries no data.
type UnitType struct{}

func (t *UnitType) Name() string { return "unit" }

func (t *UnitType) Validate(value any) error { return nil }

func (t *UnitType) Build(b *walk.Builder) (any, error) { return UnitValue{}, b.Unit() }

func (t *UnitType) Display(d *walk.Displayer, value any) error { return d.Unit() }

// --- Factory Functions ---

// Bool creates a boolean type.
func Bool() Type { return &BoolType{} }

// Int creates a platform-sized signed integer type.
func Int() Type { return &IntType{} }

func Int8() Type  { return &IntType{bits: 8} }
func Int16() Type { return &IntType{bits: 16} }
func Int32() Type { return &IntType{bits: 32} }
func Int64() Type { return &IntType{bits: 64} }

// Uint creates a platform-sized unsigned integer type.
func Uint() Type { return &UintType{} }

func Uint8() Type  { return &UintType{bits: 8} }
func Uint16() Type { return &UintType{bits: 16} }
func Uint32() Type { return &UintType{bits: 32} }
func Uint64() Type { return &UintType{bits: 64} }

func Float32() Type { return &FloatType{bits: 32} }
func Float64() Type { return &FloatType{bits: 64} }

// Char creates a single-character type.
func Char() Type { return &CharType{} }

// String creates a free text type.
func String() Type { return &StringType{} }

// Identifier creates a name type.
func Identifier() Type { return &IdentifierType{} }

// Bytes creates a byte string type.
func Bytes() Type { return &BytesType{} }

// Unit creates the type of values that carry no data.
func Unit() Type { return &UnitType{} }
