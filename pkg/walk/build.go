package walk

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
)

// Entry is one key/value pair of a map, in the order it was given.
type Entry struct {
	Key   any
	Value any
}

// Builder assembles a value from the answers of a ports.Requester.
// A Builder is used for a single walk and must be closed afterwards.
type Builder struct {
	ctx    context.Context
	p      ports.Requester
	scopes scopeStack
}

// NewBuilder creates a Builder asking p for answers. ctx bounds every request.
func NewBuilder(ctx context.Context, p ports.Requester) *Builder {
	return &Builder{
		ctx:    ctx,
		p:      p,
		scopes: scopeStack{out: p},
	}
}

// Close ends every scope still open. It is safe to call more than once.
func (b *Builder) Close() error {
	return b.scopes.cleanup()
}

// Depth returns the number of scopes currently open.
func (b *Builder) Depth() int { return b.scopes.depth() }

// Context returns the context bounding the walk's requests.
func (b *Builder) Context() context.Context { return b.ctx }

// Reject reports msg as a bad response. It returns domain.ErrBadResponse when
// the transport cannot ask again, nil when the caller should retry.
func (b *Builder) Reject(msg string) error {
	if err := b.p.Report(domain.BadResponse, msg); err != nil {
		return err
	}
	if !b.p.IsInteractive() {
		return domain.ErrBadResponse
	}
	return nil
}

// AskYesNo asks a yes/no question until it gets one of y, yes, n or no.
func (b *Builder) AskYesNo(question string) (bool, error) {
	for {
		s, err := b.p.Request(b.ctx, domain.Question, question, yesNoVariants)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(s) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if err := b.Reject("Must answer yes or no"); err != nil {
			return false, err
		}
	}
}

// parseLeaf requests a datum until conv accepts it, then completes the value.
func parseLeaf[T any](b *Builder, label string, variants []string, conv func(string) (T, error)) (T, error) {
	var zero T
	for {
		s, err := b.p.Request(b.ctx, domain.Datum, label, variants)
		if err != nil {
			return zero, err
		}
		v, perr := conv(s)
		if perr == nil {
			return v, b.scopes.endImplicit()
		}
		if err := b.Reject("Failed to parse: " + reason(perr)); err != nil {
			return zero, err
		}
	}
}

// reason strips the strconv function and input from a parse error.
func reason(err error) string {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err.Error()
	}
	return err.Error()
}

// Bool requests "true" or "false".
func (b *Builder) Bool() (bool, error) {
	return parseLeaf(b, "bool", boolVariants, func(s string) (bool, error) {
		switch s {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return false, errors.New("expected true or false")
	})
}

// Int requests a signed integer of the given width (8, 16, 32, 64, or 0 for int).
func (b *Builder) Int(bits int) (int64, error) {
	var variants []string
	if bits == 8 {
		variants = int8Variants
	}
	return parseLeaf(b, intLabel(bits), variants, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, parseBits(bits))
	})
}

// Uint requests an unsigned integer of the given width (8, 16, 32, 64, or 0 for uint).
func (b *Builder) Uint(bits int) (uint64, error) {
	var variants []string
	if bits == 8 {
		variants = uint8Variants
	}
	return parseLeaf(b, uintLabel(bits), variants, func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, parseBits(bits))
	})
}

// Float requests a floating point number of the given width (32 or 64).
func (b *Builder) Float(bits int) (float64, error) {
	if bits != 32 {
		bits = 64
	}
	return parseLeaf(b, floatLabel(bits), nil, func(s string) (float64, error) {
		return strconv.ParseFloat(s, bits)
	})
}

// Char requests a single character.
func (b *Builder) Char() (rune, error) {
	return parseLeaf(b, "char", nil, func(s string) (rune, error) {
		if !utf8.ValidString(s) {
			return 0, errors.New("invalid UTF-8")
		}
		if utf8.RuneCountInString(s) != 1 {
			return 0, errors.New("expected a single character")
		}
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	})
}

// String requests free text.
func (b *Builder) String() (string, error) {
	return b.text("string")
}

// Identifier requests a name, e.g. a struct field or enum variant key.
func (b *Builder) Identifier() (string, error) {
	return b.text("identifier")
}

func (b *Builder) text(label string) (string, error) {
	s, err := b.p.Request(b.ctx, domain.Datum, label, nil)
	if err != nil {
		return "", err
	}
	return s, b.scopes.endImplicit()
}

// Bytes asks for bytes one at a time until the operator declines to add more.
func (b *Builder) Bytes() ([]byte, error) {
	buf := []byte{}
	for {
		more, err := b.AskYesNo(domain.QuestionByte)
		if err != nil {
			return nil, err
		}
		if !more {
			return buf, b.scopes.endImplicit()
		}
		for {
			s, err := b.p.Request(b.ctx, domain.Datum, "uint8", uint8Variants)
			if err != nil {
				return nil, err
			}
			v, perr := strconv.ParseUint(s, 10, 8)
			if perr == nil {
				buf = append(buf, byte(v))
				break
			}
			if err := b.Reject("Failed to parse: " + reason(perr)); err != nil {
				return nil, err
			}
		}
	}
}

// Unit completes a value that carries no data.
func (b *Builder) Unit() error {
	if err := b.p.Respond(domain.Synthetic, domain.LabelUnit, domain.UnitText); err != nil {
		return err
	}
	return b.scopes.endImplicit()
}

// UnitStruct completes a named value that carries no data.
func (b *Builder) UnitStruct(name string) error {
	if err := b.scopes.begin(name, 1, explicitScope); err != nil {
		return err
	}
	if err := b.p.Respond(domain.Synthetic, domain.LabelUnit, domain.UnitText); err != nil {
		return err
	}
	return b.scopes.endExplicit()
}

// Option asks whether a value is present and, if so, builds it with inner.
func (b *Builder) Option(inner func() (any, error)) (any, bool, error) {
	if err := b.scopes.begin("option", domain.NoSize, implicitScope); err != nil {
		return nil, false, err
	}
	some, err := b.AskYesNo(domain.QuestionSome)
	if err != nil {
		return nil, false, err
	}
	if !some {
		return nil, false, b.scopes.endImplicit()
	}
	v, err := inner()
	return v, true, err
}

// Newtype builds a named wrapper around a single value.
func (b *Builder) Newtype(name string, inner func() (any, error)) (any, error) {
	if err := b.scopes.begin(name, 1, implicitScope); err != nil {
		return nil, err
	}
	return inner()
}

// Tuple builds n values in order. An empty name stands for an anonymous tuple.
func (b *Builder) Tuple(name string, n int, elem func(i int) (any, error)) ([]any, error) {
	if name == "" {
		name = "tuple"
	}
	if err := b.scopes.begin(name, n, explicitScope); err != nil {
		return nil, err
	}
	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		if err := b.scopes.begin(fmt.Sprintf("[%d/%d]", i+1, n), 1, explicitScope); err != nil {
			return nil, err
		}
		v, err := elem(i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if err := b.scopes.endExplicit(); err != nil {
			return nil, err
		}
	}
	return out, b.scopes.endExplicit()
}

// Seq builds elements until the operator declines to add another.
func (b *Builder) Seq(elem func(i int) (any, error)) ([]any, error) {
	if err := b.scopes.begin("seq", domain.NoSize, explicitScope); err != nil {
		return nil, err
	}
	out := []any{}
	for i := 0; ; i++ {
		if err := b.scopes.begin(fmt.Sprintf("[%d]", i), domain.NoSize, explicitScope); err != nil {
			return nil, err
		}
		more, err := b.AskYesNo(domain.QuestionElement)
		if err != nil {
			return nil, err
		}
		if !more {
			if err := b.scopes.endExplicit(); err != nil {
				return nil, err
			}
			break
		}
		v, err := elem(i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if err := b.scopes.endExplicit(); err != nil {
			return nil, err
		}
	}
	return out, b.scopes.endExplicit()
}

// Map builds key/value entries until the operator declines to add another.
func (b *Builder) Map(key func(i int) (any, error), value func(i int, key any) (any, error)) ([]Entry, error) {
	if err := b.scopes.begin("map", domain.NoSize, explicitScope); err != nil {
		return nil, err
	}
	out := []Entry{}
	for i := 0; ; i++ {
		if err := b.scopes.begin(fmt.Sprintf("[%d]", i), domain.NoSize, explicitScope); err != nil {
			return nil, err
		}
		more, err := b.AskYesNo(domain.QuestionEntry)
		if err != nil {
			return nil, err
		}
		if !more {
			if err := b.scopes.endExplicit(); err != nil {
				return nil, err
			}
			break
		}
		k, err := key(i)
		if err != nil {
			return nil, err
		}
		v, err := value(i, k)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: k, Value: v})
		if err := b.scopes.endExplicit(); err != nil {
			return nil, err
		}
	}
	return out, b.scopes.endExplicit()
}

// Struct builds one value per field, in order.
func (b *Builder) Struct(name string, fields []string, field func(i int) (any, error)) ([]any, error) {
	if err := b.scopes.begin(name, len(fields), explicitScope); err != nil {
		return nil, err
	}
	out := make([]any, 0, len(fields))
	for i, f := range fields {
		if err := b.scopes.begin(f, 1, implicitScope); err != nil {
			return nil, err
		}
		v, err := field(i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, b.scopes.endExplicit()
}

// Enum asks for one of variants and builds its payload. A single variant is
// chosen without asking.
func (b *Builder) Enum(name string, variants []string, payload func(variant int) (any, error)) (int, any, error) {
	if len(variants) == 0 {
		return 0, nil, fmt.Errorf("enum %s has no variants", name)
	}
	if err := b.scopes.begin(name, domain.NoSize, explicitScope); err != nil {
		return 0, nil, err
	}
	idx, err := b.variant(variants)
	if err != nil {
		return 0, nil, err
	}
	v, err := payload(idx)
	if err != nil {
		return 0, nil, err
	}
	return idx, v, b.scopes.endExplicit()
}

func (b *Builder) variant(variants []string) (int, error) {
	if len(variants) == 1 {
		return 0, b.p.Respond(domain.Synthetic, domain.LabelVariant, variants[0])
	}
	for {
		s, err := b.p.Request(b.ctx, domain.Datum, domain.LabelVariant, variants)
		if err != nil {
			return 0, err
		}
		for i, v := range variants {
			if v == s {
				return i, nil
			}
		}
		if err := b.Reject(fmt.Sprintf("Invalid variant: '%s'", s)); err != nil {
			return 0, err
		}
	}
}
