package walk

import (
	"fmt"
	"strconv"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
)

// Displayer states an existing value to a ports.Responder, mirroring the
// requests a Builder would make for it.
type Displayer struct {
	p      ports.Responder
	scopes scopeStack
}

// NewDisplayer creates a Displayer writing to p.
func NewDisplayer(p ports.Responder) *Displayer {
	return &Displayer{p: p, scopes: scopeStack{out: p}}
}

// Close ends every scope still open. It is safe to call more than once.
func (d *Displayer) Close() error {
	return d.scopes.cleanup()
}

// Depth returns the number of scopes currently open.
func (d *Displayer) Depth() int { return d.scopes.depth() }

func (d *Displayer) leaf(label, text string) error {
	if err := d.p.Respond(domain.Datum, label, text); err != nil {
		return err
	}
	return d.scopes.endImplicit()
}

func (d *Displayer) answer(question string, yes bool) error {
	text := domain.No
	if yes {
		text = domain.Yes
	}
	return d.p.Respond(domain.Question, question, text)
}

func (d *Displayer) Bool(v bool) error {
	return d.leaf("bool", strconv.FormatBool(v))
}

func (d *Displayer) Int(bits int, v int64) error {
	return d.leaf(intLabel(bits), strconv.FormatInt(v, 10))
}

func (d *Displayer) Uint(bits int, v uint64) error {
	return d.leaf(uintLabel(bits), strconv.FormatUint(v, 10))
}

func (d *Displayer) Float(bits int, v float64) error {
	if bits != 32 {
		bits = 64
	}
	return d.leaf(floatLabel(bits), strconv.FormatFloat(v, 'g', -1, bits))
}

func (d *Displayer) Char(r rune) error {
	return d.leaf("char", string(r))
}

func (d *Displayer) String(s string) error {
	return d.leaf("string", s)
}

func (d *Displayer) Identifier(s string) error {
	return d.leaf("identifier", s)
}

func (d *Displayer) Bytes(buf []byte) error {
	for _, c := range buf {
		if err := d.answer(domain.QuestionByte, true); err != nil {
			return err
		}
		if err := d.p.Respond(domain.Datum, "uint8", strconv.Itoa(int(c))); err != nil {
			return err
		}
	}
	if err := d.answer(domain.QuestionByte, false); err != nil {
		return err
	}
	return d.scopes.endImplicit()
}

func (d *Displayer) Unit() error {
	if err := d.p.Respond(domain.Synthetic, domain.LabelUnit, domain.UnitText); err != nil {
		return err
	}
	return d.scopes.endImplicit()
}

func (d *Displayer) UnitStruct(name string) error {
	if err := d.scopes.begin(name, 1, explicitScope); err != nil {
		return err
	}
	if err := d.p.Respond(domain.Synthetic, domain.LabelUnit, domain.UnitText); err != nil {
		return err
	}
	return d.scopes.endExplicit()
}

// Option states whether a value is present and, if so, displays it with inner.
func (d *Displayer) Option(present bool, inner func() error) error {
	if err := d.scopes.begin("option", domain.NoSize, implicitScope); err != nil {
		return err
	}
	if err := d.answer(domain.QuestionSome, present); err != nil {
		return err
	}
	if !present {
		return d.scopes.endImplicit()
	}
	return inner()
}

func (d *Displayer) Newtype(name string, inner func() error) error {
	if err := d.scopes.begin(name, 1, implicitScope); err != nil {
		return err
	}
	return inner()
}

// Tuple displays n elements in order. An empty name stands for an anonymous tuple.
func (d *Displayer) Tuple(name string, n int, elem func(i int) error) error {
	if name == "" {
		name = "tuple"
	}
	if err := d.scopes.begin(name, n, explicitScope); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := d.scopes.begin(fmt.Sprintf("[%d/%d]", i+1, n), 1, explicitScope); err != nil {
			return err
		}
		if err := elem(i); err != nil {
			return err
		}
		if err := d.scopes.endExplicit(); err != nil {
			return err
		}
	}
	return d.scopes.endExplicit()
}

// Seq displays n elements followed by the slot that declines another.
func (d *Displayer) Seq(n int, elem func(i int) error) error {
	if err := d.scopes.begin("seq", domain.NoSize, explicitScope); err != nil {
		return err
	}
	for i := 0; i <= n; i++ {
		if err := d.scopes.begin(fmt.Sprintf("[%d]", i), domain.NoSize, explicitScope); err != nil {
			return err
		}
		if err := d.answer(domain.QuestionElement, i < n); err != nil {
			return err
		}
		if i < n {
			if err := elem(i); err != nil {
				return err
			}
		}
		if err := d.scopes.endExplicit(); err != nil {
			return err
		}
	}
	return d.scopes.endExplicit()
}

// Map displays n entries followed by the slot that declines another.
func (d *Displayer) Map(n int, key, value func(i int) error) error {
	if err := d.scopes.begin("map", domain.NoSize, explicitScope); err != nil {
		return err
	}
	for i := 0; i <= n; i++ {
		if err := d.scopes.begin(fmt.Sprintf("[%d]", i), domain.NoSize, explicitScope); err != nil {
			return err
		}
		if err := d.answer(domain.QuestionEntry, i < n); err != nil {
			return err
		}
		if i < n {
			if err := key(i); err != nil {
				return err
			}
			if err := value(i); err != nil {
				return err
			}
		}
		if err := d.scopes.endExplicit(); err != nil {
			return err
		}
	}
	return d.scopes.endExplicit()
}

func (d *Displayer) Struct(name string, fields []string, field func(i int) error) error {
	if err := d.scopes.begin(name, len(fields), explicitScope); err != nil {
		return err
	}
	for i, f := range fields {
		if err := d.scopes.begin(f, 1, implicitScope); err != nil {
			return err
		}
		if err := field(i); err != nil {
			return err
		}
	}
	return d.scopes.endExplicit()
}

// Enum states the chosen variant and displays its payload. A single variant
// is stated as synthetic, matching Builder.Enum.
func (d *Displayer) Enum(name string, variants []string, variant int, payload func() error) error {
	if variant < 0 || variant >= len(variants) {
		return fmt.Errorf("enum %s: variant index %d out of range", name, variant)
	}
	if err := d.scopes.begin(name, domain.NoSize, explicitScope); err != nil {
		return err
	}
	kind := domain.Datum
	if len(variants) == 1 {
		kind = domain.Synthetic
	}
	if err := d.p.Respond(kind, domain.LabelVariant, variants[variant]); err != nil {
		return err
	}
	if err := payload(); err != nil {
		return err
	}
	return d.scopes.endExplicit()
}
