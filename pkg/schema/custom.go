package schema

import "github.com/aretw0/quill/pkg/walk"

// CustomType applies a user-defined validation function on top of a base type.
// A built value rejected by the function fails the walk with a ValidationError,
// which an interactive session treats as an undo of the last answer.
type CustomType struct {
	name     string
	base     Type
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	if t.base != nil {
		if err := t.base.Validate(value); err != nil {
			return err
		}
	}
	return t.check(value)
}

func (t *CustomType) check(value any) error {
	if err := t.validate(value); err != nil {
		return &ValidationError{Path: t.name, Reason: err.Error(), Value: value}
	}
	return nil
}

func (t *CustomType) Build(b *walk.Builder) (any, error) {
	v, err := t.base.Build(b)
	if err != nil {
		return nil, err
	}
	return v, t.check(v)
}

func (t *CustomType) Display(d *walk.Displayer, value any) error {
	if err := t.check(value); err != nil {
		return err
	}
	return t.base.Display(d, value)
}

// Custom creates a custom type validator with a user-defined function.
// Without a base type it falls back to free text.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, base: String(), validate: validate}
}

// Refine creates a custom type that builds and displays like base and
// additionally checks validate.
func Refine(name string, base Type, validate func(any) error) Type {
	return &CustomType{name: name, base: base, validate: validate}
}
