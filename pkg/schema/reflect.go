package schema

import (
	"fmt"
	"reflect"
	"strings"
)

var enumeratedType = reflect.TypeOf((*Enumerated)(nil)).Elem()

// Of derives a Type from the Go type of v. A pointer at the top level is
// followed, so Of(&cfg) and Of(cfg) agree.
func Of(v any) (Type, error) {
	rt := reflect.TypeOf(v)
	if rt == nil {
		return nil, fmt.Errorf("cannot derive a type from nil")
	}
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return TypeOf(rt)
}

// TypeOf derives a Type from a Go type.
//
//	*T             option
//	[]byte         bytes
//	[N]T           tuple
//	[]T            sequence
//	map[K]V        map
//	struct{}       unit (unit struct when named)
//	struct         struct of its exported fields
//	Enumerated     enum of unit variants
//	named scalars  newtype around the scalar
//
// Struct fields are named by their `quill` tag, falling back to the Go
// name. The tag options "char" and "identifier" select those leaf types,
// and "-" skips the field. Recursive types resolve through a Registry.
func TypeOf(rt reflect.Type) (Type, error) {
	r := &reflector{reg: NewRegistry(), pending: map[reflect.Type]bool{}}
	return r.typeOf(rt, "")
}

type reflector struct {
	reg     *Registry
	pending map[reflect.Type]bool
}

func (r *reflector) typeOf(rt reflect.Type, opt string) (Type, error) {
	if rt.Implements(enumeratedType) && rt.Kind() == reflect.String {
		return r.enumerated(rt), nil
	}

	switch rt.Kind() {
	case reflect.Pointer:
		inner, err := r.typeOf(rt.Elem(), opt)
		if err != nil {
			return nil, err
		}
		return Option(inner), nil
	case reflect.Slice:
		if rt.Elem().Kind() == reflect.Uint8 {
			return Bytes(), nil
		}
		elem, err := r.typeOf(rt.Elem(), "")
		if err != nil {
			return nil, err
		}
		return r.named(rt, Slice(elem)), nil
	case reflect.Array:
		elems := make([]Type, rt.Len())
		for i := range elems {
			e, err := r.typeOf(rt.Elem(), "")
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		if rt.Name() != "" {
			return TupleStruct(rt.Name(), elems...), nil
		}
		return Tuple(elems...), nil
	case reflect.Map:
		key, err := r.typeOf(rt.Key(), "")
		if err != nil {
			return nil, err
		}
		value, err := r.typeOf(rt.Elem(), "")
		if err != nil {
			return nil, err
		}
		return r.named(rt, Map(key, value)), nil
	case reflect.Struct:
		return r.structOf(rt)
	}

	leaf, err := leafOf(rt, opt)
	if err != nil {
		return nil, err
	}
	return r.named(rt, leaf), nil
}

// named wraps t in a newtype when rt is a defined type other than the
// predeclared ones.
func (r *reflector) named(rt reflect.Type, t Type) Type {
	if rt.Name() == "" || rt.PkgPath() == "" {
		return t
	}
	return Newtype(rt.Name(), t)
}

func (r *reflector) enumerated(rt reflect.Type) Type {
	names := reflect.Zero(rt).Interface().(Enumerated).Variants()
	cases := make([]Case, len(names))
	for i, n := range names {
		cases[i] = UnitVariant(n)
	}
	return Enum(rt.Name(), cases...)
}

func (r *reflector) structOf(rt reflect.Type) (Type, error) {
	name := rt.Name()
	if rt.NumField() == 0 {
		if name == "" {
			return Unit(), nil
		}
		return UnitStruct(name), nil
	}

	if name != "" {
		if r.pending[rt] {
			return r.reg.Ref(qualified(rt)), nil
		}
		if t, ok := r.reg.Lookup(qualified(rt)); ok {
			return t, nil
		}
		r.pending[rt] = true
		defer delete(r.pending, rt)
	}

	var fields []Field
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		tag := sf.Tag.Get("quill")
		if tag == "-" {
			continue
		}
		_, opt, _ := strings.Cut(tag, ",")
		ft, err := r.typeOf(sf.Type, opt)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", rt.Name(), sf.Name, err)
		}
		fields = append(fields, Field{Name: tagName(sf), Type: ft})
	}

	if name == "" {
		name = "struct"
	}
	t := Struct(name, fields...)
	if rt.Name() != "" {
		r.reg.Define(qualified(rt), t)
	}
	return t, nil
}

func qualified(rt reflect.Type) string {
	return rt.PkgPath() + "." + rt.Name()
}

func leafOf(rt reflect.Type, opt string) (Type, error) {
	switch opt {
	case "char":
		if rt.Kind() == reflect.Int32 {
			return Char(), nil
		}
	case "identifier":
		if rt.Kind() == reflect.String {
			return Identifier(), nil
		}
	}

	switch rt.Kind() {
	case reflect.Bool:
		return Bool(), nil
	case reflect.Int:
		return Int(), nil
	case reflect.Int8:
		return Int8(), nil
	case reflect.Int16:
		return Int16(), nil
	case reflect.Int32:
		return Int32(), nil
	case reflect.Int64:
		return Int64(), nil
	case reflect.Uint:
		return Uint(), nil
	case reflect.Uint8:
		return Uint8(), nil
	case reflect.Uint16:
		return Uint16(), nil
	case reflect.Uint32:
		return Uint32(), nil
	case reflect.Uint64:
		return Uint64(), nil
	case reflect.Float32:
		return Float32(), nil
	case reflect.Float64:
		return Float64(), nil
	case reflect.String:
		return String(), nil
	}
	return nil, fmt.Errorf("unsupported Go type %s", rt)
}
