package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/quill/pkg/walk"
)

// Registry holds named types so that types can refer to each other by name,
// including recursively. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]Type)}
}

// Define registers t under name, replacing any previous definition.
func (r *Registry) Define(name string, t Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[name] = t
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for n := range r.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Ref returns a type that resolves name in r each time it is used.
func (r *Registry) Ref(name string) Type {
	return &RefType{name: name, registry: r}
}

// Check reports every reference in r that does not resolve.
func (r *Registry) Check() error {
	var errs []error
	for _, n := range r.Names() {
		t, _ := r.Lookup(n)
		visit(t, map[Type]bool{}, func(ref *RefType) {
			if _, ok := ref.registry.Lookup(ref.name); !ok {
				errs = append(errs, &ValidationError{Path: n, Reason: fmt.Sprintf("undefined type %q", ref.name)})
			}
		})
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// visit walks the type graph without following references.
func visit(t Type, seen map[Type]bool, onRef func(*RefType)) {
	if t == nil || seen[t] {
		return
	}
	seen[t] = true
	switch v := t.(type) {
	case *RefType:
		onRef(v)
	case *OptionType:
		visit(v.inner, seen, onRef)
	case *NewtypeType:
		visit(v.inner, seen, onRef)
	case *TupleType:
		for _, e := range v.elems {
			visit(e, seen, onRef)
		}
	case *SliceType:
		visit(v.elemType, seen, onRef)
	case *MapType:
		visit(v.key, seen, onRef)
		visit(v.value, seen, onRef)
	case *StructType:
		for _, f := range v.fields {
			visit(f.Type, seen, onRef)
		}
	case *EnumType:
		for _, c := range v.cases {
			visit(c.Inner, seen, onRef)
			for _, e := range c.Elems {
				visit(e, seen, onRef)
			}
			for _, f := range c.Fields {
				visit(f.Type, seen, onRef)
			}
		}
	case *CustomType:
		visit(v.base, seen, onRef)
	}
}

// RefType is a named reference to a type held by a Registry.
type RefType struct {
	name     string
	registry *Registry
}

func (t *RefType) Name() string { return t.name }

func (t *RefType) target() (Type, error) {
	target, ok := t.registry.Lookup(t.name)
	if !ok {
		return nil, fmt.Errorf("undefined type %q", t.name)
	}
	return target, nil
}

func (t *RefType) Validate(value any) error {
	target, err := t.target()
	if err != nil {
		return err
	}
	return target.Validate(value)
}

func (t *RefType) Build(b *walk.Builder) (any, error) {
	target, err := t.target()
	if err != nil {
		return nil, err
	}
	return target.Build(b)
}

func (t *RefType) Display(d *walk.Displayer, value any) error {
	target, err := t.target()
	if err != nil {
		return err
	}
	return target.Display(d, value)
}

// resolve follows references until a concrete type is reached.
func resolve(t Type) Type {
	for i := 0; i < 64; i++ {
		ref, ok := t.(*RefType)
		if !ok {
			return t
		}
		next, err := ref.target()
		if err != nil {
			return t
		}
		t = next
	}
	return t
}
