package walk

import (
	"fmt"

	"github.com/aretw0/quill/pkg/domain"
	"github.com/aretw0/quill/pkg/ports"
)

type scopeKind int

const (
	explicitScope scopeKind = iota
	implicitScope
)

// scopeRun is a run of consecutive scopes of the same kind.
type scopeRun struct {
	kind  scopeKind
	count int
}

// scopeStack tracks the scopes opened on a transport, run-length encoded.
type scopeStack struct {
	out  ports.Responder
	runs []scopeRun
}

func (s *scopeStack) begin(name string, size int, kind scopeKind) error {
	if err := s.out.BeginScope(name, size); err != nil {
		return err
	}
	if n := len(s.runs); n > 0 && s.runs[n-1].kind == kind {
		s.runs[n-1].count++
		return nil
	}
	s.runs = append(s.runs, scopeRun{kind: kind, count: 1})
	return nil
}

// pop removes the innermost scope from the stack without telling the transport.
func (s *scopeStack) pop() {
	n := len(s.runs)
	s.runs[n-1].count--
	if s.runs[n-1].count == 0 {
		s.runs = s.runs[:n-1]
	}
}

func (s *scopeStack) top() (scopeKind, bool) {
	if len(s.runs) == 0 {
		return 0, false
	}
	return s.runs[len(s.runs)-1].kind, true
}

// endExplicit closes the innermost scope, which must be explicit, then every
// implicit scope wrapping it.
func (s *scopeStack) endExplicit() error {
	if kind, ok := s.top(); !ok || kind != explicitScope {
		return fmt.Errorf("%w: no explicit scope to close", domain.ErrScopeMismatch)
	}
	s.pop()
	if err := s.out.EndScope(); err != nil {
		return err
	}
	return s.endImplicit()
}

// endImplicit closes implicit scopes until an explicit one (or nothing) is on top.
func (s *scopeStack) endImplicit() error {
	for {
		if kind, ok := s.top(); !ok || kind != implicitScope {
			return nil
		}
		s.pop()
		if err := s.out.EndScope(); err != nil {
			return err
		}
	}
}

// cleanup closes every remaining scope regardless of kind.
func (s *scopeStack) cleanup() error {
	var first error
	for len(s.runs) > 0 {
		s.pop()
		if err := s.out.EndScope(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (s *scopeStack) depth() int {
	d := 0
	for _, r := range s.runs {
		d += r.count
	}
	return d
}
