package variable

import (
	"strconv"

	"github.com/forgebld/tcfeatures/internal/ferrors"
)

// Scope is a chain of name→Value bindings. A root Scope holds a batch of
// initial bindings; every further Scope in the chain holds exactly one
// additional (name, value) pair layered over a parent, mirroring how
// beads' formula expansion layers loop/macro variables over the
// formula's base variable map without ever mutating it. Lookup walks
// inner-to-outer, so a derived binding shadows anything of the same name
// further up the chain.
type Scope struct {
	bindings map[string]Value

	name   string
	value  Value
	parent *Scope
}

// NewScope creates a root scope from a batch of bindings. The map is not
// copied; callers should not mutate it after constructing the scope.
func NewScope(bindings map[string]Value) *Scope {
	if bindings == nil {
		bindings = map[string]Value{}
	}
	return &Scope{bindings: bindings}
}

// Derive returns a new scope that shadows name with value, leaving s and
// every scope derived from it before now untouched.
func (s *Scope) Derive(name string, value Value) *Scope {
	return &Scope{name: name, value: value, parent: s}
}

func (s *Scope) lookup(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.bindings != nil {
			v, ok := cur.bindings[name]
			return v, ok
		}
		if cur.name == name {
			return cur.value, true
		}
	}
	return nil, false
}

// IsAvailable reports whether name is bound, without forcing a
// LazySequence to materialize — only GetSequence does that.
func (s *Scope) IsAvailable(name string) bool {
	_, ok := s.lookup(name)
	return ok
}

// Get returns the raw Value bound to name.
func (s *Scope) Get(name string) (Value, error) {
	v, ok := s.lookup(name)
	if !ok {
		return nil, ferrors.MissingVariable(name)
	}
	return v, nil
}

// GetSequence returns name's elements, materializing a LazySequence via
// expander on first use within this scope chain and caching the result
// on the LazySequence value itself so a later GetSequence call in the
// same expansion pass does not re-invoke expander.
func (s *Scope) GetSequence(name string, expander Expander) ([]Value, error) {
	v, ok := s.lookup(name)
	if !ok {
		return nil, ferrors.MissingVariable(name)
	}
	switch t := v.(type) {
	case Sequence:
		return []Value(t), nil
	case *LazySequence:
		vals, err := t.materialize(expander)
		if err != nil {
			return nil, ferrors.ExpansionFailedWrap(err, "materializing lazy sequence %q", name)
		}
		return vals, nil
	default:
		return nil, ferrors.ExpansionFailed("variable %q is not a sequence (got %s)", name, v.Kind())
	}
}

// GetString coerces name to a string: a String returns itself, an
// Integer returns its decimal form. Any other kind is an expansion
// error since only scalars have a defined textual form.
func (s *Scope) GetString(name string) (string, error) {
	v, ok := s.lookup(name)
	if !ok {
		return "", ferrors.MissingVariable(name)
	}
	switch t := v.(type) {
	case String:
		return string(t), nil
	case Integer:
		return strconv.FormatInt(int64(t), 10), nil
	default:
		return "", ferrors.ExpansionFailed("variable %q has no string representation (got %s)", name, v.Kind())
	}
}

// IsTruthy evaluates name's boolean sense for a guard: Boolean is itself,
// Integer is truthy iff non-zero, String is truthy iff non-empty,
// Sequence is truthy iff non-empty, Structure is always truthy (its
// mere presence is the signal). A LazySequence that has not yet been
// materialized cannot be judged without an Expander, which this
// operation's signature does not take (matching spec.md's isTruthy),
// so it is an expansion error: callers that need truthiness of an
// artifact sequence should materialize it via GetSequence first.
func (s *Scope) IsTruthy(name string) (bool, error) {
	v, ok := s.lookup(name)
	if !ok {
		return false, ferrors.MissingVariable(name)
	}
	switch t := v.(type) {
	case Boolean:
		return bool(t), nil
	case Integer:
		return t != 0, nil
	case String:
		return t != "", nil
	case Sequence:
		return len(t) > 0, nil
	case Structure:
		return true, nil
	case *LazySequence:
		if t.materialized {
			return len(t.cached) > 0, nil
		}
		return false, ferrors.ExpansionFailed("variable %q is an unmaterialized lazy sequence; expand it before testing truthiness", name)
	default:
		return false, ferrors.ExpansionFailed("variable %q has no defined truthiness (got %s)", name, v.Kind())
	}
}
