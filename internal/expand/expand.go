// Package expand implements the Expandable Tree: flags, flag groups, flag
// sets, env entries, and env sets, each expanding against a Variable Model
// scope into an ordered argument list or an environment mapping.
//
// Grounded on beads' internal/formula/expand.go and stepcondition.go: the
// former's guarded, depth-bounded expansion loop is the model for the
// flag-group guard chain below (evaluate guards in order, bail on the
// first rejection); the latter's isTruthy/compare helpers for step
// filtering are the direct ancestor of expandIfTrue/expandIfFalse/
// expandIfEqual. Per REDESIGN FLAGS item 1, flags and flag groups share
// one Expandable interface instead of beads' separate step-kind
// switch — the "single chunk" flag specialization is a template-level
// fast path (see internal/template), not a distinct public type here.
package expand

import (
	"github.com/forgebld/tcfeatures/internal/ferrors"
	"github.com/forgebld/tcfeatures/internal/template"
	"github.com/forgebld/tcfeatures/internal/variable"
)

// Context carries everything an Expandable needs to produce output: the
// variable scope in effect and the expander used to materialize lazy
// sequences encountered during iteration.
type Context struct {
	Scope    *variable.Scope
	Expander variable.Expander
}

// Derive returns a context whose scope is c.Scope.Derive(name, value),
// keeping the same expander.
func (c Context) Derive(name string, value variable.Value) Context {
	return Context{Scope: c.Scope.Derive(name, value), Expander: c.Expander}
}

// ArgWriter accumulates command-line arguments in expansion order.
type ArgWriter struct {
	Args []string
}

func (w *ArgWriter) Append(arg string) { w.Args = append(w.Args, arg) }

// EnvBuilder accumulates environment entries in expansion order, and
// rejects a second write to a key already set — the throw-on-duplicate
// behavior spec.md §9 calls out to preserve rather than silently
// coalesce.
type EnvBuilder struct {
	order []string
	vals  map[string]string
}

// NewEnvBuilder returns an empty builder.
func NewEnvBuilder() *EnvBuilder {
	return &EnvBuilder{vals: map[string]string{}}
}

// Set records key=value, failing if key was already set by an earlier
// expansion within this builder's lifetime.
func (b *EnvBuilder) Set(key, value string) error {
	if _, exists := b.vals[key]; exists {
		return ferrors.ExpansionFailed("duplicate environment key %q", key)
	}
	b.vals[key] = value
	b.order = append(b.order, key)
	return nil
}

// Entries returns the accumulated (key, value) pairs in insertion order.
func (b *EnvBuilder) Entries() []EnvPair {
	out := make([]EnvPair, len(b.order))
	for i, k := range b.order {
		out[i] = EnvPair{Key: k, Value: b.vals[k]}
	}
	return out
}

// EnvPair is one resolved environment entry.
type EnvPair struct {
	Key   string
	Value string
}

// Expandable is the uniform entry point shared by Flag and FlagGroup.
type Expandable interface {
	Expand(ctx Context, out *ArgWriter) error
}

// Flag contributes exactly one argument: the concatenation of its
// template's chunk expansions.
type Flag struct {
	Template *template.Template
}

// Expand appends the flag's single expanded argument to out.
func (f *Flag) Expand(ctx Context, out *ArgWriter) error {
	s, err := f.Template.Expand(ctx.Scope)
	if err != nil {
		return err
	}
	out.Append(s)
	return nil
}

// EqualGuard is the (name, literal) pair required by expandIfEqual.
type EqualGuard struct {
	Name  string
	Value string
}

// FlagGroup is an ordered collection of children — Flags or nested
// FlagGroups, never both at the same layer — gated by guards and
// optionally iterated over a sequence variable.
type FlagGroup struct {
	Children []Expandable

	IterateOver string

	ExpandIfAllAvailable  []string
	ExpandIfNoneAvailable []string
	ExpandIfTrue          string
	ExpandIfFalse         string
	ExpandIfEqual         *EqualGuard
}

// Expand evaluates the group's guards in the order spec.md §4.3
// prescribes, stopping at the first rejection; then either iterates
// IterateOver (deriving one child scope per element, each a full pass of
// children in declaration order) or expands children once.
func (g *FlagGroup) Expand(ctx Context, out *ArgWriter) error {
	ok, err := g.guardsSatisfied(ctx.Scope)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if g.IterateOver == "" {
		return g.expandChildren(ctx, out)
	}

	elems, err := ctx.Scope.GetSequence(g.IterateOver, ctx.Expander)
	if err != nil {
		return ferrors.ExpansionFailedWrap(err, "iterating over %q", g.IterateOver)
	}
	for _, elem := range elems {
		elemCtx := ctx.Derive(g.IterateOver, elem)
		if err := g.expandChildren(elemCtx, out); err != nil {
			return err
		}
	}
	return nil
}

func (g *FlagGroup) expandChildren(ctx Context, out *ArgWriter) error {
	for _, child := range g.Children {
		if err := child.Expand(ctx, out); err != nil {
			return err
		}
	}
	return nil
}

// guardsSatisfied evaluates expandIfAllAvailable, expandIfNoneAvailable,
// expandIfTrue, expandIfFalse, expandIfEqual in that order, each one
// short-circuiting the chain on rejection.
func (g *FlagGroup) guardsSatisfied(scope *variable.Scope) (bool, error) {
	for _, name := range g.ExpandIfAllAvailable {
		if !scope.IsAvailable(name) {
			return false, nil
		}
	}
	for _, name := range g.ExpandIfNoneAvailable {
		if scope.IsAvailable(name) {
			return false, nil
		}
	}
	if g.ExpandIfTrue != "" {
		if !scope.IsAvailable(g.ExpandIfTrue) {
			return false, nil
		}
		truthy, err := scope.IsTruthy(g.ExpandIfTrue)
		if err != nil {
			return false, err
		}
		if !truthy {
			return false, nil
		}
	}
	if g.ExpandIfFalse != "" {
		if !scope.IsAvailable(g.ExpandIfFalse) {
			return false, nil
		}
		truthy, err := scope.IsTruthy(g.ExpandIfFalse)
		if err != nil {
			return false, err
		}
		if truthy {
			return false, nil
		}
	}
	if g.ExpandIfEqual != nil {
		if !scope.IsAvailable(g.ExpandIfEqual.Name) {
			return false, nil
		}
		got, err := scope.GetString(g.ExpandIfEqual.Name)
		if err != nil {
			return false, err
		}
		if got != g.ExpandIfEqual.Value {
			return false, nil
		}
	}
	return true, nil
}
