// Package template compiles and expands the `%{name}` / `%{name.field.path}`
// string templates used throughout flag, flag-group, and environment-entry
// values.
//
// Grounded on beads' internal/formula/variables.go, which compiles a
// regex once (varPattern) and substitutes `{{var}}` references against a
// flat string map. This package generalizes that shape two ways: the
// reference syntax gains a dotted accessor for structured variables, and
// compilation produces a reusable chunk list instead of re-scanning the
// pattern on every expansion (formula.SubstituteVariables re-scans per
// call, which is fine for one-shot workflow text but not for a template
// expanded once per build action).
package template

import (
	"errors"
	"strings"

	"github.com/forgebld/tcfeatures/internal/ferrors"
	"github.com/forgebld/tcfeatures/internal/variable"
)

// Template is a compiled `%{...}` pattern: an ordered list of literal and
// reference chunks.
type Template struct {
	chunks []chunk
}

type chunk struct {
	literal string // valid when !isRef
	path    []string
	isRef   bool
}

// Compile parses pattern into a Template. A malformed reference —
// unbalanced `%{`, or an empty name — is an InvalidConfiguration error
// since it is a static defect in the configuration record, not something
// that can only be discovered once a scope is available.
func Compile(pattern string) (*Template, error) {
	var chunks []chunk
	var lit strings.Builder

	flushLiteral := func() {
		if lit.Len() > 0 {
			chunks = append(chunks, chunk{literal: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	for i < len(pattern) {
		if pattern[i] == '%' && i+1 < len(pattern) && pattern[i+1] == '{' {
			end := strings.IndexByte(pattern[i+2:], '}')
			if end < 0 {
				return nil, ferrors.InvalidConfiguration("unbalanced %%{ in template %q", pattern)
			}
			ref := pattern[i+2 : i+2+end]
			if ref == "" {
				return nil, ferrors.InvalidConfiguration("empty variable reference in template %q", pattern)
			}
			path := strings.Split(ref, ".")
			for _, p := range path {
				if p == "" {
					return nil, ferrors.InvalidConfiguration("empty path segment in reference %q in template %q", ref, pattern)
				}
			}
			flushLiteral()
			chunks = append(chunks, chunk{path: path, isRef: true})
			i += 2 + end + 1
			continue
		}
		lit.WriteByte(pattern[i])
		i++
	}
	flushLiteral()

	return &Template{chunks: chunks}, nil
}

// Expand concatenates the template's chunks against scope. A reference to
// a variable not bound in scope, or to a dotted path that does not
// resolve inside a Structure, is an ExpansionFailed error. A reference to
// a non-scalar value at the leaf of the path (a bare Sequence or
// Structure with no further field) is also an expansion error, since
// templates only ever produce a single string.
func (t *Template) Expand(scope *variable.Scope) (string, error) {
	var out strings.Builder
	for _, c := range t.chunks {
		if !c.isRef {
			out.WriteString(c.literal)
			continue
		}
		s, err := expandRef(scope, c.path)
		if err != nil {
			return "", err
		}
		out.WriteString(s)
	}
	return out.String(), nil
}

func expandRef(scope *variable.Scope, path []string) (string, error) {
	root := path[0]
	if len(path) == 1 {
		s, err := scope.GetString(root)
		if err != nil {
			return "", wrapMissing(err, root)
		}
		return s, nil
	}

	v, err := scope.Get(root)
	if err != nil {
		return "", wrapMissing(err, root)
	}
	st, ok := v.(variable.Structure)
	if !ok {
		return "", ferrors.ExpansionFailed("variable %q is not a structure, cannot access field %q", root, strings.Join(path[1:], "."))
	}
	field, ok := st.Field(path[1:])
	if !ok {
		return "", ferrors.ExpansionFailed("field %q not found on structure %q", strings.Join(path[1:], "."), root)
	}
	switch fv := field.(type) {
	case variable.String:
		return string(fv), nil
	case variable.Integer:
		return expandScalar(fv)
	default:
		return "", ferrors.ExpansionFailed("field %q.%s is not a scalar", root, strings.Join(path[1:], "."))
	}
}

// wrapMissing re-surfaces a bare MissingVariableError from the Variable
// Model as an ExpansionFailedError, since spec.md draws the line between
// "unbound in this scope" (the Variable Model's own vocabulary) and
// "template reference could not expand" (this package's). Any other
// error (e.g. a type-mismatch ExpansionFailedError from GetString) is
// already in the right vocabulary and passes through unchanged.
func wrapMissing(err error, name string) error {
	var mv *ferrors.MissingVariableError
	if errors.As(err, &mv) {
		return ferrors.ExpansionFailedWrap(err, "reference to %q", name)
	}
	return err
}

func expandScalar(v variable.Integer) (string, error) {
	tmp := variable.NewScope(map[string]variable.Value{"_": v})
	return tmp.GetString("_")
}

// References returns the distinct variable names (root path segment only)
// the template depends on, in first-appearance order.
func (t *Template) References() []string {
	seen := map[string]bool{}
	var out []string
	for _, c := range t.chunks {
		if !c.isRef {
			continue
		}
		root := c.path[0]
		if !seen[root] {
			seen[root] = true
			out = append(out, root)
		}
	}
	return out
}
