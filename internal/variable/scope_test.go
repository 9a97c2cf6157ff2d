package variable

import (
	"errors"
	"testing"

	"github.com/forgebld/tcfeatures/internal/ferrors"
)

func TestScopeDeriveShadows(t *testing.T) {
	root := NewScope(map[string]Value{"mode": String("release")})
	child := root.Derive("mode", String("debug"))

	got, err := child.GetString("mode")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "debug" {
		t.Fatalf("expected debug, got %q", got)
	}

	// root is untouched
	got, err = root.GetString("mode")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "release" {
		t.Fatalf("expected release, got %q", got)
	}
}

func TestScopeChainWalksToParent(t *testing.T) {
	root := NewScope(map[string]Value{"base": String("x")})
	child := root.Derive("extra", Integer(3))

	if !child.IsAvailable("base") {
		t.Fatal("expected base to be visible through parent chain")
	}
	n, err := child.Get("extra")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.(Integer) != 3 {
		t.Fatalf("expected 3, got %v", n)
	}
}

func TestScopeMissingVariable(t *testing.T) {
	s := NewScope(nil)
	_, err := s.Get("nope")
	var mv *ferrors.MissingVariableError
	if !errors.As(err, &mv) {
		t.Fatalf("expected MissingVariableError, got %v", err)
	}
	if mv.Name != "nope" {
		t.Fatalf("expected name nope, got %q", mv.Name)
	}
}

func TestScopeIsAvailableDoesNotMaterializeLazySequence(t *testing.T) {
	calls := 0
	expander := func(artifact any) ([]Value, error) {
		calls++
		return []Value{String("a")}, nil
	}
	s := NewScope(map[string]Value{"files": NewLazySequence("dir")})
	if !s.IsAvailable("files") {
		t.Fatal("expected files to be available")
	}
	if calls != 0 {
		t.Fatalf("IsAvailable must not invoke the expander, got %d calls", calls)
	}

	vals, err := s.GetSequence("files", expander)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vals) != 1 || vals[0] != String("a") {
		t.Fatalf("unexpected materialized values: %v", vals)
	}
	if calls != 1 {
		t.Fatalf("expected exactly one expander call, got %d", calls)
	}

	// Second call must reuse the cached materialization.
	if _, err := s.GetSequence("files", expander); err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected expander to still have been called once, got %d", calls)
	}
}

func TestScopeIsTruthy(t *testing.T) {
	cases := []struct {
		name string
		v    Value
		want bool
	}{
		{"bool-true", Boolean(true), true},
		{"bool-false", Boolean(false), false},
		{"int-nonzero", Integer(7), true},
		{"int-zero", Integer(0), false},
		{"string-nonempty", String("x"), true},
		{"string-empty", String(""), false},
		{"seq-nonempty", Sequence{String("x")}, true},
		{"seq-empty", Sequence{}, false},
		{"structure", Structure{"a": String("b")}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScope(map[string]Value{"v": tc.v})
			got, err := s.IsTruthy("v")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestScopeIsTruthyUnmaterializedLazySequenceErrors(t *testing.T) {
	s := NewScope(map[string]Value{"files": NewLazySequence("dir")})
	_, err := s.IsTruthy("files")
	var ef *ferrors.ExpansionFailedError
	if !errors.As(err, &ef) {
		t.Fatalf("expected ExpansionFailedError, got %v", err)
	}
}

func TestScopeGetStringRejectsNonScalar(t *testing.T) {
	s := NewScope(map[string]Value{"s": Sequence{String("a")}})
	_, err := s.GetString("s")
	var ef *ferrors.ExpansionFailedError
	if !errors.As(err, &ef) {
		t.Fatalf("expected ExpansionFailedError, got %v", err)
	}
}

func TestStructureField(t *testing.T) {
	s := Structure{
		"output": Structure{
			"approved": Boolean(true),
		},
	}
	v, ok := s.Field([]string{"output", "approved"})
	if !ok {
		t.Fatal("expected field to resolve")
	}
	if v.(Boolean) != true {
		t.Fatalf("expected true, got %v", v)
	}

	if _, ok := s.Field([]string{"output", "missing"}); ok {
		t.Fatal("expected missing field to fail")
	}
}
