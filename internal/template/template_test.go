package template

import (
	"errors"
	"testing"

	"github.com/forgebld/tcfeatures/internal/ferrors"
	"github.com/forgebld/tcfeatures/internal/variable"
)

func TestCompileAndExpandLiteralAndRef(t *testing.T) {
	tpl, err := Compile("-o %{output_file}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scope := variable.NewScope(map[string]variable.Value{
		"output_file": variable.String("out.o"),
	})
	got, err := tpl.Expand(scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "-o out.o" {
		t.Fatalf("expected '-o out.o', got %q", got)
	}
}

func TestCompileDottedAccessor(t *testing.T) {
	tpl, err := Compile("%{module_map.name}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scope := variable.NewScope(map[string]variable.Value{
		"module_map": variable.Structure{"name": variable.String("foo")},
	})
	got, err := tpl.Expand(scope)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "foo" {
		t.Fatalf("expected foo, got %q", got)
	}
}

func TestCompileUnbalancedBrace(t *testing.T) {
	_, err := Compile("-o %{output_file")
	var ic *ferrors.InvalidConfigurationError
	if !errors.As(err, &ic) {
		t.Fatalf("expected InvalidConfigurationError, got %v", err)
	}
}

func TestCompileEmptyReference(t *testing.T) {
	_, err := Compile("%{}")
	var ic *ferrors.InvalidConfigurationError
	if !errors.As(err, &ic) {
		t.Fatalf("expected InvalidConfigurationError, got %v", err)
	}
}

func TestExpandMissingVariable(t *testing.T) {
	tpl, err := Compile("%{missing}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = tpl.Expand(variable.NewScope(nil))
	var ef *ferrors.ExpansionFailedError
	if !errors.As(err, &ef) {
		t.Fatalf("expected ExpansionFailedError, got %v", err)
	}
}

func TestReferencesDeduplicatesInOrder(t *testing.T) {
	tpl, err := Compile("%{a}-%{b}-%{a}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	refs := tpl.References()
	if len(refs) != 2 || refs[0] != "a" || refs[1] != "b" {
		t.Fatalf("unexpected references: %v", refs)
	}
}

func TestExpandNonScalarVariableErrors(t *testing.T) {
	tpl, err := Compile("%{output}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scope := variable.NewScope(map[string]variable.Value{
		"output": variable.Sequence{variable.String("a")},
	})
	_, err = tpl.Expand(scope)
	var ef *ferrors.ExpansionFailedError
	if !errors.As(err, &ef) {
		t.Fatalf("expected ExpansionFailedError, got %v", err)
	}
}
