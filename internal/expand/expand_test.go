package expand

import (
	"testing"

	"github.com/forgebld/tcfeatures/internal/template"
	"github.com/forgebld/tcfeatures/internal/variable"
)

func mustCompile(t *testing.T, pattern string) *template.Template {
	t.Helper()
	tpl, err := template.Compile(pattern)
	if err != nil {
		t.Fatalf("compile %q: %v", pattern, err)
	}
	return tpl
}

func TestIterationOneArgumentPerElement(t *testing.T) {
	group := &FlagGroup{
		IterateOver: "include_paths",
		Children: []Expandable{
			&Flag{Template: mustCompile(t, "-I %{include_paths}")},
		},
	}
	scope := variable.NewScope(map[string]variable.Value{
		"include_paths": variable.Sequence{variable.String("a"), variable.String("b/c")},
	})
	out := &ArgWriter{}
	if err := group.Expand(Context{Scope: scope}, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"-I a", "-I b/c"}
	if len(out.Args) != len(want) {
		t.Fatalf("expected %v, got %v", want, out.Args)
	}
	for i := range want {
		if out.Args[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, out.Args)
		}
	}
}

func TestIterationNoSpaceProducesJoinedArgument(t *testing.T) {
	group := &FlagGroup{
		IterateOver: "include_paths",
		Children: []Expandable{
			&Flag{Template: mustCompile(t, "-I%{include_paths}")},
		},
	}
	scope := variable.NewScope(map[string]variable.Value{
		"include_paths": variable.Sequence{variable.String("a"), variable.String("b/c")},
	})
	out := &ArgWriter{}
	if err := group.Expand(Context{Scope: scope}, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"-Ia", "-Ib/c"}
	for i := range want {
		if out.Args[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, out.Args)
		}
	}
}

func TestExpandIfAllAvailableGuard(t *testing.T) {
	group := &FlagGroup{
		ExpandIfAllAvailable: []string{"opt"},
		Children:             []Expandable{&Flag{Template: mustCompile(t, "-flag")}},
	}

	out := &ArgWriter{}
	if err := group.Expand(Context{Scope: variable.NewScope(nil)}, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Args) != 0 {
		t.Fatalf("expected no output, got %v", out.Args)
	}

	scope := variable.NewScope(map[string]variable.Value{"opt": variable.String("yes")})
	out = &ArgWriter{}
	if err := group.Expand(Context{Scope: scope}, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Args) != 1 || out.Args[0] != "-flag" {
		t.Fatalf("expected [-flag], got %v", out.Args)
	}
}

func TestExpandIfTrueTruthiness(t *testing.T) {
	group := &FlagGroup{
		ExpandIfTrue: "debug",
		Children:     []Expandable{&Flag{Template: mustCompile(t, "-g")}},
	}

	scope := variable.NewScope(map[string]variable.Value{"debug": variable.String("")})
	out := &ArgWriter{}
	if err := group.Expand(Context{Scope: scope}, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Args) != 0 {
		t.Fatalf("expected skipped, got %v", out.Args)
	}

	scope = variable.NewScope(map[string]variable.Value{"debug": variable.String("1")})
	out = &ArgWriter{}
	if err := group.Expand(Context{Scope: scope}, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Args) != 1 || out.Args[0] != "-g" {
		t.Fatalf("expected [-g], got %v", out.Args)
	}
}

func TestGuardOrderStopsAtFirstRejection(t *testing.T) {
	// expandIfAllAvailable rejects before expandIfTrue would even be
	// consulted (and expandIfTrue's variable is unavailable, which
	// would itself be a guard-false, not an error — this checks we
	// never reach a state where an unrelated missing variable blows
	// up expansion).
	group := &FlagGroup{
		ExpandIfAllAvailable: []string{"missing"},
		ExpandIfTrue:         "also_missing",
		Children:             []Expandable{&Flag{Template: mustCompile(t, "-x")}},
	}
	out := &ArgWriter{}
	if err := group.Expand(Context{Scope: variable.NewScope(nil)}, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Args) != 0 {
		t.Fatalf("expected no output, got %v", out.Args)
	}
}

func TestFlagSetActionFiltering(t *testing.T) {
	fs := &FlagSet{
		Actions: []string{"c++-compile"},
		FlagGroups: []*FlagGroup{
			{Children: []Expandable{&Flag{Template: mustCompile(t, "-c")}}},
		},
	}
	isEnabled := func(string) bool { return true }
	scope := variable.NewScope(nil)

	out := &ArgWriter{}
	if err := fs.Expand(Context{Scope: scope}, "link", isEnabled, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Args) != 0 {
		t.Fatalf("expected no output for mismatched action, got %v", out.Args)
	}

	out = &ArgWriter{}
	if err := fs.Expand(Context{Scope: scope}, "c++-compile", isEnabled, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Args) != 1 || out.Args[0] != "-c" {
		t.Fatalf("expected [-c], got %v", out.Args)
	}
}

func TestWithFeatureSetSatisfaction(t *testing.T) {
	w := WithFeatureSet{Features: []string{"a"}, NotFeatures: []string{"b"}}
	enabled := map[string]bool{"a": true}
	isEnabled := func(name string) bool { return enabled[name] }
	if !w.satisfied(isEnabled) {
		t.Fatal("expected satisfied")
	}
	enabled["b"] = true
	if w.satisfied(isEnabled) {
		t.Fatal("expected not satisfied once notFeature enabled")
	}
}

func TestWithFeatureSetsEmptyIsSatisfied(t *testing.T) {
	var sets WithFeatureSets
	if !sets.Satisfied(func(string) bool { return false }) {
		t.Fatal("expected empty set list to be satisfied")
	}
}

func TestEnvBuilderRejectsDuplicateKeys(t *testing.T) {
	b := NewEnvBuilder()
	if err := b.Set("K", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Set("K", "2"); err == nil {
		t.Fatal("expected error on duplicate key")
	}
}

func TestEnvSetExpandsInDeclarationOrder(t *testing.T) {
	es := &EnvSet{
		Actions: []string{"link"},
		Entries: []EnvEntry{
			{Key: "A", Value: mustCompile(t, "%{x}")},
			{Key: "B", Value: mustCompile(t, "static")},
		},
	}
	scope := variable.NewScope(map[string]variable.Value{"x": variable.String("1")})
	out := NewEnvBuilder()
	if err := es.Expand(Context{Scope: scope}, "link", func(string) bool { return true }, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries := out.Entries()
	if len(entries) != 2 || entries[0].Key != "A" || entries[0].Value != "1" || entries[1].Key != "B" || entries[1].Value != "static" {
		t.Fatalf("unexpected entries: %v", entries)
	}
}
