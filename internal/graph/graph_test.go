package graph

import (
	"errors"
	"testing"

	"github.com/forgebld/tcfeatures/internal/expand"
	"github.com/forgebld/tcfeatures/internal/ferrors"
)

func TestBuildRejectsDuplicateSelectableNames(t *testing.T) {
	cfg := ConfigurationRecord{
		Features: []FeatureRecord{
			{Name: "gcc"},
			{Name: "gcc"},
		},
	}
	_, err := Build(cfg)
	var ic *ferrors.InvalidConfigurationError
	if !errors.As(err, &ic) {
		t.Fatalf("expected InvalidConfigurationError, got %v", err)
	}
}

func TestBuildRejectsDuplicateActionName(t *testing.T) {
	cfg := ConfigurationRecord{
		ActionConfigs: []ActionConfigRecord{
			{ConfigName: "link1", ActionName: "link"},
			{ConfigName: "link2", ActionName: "link"},
		},
	}
	_, err := Build(cfg)
	var ic *ferrors.InvalidConfigurationError
	if !errors.As(err, &ic) {
		t.Fatalf("expected InvalidConfigurationError, got %v", err)
	}
}

func TestBuildRejectsUnknownImplies(t *testing.T) {
	cfg := ConfigurationRecord{
		Features: []FeatureRecord{
			{Name: "a", Implies: []string{"ghost"}},
		},
	}
	_, err := Build(cfg)
	var ic *ferrors.InvalidConfigurationError
	if !errors.As(err, &ic) {
		t.Fatalf("expected InvalidConfigurationError, got %v", err)
	}
}

func TestBuildRejectsActionConfigFlagSetListingActions(t *testing.T) {
	cfg := ConfigurationRecord{
		ActionConfigs: []ActionConfigRecord{
			{
				ConfigName: "link",
				ActionName: "link",
				FlagSets:   []*expand.FlagSet{{Actions: []string{"link"}}},
			},
		},
	}
	_, err := Build(cfg)
	var ic *ferrors.InvalidConfigurationError
	if !errors.As(err, &ic) {
		t.Fatalf("expected InvalidConfigurationError, got %v", err)
	}
}

func TestBuildWiresRelations(t *testing.T) {
	cfg := ConfigurationRecord{
		Features: []FeatureRecord{
			{Name: "a", Implies: []string{"b"}},
			{Name: "b"},
			{Name: "c", Requires: []RequirementClause{{"b"}}},
			{Name: "gcc", Provides: []string{"compiler"}},
			{Name: "clang", Provides: []string{"compiler"}},
		},
	}
	g, err := Build(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	aIdx, _ := g.IndexOf("a")
	bIdx, _ := g.IndexOf("b")
	cIdx, _ := g.IndexOf("c")

	implies := g.Implies(aIdx)
	if len(implies) != 1 || implies[0] != bIdx {
		t.Fatalf("expected a implies b, got %v", implies)
	}
	impliedBy := g.ImpliedBy(bIdx)
	if len(impliedBy) != 1 || impliedBy[0] != aIdx {
		t.Fatalf("expected b impliedBy a, got %v", impliedBy)
	}

	clauses := g.RequirementClauses(cIdx)
	if len(clauses) != 1 || len(clauses[0]) != 1 || clauses[0][0] != bIdx {
		t.Fatalf("expected c requires [b], got %v", clauses)
	}
	requiredBy := g.RequiredBy(bIdx)
	if len(requiredBy) != 1 || requiredBy[0] != cIdx {
		t.Fatalf("expected b requiredBy c, got %v", requiredBy)
	}

	providers := g.ProvidedBy("compiler")
	if len(providers) != 2 {
		t.Fatalf("expected two providers of compiler, got %v", providers)
	}
}

func TestBuildPreservesDeclarationOrderFeaturesThenActionConfigs(t *testing.T) {
	cfg := ConfigurationRecord{
		Features: []FeatureRecord{
			{Name: "f1"},
			{Name: "f2"},
		},
		ActionConfigs: []ActionConfigRecord{
			{ConfigName: "ac1", ActionName: "compile"},
		},
	}
	g, err := Build(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	names := []string{"f1", "f2", "ac1"}
	for i, n := range names {
		if g.Selectables[i].Name != n {
			t.Fatalf("expected order %v, got %v at %d", names, g.Selectables[i].Name, i)
		}
	}
}
