package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/forgebld/tcfeatures/internal/expand"
	"github.com/forgebld/tcfeatures/internal/ferrors"
	"github.com/forgebld/tcfeatures/internal/template"
)

// Graph is an immutable selectable graph: the ordered list of
// selectables (order preserved from the configuration record — features
// first, then action configs, each group in declaration order), a name
// index, an action-name index, and the four relations stored both
// forward and reverse as adjacency lists keyed by selectable index. Per
// spec.md §9's redesign note, there are no object-reference cycles: every
// relation is an int or a slice of ints into Selectables, which is what
// makes a *Graph safe to share across goroutines without locks once
// Build returns.
type Graph struct {
	Selectables []Selectable

	nameIndex   map[string]int
	actionIndex map[string]int // action name -> selectable index (action configs only)

	implies   [][]int
	impliedBy [][]int

	requires   [][]RequirementClause // clauses of names as declared; Build resolves them into requiresIx
	requiresIx [][][]int
	requiredBy [][]int

	provides   [][]string
	providedBy map[string][]int

	artifactPatterns map[string]*template.Template
}

// Build constructs a Graph from cfg, performing every static validation
// named in spec.md §4.4. All defects found are collected and returned
// together as one InvalidConfigurationError, following the teacher's
// Formula.Validate convention of reporting everything wrong at once
// rather than stopping at the first problem.
func Build(cfg ConfigurationRecord) (*Graph, error) {
	var problems []string

	g := &Graph{
		nameIndex:        map[string]int{},
		actionIndex:      map[string]int{},
		providedBy:       map[string][]int{},
		artifactPatterns: map[string]*template.Template{},
	}

	for _, f := range cfg.Features {
		if _, dup := g.nameIndex[f.Name]; dup {
			problems = append(problems, fmt.Sprintf("duplicate selectable name %q", f.Name))
			continue
		}
		idx := len(g.Selectables)
		g.nameIndex[f.Name] = idx
		g.Selectables = append(g.Selectables, Selectable{
			Kind:           KindFeature,
			Name:           f.Name,
			DefaultEnabled: f.DefaultEnabled,
			FlagSets:       f.FlagSets,
			EnvSets:        f.EnvSets,
		})
		g.implies = append(g.implies, nil)
		g.impliedBy = append(g.impliedBy, nil)
		g.requires = append(g.requires, f.Requires)
		g.requiresIx = append(g.requiresIx, nil)
		g.requiredBy = append(g.requiredBy, nil)
		g.provides = append(g.provides, f.Provides)
	}

	for _, ac := range cfg.ActionConfigs {
		if _, dup := g.nameIndex[ac.ConfigName]; dup {
			problems = append(problems, fmt.Sprintf("duplicate selectable name %q", ac.ConfigName))
			continue
		}
		if existing, dup := g.actionIndex[ac.ActionName]; dup {
			problems = append(problems, fmt.Sprintf("duplicate action config for action %q: %q and %q",
				ac.ActionName, g.Selectables[existing].Name, ac.ConfigName))
			continue
		}
		for _, fs := range ac.FlagSets {
			if len(fs.Actions) != 0 {
				problems = append(problems, fmt.Sprintf(
					"action config %q: flag set must not list action names explicitly (action is implicit), got %v",
					ac.ConfigName, fs.Actions))
			}
		}

		idx := len(g.Selectables)
		g.nameIndex[ac.ConfigName] = idx
		g.actionIndex[ac.ActionName] = idx
		g.Selectables = append(g.Selectables, Selectable{
			Kind:           KindActionConfig,
			Name:           ac.ConfigName,
			DefaultEnabled: ac.DefaultEnabled,
			FlagSets:       ac.FlagSets,
			ActionName:     ac.ActionName,
			Tools:          ac.Tools,
		})
		g.implies = append(g.implies, nil)
		g.impliedBy = append(g.impliedBy, nil)
		g.requires = append(g.requires, ac.Requires)
		g.requiresIx = append(g.requiresIx, nil)
		g.requiredBy = append(g.requiredBy, nil)
		g.provides = append(g.provides, ac.Provides)
	}

	resolve := func(name string) (int, bool) {
		idx, ok := g.nameIndex[name]
		return idx, ok
	}

	// implies
	allImplies := collectImplies(cfg)
	for name, targets := range allImplies {
		idx, ok := resolve(name)
		if !ok {
			continue // the selectable itself was already reported as a dup, skip
		}
		for _, t := range targets {
			tidx, ok := resolve(t)
			if !ok {
				problems = append(problems, fmt.Sprintf("%q implies unknown selectable %q", name, t))
				continue
			}
			g.implies[idx] = append(g.implies[idx], tidx)
			g.impliedBy[tidx] = append(g.impliedBy[tidx], idx)
		}
	}

	// requires
	for idx, clauses := range g.requires {
		var resolved [][]int
		for _, clause := range clauses {
			var ix []int
			for _, name := range clause {
				tidx, ok := resolve(name)
				if !ok {
					problems = append(problems, fmt.Sprintf("%q requires unknown selectable %q", g.Selectables[idx].Name, name))
					continue
				}
				ix = append(ix, tidx)
				g.requiredBy[tidx] = append(g.requiredBy[tidx], idx)
			}
			resolved = append(resolved, ix)
		}
		g.requiresIx[idx] = resolved
	}

	// provides
	for idx, symbols := range g.provides {
		for _, sym := range symbols {
			g.providedBy[sym] = append(g.providedBy[sym], idx)
		}
	}

	// tool with-feature set name references
	for _, sel := range g.Selectables {
		if sel.Kind != KindActionConfig {
			continue
		}
		for _, tool := range sel.Tools {
			for _, name := range allFeatureNames(tool.WithFeatures) {
				if _, ok := resolve(name); !ok {
					problems = append(problems, fmt.Sprintf("action config %q tool %q references unknown feature %q", sel.Name, tool.Path, name))
				}
			}
		}
	}

	for _, p := range cfg.ArtifactNamePatterns {
		if _, dup := g.artifactPatterns[p.Category]; dup {
			problems = append(problems, fmt.Sprintf("duplicate artifact name pattern for category %q", p.Category))
			continue
		}
		g.artifactPatterns[p.Category] = p.Pattern
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, ferrors.InvalidConfiguration("%s", strings.Join(problems, "; "))
	}

	return g, nil
}

func collectImplies(cfg ConfigurationRecord) map[string][]string {
	m := map[string][]string{}
	for _, f := range cfg.Features {
		if len(f.Implies) > 0 {
			m[f.Name] = f.Implies
		}
	}
	for _, ac := range cfg.ActionConfigs {
		if len(ac.Implies) > 0 {
			m[ac.ConfigName] = ac.Implies
		}
	}
	return m
}

func allFeatureNames(w expand.WithFeatureSets) []string {
	var out []string
	for _, s := range w {
		out = append(out, s.Features...)
		out = append(out, s.NotFeatures...)
	}
	return out
}

// IndexOf returns the selectable index for name.
func (g *Graph) IndexOf(name string) (int, bool) {
	idx, ok := g.nameIndex[name]
	return idx, ok
}

// ActionConfigFor returns the selectable index of the action config
// bound to actionName.
func (g *Graph) ActionConfigFor(actionName string) (int, bool) {
	idx, ok := g.actionIndex[actionName]
	return idx, ok
}

// Implies returns the indices directly implied by idx.
func (g *Graph) Implies(idx int) []int { return g.implies[idx] }

// ImpliedBy returns the indices that directly imply idx.
func (g *Graph) ImpliedBy(idx int) []int { return g.impliedBy[idx] }

// RequirementClauses returns idx's requirement clauses as resolved
// index slices.
func (g *Graph) RequirementClauses(idx int) [][]int { return g.requiresIx[idx] }

// RequiredBy returns the indices that name idx in at least one of their
// requirement clauses.
func (g *Graph) RequiredBy(idx int) []int { return g.requiredBy[idx] }

// Provides returns the symbols idx provides.
func (g *Graph) Provides(idx int) []string { return g.provides[idx] }

// ProvidedBy returns the selectable indices that provide symbol.
func (g *Graph) ProvidedBy(symbol string) []int { return g.providedBy[symbol] }

// Pattern returns the artifact-name template configured for category.
func (g *Graph) Pattern(category string) (*template.Template, bool) {
	t, ok := g.artifactPatterns[category]
	return t, ok
}
