package engine

import (
	"sort"

	"github.com/forgebld/tcfeatures/internal/ferrors"
	"github.com/forgebld/tcfeatures/internal/graph"
)

// selectFixedPoint runs the five-step algorithm of spec.md §4.5 and
// materializes its result into a FeatureConfiguration, or fails with
// CollidingProvides.
func selectFixedPoint(g *graph.Graph, requested []string) (*FeatureConfiguration, *SelectionTrace, error) {
	trace := newTrace()
	enabled := map[int]bool{}

	// Step 1: union of known requested names and defaults.
	for _, name := range requested {
		if idx, ok := g.IndexOf(name); ok {
			if !enabled[idx] {
				enabled[idx] = true
				trace.record(g.Selectables[idx].Name, true, "requested")
			}
		}
	}
	for _, sel := range g.Selectables {
		if sel.DefaultEnabled {
			idx, _ := g.IndexOf(sel.Name)
			if !enabled[idx] {
				enabled[idx] = true
				trace.record(sel.Name, true, "default-enabled")
			}
		}
	}

	for {
		grew := implicationClosure(g, enabled, trace)
		shrank := requirementPrune(g, enabled, trace)
		if !grew && !shrank {
			break
		}
	}

	// Step 4: provides collision check, deterministic by symbol name.
	if err := checkProvidesCollisions(g, enabled); err != nil {
		return nil, trace, err
	}

	// Step 5: materialize.
	return materialize(g, enabled), trace, nil
}

func snapshotKeys(m map[int]bool) map[int]bool {
	cp := make(map[int]bool, len(m))
	for k := range m {
		cp[k] = true
	}
	return cp
}

// implicationClosure enables every selectable reachable from the current
// enabled set via implies, to a local fixed point. Monotone-increasing:
// it never disables anything, so it is safe to re-run after a pruning
// pass without undoing that pass's work.
func implicationClosure(g *graph.Graph, enabled map[int]bool, trace *SelectionTrace) bool {
	grew := false
	for {
		changed := false
		for idx := range snapshotKeys(enabled) {
			for _, t := range g.Implies(idx) {
				if !enabled[t] {
					enabled[t] = true
					trace.record(g.Selectables[t].Name, true, "implied by "+g.Selectables[idx].Name)
					changed = true
					grew = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return grew
}

// requirementPrune disables every selectable whose requirement clauses
// are unsatisfied, cascading the disablement in both directions
// required by spec.md §8's implication-monotonicity property: disabling
// a selectable re-checks everything that required it (its requirement
// may now be satisfiable only through a different clause, or not at
// all) via requiredBy, and unconditionally disables everything that
// implies it via impliedBy — an implier left enabled while its implied
// target is disabled would violate "a implies b and a enabled => b
// enabled", and would otherwise be re-added by the next implication
// pass, oscillating with this one forever. Monotone-decreasing: it
// never enables anything.
func requirementPrune(g *graph.Graph, enabled map[int]bool, trace *SelectionTrace) bool {
	shrank := false

	queue := make([]int, 0, len(enabled))
	queued := map[int]bool{}
	enqueue := func(idx int) {
		if enabled[idx] && !queued[idx] {
			queue = append(queue, idx)
			queued[idx] = true
		}
	}
	for idx := range enabled {
		if len(g.RequirementClauses(idx)) > 0 {
			enqueue(idx)
		}
	}

	var disable func(idx int, reason string)
	disable = func(idx int, reason string) {
		if !enabled[idx] {
			return
		}
		delete(enabled, idx)
		trace.record(g.Selectables[idx].Name, false, reason)
		shrank = true

		for _, r := range g.RequiredBy(idx) {
			enqueue(r)
		}
		for _, p := range g.ImpliedBy(idx) {
			if enabled[p] {
				disable(p, "implies "+g.Selectables[idx].Name+", disabled because its requirement is unsatisfied")
			}
		}
	}

	for len(queue) > 0 {
		idx := queue[0]
		queue = queue[1:]
		queued[idx] = false

		if !enabled[idx] {
			continue
		}
		clauses := g.RequirementClauses(idx)
		if len(clauses) == 0 || clauseSatisfied(enabled, clauses) {
			continue
		}
		disable(idx, "requirement unsatisfied")
	}

	return shrank
}

func clauseSatisfied(enabled map[int]bool, clauses [][]int) bool {
	for _, clause := range clauses {
		ok := true
		for _, m := range clause {
			if !enabled[m] {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

func checkProvidesCollisions(g *graph.Graph, enabled map[int]bool) error {
	symbols := map[string]bool{}
	for idx := range enabled {
		for _, sym := range g.Provides(idx) {
			symbols[sym] = true
		}
	}
	syms := make([]string, 0, len(symbols))
	for s := range symbols {
		syms = append(syms, s)
	}
	sort.Strings(syms)

	for _, sym := range syms {
		var providers []string
		for _, idx := range g.ProvidedBy(sym) {
			if enabled[idx] {
				providers = append(providers, g.Selectables[idx].Name)
			}
		}
		if len(providers) > 1 {
			sort.Strings(providers)
			return ferrors.CollidingProvides(sym, providers)
		}
	}
	return nil
}

func materialize(g *graph.Graph, enabled map[int]bool) *FeatureConfiguration {
	fc := &FeatureConfiguration{
		graph:       g,
		enabled:     enabled,
		actionIndex: map[string]int{},
	}
	for idx, sel := range g.Selectables {
		if !enabled[idx] {
			continue
		}
		if sel.Kind == graph.KindFeature {
			fc.enabledFeatures = append(fc.enabledFeatures, idx)
		} else {
			fc.actionIndex[sel.ActionName] = idx
		}
	}
	return fc
}
