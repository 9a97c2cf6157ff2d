// Package resolver explains tool resolution: given an action config's
// ordered tool list and the currently enabled feature set, it reports
// not just which tool wins (engine.FeatureConfiguration.GetToolForAction
// already does that) but why each candidate did or didn't match, for
// `featurectl tool --explain`.
//
// Grounded on beads' internal/resolver.StandardResolver, which exposes
// ResolveBest (single winner) and ResolveAll (every candidate, ranked)
// over a Requirement. That resolver scores candidates by tag overlap and
// a cost/performance profile heuristic; tool resolution here has no
// scoring — spec.md §4.5 defines it as strict first-match in declaration
// order — so ResolveAll below ranks by nothing but declaration order and
// instead reports each candidate's *satisfaction reason*, the one part
// of StandardResolver's shape (best-first list of candidates with how
// they fared) worth keeping in a first-match world.
package resolver

import (
	"fmt"
	"strings"

	"github.com/forgebld/tcfeatures/internal/expand"
	"github.com/forgebld/tcfeatures/internal/graph"
)

// Candidate is one tool's resolution outcome: whether its with-feature
// set was satisfied, and a human-readable reason either way.
type Candidate struct {
	Index     int
	Tool      graph.Tool
	Satisfied bool
	Reason    string
}

// ResolveAll evaluates every tool in declaration order and reports each
// one's outcome, so a caller that wants to know why the *n*th tool
// wasn't picked can see it without re-deriving the with-feature check
// itself.
func ResolveAll(tools []graph.Tool, isEnabled expand.IsEnabled) []Candidate {
	out := make([]Candidate, len(tools))
	for i, tool := range tools {
		satisfied, reason := explain(tool.WithFeatures, isEnabled)
		out[i] = Candidate{Index: i, Tool: tool, Satisfied: satisfied, Reason: reason}
	}
	return out
}

// ResolveBest returns the first satisfied candidate, matching
// engine.FeatureConfiguration.GetToolForAction's own selection rule, or
// ok=false if none matched.
func ResolveBest(tools []graph.Tool, isEnabled expand.IsEnabled) (Candidate, bool) {
	for _, c := range ResolveAll(tools, isEnabled) {
		if c.Satisfied {
			return c, true
		}
	}
	return Candidate{}, false
}

func explain(w expand.WithFeatureSets, isEnabled expand.IsEnabled) (bool, string) {
	if len(w) == 0 {
		return true, "no with-feature predicates"
	}
	var reasons []string
	for _, set := range w {
		ok, why := setReason(set, isEnabled)
		if ok {
			return true, why
		}
		reasons = append(reasons, why)
	}
	return false, strings.Join(reasons, "; ")
}

func setReason(w expand.WithFeatureSet, isEnabled expand.IsEnabled) (bool, string) {
	var missingPositive, presentNegative []string
	for _, f := range w.Features {
		if !isEnabled(f) {
			missingPositive = append(missingPositive, f)
		}
	}
	for _, f := range w.NotFeatures {
		if isEnabled(f) {
			presentNegative = append(presentNegative, f)
		}
	}
	if len(missingPositive) == 0 && len(presentNegative) == 0 {
		return true, "all required features enabled, no excluded features enabled"
	}
	var parts []string
	if len(missingPositive) > 0 {
		parts = append(parts, fmt.Sprintf("missing required feature(s) %v", missingPositive))
	}
	if len(presentNegative) > 0 {
		parts = append(parts, fmt.Sprintf("excluded feature(s) %v enabled", presentNegative))
	}
	return false, strings.Join(parts, ", ")
}
