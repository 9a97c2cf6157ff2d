package expand

import "github.com/forgebld/tcfeatures/internal/template"

// EnvEntry is a literal key plus a value template.
type EnvEntry struct {
	Key   string
	Value *template.Template
}

// EnvSet is an EnvEntry list scoped to action names and gated by
// with-feature predicates, analogous to FlagSet.
type EnvSet struct {
	Actions      []string
	Entries      []EnvEntry
	WithFeatures WithFeatureSets
}

// Expand writes each entry's (key, expanded value) pair into out when
// action and the with-feature predicates both admit this set. Duplicate
// keys across the caller's successive Expand calls (e.g. across
// features) are rejected by the EnvBuilder itself, per spec.md §7.
func (es *EnvSet) Expand(ctx Context, action string, isEnabled IsEnabled, out *EnvBuilder) error {
	if !es.WithFeatures.Satisfied(isEnabled) {
		return nil
	}
	if !containsAction(es.Actions, action) {
		return nil
	}
	for _, entry := range es.Entries {
		v, err := entry.Value.Expand(ctx.Scope)
		if err != nil {
			return err
		}
		if err := out.Set(entry.Key, v); err != nil {
			return err
		}
	}
	return nil
}
