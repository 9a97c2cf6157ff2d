package expand

// FlagSet is a group of flag groups scoped to a set of action names and
// gated by an expandIfAllAvailable guard plus with-feature predicates.
type FlagSet struct {
	Actions              []string
	ExpandIfAllAvailable []string
	WithFeatures         WithFeatureSets
	FlagGroups           []*FlagGroup
}

// Expand runs the four checks of spec.md §4.3 in order, then expands
// each flag group in declaration order into out. action is the build
// action being expanded for; isEnabled reports feature enablement for
// the with-feature check.
func (fs *FlagSet) Expand(ctx Context, action string, isEnabled IsEnabled, out *ArgWriter) error {
	for _, name := range fs.ExpandIfAllAvailable {
		if !ctx.Scope.IsAvailable(name) {
			return nil
		}
	}
	if !fs.WithFeatures.Satisfied(isEnabled) {
		return nil
	}
	if !containsAction(fs.Actions, action) {
		return nil
	}
	for _, g := range fs.FlagGroups {
		if err := g.Expand(ctx, out); err != nil {
			return err
		}
	}
	return nil
}

// ExpandImplicit runs the same guard checks as Expand but skips the
// action-name containment check, for action-config flag sets whose
// Actions field is implicitly the owning action config's action name
// rather than an explicit list (spec.md §4.4).
func (fs *FlagSet) ExpandImplicit(ctx Context, isEnabled IsEnabled, out *ArgWriter) error {
	for _, name := range fs.ExpandIfAllAvailable {
		if !ctx.Scope.IsAvailable(name) {
			return nil
		}
	}
	if !fs.WithFeatures.Satisfied(isEnabled) {
		return nil
	}
	for _, g := range fs.FlagGroups {
		if err := g.Expand(ctx, out); err != nil {
			return err
		}
	}
	return nil
}

func containsAction(actions []string, action string) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}
