package engine

import (
	"github.com/forgebld/tcfeatures/internal/expand"
	"github.com/forgebld/tcfeatures/internal/ferrors"
	"github.com/forgebld/tcfeatures/internal/graph"
	"github.com/forgebld/tcfeatures/internal/variable"
)

// PerFeatureExpansion is one selectable's contribution to a command
// line, with empty contributions retained so callers can attribute
// absence (spec.md §4.5).
type PerFeatureExpansion struct {
	Name string
	Args []string
}

// FeatureConfiguration is the immutable output of selection: which
// features and action-config action names are enabled, ready to expand
// command lines, environments, and tool resolutions against a per-call
// scope.
type FeatureConfiguration struct {
	graph *graph.Graph

	enabled         map[int]bool
	enabledFeatures []int // indices, in graph declaration order
	actionIndex     map[string]int

	trace *SelectionTrace
}

// IsEnabled reports whether name is among this configuration's enabled
// selectables.
func (fc *FeatureConfiguration) IsEnabled(name string) bool {
	idx, ok := fc.graph.IndexOf(name)
	if !ok {
		return false
	}
	return fc.enabled[idx]
}

// Trace returns the selection decisions that produced this
// configuration, for debugging.
func (fc *FeatureConfiguration) Trace() *SelectionTrace { return fc.trace }

func (fc *FeatureConfiguration) isEnabledFn() expand.IsEnabled {
	return fc.IsEnabled
}

// GetCommandLine expands action's flag sets — the action config's own
// (implicitly scoped) flag sets first, then each enabled feature's flag
// sets in declaration order — into a flat argument list.
func (fc *FeatureConfiguration) GetCommandLine(action string, scope *variable.Scope, expander variable.Expander) ([]string, error) {
	out := &expand.ArgWriter{}
	ctx := expand.Context{Scope: scope, Expander: expander}

	if acIdx, ok := fc.actionIndex[action]; ok {
		ac := fc.graph.Selectables[acIdx]
		for _, fs := range ac.FlagSets {
			if err := fs.ExpandImplicit(ctx, fc.isEnabledFn(), out); err != nil {
				return nil, err
			}
		}
	}

	for _, idx := range fc.enabledFeatures {
		f := fc.graph.Selectables[idx]
		for _, fs := range f.FlagSets {
			if err := fs.Expand(ctx, action, fc.isEnabledFn(), out); err != nil {
				return nil, err
			}
		}
	}

	return out.Args, nil
}

// GetPerFeatureExpansions is GetCommandLine, but attributed per
// selectable so callers can tell which feature contributed what (or
// that it contributed nothing).
func (fc *FeatureConfiguration) GetPerFeatureExpansions(action string, scope *variable.Scope, expander variable.Expander) ([]PerFeatureExpansion, error) {
	ctx := expand.Context{Scope: scope, Expander: expander}
	var result []PerFeatureExpansion

	if acIdx, ok := fc.actionIndex[action]; ok {
		ac := fc.graph.Selectables[acIdx]
		out := &expand.ArgWriter{}
		for _, fs := range ac.FlagSets {
			if err := fs.ExpandImplicit(ctx, fc.isEnabledFn(), out); err != nil {
				return nil, err
			}
		}
		result = append(result, PerFeatureExpansion{Name: ac.Name, Args: out.Args})
	}

	for _, idx := range fc.enabledFeatures {
		f := fc.graph.Selectables[idx]
		out := &expand.ArgWriter{}
		for _, fs := range f.FlagSets {
			if err := fs.Expand(ctx, action, fc.isEnabledFn(), out); err != nil {
				return nil, err
			}
		}
		result = append(result, PerFeatureExpansion{Name: f.Name, Args: out.Args})
	}

	return result, nil
}

// GetEnvironment expands each enabled feature's env sets, in declaration
// order, into an ordered key/value list. Env sets carry no iteration
// construct, so no Expander is required here.
func (fc *FeatureConfiguration) GetEnvironment(action string, scope *variable.Scope) ([]expand.EnvPair, error) {
	ctx := expand.Context{Scope: scope}
	out := expand.NewEnvBuilder()

	for _, idx := range fc.enabledFeatures {
		f := fc.graph.Selectables[idx]
		for _, es := range f.EnvSets {
			if err := es.Expand(ctx, action, fc.isEnabledFn(), out); err != nil {
				return nil, err
			}
		}
	}
	return out.Entries(), nil
}

// GetToolForAction selects the first tool, in declaration order, whose
// with-feature set is satisfied by this configuration's enabled
// features.
func (fc *FeatureConfiguration) GetToolForAction(action string) (*graph.Tool, error) {
	acIdx, ok := fc.actionIndex[action]
	if !ok {
		return nil, ferrors.NoMatchingTool(action)
	}
	ac := fc.graph.Selectables[acIdx]
	for i := range ac.Tools {
		if ac.Tools[i].WithFeatures.Satisfied(fc.isEnabledFn()) {
			return &ac.Tools[i], nil
		}
	}
	return nil, ferrors.NoMatchingTool(action)
}
