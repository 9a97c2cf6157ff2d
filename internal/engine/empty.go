package engine

import (
	"github.com/forgebld/tcfeatures/internal/expand"
	"github.com/forgebld/tcfeatures/internal/ferrors"
	"github.com/forgebld/tcfeatures/internal/graph"
	"github.com/forgebld/tcfeatures/internal/variable"
)

// Configuration is the interface common to *FeatureConfiguration and
// EmptyFeatureConfiguration, so callers that hold onto a construction
// error can keep using the empty singleton without special-casing a
// nil *FeatureConfiguration everywhere (spec.md §6).
type Configuration interface {
	IsEnabled(name string) bool
	GetCommandLine(action string, scope *variable.Scope, expander variable.Expander) ([]string, error)
	GetPerFeatureExpansions(action string, scope *variable.Scope, expander variable.Expander) ([]PerFeatureExpansion, error)
	GetEnvironment(action string, scope *variable.Scope) ([]expand.EnvPair, error)
	GetToolForAction(action string) (*graph.Tool, error)
}

// EmptyFeatureConfiguration is the singleton used when engine
// construction itself failed: IsEnabled is always false, the expansion
// methods return empty results rather than errors.
var EmptyFeatureConfiguration Configuration = &emptyFeatureConfiguration{}

type emptyFeatureConfiguration struct{}

func (*emptyFeatureConfiguration) IsEnabled(string) bool { return false }

func (*emptyFeatureConfiguration) GetCommandLine(string, *variable.Scope, variable.Expander) ([]string, error) {
	return nil, nil
}

func (*emptyFeatureConfiguration) GetPerFeatureExpansions(string, *variable.Scope, variable.Expander) ([]PerFeatureExpansion, error) {
	return nil, nil
}

func (*emptyFeatureConfiguration) GetEnvironment(string, *variable.Scope) ([]expand.EnvPair, error) {
	return nil, nil
}

func (*emptyFeatureConfiguration) GetToolForAction(action string) (*graph.Tool, error) {
	return nil, ferrors.NoMatchingTool(action)
}
