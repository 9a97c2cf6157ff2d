// Package graph implements the Selectable Graph: the set of features and
// action configs plus the implies/requires/provides relations over them,
// addressed by integer index per the source's own redesign note rather
// than by object reference (see the Graph type's doc comment).
//
// Grounded on beads' internal/formula/types.go, whose Formula.Validate
// collects every static defect (duplicate names, dangling references,
// shape violations) before returning, rather than failing on the first
// one — Build below follows the same collect-then-report shape.
package graph

import (
	"github.com/forgebld/tcfeatures/internal/expand"
	"github.com/forgebld/tcfeatures/internal/template"
)

// RequirementClause is a conjunction of selectable names; a selectable's
// Requires is satisfied if at least one clause is fully enabled.
type RequirementClause []string

// Tool is a path, an execution-requirement set, and with-feature
// predicates gating when it is eligible for resolution.
type Tool struct {
	Path                  string
	ExecutionRequirements []string
	WithFeatures          expand.WithFeatureSets
}

// FeatureRecord is the configuration-record form of a feature, before
// name references are resolved into graph indices.
type FeatureRecord struct {
	Name           string
	DefaultEnabled bool
	FlagSets       []*expand.FlagSet
	EnvSets        []*expand.EnvSet
	Implies        []string
	Requires       []RequirementClause
	Provides       []string
}

// ActionConfigRecord is the configuration-record form of an action
// config. Its FlagSets are implicitly scoped to ActionName; per
// spec.md §4.4 they must not also list any action name in their own
// Actions field.
type ActionConfigRecord struct {
	ConfigName     string
	ActionName     string
	DefaultEnabled bool
	Tools          []Tool
	FlagSets       []*expand.FlagSet
	Implies        []string
	Requires       []RequirementClause
	Provides       []string
}

// ArtifactNamePattern configures the template used to derive an output
// file's name for one artifact category.
type ArtifactNamePattern struct {
	Category string
	Pattern  *template.Template
}

// ConfigurationRecord is the already-deserialized, in-memory toolchain
// description the graph is built from. Parsing an on-disk format into
// this shape is explicitly out of this core's scope; see
// internal/configrecord for a demo/test loader.
type ConfigurationRecord struct {
	Features             []FeatureRecord
	ActionConfigs        []ActionConfigRecord
	ArtifactNamePatterns []ArtifactNamePattern
}
