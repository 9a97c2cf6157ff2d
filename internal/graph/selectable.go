package graph

import "github.com/forgebld/tcfeatures/internal/expand"

// Kind distinguishes the two selectable shapes.
type Kind int

const (
	KindFeature Kind = iota
	KindActionConfig
)

// Selectable is a feature or an action config, the unit of enablement.
// Both shapes carry FlagSets; only KindFeature carries EnvSets and only
// KindActionConfig carries an ActionName and Tools. Relations (Implies,
// Requires, Provides, and their reverses) live on Graph, indexed by this
// selectable's position in Graph.Selectables — not here — per the
// redesign away from object-reference cycles (spec.md §9).
type Selectable struct {
	Kind           Kind
	Name           string
	DefaultEnabled bool

	FlagSets []*expand.FlagSet
	EnvSets  []*expand.EnvSet // KindFeature only

	ActionName string // KindActionConfig only
	Tools      []Tool // KindActionConfig only
}
