// Package engine implements the Selection & Expansion Engine: fixed-point
// selection of a maximal consistent enabled set from a requested name
// set, a bounded single-flight cache over that computation, and the
// command-line/environment/tool/artifact-name expansion operations that
// run against a resolved FeatureConfiguration.
//
// Grounded on beads' internal/formula/pipeline.go for the overall
// "resolve once, then let many callers read the result" shape
// (LoadAndResolve/ResolveAndCook), and on formula/condition.go's
// ConditionResult{Satisfied, Reason} for the optional SelectionTrace
// (see trace.go). The cache itself is not grounded on the teacher —
// beads doesn't cache workflow resolution — so it is built from
// hashicorp/golang-lru/v2 (already an indirect teacher dependency,
// promoted here to direct use) plus golang.org/x/sync/singleflight for
// the at-most-one-concurrent-computation-per-key guarantee spec.md §5
// requires.
package engine

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/forgebld/tcfeatures/internal/ferrors"
	"github.com/forgebld/tcfeatures/internal/graph"
)

// DefaultCacheCapacity is the selection cache size used when Options
// does not override it, matching spec.md §4.5's "e.g. LRU with capacity
// 10 000".
const DefaultCacheCapacity = 10000

// Options configures an Engine beyond its graph.
type Options struct {
	// CacheCapacity overrides DefaultCacheCapacity; zero means use the
	// default, a negative value disables caching entirely.
	CacheCapacity int
}

// Engine resolves requested selectable names into FeatureConfigurations
// against a fixed Graph, and exposes artifact-name pattern resolution.
// An Engine is safe for concurrent use once constructed.
type Engine struct {
	g        *graph.Graph
	defaults []string

	cache  *lru.Cache[string, *FeatureConfiguration]
	flight singleflight.Group
}

// New builds an Engine over g. Defaults are every selectable whose
// DefaultEnabled flag is set, in declaration order.
func New(g *graph.Graph, opts Options) (*Engine, error) {
	cap := opts.CacheCapacity
	if cap == 0 {
		cap = DefaultCacheCapacity
	}

	e := &Engine{g: g}
	for _, sel := range g.Selectables {
		if sel.DefaultEnabled {
			e.defaults = append(e.defaults, sel.Name)
		}
	}

	if cap > 0 {
		c, err := lru.New[string, *FeatureConfiguration](cap)
		if err != nil {
			return nil, ferrors.InvalidConfiguration("constructing selection cache: %v", err)
		}
		e.cache = c
	}
	return e, nil
}

// Defaults returns the default-enabled selectable names in declaration
// order.
func (e *Engine) Defaults() []string {
	out := make([]string, len(e.defaults))
	copy(out, e.defaults)
	return out
}

// GetFeatureConfiguration resolves requested against the graph, using
// the bounded single-flight cache keyed by the canonicalized requested
// set. See select.go for the fixed-point algorithm.
func (e *Engine) GetFeatureConfiguration(requested []string) (*FeatureConfiguration, error) {
	key := canonicalKey(requested)

	if e.cache != nil {
		if fc, ok := e.cache.Get(key); ok {
			return fc, nil
		}
	}

	v, err, _ := e.flight.Do(key, func() (any, error) {
		if e.cache != nil {
			if fc, ok := e.cache.Get(key); ok {
				return fc, nil
			}
		}
		fc, trace, err := selectFixedPoint(e.g, requested)
		if err != nil {
			return nil, err
		}
		fc.trace = trace
		if e.cache != nil {
			e.cache.Add(key, fc)
		}
		return fc, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*FeatureConfiguration), nil
}

func canonicalKey(requested []string) string {
	cp := make([]string, len(requested))
	copy(cp, requested)
	sort.Strings(cp)
	return strings.Join(cp, "\x00")
}
