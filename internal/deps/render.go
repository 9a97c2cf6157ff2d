// Package deps renders a selectable graph's implication tree for
// debugging: `featurectl graph show` walks from a requested selectable
// and prints its implied descendants with box-drawing connectors.
//
// Grounded on beads' internal/deps.TreeRenderer, which renders issue
// dependency trees the same way (seen-set to short-circuit cycles back
// to an already-printed node, a stack of "is this the last child at
// this depth" booleans driving the │/├──/└── prefix). That renderer
// walked a parent/child issue hierarchy; this one walks the implies
// adjacency of a graph.Graph instead, and reports each node's enabled
// state rather than an issue status.
package deps

import (
	"fmt"
	"io"
	"strings"

	"github.com/forgebld/tcfeatures/internal/engine"
	"github.com/forgebld/tcfeatures/internal/graph"
)

// TreeRenderer prints a selectable's implies-closure as a tree.
// MaxDepth bounds recursion to guard against surprising output on a
// densely-connected graph; zero means unbounded.
type TreeRenderer struct {
	MaxDepth int

	seen             map[int]bool
	activeConnectors []bool
}

// NewTreeRenderer returns a renderer bounded to maxDepth levels (0 for
// unbounded).
func NewTreeRenderer(maxDepth int) *TreeRenderer {
	return &TreeRenderer{MaxDepth: maxDepth}
}

// Render writes root's implication tree to w. cfg supplies enabled/
// disabled state for the status glyph; pass engine.EmptyFeatureConfiguration
// to render structure only.
func (r *TreeRenderer) Render(w io.Writer, g *graph.Graph, cfg engine.Configuration, root string) error {
	rootIdx, ok := g.IndexOf(root)
	if !ok {
		return fmt.Errorf("unknown selectable %q", root)
	}

	r.seen = map[int]bool{}
	depthBound := r.MaxDepth
	if depthBound <= 0 {
		depthBound = len(g.Selectables) + 1
	}
	r.activeConnectors = make([]bool, depthBound+1)

	r.renderNode(w, g, cfg, rootIdx, 0, true, depthBound)
	return nil
}

func (r *TreeRenderer) renderNode(w io.Writer, g *graph.Graph, cfg engine.Configuration, idx, depth int, isLast bool, maxDepth int) {
	var prefix strings.Builder
	for i := 0; i < depth; i++ {
		if r.activeConnectors[i] {
			prefix.WriteString("│   ") // │
		} else {
			prefix.WriteString("    ")
		}
	}
	if depth > 0 {
		if isLast {
			prefix.WriteString("└── ") // └──
		} else {
			prefix.WriteString("├── ") // ├──
		}
	}

	sel := g.Selectables[idx]
	if r.seen[idx] {
		fmt.Fprintf(w, "%s%s (shown above)\n", prefix.String(), sel.Name)
		return
	}
	r.seen[idx] = true

	glyph := "☐" // ☐ disabled
	if cfg.IsEnabled(sel.Name) {
		glyph = "☑" // ☑ enabled
	}
	kind := "feature"
	if sel.Kind == graph.KindActionConfig {
		kind = "action-config:" + sel.ActionName
	}
	fmt.Fprintf(w, "%s%s %s (%s)\n", prefix.String(), glyph, sel.Name, kind)

	children := g.Implies(idx)
	if depth >= maxDepth {
		if len(children) > 0 {
			fmt.Fprintf(w, "%s    …\n", prefix.String())
		}
		return
	}
	for i, child := range children {
		if depth > 0 {
			r.activeConnectors[depth] = i < len(children)-1
		}
		r.renderNode(w, g, cfg, child, depth+1, i == len(children)-1, maxDepth)
	}
}
