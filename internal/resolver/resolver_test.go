package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgebld/tcfeatures/internal/expand"
	"github.com/forgebld/tcfeatures/internal/graph"
)

func TestResolveBestPicksFirstSatisfied(t *testing.T) {
	tools := []graph.Tool{
		{Path: "lto-ld", WithFeatures: expand.WithFeatureSets{{Features: []string{"has_lto"}}}},
		{Path: "ld"},
	}
	enabled := map[string]bool{}
	isEnabled := func(name string) bool { return enabled[name] }

	best, ok := ResolveBest(tools, isEnabled)
	require.True(t, ok)
	assert.Equal(t, "ld", best.Tool.Path)

	enabled["has_lto"] = true
	best, ok = ResolveBest(tools, isEnabled)
	require.True(t, ok)
	assert.Equal(t, "lto-ld", best.Tool.Path)
}

func TestResolveAllExplainsEachCandidate(t *testing.T) {
	tools := []graph.Tool{
		{Path: "lto-ld", WithFeatures: expand.WithFeatureSets{{Features: []string{"has_lto"}}}},
	}
	isEnabled := func(string) bool { return false }
	candidates := ResolveAll(tools, isEnabled)
	require.Len(t, candidates, 1)
	assert.False(t, candidates[0].Satisfied)
	assert.NotEmpty(t, candidates[0].Reason)
}

func TestResolveBestNoMatch(t *testing.T) {
	tools := []graph.Tool{
		{Path: "lto-ld", WithFeatures: expand.WithFeatureSets{{Features: []string{"has_lto"}}}},
	}
	_, ok := ResolveBest(tools, func(string) bool { return false })
	assert.False(t, ok)
}
