package engine

import (
	"path"
	"strings"

	"github.com/forgebld/tcfeatures/internal/ferrors"
	"github.com/forgebld/tcfeatures/internal/variable"
)

// HasPattern reports whether category has a configured artifact-name
// pattern.
func (e *Engine) HasPattern(category string) bool {
	_, ok := e.g.Pattern(category)
	return ok
}

// GetArtifactName expands category's configured pattern against a scope
// binding output_name, base_name (outputName's basename), and
// output_directory (outputName's parent directory). A leading '/' in the
// expanded result is stripped — a compatibility quirk with no documented
// rationale, preserved bit-exact per spec.md §9.
func (e *Engine) GetArtifactName(category, outputName string) (string, error) {
	pattern, ok := e.g.Pattern(category)
	if !ok {
		return "", ferrors.MissingArtifactPattern(category)
	}

	scope := variable.NewScope(map[string]variable.Value{
		"output_name":      variable.String(outputName),
		"base_name":        variable.String(path.Base(outputName)),
		"output_directory": variable.String(path.Dir(outputName)),
	})

	expanded, err := pattern.Expand(scope)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(expanded, "/"), nil
}
