// Package ferrors defines the typed error kinds used across the feature
// configuration engine: static InvalidConfiguration failures at graph
// construction, CollidingProvides at selection time, and the runtime
// ExpansionFailed / NoMatchingTool / MissingArtifactPattern failures
// produced while expanding a resolved FeatureConfiguration.
//
// Every kind is its own struct so callers can use errors.As to recover
// structured detail (the colliding symbol, the missing category, ...)
// instead of parsing error strings.
package ferrors

import (
	"fmt"
	"strings"
)

// InvalidConfigurationError reports a static defect in a selectable graph
// or configuration record: unknown references, duplicate names, malformed
// templates, and similar construction-time problems.
type InvalidConfigurationError struct {
	Msg string
}

func (e *InvalidConfigurationError) Error() string {
	return "invalid configuration: " + e.Msg
}

// InvalidConfiguration builds an InvalidConfigurationError.
func InvalidConfiguration(format string, args ...any) error {
	return &InvalidConfigurationError{Msg: fmt.Sprintf(format, args...)}
}

// CollidingProvidesError reports that more than one enabled selectable
// provides the same symbol.
type CollidingProvidesError struct {
	Symbol      string
	Selectables []string
}

func (e *CollidingProvidesError) Error() string {
	return fmt.Sprintf("colliding provides: symbol %q is provided by %s", e.Symbol, strings.Join(e.Selectables, ", "))
}

// CollidingProvides builds a CollidingProvidesError. The selectables slice
// is copied defensively since callers often pass a map-derived slice they
// continue to mutate.
func CollidingProvides(symbol string, selectables []string) error {
	cp := make([]string, len(selectables))
	copy(cp, selectables)
	return &CollidingProvidesError{Symbol: symbol, Selectables: cp}
}

// MissingVariableError reports that a name does not resolve in a scope.
// This is the Variable Model's own failure mode; callers one layer up
// (template expansion) re-surface it as ExpansionFailedError, per spec.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("variable %q is not bound in this scope", e.Name)
}

// MissingVariable builds a MissingVariableError.
func MissingVariable(name string) error {
	return &MissingVariableError{Name: name}
}

// ExpansionFailedError reports a runtime expansion failure: an unavailable
// variable referenced by a template or iteration guard, or a type mismatch
// (a sequence where a scalar was expected, and so on).
type ExpansionFailedError struct {
	Msg   string
	Cause error
}

func (e *ExpansionFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("expansion failed: %s: %v", e.Msg, e.Cause)
	}
	return "expansion failed: " + e.Msg
}

func (e *ExpansionFailedError) Unwrap() error { return e.Cause }

// ExpansionFailed builds an ExpansionFailedError with no underlying cause.
func ExpansionFailed(format string, args ...any) error {
	return &ExpansionFailedError{Msg: fmt.Sprintf(format, args...)}
}

// ExpansionFailedWrap builds an ExpansionFailedError wrapping cause, used
// when a MissingVariableError (or other Variable Model error) needs to be
// re-surfaced as an expansion failure without losing the original detail.
func ExpansionFailedWrap(cause error, format string, args ...any) error {
	return &ExpansionFailedError{Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// NoMatchingToolError reports that no tool's with-feature predicates
// matched the enabled feature set for an action config.
type NoMatchingToolError struct {
	Action string
}

func (e *NoMatchingToolError) Error() string {
	return fmt.Sprintf("no matching tool for action %q", e.Action)
}

// NoMatchingTool builds a NoMatchingToolError.
func NoMatchingTool(action string) error {
	return &NoMatchingToolError{Action: action}
}

// MissingArtifactPatternError reports that no artifact-name pattern is
// configured for the requested category.
type MissingArtifactPatternError struct {
	Category string
}

func (e *MissingArtifactPatternError) Error() string {
	return fmt.Sprintf("no artifact name pattern configured for category %q", e.Category)
}

// MissingArtifactPattern builds a MissingArtifactPatternError.
func MissingArtifactPattern(category string) error {
	return &MissingArtifactPatternError{Category: category}
}
