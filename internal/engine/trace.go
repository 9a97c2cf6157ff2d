package engine

import "github.com/google/uuid"

// SelectionTrace records each enable/disable decision the fixed-point
// selection made and why, for debugging, via FeatureConfiguration.Trace.
// It is returned in memory only — persisting it is
// outside this core's scope, same as the FeatureConfiguration itself.
//
// Grounded on beads' internal/formula/condition.go, whose
// ConditionResult pairs a boolean with a human-readable Reason; a
// selection step is the same shape (was it enabled, and why).
//
// RequestID lets log lines emitted during two concurrent
// GetFeatureConfiguration calls be told apart even though selection
// itself never touches a logger.
type SelectionTrace struct {
	RequestID string
	Steps     []TraceStep
}

// TraceStep is one enable/disable decision during fixed-point selection.
type TraceStep struct {
	Selectable string
	Enabled    bool
	Reason     string
}

func newTrace() *SelectionTrace {
	return &SelectionTrace{RequestID: uuid.NewString()}
}

func (t *SelectionTrace) record(name string, enabled bool, reason string) {
	t.Steps = append(t.Steps, TraceStep{Selectable: name, Enabled: enabled, Reason: reason})
}
