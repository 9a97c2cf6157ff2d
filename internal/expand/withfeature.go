package expand

// WithFeatureSet is a positive/negative feature-name matcher: satisfied
// when every name in Features is enabled and no name in NotFeatures is
// enabled.
type WithFeatureSet struct {
	Features    []string
	NotFeatures []string
}

// IsEnabled reports whether name is currently enabled; satisfied by
// Engine/FeatureConfiguration at call sites.
type IsEnabled func(name string) bool

func (w WithFeatureSet) satisfied(isEnabled IsEnabled) bool {
	for _, f := range w.Features {
		if !isEnabled(f) {
			return false
		}
	}
	for _, f := range w.NotFeatures {
		if isEnabled(f) {
			return false
		}
	}
	return true
}

// WithFeatureSets is satisfied if at least one member set is satisfied,
// or the list itself is empty.
type WithFeatureSets []WithFeatureSet

func (sets WithFeatureSets) Satisfied(isEnabled IsEnabled) bool {
	if len(sets) == 0 {
		return true
	}
	for _, s := range sets {
		if s.satisfied(isEnabled) {
			return true
		}
	}
	return false
}
