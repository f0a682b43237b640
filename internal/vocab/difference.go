package vocab

// DefaultThreshold is the rarity threshold used when none is configured.
const DefaultThreshold = 3

// Difference returns the tokens of a whose count in b is strictly below threshold.
// Order and multiplicity of a are preserved. A threshold <= 0 always yields an empty result.
func Difference(a, b []string, threshold int) []string {
	out := make([]string, 0, len(a))
	if len(a) == 0 {
		return out
	}
	other := NewFreqDist(b)
	for _, tok := range a {
		if other.Count(tok) < threshold {
			out = append(out, tok)
		}
	}
	return out
}
