package dice

// floatSteps is the resolution used to derive floats from Intn.
const floatSteps = 1 << 20

// Float returns a uniform float64 in [0, 1).
//
// Precondition: src must be non-nil.
func Float(src Source) float64 {
	return float64(src.Intn(floatSteps)) / floatSteps
}

// Percent returns a uniform float64 in [0, 100). Used for rarity and
// critical-hit rolls that compare against percentage thresholds.
func Percent(src Source) float64 {
	return Float(src) * 100
}

// Chance reports whether an event with the given percentage probability
// occurs. Probabilities <= 0 never occur; >= 100 always occur.
func Chance(src Source, percent float64) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return Percent(src) < percent
}

// Variance returns a uniform multiplier in [1-spread, 1+spread).
// A spread of 0.1 yields the ±10% variance factor used for stat rolls.
//
// Precondition: spread must be in [0, 1).
func Variance(src Source, spread float64) float64 {
	if spread == 0 {
		return 1.0
	}
	return 1 - spread + Float(src)*2*spread
}

// Between returns a uniform int in [low, high] inclusive.
//
// Precondition: low <= high.
func Between(src Source, low, high int) int {
	if low == high {
		return low
	}
	return low + src.Intn(high-low+1)
}

// Pick returns a uniformly chosen element of items.
//
// Precondition: items must be non-empty.
func Pick[T any](src Source, items []T) T {
	return items[src.Intn(len(items))]
}

// Shuffle returns a uniformly random permutation of items (Fisher–Yates).
// The input slice is not modified.
func Shuffle[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
