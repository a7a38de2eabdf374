package common

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to the [lo, hi] range.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// StepToward advances current toward target by a first-order lag with the
// given stiffness (inverse time constant). The interpolation factor
// min(1, stiffness*dt) is convex, so a large dt can never overshoot the
// target, only land exactly on it.
func StepToward(current, target, stiffness, dt float64) float64 {
	t := stiffness * dt
	if t >= 1 {
		return target
	}
	if t <= 0 {
		return current
	}
	return current + (target-current)*t
}
