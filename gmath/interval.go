package gmath

import "math"

// Interval is a closed range [Lo, Hi] used for robust range arithmetic
// during curve/surface subdivision: marching intersection and NURBS
// Bezier subdivision both walk shrinking intervals.
type Interval struct {
	Lo, Hi float64
}

// NewInterval returns [lo, hi], swapping the bounds if given reversed.
func NewInterval(lo, hi float64) Interval {
	if lo > hi {
		lo, hi = hi, lo
	}
	return Interval{Lo: lo, Hi: hi}
}

// Width returns Hi-Lo.
func (iv Interval) Width() float64 { return iv.Hi - iv.Lo }

// Mid returns the interval midpoint.
func (iv Interval) Mid() float64 { return 0.5 * (iv.Lo + iv.Hi) }

// Contains reports whether x lies in [Lo, Hi].
func (iv Interval) Contains(x float64) bool { return x >= iv.Lo && x <= iv.Hi }

// Overlaps reports whether iv and other share any point.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Lo <= other.Hi && other.Lo <= iv.Hi
}

// Split bisects iv into two sub-intervals at its midpoint.
func (iv Interval) Split() (Interval, Interval) {
	m := iv.Mid()
	return Interval{iv.Lo, m}, Interval{m, iv.Hi}
}

// Add returns the interval sum of iv and other (outward-rounded to the
// extent float64 allows; adaptive predicates handle the cases where
// that rounding would matter).
func (iv Interval) Add(other Interval) Interval {
	return Interval{iv.Lo + other.Lo, iv.Hi + other.Hi}
}

// Mul returns the interval product of iv and other.
func (iv Interval) Mul(other Interval) Interval {
	candidates := [4]float64{
		iv.Lo * other.Lo, iv.Lo * other.Hi,
		iv.Hi * other.Lo, iv.Hi * other.Hi,
	}
	lo, hi := candidates[0], candidates[0]
	for _, c := range candidates[1:] {
		lo = math.Min(lo, c)
		hi = math.Max(hi, c)
	}
	return Interval{lo, hi}
}
