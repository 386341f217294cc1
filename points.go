package curves

import (
	"fmt"
	"strconv"
)

// ControlPoint anchors the tone curve at a normalized coordinate. Both X
// and Y lie in [0, 1].
type ControlPoint struct {
	X, Y float64
}

// discretize maps a normalized coordinate onto the integer LUT grid,
// rounding half up.
func discretize(v float64, scale int) int {
	return int(v*float64(scale) + 0.5)
}

// validatePoints checks a curve specification against the working scale.
// An empty slice is valid and denotes the identity curve. A single point
// is rejected: it cannot define a mapping. Points whose x coordinates
// collide once discretized to the LUT grid are rejected as well, a spline
// segment of zero width is useless at the working resolution.
func validatePoints(pts []ControlPoint, scale int) error {
	for i, p := range pts {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 {
			return fmt.Errorf("%w: point %d is (%g, %g)", ErrOutOfRangeCoordinate, i, p.X, p.Y)
		}
		if i > 0 && discretize(pts[i-1].X, scale) >= discretize(p.X, scale) {
			return fmt.Errorf("%w: points %d and %d", ErrNonIncreasingX, i-1, i)
		}
	}
	if len(pts) == 1 {
		return fmt.Errorf("%w: got a single point (%g, %g)", ErrDegenerateCurve, pts[0].X, pts[0].Y)
	}
	return nil
}

// pointsFromPairs converts a flat [x0 y0 x1 y1 ...] slice into control
// points.
func pointsFromPairs(vals []float64) ([]ControlPoint, error) {
	if len(vals)%2 != 0 {
		return nil, fmt.Errorf("%w: got %d values", ErrOddPointList, len(vals))
	}
	pts := make([]ControlPoint, 0, len(vals)/2)
	for i := 0; i < len(vals); i += 2 {
		pts = append(pts, ControlPoint{X: vals[i], Y: vals[i+1]})
	}
	return pts, nil
}

// floatPrefixLen reports how many leading bytes of s form a decimal
// floating point number: optional sign, digits, fraction, exponent.
func floatPrefixLen(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// scanValue reads one number off the front of s and consumes at most one
// byte after it. Leading whitespace before the number is skipped and the
// first non-numeric byte after a value acts as the separator, so any
// separator character works. A missing number reads as zero without
// skipping anything, matching strtod semantics: on failure strtod leaves
// the pointer at the start of the input, whitespace included.
func scanValue(s string) (float64, string) {
	ws := 0
	for ws < len(s) && isSpace(s[ws]) {
		ws++
	}
	n := floatPrefixLen(s[ws:])
	if n == 0 {
		if len(s) > 0 {
			s = s[1:]
		}
		return 0, s
	}
	v, _ := strconv.ParseFloat(s[ws:ws+n], 64)
	s = s[ws+n:]
	if len(s) > 0 {
		s = s[1:]
	}
	return v, s
}

// parseCurveString turns a "0/0 0.5/0.58 1/1" style specification into
// control points.
func parseCurveString(spec string) []ControlPoint {
	var pts []ControlPoint
	for spec != "" {
		var p ControlPoint
		p.X, spec = scanValue(spec)
		p.Y, spec = scanValue(spec)
		pts = append(pts, p)
	}
	return pts
}
