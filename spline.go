package curves

// Natural cubic spline interpolation, following "Finding curves using
// Cubic Splines" notes by Steven Rauch and John Stockie.

func clampToScale(v float64, scale int) uint16 {
	// +0.5 then truncate, like the reference filter rounds.
	x := int(v + 0.5)
	if x < 0 {
		x = 0
	} else if x > scale {
		x = scale
	}
	return uint16(x)
}

// interpolate builds a lutSize-entry lookup table passing through the
// given control points. An empty point slice yields the identity table.
// Outside the first and last point the table is held constant at that
// point's y value. Entries always land in [0, scale]; the spline itself
// may overshoot the control hull, that is expected curve behavior and is
// clamped rather than rejected.
func interpolate(points []ControlPoint, lutSize, scale int) []uint16 {
	lut := make([]uint16, lutSize)
	n := len(points)

	if n == 0 {
		for i := range lut {
			lut[i] = uint16(i)
		}
		return lut
	}

	// h(i) = x(i+1) - x(i), in normalized units
	h := make([]float64, n-1)
	for i := range h {
		h[i] = points[i+1].X - points[i].X
	}

	// right-hand side of the system, overwritten with the solution
	r := make([]float64, n)
	for i := 1; i < n-1; i++ {
		yp := points[i-1].Y
		yc := points[i].Y
		yn := points[i+1].Y
		r[i] = 6 * ((yn-yc)/h[i] - (yc-yp)/h[i-1])
	}

	// tridiagonal matrix of the natural spline system: the first and last
	// rows pin the boundary second derivatives to zero
	bd := make([]float64, n) // sub  diagonal (below main)
	md := make([]float64, n) // main diagonal (center)
	ad := make([]float64, n) // sup  diagonal (above main)
	md[0], md[n-1] = 1, 1
	for i := 1; i < n-1; i++ {
		bd[i] = h[i-1]
		md[i] = 2 * (h[i-1] + h[i])
		ad[i] = h[i]
	}

	// Thomas algorithm. A vanishing pivot falls back to a multiplier of 1
	// instead of failing; kept bit-compatible with the reference filter
	// even though it is not a rigorous treatment of a singular system.
	for i := 1; i < n; i++ {
		den := md[i] - bd[i]*ad[i-1]
		k := 1.0
		if den != 0 {
			k = 1 / den
		}
		ad[i] *= k
		r[i] = (r[i] - bd[i]*r[i-1]) * k
	}
	for i := n - 2; i >= 0; i-- {
		r[i] -= ad[i] * r[i+1]
	}

	fscale := float64(scale)

	// left padding
	first := points[0]
	for i := 0; i < discretize(first.X, scale); i++ {
		lut[i] = clampToScale(first.Y*fscale, scale)
	}

	// the spline segments, each end inclusive: the shared knot is written
	// twice but both cubics agree there by construction
	for k := 0; k < n-1; k++ {
		yc := points[k].Y
		yn := points[k+1].Y

		a := yc
		b := (yn-yc)/h[k] - h[k]*r[k]/2 - h[k]*(r[k+1]-r[k])/6
		c := r[k] / 2
		d := (r[k+1] - r[k]) / (6 * h[k])

		xStart := discretize(points[k].X, scale)
		xEnd := discretize(points[k+1].X, scale)
		for x := xStart; x <= xEnd; x++ {
			t := float64(x-xStart) / fscale
			y := a + b*t + c*t*t + d*t*t*t
			lut[x] = clampToScale(y*fscale, scale)
		}
	}

	// right padding
	last := points[n-1]
	for i := discretize(last.X, scale); i < lutSize; i++ {
		lut[i] = clampToScale(last.Y*fscale, scale)
	}

	return lut
}
