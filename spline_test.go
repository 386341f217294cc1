package curves

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identity(size int) []uint16 {
	lut := make([]uint16, size)
	for i := range lut {
		lut[i] = uint16(i)
	}
	return lut
}

func TestInterpolateIdentity(t *testing.T) {
	for _, depth := range []int{8, 10, 12, 16} {
		size := 1 << depth
		lut := interpolate(nil, size, size-1)
		require.Len(t, lut, size)
		if diff := cmp.Diff(identity(size), lut); diff != "" {
			t.Fatalf("depth %d is not the identity map (-want +got):\n%s", depth, diff)
		}
	}
}

func TestInterpolateStraightLineIsIdentity(t *testing.T) {
	lut := interpolate([]ControlPoint{{0, 0}, {1, 1}}, 256, 255)
	if diff := cmp.Diff(identity(256), lut); diff != "" {
		t.Fatalf("0/0 1/1 should be the identity map (-want +got):\n%s", diff)
	}
}

func TestInterpolateNegativeLine(t *testing.T) {
	lut := interpolate([]ControlPoint{{0, 1}, {1, 0}}, 256, 255)
	for i, v := range lut {
		if int(v) != 255-i {
			t.Fatalf("entry %d is %d, want %d", i, v, 255-i)
		}
	}
}

func TestInterpolateEndpoints(t *testing.T) {
	for _, tc := range []struct {
		name  string
		pts   []ControlPoint
		scale int
	}{
		{"simple brighten", []ControlPoint{{0, 0}, {0.5, 0.58}, {1, 1}}, 255},
		{"inner endpoints", []ControlPoint{{0.2, 0.1}, {0.6, 0.9}}, 255},
		{"ten bit", []ControlPoint{{0, 0.25}, {0.3, 0.5}, {0.7, 0.6}, {1, 0.75}}, 1023},
	} {
		t.Run(tc.name, func(t *testing.T) {
			lut := interpolate(tc.pts, tc.scale+1, tc.scale)
			first, last := tc.pts[0], tc.pts[len(tc.pts)-1]
			assert.InDelta(t, discretize(first.Y, tc.scale), lut[discretize(first.X, tc.scale)], 1)
			assert.InDelta(t, discretize(last.Y, tc.scale), lut[discretize(last.X, tc.scale)], 1)
		})
	}
}

func TestInterpolateConstantExtrapolation(t *testing.T) {
	lut := interpolate([]ControlPoint{{0.25, 0.5}, {0.75, 0.5}}, 256, 255)
	lo, hi := discretize(0.25, 255), discretize(0.75, 255)
	for i := 0; i < lo; i++ {
		assert.EqualValues(t, 128, lut[i])
	}
	for i := hi; i < 256; i++ {
		assert.EqualValues(t, 128, lut[i])
	}
}

func TestInterpolateMidpointValue(t *testing.T) {
	// natural spline through (0,0) (0.5,0.58) (1,1) evaluated at 128/255
	lut := interpolate([]ControlPoint{{0, 0}, {0.5, 0.58}, {1, 1}}, 256, 255)
	assert.InDelta(t, 148, lut[128], 1)
}

func TestInterpolateClampsOvershoot(t *testing.T) {
	// cubic splines are not convexity preserving, steep segments make
	// the interpolant overshoot the control hull; the table must still
	// saturate at [0, scale]
	for _, pts := range [][]ControlPoint{
		{{0, 0}, {0.1, 0.9}, {0.2, 0.1}, {1, 1}},
		{{0, 1}, {0.05, 0}, {0.1, 1}, {0.9, 0}, {1, 1}},
		{{0, 0}, {1.0 / 255, 1}, {2.0 / 255, 0}, {1, 0.5}},
	} {
		require.NoError(t, validatePoints(pts, 255))
		lut := interpolate(pts, 256, 255)
		for i, v := range lut {
			if v > 255 {
				t.Fatalf("entry %d is %d, outside [0, 255]", i, v)
			}
		}
	}
}

func TestInterpolateSixteenBit(t *testing.T) {
	lut := interpolate([]ControlPoint{{0, 1}, {1, 0}}, 65536, 65535)
	for _, i := range []int{0, 1, 32768, 65534, 65535} {
		assert.EqualValues(t, 65535-i, lut[i])
	}
}
