package curves

import (
	"errors"
	"fmt"
	"os"

	"github.com/kovidgoyal/go-parallel"

	"github.com/framefx/curves/acv"
)

// CurveSpec names one channel's control points. Points, when non-empty,
// is a flat list of x,y pairs; otherwise String is parsed using the
// delimited syntax ("0/0 0.5/0.58 1/1", any separator character works).
// A zero CurveSpec leaves the channel unspecified.
type CurveSpec struct {
	Points []float64
	String string
}

func (s CurveSpec) specified() bool { return len(s.Points) > 0 || s.String != "" }

func (s CurveSpec) controlPoints() ([]ControlPoint, error) {
	if len(s.Points) > 0 {
		return pointsFromPairs(s.Points)
	}
	return parseCurveString(s.String), nil
}

// Options configures a Filter. Curve sources are resolved per channel
// slot in precedence order: an explicit CurveSpec beats the .acv file,
// which beats the preset defaults.
type Options struct {
	// BitDepth of the frames the filter will process, 8 to 16.
	BitDepth int
	// NumPlanes of the target format, 1 or 3. Zero means 3.
	NumPlanes int
	// Preset selects built-in channel defaults, PresetNone disables.
	Preset int
	// Curves are the explicit per-plane specifications.
	Curves [3]CurveSpec
	// Master is applied on top of every plane curve as a second pass.
	Master CurveSpec
	// AcvFile points at a Photoshop .acv file whose curves fill the
	// slots not given explicitly. AcvData supplies the same bytes
	// directly and takes precedence over the path.
	AcvFile string
	AcvData []byte
	// Planes lists the plane indices to remap; empty means every plane.
	// Unlisted planes are copied through untouched.
	Planes []int
}

// Filter holds the finished lookup tables for one configuration. It is
// immutable after New and safe to use from any number of goroutines.
type Filter struct {
	bitDepth  int
	lutSize   int
	scale     int
	numPlanes int
	process   [3]bool
	luts      [numSlots][]uint16
}

func slotName(slot int) string {
	if slot == SlotMaster {
		return "master"
	}
	return fmt.Sprintf("plane %d", slot)
}

// New builds a Filter from opts. All configuration errors surface here;
// Apply cannot fail on curve data afterwards.
func New(opts Options) (*Filter, error) {
	if opts.BitDepth < 8 || opts.BitDepth > 16 {
		return nil, fmt.Errorf("%w: bit depth %d", ErrUnsupportedFormat, opts.BitDepth)
	}
	numPlanes := opts.NumPlanes
	if numPlanes == 0 {
		numPlanes = 3
	}
	if numPlanes != 1 && numPlanes != 3 {
		return nil, fmt.Errorf("%w: %d planes", ErrUnsupportedFormat, numPlanes)
	}
	if opts.Preset < 0 || opts.Preset >= numPresets {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPreset, opts.Preset)
	}

	var process [3]bool
	if len(opts.Planes) == 0 {
		for i := 0; i < numPlanes; i++ {
			process[i] = true
		}
	} else {
		for _, p := range opts.Planes {
			if p < 0 || p >= numPlanes {
				return nil, fmt.Errorf("%w: %d", ErrPlaneIndexOutOfRange, p)
			}
			if process[p] {
				return nil, fmt.Errorf("%w: %d", ErrDuplicatePlane, p)
			}
			process[p] = true
		}
	}

	var pts [numSlots][]ControlPoint
	var have [numSlots]bool

	for i, spec := range opts.Curves {
		if !spec.specified() {
			continue
		}
		if i >= numPlanes {
			return nil, fmt.Errorf("%w: curve given for plane %d of a %d plane format", ErrPlaneIndexOutOfRange, i, numPlanes)
		}
		p, err := spec.controlPoints()
		if err != nil {
			return nil, fmt.Errorf("curve for %s: %w", slotName(i), err)
		}
		pts[i], have[i] = p, true
	}
	if opts.Master.specified() {
		p, err := opts.Master.controlPoints()
		if err != nil {
			return nil, fmt.Errorf("curve for master: %w", err)
		}
		pts[SlotMaster], have[SlotMaster] = p, true
	}

	if len(opts.AcvData) > 0 || opts.AcvFile != "" {
		data := opts.AcvData
		if len(data) == 0 {
			var err error
			if data, err = os.ReadFile(opts.AcvFile); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrCurveFile, err)
			}
		}
		decoded, err := acv.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("curve file: %w", err)
		}
		// the composite curve comes first in the file, then R, G, B
		for j, c := range decoded {
			if c == nil {
				continue
			}
			slot := j - 1
			if j == 0 {
				slot = SlotMaster
			}
			if have[slot] {
				continue
			}
			cp := make([]ControlPoint, len(c))
			for k, p := range c {
				cp[k] = ControlPoint{X: p.X, Y: p.Y}
			}
			pts[slot], have[slot] = cp, true
		}
	}

	if opts.Preset != PresetNone {
		for slot, dflt := range presetDefaults[opts.Preset] {
			if dflt == "" || have[slot] {
				continue
			}
			pts[slot] = parseCurveString(dflt)
			have[slot] = true
		}
	}

	f := &Filter{
		bitDepth:  opts.BitDepth,
		lutSize:   1 << opts.BitDepth,
		scale:     (1 << opts.BitDepth) - 1,
		numPlanes: numPlanes,
		process:   process,
	}
	for slot := range pts {
		if err := validatePoints(pts[slot], f.scale); err != nil {
			return nil, fmt.Errorf("curve for %s: %w", slotName(slot), err)
		}
		f.luts[slot] = interpolate(pts[slot], f.lutSize, f.scale)
	}
	if len(pts[SlotMaster]) > 0 {
		composeLUTs(f.luts[SlotPlane0:SlotMaster], f.luts[SlotMaster])
	}
	return f, nil
}

// Scale is the maximum sample value of the working bit depth.
func (f *Filter) Scale() int { return f.scale }

// LutSize is the number of entries in each lookup table, 2^bitDepth.
func (f *Filter) LutSize() int { return f.lutSize }

// Processes reports whether the filter remaps the given plane.
func (f *Filter) Processes(plane int) bool {
	return plane >= 0 && plane < 3 && f.process[plane]
}

// LUT returns the finished lookup table of a channel slot. The plane
// tables already include the master composition. The returned slice is
// shared, callers must not modify it.
func (f *Filter) LUT(slot int) []uint16 {
	if slot < 0 || slot >= numSlots {
		return nil
	}
	return f.luts[slot]
}

// Apply remaps every selected plane of src into dst and copies the
// remaining planes through unchanged. The two frames must share layout
// and dst must not alias src unless they are the same frame (in-place
// use is fine). Samples must fit the configured bit depth. Safe to call
// concurrently on distinct frame pairs.
func (f *Filter) Apply(dst, src *Frame) error {
	if dst == nil || src == nil {
		return errors.New("nil frame")
	}
	if src.BitDepth != f.bitDepth {
		return fmt.Errorf("frame depth %d does not match the filter's %d bit tables", src.BitDepth, f.bitDepth)
	}
	if len(src.Planes) != f.numPlanes {
		return fmt.Errorf("frame has %d planes, filter was built for %d", len(src.Planes), f.numPlanes)
	}
	if !src.compatibleWith(dst) {
		return errors.New("source and destination frames have different layouts")
	}
	for i := range src.Planes {
		sp, dp := &src.Planes[i], &dst.Planes[i]
		if !f.process[i] {
			copyPlane(dp, sp)
			continue
		}
		if err := remapPlane(dp, sp, f.luts[i]); err != nil {
			return err
		}
	}
	return nil
}

func remapPlane(dst, src *Plane, lut []uint16) error {
	var fn func(start, limit int)
	if src.Pix8 != nil {
		fn = func(start, limit int) {
			for y := start; y < limit; y++ {
				s := src.Pix8[y*src.Stride:][:src.Width]
				d := dst.Pix8[y*dst.Stride:][:src.Width]
				for x, v := range s {
					d[x] = uint8(lut[v])
				}
			}
		}
	} else {
		fn = func(start, limit int) {
			for y := start; y < limit; y++ {
				s := src.Pix16[y*src.Stride:][:src.Width]
				d := dst.Pix16[y*dst.Stride:][:src.Width]
				for x, v := range s {
					d[x] = lut[v]
				}
			}
		}
	}
	return parallel.Run_in_parallel_over_range(0, fn, 0, src.Height)
}

func copyPlane(dst, src *Plane) {
	// frame views of images may carry zero-sample planes
	if src.Width < 1 || src.Height < 1 {
		return
	}
	if dst.Pix8 != nil && &dst.Pix8[0] == &src.Pix8[0] {
		return
	}
	if dst.Pix16 != nil && &dst.Pix16[0] == &src.Pix16[0] {
		return
	}
	for y := 0; y < src.Height; y++ {
		if src.Pix8 != nil {
			copy(dst.Pix8[y*dst.Stride:][:src.Width], src.Pix8[y*src.Stride:][:src.Width])
		} else {
			copy(dst.Pix16[y*dst.Stride:][:src.Width], src.Pix16[y*src.Stride:][:src.Width])
		}
	}
}
