// Package acv decodes Photoshop .acv curve files.
//
// The format is a sequence of big-endian 16-bit unsigned fields: a
// version word (ignored), a curve count, then per curve a point count
// followed by that many (output, input) pairs on the editor's 0-255
// scale. The first curve is the composite ("master") curve, the
// following ones are the red, green and blue channels.
package acv

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrTruncated is reported when the data ends before a field its header
// declares.
var ErrTruncated = errors.New("acv data truncated")

// MaxCurves is how many curve records Decode reads; records beyond it
// are ignored.
const MaxCurves = 4

// Point is one curve anchor, normalized from the editor's 8-bit scale
// to the unit square.
type Point struct {
	X, Y float64
}

type reader struct {
	data []byte
	pos  int
}

func (r *reader) uint16(what string) (uint16, error) {
	if r.pos+2 > len(r.data) {
		return 0, fmt.Errorf("%w: missing %s at offset %d", ErrTruncated, what, r.pos)
	}
	v := binary.BigEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

// Decode parses up to MaxCurves curve records, in file order (composite
// first); the returned slice has one entry per record read.
func Decode(data []byte) ([][]Point, error) {
	r := &reader{data: data}
	if _, err := r.uint16("version"); err != nil {
		return nil, err
	}
	count, err := r.uint16("curve count")
	if err != nil {
		return nil, err
	}
	curves := make([][]Point, min(int(count), MaxCurves))
	for i := range curves {
		np, err := r.uint16("point count")
		if err != nil {
			return nil, err
		}
		pts := make([]Point, 0, np)
		for range int(np) {
			out, err := r.uint16("output value")
			if err != nil {
				return nil, err
			}
			in, err := r.uint16("input value")
			if err != nil {
				return nil, err
			}
			pts = append(pts, Point{X: float64(in) / 255, Y: float64(out) / 255})
		}
		curves[i] = pts
	}
	return curves, nil
}
