/*
Package curves applies per-channel tone adjustments to planar images using
lookup tables built from natural cubic splines, the discretized equivalent
of the curves tool found in image editors.

A Filter is built once from a set of control points (given directly, via a
preset, or loaded from a Photoshop .acv file) and can then remap any number
of frames concurrently.
*/
package curves

import "fmt"

var _ = fmt.Print
