package curves

import "errors"

// Configuration errors reported by New. They are always wrapped with
// context, match with errors.Is.
var (
	ErrUnsupportedFormat    = errors.New("only constant format 8-16 bit integer input supported")
	ErrInvalidPreset        = errors.New("preset must be between 0 and 10")
	ErrOddPointList         = errors.New("point list must hold an even number of values")
	ErrPlaneIndexOutOfRange = errors.New("plane index out of range")
	ErrDuplicatePlane       = errors.New("plane specified twice")
	ErrOutOfRangeCoordinate = errors.New("key point coordinates must be in the [0,1] range")
	ErrNonIncreasingX       = errors.New("key points too close to each other or not strictly increasing on the x-axis")
	ErrDegenerateCurve      = errors.New("a curve with only one point does not define a mapping")
	ErrCurveFile            = errors.New("cannot read curve file")
)
