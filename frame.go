package curves

import "fmt"

// Plane is one channel's sample grid. Exactly one of Pix8 and Pix16 is
// populated, depending on the frame's bit depth. The sample at (x, y)
// sits at Pix[y*Stride + x].
type Plane struct {
	Pix8   []uint8
	Pix16  []uint16
	Width  int
	Height int
	Stride int
}

// Frame is a planar, constant-format image with 8 to 16 bits per
// sample. Gray frames carry one plane, color frames three; chroma
// planes may be subsampled.
type Frame struct {
	Planes   []Plane
	BitDepth int
}

// BytesPerSample is 1 for 8-bit frames and 2 for everything deeper.
func (f *Frame) BytesPerSample() int {
	if f.BitDepth > 8 {
		return 2
	}
	return 1
}

func newPlane(width, height, bitDepth int) Plane {
	p := Plane{Width: width, Height: height, Stride: width}
	if bitDepth > 8 {
		p.Pix16 = make([]uint16, width*height)
	} else {
		p.Pix8 = make([]uint8, width*height)
	}
	return p
}

func checkFormat(width, height, bitDepth, numPlanes int) error {
	if bitDepth < 8 || bitDepth > 16 {
		return fmt.Errorf("%w: bit depth %d", ErrUnsupportedFormat, bitDepth)
	}
	if numPlanes != 1 && numPlanes != 3 {
		return fmt.Errorf("%w: %d planes", ErrUnsupportedFormat, numPlanes)
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d frame", ErrUnsupportedFormat, width, height)
	}
	return nil
}

// NewFrame allocates a frame whose planes all have the same dimensions.
func NewFrame(width, height, bitDepth, numPlanes int) (*Frame, error) {
	if err := checkFormat(width, height, bitDepth, numPlanes); err != nil {
		return nil, err
	}
	f := &Frame{BitDepth: bitDepth, Planes: make([]Plane, numPlanes)}
	for i := range f.Planes {
		f.Planes[i] = newPlane(width, height, bitDepth)
	}
	return f, nil
}

// NewFrameWithSubsampling allocates a three plane frame whose second and
// third planes are shrunk by 2^subW horizontally and 2^subH vertically,
// as in 4:2:0 or 4:2:2 layouts.
func NewFrameWithSubsampling(width, height, bitDepth, subW, subH int) (*Frame, error) {
	if err := checkFormat(width, height, bitDepth, 3); err != nil {
		return nil, err
	}
	if subW < 0 || subW > 2 || subH < 0 || subH > 2 {
		return nil, fmt.Errorf("%w: subsampling %d/%d", ErrUnsupportedFormat, subW, subH)
	}
	cw := (width + (1 << subW) - 1) >> subW
	ch := (height + (1 << subH) - 1) >> subH
	f := &Frame{BitDepth: bitDepth, Planes: make([]Plane, 3)}
	f.Planes[0] = newPlane(width, height, bitDepth)
	f.Planes[1] = newPlane(cw, ch, bitDepth)
	f.Planes[2] = newPlane(cw, ch, bitDepth)
	return f, nil
}

// compatibleWith reports whether two frames have identical layouts, so
// that a sample-for-sample remap between them is well defined.
func (f *Frame) compatibleWith(o *Frame) bool {
	if f.BitDepth != o.BitDepth || len(f.Planes) != len(o.Planes) {
		return false
	}
	for i := range f.Planes {
		if f.Planes[i].Width != o.Planes[i].Width || f.Planes[i].Height != o.Planes[i].Height {
			return false
		}
	}
	return true
}
