package curves

import (
	"fmt"
	"image"
	"image/draw"
	"slices"

	"github.com/kovidgoyal/go-parallel"
)

func premultiply8(v, a uint8) uint8 {
	return uint8((uint16(v) * uint16(a)) / 0xff)
}

func unpremultiply8(v, a uint8) uint8 {
	return uint8((uint16(v) * 0xff) / uint16(a))
}

func premultiply16(v, a uint32) uint16 {
	return uint16((v * a) / 0xffff)
}

func unpremultiply16(v, a uint32) uint16 {
	return uint16((v * 0xffff) / a)
}

func (f *Filter) checkImage(bitDepth, numPlanes int) error {
	if bitDepth != f.bitDepth {
		return fmt.Errorf("image has %d bit samples, filter was built for %d", bitDepth, f.bitDepth)
	}
	if numPlanes != f.numPlanes {
		return fmt.Errorf("image has %d channels, filter was built for %d", numPlanes, f.numPlanes)
	}
	return nil
}

func chromaSize(ratio image.YCbCrSubsampleRatio, r image.Rectangle) (cw, ch int) {
	switch ratio {
	case image.YCbCrSubsampleRatio422:
		cw, ch = (r.Max.X+1)/2-r.Min.X/2, r.Dy()
	case image.YCbCrSubsampleRatio420:
		cw, ch = (r.Max.X+1)/2-r.Min.X/2, (r.Max.Y+1)/2-r.Min.Y/2
	case image.YCbCrSubsampleRatio440:
		cw, ch = r.Dx(), (r.Max.Y+1)/2-r.Min.Y/2
	case image.YCbCrSubsampleRatio411:
		cw, ch = (r.Max.X+3)/4-r.Min.X/4, r.Dy()
	case image.YCbCrSubsampleRatio410:
		cw, ch = (r.Max.X+3)/4-r.Min.X/4, (r.Max.Y+3)/4-r.Min.Y/4
	default:
		cw, ch = r.Dx(), r.Dy()
	}
	return
}

// frameViewOfYCbCr wraps the pixel buffers of a Y'CbCr image as a Frame
// without copying, so the planar remap path can work on it directly.
func frameViewOfYCbCr(img *image.YCbCr) *Frame {
	yoff := img.YOffset(img.Rect.Min.X, img.Rect.Min.Y)
	coff := img.COffset(img.Rect.Min.X, img.Rect.Min.Y)
	cw, ch := chromaSize(img.SubsampleRatio, img.Rect)
	return &Frame{
		BitDepth: 8,
		Planes: []Plane{
			{Pix8: img.Y[yoff:], Width: img.Rect.Dx(), Height: img.Rect.Dy(), Stride: img.YStride},
			{Pix8: img.Cb[coff:], Width: cw, Height: ch, Stride: img.CStride},
			{Pix8: img.Cr[coff:], Width: cw, Height: ch, Stride: img.CStride},
		},
	}
}

// ApplyToImage runs the filter over a standard library image and returns
// the adjusted copy, leaving img untouched. For Y'CbCr images the three
// planes map to plane slots 0, 1, 2; for RGB-like images the red, green
// and blue channels do, with alpha passed through. The filter's bit
// depth and plane count must match the image type (8/16 bit, gray/color).
// Unhandled image types are converted to NRGBA first.
func ApplyToImage(f *Filter, img image.Image) (image.Image, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	lut0, lut1, lut2 := f.luts[0], f.luts[1], f.luts[2]
	p0, p1, p2 := f.process[0], f.process[1], f.process[2]
	var fn func(start, limit int)
	var ans image.Image

	switch img := img.(type) {
	case *image.YCbCr:
		if err := f.checkImage(8, 3); err != nil {
			return nil, err
		}
		dst := &image.YCbCr{
			Y: slices.Clone(img.Y), Cb: slices.Clone(img.Cb), Cr: slices.Clone(img.Cr),
			YStride: img.YStride, CStride: img.CStride,
			SubsampleRatio: img.SubsampleRatio, Rect: img.Rect,
		}
		if err := f.Apply(frameViewOfYCbCr(dst), frameViewOfYCbCr(img)); err != nil {
			return nil, err
		}
		return dst, nil
	case *image.Gray:
		if err := f.checkImage(8, 1); err != nil {
			return nil, err
		}
		d := image.NewGray(b)
		ans = d
		fn = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:][:width]
				drow := d.Pix[d.Stride*y:][:width]
				if !p0 {
					copy(drow, row)
					continue
				}
				for x, v := range row {
					drow[x] = uint8(lut0[v])
				}
			}
		}
	case *image.Gray16:
		if err := f.checkImage(16, 1); err != nil {
			return nil, err
		}
		d := image.NewGray16(b)
		ans = d
		fn = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				drow := d.Pix[d.Stride*y:]
				_ = row[2*(width-1)]
				_ = drow[2*(width-1)]
				if !p0 {
					copy(drow[:2*width], row[:2*width])
					continue
				}
				for range width {
					o := lut0[uint16(row[0])<<8|uint16(row[1])]
					drow[0] = uint8(o >> 8)
					drow[1] = uint8(o)
					row = row[2:]
					drow = drow[2:]
				}
			}
		}
	case *image.NRGBA:
		if err := f.checkImage(8, 3); err != nil {
			return nil, err
		}
		d := image.NewNRGBA(b)
		ans = d
		fn = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				drow := d.Pix[d.Stride*y:]
				_ = row[4*(width-1)]
				_ = drow[4*(width-1)]
				for range width {
					drow[0], drow[1], drow[2], drow[3] = row[0], row[1], row[2], row[3]
					if p0 {
						drow[0] = uint8(lut0[row[0]])
					}
					if p1 {
						drow[1] = uint8(lut1[row[1]])
					}
					if p2 {
						drow[2] = uint8(lut2[row[2]])
					}
					row = row[4:]
					drow = drow[4:]
				}
			}
		}
	case *image.RGBA:
		if err := f.checkImage(8, 3); err != nil {
			return nil, err
		}
		d := image.NewRGBA(b)
		ans = d
		fn = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				drow := d.Pix[d.Stride*y:]
				_ = row[4*(width-1)]
				_ = drow[4*(width-1)]
				for range width {
					copy(drow[0:4:4], row[0:4:4])
					if a := row[3]; a != 0 {
						if p0 {
							drow[0] = premultiply8(uint8(lut0[unpremultiply8(row[0], a)]), a)
						}
						if p1 {
							drow[1] = premultiply8(uint8(lut1[unpremultiply8(row[1], a)]), a)
						}
						if p2 {
							drow[2] = premultiply8(uint8(lut2[unpremultiply8(row[2], a)]), a)
						}
					}
					row = row[4:]
					drow = drow[4:]
				}
			}
		}
	case *image.NRGBA64:
		if err := f.checkImage(16, 3); err != nil {
			return nil, err
		}
		d := image.NewNRGBA64(b)
		ans = d
		luts := [3][]uint16{lut0, lut1, lut2}
		proc := [3]bool{p0, p1, p2}
		fn = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				drow := d.Pix[d.Stride*y:]
				_ = row[8*(width-1)]
				_ = drow[8*(width-1)]
				for range width {
					copy(drow[0:8:8], row[0:8:8])
					for c := range 3 {
						if !proc[c] {
							continue
						}
						o := luts[c][uint16(row[2*c])<<8|uint16(row[2*c+1])]
						drow[2*c] = uint8(o >> 8)
						drow[2*c+1] = uint8(o)
					}
					row = row[8:]
					drow = drow[8:]
				}
			}
		}
	case *image.RGBA64:
		if err := f.checkImage(16, 3); err != nil {
			return nil, err
		}
		d := image.NewRGBA64(b)
		ans = d
		luts := [3][]uint16{lut0, lut1, lut2}
		proc := [3]bool{p0, p1, p2}
		fn = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				drow := d.Pix[d.Stride*y:]
				_ = row[8*(width-1)]
				_ = drow[8*(width-1)]
				for range width {
					copy(drow[0:8:8], row[0:8:8])
					a := uint32(uint16(row[6])<<8 | uint16(row[7]))
					if a != 0 {
						for c := range 3 {
							if !proc[c] {
								continue
							}
							v := unpremultiply16(uint32(uint16(row[2*c])<<8|uint16(row[2*c+1])), a)
							o := premultiply16(uint32(luts[c][v]), a)
							drow[2*c] = uint8(o >> 8)
							drow[2*c+1] = uint8(o)
						}
					}
					row = row[8:]
					drow = drow[8:]
				}
			}
		}
	default:
		if err := f.checkImage(8, 3); err != nil {
			return nil, err
		}
		d := image.NewNRGBA(b)
		draw.Draw(d, d.Bounds(), img, b.Min, draw.Src)
		return ApplyToImage(f, d)
	}

	if width > 0 {
		if err := parallel.Run_in_parallel_over_range(0, fn, 0, height); err != nil {
			return nil, err
		}
	}
	return ans, nil
}
