package curves

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func negativeFilter(t *testing.T, bitDepth, numPlanes int, planes ...int) *Filter {
	t.Helper()
	f, err := New(Options{BitDepth: bitDepth, NumPlanes: numPlanes, Preset: PresetNegative, Planes: planes})
	require.NoError(t, err)
	return f
}

func TestApplyToImageNRGBA(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 200})
	img.SetNRGBA(2, 1, color.NRGBA{R: 255, G: 0, B: 128, A: 7})

	out, err := ApplyToImage(negativeFilter(t, 8, 3), img)
	require.NoError(t, err)
	d, ok := out.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 245, G: 235, B: 225, A: 200}, d.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{R: 0, G: 255, B: 127, A: 7}, d.NRGBAAt(2, 1))
}

func TestApplyToImagePlaneSelection(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	out, err := ApplyToImage(negativeFilter(t, 8, 3, 1), img)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 10, G: 235, B: 30, A: 255}, out.(*image.NRGBA).NRGBAAt(0, 0))
}

func TestApplyToImageGray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(i * 16)
	}
	out, err := ApplyToImage(negativeFilter(t, 8, 1), img)
	require.NoError(t, err)
	d := out.(*image.Gray)
	for i, v := range img.Pix {
		assert.EqualValues(t, 255-v, d.Pix[i])
	}
}

func TestApplyToImageGray16(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 2, 2))
	img.SetGray16(0, 0, color.Gray16{Y: 0x1234})
	img.SetGray16(1, 1, color.Gray16{Y: 0xffff})
	out, err := ApplyToImage(negativeFilter(t, 16, 1), img)
	require.NoError(t, err)
	d := out.(*image.Gray16)
	assert.Equal(t, color.Gray16{Y: 0xffff - 0x1234}, d.Gray16At(0, 0))
	assert.Equal(t, color.Gray16{Y: 0}, d.Gray16At(1, 1))
}

func TestApplyToImageNRGBA64(t *testing.T) {
	img := image.NewNRGBA64(image.Rect(0, 0, 2, 1))
	img.SetNRGBA64(0, 0, color.NRGBA64{R: 0x0102, G: 0x0304, B: 0x0506, A: 0x8000})
	out, err := ApplyToImage(negativeFilter(t, 16, 3), img)
	require.NoError(t, err)
	d := out.(*image.NRGBA64)
	got := d.NRGBA64At(0, 0)
	assert.Equal(t, color.NRGBA64{R: 0xffff - 0x0102, G: 0xffff - 0x0304, B: 0xffff - 0x0506, A: 0x8000}, got)
}

func TestApplyToImageRGBAOpaque(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	out, err := ApplyToImage(negativeFilter(t, 8, 3), img)
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 245, G: 235, B: 225, A: 255}, out.(*image.RGBA).RGBAAt(0, 0))
}

func TestApplyToImageYCbCr(t *testing.T) {
	img := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio420)
	for i := range img.Y {
		img.Y[i] = uint8(13 * i)
	}
	for i := range img.Cb {
		img.Cb[i] = uint8(100 + i)
		img.Cr[i] = uint8(50 + i)
	}
	out, err := ApplyToImage(negativeFilter(t, 8, 3, 0), img)
	require.NoError(t, err)
	d := out.(*image.YCbCr)
	for i, v := range img.Y {
		assert.EqualValues(t, 255-v, d.Y[i], "luma sample %d", i)
	}
	assert.Equal(t, img.Cb, d.Cb, "chroma must pass through")
	assert.Equal(t, img.Cr, d.Cr, "chroma must pass through")
	// the source is untouched
	assert.EqualValues(t, 0, img.Y[0])
}

func TestApplyToImageEmpty(t *testing.T) {
	// an empty Y'CbCr image has non-nil zero-length plane buffers; the
	// pass-through copy of the unselected planes must not touch them
	img := image.NewYCbCr(image.Rect(0, 0, 0, 0), image.YCbCrSubsampleRatio420)
	out, err := ApplyToImage(negativeFilter(t, 8, 3, 0), img)
	require.NoError(t, err)
	assert.Empty(t, out.(*image.YCbCr).Y)

	_, err = ApplyToImage(negativeFilter(t, 8, 3), image.NewNRGBA(image.Rect(0, 0, 0, 5)))
	assert.NoError(t, err)
}

func TestApplyToImageFallback(t *testing.T) {
	img := image.NewCMYK(image.Rect(0, 0, 2, 2))
	out, err := ApplyToImage(negativeFilter(t, 8, 3), img)
	require.NoError(t, err)
	d, ok := out.(*image.NRGBA)
	require.True(t, ok)
	// CMYK zero value is white, the negative maps it to black
	assert.Equal(t, color.NRGBA{R: 0, G: 0, B: 0, A: 255}, d.NRGBAAt(0, 0))
}

func TestApplyToImageFormatMismatch(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	_, err := ApplyToImage(negativeFilter(t, 8, 3), gray)
	assert.Error(t, err)
	rgb := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	_, err = ApplyToImage(negativeFilter(t, 16, 3), rgb)
	assert.Error(t, err)
}
