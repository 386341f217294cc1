package curves_test

import (
	"fmt"
	"image"

	"github.com/framefx/curves"
)

func Example() {
	filter, err := curves.New(curves.Options{
		BitDepth: 8,
		Master:   curves.CurveSpec{String: "0/0 0.5/0.58 1/1"},
	})
	if err != nil {
		panic(err)
	}

	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[0], img.Pix[1], img.Pix[2], img.Pix[3] = 128, 128, 128, 255

	out, err := curves.ApplyToImage(filter, img)
	if err != nil {
		panic(err)
	}
	fmt.Println(out.(*image.NRGBA).NRGBAAt(0, 0))
	// Output: {148 148 148 255}
}

func ExampleNew_preset() {
	filter, err := curves.New(curves.Options{BitDepth: 8, Preset: curves.PresetNegative})
	if err != nil {
		panic(err)
	}
	lut := filter.LUT(curves.SlotMaster)
	fmt.Println(lut[0], lut[255])
	// Output: 255 0
}
