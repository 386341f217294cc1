// Command curves applies tone curve adjustments to an image file and
// writes the result as PNG (or APNG for animated input).
//
// Curve points use the "x/y x/y ..." syntax of the classic curves video
// filter, with coordinates in [0,1]:
//
//	curves -preset vintage -o out.png in.jpg
//	curves -m "0/0 0.5/0.58 1/1" in.png
//	curves -acv portra.acv -planes 0,1,2 in.webp
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/kettek/apng"
	"github.com/rwcarlsen/goexif/exif"
	exiftiff "github.com/rwcarlsen/goexif/tiff"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/framefx/curves"
)

var (
	presetFlag = flag.String("preset", "", "preset name or index (none, color_negative, cross_process, darker, increase_contrast, lighter, linear_contrast, medium_contrast, negative, strong_contrast, vintage)")
	redFlag    = flag.String("r", "", "curve points for the first plane")
	greenFlag  = flag.String("g", "", "curve points for the second plane")
	blueFlag   = flag.String("b", "", "curve points for the third plane")
	masterFlag = flag.String("m", "", "master curve points, applied on top of the plane curves")
	acvFlag    = flag.String("acv", "", "path to a Photoshop .acv curves file")
	planesFlag = flag.String("planes", "", "comma separated plane indices to process (default: all)")
	outFlag    = flag.String("o", "", "output file (default: input plus .out.png)")
	orientFlag = flag.Bool("autoorient", true, "apply the EXIF orientation before adjusting")
)

func parsePreset(s string) (int, error) {
	if s == "" {
		return curves.PresetNone, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	return curves.PresetByName(s)
}

func parsePlanes(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var planes []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad plane index %q", part)
		}
		planes = append(planes, n)
	}
	return planes, nil
}

// exifOrientation digs the EXIF orientation tag out of the raw file
// bytes, reporting 0 when there is none.
func exifOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil || x == nil {
		return 0
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil || tag == nil || tag.Format() != exiftiff.IntVal {
		return 0
	}
	if v, err := tag.Int(0); err == nil && v > 0 && v < 9 {
		return v
	}
	return 0
}

// orient returns img transformed per the EXIF orientation value. The
// input is converted to NRGBA when a transform is needed.
func orient(img image.Image, o int) image.Image {
	if o <= 1 {
		return img
	}
	src := toNRGBA(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dw, dh := w, h
	if o >= 5 {
		dw, dh = h, w
	}
	d := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var tx, ty int
			switch o {
			case 2: // mirrored horizontally
				tx, ty = w-1-x, y
			case 3: // rotated 180
				tx, ty = w-1-x, h-1-y
			case 4: // mirrored vertically
				tx, ty = x, h-1-y
			case 5: // transposed
				tx, ty = y, x
			case 6: // rotated 90 clockwise
				tx, ty = h-1-y, x
			case 7: // transversed
				tx, ty = h-1-y, w-1-x
			case 8: // rotated 270 clockwise
				tx, ty = y, w-1-x
			}
			si := src.PixOffset(b.Min.X+x, b.Min.Y+y)
			di := d.PixOffset(tx, ty)
			copy(d.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
	return d
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	d := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d.Set(x, y, img.At(x, y))
		}
	}
	return d
}

func formatOf(img image.Image) (bitDepth, numPlanes int) {
	bitDepth, numPlanes = 8, 3
	switch img.(type) {
	case *image.Gray:
		numPlanes = 1
	case *image.Gray16:
		bitDepth, numPlanes = 16, 1
	case *image.NRGBA64, *image.RGBA64:
		bitDepth = 16
	}
	return
}

func run() error {
	flag.Parse()
	if flag.NArg() != 1 {
		return fmt.Errorf("usage: curves [options] input-file")
	}
	input := flag.Arg(0)
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	preset, err := parsePreset(*presetFlag)
	if err != nil {
		return err
	}
	planes, err := parsePlanes(*planesFlag)
	if err != nil {
		return err
	}

	// PNG goes through the apng decoder so animations survive the trip.
	var anim apng.APNG
	var frames []image.Image
	animated := false
	if bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")) {
		anim, err = apng.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return err
		}
		animated = len(anim.Frames) > 1
		for _, fr := range anim.Frames {
			frames = append(frames, fr.Image)
		}
	} else {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return err
		}
		if *orientFlag {
			img = orient(img, exifOrientation(data))
		}
		frames = []image.Image{img}
	}

	bitDepth, numPlanes := formatOf(frames[0])
	filter, err := curves.New(curves.Options{
		BitDepth:  bitDepth,
		NumPlanes: numPlanes,
		Preset:    preset,
		Curves: [3]curves.CurveSpec{
			{String: *redFlag},
			{String: *greenFlag},
			{String: *blueFlag},
		},
		Master:  curves.CurveSpec{String: *masterFlag},
		AcvFile: *acvFlag,
		Planes:  planes,
	})
	if err != nil {
		return err
	}

	for i, img := range frames {
		if frames[i], err = curves.ApplyToImage(filter, img); err != nil {
			return err
		}
	}

	output := *outFlag
	if output == "" {
		output = input + ".out.png"
	}
	out, err := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	if err != nil {
		return err
	}
	defer out.Close()

	if animated {
		for i := range anim.Frames {
			anim.Frames[i].Image = frames[i]
		}
		if err = apng.Encode(out, anim); err != nil {
			return err
		}
	} else if err = png.Encode(out, frames[0]); err != nil {
		return err
	}
	fmt.Println("saved to:", output)
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
