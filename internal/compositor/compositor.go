package compositor

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"vidgen/internal/services"
)

// JPEGQuality is the quality used when the composited frame is written out.
const JPEGQuality = 95

// Spec describes one composition: the source image and the canvas it is
// letterboxed onto.
type Spec struct {
	Source     string
	Width      int
	Height     int
	Background color.Color
}

// Placement is where the resized source lands on the canvas.
type Placement struct {
	Width  int
	Height int
	X      int
	Y      int
}

// Fit scales a srcW x srcH image to fit entirely inside a canvasW x canvasH
// canvas and centers it. Sources wider than the canvas take the full width;
// all others take the full height. Smaller sources are scaled up.
func Fit(srcW, srcH, canvasW, canvasH int) Placement {
	if srcW <= 0 || srcH <= 0 || canvasW <= 0 || canvasH <= 0 {
		return Placement{}
	}
	imgRatio := float64(srcW) / float64(srcH)
	canvasRatio := float64(canvasW) / float64(canvasH)

	var w, h int
	if imgRatio > canvasRatio {
		w = canvasW
		h = int(float64(canvasW) / imgRatio)
	} else {
		h = canvasH
		w = int(float64(canvasH) * imgRatio)
	}
	w = min(max(w, 1), canvasW)
	h = min(max(h, 1), canvasH)
	return Placement{Width: w, Height: h, X: (canvasW - w) / 2, Y: (canvasH - h) / 2}
}

// Compose loads spec.Source and returns it letterboxed on a canvas of the
// requested size. Transparent regions are flattened onto the background.
// The result is fully opaque and identical for identical input.
func Compose(spec Spec) (*image.NRGBA, error) {
	img, _, err := compose(spec)
	return img, err
}

// ComposeFile composes spec and writes the result to dst. The output format
// follows dst's extension; JPEG output uses JPEGQuality.
func ComposeFile(spec Spec, dst string) (Placement, error) {
	img, place, err := compose(spec)
	if err != nil {
		return Placement{}, err
	}
	if err := imaging.Save(img, dst, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return Placement{}, services.Wrap(services.ErrEnvironment, "compositing", "save image", dst, err)
	}
	return place, nil
}

func compose(spec Spec) (*image.NRGBA, Placement, error) {
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, Placement{}, services.Wrap(services.ErrPrecondition, "compositing", "canvas", fmt.Sprintf("invalid canvas %dx%d", spec.Width, spec.Height), nil)
	}
	bg := spec.Background
	if bg == nil {
		bg = color.Black
	}

	src, err := imaging.Open(spec.Source, imaging.AutoOrientation(true))
	if err != nil {
		return nil, Placement{}, services.Wrap(services.ErrDecode, "compositing", "open image", spec.Source, err)
	}
	bounds := src.Bounds()
	if bounds.Empty() {
		return nil, Placement{}, services.Wrap(services.ErrDecode, "compositing", "open image", spec.Source, errors.New("image has no pixels"))
	}

	place := Fit(bounds.Dx(), bounds.Dy(), spec.Width, spec.Height)
	resized := imaging.Resize(src, place.Width, place.Height, imaging.Lanczos)

	canvas := imaging.New(spec.Width, spec.Height, opaque(bg))
	return imaging.Overlay(canvas, resized, image.Pt(place.X, place.Y), 1.0), place, nil
}

func opaque(c color.Color) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0xff
	return n
}
