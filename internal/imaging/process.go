// Package imaging prepares images for the e-ink panel: rotation,
// aspect-preserving fit/fill scaling, grayscale reduction and 1-bit
// dithering. All transforms are pure functions of their inputs.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
)

// Display constants
const (
	DisplayWidth  = 800
	DisplayHeight = 480
)

// FitMode selects the scaling strategy.
type FitMode string

const (
	// Fit letterboxes: the whole source stays visible, white padding may
	// appear on one axis.
	Fit FitMode = "fit"
	// Fill crops: the target is covered completely, source content may be
	// clipped on one axis.
	Fill FitMode = "fill"
)

// ValidFitMode reports whether mode is a known fit mode.
func ValidFitMode(mode string) bool {
	return FitMode(mode) == Fit || FitMode(mode) == Fill
}

// Processed is the result of running the full pipeline. Gray is the
// 8-bit grayscale frame kept for human-facing previews; Mono is the
// dithered 1-bit frame bound for the hardware.
type Processed struct {
	Gray *image.Gray
	Mono *image.Gray
}

// Rotate rotates img clockwise by angle degrees. Only 0, 90, 180 and 270
// are accepted. The bounding box expands so no corner is clipped.
func Rotate(img image.Image, angle int) (image.Image, error) {
	switch angle {
	case 0:
		return img, nil
	case 90:
		// The library rotates counter-clockwise, so clockwise 90 is its 270.
		return imaging.Rotate270(img), nil
	case 180:
		return imaging.Rotate180(img), nil
	case 270:
		return imaging.Rotate90(img), nil
	default:
		return nil, fmt.Errorf("unsupported rotation angle: %d (must be 0, 90, 180 or 270)", angle)
	}
}

// FitTo scales img to fit within width x height preserving aspect ratio,
// then pastes it centered onto a white canvas of exactly those dimensions.
func FitTo(img image.Image, width, height int) image.Image {
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	if srcW == 0 || srcH == 0 {
		return imaging.New(width, height, color.White)
	}

	scale := math.Min(float64(width)/float64(srcW), float64(height)/float64(srcH))
	newW := int(float64(srcW) * scale)
	newH := int(float64(srcH) * scale)

	resized := imaging.Resize(img, newW, newH, imaging.Lanczos)
	canvas := imaging.New(width, height, color.White)
	return imaging.PasteCenter(canvas, resized)
}

// FillTo scales img to cover width x height preserving aspect ratio, then
// center-crops to exactly those dimensions.
func FillTo(img image.Image, width, height int) image.Image {
	srcW := img.Bounds().Dx()
	srcH := img.Bounds().Dy()
	if srcW == 0 || srcH == 0 {
		return imaging.New(width, height, color.White)
	}

	scale := math.Max(float64(width)/float64(srcW), float64(height)/float64(srcH))
	newW := int(float64(srcW) * scale)
	newH := int(float64(srcH) * scale)

	resized := imaging.Resize(img, newW, newH, imaging.Lanczos)
	return imaging.CropCenter(resized, width, height)
}

// ToGray converts img to 8-bit grayscale.
func ToGray(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// Process runs the full pipeline on an already-decoded source image:
// rotate, scale per fit mode, reduce to grayscale, dither to 1-bit.
func Process(src image.Image, rotation int, mode FitMode, width, height int) (*Processed, error) {
	rotated, err := Rotate(src, rotation)
	if err != nil {
		return nil, err
	}

	var scaled image.Image
	switch mode {
	case Fill:
		scaled = FillTo(rotated, width, height)
	case Fit, "":
		scaled = FitTo(rotated, width, height)
	default:
		return nil, fmt.Errorf("unsupported fit mode: %q", mode)
	}

	gray := ToGray(scaled)
	return &Processed{Gray: gray, Mono: Dither(gray)}, nil
}

// ProcessFile opens the image at path and runs Process on it.
func ProcessFile(path string, rotation int, mode FitMode, width, height int) (*Processed, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	return Process(src, rotation, mode, width, height)
}

// EncodePNG encodes img as PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}
