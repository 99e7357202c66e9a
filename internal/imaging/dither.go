package imaging

import (
	"image"
	"image/color"
)

// Dither reduces an 8-bit grayscale image to two levels (0 and 255) using
// Floyd-Steinberg error diffusion. The source image is not modified.
func Dither(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	// Work in a float buffer so diffused error survives between rows.
	buf := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf[y*w+x] = float32(src.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			old := buf[y*w+x]
			var quant float32
			if old >= 128 {
				quant = 255
			}
			out.SetGray(x, y, color.Gray{Y: uint8(quant)})

			// Distribute quantization error: 7/16 right, 3/16 down-left,
			// 5/16 down, 1/16 down-right.
			err := old - quant
			if x+1 < w {
				buf[y*w+x+1] += err * 7 / 16
			}
			if y+1 < h {
				if x > 0 {
					buf[(y+1)*w+x-1] += err * 3 / 16
				}
				buf[(y+1)*w+x] += err * 5 / 16
				if x+1 < w {
					buf[(y+1)*w+x+1] += err * 1 / 16
				}
			}
		}
	}

	return out
}
