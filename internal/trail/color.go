package trail

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// hsla converts hue (degrees), saturation and lightness (0-1) plus an
// alpha in 0-1 into a non-premultiplied color.
func hsla(h, s, l, a float64) color.NRGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(a) * 255))}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func black(a float64) color.NRGBA {
	return color.NRGBA{A: uint8(math.Round(clamp01(a) * 255))}
}
