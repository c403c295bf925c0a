package game

import (
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	backgroundTop    = colorful.Color{R: 0.97, G: 0.97, B: 0.98}
	backgroundBottom = colorful.Color{R: 0.86, G: 0.89, B: 0.94}
)

// backgroundColor returns the page colour at ratio (0 top, 1 bottom).
func backgroundColor(ratio float64) color.NRGBA {
	ratio = math.Max(0, math.Min(1, ratio))
	r, g, b := backgroundTop.BlendLab(backgroundBottom, ratio).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
