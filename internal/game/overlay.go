package game

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/code-trail/internal/config"
)

// glowRings are the offset distances (as fractions of config.GlowRadius)
// used to fake a blurred shadow around glyphs and dots.
var glowRings = []float64{0.15, 0.3}

// overlay is the full-window image the trail draws on. It implements
// trail.Canvas and is composited over the background every frame.
type overlay struct {
	img  *ebiten.Image
	font *text.GoTextFaceSource
}

func newOverlay(w, h int, font *text.GoTextFaceSource) *overlay {
	return &overlay{img: ebiten.NewImage(w, h), font: font}
}

func (o *overlay) Clear() { o.img.Clear() }

func (o *overlay) Resize(w, h int) {
	o.img.Deallocate()
	o.img = ebiten.NewImage(w, h)
}

func (o *overlay) Size() (int, int) {
	b := o.img.Bounds()
	return b.Dx(), b.Dy()
}

func (o *overlay) DrawLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	vector.StrokeLine(o.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}

func (o *overlay) DrawGlyph(glyph string, x, y, size float64, c, glow color.NRGBA) {
	face := &text.GoTextFace{Source: o.font, Size: size}

	if glow.A > 0 {
		halo := glow
		halo.A = glow.A / 6
		for _, ring := range glowRings {
			r := ring * config.GlowRadius
			for k := 0; k < 8; k++ {
				angle := float64(k) * math.Pi / 4
				o.drawText(glyph, face, x+math.Cos(angle)*r, y+math.Sin(angle)*r, halo)
			}
		}
	}
	o.drawText(glyph, face, x, y, c)
}

func (o *overlay) drawText(s string, face text.Face, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(o.img, s, face, op)
}

func (o *overlay) DrawDot(x, y, radius float64, c, glow color.NRGBA) {
	if glow.A > 0 {
		for i := len(glowRings) - 1; i >= 0; i-- {
			halo := glow
			halo.A = uint8(float64(glow.A) / float64(i+2))
			r := radius + glowRings[i]*config.GlowRadius*2
			vector.DrawFilledCircle(o.img, float32(x), float32(y), float32(r), halo, true)
		}
	}
	vector.DrawFilledCircle(o.img, float32(x), float32(y), float32(radius), c, true)
}
