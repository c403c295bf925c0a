package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/code-trail/internal/config"
)

// panelStyle is everything on the control panel that depends on the
// enabled flag.
type panelStyle struct {
	Status      string
	StatusColor color.NRGBA
	Label       string
	ButtonBG    color.NRGBA
	ButtonFG    color.NRGBA
}

var (
	statusBoxColor = color.NRGBA{R: 255, G: 255, B: 255, A: 217}
	shadowColor    = color.NRGBA{A: 38}
	hoverColor     = color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 255}
)

func panelStyleFor(enabled bool) panelStyle {
	if enabled {
		return panelStyle{
			Status:      "Mouse Animation is ON",
			StatusColor: color.NRGBA{R: 0x00, G: 0x64, B: 0x00, A: 255},
			Label:       "Click to turn OFF mouse animation",
			ButtonBG:    color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255},
			ButtonFG:    color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 255},
		}
	}
	return panelStyle{
		Status:      "Mouse Animation is OFF",
		StatusColor: color.NRGBA{R: 0xb2, G: 0x22, B: 0x22, A: 255},
		Label:       "Click to turn ON mouse animation",
		ButtonBG:    color.NRGBA{R: 0xa2, G: 0xd1, B: 0x49, A: 255},
		ButtonFG:    color.NRGBA{R: 0x22, G: 0x22, B: 0x22, A: 255},
	}
}

// panelRects places the status box above the button, both right-aligned
// against the bottom-right corner.
func panelRects(screenW, screenH int, statusW, buttonW, textH float64) (status, button image.Rectangle) {
	bw := int(buttonW) + 2*config.PanelPaddingX
	bh := int(textH) + 2*config.PanelPaddingY
	bx := screenW - config.PanelMargin - bw
	by := screenH - config.PanelMargin - bh
	button = image.Rect(bx, by, bx+bw, by+bh)

	sw := int(statusW) + 2*config.PanelPaddingX
	sx := screenW - config.PanelMargin - sw
	sy := by - config.PanelGap - bh
	status = image.Rect(sx, sy, sx+sw, sy+bh)
	return status, button
}

// panel is the status box plus toggle button.
type panel struct {
	face   *text.GoTextFace
	status image.Rectangle
	button image.Rectangle

	hovered bool
	pressed bool
}

func newPanel(font *text.GoTextFaceSource) *panel {
	return &panel{face: &text.GoTextFace{Source: font, Size: config.PanelFontSize}}
}

// layout recomputes the rectangles for the current labels and screen size.
func (p *panel) layout(screenW, screenH int, style panelStyle) {
	statusW, textH := text.Measure(style.Status, p.face, 0)
	buttonW, _ := text.Measure(style.Label, p.face, 0)
	p.status, p.button = panelRects(screenW, screenH, statusW, buttonW, textH)
}

// update tracks hover and press state and reports a completed click:
// press and release both inside the button.
func (p *panel) update(cx, cy int, justPressed, justReleased bool) bool {
	p.hovered = image.Pt(cx, cy).In(p.button)
	if p.hovered && justPressed {
		p.pressed = true
	}
	if justReleased {
		clicked := p.pressed && p.hovered
		p.pressed = false
		return clicked
	}
	return false
}

func (p *panel) draw(screen *ebiten.Image, style panelStyle) {
	drawBox(screen, p.status, statusBoxColor)
	drawLabel(screen, style.Status, p.face, p.status, style.StatusColor)

	bg := style.ButtonBG
	if p.hovered {
		bg = hoverColor
	}
	drawBox(screen, p.button, bg)
	drawLabel(screen, style.Label, p.face, p.button, style.ButtonFG)
}

func drawBox(screen *ebiten.Image, r image.Rectangle, c color.NRGBA) {
	x, y := float32(r.Min.X), float32(r.Min.Y)
	w, h := float32(r.Dx()), float32(r.Dy())
	vector.StrokeRect(screen, x, y, w, h, config.PanelShadowWidth, shadowColor, true)
	vector.DrawFilledRect(screen, x, y, w, h, c, true)
}

func drawLabel(screen *ebiten.Image, s string, face text.Face, r image.Rectangle, c color.NRGBA) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(r.Min.X+r.Dx()/2), float64(r.Min.Y+r.Dy()/2))
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, face, op)
}
