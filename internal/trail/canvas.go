package trail

import "image/color"

// Canvas is the overlay surface the renderer draws on.
type Canvas interface {
	Clear()
	Resize(w, h int)
	Size() (w, h int)
	DrawLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	// DrawGlyph draws glyph centred on (x, y) with a soft glow behind it.
	DrawGlyph(glyph string, x, y, size float64, c, glow color.NRGBA)
	DrawDot(x, y, radius float64, c, glow color.NRGBA)
}
