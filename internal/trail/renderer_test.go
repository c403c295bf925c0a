package trail

import (
	"image/color"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/iburimskiy/code-trail/internal/config"
)

type recordedLine struct {
	x0, y0, x1, y1 float64
	c              color.NRGBA
}

// recordingCanvas keeps what was drawn since the last Clear.
type recordingCanvas struct {
	w, h   int
	clears int
	lines  []recordedLine
	glyphs []string
	dots   int
}

func (c *recordingCanvas) Clear() {
	c.clears++
	c.lines = nil
	c.glyphs = nil
	c.dots = 0
}

func (c *recordingCanvas) Resize(w, h int) { c.w, c.h = w, h }

func (c *recordingCanvas) Size() (int, int) { return c.w, c.h }

func (c *recordingCanvas) DrawLine(x0, y0, x1, y1, _ float64, clr color.NRGBA) {
	c.lines = append(c.lines, recordedLine{x0, y0, x1, y1, clr})
}

func (c *recordingCanvas) DrawGlyph(glyph string, _, _, _ float64, _, _ color.NRGBA) {
	c.glyphs = append(c.glyphs, glyph)
}

func (c *recordingCanvas) DrawDot(_, _, _ float64, _, _ color.NRGBA) { c.dots++ }

func newTestRenderer(t *testing.T, cfg config.Config) (*Renderer, *recordingCanvas) {
	t.Helper()
	canvas := &recordingCanvas{w: 800, h: 600}
	return New(cfg, canvas, rand.New(rand.NewSource(1))), canvas
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestToggleTwiceRestoresState(t *testing.T) {
	r, _ := newTestRenderer(t, config.Default())
	if !r.Enabled() {
		t.Fatal("new renderer should start enabled")
	}
	if got := r.Toggle(); got {
		t.Errorf("first Toggle() = %v, want false", got)
	}
	if got := r.Toggle(); !got {
		t.Errorf("second Toggle() = %v, want true", got)
	}
	if !r.Enabled() {
		t.Error("Enabled() = false after toggling twice")
	}
}

func TestDisableClearsTrailAndCanvas(t *testing.T) {
	r, canvas := newTestRenderer(t, config.Default())
	for i := 0; i < 5; i++ {
		r.PointerMove(float64(i*10), 0, epoch.Add(time.Duration(i)*time.Second))
	}
	r.Frame()
	if r.Len() != 5 || len(canvas.glyphs) != 5 {
		t.Fatalf("before disable: Len() = %d, glyphs = %d, want 5 and 5", r.Len(), len(canvas.glyphs))
	}

	clears := canvas.clears
	r.Toggle()
	if r.Len() != 0 {
		t.Errorf("Len() = %d after disable, want 0", r.Len())
	}
	if canvas.clears != clears+1 || len(canvas.glyphs) != 0 || len(canvas.lines) != 0 {
		t.Errorf("canvas not cleared on disable: clears %d -> %d, glyphs %d, lines %d",
			clears, canvas.clears, len(canvas.glyphs), len(canvas.lines))
	}

	if r.PointerMove(1, 1, epoch.Add(time.Hour)) {
		t.Error("PointerMove emitted while disabled")
	}
	r.Frame()
	if len(canvas.glyphs) != 0 || len(canvas.lines) != 0 {
		t.Error("Frame drew while disabled")
	}
}

func TestAlphaDecreasesUntilRemoved(t *testing.T) {
	r, _ := newTestRenderer(t, config.Default())
	r.PointerMove(100, 100, epoch)

	prev := r.Particles()[0].Alpha
	frames := 0
	for r.Len() > 0 {
		r.Frame()
		frames++
		for _, p := range r.Particles() {
			if p.Alpha <= 0 {
				t.Fatalf("frame %d: particle kept with alpha %v", frames, p.Alpha)
			}
			if p.Alpha >= prev {
				t.Fatalf("frame %d: alpha %v did not drop below %v", frames, p.Alpha, prev)
			}
			prev = p.Alpha
		}
		if frames > 1000 {
			t.Fatal("particle never removed")
		}
	}
	if want := int(math.Ceil(1 / config.AlphaStep)); frames < want-1 || frames > want+1 {
		t.Errorf("particle lived %d frames, want about %d", frames, want)
	}
}

func TestFrameRemovesWithoutSkipping(t *testing.T) {
	r, canvas := newTestRenderer(t, config.Default())
	r.particles = []Particle{
		{X: 0, Y: 0, Alpha: 0.01, Size: 30, Glyph: "{"},
		{X: 500, Y: 0, Alpha: 0.01, Size: 30, Glyph: "}"},
		{X: 0, Y: 500, Alpha: 0.5, Size: 30, Glyph: ";"},
	}
	r.Frame()

	if len(canvas.glyphs) != 3 {
		t.Errorf("drew %d glyphs, want 3", len(canvas.glyphs))
	}
	got := r.Particles()
	if len(got) != 1 || got[0].Glyph != ";" {
		t.Fatalf("survivors = %+v, want only ';'", got)
	}
	if math.Abs(got[0].Alpha-(0.5-config.AlphaStep)) > 1e-9 {
		t.Errorf("alpha = %v, want %v", got[0].Alpha, 0.5-config.AlphaStep)
	}
}

func TestLinks(t *testing.T) {
	tests := []struct {
		name     string
		dist     float64
		wantLink bool
	}{
		{"same point", 0, true},
		{"half threshold", 75, true},
		{"just inside", 149.9, true},
		{"at threshold", 150, false},
		{"far apart", 400, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps := []Particle{{X: 10, Y: 10}, {X: 10 + tt.dist, Y: 10}}
			links := Links(ps, 150)
			if got := len(links) == 1; got != tt.wantLink {
				t.Fatalf("linked = %v, want %v", got, tt.wantLink)
			}
			if tt.wantLink {
				want := 1 - tt.dist/150
				if math.Abs(links[0].Opacity-want) > 1e-9 {
					t.Errorf("Opacity = %v, want %v", links[0].Opacity, want)
				}
			}
		})
	}
}

func TestLinkOpacityDecreasing(t *testing.T) {
	prev := LinkOpacity(0, 150)
	if prev != 1 {
		t.Fatalf("LinkOpacity(0) = %v, want 1", prev)
	}
	for d := 1.0; d <= 150; d++ {
		got := LinkOpacity(d, 150)
		if got >= prev {
			t.Fatalf("LinkOpacity(%v) = %v, not below %v", d, got, prev)
		}
		prev = got
	}
	if prev != 0 {
		t.Errorf("LinkOpacity(150) = %v, want 0", prev)
	}
}

func TestFrameDrawsOnlyCloseLinks(t *testing.T) {
	r, canvas := newTestRenderer(t, config.Default())
	r.particles = []Particle{
		{X: 0, Y: 0, Alpha: 1, Size: 30, Hue: 220, Glyph: "if"},
		{X: 100, Y: 0, Alpha: 1, Size: 30, Hue: 230, Glyph: "if"},
		{X: 1000, Y: 0, Alpha: 1, Size: 30, Hue: 240, Glyph: "if"},
	}
	r.Frame()

	if len(canvas.lines) != 1 {
		t.Fatalf("drew %d lines, want 1", len(canvas.lines))
	}
	l := canvas.lines[0]
	if l.x0 != 0 || l.x1 != 100 {
		t.Errorf("line from %v to %v, want 0 to 100", l.x0, l.x1)
	}
	if want := uint8(math.Round((1 - 100.0/150) * 255)); l.c.A != want {
		t.Errorf("line alpha = %d, want %d", l.c.A, want)
	}
}

func TestResize(t *testing.T) {
	r, canvas := newTestRenderer(t, config.Default())
	r.Resize(1280, 720)
	if w, h := canvas.Size(); w != 1280 || h != 720 {
		t.Errorf("canvas = %dx%d, want 1280x720", w, h)
	}
	r.Resize(0, 500)
	if w, h := canvas.Size(); w != 1280 || h != 720 {
		t.Errorf("zero width changed canvas to %dx%d", w, h)
	}
}

func TestPointerMoveInterval(t *testing.T) {
	r, _ := newTestRenderer(t, config.Default())
	steps := []struct {
		after time.Duration
		want  bool
	}{
		{0, true},
		{10 * time.Millisecond, false},
		{79 * time.Millisecond, false},
		{80 * time.Millisecond, true},
		{100 * time.Millisecond, false},
		{200 * time.Millisecond, true},
	}
	for _, s := range steps {
		if got := r.PointerMove(5, 5, epoch.Add(s.after)); got != s.want {
			t.Errorf("PointerMove at +%v = %v, want %v", s.after, got, s.want)
		}
	}
	if r.Len() != 3 {
		t.Errorf("Len() = %d, want 3", r.Len())
	}
}

func TestSymbolParticles(t *testing.T) {
	r, _ := newTestRenderer(t, config.Default())
	glyphs := map[string]bool{}
	for _, g := range config.DefaultGlyphs() {
		glyphs[g] = true
	}
	for i := 0; i < 50; i++ {
		r.PointerMove(0, 0, epoch.Add(time.Duration(i)*time.Second))
	}
	for i, p := range r.Particles() {
		if p.Hue < 200 || p.Hue >= 260 {
			t.Errorf("particle %d hue = %v, want [200, 260)", i, p.Hue)
		}
		if p.Size < 28 || p.Size >= 48 {
			t.Errorf("particle %d size = %v, want [28, 48)", i, p.Size)
		}
		if !glyphs[p.Glyph] {
			t.Errorf("particle %d glyph %q not in the symbol set", i, p.Glyph)
		}
		if p.Alpha != 1 {
			t.Errorf("particle %d alpha = %v, want 1", i, p.Alpha)
		}
	}
}

func TestDotVariant(t *testing.T) {
	cfg := config.Default()
	cfg.Variant = config.VariantDots
	cfg.Interval = 0
	r, canvas := newTestRenderer(t, cfg)

	for i := 0; i < 4; i++ {
		if !r.PointerMove(float64(i), 0, epoch) {
			t.Fatalf("move %d not emitted without interval", i)
		}
	}
	r.Frame()
	if canvas.dots != 4 || len(canvas.glyphs) != 0 {
		t.Errorf("dots = %d, glyphs = %d, want 4 and 0", canvas.dots, len(canvas.glyphs))
	}
	for _, p := range r.Particles() {
		if p.Glyph != "" || p.Size < 2 || p.Size >= 6 {
			t.Errorf("unexpected dot particle %+v", p)
		}
	}
}
