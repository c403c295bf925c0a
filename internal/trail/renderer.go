package trail

import (
	"io"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/iburimskiy/code-trail/internal/config"
)

const (
	symbolHueStart = 220.0
	symbolHueMin   = 200.0
	symbolHueBand  = 60.0
	symbolHueStep  = 10.0

	dotHueStep = 4.0

	glyphMinSize = 28.0
	glyphSpread  = 20.0
	dotMinRadius = 2.0
	dotSpread    = 4.0
)

// Renderer owns the particle list, the enabled flag and the hue counter.
// It is not safe for concurrent use; the host loop serialises all calls.
type Renderer struct {
	cfg    config.Config
	canvas Canvas
	rng    *rand.Rand
	log    *slog.Logger

	particles []Particle
	enabled   bool
	hue       float64
	lastEmit  time.Time
	emitted   bool
}

// Option customises a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for state changes.
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// New returns an enabled renderer with an empty trail.
func New(cfg config.Config, canvas Canvas, rng *rand.Rand, opts ...Option) *Renderer {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r := &Renderer{
		cfg:     cfg,
		canvas:  canvas,
		rng:     rng,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		enabled: true,
		hue:     symbolHueStart,
	}
	if cfg.Variant == config.VariantDots {
		r.hue = 0
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Enabled() bool { return r.enabled }

func (r *Renderer) Len() int { return len(r.particles) }

// Particles returns a copy of the live trail, oldest first.
func (r *Renderer) Particles() []Particle {
	out := make([]Particle, len(r.particles))
	copy(out, r.particles)
	return out
}

// PointerMove appends a particle at (x, y) and reports whether one was
// emitted. Moves while disabled, or sooner than the configured interval
// after the previous particle, are ignored.
func (r *Renderer) PointerMove(x, y float64, now time.Time) bool {
	if !r.enabled {
		return false
	}
	if r.cfg.Interval > 0 && r.emitted && now.Sub(r.lastEmit) < r.cfg.Interval {
		return false
	}
	r.lastEmit = now
	r.emitted = true

	p := Particle{X: x, Y: y, Alpha: 1, Hue: r.hue}
	if r.cfg.Variant == config.VariantDots {
		p.Size = r.rng.Float64()*dotSpread + dotMinRadius
		r.hue = math.Mod(r.hue+dotHueStep, 360)
	} else {
		p.Size = r.rng.Float64()*glyphSpread + glyphMinSize
		p.Glyph = r.cfg.Glyphs[r.rng.Intn(len(r.cfg.Glyphs))]
		r.hue = symbolHueMin + math.Mod(r.hue-symbolHueMin+symbolHueStep, symbolHueBand)
	}
	r.particles = append(r.particles, p)
	return true
}

// Toggle flips the enabled flag and returns the new value. Disabling
// drops the trail and clears the canvas at once.
func (r *Renderer) Toggle() bool {
	r.enabled = !r.enabled
	if !r.enabled {
		r.particles = r.particles[:0]
		r.canvas.Clear()
	}
	r.log.Info("trail toggled", "enabled", r.enabled)
	return r.enabled
}

// Frame redraws the canvas and ages every particle by one step.
func (r *Renderer) Frame() {
	r.canvas.Clear()
	if !r.enabled {
		return
	}

	for _, l := range Links(r.particles, r.cfg.LinkDistance) {
		a, b := r.particles[l.A], r.particles[l.B]
		r.canvas.DrawLine(a.X, a.Y, b.X, b.Y, config.LinkWidth, hsla(a.Hue, 0.7, 0.3, l.Opacity))
	}

	live := r.particles[:0]
	for _, p := range r.particles {
		r.draw(p)

		p.X += (r.rng.Float64() - 0.5) * r.cfg.Jitter
		p.Y += (r.rng.Float64() - 0.5) * r.cfg.Jitter
		p.Alpha -= r.cfg.AlphaStep
		if p.Alpha > 0 {
			live = append(live, p)
		}
	}
	r.particles = live
}

func (r *Renderer) draw(p Particle) {
	if p.Glyph != "" {
		r.canvas.DrawGlyph(p.Glyph, p.X, p.Y, p.Size,
			hsla(p.Hue, 0.7, 0.2, p.Alpha),
			black(p.Alpha*0.9))
		return
	}
	r.canvas.DrawDot(p.X, p.Y, p.Size,
		hsla(p.Hue, 0.7, 0.5, p.Alpha),
		hsla(p.Hue, 0.7, 0.5, p.Alpha*0.5))
}

// Resize sets the canvas to exactly w x h. Non-positive sizes are ignored.
func (r *Renderer) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if cw, ch := r.canvas.Size(); cw == w && ch == h {
		return
	}
	r.canvas.Resize(w, h)
	r.log.Debug("canvas resized", "width", w, "height", h)
}
