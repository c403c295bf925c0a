package game

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/iburimskiy/code-trail/internal/config"
	"github.com/iburimskiy/code-trail/internal/trail"
)

// Game hosts the trail renderer in an ebiten window. Every Update tick
// is one animation frame.
type Game struct {
	log     *slog.Logger
	trail   *trail.Renderer
	overlay *overlay
	panel   *panel
	sound   *toggleSound

	// background is rebuilt whenever the window size changes
	background *ebiten.Image

	width, height      int
	pendingW, pendingH int
	cursorX, cursorY   int
	cursorSeen         bool

	snapshotRequested bool
	snapshot          *image.RGBA
	lastErr           error

	stopped atomic.Bool
}

// NewGame builds the game for cfg. A nil logger discards output.
func NewGame(cfg config.Config, log *slog.Logger) (*Game, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	font, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ov := newOverlay(cfg.Width, cfg.Height, font)
	g := &Game{
		log:     log,
		overlay: ov,
		panel:   newPanel(font),
		sound:   newToggleSound(cfg.Sound, log),
		width:   cfg.Width,
		height:  cfg.Height,
	}
	g.trail = trail.New(cfg, ov, rand.New(rand.NewSource(seed)), trail.WithLogger(log))
	g.background = newBackground(cfg.Width, cfg.Height)
	return g, nil
}

// Stop ends the loop on the next tick. Safe to call from any goroutine.
func (g *Game) Stop() {
	g.stopped.Store(true)
}

func (g *Game) Update() error {
	if g.stopped.Load() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.pendingW > 0 && (g.pendingW != g.width || g.pendingH != g.height) {
		g.width, g.height = g.pendingW, g.pendingH
		g.trail.Resize(g.width, g.height)
		g.background.Deallocate()
		g.background = newBackground(g.width, g.height)
	}

	g.panel.layout(g.width, g.height, panelStyleFor(g.trail.Enabled()))

	cx, cy := ebiten.CursorPosition()
	clicked := g.panel.update(cx, cy,
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft))
	if clicked {
		g.toggle()
	}

	if !g.cursorSeen || cx != g.cursorX || cy != g.cursorY {
		g.cursorX, g.cursorY, g.cursorSeen = cx, cy, true
		g.trail.PointerMove(float64(cx), float64(cy), time.Now())
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.snapshotRequested = true
	}
	if g.snapshot != nil {
		frame := g.snapshot
		g.snapshot = nil
		path, err := saveSnapshotDialog(frame)
		switch {
		case err != nil:
			g.lastErr = err
			g.log.Error("snapshot failed", "err", err)
		case path != "":
			g.lastErr = nil
			g.log.Info("snapshot saved", "path", path)
		}
	}

	g.trail.Frame()
	return nil
}

// toggle flips the trail and re-lays out the panel for the new labels.
func (g *Game) toggle() {
	on := g.trail.Toggle()
	g.panel.layout(g.width, g.height, panelStyleFor(on))
	if err := g.sound.play(on); err != nil {
		g.log.Warn("toggle sound disabled", "err", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.background, nil)
	screen.DrawImage(g.overlay.img, nil)

	style := panelStyleFor(g.trail.Enabled())
	g.panel.draw(screen, style)

	if g.snapshotRequested {
		g.snapshot = captureFrame(screen)
		g.snapshotRequested = false
	}

	status := "S: save snapshot, Esc/Q: quit"
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, 12, 12)
}

// Layout follows the window size; the change is applied on the next Update.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.pendingW, g.pendingH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// newBackground renders the vertical page gradient once per size.
func newBackground(w, h int) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	for y := 0; y < h; y++ {
		c := backgroundColor(float64(y) / float64(h))
		vector.DrawFilledRect(img, 0, float32(y), float32(w), 1, c, false)
	}
	return img
}
