package easel

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and frame loop created by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Resizable     bool
	ShowFPS       bool
	// OnFrame, when set, runs once per frame before the scheduler tick.
	OnFrame func(*Context)
}

// game adapts a Context to the ebiten.Game interface. Each Update feeds the
// scheduler a monotonic millisecond timestamp; Draw blits the context
// surface, which the render task painted during Update.
type game struct {
	ctx     *Context
	cfg     RunConfig
	started time.Time
}

func (g *game) Update() error {
	if g.cfg.OnFrame != nil {
		g.cfg.OnFrame(g.ctx)
	}
	now := float64(time.Since(g.started)) / float64(time.Millisecond)
	g.ctx.Tick(now)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.DrawImage(g.ctx.Surface(), nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.ctx.Size()
	if g.cfg.Resizable && (outsideWidth != w || outsideHeight != h) {
		g.ctx.Resize(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return w, h
}

// Run opens a window and drives the context's frame loop until the window
// is closed. It registers DrawUnits as the render procedure if none is set,
// and adds an FPS readout when cfg.ShowFPS is true.
func Run(ctx *Context, cfg RunConfig) error {
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = ctx.Size()
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if ctx.renderProc == nil {
		ctx.SetRenderProc(DrawUnits)
	}
	if cfg.ShowFPS {
		NewFPSUnit(ctx)
	}

	return ebiten.RunGame(&game{ctx: ctx, cfg: cfg, started: time.Now()})
}
