package renderer

import (
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/surface"
	"github.com/pthm-cable/backdrop/systems"
)

// GridRenderer strokes a sampled terrain grid with elevation colours.
type GridRenderer struct {
	cfg config.TerrainConfig
}

// NewGridRenderer creates a renderer for a terrain variant.
func NewGridRenderer(cfg config.TerrainConfig) *GridRenderer {
	return &GridRenderer{cfg: cfg}
}

// Draw strokes every visible edge. Colour follows the low/high/peak gradient of the
// source vertex; opacity follows the row fade.
func (r *GridRenderer) Draw(c surface.Canvas, g *systems.Grid, points []systems.GridPoint) {
	low, high, peak := r.cfg.Low.NRGBA, r.cfg.High.NRGBA, r.cfg.Peak.NRGBA
	g.Edges(points, r.cfg.Diagonals, func(e systems.Edge) {
		col := systems.Gradient3(low, high, peak, e.Height)
		c.StrokeLine(e.From.X, e.From.Y, e.To.X, e.To.Y, r.cfg.LineWidth, surface.Solid(surface.Fade(col, e.Opacity)))
	})
}

// HorizonGlow draws a faint glow band centred slightly below horizonY.
func (r *GridRenderer) HorizonGlow(c surface.Canvas, width, horizonY float64) {
	Band(c, width, horizonY-250, horizonY+150, systems.WithAlpha(r.cfg.Glow.NRGBA, 0.12))
}
