package render

import (
	"github.com/san-kum/sandfall/internal/geom"
	"github.com/san-kum/sandfall/internal/grid"
)

const (
	DefaultCellWidth   = 16
	DefaultBorderWidth = 2
)

type Options struct {
	CellWidth   int
	BorderWidth int
	Theme       Theme
	// Incremental re-renders only the cells that changed since the last
	// frame. Both modes produce identical buffers.
	Incremental bool
}

func DefaultOptions() Options {
	return Options{
		CellWidth:   DefaultCellWidth,
		BorderWidth: DefaultBorderWidth,
		Theme:       DefaultTheme,
		Incremental: true,
	}
}

// Compositor draws grid cells, the emitter marker and the cursor outline into
// a Frame sized (n*CellWidth)^2.
type Compositor struct {
	opts  Options
	n     int
	frame *Frame

	drawn      bool
	emitter    int
	hasEmitter bool
	cursor     geom.Rect
}

func New(n int, opts Options) *Compositor {
	if opts.CellWidth < 1 {
		opts.CellWidth = 1
	}
	opts.BorderWidth = geom.Clamp(opts.BorderWidth, 1, opts.CellWidth)
	side := n * opts.CellWidth
	return &Compositor{
		opts:  opts,
		n:     n,
		frame: NewFrame(side, side),
	}
}

func (c *Compositor) Frame() *Frame { return c.frame }

func (c *Compositor) Options() Options { return c.opts }

// CellAt converts a pixel position to the grid cell under it, clamped to the
// grid.
func (c *Compositor) CellAt(px, py int) geom.Point {
	cw := c.opts.CellWidth
	return geom.Pt(
		geom.Clamp(floorDiv(px, cw), 0, c.n-1),
		geom.Clamp(floorDiv(py, cw), 0, c.n-1),
	)
}

// Compose produces one frame. dirty lists the cells whose material changed
// since the previous call; cursor is the brush area in cells (empty to hide).
func (c *Compositor) Compose(g *grid.Grid, dirty []geom.Point, emitter int, cursor geom.Rect) *Frame {
	if !c.opts.Incremental || !c.drawn {
		c.RenderGrid(g)
	} else {
		c.RenderCells(g, dirty)
		c.RenderCells(g, c.cursor.Intersect(g.Bounds()).Points())
		if c.hasEmitter {
			c.renderCell(g, c.emitter, 0)
		}
	}
	c.RenderEmitter(g, emitter)
	c.RenderCursor(cursor)
	return c.frame
}

// RenderGrid redraws every cell.
func (c *Compositor) RenderGrid(g *grid.Grid) {
	for y := 0; y < c.n; y++ {
		for x := 0; x < c.n; x++ {
			c.renderCell(g, x, y)
		}
	}
	c.drawn = true
}

// RenderCells redraws only pts.
func (c *Compositor) RenderCells(g *grid.Grid, pts []geom.Point) {
	for _, p := range pts {
		c.renderCell(g, p.X, p.Y)
	}
}

func (c *Compositor) renderCell(g *grid.Grid, x, y int) {
	if !geom.InRange(x, c.n) || !geom.InRange(y, c.n) {
		return
	}
	c.frame.Fill(c.cellRect(x, y), c.opts.Theme.Color(g.Get(x, y)))
}

// RenderEmitter shades the top-row block at col.
func (c *Compositor) RenderEmitter(g *grid.Grid, col int) {
	if c.n == 0 {
		return
	}
	col = geom.Clamp(col, 0, c.n-1)
	c.frame.Fill(c.cellRect(col, 0), c.opts.Theme.Marker(g.Get(col, 0)))
	c.emitter = col
	c.hasEmitter = true
}

// RenderCursor draws a border-only outline around area (in cells). Pixels
// outside the frame are dropped; cell contents are not touched.
func (c *Compositor) RenderCursor(area geom.Rect) {
	c.cursor = area
	if area.Empty() {
		return
	}

	cw, bw := c.opts.CellWidth, c.opts.BorderWidth
	px := geom.Rect{
		Min: geom.Pt(area.Min.X*cw, area.Min.Y*cw),
		Max: geom.Pt(area.Max.X*cw, area.Max.Y*cw),
	}
	visible := px.Intersect(c.frame.Bounds())
	color := c.opts.Theme.Outline

	for y := visible.Min.Y; y < visible.Max.Y; y++ {
		edgeRow := y < px.Min.Y+bw || y >= px.Max.Y-bw
		for x := visible.Min.X; x < visible.Max.X; x++ {
			if edgeRow || x < px.Min.X+bw || x >= px.Max.X-bw {
				c.frame.Set(x, y, color)
			}
		}
	}
}

func (c *Compositor) cellRect(x, y int) geom.Rect {
	cw := c.opts.CellWidth
	return geom.Square(x*cw, y*cw, cw)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
