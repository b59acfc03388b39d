// Package input turns per-frame input snapshots into grid edits, brush and
// emitter changes and session commands.
package input

import (
	"github.com/san-kum/sandfall/internal/geom"
	"github.com/san-kum/sandfall/internal/grid"
	"github.com/san-kum/sandfall/internal/session"
)

// CellMapper converts a pointer position in pixels into a grid cell.
type CellMapper interface {
	CellAt(px, py int) geom.Point
}

// Result is what one controller step did.
type Result struct {
	Dirty   []geom.Point
	Command session.Command
	Issued  bool
	Quit    bool
	// Cursor is the brush area in cells at the pointer.
	Cursor geom.Rect
}

type Controller struct {
	brush  Brush
	mapper CellMapper
	cursor geom.Point
}

func NewController(b Brush, m CellMapper) *Controller {
	return &Controller{brush: b, mapper: m}
}

func (c *Controller) Brush() Brush { return c.brush }

func (c *Controller) Cursor() geom.Rect {
	return geom.Square(c.cursor.X, c.cursor.Y, c.brush.Size)
}

// commandKeys is checked in order; the first released key wins.
var commandKeys = []struct {
	key Key
	cmd session.Command
}{
	{KeyPlay, session.Play},
	{KeyPause, session.Pause},
	{KeyStop, session.Stop},
}

// Step applies one snapshot to s.
func (c *Controller) Step(in Snapshot, s *session.Session) Result {
	var res Result
	c.cursor = c.mapper.CellAt(in.Pointer.X, in.Pointer.Y)
	g := s.Grid()

	switch {
	case in.Left:
		res.Dirty = g.SetBlock(c.cursor.X, c.cursor.Y, c.brush.Size, grid.Solid)
	case in.Right:
		res.Dirty = g.SetBlock(c.cursor.X, c.cursor.Y, c.brush.Size, grid.Empty)
	}

	if in.Scroll > 0 {
		c.brush.Grow()
	} else if in.Scroll < 0 {
		c.brush.Shrink()
	}

	for _, ck := range commandKeys {
		if in.KeysReleased.Has(ck.key) {
			res.Dirty = append(res.Dirty, s.Apply(ck.cmd)...)
			res.Command, res.Issued = ck.cmd, true
			break
		}
	}

	if in.KeysDown.Has(KeyLeft) {
		s.MoveEmitter(-1)
	}
	if in.KeysDown.Has(KeyRight) {
		s.MoveEmitter(1)
	}

	res.Quit = in.KeysReleased.Has(KeyQuit)
	res.Cursor = c.Cursor()
	return res
}
