package grid

import (
	"github.com/san-kum/sandfall/internal/geom"
)

type Material uint8

const (
	Empty Material = iota
	Solid
	Particulate
)

func (m Material) String() string {
	switch m {
	case Empty:
		return "empty"
	case Solid:
		return "solid"
	case Particulate:
		return "particulate"
	}
	return "unknown"
}

// Grid is a dense n x n matrix of materials indexed by y*n+x.
type Grid struct {
	n     int
	cells []Material
}

func New(n int) *Grid {
	if n < 0 {
		n = 0
	}
	return &Grid{n: n, cells: make([]Material, n*n)}
}

func (g *Grid) Size() int { return g.n }

func (g *Grid) Bounds() geom.Rect { return geom.Bounds(g.n) }

// Get returns Empty for any coordinate outside the grid.
func (g *Grid) Get(x, y int) Material {
	if !geom.InRange(x, g.n) || !geom.InRange(y, g.n) {
		return Empty
	}
	return g.cells[y*g.n+x]
}

func (g *Grid) At(p geom.Point) Material { return g.Get(p.X, p.Y) }

// SetBlock writes m into the size x size square at (x, y), clipped to the
// grid, and returns the cells it wrote.
func (g *Grid) SetBlock(x, y, size int, m Material) []geom.Point {
	area := geom.Square(x, y, size).Intersect(g.Bounds())
	pts := area.Points()
	for _, p := range pts {
		g.cells[p.Y*g.n+p.X] = m
	}
	return pts
}

// ClearMaterial turns every target cell into Empty and returns the cells it
// changed.
func (g *Grid) ClearMaterial(target Material) []geom.Point {
	if target == Empty {
		return nil
	}
	var pts []geom.Point
	for i, c := range g.cells {
		if c == target {
			g.cells[i] = Empty
			pts = append(pts, geom.Pt(i%g.n, i/g.n))
		}
	}
	return pts
}

func (g *Grid) Count(m Material) int {
	count := 0
	for _, c := range g.cells {
		if c == m {
			count++
		}
	}
	return count
}

// ColumnHeights returns, per column, the distance from the floor to the
// topmost cell holding m (0 when the column has none).
func (g *Grid) ColumnHeights(m Material) []int {
	heights := make([]int, g.n)
	for x := 0; x < g.n; x++ {
		for y := 0; y < g.n; y++ {
			if g.cells[y*g.n+x] == m {
				heights[x] = g.n - y
				break
			}
		}
	}
	return heights
}
