// Package geom holds the integer coordinate helpers shared by the grid,
// the compositor and the input controller.
//
// Every coordinate that may leave a bounded area goes through [Clamp] or
// [Rect.Intersect]; callers never index a slice with an unchecked value.
package geom

type Point struct {
	X, Y int
}

func Pt(x, y int) Point { return Point{X: x, Y: y} }

// Rect is the half-open area [Min.X, Max.X) x [Min.Y, Max.Y).
type Rect struct {
	Min, Max Point
}

// Square returns the size x size rect whose top-left corner is (x, y).
func Square(x, y, size int) Rect {
	if size < 0 {
		size = 0
	}
	return Rect{Min: Point{x, y}, Max: Point{x + size, y + size}}
}

// Bounds returns the n x n rect anchored at the origin.
func Bounds(n int) Rect { return Square(0, 0, n) }

func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

func (r Rect) Dx() int { return r.Max.X - r.Min.X }
func (r Rect) Dy() int { return r.Max.Y - r.Min.Y }

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the overlap of r and s. The result is the zero Rect when
// they do not overlap.
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{
		Min: Point{max(r.Min.X, s.Min.X), max(r.Min.Y, s.Min.Y)},
		Max: Point{min(r.Max.X, s.Max.X), min(r.Max.Y, s.Max.Y)},
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Points lists the cells of r in row-major order.
func (r Rect) Points() []Point {
	if r.Empty() {
		return nil
	}
	pts := make([]Point, 0, r.Dx()*r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pts = append(pts, Point{x, y})
		}
	}
	return pts
}

// Clamp limits v to [lo, hi]. When hi < lo, lo wins.
func Clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// InRange reports whether 0 <= v < n.
func InRange(v, n int) bool { return v >= 0 && v < n }
