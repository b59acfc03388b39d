package metrics

import (
	"github.com/san-kum/sandfall/internal/grid"
)

// Profile summarises the shape of the settled sand.
type Profile struct {
	Heights []float64
	Peak    int
	PeakCol int
	Cells   int
}

func PileProfile(g *grid.Grid) Profile {
	cols := g.ColumnHeights(grid.Particulate)
	p := Profile{
		Heights: make([]float64, len(cols)),
		PeakCol: -1,
		Cells:   g.Count(grid.Particulate),
	}
	for x, h := range cols {
		p.Heights[x] = float64(h)
		if h > p.Peak {
			p.Peak = h
			p.PeakCol = x
		}
	}
	return p
}

// Spread is the number of columns holding any particulate.
func (p Profile) Spread() int {
	n := 0
	for _, h := range p.Heights {
		if h > 0 {
			n++
		}
	}
	return n
}
