// Package terrain seeds a fresh grid with solid obstacles before a session
// starts.
package terrain

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aquilax/go-perlin"
	"github.com/san-kum/sandfall/internal/geom"
	"github.com/san-kum/sandfall/internal/grid"
)

var ErrUnknownLayout = errors.New("terrain: unknown layout")

// Layout writes solid cells into g. seed is only used by noise based layouts.
type Layout func(g *grid.Grid, seed int64)

const (
	perlinAlpha = 2.0
	perlinBeta  = 2.0
	perlinN     = 3
)

var Layouts = map[string]Layout{
	"flat":    Flat,
	"funnel":  Funnel,
	"shelves": Shelves,
	"terrain": Hills,
}

func Names() []string {
	names := make([]string, 0, len(Layouts))
	for name := range Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Get(name string) (Layout, bool) {
	l, ok := Layouts[name]
	return l, ok
}

// Apply runs the named layout on g. An empty name means flat.
func Apply(name string, g *grid.Grid, seed int64) error {
	if name == "" {
		name = "flat"
	}
	l, ok := Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	l(g, seed)
	return nil
}

func Flat(*grid.Grid, int64) {}

// Funnel draws two diagonal walls converging under the centre column and
// leaves a three cell gap at the bottom.
func Funnel(g *grid.Grid, _ int64) {
	n := g.Size()
	c := centre(n)
	top := n / 4
	for k := 0; k <= c-2; k++ {
		y := top + k
		if y >= n {
			break
		}
		g.SetBlock(k, y, 1, grid.Solid)
		g.SetBlock(2*c-k, y, 1, grid.Solid)
	}
}

// Shelves places ledges at each quarter of the height, alternating between
// one under the centre column and one beside it.
func Shelves(g *grid.Grid, _ int64) {
	n := g.Size()
	c := centre(n)
	length := max(n/3, 1)
	for i := 1; i <= 3; i++ {
		y := n * i / 4
		if y >= n {
			continue
		}
		x := c + 2
		if i%2 == 1 {
			x = max(c-length+1, 0)
		}
		for dx := 0; dx < length; dx++ {
			g.SetBlock(x+dx, y, 1, grid.Solid)
		}
	}
}

// Hills raises a rolling floor from 1D Perlin noise, at most a quarter of the
// grid tall.
func Hills(g *grid.Grid, seed int64) {
	n := g.Size()
	if n == 0 {
		return
	}
	p := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinN, seed)
	peak := n / 4
	for x := 0; x < n; x++ {
		v := p.Noise1D(float64(x) / float64(n) * 4)
		h := geom.Clamp(int(math.Round((v+1)/2*float64(peak))), 0, peak)
		for y := n - h; y < n; y++ {
			g.SetBlock(x, y, 1, grid.Solid)
		}
	}
}

func centre(n int) int {
	return geom.Clamp((n+1)/2-1, 0, max(n-1, 0))
}
