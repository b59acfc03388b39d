package sim

import (
	"github.com/san-kum/sandfall/internal/geom"
	"github.com/san-kum/sandfall/internal/grid"
)

// Engine applies the gravity rule to one falling particle per step.
type Engine struct {
	observers []Observer
	steps     int
}

func New() *Engine {
	return &Engine{observers: make([]Observer, 0)}
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Steps is the number of Step calls made so far.
func (e *Engine) Steps() int { return e.steps }

// Step advances p by one move and returns its new state together with the
// cells that changed. A particle that is not in flight is spawned at
// (emitter, 0) instead; the spawn is deferred while that cell is occupied.
func (e *Engine) Step(g *grid.Grid, emitter int, p Particle) (Particle, []geom.Point) {
	e.steps++
	n := g.Size()
	if n == 0 {
		return Particle{}, nil
	}

	if !p.InFlight {
		return e.spawn(g, geom.Clamp(emitter, 0, n-1))
	}

	x, y := p.Pos.X, p.Pos.Y
	if g.Get(x, y) != grid.Particulate {
		// painted or erased over mid-flight
		e.notify(Abandoned, p.Pos, p.Pos)
		return Particle{}, nil
	}

	below := y + 1
	for _, nx := range candidates(x, n) {
		if !geom.InRange(below, n) || g.Get(nx, below) != grid.Empty {
			continue
		}
		to := geom.Pt(nx, below)
		touched := g.SetBlock(x, y, 1, grid.Empty)
		touched = append(touched, g.SetBlock(nx, below, 1, grid.Particulate)...)

		if below >= n-1 {
			e.notify(Landed, p.Pos, to)
			return Particle{}, touched
		}
		e.notify(Moved, p.Pos, to)
		return Particle{Pos: to, InFlight: true}, touched
	}

	e.notify(Landed, p.Pos, p.Pos)
	return Particle{}, nil
}

func (e *Engine) spawn(g *grid.Grid, col int) (Particle, []geom.Point) {
	at := geom.Pt(col, 0)
	if g.At(at) != grid.Empty {
		e.notify(Deferred, at, at)
		return Particle{}, nil
	}

	touched := g.SetBlock(col, 0, 1, grid.Particulate)
	e.notify(Spawned, at, at)

	if g.Size() == 1 {
		e.notify(Landed, at, at)
		return Particle{}, touched
	}
	return Particle{Pos: at, InFlight: true}, touched
}

// candidates lists destination columns in priority order: straight down,
// down-left, down-right. Edge columns collapse onto straight down.
func candidates(x, n int) [3]int {
	return [3]int{
		x,
		geom.Clamp(x-1, 0, n-1),
		geom.Clamp(x+1, 0, n-1),
	}
}

func (e *Engine) notify(kind EventKind, from, to geom.Point) {
	ev := Event{Kind: kind, Step: e.steps, From: from, To: to}
	for _, o := range e.observers {
		o.OnStep(ev)
	}
}
