package metrics

import (
	"github.com/san-kum/sandfall/internal/sim"
)

// Metric is a named value accumulated from engine events.
type Metric interface {
	sim.Observer
	Name() string
	Value() float64
	Reset()
}

// Counter counts engine events of one kind.
type Counter struct {
	name  string
	kind  sim.EventKind
	count int
}

func NewCounter(kind sim.EventKind) *Counter {
	return &Counter{name: kind.String(), kind: kind}
}

func (c *Counter) Name() string { return c.name }

func (c *Counter) OnStep(e sim.Event) {
	if e.Kind == c.kind {
		c.count++
	}
}

func (c *Counter) Value() float64 { return float64(c.count) }

func (c *Counter) Count() int { return c.count }

func (c *Counter) Reset() { c.count = 0 }

// FallLength tracks the average number of rows a particle travels between
// spawning and landing.
type FallLength struct {
	spawnRow int
	inFlight bool
	total    int
	samples  int
}

func NewFallLength() *FallLength { return &FallLength{} }

func (f *FallLength) Name() string { return "fall_length" }

func (f *FallLength) OnStep(e sim.Event) {
	switch e.Kind {
	case sim.Spawned:
		f.spawnRow = e.To.Y
		f.inFlight = true
	case sim.Landed:
		if f.inFlight {
			f.total += e.To.Y - f.spawnRow
			f.samples++
		}
		f.inFlight = false
	case sim.Abandoned:
		f.inFlight = false
	}
}

func (f *FallLength) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.total) / float64(f.samples)
}

func (f *FallLength) Reset() {
	f.spawnRow = 0
	f.inFlight = false
	f.total = 0
	f.samples = 0
}

// Set bundles the default metrics reported by the CLI and the terminal HUD.
type Set struct {
	Spawned   *Counter
	Landed    *Counter
	Deferred  *Counter
	Abandoned *Counter
	Fall      *FallLength
}

func NewSet() *Set {
	return &Set{
		Spawned:   NewCounter(sim.Spawned),
		Landed:    NewCounter(sim.Landed),
		Deferred:  NewCounter(sim.Deferred),
		Abandoned: NewCounter(sim.Abandoned),
		Fall:      NewFallLength(),
	}
}

func (s *Set) All() []Metric {
	return []Metric{s.Spawned, s.Landed, s.Deferred, s.Abandoned, s.Fall}
}

// Attach registers every metric in the set with eng.
func (s *Set) Attach(eng *sim.Engine) {
	for _, m := range s.All() {
		eng.AddObserver(m)
	}
}

func (s *Set) Reset() {
	for _, m := range s.All() {
		m.Reset()
	}
}

func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64)
	for _, m := range s.All() {
		out[m.Name()] = m.Value()
	}
	return out
}
