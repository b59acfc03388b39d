package sim

import "github.com/san-kum/sandfall/internal/geom"

// Particle is the single unit of particulate currently under gravity.
// The zero value is "nothing in flight".
type Particle struct {
	Pos      geom.Point
	InFlight bool
}

func At(x, y int) Particle { return Particle{Pos: geom.Pt(x, y), InFlight: true} }

type EventKind int

const (
	Spawned EventKind = iota
	Deferred
	Moved
	Landed
	Abandoned
)

func (k EventKind) String() string {
	switch k {
	case Spawned:
		return "spawned"
	case Deferred:
		return "deferred"
	case Moved:
		return "moved"
	case Landed:
		return "landed"
	case Abandoned:
		return "abandoned"
	}
	return "unknown"
}

// Event describes what a single engine step did. From and To are equal for
// spawns, deferrals and in-place landings.
type Event struct {
	Kind EventKind
	Step int
	From geom.Point
	To   geom.Point
}

type Observer interface {
	OnStep(e Event)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(e Event)

func (f ObserverFunc) OnStep(e Event) { f(e) }
