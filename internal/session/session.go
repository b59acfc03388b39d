// Package session sequences the Stopped, Paused and Playing modes and owns
// the grid, the emitter and the particle currently in flight.
package session

import (
	"github.com/san-kum/sandfall/internal/geom"
	"github.com/san-kum/sandfall/internal/grid"
	"github.com/san-kum/sandfall/internal/sim"
)

type State int

const (
	Stopped State = iota
	Paused
	Playing
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	}
	return "unknown"
}

type Command int

const (
	Play Command = iota
	Pause
	Stop
)

func (c Command) String() string {
	switch c {
	case Play:
		return "play"
	case Pause:
		return "pause"
	case Stop:
		return "stop"
	}
	return "unknown"
}

// transitions lists the target state for every (state, command) pair.
var transitions = map[State]map[Command]State{
	Stopped: {Play: Playing, Pause: Paused, Stop: Stopped},
	Paused:  {Play: Playing, Pause: Paused, Stop: Stopped},
	Playing: {Play: Playing, Pause: Paused, Stop: Stopped},
}

// Next returns the state reached from s by cmd.
func Next(s State, cmd Command) (State, bool) {
	to, ok := transitions[s][cmd]
	return to, ok
}

type Session struct {
	grid     *grid.Grid
	engine   *sim.Engine
	emitter  int
	particle sim.Particle
	state    State

	onTransition []func(from, to State)
}

func New(g *grid.Grid, eng *sim.Engine) *Session {
	return &Session{
		grid:    g,
		engine:  eng,
		emitter: Centre(g.Size()),
		state:   Stopped,
	}
}

// Centre is the default emitter column, ceil(n/2)-1.
func Centre(n int) int {
	return geom.Clamp((n+1)/2-1, 0, max(n-1, 0))
}

func (s *Session) State() State           { return s.state }
func (s *Session) Grid() *grid.Grid       { return s.grid }
func (s *Session) Engine() *sim.Engine    { return s.engine }
func (s *Session) Emitter() int           { return s.emitter }
func (s *Session) Particle() sim.Particle { return s.particle }

// OnTransition registers fn to run after every state change.
func (s *Session) OnTransition(fn func(from, to State)) {
	s.onTransition = append(s.onTransition, fn)
}

func (s *Session) SetEmitter(col int) {
	s.emitter = geom.Clamp(col, 0, max(s.grid.Size()-1, 0))
}

func (s *Session) MoveEmitter(delta int) { s.SetEmitter(s.emitter + delta) }

// Apply runs cmd through the transition table and returns the cells changed
// on the way. Entering Stopped clears all particulate and the particle in
// flight.
func (s *Session) Apply(cmd Command) []geom.Point {
	to, ok := Next(s.state, cmd)
	if !ok {
		return nil
	}

	var touched []geom.Point
	if to == Stopped {
		s.particle = sim.Particle{}
		touched = s.grid.ClearMaterial(grid.Particulate)
	}

	from := s.state
	s.state = to
	if from != to {
		for _, fn := range s.onTransition {
			fn(from, to)
		}
	}
	return touched
}

func (s *Session) Play() []geom.Point  { return s.Apply(Play) }
func (s *Session) Pause() []geom.Point { return s.Apply(Pause) }
func (s *Session) Stop() []geom.Point  { return s.Apply(Stop) }

// Tick advances the engine by one step while Playing and is a no-op
// otherwise.
func (s *Session) Tick() []geom.Point {
	if s.state != Playing {
		return nil
	}
	var touched []geom.Point
	s.particle, touched = s.engine.Step(s.grid, s.emitter, s.particle)
	return touched
}
