// Package app drives one frame at a time: input, simulation step, composition
// and presentation, all on the calling goroutine.
package app

import (
	"fmt"
	"log"
	"time"

	"github.com/san-kum/sandfall/internal/config"
	"github.com/san-kum/sandfall/internal/grid"
	"github.com/san-kum/sandfall/internal/input"
	"github.com/san-kum/sandfall/internal/metrics"
	"github.com/san-kum/sandfall/internal/render"
	"github.com/san-kum/sandfall/internal/session"
	"github.com/san-kum/sandfall/internal/sim"
	"github.com/san-kum/sandfall/internal/surface"
	"github.com/san-kum/sandfall/internal/terrain"
)

type Loop struct {
	Session    *session.Session
	Controller *input.Controller
	Compositor *render.Compositor
	Metrics    *metrics.Set

	// Recorder, when set, receives every composed frame.
	Recorder *render.Recorder
	// Interval is handed to the surface as its frame-rate limit.
	Interval time.Duration

	frames int
	last   input.Result
}

// New wires a loop around s. The compositor doubles as the controller's
// pixel to cell mapper.
func New(s *session.Session, brush input.Brush, comp *render.Compositor) *Loop {
	m := metrics.NewSet()
	m.Attach(s.Engine())
	return &Loop{
		Session:    s,
		Controller: input.NewController(brush, comp),
		Compositor: comp,
		Metrics:    m,
		Interval:   surface.DefaultFrameInterval,
	}
}

// FromConfig builds the grid, applies the obstacle layout and returns a loop
// ready to run.
func FromConfig(cfg *config.Config) (*Loop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := cfg.RenderOptions()
	if err != nil {
		return nil, err
	}

	g := grid.New(cfg.GridSize)
	if err := terrain.Apply(cfg.LayoutName(), g, cfg.Seed); err != nil {
		return nil, err
	}

	l := New(session.New(g, sim.New()), cfg.NewBrush(), render.New(cfg.GridSize, opts))
	l.Interval = cfg.FrameInterval
	return l, nil
}

// LogTransitions reports every state change to logger.
func (l *Loop) LogTransitions(logger *log.Logger) {
	l.Session.OnTransition(func(from, to session.State) {
		logger.Printf("session %s -> %s (step %d)", from, to, l.Session.Engine().Steps())
	})
}

// Frame runs one frame for the given input and returns the composed buffer
// and whether quit was requested.
func (l *Loop) Frame(in input.Snapshot) (*render.Frame, bool) {
	res := l.Controller.Step(in, l.Session)
	dirty := append(res.Dirty, l.Session.Tick()...)

	f := l.Compositor.Compose(l.Session.Grid(), dirty, l.Session.Emitter(), res.Cursor)
	if l.Recorder != nil {
		l.Recorder.Capture(f)
	}
	l.frames++
	l.last = res
	return f, res.Quit
}

// Frames is the number of frames produced so far.
func (l *Loop) Frames() int { return l.frames }

// Last is the controller result of the most recent frame.
func (l *Loop) Last() input.Result { return l.last }

// Run polls s until it closes or quit is requested.
func (l *Loop) Run(s surface.Surface) error {
	s.SetCursorVisible(false)
	defer s.SetCursorVisible(true)
	s.LimitFrameRate(l.Interval)

	for s.IsOpen() {
		f, quit := l.Frame(s.PollInput())
		if err := s.Present(f); err != nil {
			return fmt.Errorf("frame %d: %w", l.frames, err)
		}
		if quit {
			return nil
		}
	}
	return nil
}
