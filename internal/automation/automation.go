// Package automation replays scripted input against a headless surface.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/sandfall/internal/app"
	"github.com/san-kum/sandfall/internal/config"
	"github.com/san-kum/sandfall/internal/geom"
	"github.com/san-kum/sandfall/internal/grid"
	"github.com/san-kum/sandfall/internal/input"
	"github.com/san-kum/sandfall/internal/metrics"
	"github.com/san-kum/sandfall/internal/render"
	"github.com/san-kum/sandfall/internal/session"
	"github.com/san-kum/sandfall/internal/surface"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownKey    = errors.New("automation: unknown key")
	ErrInvalidRepeat = errors.New("automation: repeat must not be negative")
	ErrEmptyScenario = errors.New("automation: scenario has no steps")
)

// ScenarioError reports which step of a scenario was rejected.
type ScenarioError struct {
	Step    int
	Wrapped error
}

func (e *ScenarioError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *ScenarioError) Unwrap() error {
	return e.Wrapped
}

// Scenario is a scripted session. The optional fields override the startup
// configuration the scenario is run with.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	GridSize    int            `yaml:"grid_size,omitempty"`
	Layout      string         `yaml:"layout,omitempty"`
	Seed        int64          `yaml:"seed,omitempty"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is one input snapshot held for Repeat frames. Cell positions
// the pointer in grid coordinates and sticks until the next step that sets
// it. Press lists keys released this frame, Hold keys held down.
type ScenarioStep struct {
	Repeat int      `yaml:"repeat"`
	Cell   *[2]int  `yaml:"cell,omitempty"`
	Paint  bool     `yaml:"paint,omitempty"`
	Erase  bool     `yaml:"erase,omitempty"`
	Scroll float64  `yaml:"scroll,omitempty"`
	Press  []string `yaml:"press,omitempty"`
	Hold   []string `yaml:"hold,omitempty"`
}

type Result struct {
	Scenario string
	Frames   int
	Steps    int
	State    session.State
	Metrics  map[string]float64
	Profile  metrics.Profile
	Grid     *grid.Grid
	Last     *render.Frame
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	return &scenario, nil
}

// Configure applies the scenario's overrides to cfg.
func (s *Scenario) Configure(cfg *config.Config) {
	if s.GridSize > 0 {
		cfg.GridSize = s.GridSize
	}
	if s.Layout != "" {
		cfg.Layout = s.Layout
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
}

// Snapshots expands the steps into one snapshot per frame. A step with a zero
// Repeat counts once.
func (s *Scenario) Snapshots(cellWidth int) ([]input.Snapshot, error) {
	if len(s.Steps) == 0 {
		return nil, ErrEmptyScenario
	}

	var out []input.Snapshot
	var pointer geom.Point
	for i, step := range s.Steps {
		if step.Repeat < 0 {
			return nil, &ScenarioError{Step: i + 1, Wrapped: ErrInvalidRepeat}
		}
		released, err := parseKeys(step.Press)
		if err != nil {
			return nil, &ScenarioError{Step: i + 1, Wrapped: err}
		}
		down, err := parseKeys(step.Hold)
		if err != nil {
			return nil, &ScenarioError{Step: i + 1, Wrapped: err}
		}
		if step.Cell != nil {
			pointer = geom.Pt(step.Cell[0]*cellWidth+cellWidth/2, step.Cell[1]*cellWidth+cellWidth/2)
		}

		snap := input.Snapshot{
			Pointer:      pointer,
			Left:         step.Paint,
			Right:        step.Erase,
			Scroll:       step.Scroll,
			KeysDown:     down,
			KeysReleased: released,
		}
		for n := max(step.Repeat, 1); n > 0; n-- {
			out = append(out, snap)
		}
	}
	return out, nil
}

func parseKeys(names []string) (input.KeySet, error) {
	var set input.KeySet
	for _, name := range names {
		k, ok := input.ParseKey(name)
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
		}
		set = set.With(k)
	}
	return set, nil
}

// RunScenario replays s headlessly with cfg (after the scenario's own
// overrides). rec may be nil.
func RunScenario(ctx context.Context, s *Scenario, cfg *config.Config, rec *render.Recorder) (*Result, error) {
	c := *cfg
	s.Configure(&c)

	script, err := s.Snapshots(c.CellWidth)
	if err != nil {
		return nil, err
	}
	loop, err := app.FromConfig(&c)
	if err != nil {
		return nil, err
	}
	loop.Recorder = rec

	h := surface.NewHeadless(script, false)
	if err := loop.Run(&cancellable{Surface: h, ctx: ctx}); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g := loop.Session.Grid()
	return &Result{
		Scenario: s.Name,
		Frames:   loop.Frames(),
		Steps:    loop.Session.Engine().Steps(),
		State:    loop.Session.State(),
		Metrics:  loop.Metrics.Values(),
		Profile:  metrics.PileProfile(g),
		Grid:     g,
		Last:     h.Last(),
	}, nil
}

// cancellable closes the wrapped surface once ctx is done.
type cancellable struct {
	surface.Surface
	ctx context.Context
}

func (c *cancellable) IsOpen() bool {
	return c.ctx.Err() == nil && c.Surface.IsOpen()
}
