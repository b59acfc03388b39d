package app

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/sandfall/internal/config"
	"github.com/san-kum/sandfall/internal/geom"
	"github.com/san-kum/sandfall/internal/grid"
	"github.com/san-kum/sandfall/internal/input"
	"github.com/san-kum/sandfall/internal/render"
	"github.com/san-kum/sandfall/internal/session"
	"github.com/san-kum/sandfall/internal/sim"
	"github.com/san-kum/sandfall/internal/surface"
)

func newLoop(t *testing.T) *Loop {
	t.Helper()
	l, err := FromConfig(config.DefaultConfig())
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	return l
}

func repeat(in input.Snapshot, n int) []input.Snapshot {
	out := make([]input.Snapshot, n)
	for i := range out {
		out[i] = in
	}
	return out
}

func TestLoop_PlayLandsParticle(t *testing.T) {
	l := newLoop(t)
	script := append([]input.Snapshot{{KeysReleased: input.Keys(input.KeyPlay)}}, repeat(input.Snapshot{}, 38)...)
	h := surface.NewHeadless(script, false)

	if err := l.Run(h); err != nil {
		t.Fatalf("run: %v", err)
	}
	if l.Session.State() != session.Playing {
		t.Errorf("expected playing, got %v", l.Session.State())
	}
	if l.Session.Grid().Get(19, 38) != grid.Particulate {
		t.Error("expected particle landed at (19,38) after 39 frames")
	}
	if l.Metrics.Landed.Count() != 1 {
		t.Errorf("expected one landing, got %d", l.Metrics.Landed.Count())
	}
	if h.Presents() != 39 || l.Frames() != 39 {
		t.Errorf("expected 39 frames, got %d", h.Presents())
	}
}

func TestLoop_CursorHiddenWhileRunning(t *testing.T) {
	l := newLoop(t)
	h := surface.NewHeadless(repeat(input.Snapshot{}, 2), false)
	h.SetCursorVisible(true)

	var hidden bool
	if err := l.Run(&spy{Headless: h, onPoll: func() { hidden = !h.CursorVisible }}); err != nil {
		t.Fatal(err)
	}
	if !hidden {
		t.Error("cursor should be hidden during the loop")
	}
	if !h.CursorVisible {
		t.Error("cursor should be restored after the loop")
	}
	if h.Interval != config.DefaultFrameInterval {
		t.Errorf("expected frame limit %s, got %s", config.DefaultFrameInterval, h.Interval)
	}
}

type spy struct {
	*surface.Headless
	onPoll func()
}

func (s *spy) PollInput() input.Snapshot {
	s.onPoll()
	return s.Headless.PollInput()
}

func TestLoop_QuitStopsEarly(t *testing.T) {
	l := newLoop(t)
	script := []input.Snapshot{{}, {KeysReleased: input.Keys(input.KeyQuit)}, {}, {}}
	h := surface.NewHeadless(script, false)

	if err := l.Run(h); err != nil {
		t.Fatal(err)
	}
	if h.Presents() != 2 {
		t.Errorf("expected 2 frames before quit, got %d", h.Presents())
	}
}

type failing struct{ *surface.Headless }

func (failing) Present(*render.Frame) error { return surface.ErrPresent }

func TestLoop_PresentError(t *testing.T) {
	l := newLoop(t)
	err := l.Run(failing{surface.NewHeadless(repeat(input.Snapshot{}, 3), false)})
	if !errors.Is(err, surface.ErrPresent) {
		t.Errorf("expected ErrPresent, got %v", err)
	}
}

func TestLoop_PaintShowsInFrame(t *testing.T) {
	l := newLoop(t)
	f, _ := l.Frame(input.Snapshot{Pointer: geom.Pt(100, 300), Left: true})

	theme := render.DefaultTheme
	// cell (6,18) is inside the brush but away from its outline
	if got := f.At(6*16+8, 20*16+8); got != theme.Solid {
		t.Errorf("expected solid color, got %06x", got)
	}
	if l.Last().Cursor != geom.Square(6, 18, 8) {
		t.Errorf("unexpected cursor %+v", l.Last().Cursor)
	}
}

func TestLoop_StopClearsFrame(t *testing.T) {
	l := newLoop(t)
	l.Frame(input.Snapshot{KeysReleased: input.Keys(input.KeyPlay)})
	for i := 0; i < 45; i++ {
		l.Frame(input.Snapshot{})
	}
	f, _ := l.Frame(input.Snapshot{KeysReleased: input.Keys(input.KeyStop)})

	if l.Session.Grid().Count(grid.Particulate) != 0 {
		t.Error("stop should clear particulate")
	}
	if got := f.At(19*16+8, 38*16+8); got != render.DefaultTheme.Empty {
		t.Errorf("cleared cell still drawn as %06x", got)
	}
}

func TestLoop_Recorder(t *testing.T) {
	l := newLoop(t)
	l.Recorder = render.NewRecorder(render.DefaultTheme, 2, 2)
	for i := 0; i < 5; i++ {
		l.Frame(input.Snapshot{})
	}
	if l.Recorder.Len() != 3 {
		t.Errorf("expected 3 recorded frames, got %d", l.Recorder.Len())
	}
}

func TestLoop_LogTransitions(t *testing.T) {
	var buf bytes.Buffer
	l := New(session.New(grid.New(5), sim.New()), input.DefaultBrush(), render.New(5, render.DefaultOptions()))
	l.LogTransitions(log.New(&buf, "", 0))

	l.Frame(input.Snapshot{KeysReleased: input.Keys(input.KeyPlay)})
	l.Frame(input.Snapshot{KeysReleased: input.Keys(input.KeyPause)})

	out := buf.String()
	if !strings.Contains(out, "stopped -> playing") || !strings.Contains(out, "playing -> paused") {
		t.Errorf("unexpected log output %q", out)
	}
}

func TestFromConfig_Invalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.GridSize = 0
	if _, err := FromConfig(cfg); !errors.Is(err, config.ErrInvalidGridSize) {
		t.Errorf("expected ErrInvalidGridSize, got %v", err)
	}
}

func TestFromConfig_Layout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Layout = "shelves"
	cfg.FrameInterval = time.Millisecond

	l, err := FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if l.Session.Grid().Count(grid.Solid) == 0 {
		t.Error("expected shelves in the grid")
	}
	if l.Interval != time.Millisecond {
		t.Errorf("expected interval from config, got %s", l.Interval)
	}
}
