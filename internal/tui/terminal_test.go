package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sandfall/internal/app"
	"github.com/san-kum/sandfall/internal/grid"
	"github.com/san-kum/sandfall/internal/input"
	"github.com/san-kum/sandfall/internal/render"
	"github.com/san-kum/sandfall/internal/session"
	"github.com/san-kum/sandfall/internal/sim"
)

func newTerminal(n int) (*app.Loop, tea.Model) {
	opts := render.DefaultOptions()
	opts.CellWidth, opts.BorderWidth = 1, 1
	loop := app.New(session.New(grid.New(n), sim.New()), input.NewBrush(2, 1, 1), render.New(n, opts))
	return loop, NewModel(loop)
}

func send(m tea.Model, msgs ...tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var frame = tickMsg(time.Unix(0, 0))

func TestTerminal_View(t *testing.T) {
	_, m := newTerminal(5)
	if m.View() != "" {
		t.Error("expected empty view before the first frame")
	}

	m, _ = send(m, frame)
	view := m.View()
	if strings.Count(view, halfBlock) != 5*3 {
		t.Errorf("expected %d half blocks, got %d", 15, strings.Count(view, halfBlock))
	}
	if !strings.Contains(view, "stopped") || !strings.Contains(view, "emitter") {
		t.Error("hud missing from view")
	}
}

func TestTerminal_Keys(t *testing.T) {
	loop, m := newTerminal(9)

	m, _ = send(m, runes("s"), frame)
	if loop.Session.State() != session.Playing {
		t.Fatalf("expected playing, got %v", loop.Session.State())
	}
	if loop.Session.Grid().Get(4, 0) != grid.Particulate {
		t.Error("expected a spawn at the emitter")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyLeft}, frame)
	if loop.Session.Emitter() != 3 {
		t.Errorf("expected emitter 3, got %d", loop.Session.Emitter())
	}

	send(m, runes("m"), frame)
	if loop.Session.State() != session.Stopped || loop.Session.Grid().Count(grid.Particulate) != 0 {
		t.Error("stop should clear the grid")
	}
}

func TestTerminal_Mouse(t *testing.T) {
	loop, m := newTerminal(10)

	m, _ = send(m,
		tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionRelease},
		frame)
	if loop.Session.Grid().Get(3, 4) != grid.Solid || loop.Session.Grid().Get(4, 5) != grid.Solid {
		t.Error("a click between frames should still paint")
	}

	send(m, tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, frame)
	if loop.Session.Grid().Count(grid.Solid) != 0 {
		t.Error("right button should erase")
	}
}

func TestTerminal_Wheel(t *testing.T) {
	loop, m := newTerminal(10)
	wheel := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}

	m, _ = send(m, wheel, frame)
	if loop.Controller.Brush().Size != 3 {
		t.Errorf("expected brush 3, got %d", loop.Controller.Brush().Size)
	}

	down := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	send(m, down, frame, down, frame, down, frame)
	if loop.Controller.Brush().Size != 1 {
		t.Errorf("expected brush floored at 1, got %d", loop.Controller.Brush().Size)
	}
}

func TestTerminal_Quit(t *testing.T) {
	_, m := newTerminal(4)

	_, cmd := send(m, runes("q"))
	if cmd != nil {
		t.Error("quit should wait for the next frame")
	}
	_, cmd = send(m, runes("q"), frame)
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.Quit")
	}
}

func TestSparkline(t *testing.T) {
	if got := sparkline([]float64{0, 4, 8}, 3); got != " ▄█" {
		t.Errorf("unexpected sparkline %q", got)
	}
	if sparkline(nil, 5) != "" {
		t.Error("expected empty sparkline")
	}
}
