// Package tui runs the sandbox inside a terminal. Each character cell shows
// two grid rows with an upper half block, so the compositor should be built
// with a cell width of 1.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/sandfall/internal/app"
	"github.com/san-kum/sandfall/internal/geom"
	"github.com/san-kum/sandfall/internal/input"
	"github.com/san-kum/sandfall/internal/metrics"
	"github.com/san-kum/sandfall/internal/render"
	"github.com/san-kum/sandfall/internal/session"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const halfBlock = "▀"

var keyBindings = map[string]input.Key{
	"s":      input.KeyPlay,
	"p":      input.KeyPause,
	"m":      input.KeyStop,
	"left":   input.KeyLeft,
	"right":  input.KeyRight,
	"q":      input.KeyQuit,
	"esc":    input.KeyQuit,
	"ctrl+c": input.KeyQuit,
}

type tickMsg time.Time

func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

type model struct {
	loop     *app.Loop
	n        int
	cw       int
	interval time.Duration

	// input gathered between ticks
	pointer  geom.Point
	held     [3]bool
	clicked  [3]bool
	scroll   float64
	down     input.KeySet
	released input.KeySet

	frame     *render.Frame
	styles    map[[2]uint32]lipgloss.Style
	lastFrame time.Time
	fps       float64

	width  int
	height int
}

const (
	buttonLeft = iota
	buttonRight
	buttonMiddle
)

func NewModel(loop *app.Loop) *model {
	interval := loop.Interval
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &model{
		loop:     loop,
		n:        loop.Session.Grid().Size(),
		cw:       loop.Compositor.Options().CellWidth,
		interval: interval,
		styles:   make(map[[2]uint32]lipgloss.Style),
		width:    80,
		height:   24,
	}
}

func (m model) Init() tea.Cmd { return tick(m.interval) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if k, ok := keyBindings[msg.String()]; ok {
			m.released = m.released.With(k)
			if k == input.KeyLeft || k == input.KeyRight {
				m.down = m.down.With(k)
			}
		}
		return m, nil
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		now := time.Time(msg)
		if !m.lastFrame.IsZero() {
			if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
				m.fps = 1.0 / dt
			}
		}
		m.lastFrame = now

		f, quit := m.loop.Frame(m.snapshot())
		m.frame = f
		m.clicked = [3]bool{}
		m.scroll = 0
		m.down, m.released = 0, 0
		if quit {
			return m, tea.Quit
		}
		return m, tick(m.interval)
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) model {
	m.pointer = geom.Pt(msg.X, msg.Y*2)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.held[buttonLeft], m.clicked[buttonLeft] = true, true
		case tea.MouseButtonRight:
			m.held[buttonRight], m.clicked[buttonRight] = true, true
		case tea.MouseButtonMiddle:
			m.held[buttonMiddle], m.clicked[buttonMiddle] = true, true
		case tea.MouseButtonWheelUp:
			m.scroll++
		case tea.MouseButtonWheelDown:
			m.scroll--
		}
	case tea.MouseActionRelease:
		// many terminals do not say which button was released
		m.held = [3]bool{}
	}
	return m
}

// snapshot converts the gathered terminal input into pixel space.
func (m model) snapshot() input.Snapshot {
	return input.Snapshot{
		Pointer:      geom.Pt(m.pointer.X*m.cw+m.cw/2, m.pointer.Y*m.cw+m.cw/2),
		Left:         m.held[buttonLeft] || m.clicked[buttonLeft],
		Right:        m.held[buttonRight] || m.clicked[buttonRight],
		Middle:       m.held[buttonMiddle] || m.clicked[buttonMiddle],
		Scroll:       m.scroll,
		KeysDown:     m.down,
		KeysReleased: m.released,
	}
}

func (m model) View() string {
	if m.frame == nil {
		return ""
	}

	var b strings.Builder
	empty := m.loop.Compositor.Options().Theme.Empty
	for row := 0; row*2 < m.n; row++ {
		for x := 0; x < m.n; x++ {
			top, bottom := m.cell(x, row*2), empty
			if row*2+1 < m.n {
				bottom = m.cell(x, row*2+1)
			}
			b.WriteString(m.style(top, bottom).Render(halfBlock))
		}
		b.WriteByte('\n')
	}
	b.WriteString(m.hud())
	return b.String()
}

func (m model) cell(x, y int) uint32 {
	return m.frame.At(x*m.cw+m.cw/2, y*m.cw+m.cw/2)
}

func (m model) style(fg, bg uint32) lipgloss.Style {
	key := [2]uint32{fg, bg}
	if s, ok := m.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(render.FormatColor(fg))).
		Background(lipgloss.Color(render.FormatColor(bg)))
	m.styles[key] = s
	return s
}

func (m model) hud() string {
	s := m.loop.Session
	set := m.loop.Metrics

	var icon, label string
	switch s.State() {
	case session.Playing:
		icon, label = green.Render("●"), green.Render("playing")
	case session.Paused:
		icon, label = yellow.Render("○"), yellow.Render("paused")
	default:
		icon, label = dim.Render("■"), dim.Render("stopped")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n %s %s  %s %s  %s %s  %s %s  %s\n",
		icon, label,
		dim.Render("brush"), white.Render(fmt.Sprint(m.loop.Controller.Brush().Size)),
		dim.Render("emitter"), white.Render(fmt.Sprint(s.Emitter())),
		dim.Render("step"), white.Render(fmt.Sprint(s.Engine().Steps())),
		dim.Render(fmt.Sprintf("%.0ffps", m.fps)))
	fmt.Fprintf(&b, " %s %d  %s %d  %s %d  %s %d  %s %.1f\n",
		dim.Render("spawned"), set.Spawned.Count(),
		dim.Render("landed"), set.Landed.Count(),
		dim.Render("deferred"), set.Deferred.Count(),
		dim.Render("abandoned"), set.Abandoned.Count(),
		dim.Render("fall"), set.Fall.Value())

	profile := metrics.PileProfile(s.Grid())
	if profile.Cells > 0 {
		fmt.Fprintf(&b, " %s %s\n", dim.Render("pile"), cyan.Render(sparkline(profile.Heights, min(m.n, 40))))
	}

	b.WriteString("\n" + dim.Render(" s play  p pause  m stop  ←/→ emitter  wheel brush  q quit") + "\n")
	return b.String()
}

func sparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	chars := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	maxVal := 0.0
	for _, v := range data {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}
	step := max(len(data)/width, 1)

	var sb strings.Builder
	for i := 0; i < width && i*step < len(data); i++ {
		idx := int(data[i*step] / maxVal * float64(len(chars)-1))
		sb.WriteRune(chars[geom.Clamp(idx, 0, len(chars)-1)])
	}
	return sb.String()
}

// Run blocks until the user quits. When logPath is set, the standard logger
// is redirected there so it does not tear the alternate screen.
func Run(loop *app.Loop, logPath string) error {
	if logPath != "" {
		f, err := tea.LogToFile(logPath, "sandfall")
		if err != nil {
			return err
		}
		defer f.Close()
	}

	p := tea.NewProgram(NewModel(loop), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
