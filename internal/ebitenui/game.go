//go:build ebiten

// Package ebitenui presents frames through ebiten. ebiten owns the update
// loop, so Game drives app.Loop from its Update callback instead of being
// polled by Loop.Run.
package ebitenui

import (
	"errors"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/sandfall/internal/app"
	"github.com/san-kum/sandfall/internal/geom"
	"github.com/san-kum/sandfall/internal/input"
	"github.com/san-kum/sandfall/internal/render"
	"github.com/san-kum/sandfall/internal/surface"
)

var keyBindings = []struct {
	ebiten ebiten.Key
	key    input.Key
}{
	{ebiten.KeyS, input.KeyPlay},
	{ebiten.KeyP, input.KeyPause},
	{ebiten.KeyM, input.KeyStop},
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyQ, input.KeyQuit},
	{ebiten.KeyEscape, input.KeyQuit},
}

var _ surface.Surface = (*Game)(nil)

type Game struct {
	loop   *app.Loop
	size   int
	frame  *render.Frame
	pixels []byte
	closed bool
	err    error
}

func New(loop *app.Loop, size int) *Game {
	return &Game{
		loop:   loop,
		size:   size,
		pixels: make([]byte, size*size*4),
	}
}

// Run opens the window and blocks until it is closed or quit is pressed.
func Run(title string, loop *app.Loop, size int) error {
	g := New(loop, size)
	ebiten.SetWindowSize(size, size)
	ebiten.SetWindowTitle(title)
	g.SetCursorVisible(false)
	g.LimitFrameRate(loop.Interval)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if err == nil {
		err = g.err
	}
	return err
}

func (g *Game) Update() error {
	if !g.IsOpen() {
		return ebiten.Termination
	}
	f, quit := g.loop.Frame(g.PollInput())
	if err := g.Present(f); err != nil {
		g.err = err
		return ebiten.Termination
	}
	if quit {
		g.closed = true
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame == nil {
		return
	}
	screen.WritePixels(g.pixels)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.size, g.size
}

func (g *Game) IsOpen() bool { return !g.closed }

func (g *Game) PollInput() input.Snapshot {
	x, y := ebiten.CursorPosition()
	_, wheel := ebiten.Wheel()
	in := input.Snapshot{
		Pointer: geom.Pt(x, y),
		Left:    ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Right:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight),
		Middle:  ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle),
		Scroll:  wheel,
	}
	for _, b := range keyBindings {
		if ebiten.IsKeyPressed(b.ebiten) {
			in.KeysDown = in.KeysDown.With(b.key)
		}
		if inpututil.IsKeyJustReleased(b.ebiten) {
			in.KeysReleased = in.KeysReleased.With(b.key)
		}
	}
	return in
}

// Present copies f into the pixel buffer that the next Draw uploads.
func (g *Game) Present(f *render.Frame) error {
	if g.closed {
		return surface.ErrClosed
	}
	if f == nil || f.Width != g.size || f.Height != g.size {
		return surface.ErrPresent
	}
	f.WriteRGBA(g.pixels)
	g.frame = f
	return nil
}

func (g *Game) SetCursorVisible(visible bool) {
	if visible {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeHidden)
	}
}

// LimitFrameRate sets ebiten's tick rate; one tick runs one frame.
func (g *Game) LimitFrameRate(interval time.Duration) {
	if interval <= 0 {
		ebiten.SetTPS(ebiten.SyncWithFPS)
		return
	}
	ebiten.SetTPS(int(math.Round(float64(time.Second) / float64(interval))))
}
