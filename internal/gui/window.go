// Package gui presents frames in a raylib window.
package gui

import (
	"fmt"
	"image/color"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/sandfall/internal/geom"
	"github.com/san-kum/sandfall/internal/input"
	"github.com/san-kum/sandfall/internal/render"
	"github.com/san-kum/sandfall/internal/surface"
)

var colBg = rl.NewColor(0, 0, 0, 255)

// keyBindings maps raylib keys onto controller keys. Several raylib keys may
// share one controller key.
var keyBindings = []struct {
	raylib int32
	key    input.Key
}{
	{rl.KeyS, input.KeyPlay},
	{rl.KeyP, input.KeyPause},
	{rl.KeyM, input.KeyStop},
	{rl.KeyLeft, input.KeyLeft},
	{rl.KeyRight, input.KeyRight},
	{rl.KeyQ, input.KeyQuit},
	{rl.KeyEscape, input.KeyQuit},
}

// Window is a square raylib window sized to the frame.
type Window struct {
	size   int
	tex    rl.Texture2D
	pixels []color.RGBA
	open   bool
}

// Open creates the window. Only one Window may exist per process.
func Open(title string, size int) (*Window, error) {
	if size <= 0 {
		return nil, fmt.Errorf("gui: invalid window size %d", size)
	}
	rl.InitWindow(int32(size), int32(size), title)
	if !rl.IsWindowReady() {
		return nil, fmt.Errorf("gui: %w: window not ready", surface.ErrClosed)
	}
	rl.SetExitKey(0)

	img := rl.GenImageColor(size, size, colBg)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	return &Window{
		size:   size,
		tex:    tex,
		pixels: make([]color.RGBA, size*size),
		open:   true,
	}, nil
}

func (w *Window) IsOpen() bool {
	return w.open && !rl.WindowShouldClose()
}

func (w *Window) PollInput() input.Snapshot {
	pos := rl.GetMousePosition()
	in := input.Snapshot{
		Pointer: geom.Pt(int(pos.X), int(pos.Y)),
		Left:    rl.IsMouseButtonDown(rl.MouseLeftButton),
		Right:   rl.IsMouseButtonDown(rl.MouseRightButton),
		Middle:  rl.IsMouseButtonDown(rl.MouseMiddleButton),
		Scroll:  float64(rl.GetMouseWheelMove()),
	}
	for _, b := range keyBindings {
		if rl.IsKeyDown(b.raylib) {
			in.KeysDown = in.KeysDown.With(b.key)
		}
		if rl.IsKeyReleased(b.raylib) {
			in.KeysReleased = in.KeysReleased.With(b.key)
		}
	}
	return in
}

func (w *Window) Present(f *render.Frame) error {
	if !w.open {
		return surface.ErrClosed
	}
	if f == nil || f.Width != w.size || f.Height != w.size {
		return fmt.Errorf("%w: frame does not match %dx%d window", surface.ErrPresent, w.size, w.size)
	}

	for i, c := range f.Pix {
		w.pixels[i] = render.RGBA(c)
	}
	rl.UpdateTexture(w.tex, w.pixels)

	rl.BeginDrawing()
	rl.ClearBackground(colBg)
	rl.DrawTexture(w.tex, 0, 0, rl.White)
	rl.EndDrawing()
	return nil
}

func (w *Window) SetCursorVisible(visible bool) {
	if visible {
		rl.ShowCursor()
	} else {
		rl.HideCursor()
	}
}

// LimitFrameRate converts interval to raylib's target FPS. Zero or negative
// means unlimited.
func (w *Window) LimitFrameRate(interval time.Duration) {
	rl.SetTargetFPS(targetFPS(interval))
}

func (w *Window) Close() {
	if !w.open {
		return
	}
	w.open = false
	rl.UnloadTexture(w.tex)
	rl.CloseWindow()
}

func targetFPS(interval time.Duration) int32 {
	if interval <= 0 {
		return 0
	}
	return int32(math.Round(float64(time.Second) / float64(interval)))
}
