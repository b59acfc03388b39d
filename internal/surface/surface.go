// Package surface defines the display boundary: something that samples input
// once per frame and shows composed frames.
package surface

import (
	"errors"
	"time"

	"github.com/san-kum/sandfall/internal/input"
	"github.com/san-kum/sandfall/internal/render"
)

var (
	ErrClosed  = errors.New("surface: closed")
	ErrPresent = errors.New("surface: present failed")
)

// DefaultFrameInterval caps the loop at roughly 60 frames per second.
const DefaultFrameInterval = 16600 * time.Microsecond

type Surface interface {
	IsOpen() bool
	PollInput() input.Snapshot
	Present(f *render.Frame) error
	SetCursorVisible(visible bool)
	LimitFrameRate(interval time.Duration)
}
