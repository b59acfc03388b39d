package surface

import (
	"fmt"
	"time"

	"github.com/san-kum/sandfall/internal/input"
	"github.com/san-kum/sandfall/internal/render"
)

// Headless replays a fixed list of snapshots and keeps what it is shown. It
// closes itself once the script runs out.
type Headless struct {
	script   []input.Snapshot
	next     int
	closed   bool
	keep     bool
	frames   []*render.Frame
	last     *render.Frame
	presents int

	CursorVisible bool
	Interval      time.Duration
}

// NewHeadless returns a surface that yields script in order. When keep is
// set every presented frame is cloned and retained.
func NewHeadless(script []input.Snapshot, keep bool) *Headless {
	return &Headless{script: script, keep: keep, CursorVisible: true}
}

func (h *Headless) IsOpen() bool {
	return !h.closed && h.next < len(h.script)
}

func (h *Headless) PollInput() input.Snapshot {
	if !h.IsOpen() {
		return input.Snapshot{}
	}
	in := h.script[h.next]
	h.next++
	return in
}

func (h *Headless) Present(f *render.Frame) error {
	if h.closed {
		return ErrClosed
	}
	if f == nil {
		return fmt.Errorf("%w: nil frame", ErrPresent)
	}
	h.presents++
	h.last = f
	if h.keep {
		h.frames = append(h.frames, f.Clone())
	}
	return nil
}

func (h *Headless) SetCursorVisible(visible bool) { h.CursorVisible = visible }

func (h *Headless) LimitFrameRate(interval time.Duration) { h.Interval = interval }

func (h *Headless) Close() { h.closed = true }

// Presents is the number of successful Present calls.
func (h *Headless) Presents() int { return h.presents }

// Frames returns the retained frames, or nil when keep was false.
func (h *Headless) Frames() []*render.Frame { return h.frames }

// Last returns the most recently presented frame.
func (h *Headless) Last() *render.Frame { return h.last }
