package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"os"

	"github.com/fogleman/gg"
)

var ErrNoFrames = errors.New("render: no frames recorded")

// Recorder keeps every Nth composed frame for an animated GIF.
type Recorder struct {
	every   int
	delay   int
	palette color.Palette
	seen    int
	frames  []*image.Paletted
}

// NewRecorder keeps one frame out of every. delay is the per-frame GIF delay
// in hundredths of a second.
func NewRecorder(t Theme, every, delay int) *Recorder {
	if every < 1 {
		every = 1
	}
	pal := make(color.Palette, 0, 8)
	for _, c := range t.Palette() {
		pal = append(pal, RGBA(c))
	}
	return &Recorder{every: every, delay: delay, palette: pal}
}

func (r *Recorder) Capture(f *Frame) {
	r.seen++
	if (r.seen-1)%r.every != 0 {
		return
	}
	src := f.RGBA()
	img := image.NewPaletted(src.Bounds(), r.palette)
	draw.Draw(img, img.Bounds(), src, image.Point{}, draw.Src)
	r.frames = append(r.frames, img)
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gif.EncodeAll(f, &anim); err != nil {
		return fmt.Errorf("render: encode gif: %w", err)
	}
	return nil
}

// SavePNG writes a single frame as a PNG image.
func SavePNG(f *Frame, path string) error {
	return gg.SavePNG(path, f.RGBA())
}
