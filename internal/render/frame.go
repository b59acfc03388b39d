package render

import (
	"image"
	"image/color"

	"github.com/san-kum/sandfall/internal/geom"
)

// Frame is a row-major buffer of 0x00RRGGBB pixels.
type Frame struct {
	Pix    []uint32
	Width  int
	Height int
}

func NewFrame(w, h int) *Frame {
	w, h = max(w, 0), max(h, 0)
	return &Frame{Pix: make([]uint32, w*h), Width: w, Height: h}
}

func (f *Frame) Bounds() geom.Rect {
	return geom.Rect{Max: geom.Pt(f.Width, f.Height)}
}

// Set drops writes outside the buffer.
func (f *Frame) Set(x, y int, c uint32) {
	if !geom.InRange(x, f.Width) || !geom.InRange(y, f.Height) {
		return
	}
	f.Pix[y*f.Width+x] = c
}

func (f *Frame) At(x, y int) uint32 {
	if !geom.InRange(x, f.Width) || !geom.InRange(y, f.Height) {
		return 0
	}
	return f.Pix[y*f.Width+x]
}

func (f *Frame) Fill(r geom.Rect, c uint32) {
	r = r.Intersect(f.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := f.Pix[y*f.Width : (y+1)*f.Width]
		for x := r.Min.X; x < r.Max.X; x++ {
			row[x] = c
		}
	}
}

func (f *Frame) Equal(o *Frame) bool {
	if f.Width != o.Width || f.Height != o.Height {
		return false
	}
	for i := range f.Pix {
		if f.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

func (f *Frame) Clone() *Frame {
	c := NewFrame(f.Width, f.Height)
	copy(c.Pix, f.Pix)
	return c
}

// RGBA converts the frame to an opaque image.
func (f *Frame) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	f.WriteRGBA(img.Pix)
	return img
}

// WriteRGBA fills dst (4 bytes per pixel) from the frame. dst must hold at
// least Width*Height*4 bytes.
func (f *Frame) WriteRGBA(dst []byte) {
	for i, c := range f.Pix {
		o := i * 4
		if o+3 >= len(dst) {
			return
		}
		dst[o] = uint8(c >> 16)
		dst[o+1] = uint8(c >> 8)
		dst[o+2] = uint8(c)
		dst[o+3] = 0xff
	}
}

func RGBA(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}
