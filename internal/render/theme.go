package render

import (
	"fmt"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/sandfall/internal/grid"
)

// Theme maps materials to 0x00RRGGBB pixel colors.
type Theme struct {
	Name        string
	Empty       uint32
	Solid       uint32
	Particulate uint32
	Outline     uint32
	// EmitterShade is how far the emitter cell is blended toward black.
	EmitterShade float64
}

var (
	ThemeSandshell = Theme{
		Name:         "sandshell",
		Empty:        0x6b573d,
		Solid:        0x7a6e5e,
		Particulate:  0xd8ccbb,
		Outline:      0x000000,
		EmitterShade: 0.7,
	}

	ThemeDusk = Theme{
		Name:         "dusk",
		Empty:        0x1d1b2f,
		Solid:        0x4a4e69,
		Particulate:  0xf2a65a,
		Outline:      0xf2e9e4,
		EmitterShade: 0.6,
	}

	ThemeMono = Theme{
		Name:         "mono",
		Empty:        0x0a0a0a,
		Solid:        0x5a5a5a,
		Particulate:  0xe0e0e0,
		Outline:      0xffffff,
		EmitterShade: 0.5,
	}

	ThemeDesert = Theme{
		Name:         "desert",
		Empty:        0x87ceeb,
		Solid:        0x8b5a2b,
		Particulate:  0xedc9af,
		Outline:      0x202020,
		EmitterShade: 0.6,
	}

	DefaultTheme = ThemeSandshell

	Themes = []Theme{ThemeSandshell, ThemeDusk, ThemeMono, ThemeDesert}
)

// GetTheme looks up a built-in theme by name.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	sort.Strings(names)
	return names
}

func (t Theme) Color(m grid.Material) uint32 {
	switch m {
	case grid.Solid:
		return t.Solid
	case grid.Particulate:
		return t.Particulate
	}
	return t.Empty
}

// Marker is the emitter color drawn over a cell of material m.
func (t Theme) Marker(m grid.Material) uint32 {
	return Shade(t.Color(m), t.EmitterShade)
}

// Palette lists every color a frame drawn with t can contain.
func (t Theme) Palette() []uint32 {
	pal := []uint32{t.Empty, t.Solid, t.Particulate, t.Outline}
	for _, m := range []grid.Material{grid.Empty, grid.Solid, grid.Particulate} {
		pal = append(pal, t.Marker(m))
	}
	return pal
}

// ParseColor reads a "#rrggbb" string.
func ParseColor(s string) (uint32, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return 0, fmt.Errorf("render: bad color %q: %w", s, err)
	}
	return pack(c), nil
}

func FormatColor(c uint32) string { return unpack(c).Hex() }

// Shade blends c toward black in Lab space; amount 0 keeps c, 1 is black.
func Shade(c uint32, amount float64) uint32 {
	if amount <= 0 {
		return c
	}
	if amount > 1 {
		amount = 1
	}
	return pack(unpack(c).BlendLab(colorful.Color{}, amount).Clamped())
}

func unpack(c uint32) colorful.Color {
	return colorful.Color{
		R: float64(c>>16&0xff) / 255,
		G: float64(c>>8&0xff) / 255,
		B: float64(c&0xff) / 255,
	}
}

func pack(c colorful.Color) uint32 {
	r, g, b := c.RGB255()
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}
