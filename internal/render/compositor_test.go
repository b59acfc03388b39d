package render

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/sandfall/internal/geom"
	"github.com/san-kum/sandfall/internal/grid"
)

func smallOptions(incremental bool) Options {
	return Options{CellWidth: 4, BorderWidth: 2, Theme: ThemeSandshell, Incremental: incremental}
}

func TestRenderGrid_FillsCells(t *testing.T) {
	g := grid.New(5)
	g.SetBlock(1, 2, 1, grid.Solid)
	g.SetBlock(3, 3, 1, grid.Particulate)

	c := New(5, smallOptions(false))
	c.RenderGrid(g)
	f := c.Frame()

	if f.Width != 20 || f.Height != 20 {
		t.Fatalf("expected 20x20 frame, got %dx%d", f.Width, f.Height)
	}

	tests := []struct {
		x, y int
		want uint32
	}{
		{0, 0, ThemeSandshell.Empty},
		{4, 8, ThemeSandshell.Solid},
		{7, 11, ThemeSandshell.Solid},
		{8, 8, ThemeSandshell.Empty},
		{13, 14, ThemeSandshell.Particulate},
	}
	for _, tt := range tests {
		if got := f.At(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d, %d) = %06x, want %06x", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRenderEmitter_Darkens(t *testing.T) {
	g := grid.New(5)
	c := New(5, smallOptions(false))
	c.Compose(g, nil, 2, geom.Rect{})

	f := c.Frame()
	marker := f.At(9, 1)
	if marker == ThemeSandshell.Empty {
		t.Fatal("emitter cell should be marked")
	}
	if marker != ThemeSandshell.Marker(grid.Empty) {
		t.Errorf("marker = %06x, want %06x", marker, ThemeSandshell.Marker(grid.Empty))
	}
	if f.At(13, 1) != ThemeSandshell.Empty || f.At(9, 5) != ThemeSandshell.Empty {
		t.Error("marker leaked outside the emitter block")
	}
}

func TestRenderCursor_OutlineOnly(t *testing.T) {
	g := grid.New(5)
	c := New(5, smallOptions(false))
	c.Compose(g, nil, 0, geom.Square(1, 1, 2))
	f := c.Frame()

	outline := ThemeSandshell.Outline
	if f.At(4, 4) != outline || f.At(11, 11) != outline || f.At(5, 9) != outline {
		t.Error("expected border pixels")
	}
	if f.At(6, 6) == outline || f.At(8, 8) == outline {
		t.Error("interior must not be filled")
	}
	if f.At(3, 3) == outline || f.At(12, 12) == outline {
		t.Error("outline drawn outside the brush")
	}
	if g.Count(grid.Empty) != 25 {
		t.Error("cursor changed grid contents")
	}
}

func TestRenderCursor_ClampsAtEdges(t *testing.T) {
	g := grid.New(5)
	c := New(5, smallOptions(false))

	for _, area := range []geom.Rect{
		geom.Square(4, 4, 8),
		geom.Square(3, 4, 40),
		geom.Square(-3, -3, 4),
	} {
		c.Compose(g, nil, 4, area)
	}

	f := c.Frame()
	if len(f.Pix) != 400 {
		t.Errorf("frame buffer resized: %d", len(f.Pix))
	}
	if f.At(-3, 0) != 0 || f.At(20, 0) != 0 {
		t.Error("out of range reads should return zero")
	}
}

func TestCompose_IncrementalMatchesFull(t *testing.T) {
	const n = 9
	g := grid.New(n)
	full := New(n, smallOptions(false))
	inc := New(n, smallOptions(true))

	steps := []struct {
		edit    func() []geom.Point
		emitter int
		cursor  geom.Rect
	}{
		{func() []geom.Point { return nil }, 4, geom.Square(0, 0, 2)},
		{func() []geom.Point { return g.SetBlock(2, 6, 3, grid.Solid) }, 5, geom.Square(2, 6, 3)},
		{func() []geom.Point { return g.SetBlock(5, 0, 1, grid.Particulate) }, 5, geom.Square(4, 0, 2)},
		{func() []geom.Point { return g.SetBlock(7, 7, 4, grid.Solid) }, 8, geom.Square(7, 7, 4)},
		{func() []geom.Point { return g.ClearMaterial(grid.Particulate) }, 0, geom.Rect{}},
		{func() []geom.Point { return g.SetBlock(0, 0, 2, grid.Empty) }, 1, geom.Square(8, 8, 6)},
	}

	for i, s := range steps {
		dirty := s.edit()
		a := full.Compose(g, dirty, s.emitter, s.cursor)
		b := inc.Compose(g, dirty, s.emitter, s.cursor)
		if !a.Equal(b) {
			t.Fatalf("step %d: incremental frame differs from full render", i)
		}
	}
}

func TestCellAt(t *testing.T) {
	c := New(39, DefaultOptions())

	tests := []struct {
		px, py int
		want   geom.Point
	}{
		{0, 0, geom.Pt(0, 0)},
		{17, 33, geom.Pt(1, 2)},
		{623, 623, geom.Pt(38, 38)},
		{900, -5, geom.Pt(38, 0)},
	}
	for _, tt := range tests {
		if got := c.CellAt(tt.px, tt.py); got != tt.want {
			t.Errorf("CellAt(%d, %d) = %v, want %v", tt.px, tt.py, got, tt.want)
		}
	}
}

func TestThemes(t *testing.T) {
	if _, ok := GetTheme("sandshell"); !ok {
		t.Error("expected sandshell theme")
	}
	if _, ok := GetTheme("nope"); ok {
		t.Error("unexpected theme")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}

	c, err := ParseColor("#d8ccbb")
	if err != nil || c != 0xd8ccbb {
		t.Errorf("ParseColor = %06x, %v", c, err)
	}
	if _, err := ParseColor("sand"); err == nil {
		t.Error("expected error for bad color")
	}
	if FormatColor(0x6b573d) != "#6b573d" {
		t.Errorf("FormatColor = %s", FormatColor(0x6b573d))
	}

	if Shade(0xd8ccbb, 0) != 0xd8ccbb {
		t.Error("zero shade should keep color")
	}
	if Shade(0xd8ccbb, 1) != 0 {
		t.Error("full shade should be black")
	}
}

func TestRecorder(t *testing.T) {
	g := grid.New(4)
	c := New(4, smallOptions(true))
	rec := NewRecorder(ThemeSandshell, 2, 2)

	path := filepath.Join(t.TempDir(), "out.gif")
	if err := rec.Save(path); err != ErrNoFrames {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}

	for i := 0; i < 5; i++ {
		rec.Capture(c.Compose(g, g.SetBlock(i%4, 3, 1, grid.Solid), 1, geom.Rect{}))
	}
	if rec.Len() != 3 {
		t.Errorf("expected 3 frames, got %d", rec.Len())
	}
	if err := rec.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}
}

func TestSavePNG(t *testing.T) {
	c := New(3, smallOptions(false))
	c.RenderGrid(grid.New(3))
	if err := SavePNG(c.Frame(), filepath.Join(t.TempDir(), "frame.png")); err != nil {
		t.Fatalf("save failed: %v", err)
	}
}
