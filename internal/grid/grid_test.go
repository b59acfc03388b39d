package grid

import (
	"testing"

	"github.com/san-kum/sandfall/internal/geom"
)

func TestGet_Unwritten(t *testing.T) {
	g := New(39)

	for y := -2; y < 41; y++ {
		for x := -2; x < 41; x++ {
			if got := g.Get(x, y); got != Empty {
				t.Fatalf("Get(%d, %d) = %v, want empty", x, y, got)
			}
		}
	}
}

func TestSetBlock(t *testing.T) {
	tests := []struct {
		name    string
		x, y    int
		size    int
		touched int
	}{
		{"inside", 3, 4, 3, 9},
		{"single cell", 0, 0, 1, 1},
		{"clipped bottom-right", 8, 9, 4, 2},
		{"clipped top-left", -2, -2, 3, 1},
		{"fully outside", 11, 11, 3, 0},
		{"zero size", 5, 5, 0, 0},
		{"negative size", 5, 5, -2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(10)
			pts := g.SetBlock(tt.x, tt.y, tt.size, Solid)

			if len(pts) != tt.touched {
				t.Errorf("expected %d touched cells, got %d", tt.touched, len(pts))
			}

			want := geom.Square(tt.x, tt.y, tt.size).Intersect(g.Bounds())
			for y := 0; y < 10; y++ {
				for x := 0; x < 10; x++ {
					inside := want.Contains(geom.Pt(x, y))
					got := g.Get(x, y)
					if inside && got != Solid {
						t.Errorf("cell (%d, %d) = %v, want solid", x, y, got)
					}
					if !inside && got != Empty {
						t.Errorf("cell (%d, %d) = %v, want empty", x, y, got)
					}
				}
			}
		})
	}
}

func TestSetBlock_LeavesOtherCells(t *testing.T) {
	g := New(6)
	g.SetBlock(0, 0, 6, Particulate)
	g.SetBlock(2, 2, 2, Solid)

	if g.Count(Solid) != 4 {
		t.Errorf("expected 4 solid cells, got %d", g.Count(Solid))
	}
	if g.Count(Particulate) != 32 {
		t.Errorf("expected 32 particulate cells, got %d", g.Count(Particulate))
	}
}

func TestClearMaterial(t *testing.T) {
	g := New(5)
	g.SetBlock(0, 4, 5, Solid)
	g.SetBlock(1, 1, 2, Particulate)

	pts := g.ClearMaterial(Particulate)
	if len(pts) != 4 {
		t.Errorf("expected 4 cleared cells, got %d", len(pts))
	}
	if g.Count(Particulate) != 0 {
		t.Error("particulate left after clear")
	}
	if g.Count(Solid) != 5 {
		t.Errorf("solid cells changed: got %d", g.Count(Solid))
	}

	if pts := g.ClearMaterial(Empty); pts != nil {
		t.Error("clearing empty should be a no-op")
	}
}

func TestColumnHeights(t *testing.T) {
	g := New(4)
	g.SetBlock(0, 3, 1, Particulate)
	g.SetBlock(2, 1, 1, Particulate)
	g.SetBlock(2, 3, 1, Particulate)

	want := []int{1, 0, 3, 0}
	got := g.ColumnHeights(Particulate)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("column %d height = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestMaterialString(t *testing.T) {
	if Solid.String() != "solid" || Material(9).String() != "unknown" {
		t.Error("unexpected material names")
	}
}
