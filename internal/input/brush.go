package input

const (
	DefaultBrushSize = 8
	DefaultBrushStep = 2
	DefaultBrushMin  = 2
)

// Brush is the square edit region. Size never drops below Min.
type Brush struct {
	Size int
	Step int
	Min  int
}

func NewBrush(size, step, minSize int) Brush {
	b := Brush{Size: size, Step: max(step, 1), Min: max(minSize, 1)}
	b.Size = max(b.Size, b.Min)
	return b
}

func DefaultBrush() Brush {
	return NewBrush(DefaultBrushSize, DefaultBrushStep, DefaultBrushMin)
}

func (b *Brush) Grow() { b.Size += b.Step }

func (b *Brush) Shrink() { b.Size = max(b.Size-b.Step, b.Min) }
