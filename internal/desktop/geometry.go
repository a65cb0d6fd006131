package desktop

import "math"

// Geometry defaults and limits, in logical pixels.
const (
	DefaultX      = 100.0
	DefaultY      = 100.0
	DefaultWidth  = 400.0
	DefaultHeight = 300.0

	// MinWidth and MinHeight floor every explicit resize.
	MinWidth  = 200.0
	MinHeight = 150.0

	// DragVisibleMargin is how much of a dragged window stays on screen horizontally.
	DragVisibleMargin = 100.0
	// TitleBarReserve keeps the title bar reachable at the bottom of the viewport.
	TitleBarReserve = 40.0
	// SplitChromeHeight is subtracted from the viewport height for split panes.
	SplitChromeHeight = 120.0

	MinOpacity = 0.1
	MaxOpacity = 1.0
)

// Point is a position in logical pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is a width/height pair in logical pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Rect is a positioned rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PositiveFinite reports whether v is a usable dimension.
func PositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func orDefault(v, def float64) float64 {
	if finite(v) {
		return v
	}
	return def
}

// SanitizePosition replaces non-finite coordinates with the default position.
func SanitizePosition(p Point) Point {
	return Point{X: orDefault(p.X, DefaultX), Y: orDefault(p.Y, DefaultY)}
}

// ClampPosition is the rule for direct position sets: NaN guard, then no
// negative coordinates.
func ClampPosition(p Point) Point {
	p = SanitizePosition(p)
	return Point{X: math.Max(p.X, 0), Y: math.Max(p.Y, 0)}
}

// SanitizeSize replaces non-finite dimensions with the default size.
func SanitizeSize(s Size) Size {
	return Size{Width: orDefault(s.Width, DefaultWidth), Height: orDefault(s.Height, DefaultHeight)}
}

// ConstrainSize is the rule for explicit resizes: NaN guard, then the minimum
// window dimensions.
func ConstrainSize(s Size) Size {
	s = SanitizeSize(s)
	return Size{Width: math.Max(s.Width, MinWidth), Height: math.Max(s.Height, MinHeight)}
}

// DragClamp computes the position of a window dragged by offset from current,
// keeping at least DragVisibleMargin of it on screen horizontally and its
// title bar inside the viewport vertically.
func DragClamp(current, offset Point, size Size, viewportWidth, viewportHeight float64) Point {
	current = SanitizePosition(current)
	size = SanitizeSize(size)
	x := current.X + orDefault(offset.X, 0)
	y := current.Y + orDefault(offset.Y, 0)
	vw := orDefault(viewportWidth, 0)
	vh := orDefault(viewportHeight, 0)

	// Lower bounds are applied last so they win on tiny viewports.
	minX := -math.Max(size.Width-DragVisibleMargin, 0)
	maxX := vw - DragVisibleMargin
	x = math.Max(math.Min(x, maxX), minX)

	maxY := vh - TitleBarReserve
	y = math.Max(math.Min(y, maxY), 0)

	return Point{X: x, Y: y}
}

// MaximizedFrame is the maximize transform: the whole viewport.
func MaximizedFrame(viewportWidth, viewportHeight float64) Rect {
	return Rect{
		X:      0,
		Y:      0,
		Width:  math.Max(orDefault(viewportWidth, 0), 0),
		Height: math.Max(orDefault(viewportHeight, 0), 0),
	}
}

// SplitFrames returns the left and right halves used by split-screen.
func SplitFrames(viewportWidth, viewportHeight float64) (left, right Rect) {
	vw := math.Max(orDefault(viewportWidth, 0), 0)
	vh := math.Max(orDefault(viewportHeight, 0), 0)
	half := vw / 2
	height := math.Max(vh-SplitChromeHeight, 0)

	left = Rect{X: 0, Y: 0, Width: half, Height: height}
	right = Rect{X: half, Y: 0, Width: half, Height: height}
	return left, right
}

// ClampOpacity keeps opacity within [MinOpacity, MaxOpacity]. NaN becomes
// fully opaque.
func ClampOpacity(v float64) float64 {
	if math.IsNaN(v) {
		return MaxOpacity
	}
	return math.Min(math.Max(v, MinOpacity), MaxOpacity)
}
