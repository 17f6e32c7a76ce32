package geometry

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle. NewRect sorts the corners so that
// X1 <= X2 and Y1 <= Y2; callers should treat a Rect as a value and never
// assign the fields directly.
type Rect struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{
		X1: math.Min(x1, x2),
		Y1: math.Min(y1, y2),
		X2: math.Max(x1, x2),
		Y2: math.Max(y1, y2),
	}
}

func (r Rect) Width() float64 {
	return math.Abs(r.X2 - r.X1)
}

func (r Rect) Height() float64 {
	return math.Abs(r.Y2 - r.Y1)
}

// Contains reports whether (x, y) lies inside r, bounds included.
// Both corner orders are accepted so a zero-value or hand-built Rect behaves
// like a normalized one.
func (r Rect) Contains(x, y float64) bool {
	inX := (r.X1 <= x && x <= r.X2) || (r.X2 <= x && x <= r.X1)
	inY := (r.Y1 <= y && y <= r.Y2) || (r.Y2 <= y && y <= r.Y1)
	return inX && inY
}

func (r Rect) ContainsPoint(p Point) bool {
	return r.Contains(p.X, p.Y)
}

func (r Rect) String() string {
	return fmt.Sprintf("%s %s %s %s", FormatNumber(r.X1), FormatNumber(r.Y1), FormatNumber(r.X2), FormatNumber(r.Y2))
}
