package geometry

// Point is a position on the pitch.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Plus(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

func (p Point) TimesVec(o Point) Point {
	return Point{X: p.X * o.X, Y: p.Y * o.Y}
}

func (p Point) IsEqualTo(o Point) bool {
	return p.X == o.X && p.Y == o.Y
}
