package geometry

// FieldX converts an internal x coordinate to the field system, whose origin
// is the center spot and whose x axis spans [-52.5, 52.5].
func FieldX(x float64) float64 {
	return x/FieldScale - HalfWidth
}

// FieldY converts an internal y coordinate to the field system. The y axis
// spans [-34, 34] and grows downward, like the display.
func FieldY(y float64) float64 {
	return y/FieldScale - HalfHeight
}

func InternalX(x float64) float64 {
	return (x + HalfWidth) * FieldScale
}

func InternalY(y float64) float64 {
	return (y + HalfHeight) * FieldScale
}

func ToField(r Rect) Rect {
	return NewRect(FieldX(r.X1), FieldY(r.Y1), FieldX(r.X2), FieldY(r.Y2))
}

func ToInternal(r Rect) Rect {
	return NewRect(InternalX(r.X1), InternalY(r.Y1), InternalX(r.X2), InternalY(r.Y2))
}

func PointToField(p Point) Point {
	return Point{X: FieldX(p.X), Y: FieldY(p.Y)}
}

func PointToInternal(p Point) Point {
	return Point{X: InternalX(p.X), Y: InternalY(p.Y)}
}
