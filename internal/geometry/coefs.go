package geometry

import "fmt"

// Coefs maps a ball position to a player position:
//
//	playerX = ballX*C1 + O1
//	playerY = ballY*C2 + O2
type Coefs struct {
	C1 float64 `json:"c1"`
	C2 float64 `json:"c2"`
	O1 float64 `json:"o1"`
	O2 float64 `json:"o2"`
}

func NewCoefs(c1, c2, o1, o2 float64) Coefs {
	return Coefs{C1: c1, C2: c2, O1: o1, O2: o2}
}

// Apply returns the player position for the given ball position.
func (c Coefs) Apply(ball Point) Point {
	return ball.TimesVec(Point{X: c.C1, Y: c.C2}).Plus(Point{X: c.O1, Y: c.O2})
}

func (c Coefs) String() string {
	return fmt.Sprintf("%s %s %s %s", FormatNumber(c.C1), FormatNumber(c.C2), FormatNumber(c.O1), FormatNumber(c.O2))
}
