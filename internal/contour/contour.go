package contour

import "math"

// Point is a 2D pixel coordinate.
type Point struct {
	X int
	Y int
}

// Contour is an ordered, closed sequence of boundary pixels. The polygon is
// implicitly closed: the first point is not repeated at the end, and no two
// consecutive points coincide.
type Contour []Point

// Perimeter returns the length of the closed polygon outline in pixels.
func (c Contour) Perimeter() float64 {
	if len(c) < 2 {
		return 0
	}
	var total float64
	for i, p := range c {
		q := c[(i+1)%len(c)]
		dx := float64(q.X - p.X)
		dy := float64(q.Y - p.Y)
		total += math.Hypot(dx, dy)
	}
	return total
}
