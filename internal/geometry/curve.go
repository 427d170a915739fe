package geometry

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidScale is returned when a scale factor is non-positive or derived
// from a degenerate pixel/meter measurement pair.
var ErrInvalidScale = errors.New("invalid scale")

// Point is a 2D coordinate. Units depend on context: pixels before scaling,
// meters after.
type Point struct {
	X float64
	Y float64
}

// Curve is an ordered, closed sequence of points. Like a Contour, the first
// point is not repeated at the end.
type Curve []Point

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// ScaleFactor derives the meters-per-pixel ratio from a reference scale bar
// of known real-world length.
//
// Returns ErrInvalidScale when either measurement is zero, negative, or not
// finite.
func ScaleFactor(barPixels, barMeters float64) (float64, error) {
	if !(barPixels > 0) || math.IsInf(barPixels, 1) {
		return 0, fmt.Errorf("%w: scale bar pixel length must be positive, got %v", ErrInvalidScale, barPixels)
	}
	if !(barMeters > 0) || math.IsInf(barMeters, 1) {
		return 0, fmt.Errorf("%w: scale bar length must be positive, got %v", ErrInvalidScale, barMeters)
	}
	return barMeters / barPixels, nil
}

// Scale multiplies every coordinate of the curve by metersPerPixel, producing
// a new curve in real-world units. The input is not modified.
//
// The transform is purely linear: it assumes an orthographic source image
// with uniform scale, i.e. no perspective distortion.
func Scale(c Curve, metersPerPixel float64) (Curve, error) {
	if !(metersPerPixel > 0) || math.IsInf(metersPerPixel, 1) {
		return nil, fmt.Errorf("%w: meters per pixel must be positive, got %v", ErrInvalidScale, metersPerPixel)
	}
	out := make(Curve, len(c))
	for i, p := range c {
		out[i] = Point{X: p.X * metersPerPixel, Y: p.Y * metersPerPixel}
	}
	return out, nil
}

// Area computes the enclosed area of the closed curve with the shoelace
// formula. Taking the absolute value of the signed sum makes the result
// independent of traversal direction and of which point the curve starts at.
// Curves with fewer than 3 points enclose nothing.
func Area(c Curve) float64 {
	if len(c) < 3 {
		return 0
	}
	var sum float64
	for i, p := range c {
		q := c[(i+1)%len(c)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

// Bounds returns the axis-aligned bounding box of the curve.
func Bounds(c Curve) (min, max Point) {
	if len(c) == 0 {
		return Point{}, Point{}
	}
	min, max = c[0], c[0]
	for _, p := range c[1:] {
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}
