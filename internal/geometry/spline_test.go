package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// denseSquare returns a closed square contour of the given side with one
// point per unit step along each edge, mimicking a pixel-traced boundary.
func denseSquare(side int) Curve {
	var c Curve
	for i := 0; i < side; i++ {
		c = append(c, Point{X: float64(i), Y: 0})
	}
	for i := 0; i < side; i++ {
		c = append(c, Point{X: float64(side), Y: float64(i)})
	}
	for i := side; i > 0; i-- {
		c = append(c, Point{X: float64(i), Y: float64(side)})
	}
	for i := side; i > 0; i-- {
		c = append(c, Point{X: 0, Y: float64(i)})
	}
	return c
}

func TestSmooth_TriangleSucceeds(t *testing.T) {
	tri := Curve{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}}
	curve, err := Smooth(tri, 200)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(curve), 200)
	require.Greater(t, Area(curve), 0.0)
}

func TestSmooth_TooFewPoints(t *testing.T) {
	_, err := Smooth(Curve{}, 100)
	require.ErrorIs(t, err, ErrInsufficientPoints)

	_, err = Smooth(Curve{{X: 1, Y: 1}, {X: 5, Y: 5}}, 100)
	require.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestSmooth_CollinearFails(t *testing.T) {
	line := Curve{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}
	_, err := Smooth(line, 100)
	require.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestSmooth_CoincidentFails(t *testing.T) {
	p := Point{X: 4, Y: 4}
	_, err := Smooth(Curve{p, p, p, p, p}, 100)
	require.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestSmooth_DensityAndClosure(t *testing.T) {
	square := denseSquare(10)
	curve, err := Smooth(square, 500)
	require.NoError(t, err)
	require.Equal(t, 500, len(curve))

	// No seam discontinuity: the gap between the last and first sample must
	// be on the order of one sampling step.
	step := 40.0 / 500 // perimeter / samples
	require.Less(t, Distance(curve[len(curve)-1], curve[0]), 3*step)
}

func TestSmooth_PassesThroughInputPoints(t *testing.T) {
	square := denseSquare(10)
	curve, err := Smooth(square, 800)
	require.NoError(t, err)

	for _, knot := range square {
		nearest := math.Inf(1)
		for _, p := range curve {
			if d := Distance(knot, p); d < nearest {
				nearest = d
			}
		}
		require.Less(t, nearest, 0.25, "curve strays from input point %+v", knot)
	}
}

func TestSmooth_SquareAreaAfterScaling(t *testing.T) {
	// A 10-pixel square with a 0.5 m/px scale should come out near
	// (10 * 0.5)^2 = 25 m², within a band for smoothing-induced corner
	// rounding.
	square := denseSquare(10)
	curve, err := Smooth(square, 500)
	require.NoError(t, err)

	factor, err := ScaleFactor(200, 100)
	require.NoError(t, err)
	require.Equal(t, 0.5, factor)

	scaled, err := Scale(curve, factor)
	require.NoError(t, err)
	require.InEpsilon(t, 25.0, Area(scaled), 0.05)
}

func TestSmooth_SparsePolygonStaysClose(t *testing.T) {
	// Even when the input is just the 4 corners, the curve must not balloon
	// far beyond the square.
	corners := unitSquare(10)
	curve, err := Smooth(corners, 500)
	require.NoError(t, err)
	require.InEpsilon(t, 100.0, Area(curve), 0.10)
}

func TestSmooth_DropsClosingDuplicate(t *testing.T) {
	tri := Curve{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 5, Y: 8}, {X: 0, Y: 0}}
	curve, err := Smooth(tri, 100)
	require.NoError(t, err)
	require.NotEmpty(t, curve)
}
