package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// unitSquare returns a closed square curve with the given side length.
func unitSquare(side float64) Curve {
	return Curve{
		{X: 0, Y: 0},
		{X: side, Y: 0},
		{X: side, Y: side},
		{X: 0, Y: side},
	}
}

func TestArea_Square(t *testing.T) {
	require.Equal(t, 100.0, Area(unitSquare(10)))
}

func TestArea_TooFewPoints(t *testing.T) {
	require.Zero(t, Area(Curve{}))
	require.Zero(t, Area(Curve{{X: 1, Y: 1}}))
	require.Zero(t, Area(Curve{{X: 1, Y: 1}, {X: 2, Y: 2}}))
}

func TestArea_DirectionInvariant(t *testing.T) {
	c := unitSquare(7)
	reversed := make(Curve, len(c))
	for i, p := range c {
		reversed[len(c)-1-i] = p
	}
	require.Equal(t, Area(c), Area(reversed))
}

func TestArea_StartPointInvariant(t *testing.T) {
	c := unitSquare(7)
	want := Area(c)
	for shift := 1; shift < len(c); shift++ {
		rotated := append(append(Curve{}, c[shift:]...), c[:shift]...)
		require.InDelta(t, want, Area(rotated), 1e-12, "rotation by %d changed the area", shift)
	}
}

func TestArea_ScaleLaw(t *testing.T) {
	c := Curve{{X: 1, Y: 2}, {X: 13, Y: 3}, {X: 11, Y: 15}, {X: 2, Y: 9}}
	for _, factor := range []float64{0.5, 1, 2.25, 100} {
		scaled, err := Scale(c, factor)
		require.NoError(t, err)
		require.InDelta(t, factor*factor*Area(c), Area(scaled), 1e-9*factor*factor)
	}
}

func TestScale_RoundTrip(t *testing.T) {
	c := Curve{{X: 1, Y: 2}, {X: 13, Y: 3}, {X: 11, Y: 15}, {X: 2, Y: 9}}
	factor := 0.5

	scaled, err := Scale(c, factor)
	require.NoError(t, err)
	back, err := Scale(scaled, 1/factor)
	require.NoError(t, err)

	for i := range c {
		require.InDelta(t, c[i].X, back[i].X, 1e-12)
		require.InDelta(t, c[i].Y, back[i].Y, 1e-12)
	}
}

func TestScale_Invalid(t *testing.T) {
	c := unitSquare(1)
	for _, factor := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := Scale(c, factor)
		require.ErrorIs(t, err, ErrInvalidScale, "factor %v", factor)
	}
}

func TestScaleFactor(t *testing.T) {
	got, err := ScaleFactor(200, 100)
	require.NoError(t, err)
	require.Equal(t, 0.5, got)

	for _, tc := range []struct{ pixels, meters float64 }{
		{0, 100},
		{-5, 100},
		{200, 0},
		{200, -1},
		{math.NaN(), 100},
	} {
		_, err := ScaleFactor(tc.pixels, tc.meters)
		require.ErrorIs(t, err, ErrInvalidScale, "pixels=%v meters=%v", tc.pixels, tc.meters)
	}
}

func TestBounds(t *testing.T) {
	min, max := Bounds(Curve{{X: 3, Y: -1}, {X: -2, Y: 5}, {X: 1, Y: 1}})
	require.Equal(t, Point{X: -2, Y: -1}, min)
	require.Equal(t, Point{X: 3, Y: 5}, max)
}
