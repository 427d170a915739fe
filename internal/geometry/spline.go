package geometry

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrInsufficientPoints is returned when a contour has too few distinct
// points for spline fitting.
var ErrInsufficientPoints = errors.New("insufficient points for smoothing")

// ErrDegenerateGeometry is returned when a contour's points are all collinear
// or coincident, so no closed curve with area can pass through them.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// minSmoothPoints is the smallest number of distinct contour points a
// periodic spline can be fitted through.
const minSmoothPoints = 3

// subdivisionFraction bounds chord lengths to this fraction of the total
// perimeter before fitting. Without it, a sparse polygon (for example a
// square reduced to its 4 corners) lets the spline bow far outside the
// straight edges between knots.
const subdivisionFraction = 1.0 / 64.0

// Smooth fits a smooth closed curve through an ordered closed contour and
// resamples it at a fixed density.
//
// Parameters:
//   - pts: Ordered closed polygon, pixel coordinates. A coincident closing
//     point is tolerated and removed.
//   - samples: Number of points on the output curve. Values below 3x the
//     input size are raised to that, so the output is always strictly denser
//     than the input. Typical: 500.
//
// Returns:
//   - Curve: The resampled curve, closed, monotonically parameterized by arc
//     length, with no seam discontinuity between the last and first point.
//   - error: ErrInsufficientPoints for fewer than 3 input points;
//     ErrDegenerateGeometry when the distinct points are collinear or all
//     coincident.
//
// # Algorithm
//
// The contour is treated as a periodic signal parameterized by cumulative
// chord length. A periodic cubic spline is fitted per coordinate by solving
// the cyclic tridiagonal system for the second derivatives at the knots
// (dense solve via gonum/mat; contour sizes make sparsity irrelevant). The
// spline interpolates every knot and is C2-continuous across the seam. Long
// chords are subdivided beforehand so the curve hugs straight polygon edges
// instead of bowing between distant knots.
func Smooth(pts Curve, samples int) (Curve, error) {
	distinct := dedup(pts)
	if len(distinct) < minSmoothPoints {
		if len(pts) >= minSmoothPoints {
			return nil, fmt.Errorf("%w: %d points collapse to %d distinct", ErrDegenerateGeometry, len(pts), len(distinct))
		}
		return nil, fmt.Errorf("%w: need at least %d, got %d", ErrInsufficientPoints, minSmoothPoints, len(pts))
	}
	if collinear(distinct) {
		return nil, fmt.Errorf("%w: all points are collinear", ErrDegenerateGeometry)
	}

	knots := subdivide(distinct)
	n := len(knots)
	if samples < 3*len(distinct) {
		samples = 3 * len(distinct)
	}

	// Chord-length parameterization. ts has n+1 entries; ts[n] closes the
	// loop back to knot 0.
	hs := make([]float64, n)
	for i := range knots {
		hs[i] = Distance(knots[i], knots[(i+1)%n])
	}
	ts := make([]float64, n+1)
	floats.CumSum(ts[1:], hs)
	total := ts[n]

	m, err := solveSecondDerivatives(knots, hs)
	if err != nil {
		return nil, err
	}

	out := make(Curve, samples)
	for k := 0; k < samples; k++ {
		t := total * float64(k) / float64(samples)
		i := segmentIndex(ts, t)
		out[k] = evalSegment(knots, m, ts, hs, i, t)
	}
	return out, nil
}

// solveSecondDerivatives solves the periodic cubic spline system
//
//	h[i-1]*M[i-1] + 2*(h[i-1]+h[i])*M[i] + h[i]*M[i+1] = 6*(d[i] - d[i-1])
//
// where d[i] is the chord slope (p[i+1]-p[i])/h[i] and all indices wrap. Both
// coordinates share the matrix, so they are solved together as a two-column
// right-hand side.
func solveSecondDerivatives(knots Curve, hs []float64) (*mat.Dense, error) {
	n := len(knots)
	a := mat.NewDense(n, n, nil)
	b := mat.NewDense(n, 2, nil)

	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		next := (i + 1) % n
		a.Set(i, prev, a.At(i, prev)+hs[prev])
		a.Set(i, i, a.At(i, i)+2*(hs[prev]+hs[i]))
		a.Set(i, next, a.At(i, next)+hs[i])

		dxPrev := (knots[i].X - knots[prev].X) / hs[prev]
		dyPrev := (knots[i].Y - knots[prev].Y) / hs[prev]
		dxNext := (knots[next].X - knots[i].X) / hs[i]
		dyNext := (knots[next].Y - knots[i].Y) / hs[i]
		b.Set(i, 0, 6*(dxNext-dxPrev))
		b.Set(i, 1, 6*(dyNext-dyPrev))
	}

	var m mat.Dense
	if err := m.Solve(a, b); err != nil {
		return nil, fmt.Errorf("%w: spline system is singular", ErrDegenerateGeometry)
	}
	return &m, nil
}

// evalSegment evaluates the spline on segment i at parameter t using the
// second-derivative form of the cubic.
func evalSegment(knots Curve, m *mat.Dense, ts, hs []float64, i int, t float64) Point {
	n := len(knots)
	next := (i + 1) % n
	h := hs[i]
	u := ts[i+1] - t
	v := t - ts[i]

	eval := func(col int, p0, p1 float64) float64 {
		m0 := m.At(i, col)
		m1 := m.At(next, col)
		return m0*u*u*u/(6*h) + m1*v*v*v/(6*h) +
			(p0/h-m0*h/6)*u + (p1/h-m1*h/6)*v
	}
	return Point{
		X: eval(0, knots[i].X, knots[next].X),
		Y: eval(1, knots[i].Y, knots[next].Y),
	}
}

// segmentIndex returns i such that ts[i] <= t < ts[i+1].
func segmentIndex(ts []float64, t float64) int {
	i := sort.SearchFloat64s(ts, t)
	if i == len(ts) || ts[i] > t {
		i--
	}
	if i > len(ts)-2 {
		i = len(ts) - 2
	}
	if i < 0 {
		i = 0
	}
	return i
}

// dedup removes consecutive duplicate points, including a closing point that
// repeats the first.
func dedup(pts Curve) Curve {
	out := make(Curve, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	if len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}

// collinear reports whether every point lies on the line through the first
// two, within a tolerance proportional to the contour extent.
func collinear(pts Curve) bool {
	if len(pts) < 3 {
		return true
	}
	min, max := Bounds(pts)
	extent := math.Max(max.X-min.X, max.Y-min.Y)
	tol := 1e-9 * extent * extent

	a, b := pts[0], pts[1]
	for _, p := range pts[2:] {
		cross := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if math.Abs(cross) > tol {
			return false
		}
	}
	return true
}

// subdivide inserts points on chords longer than subdivisionFraction of the
// perimeter. Inserted points lie on the original polygon, so the guarantee
// that the curve passes through every input point is preserved.
func subdivide(pts Curve) Curve {
	var perimeter float64
	n := len(pts)
	for i := range pts {
		perimeter += Distance(pts[i], pts[(i+1)%n])
	}
	maxChord := perimeter * subdivisionFraction
	if maxChord <= 0 {
		return pts
	}

	out := make(Curve, 0, n)
	for i := range pts {
		p, q := pts[i], pts[(i+1)%n]
		out = append(out, p)
		d := Distance(p, q)
		pieces := int(math.Ceil(d / maxChord))
		for j := 1; j < pieces; j++ {
			f := float64(j) / float64(pieces)
			out = append(out, Point{
				X: p.X + f*(q.X-p.X),
				Y: p.Y + f*(q.Y-p.Y),
			})
		}
	}
	return out
}
