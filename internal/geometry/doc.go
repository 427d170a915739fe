// Package geometry turns a pixel contour into a smooth closed curve,
// converts it to real-world units, and computes the enclosed area.
//
// # Smoothing
//
// The contour is treated as a periodic signal parameterized by cumulative
// chord length. A periodic cubic spline is fitted through the points and
// resampled at a fixed density, removing pixel-level jaggedness while
// preserving the shoreline shape. The fitted curve interpolates every input
// point and is C2-continuous across the seam between the last and first
// point.
//
// # Scaling and Area
//
// Conversion to meters is a uniform multiplication by the meters-per-pixel
// ratio measured from a reference scale bar. This assumes an orthographic
// photograph: perspective rectification is out of scope. Area uses the
// shoelace formula over the closed curve; the absolute value of the signed
// sum makes the result independent of traversal direction and start point.
//
// # Failure Modes
//
// Smoothing needs at least 3 distinct points (ErrInsufficientPoints) that are
// not all on one line (ErrDegenerateGeometry). Scaling rejects non-positive
// or non-finite factors (ErrInvalidScale).
package geometry
