// Package contour extracts the pond boundary from a binary mask as an
// ordered, closed polygon in pixel coordinates.
//
// # Detection Pipeline
//
// Boundary extraction follows three steps:
//
//  1. Connected-component labeling: 8-connected foreground pixels are grouped
//     with an iterative flood fill
//  2. Region selection: only the largest region survives, on the assumption
//     that the photograph contains a single pond; islands, reflections, and
//     specks are discarded
//  3. Moore-neighbor tracing: the selected region's border is walked
//     clockwise into an ordered point sequence
//
// A separate Ramer-Douglas-Peucker pass removes the staircase jitter that
// pixel tracing produces, so downstream spline fitting works with vertices
// that carry actual shape information.
//
// # Coordinate System
//
// All coordinates are 0-based pixel positions with the origin at the top-left
// corner, X increasing rightward and Y increasing downward. Contours are
// implicitly closed: the first point is not repeated at the end.
//
// # Limitations
//
// Only the outer boundary is traced. A pond with an island produces the outer
// shoreline; the island's own outline is discarded with the smaller regions.
package contour
