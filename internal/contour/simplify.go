package contour

import "math"

// Simplify reduces a closed contour with the Ramer-Douglas-Peucker algorithm,
// dropping points that deviate less than epsilon (in pixels) from the
// polygon formed by their neighbors.
//
// Pixel-traced boundaries carry one point per border pixel; most of them are
// redundant staircase steps. A small epsilon, on the order of 0.2% of the
// perimeter, removes the jitter while preserving the natural shoreline shape.
//
// A closed polygon has no endpoints to anchor the recursion, so the contour
// is split at its first point and at the point farthest from it, and each
// half is simplified independently. Contours of 3 or fewer points are
// returned unchanged.
func Simplify(c Contour, epsilon float64) Contour {
	if len(c) <= 3 || epsilon <= 0 {
		return c
	}

	// Anchor the split on the two most distant points along the polygon.
	far := 1
	best := -1.0
	for i := 1; i < len(c); i++ {
		d := sqDist(c[0], c[i])
		if d > best {
			best = d
			far = i
		}
	}

	first := rdp(c[:far+1], epsilon)
	second := rdp(append(append(Contour{}, c[far:]...), c[0]), epsilon)

	// Merge the halves, dropping the shared anchors at the seams.
	out := append(Contour{}, first...)
	if len(second) > 2 {
		out = append(out, second[1:len(second)-1]...)
	}
	return out
}

// rdp simplifies an open polyline, always keeping both endpoints.
func rdp(pts Contour, epsilon float64) Contour {
	if len(pts) <= 2 {
		return pts
	}

	idx, maxDist := 0, -1.0
	for i := 1; i < len(pts)-1; i++ {
		d := perpendicularDistance(pts[i], pts[0], pts[len(pts)-1])
		if d > maxDist {
			maxDist = d
			idx = i
		}
	}
	if maxDist <= epsilon {
		return Contour{pts[0], pts[len(pts)-1]}
	}

	left := rdp(pts[:idx+1], epsilon)
	right := rdp(pts[idx:], epsilon)

	// Merge into a fresh slice; appending in place would write through to the
	// caller's backing array.
	out := make(Contour, 0, len(left)+len(right)-1)
	out = append(out, left...)
	return append(out, right[1:]...)
}

// perpendicularDistance returns the distance from p to the line through a
// and b. When a and b coincide it degrades to the point distance.
func perpendicularDistance(p, a, b Point) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(float64(p.X-a.X), float64(p.Y-a.Y))
	}
	return math.Abs(dx*float64(a.Y-p.Y)-dy*float64(a.X-p.X)) / length
}

func sqDist(a, b Point) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return dx*dx + dy*dy
}
