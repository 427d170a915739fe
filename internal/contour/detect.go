package contour

import (
	"errors"
	"fmt"
	"image"
)

// ErrNoOutline is returned when no foreground region of sufficient size
// exists in the mask.
var ErrNoOutline = errors.New("no outline found")

// foregroundLevel is the gray value above which a mask pixel counts as
// foreground. Masks are binary (0 or 255) so the midpoint is safe.
const foregroundLevel = 128

// FindOutline locates the pond boundary in a binary mask.
//
// Parameters:
//   - mask: Binary image where white pixels are foreground.
//   - minArea: Minimum foreground region size in pixels. Regions smaller than
//     this are treated as noise. Typical: 25-500 depending on image size.
//
// Returns:
//   - Contour: The boundary of the largest foreground region, ordered
//     clockwise in image coordinates, closed, with no duplicate consecutive
//     points.
//   - error: ErrNoOutline if no region meets minArea.
//
// # Algorithm
//
//  1. Connected-component labeling: group 8-connected foreground pixels with
//     an iterative flood fill
//  2. Region selection: keep only the largest region by pixel count
//     (single-pond assumption; islands and specks are discarded)
//  3. Boundary extraction: Moore-neighbor tracing around the selected region,
//     walking its border clockwise from the topmost-leftmost boundary pixel
//
// The mask is not modified.
func FindOutline(mask *image.Gray, minArea int) (Contour, error) {
	bounds := mask.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	labels := make([]int, w*h)
	label, size := largestRegion(mask, labels, w, h)
	if label == 0 || size < minArea {
		return nil, fmt.Errorf("%w: no foreground region of at least %d px", ErrNoOutline, minArea)
	}

	pts := traceBoundary(labels, w, h, label)
	if len(pts) == 0 {
		return nil, fmt.Errorf("%w: region boundary could not be traced", ErrNoOutline)
	}
	return pts, nil
}

// largestRegion labels all 8-connected foreground regions and returns the
// label and pixel count of the largest one. A zero label means the mask has
// no foreground at all.
func largestRegion(mask *image.Gray, labels []int, w, h int) (label, size int) {
	bounds := mask.Bounds()
	next := 0

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if labels[y*w+x] != 0 || mask.GrayAt(x+bounds.Min.X, y+bounds.Min.Y).Y < foregroundLevel {
				continue
			}
			next++
			n := floodFill(mask, labels, w, h, x, y, next)
			if n > size {
				label, size = next, n
			}
		}
	}
	return label, size
}

// floodFill labels the 8-connected foreground region containing (startX,
// startY) and returns its pixel count. It is stack-based rather than
// recursive so large ponds cannot overflow the call stack.
func floodFill(mask *image.Gray, labels []int, w, h, startX, startY, label int) int {
	bounds := mask.Bounds()
	stack := []Point{{X: startX, Y: startY}}
	count := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		if labels[p.Y*w+p.X] != 0 {
			continue
		}
		if mask.GrayAt(p.X+bounds.Min.X, p.Y+bounds.Min.Y).Y < foregroundLevel {
			continue
		}

		labels[p.Y*w+p.X] = label
		count++

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
	return count
}

// traceBoundary walks the border of the labeled region clockwise using
// Moore-neighbor tracing with Jacob's stopping criterion (terminate when the
// start pixel is re-entered from the original backtrack direction).
func traceBoundary(labels []int, w, h, label int) Contour {
	isLabel := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return labels[y*w+x] == label
	}

	// The topmost-leftmost region pixel is always a boundary pixel, and its
	// left neighbor is guaranteed to be outside the region.
	sx, sy := -1, -1
	for y := 0; y < h && sx < 0; y++ {
		for x := 0; x < w; x++ {
			if isLabel(x, y) {
				sx, sy = x, y
				break
			}
		}
	}
	if sx < 0 {
		return nil
	}

	// 8-neighborhood in clockwise order: E, SE, S, SW, W, NW, N, NE.
	ndx := [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	ndy := [8]int{0, 1, 1, 1, 0, -1, -1, -1}
	dirIndex := func(dx, dy int) int {
		for i := 0; i < 8; i++ {
			if ndx[i] == dx && ndy[i] == dy {
				return i
			}
		}
		return 0
	}

	pts := Contour{{X: sx, Y: sy}}
	cx, cy := sx, sy
	bx, by := sx-1, sy
	startBx, startBy := bx, by

	// The trace visits each boundary pixel at most a constant number of
	// times; the step bound guards against pathological masks.
	maxSteps := 4*w*h + 8
	for steps := 0; steps < maxSteps; steps++ {
		// Scan the Moore neighborhood clockwise starting just after the
		// backtrack direction.
		start := (dirIndex(bx-cx, by-cy) + 1) % 8
		nx, ny := -1, -1
		for k := 0; k < 8; k++ {
			i := (start + k) % 8
			tx, ty := cx+ndx[i], cy+ndy[i]
			if isLabel(tx, ty) {
				nx, ny = tx, ty
				break
			}
			bx, by = tx, ty
		}
		if nx < 0 {
			// Isolated pixel: the region has no neighbors.
			break
		}

		// bx,by already holds the last background cell scanned before the
		// neighbor was found, which is the backtrack for the next step.
		cx, cy = nx, ny
		if cx == sx && cy == sy && bx == startBx && by == startBy {
			break
		}

		last := pts[len(pts)-1]
		if last.X != cx || last.Y != cy {
			pts = append(pts, Point{X: cx, Y: cy})
		}
	}

	// Drop a duplicated closing point so the polygon is implicitly closed.
	if len(pts) >= 2 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	return pts
}
