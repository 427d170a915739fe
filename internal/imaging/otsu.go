package imaging

import "image"

// OtsuLevel computes a global binarization threshold for a grayscale image
// using Otsu's method.
//
// The method picks the split that maximizes the between-class variance of
// the two pixel populations it separates, which is optimal for the bimodal
// histograms produced by a dark pond on a lighter background.
//
// Returns:
//   - uint8: The threshold level; pixels at or above it belong to the
//     foreground class, matching the comparison bild's segment.Threshold
//     performs. For an image with no contrast the maximum level is returned,
//     so only fully saturated pixels could count as foreground.
func OtsuLevel(g *image.Gray) uint8 {
	var hist [256]int
	total := 0
	for _, v := range g.Pix {
		hist[v]++
		total++
	}
	if total == 0 {
		return 255
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var (
		sumBg    float64
		weightBg int
		bestCut  = -1
		bestVar  = -1.0
	)
	// cut is the last gray value assigned to the background class.
	for cut := 0; cut < 256; cut++ {
		weightBg += hist[cut]
		if weightBg == 0 {
			continue
		}
		weightFg := total - weightBg
		if weightFg == 0 {
			break
		}

		sumBg += float64(cut) * float64(hist[cut])
		meanBg := sumBg / float64(weightBg)
		meanFg := (sum - sumBg) / float64(weightFg)

		diff := meanBg - meanFg
		between := float64(weightBg) * float64(weightFg) * diff * diff
		if between > bestVar {
			bestVar = between
			bestCut = cut
		}
	}
	if bestCut < 0 || bestCut >= 255 {
		return 255
	}
	return uint8(bestCut + 1)
}
