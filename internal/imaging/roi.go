package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CropROI extracts a rectangular region of interest from an image.
//
// Cropping before detection is useful when the photograph contains more than
// the pond: shorelines, legends, or the scale bar itself can otherwise
// produce spurious foreground regions.
//
// The region must be non-empty and lie fully inside the image bounds.
func CropROI(img image.Image, roi image.Rectangle) (image.Image, error) {
	bounds := img.Bounds()
	if !roi.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			roi.Min.X, roi.Min.Y, roi.Max.X, roi.Max.Y,
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if roi.Dx() <= 0 || roi.Dy() <= 0 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}
	return imaging.Crop(img, roi), nil
}
