// Package imaging loads pond photographs and reduces them to a binary
// foreground mask that the outline detector can trace.
package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Info contains metadata about a loaded image file.
type Info struct {
	// Width is the image width in pixels.
	Width int

	// Height is the image height in pixels.
	Height int

	// Format is the image format guessed from the file extension:
	// "png", "jpeg", "gif", or "unknown".
	Format string
}

// Load reads and decodes a raster image from disk.
//
// Parameters:
//   - path: Absolute or relative file path to the photograph. Supported
//     formats are PNG, JPEG, and GIF.
//
// Returns:
//   - image.Image: The decoded image. The concrete type depends on the image
//     format and color model (e.g., *image.NRGBA, *image.YCbCr).
//   - *Info: Dimensions and format metadata.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// JPEG photographs taken with a rotated camera carry an EXIF orientation tag;
// Load applies it so that pixel coordinates match what the user sees when
// measuring the scale bar in an image viewer.
func Load(path string) (image.Image, *Info, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open image: %w", err)
	}

	format := "unknown"
	switch filepath.Ext(path) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	bounds := img.Bounds()
	return img, &Info{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Format: format,
	}, nil
}

// SaveMask writes a binary mask to disk for inspection. The output format is
// chosen from the file extension, PNG being the sensible default.
func SaveMask(mask *image.Gray, path string) error {
	if err := imaging.Save(mask, path); err != nil {
		return fmt.Errorf("failed to save mask: %w", err)
	}
	return nil
}
