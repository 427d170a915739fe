// Package config collects every recognized pipeline parameter in one
// explicit structure so runs and tests never require source edits.
package config

import (
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hydrolab/pondtrace/internal/geometry"
)

// Config holds all parameters for a single pipeline run.
type Config struct {
	// InputPath is the source photograph (PNG, JPEG, or GIF).
	InputPath string

	// OutputPath is where the rendered figure is written.
	OutputPath string

	// MaskPath, when set, receives the intermediate binary mask for
	// debugging threshold settings.
	MaskPath string

	// ScaleBarPixels is the measured pixel length of the reference object.
	// When zero, it is derived from ScaleBarFrom/ScaleBarTo instead.
	ScaleBarPixels float64

	// ScaleBarMeters is the real-world length of the reference object.
	ScaleBarMeters float64

	// ScaleBarFrom and ScaleBarTo are the pixel endpoints of the scale bar,
	// used when ScaleBarPixels is zero. HasScaleBarEndpoints marks them set,
	// since the origin is a legitimate endpoint.
	ScaleBarFrom         image.Point
	ScaleBarTo           image.Point
	HasScaleBarEndpoints bool

	// Threshold is the grayscale segmentation level (0-255); 0 selects
	// Otsu's method.
	Threshold int

	// DarkForeground marks the pond as darker than its surroundings.
	DarkForeground bool

	// BlurRadius and MorphRadius tune preprocessing, in pixels.
	BlurRadius  float64
	MorphRadius float64

	// MinRegionArea rejects foreground regions smaller than this many
	// pixels.
	MinRegionArea int

	// SimplifyFactor sets the polygon simplification tolerance as a fraction
	// of the contour perimeter.
	SimplifyFactor float64

	// SmoothPoints is the resampling density of the smoothed curve.
	SmoothPoints int

	// ROI restricts detection to a sub-rectangle of the image. The zero
	// rectangle disables cropping.
	ROI image.Rectangle

	// PlotScaleBarMeters is the length of the scale bar drawn on the figure;
	// 0 picks a round length automatically.
	PlotScaleBarMeters float64

	// PlotTitle is the figure heading.
	PlotTitle string

	// Verbose enables debug logging.
	Verbose bool
}

// Default returns a Config with the tuning values that work for typical
// aerial pond photographs, then overlays any PONDTRACE_* environment
// variables, loading a .env file first if one exists.
func Default() *Config {
	_ = godotenv.Load()

	return &Config{
		InputPath:          os.Getenv("PONDTRACE_INPUT"),
		OutputPath:         envString("PONDTRACE_OUTPUT", "pond-outline.png"),
		ScaleBarPixels:     envFloat("PONDTRACE_SCALE_BAR_PIXELS", 0),
		ScaleBarMeters:     envFloat("PONDTRACE_SCALE_BAR_METERS", 0),
		Threshold:          envInt("PONDTRACE_THRESHOLD", 80),
		DarkForeground:     true,
		BlurRadius:         4,
		MorphRadius:        3,
		MinRegionArea:      25,
		SimplifyFactor:     0.002,
		SmoothPoints:       500,
		PlotScaleBarMeters: 0,
		PlotTitle:          "Pond Outline",
	}
}

// PixelLength resolves the scale bar length in pixels, either from the
// explicit measurement or from the endpoint pair.
func (c *Config) PixelLength() float64 {
	if c.ScaleBarPixels > 0 || !c.HasScaleBarEndpoints {
		return c.ScaleBarPixels
	}
	return geometry.Distance(
		geometry.Point{X: float64(c.ScaleBarFrom.X), Y: float64(c.ScaleBarFrom.Y)},
		geometry.Point{X: float64(c.ScaleBarTo.X), Y: float64(c.ScaleBarTo.Y)},
	)
}

// MetersPerPixel derives the scale factor from the configured scale bar.
func (c *Config) MetersPerPixel() (float64, error) {
	return geometry.ScaleFactor(c.PixelLength(), c.ScaleBarMeters)
}

// Validate checks the configuration before the pipeline starts, so a bad
// scale measurement fails the run before any image work happens.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return fmt.Errorf("input image path is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output figure path is required")
	}
	if _, err := c.MetersPerPixel(); err != nil {
		return err
	}
	if c.Threshold < 0 || c.Threshold > 255 {
		return fmt.Errorf("threshold must be in 0-255, got %d", c.Threshold)
	}
	if c.SmoothPoints < 3 {
		return fmt.Errorf("smooth points must be at least 3, got %d", c.SmoothPoints)
	}
	return nil
}

// ParsePoint parses "x,y" into an image.Point.
func ParsePoint(s string) (image.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("expected \"x,y\", got %q", s)
	}
	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return image.Point{}, fmt.Errorf("expected integer coordinates, got %q", s)
	}
	return image.Point{X: x, Y: y}, nil
}

// ParseROI parses "x1,y1,x2,y2" into a rectangle.
func ParseROI(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("expected \"x1,y1,x2,y2\", got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("expected integer coordinates, got %q", s)
		}
		vals[i] = v
	}
	r := image.Rect(vals[0], vals[1], vals[2], vals[3])
	if r.Dx() <= 0 || r.Dy() <= 0 {
		return image.Rectangle{}, fmt.Errorf("region %q is empty", s)
	}
	return r, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
