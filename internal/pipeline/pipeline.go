// Package pipeline runs the full photograph-to-figure sequence: load,
// preprocess, detect, simplify, smooth, scale, and render.
package pipeline

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hydrolab/pondtrace/internal/config"
	"github.com/hydrolab/pondtrace/internal/contour"
	"github.com/hydrolab/pondtrace/internal/geometry"
	"github.com/hydrolab/pondtrace/internal/imaging"
	"github.com/hydrolab/pondtrace/internal/render"
)

// Result summarizes a successful run.
type Result struct {
	// AreaSquareMeters is the estimated pond surface area.
	AreaSquareMeters float64

	// WidthMeters and HeightMeters are the extents of the outline's bounding
	// box in real-world units.
	WidthMeters  float64
	HeightMeters float64

	// MetersPerPixel is the scale factor applied to the curve.
	MetersPerPixel float64

	// ContourPoints and CurvePoints count the traced boundary before
	// smoothing and the resampled curve after it.
	ContourPoints int
	CurvePoints   int

	// OutputPath is the rendered figure location.
	OutputPath string
}

// Run executes the pipeline described by cfg. Stages run strictly in
// sequence; the first failure aborts the run and no output file is written.
func Run(cfg *config.Config, log zerolog.Logger) (*Result, error) {
	start := time.Now()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	metersPerPixel, err := cfg.MetersPerPixel()
	if err != nil {
		return nil, fmt.Errorf("configuration: %w", err)
	}
	log.Debug().
		Float64("meters_per_pixel", metersPerPixel).
		Float64("scale_bar_pixels", cfg.PixelLength()).
		Float64("scale_bar_meters", cfg.ScaleBarMeters).
		Msg("scale calibrated")

	img, info, err := imaging.Load(cfg.InputPath)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	log.Info().
		Str("path", cfg.InputPath).
		Int("width", info.Width).
		Int("height", info.Height).
		Str("format", info.Format).
		Msg("image loaded")

	if !cfg.ROI.Empty() {
		img, err = imaging.CropROI(img, cfg.ROI)
		if err != nil {
			return nil, fmt.Errorf("crop region of interest: %w", err)
		}
		log.Debug().Stringer("roi", cfg.ROI).Msg("cropped to region of interest")
	}

	mask := imaging.Preprocess(img, imaging.PreprocessOptions{
		BlurRadius:     cfg.BlurRadius,
		Threshold:      uint8(cfg.Threshold),
		DarkForeground: cfg.DarkForeground,
		MorphRadius:    cfg.MorphRadius,
	})
	if cfg.MaskPath != "" {
		if err := imaging.SaveMask(mask, cfg.MaskPath); err != nil {
			return nil, fmt.Errorf("save mask: %w", err)
		}
		log.Debug().Str("path", cfg.MaskPath).Msg("mask written")
	}

	outline, err := contour.FindOutline(mask, cfg.MinRegionArea)
	if err != nil {
		return nil, fmt.Errorf("detect outline: %w", err)
	}
	simplified := contour.Simplify(outline, cfg.SimplifyFactor*outline.Perimeter())
	log.Info().
		Int("traced_points", len(outline)).
		Int("simplified_points", len(simplified)).
		Msg("outline detected")

	curve, err := geometry.Smooth(toCurve(simplified), cfg.SmoothPoints)
	if err != nil {
		return nil, fmt.Errorf("smooth outline: %w", err)
	}

	scaled, err := geometry.Scale(curve, metersPerPixel)
	if err != nil {
		return nil, fmt.Errorf("scale outline: %w", err)
	}
	area := geometry.Area(scaled)
	min, max := geometry.Bounds(scaled)
	log.Info().
		Float64("area_m2", area).
		Float64("width_m", max.X-min.X).
		Float64("height_m", max.Y-min.Y).
		Msg("area estimated")

	if err := render.Render(scaled, area, render.Options{
		Title:          cfg.PlotTitle,
		ScaleBarMeters: cfg.PlotScaleBarMeters,
	}, cfg.OutputPath); err != nil {
		return nil, fmt.Errorf("render figure: %w", err)
	}
	log.Info().
		Str("path", cfg.OutputPath).
		Dur("elapsed", time.Since(start)).
		Msg("figure rendered")

	return &Result{
		AreaSquareMeters: area,
		WidthMeters:      max.X - min.X,
		HeightMeters:     max.Y - min.Y,
		MetersPerPixel:   metersPerPixel,
		ContourPoints:    len(outline),
		CurvePoints:      len(curve),
		OutputPath:       cfg.OutputPath,
	}, nil
}

// toCurve converts integer pixel coordinates to the float representation the
// smoother works in.
func toCurve(c contour.Contour) geometry.Curve {
	out := make(geometry.Curve, len(c))
	for i, p := range c {
		out[i] = geometry.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}
