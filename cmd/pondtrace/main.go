// Command pondtrace converts a photograph of a pond into a scaled, smoothed
// outline figure with a computed surface area.
//
// The pixel-to-meter scale comes from a reference object of known length
// visible in the photograph: measure its pixel length (or its two endpoints)
// in any image viewer and pass it together with its real-world length.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/hydrolab/pondtrace/internal/config"
	"github.com/hydrolab/pondtrace/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg := config.Default()

	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.StringVar(&cfg.InputPath, "input", cfg.InputPath, "source photograph (png, jpeg, or gif)")
	flag.StringVar(&cfg.OutputPath, "output", cfg.OutputPath, "rendered figure path")
	flag.StringVar(&cfg.MaskPath, "mask-out", cfg.MaskPath, "optional path to write the intermediate binary mask")
	flag.Float64Var(&cfg.ScaleBarPixels, "scale-bar-pixels", cfg.ScaleBarPixels, "measured pixel length of the reference object")
	flag.Float64Var(&cfg.ScaleBarMeters, "scale-bar-meters", cfg.ScaleBarMeters, "real-world length of the reference object in meters")
	scaleBarFrom := flag.String("scale-bar-from", "", "scale bar start point \"x,y\" (alternative to -scale-bar-pixels)")
	scaleBarTo := flag.String("scale-bar-to", "", "scale bar end point \"x,y\"")
	flag.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "grayscale threshold 0-255; 0 selects Otsu's method")
	flag.BoolVar(&cfg.DarkForeground, "dark-foreground", cfg.DarkForeground, "pond is darker than its surroundings")
	flag.Float64Var(&cfg.BlurRadius, "blur-radius", cfg.BlurRadius, "Gaussian blur radius in pixels")
	flag.Float64Var(&cfg.MorphRadius, "morph-radius", cfg.MorphRadius, "morphological cleanup radius in pixels")
	flag.IntVar(&cfg.MinRegionArea, "min-region-area", cfg.MinRegionArea, "minimum foreground region size in pixels")
	flag.Float64Var(&cfg.SimplifyFactor, "simplify-factor", cfg.SimplifyFactor, "simplification tolerance as a fraction of the perimeter")
	flag.IntVar(&cfg.SmoothPoints, "smooth-points", cfg.SmoothPoints, "resampling density of the smoothed curve")
	roi := flag.String("roi", "", "restrict detection to \"x1,y1,x2,y2\"")
	flag.Float64Var(&cfg.PlotScaleBarMeters, "plot-scale-bar-meters", cfg.PlotScaleBarMeters, "length of the scale bar drawn on the figure; 0 picks automatically")
	flag.StringVar(&cfg.PlotTitle, "title", cfg.PlotTitle, "figure title")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logging")
	flag.Parse()

	if *showVersion {
		fmt.Printf("pondtrace %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()

	if *scaleBarFrom != "" || *scaleBarTo != "" {
		from, err := config.ParsePoint(*scaleBarFrom)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -scale-bar-from")
		}
		to, err := config.ParsePoint(*scaleBarTo)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -scale-bar-to")
		}
		cfg.ScaleBarFrom, cfg.ScaleBarTo = from, to
		cfg.HasScaleBarEndpoints = true
	}
	if *roi != "" {
		rect, err := config.ParseROI(*roi)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -roi")
		}
		cfg.ROI = rect
	}

	result, err := pipeline.Run(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}

	fmt.Printf("Surface area: %.0f m²\n", result.AreaSquareMeters)
	fmt.Printf("Extent: %.1f × %.1f m\n", result.WidthMeters, result.HeightMeters)
	fmt.Printf("Scale: 1 pixel = %.4f m\n", result.MetersPerPixel)
	fmt.Printf("Figure written to %s\n", result.OutputPath)
}
