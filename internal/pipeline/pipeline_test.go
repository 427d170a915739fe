package pipeline

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/hydrolab/pondtrace/internal/config"
	"github.com/hydrolab/pondtrace/internal/contour"
	"github.com/hydrolab/pondtrace/internal/geometry"
)

// writeSceneImage writes a PNG with a uniform background and an optional
// darker rectangle standing in for the pond.
func writeSceneImage(t *testing.T, width, height int, bg, fg uint8, pond image.Rectangle) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := bg
			if image.Pt(x, y).In(pond) {
				v = fg
			}
			img.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "scene.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// testConfig builds a config for a 200x200 synthetic scene with a
// 0.5 m/pixel scale and gentle preprocessing suited to noise-free images.
func testConfig(t *testing.T, inputPath string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.InputPath = inputPath
	cfg.OutputPath = filepath.Join(t.TempDir(), "figure.png")
	cfg.ScaleBarPixels = 200
	cfg.ScaleBarMeters = 100
	cfg.Threshold = 0 // Otsu
	cfg.BlurRadius = 1
	cfg.MorphRadius = 1
	return cfg
}

func TestRun_SquarePondArea(t *testing.T) {
	pond := image.Rect(50, 50, 150, 150)
	path := writeSceneImage(t, 200, 200, 220, 30, pond)
	cfg := testConfig(t, path)

	result, err := Run(cfg, zerolog.Nop())
	require.NoError(t, err)

	// 100 px side at 0.5 m/px is a 50 m square: 2500 m², with a band for
	// smoothing-induced corner rounding and threshold placement.
	require.InEpsilon(t, 2500.0, result.AreaSquareMeters, 0.05)
	require.InEpsilon(t, 50.0, result.WidthMeters, 0.05)
	require.InEpsilon(t, 50.0, result.HeightMeters, 0.05)
	require.Equal(t, 0.5, result.MetersPerPixel)
	require.GreaterOrEqual(t, result.CurvePoints, 500)

	f, err := os.Open(result.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	_, err = png.Decode(f)
	require.NoError(t, err)
}

func TestRun_UniformImageFails(t *testing.T) {
	path := writeSceneImage(t, 120, 120, 255, 255, image.Rectangle{})
	cfg := testConfig(t, path)

	_, err := Run(cfg, zerolog.Nop())
	require.ErrorIs(t, err, contour.ErrNoOutline)

	_, statErr := os.Stat(cfg.OutputPath)
	require.True(t, os.IsNotExist(statErr), "no output file on failure")
}

func TestRun_InvalidScaleFailsBeforeAnyWork(t *testing.T) {
	cfg := testConfig(t, "does-not-exist.png")
	cfg.ScaleBarPixels = 0

	_, err := Run(cfg, zerolog.Nop())
	require.ErrorIs(t, err, geometry.ErrInvalidScale)
}

func TestRun_MaskOutput(t *testing.T) {
	pond := image.Rect(40, 40, 160, 160)
	path := writeSceneImage(t, 200, 200, 220, 30, pond)
	cfg := testConfig(t, path)
	cfg.MaskPath = filepath.Join(t.TempDir(), "mask.png")

	_, err := Run(cfg, zerolog.Nop())
	require.NoError(t, err)

	_, statErr := os.Stat(cfg.MaskPath)
	require.NoError(t, statErr)
}

func TestRun_ROI(t *testing.T) {
	// Without the ROI the larger pond wins; cropping to the right half
	// restricts detection to the smaller one.
	img := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	big := image.Rect(10, 10, 90, 90)
	small := image.Rect(130, 130, 170, 170)
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			v := uint8(220)
			if image.Pt(x, y).In(big) || image.Pt(x, y).In(small) {
				v = 30
			}
			img.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "two-ponds.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	cfg := testConfig(t, path)
	cfg.ROI = image.Rect(100, 100, 200, 200)

	result, err := Run(cfg, zerolog.Nop())
	require.NoError(t, err)

	// 40 px side at 0.5 m/px: 400 m².
	require.InEpsilon(t, 400.0, result.AreaSquareMeters, 0.08)
}

func TestRun_MissingInput(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "absent.png"))
	_, err := Run(cfg, zerolog.Nop())
	require.Error(t, err)
}
