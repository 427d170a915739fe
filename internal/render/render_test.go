package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hydrolab/pondtrace/internal/geometry"
)

func testCurve() geometry.Curve {
	return geometry.Curve{
		{X: 0, Y: 0},
		{X: 120, Y: 10},
		{X: 140, Y: 80},
		{X: 60, Y: 95},
		{X: 5, Y: 60},
	}
}

func TestRender_WritesDecodablePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.png")

	err := Render(testCurve(), geometry.Area(testCurve()), Options{Title: "Test Pond"}, path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Greater(t, img.Bounds().Dx(), 0)
}

func TestRender_CustomScaleBarAndColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.png")

	err := Render(testCurve(), 9000, Options{
		ScaleBarMeters: 25,
		FillHex:        "#A0D0F0",
		EdgeHex:        "#123456",
	}, path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestRender_TooFewPoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.png")
	err := Render(geometry.Curve{{X: 0, Y: 0}, {X: 1, Y: 1}}, 0, Options{}, path)
	require.Error(t, err)
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "no file should be written on failure")
}

func TestNiceLength(t *testing.T) {
	cases := map[float64]float64{
		0.7:  0.5,
		3:    2,
		47:   20,
		60:   50,
		130:  100,
		999:  500,
		2500: 2000,
	}
	for in, want := range cases {
		require.InDelta(t, want, niceLength(in), 1e-12, "niceLength(%v)", in)
	}
}
