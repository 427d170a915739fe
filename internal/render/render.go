// Package render draws the scaled pond outline as an annotated figure.
package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/hydrolab/pondtrace/internal/geometry"
)

// Default palette, chosen to read like a water surface on a survey sheet.
const (
	defaultFillHex  = "#87CEEB"
	defaultEdgeHex  = "#1E3F66"
	defaultInkHex   = "#2C3E50"
	defaultTitle    = "Pond Outline"
	marginFraction  = 0.12
	baseWidthInches = 10.0
)

// Options configures the rendered figure.
type Options struct {
	// Title is the figure heading. Empty selects a generic default.
	Title string

	// ScaleBarMeters is the length of the scale bar drawn inside the figure.
	// Zero picks a round length of roughly a quarter of the outline width.
	ScaleBarMeters float64

	// FillHex and EdgeHex override the polygon colors ("#RRGGBB").
	FillHex string
	EdgeHex string
}

// Render plots a real-world pond outline with axes in meters, a scale bar,
// and an annotation carrying the computed surface area, then writes the
// figure to path. The output format follows the file extension; gonum/plot
// supports png, pdf, svg, and others.
//
// Image rows grow downward while plot axes grow upward, so the curve is
// mirrored vertically before plotting; without this the pond would render
// upside down relative to the photograph.
func Render(curve geometry.Curve, areaSqMeters float64, opts Options, path string) error {
	if len(curve) < 3 {
		return fmt.Errorf("cannot render outline with %d points", len(curve))
	}

	min, max := geometry.Bounds(curve)
	xs := make(plotter.XYs, len(curve))
	for i, pt := range curve {
		xs[i] = plotter.XY{X: pt.X, Y: min.Y + max.Y - pt.Y}
	}

	fill := parseHex(opts.FillHex, defaultFillHex)
	edge := parseHex(opts.EdgeHex, defaultEdgeHex)
	ink := parseHex("", defaultInkHex)

	p := plot.New()
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	p.Title.Text = opts.Title
	p.X.Label.Text = "East-west distance (m)"
	p.Y.Label.Text = "North-south distance (m)"
	p.Add(plotter.NewGrid())

	poly, err := plotter.NewPolygon(xs)
	if err != nil {
		return fmt.Errorf("failed to build outline polygon: %w", err)
	}
	poly.Color = withAlpha(fill, 230)
	poly.LineStyle.Color = edge
	poly.LineStyle.Width = vg.Points(2.5)
	p.Add(poly)

	xSpan := max.X - min.X
	ySpan := max.Y - min.Y
	p.X.Min = min.X - xSpan*marginFraction
	p.X.Max = max.X + xSpan*marginFraction
	p.Y.Min = min.Y - ySpan*marginFraction
	p.Y.Max = max.Y + ySpan*marginFraction

	if err := addScaleBar(p, opts.ScaleBarMeters, ink); err != nil {
		return err
	}
	if err := addAnnotations(p, areaSqMeters, xSpan, ySpan); err != nil {
		return err
	}

	// Size the canvas to the data aspect ratio so one meter measures the
	// same along both axes.
	width := vg.Length(baseWidthInches) * vg.Inch
	ratio := (p.Y.Max - p.Y.Min) / (p.X.Max - p.X.Min)
	height := vg.Length(baseWidthInches*clamp(ratio, 0.25, 4)) * vg.Inch

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save figure: %w", err)
	}
	return nil
}

// addScaleBar draws a horizontal reference bar near the bottom-left corner
// with its length printed above it.
func addScaleBar(p *plot.Plot, meters float64, ink color.Color) error {
	xSpan := p.X.Max - p.X.Min
	ySpan := p.Y.Max - p.Y.Min
	if meters <= 0 {
		meters = niceLength(xSpan / 4)
	}

	x0 := p.X.Min + 0.06*xSpan
	y0 := p.Y.Min + 0.05*ySpan
	bar, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x0 + meters, Y: y0}})
	if err != nil {
		return fmt.Errorf("failed to build scale bar: %w", err)
	}
	bar.Color = ink
	bar.Width = vg.Points(4)
	p.Add(bar)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: x0 + meters/2, Y: y0 + 0.02*ySpan}},
		Labels: []string{fmt.Sprintf("%.0f m", meters)},
	})
	if err != nil {
		return fmt.Errorf("failed to build scale bar label: %w", err)
	}
	p.Add(labels)
	return nil
}

// addAnnotations prints the surface area and outline dimensions in the
// top-left corner of the figure.
func addAnnotations(p *plot.Plot, areaSqMeters, widthMeters, heightMeters float64) error {
	x := p.X.Min + 0.04*(p.X.Max-p.X.Min)
	yTop := p.Y.Max - 0.06*(p.Y.Max-p.Y.Min)
	yStep := 0.05 * (p.Y.Max - p.Y.Min)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: plotter.XYs{
			{X: x, Y: yTop},
			{X: x, Y: yTop - yStep},
		},
		Labels: []string{
			fmt.Sprintf("Surface area: %.0f m²", areaSqMeters),
			fmt.Sprintf("Extent: %.1f × %.1f m", widthMeters, heightMeters),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to build annotations: %w", err)
	}
	p.Add(labels)
	return nil
}

// niceLength rounds x down to a 1/2/5 × 10^k value, the usual scale bar
// lengths on survey maps.
func niceLength(x float64) float64 {
	if x <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(x)))
	switch {
	case x >= 5*mag:
		return 5 * mag
	case x >= 2*mag:
		return 2 * mag
	default:
		return mag
	}
}

// parseHex converts "#RRGGBB" to a color, falling back to fallbackHex on
// empty or malformed input.
func parseHex(hex, fallbackHex string) color.Color {
	if hex == "" {
		hex = fallbackHex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		c, _ = colorful.Hex(fallbackHex)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
