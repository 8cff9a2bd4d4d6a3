// Package chart renders the per-pollutant comparison figure: a 3×2 grid of
// bar charts, one per pollutant, each overlaid with the mean and a ±1
// standard deviation band.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/couchcryptid/air-quality-comparison/internal/domain"
)

const (
	// Title is drawn centred above the grid.
	Title = "Comparison of Air Quality Across Locations"

	gridRows = 3
	gridCols = 2
)

var (
	barColor  = color.RGBA{R: 135, G: 206, B: 235, A: 255} // skyblue
	meanColor = color.RGBA{R: 255, A: 255}
	bandColor = color.NRGBA{R: 255, G: 165, A: 51} // orange at 20% opacity
)

// Renderer draws the comparison figure onto a raster canvas.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// NewRenderer returns a renderer for a 15×12 inch figure at 300 DPI.
func NewRenderer() *Renderer {
	return &Renderer{Width: 15 * vg.Inch, Height: 12 * vg.Inch, DPI: 300}
}

// Render writes the figure for t and s to w as PNG.
func (r *Renderer) Render(w io.Writer, t domain.Table, s domain.Summary) error {
	if len(t.Rows) == 0 {
		return errors.New("render chart: table has no rows")
	}

	plots := make([][]*plot.Plot, gridRows)
	for i, p := range domain.Pollutants {
		pl, err := panel(t, p, s.Stats[i], s.Contributing > 0)
		if err != nil {
			return fmt.Errorf("render %s panel: %w", p, err)
		}
		plots[i/gridCols] = append(plots[i/gridCols], pl)
	}

	img := vgimg.NewWith(
		vgimg.UseWH(r.Width, r.Height),
		vgimg.UseDPI(r.DPI),
		vgimg.UseBackgroundColor(color.White),
	)
	dc := draw.New(img)

	titleHeight := r.drawTitle(&dc)
	body := draw.Crop(dc, 0, 0, 0, -titleHeight)

	pad := vg.Length(0.02) * r.Width
	tiles := draw.Tiles{
		Rows:      gridRows,
		Cols:      gridCols,
		PadX:      pad,
		PadY:      pad,
		PadTop:    pad / 2,
		PadBottom: pad / 2,
		PadLeft:   pad / 2,
		PadRight:  pad / 2,
	}
	canvases := plot.Align(plots, tiles, body)
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Save renders the figure and writes it to path, replacing any existing file.
func (r *Renderer) Save(path string, t domain.Table, s domain.Summary) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, t, s); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write chart: %w", err)
	}
	return buf.Bytes(), nil
}

// drawTitle writes the shared title at the top of dc and returns the height it occupies.
func (r *Renderer) drawTitle(dc *draw.Canvas) vg.Length {
	size := r.Height / 45
	sty := text.Style{
		Color:   color.Black,
		Font:    font.From(plot.DefaultFont, size),
		XAlign:  text.XCenter,
		YAlign:  text.YTop,
		Handler: plot.DefaultTextHandler,
	}
	margin := size / 2
	dc.FillText(sty, vg.Point{X: dc.Center().X, Y: dc.Max.Y - margin}, Title)
	return size + 2*margin
}

// panel builds the bar chart for one pollutant. The mean line and std band
// are drawn only when some row contributed to st.
func panel(t domain.Table, p domain.Pollutant, st domain.Stat, overlay bool) (*plot.Plot, error) {
	label := p.Label()
	n := float64(len(t.Rows))

	pl := plot.New()
	pl.Title.Text = label + " Levels"
	pl.X.Label.Text = "Locations"
	pl.Y.Label.Text = fmt.Sprintf("%s Concentration (%s)", label, domain.Unit)

	bars, err := plotter.NewBarChart(plotter.Values(t.Column(p.Index())), vg.Points(14))
	if err != nil {
		return nil, fmt.Errorf("bars: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0

	lo, hi := -0.5, n-0.5
	pl.Add(bars)
	if overlay {
		band, mean, err := statOverlay(st, lo, hi)
		if err != nil {
			return nil, err
		}
		pl.Add(band, mean)
		pl.Legend.Add("Mean "+label, mean)
		pl.Legend.Add("STD Range for "+label, band)
		pl.Legend.Top = true
	}

	pl.NominalX(t.Names()...)
	pl.X.Min, pl.X.Max = lo, hi
	pl.X.Tick.Label.Rotation = math.Pi / 4
	pl.X.Tick.Label.XAlign = text.XRight
	pl.X.Tick.Label.YAlign = text.YCenter

	// An all-zero column gives an empty Y range, which the layout cannot scale.
	if pl.Y.Max <= pl.Y.Min {
		pl.Y.Min, pl.Y.Max = 0, 1
	}

	return pl, nil
}

// statOverlay builds the ±1 std band and the dashed mean line spanning [lo, hi].
func statOverlay(st domain.Stat, lo, hi float64) (*plotter.Polygon, *plotter.Line, error) {
	band, err := plotter.NewPolygon(plotter.XYs{
		{X: lo, Y: st.Mean - st.StdDev},
		{X: hi, Y: st.Mean - st.StdDev},
		{X: hi, Y: st.Mean + st.StdDev},
		{X: lo, Y: st.Mean + st.StdDev},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("std band: %w", err)
	}
	band.Color = bandColor
	band.LineStyle.Width = 0

	mean, err := plotter.NewLine(plotter.XYs{{X: lo, Y: st.Mean}, {X: hi, Y: st.Mean}})
	if err != nil {
		return nil, nil, fmt.Errorf("mean line: %w", err)
	}
	mean.LineStyle.Color = meanColor
	mean.LineStyle.Width = vg.Points(1.5)
	mean.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}

	return band, mean, nil
}
