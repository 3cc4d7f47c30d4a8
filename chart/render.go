package chart

import (
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/bitmark-inc/covid-19/schema"
)

// Render - draw the overlay as a png, each chart is width/cols wide and
// width/cols/aspect high
func Render(w io.Writer, overlay schema.Overlay, width vg.Length) error {
	if len(overlay.Series) == 0 {
		return ErrNoSeries
	}

	cols := overlay.Cols
	if cols <= 0 {
		cols = 1
	}
	rows := (len(overlay.Series) + cols - 1) / cols

	plots := make([][]*plot.Plot, rows)
	for j := range plots {
		plots[j] = make([]*plot.Plot, cols)
	}

	var rowHeight vg.Length
	for i, s := range overlay.Series {
		p, err := newPlot(s, i)
		if err != nil {
			return err
		}
		plots[i/cols][i%cols] = p

		aspect := s.Aspect
		if aspect <= 0 {
			aspect = DefaultAspect
		}
		if h := width / vg.Length(cols) / vg.Length(aspect); h > rowHeight {
			rowHeight = h
		}
	}

	img := vgimg.New(width, rowHeight*vg.Length(rows))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      rows,
		Cols:      cols,
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}

	canvases := plot.Align(plots, tiles, dc)
	for j := range plots {
		for i, p := range plots[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}

	png := vgimg.PngCanvas{Canvas: img}
	_, err := png.WriteTo(w)
	return err
}

func newPlot(s schema.ChartSeries, index int) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = s.Label
	p.X.Label.Text = s.XTitle
	p.Y.Label.Text = s.YTitle
	p.X.Tick.Marker = plot.TimeTicks{Format: schema.DateLayout}
	p.Legend.Top = true
	p.Legend.Left = true

	if s.ShowGrid {
		p.Add(plotter.NewGrid())
	}

	style := plotter.DefaultLineStyle
	style.Color = plotutil.Color(index)
	style.Width = vg.Points(1.5)

	for _, segment := range segments(s) {
		l, err := plotter.NewLine(segment)
		if err != nil {
			return nil, err
		}
		l.LineStyle = style
		p.Add(l)
	}
	p.Legend.Add(s.Label, &plotter.Line{LineStyle: style})

	return p, nil
}

// segments splits the curve at undefined points
func segments(s schema.ChartSeries) []plotter.XYs {
	var result []plotter.XYs
	var current plotter.XYs
	for i, v := range s.Values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			if len(current) > 0 {
				result = append(result, current)
				current = nil
			}
			continue
		}
		current = append(current, plotter.XY{X: float64(s.Dates[i].Unix()), Y: v})
	}
	if len(current) > 0 {
		result = append(result, current)
	}
	return result
}
