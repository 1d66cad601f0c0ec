package report

import (
	"bytes"
	"golf-journey/internal/analytics"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	chartBackground = drawing.ColorFromHex("0f2419")
	chartText       = drawing.ColorFromHex("e8efe9")
	strokesLine     = drawing.ColorFromHex("5fb37d")
	puttsLine       = drawing.ColorFromHex("d4af37")
)

// RenderTrendChart draws strokes and putts per round as a PNG line chart.
// A trend with fewer than two distinct round times renders a placeholder.
func RenderTrendChart(trend *analytics.Trend) ([]byte, error) {
	if trend == nil || len(trend.Points) < 2 ||
		!trend.Points[0].StartTime.Before(trend.Points[len(trend.Points)-1].StartTime) {
		return renderPlaceholder("Not enough rounds for a trend")
	}

	xValues := make([]time.Time, len(trend.Points))
	strokes := make([]float64, len(trend.Points))
	putts := make([]float64, len(trend.Points))
	maxStrokes := 0.0
	for i, p := range trend.Points {
		xValues[i] = p.StartTime
		strokes[i] = float64(p.Strokes)
		putts[i] = float64(p.Putts)
		if strokes[i] > maxStrokes {
			maxStrokes = strokes[i]
		}
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: chartBackground,
			Padding:   chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		Canvas: chart.Style{FillColor: chartBackground},
		XAxis: chart.XAxis{
			Name:           "Round",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
			Style:          chart.Style{FontColor: chartText},
		},
		YAxis: chart.YAxis{
			Name:  "Strokes",
			Style: chart.Style{FontColor: chartText},
			Range: &chart.ContinuousRange{Min: 0, Max: maxStrokes + 1},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Strokes",
				XValues: xValues,
				YValues: strokes,
				Style:   chart.Style{StrokeColor: strokesLine, StrokeWidth: 2, DotWidth: 4, DotColor: strokesLine},
			},
			chart.TimeSeries{
				Name:    "Putts",
				XValues: xValues,
				YValues: putts,
				Style:   chart.Style{StrokeColor: puttsLine, StrokeWidth: 2, DotWidth: 4, DotColor: puttsLine},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// renderPlaceholder draws msg centered. go-chart refuses to render without a
// visible series, so a transparent one spans the canvas.
func renderPlaceholder(msg string) ([]byte, error) {
	graph := chart.Chart{
		Width:      400,
		Height:     200,
		Background: chart.Style{FillColor: chartBackground},
		Canvas:     chart.Style{FillColor: chartBackground},
		XAxis:      chart.XAxis{Style: chart.Hidden()},
		YAxis:      chart.YAxis{Style: chart.Hidden()},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 1},
				Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
			},
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(chartText)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				r.Text(msg, (cb.Width()-tb.Width())/2, (cb.Height()+tb.Height())/2)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
