package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// NewLineChart builds an interactive calibration chart: a dashed ideal line
// and a solid observed line with a point per confidence level.
func NewLineChart(c Chart, subtitle string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Calibration chart",
			Width:     "900px",
			Height:    "600px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Calibration chart",
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Stated confidence (%)",
			Min:  AxisMin,
			Max:  AxisMax,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Actual % correct",
			Min:  c.YMin(),
			Max:  AxisMax,
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	ideal := make([]opts.LineData, 0, len(c.Ideal))
	for _, p := range c.Ideal {
		ideal = append(ideal, opts.LineData{Value: []interface{}{p.X, p.Y}})
	}

	observed := make([]opts.LineData, 0, len(c.Observed))
	for i, p := range c.Observed {
		observed = append(observed, opts.LineData{
			Name:  fmt.Sprintf("%d questions", c.Counts[i]),
			Value: []interface{}{p.X, p.Y},
		})
	}

	line.AddSeries("Perfect calibration", ideal,
		charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Width: 1}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
	)
	line.AddSeries("Your answers", observed,
		charts.WithLineStyleOpts(opts.LineStyle{Width: 2}),
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}),
	)
	return line
}

// RenderHTML writes a self-contained HTML page with the chart.
func RenderHTML(w io.Writer, c Chart, subtitle string) error {
	if err := NewLineChart(c, subtitle).Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
