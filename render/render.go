// Package render draws analytics chart descriptors as standalone html pages.
package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"

	"github.com/Luismorlan/newsdash/analytics"
)

const (
	pageWidth  = "900px"
	pageHeight = "500px"
)

var wordCloudSizeRange = []float32{14, 80}

// Render writes chart as an html page to w.
func Render(chart *analytics.Chart, w io.Writer) error {
	if chart == nil {
		return errors.New("nil chart")
	}
	renderer, err := build(chart)
	if err != nil {
		return err
	}
	return errors.Wrapf(renderer.Render(w), "render %s chart", chart.Kind)
}

// RenderPage writes all charts into one html page titled title.
func RenderPage(title string, list []*analytics.Chart, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = title
	for _, chart := range list {
		if chart == nil {
			continue
		}
		renderer, err := build(chart)
		if err != nil {
			return err
		}
		page.AddCharts(renderer)
	}
	if len(page.Charts) == 0 {
		return errors.New("no chart to render")
	}
	return errors.Wrap(page.Render(w), "render chart page")
}

type renderer interface {
	components.Charter
	Render(w io.Writer) error
}

func build(chart *analytics.Chart) (renderer, error) {
	switch chart.Kind {
	case analytics.ChartPie:
		return pie(chart), nil
	case analytics.ChartBar:
		return bar(chart), nil
	case analytics.ChartLine:
		return line(chart), nil
	case analytics.ChartWordCloud:
		return wordCloud(chart), nil
	default:
		return nil, fmt.Errorf("unsupported chart kind %q", chart.Kind)
	}
}

func globalOpts(chart *analytics.Chart) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: chart.Title,
			Width:     pageWidth,
			Height:    pageHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: chart.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
	}
}

func pie(chart *analytics.Chart) *charts.Pie {
	c := charts.NewPie()
	c.SetGlobalOptions(globalOpts(chart)...)

	data := make([]opts.PieData, 0, len(chart.Points))
	for _, p := range chart.Points {
		d := opts.PieData{Name: p.Label, Value: p.Value}
		if color, ok := chart.Colors[p.Label]; ok && color != "" {
			d.ItemStyle = &opts.ItemStyle{Color: color}
		}
		data = append(data, d)
	}
	c.AddSeries(chart.Title, data,
		charts.WithLabelOpts(opts.Label{Show: true, Formatter: "{b}: {d}%"}))
	return c
}

// bar draws labels on the category axis, a horizontal bar swaps the axes.
func bar(chart *analytics.Chart) *charts.Bar {
	c := charts.NewBar()
	options := globalOpts(chart)
	options = append(options,
		charts.WithXAxisOpts(opts.XAxis{Name: chart.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: chart.YLabel}),
	)
	c.SetGlobalOptions(options...)

	data := make([]opts.BarData, 0, len(chart.Points))
	for _, p := range chart.Points {
		data = append(data, opts.BarData{Name: p.Label, Value: p.Value})
	}
	c.SetXAxis(chart.Labels()).AddSeries(chart.Title, data)
	if chart.Horizontal {
		c.XYReversal()
	}
	return c
}

func line(chart *analytics.Chart) *charts.Line {
	c := charts.NewLine()
	options := globalOpts(chart)
	options = append(options,
		charts.WithXAxisOpts(opts.XAxis{Name: chart.XLabel}),
		charts.WithYAxisOpts(opts.YAxis{Name: chart.YLabel}),
	)
	c.SetGlobalOptions(options...)

	data := make([]opts.LineData, 0, len(chart.Points))
	for _, p := range chart.Points {
		data = append(data, opts.LineData{Name: p.Label, Value: p.Value})
	}
	c.SetXAxis(chart.Labels()).AddSeries(chart.Title, data)
	return c
}

func wordCloud(chart *analytics.Chart) *charts.WordCloud {
	c := charts.NewWordCloud()
	c.SetGlobalOptions(globalOpts(chart)...)

	data := make([]opts.WordCloudData, 0, len(chart.Points))
	for _, p := range chart.Points {
		data = append(data, opts.WordCloudData{Name: p.Label, Value: p.Value})
	}
	c.AddSeries(chart.Title, data,
		charts.WithWorldCloudChartOpts(opts.WordCloudChart{
			Shape:     "circle",
			SizeRange: wordCloudSizeRange,
		}))
	return c
}
