package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luismorlan/newsdash/analytics"
)

func TestRender(t *testing.T) {
	points := []analytics.Point{{Label: "alpha", Value: 3}, {Label: "beta", Value: 1}}
	tests := []struct {
		name  string
		chart analytics.Chart
		want  []string
	}{
		{
			name: "pie with colors",
			chart: analytics.Chart{
				Kind:   analytics.ChartPie,
				Title:  "Sentiment",
				Points: points,
				Colors: map[string]string{"alpha": "#2ecc71"},
			},
			want: []string{`"type":"pie"`, "#2ecc71"},
		},
		{
			name:  "bar",
			chart: analytics.Chart{Kind: analytics.ChartBar, Title: "Sources", XLabel: "Source", Points: points},
			want:  []string{`"type":"bar"`, "Source"},
		},
		{
			name:  "horizontal bar",
			chart: analytics.Chart{Kind: analytics.ChartBar, Title: "Trending", Horizontal: true, Points: points},
			want:  []string{`"type":"bar"`},
		},
		{
			name:  "line",
			chart: analytics.Chart{Kind: analytics.ChartLine, Title: "Timeline", Points: points},
			want:  []string{`"type":"line"`},
		},
		{
			name:  "word cloud",
			chart: analytics.Chart{Kind: analytics.ChartWordCloud, Title: "Words", Points: points},
			want:  []string{`"type":"wordCloud"`, "echarts-wordcloud.min.js"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&tc.chart, &buf))
			page := buf.String()
			assert.Contains(t, page, "<html>")
			assert.Contains(t, page, tc.chart.Title)
			assert.Contains(t, page, "alpha")
			assert.Contains(t, page, "beta")
			for _, w := range tc.want {
				assert.Contains(t, page, w)
			}
		})
	}
}

func TestRender_UnsupportedKind(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, Render(&analytics.Chart{Kind: "radar"}, &buf))
	require.Error(t, Render(nil, &buf))
	require.Zero(t, buf.Len())
}

func TestRenderPage(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPage("Reading patterns", []*analytics.Chart{
		{Kind: analytics.ChartBar, Title: "Hours", Points: []analytics.Point{{Label: "9", Value: 2}}},
		nil,
		{Kind: analytics.ChartPie, Title: "Categories", Points: []analytics.Point{{Label: "tech", Value: 1}}},
	}, &buf)
	require.NoError(t, err)
	page := buf.String()
	assert.Contains(t, page, "<title>Reading patterns</title>")
	assert.Contains(t, page, "Hours")
	assert.Contains(t, page, "Categories")
	assert.Contains(t, page, "tech")

	require.Error(t, RenderPage("empty", nil, &bytes.Buffer{}))
}
