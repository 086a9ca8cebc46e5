package analytics

import (
	"sort"
)

type ChartKind string

const (
	ChartPie       ChartKind = "pie"
	ChartBar       ChartKind = "bar"
	ChartLine      ChartKind = "line"
	ChartWordCloud ChartKind = "wordcloud"
)

// Point is one slice, bar, line vertex or word of a chart.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Chart describes what to draw, not how. It is rendered by the render
// package or by any client reading its json.
type Chart struct {
	Kind       ChartKind `json:"kind"`
	Title      string    `json:"title"`
	XLabel     string    `json:"x_label,omitempty"`
	YLabel     string    `json:"y_label,omitempty"`
	Horizontal bool      `json:"horizontal,omitempty"`
	Points     []Point   `json:"points"`
	// Colors maps a point label to a css color.
	Colors map[string]string `json:"colors,omitempty"`
}

func (c *Chart) Labels() []string {
	labels := make([]string, 0, len(c.Points))
	for _, p := range c.Points {
		labels = append(labels, p.Label)
	}
	return labels
}

// valueCounts counts each distinct value, most frequent first. Equal counts
// keep the order of first appearance.
func valueCounts(values []string) []Point {
	counts := map[string]int{}
	order := []string{}
	for _, v := range values {
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	points := make([]Point, 0, len(order))
	for _, v := range order {
		points = append(points, Point{Label: v, Value: float64(counts[v])})
	}
	return points
}

// sortedCounts counts each distinct value in ascending key order.
func sortedCounts(values []string) []Point {
	counts := map[string]int{}
	for _, v := range values {
		counts[v]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	points := make([]Point, 0, len(keys))
	for _, k := range keys {
		points = append(points, Point{Label: k, Value: float64(counts[k])})
	}
	return points
}

func head(points []Point, n int) []Point {
	if len(points) > n {
		return points[:n]
	}
	return points
}
