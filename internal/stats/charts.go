package stats

import (
	"fmt"
	"strconv"
)

const (
	ChartPie  = "pie"
	ChartBar  = "bar"
	ChartLine = "line"

	// donutHole is the inner radius ratio used for the breakdown pies.
	donutHole = 0.3
)

// Chart is a renderer-agnostic chart configuration.
type Chart struct {
	Type   string    `json:"type"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label,omitempty"`
	YLabel string    `json:"y_label,omitempty"`
	Hole   float64   `json:"hole,omitempty"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Series []Series  `json:"series,omitempty"`
}

// Series is an extra named line sharing a chart's labels.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

func PieChart(title string, counts []Count) Chart {
	c := Chart{
		Type:   ChartPie,
		Title:  title,
		Hole:   donutHole,
		Labels: make([]string, 0, len(counts)),
		Values: make([]float64, 0, len(counts)),
	}
	for _, n := range counts {
		c.Labels = append(c.Labels, n.Label)
		c.Values = append(c.Values, float64(n.Count))
	}
	return c
}

// BooksPerYearChart has one bar per year; labels are the years themselves so
// the axis only shows whole years.
func BooksPerYearChart(years []YearCount) Chart {
	c := Chart{
		Type:   ChartBar,
		Title:  "Books Read by Year",
		XLabel: "Year",
		YLabel: "Number of Books",
		Labels: make([]string, 0, len(years)),
		Values: make([]float64, 0, len(years)),
	}
	for _, y := range years {
		c.Labels = append(c.Labels, strconv.Itoa(y.Year))
		c.Values = append(c.Values, float64(y.Count))
	}
	return c
}

// ReadingPaceChart plots books per month with the running total as a second
// series.
func ReadingPaceChart(points []PacePoint) Chart {
	c := Chart{
		Type:   ChartLine,
		Title:  "Reading Pace",
		XLabel: "Month",
		YLabel: "Books Finished",
		Labels: make([]string, 0, len(points)),
		Values: make([]float64, 0, len(points)),
	}
	cumulative := Series{Name: "Total", Values: make([]float64, 0, len(points))}
	for _, p := range points {
		c.Labels = append(c.Labels, fmt.Sprintf("%d-%02d", p.Year, p.Month))
		c.Values = append(c.Values, float64(p.Count))
		cumulative.Values = append(cumulative.Values, float64(p.Cumulative))
	}
	c.Series = []Series{cumulative}
	return c
}
