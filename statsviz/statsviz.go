// Package statsviz renders a zx0.Stats value as charts, for offline
// inspection of a compression run's literal, offset, and match-length
// distributions. It is not on the compression hot path.
package statsviz

import (
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Summary is the subset of zx0.Stats needed to draw charts, duplicated here
// (rather than importing the zx0 package) to keep this package usable
// against any producer of the same shape of numbers, including future
// non-zx0 callers.
type Summary struct {
	MinLiterals, MaxLiterals int
	MeanLiterals             float64

	MinOffset, MaxOffset int
	MeanOffset            float64

	MinMatchLen, MaxMatchLen int
	MeanMatchLen             float64

	NumRepMatches int64
	Commands      int64
}

// RenderBars writes an SVG bar chart comparing min/mean/max for literals,
// offsets, and match lengths to w, grounded on the scatter/bar chart helpers
// this family of compressors uses for ad hoc run analysis.
func RenderBars(w io.Writer, s Summary) error {
	graph := chart.BarChart{
		Title: "zx0 block statistics",
		Bars: []chart.Value{
			{Label: "lit min", Value: float64(s.MinLiterals)},
			{Label: "lit mean", Value: s.MeanLiterals},
			{Label: "lit max", Value: float64(s.MaxLiterals)},
			{Label: "off min", Value: float64(s.MinOffset)},
			{Label: "off mean", Value: s.MeanOffset},
			{Label: "off max", Value: float64(s.MaxOffset)},
			{Label: "len min", Value: float64(s.MinMatchLen)},
			{Label: "len mean", Value: s.MeanMatchLen},
			{Label: "len max", Value: float64(s.MaxMatchLen)},
		},
	}
	return graph.Render(chart.SVG, w)
}

// RenderRepShare writes a pie chart of rep-matches vs. other commands.
func RenderRepShare(w io.Writer, s Summary) error {
	other := s.Commands - s.NumRepMatches
	if other < 0 {
		other = 0
	}
	graph := chart.PieChart{
		Title: "rep-match share",
		Values: []chart.Value{
			{Label: "rep", Value: float64(s.NumRepMatches)},
			{Label: "other", Value: float64(other)},
		},
	}
	return graph.Render(chart.SVG, w)
}
