// Package chart turns a calibration table into plot-ready series.
package chart

import (
	"github.com/calibrate-app/calibrate/internal/round"
	"github.com/calibrate-app/calibrate/internal/scoring"
)

// Point is one plotted coordinate, both axes in percent.
type Point struct {
	X float64
	Y float64
}

// Chart holds the two series drawn on the same axes.
type Chart struct {
	// Ideal is the perfect-calibration diagonal over every allowed level.
	Ideal []Point

	// Observed holds (confidence, accuracy) for each level actually used.
	Observed []Point

	// Counts holds the bucket size behind each Observed point.
	Counts []int
}

// Axis bounds used by every renderer.
const (
	AxisMin = 50.0
	AxisMax = 100.0
)

// Build converts a calibration table into chart series. An empty table
// still yields the full Ideal line.
func Build(buckets []scoring.Bucket) Chart {
	levels := round.Levels()
	c := Chart{
		Ideal:    make([]Point, 0, len(levels)),
		Observed: make([]Point, 0, len(buckets)),
		Counts:   make([]int, 0, len(buckets)),
	}
	for _, l := range levels {
		p := float64(l.Percent())
		c.Ideal = append(c.Ideal, Point{X: p, Y: p})
	}
	for _, b := range buckets {
		c.Observed = append(c.Observed, Point{
			X: float64(b.Confidence.Percent()),
			Y: b.Accuracy() * 100,
		})
		c.Counts = append(c.Counts, b.Count)
	}
	return c
}

// YMin returns the lower y bound that keeps every observed point visible:
// AxisMin unless some bucket scored below it.
func (c Chart) YMin() float64 {
	lo := AxisMin
	for _, p := range c.Observed {
		if p.Y < lo {
			lo = p.Y
		}
	}
	return lo
}
