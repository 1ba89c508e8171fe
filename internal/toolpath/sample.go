package toolpath

import (
	"math"

	"github.com/piwi3910/ShaperCut/internal/model"
)

// Sample resamples points at a fixed arc-length step, starting at the first
// point. Closed paths include the edge back to the first point; open paths
// keep their final point. With a non-positive step or fewer than two points
// the input is returned as a copy.
func Sample(points []model.Point2D, step float64, closed bool) []model.Point2D {
	if step <= 0 || len(points) < 2 {
		return append([]model.Point2D(nil), points...)
	}
	n := len(points)
	edges := n - 1
	if closed {
		edges = n
	}

	var out []model.Point2D
	next := 0.0 // distance of the next sample from the current edge start
	for i := 0; i < edges; i++ {
		a, b := points[i], points[(i+1)%n]
		length := math.Hypot(b.X-a.X, b.Y-a.Y)
		for next < length {
			t := next / length
			out = append(out, model.Point2D{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t})
			next += step
		}
		next -= length
	}
	if !closed {
		last := points[n-1]
		if len(out) == 0 || out[len(out)-1] != last {
			out = append(out, last)
		}
	}
	return out
}
