package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/ShaperCut/internal/dimension"
)

// Job is an imported drawing together with its machining data.
type Job struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Units     dimension.Unit `json:"units"` // Unit of every outline coordinate
	Frame     Frame          `json:"frame"`
	Nodes     []*Node        `json:"nodes"`
	CreatedAt time.Time      `json:"createdAt"`
}

// NewJob creates an empty job whose coordinates are in units.
func NewJob(name string, units dimension.Unit) Job {
	return Job{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Units:     units,
		Frame:     Frame{Data: FrameData{DefaultUnits: units}},
		CreatedAt: time.Now(),
	}
}

// Paths returns the cuttable paths of the job.
func (j *Job) Paths() []*Node {
	return SelectPaths(j.Nodes).Nodes
}

// FindNode returns the node with the given ID anywhere in the tree, or nil.
func (j *Job) FindNode(id string) *Node {
	var walk func([]*Node) *Node
	walk = func(nodes []*Node) *Node {
		for _, n := range nodes {
			if n.ID == id {
				return n
			}
			if found := walk(n.Children); found != nil {
				return found
			}
		}
		return nil
	}
	return walk(j.Nodes)
}

// Bounds returns the bounding box of every outline in the job.
func (j *Job) Bounds() (lo, hi Point2D, ok bool) {
	for _, n := range j.Paths() {
		if len(n.Outline) == 0 {
			continue
		}
		a, b := n.Outline.BoundingBox()
		if !ok {
			lo, hi, ok = a, b, true
			continue
		}
		lo.X, lo.Y = min(lo.X, a.X), min(lo.Y, a.Y)
		hi.X, hi.Y = max(hi.X, b.X), max(hi.Y, b.Y)
	}
	return lo, hi, ok
}

// FrameToBounds sizes the frame to the extents of the job's outlines, one
// frame pixel per job unit. It reports false for a job without geometry.
func (j *Job) FrameToBounds() bool {
	lo, hi, ok := j.Bounds()
	if !ok {
		return false
	}
	j.Frame.PixelWidth = hi.X - lo.X
	j.Frame.PixelHeight = hi.Y - lo.Y
	return true
}

// ScaleToFrame scales every outline about the origin so the frame spans its
// real-world width, and returns the factor applied. Afterwards the frame is
// one pixel per job unit again, so a second call applies a factor of 1.
func (j *Job) ScaleToFrame() (float64, error) {
	upp, err := j.Frame.UnitsPerPixel()
	if err != nil {
		return 0, err
	}
	factor := dimension.Convert(upp, j.Units).Scalar
	if !(factor > 0) {
		return 0, fmt.Errorf("frame %q: invalid scale %v", j.Frame.Name, factor)
	}
	var walk func([]*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			for i := range n.Outline {
				n.Outline[i].X *= factor
				n.Outline[i].Y *= factor
			}
			walk(n.Children)
		}
	}
	walk(j.Nodes)
	j.Frame.PixelWidth *= factor
	j.Frame.PixelHeight *= factor
	return factor, nil
}
