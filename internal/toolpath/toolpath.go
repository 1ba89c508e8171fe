// Package toolpath turns a drawn path and its machining intent into the
// outline a designer sees and the region a router bit actually removes.
//
// The pipeline samples the path, scales it into integer space, removes
// self-intersections, moves it to the tool centerline for the cut type and
// sweeps the bit outline along that centerline.
package toolpath

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/ShaperCut/internal/clip"
	"github.com/piwi3910/ShaperCut/internal/model"
)

// ErrInvalidBitDiameter is returned for a cutting path without a positive
// bit diameter.
var ErrInvalidBitDiameter = errors.New("invalid bit diameter")

// Kind tells the two computed path variants apart.
type Kind string

const (
	KindCutPaths   Kind = "CUT_PATHS"
	KindDesignPath Kind = "DESIGN_PATH"
)

// ComputedPath is one renderable result of Synthesize. D is an SVG path
// string in the input's coordinate units. BitDiameter is only set on cut
// paths.
type ComputedPath struct {
	Kind        Kind          `json:"kind"`
	D           string        `json:"d"`
	CutType     model.CutType `json:"cutType"`
	BitDiameter float64       `json:"bitDiameter,omitempty"`
}

// Path is the engine input: flattened points, the cut type and the bit
// diameter in the same units as the points.
type Path struct {
	ID          string
	Points      []model.Point2D
	Closed      bool
	CutType     model.CutType
	BitDiameter float64
}

// Options tunes the pipeline.
type Options struct {
	SampleStep     float64 // Arc length between samples
	Scale          float64 // Factor applied before integer clipping
	CleanTolerance float64 // Vertex merge distance, in scaled units
	CircleSegments int     // Vertices of the bit outline
}

// DefaultOptions matches model.DefaultAppConfig.
func DefaultOptions() Options {
	return OptionsFromConfig(model.DefaultAppConfig())
}

// OptionsFromConfig derives engine options from the application config.
func OptionsFromConfig(c model.AppConfig) Options {
	return Options{
		SampleStep:     c.SampleStep,
		Scale:          c.ClipScale,
		CleanTolerance: c.CleanTolerance * c.ClipScale,
		CircleSegments: c.CircleSegments,
	}
}

// Result holds the computed paths together with the geometry they were
// serialized from, in input units.
type Result struct {
	Paths      []ComputedPath
	Design     []model.Outline
	Centerline []model.Outline
	Contour    []model.Outline

	CutLength   float64 // Distance the bit center travels
	RemovedArea float64 // Net area of the contour, holes subtracted
}

// Synthesize runs the toolpath pipeline for one path. A cut path is
// returned first, followed by the design path; guide paths only produce a
// design path. Degenerate geometry yields the placeholder "M0,0" rather
// than an error. Errors are only returned for an unknown cut type or a
// missing bit diameter.
func Synthesize(p Path, opts Options) (Result, error) {
	ct, err := model.ParseCutType(string(p.CutType))
	if err != nil || ct == "" {
		return Result{}, fmt.Errorf("path %q: %w", p.ID, model.ErrInvalidCutType)
	}
	p.CutType = ct
	if p.CutType.IsCut() && !(p.BitDiameter > 0) {
		return Result{}, fmt.Errorf("path %q: %w %v", p.ID, ErrInvalidBitDiameter, p.BitDiameter)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	log := Logger().With("path", p.ID, "cutType", string(p.CutType))

	closed := p.Closed || p.CutType.ForcesClosed()
	sampled := Sample(p.Points, opts.SampleStep, closed)
	scaled := toClip(sampled, opts.Scale)

	var design clip.Paths
	if closed {
		design = clip.Clean(clip.Simplify(clip.Paths{scaled}), opts.CleanTolerance)
	} else if line := clip.CleanPolyline(scaled, opts.CleanTolerance); line != nil {
		design = clip.Paths{line}
	}
	log.Debug("design cleaned", "points", len(sampled), "polygons", len(design))

	res := Result{Design: fromClip(design, opts.Scale)}
	designPath := ComputedPath{
		Kind:    KindDesignPath,
		D:       Serialize(design, opts.Scale, closed),
		CutType: p.CutType,
	}
	if !p.CutType.IsCut() {
		res.Paths = []ComputedPath{designPath}
		return res, nil
	}

	radius := p.BitDiameter / 2 * opts.Scale
	var centerline clip.Paths
	switch p.CutType {
	case model.CutOnline, model.CutPocket:
		centerline = design
	case model.CutInside:
		centerline = clip.Offset(design, -radius)
	case model.CutOutside:
		centerline = clip.Offset(design, radius)
	default:
		return Result{}, fmt.Errorf("path %q: %w %q", p.ID, model.ErrInvalidCutType, p.CutType)
	}
	log.Debug("centerline computed", "polygons", len(centerline))

	cutter := clip.Circle(radius, opts.CircleSegments)
	contour := clip.MinkowskiSum(cutter, centerline, closed, p.CutType == model.CutPocket)
	log.Debug("contour computed", "polygons", len(contour))

	res.Centerline = fromClip(centerline, opts.Scale)
	res.Contour = fromClip(contour, opts.Scale)
	for _, o := range res.Centerline {
		res.CutLength += o.Length(closed)
	}
	res.RemovedArea = clip.TotalArea(contour) / (opts.Scale * opts.Scale)
	res.Paths = []ComputedPath{
		{
			Kind:        KindCutPaths,
			D:           Serialize(contour, opts.Scale, true),
			CutType:     p.CutType,
			BitDiameter: p.BitDiameter,
		},
		designPath,
	}
	return res, nil
}

func toClip(points []model.Point2D, scale float64) clip.Path {
	out := make(clip.Path, len(points))
	for i, pt := range points {
		out[i] = clip.Point{X: int64(math.Round(pt.X * scale)), Y: int64(math.Round(pt.Y * scale))}
	}
	return out
}

func fromClip(ps clip.Paths, scale float64) []model.Outline {
	out := make([]model.Outline, len(ps))
	for i, p := range ps {
		o := make(model.Outline, len(p))
		for j, pt := range p {
			o[j] = model.Point2D{X: float64(pt.X) / scale, Y: float64(pt.Y) / scale}
		}
		out[i] = o
	}
	return out
}
