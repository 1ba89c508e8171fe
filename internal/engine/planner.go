// Package engine plans a job: it resolves each path's machining data
// against the application defaults and runs the toolpath pipeline for every
// cuttable path.
package engine

import (
	"fmt"

	"github.com/piwi3910/ShaperCut/internal/dimension"
	"github.com/piwi3910/ShaperCut/internal/model"
	"github.com/piwi3910/ShaperCut/internal/toolpath"
)

// Planner runs the toolpath pipeline over whole jobs.
type Planner struct {
	Config model.AppConfig
}

func New(config model.AppConfig) *Planner {
	return &Planner{Config: config}
}

// Entry is one planned path.
type Entry struct {
	Node   *model.Node
	Data   model.PathData // Effective data, defaults applied
	Path   toolpath.Path
	Result toolpath.Result
}

// Skipped records a node that produced no toolpath and why.
type Skipped struct {
	Node   *model.Node
	Reason string
}

// Plan is the outcome of planning a job.
type Plan struct {
	Job     model.Job
	Entries []Entry
	Skipped []Skipped
}

// Plan selects the paths of job and synthesizes each of them. Nodes that
// cannot be cut, have no geometry or carry unusable data are listed in
// Skipped instead of failing the plan.
func (p *Planner) Plan(job model.Job) Plan {
	plan := Plan{Job: job}
	sel := model.SelectPaths(job.Nodes)
	for _, n := range sel.Invalid {
		plan.Skipped = append(plan.Skipped, Skipped{Node: n, Reason: fmt.Sprintf("%s is not a cuttable path", n.Kind)})
	}

	defaults := p.Config.Defaults()
	var pending []Entry
	for i, n := range sel.Nodes {
		data := sel.Data[i].Inherit(defaults)
		if len(n.Outline) == 0 {
			plan.Skipped = append(plan.Skipped, Skipped{Node: n, Reason: "no geometry"})
			continue
		}
		if data.CutType == "" {
			plan.Skipped = append(plan.Skipped, Skipped{Node: n, Reason: "no cut type"})
			continue
		}
		bit, err := bitDiameter(data, job.Units)
		if err != nil {
			plan.Skipped = append(plan.Skipped, Skipped{Node: n, Reason: err.Error()})
			continue
		}
		pending = append(pending, Entry{
			Node: n,
			Data: data,
			Path: toolpath.Path{
				ID:          n.ID,
				Points:      n.Outline,
				Closed:      n.Closed,
				CutType:     data.CutType,
				BitDiameter: bit,
			},
		})
	}

	paths := make([]toolpath.Path, len(pending))
	for i, e := range pending {
		paths[i] = e.Path
	}
	results, errs := toolpath.SynthesizeEach(paths, toolpath.OptionsFromConfig(p.Config))
	for i, e := range pending {
		if errs[i] != nil {
			plan.Skipped = append(plan.Skipped, Skipped{Node: e.Node, Reason: errs[i].Error()})
			continue
		}
		e.Result = results[i]
		plan.Entries = append(plan.Entries, e)
	}
	return plan
}

// bitDiameter returns the bit diameter of data in units. Paths that do not
// cut need no bit.
func bitDiameter(data model.PathData, units dimension.Unit) (float64, error) {
	if !data.CutType.IsCut() {
		return 0, nil
	}
	if data.BitDiameter == "" {
		return 0, fmt.Errorf("no bit diameter for %s cut", data.CutType)
	}
	d, err := dimension.ParseRealString(data.BitDiameter)
	if err != nil {
		return 0, err
	}
	return dimension.Convert(d, units).Scalar, nil
}

// Computed returns the computed paths keyed by path ID.
func (p Plan) Computed() map[string][]toolpath.ComputedPath {
	out := make(map[string][]toolpath.ComputedPath, len(p.Entries))
	for _, e := range p.Entries {
		out[e.Node.ID] = e.Result.Paths
	}
	return out
}

// Summary holds totals over a plan, in job units.
type Summary struct {
	Paths       int
	Skipped     int
	ByCutType   map[model.CutType]int
	CutLength   float64
	RemovedArea float64
	Collapsed   int // Cutting paths whose contour vanished, usually a bit too wide for the shape
}

// Summary totals the plan.
func (p Plan) Summary() Summary {
	s := Summary{
		Paths:     len(p.Entries),
		Skipped:   len(p.Skipped),
		ByCutType: map[model.CutType]int{},
	}
	for _, e := range p.Entries {
		s.ByCutType[e.Data.CutType]++
		s.CutLength += e.Result.CutLength
		s.RemovedArea += e.Result.RemovedArea
		if e.Data.CutType.IsCut() && len(e.Result.Contour) == 0 {
			s.Collapsed++
		}
	}
	return s
}
