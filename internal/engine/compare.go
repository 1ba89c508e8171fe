package engine

import (
	"github.com/piwi3910/ShaperCut/internal/dimension"
	"github.com/piwi3910/ShaperCut/internal/model"
)

// BitComparison holds the plan and its totals when every cutting path uses
// one bit.
type BitComparison struct {
	Bit     model.BitProfile
	Plan    Plan
	Summary Summary
}

// CompareBits plans job once per bit, overriding the bit diameter of every
// path, so the effect of a bit choice on cut length, removed area and
// collapsed paths can be compared side by side. Results follow the order
// of bits.
func CompareBits(config model.AppConfig, job model.Job, bits []model.BitProfile) []BitComparison {
	results := make([]BitComparison, 0, len(bits))
	planner := New(config)

	for _, bit := range bits {
		plan := planner.Plan(withBit(job, bit.Diameter))
		results = append(results, BitComparison{
			Bit:     bit,
			Plan:    plan,
			Summary: plan.Summary(),
		})
	}

	return results
}

// withBit returns a copy of job whose paths all use diameter. The original
// node tree is not modified.
func withBit(job model.Job, diameter dimension.RealString) model.Job {
	job.Nodes = copyNodes(job.Nodes, diameter)
	return job
}

func copyNodes(nodes []*model.Node, diameter dimension.RealString) []*model.Node {
	if nodes == nil {
		return nil
	}
	out := make([]*model.Node, len(nodes))
	for i, n := range nodes {
		c := *n
		if c.Kind.IsPathLeaf() {
			c.Data.BitDiameter = diameter
		}
		c.Children = copyNodes(n.Children, diameter)
		out[i] = &c
	}
	return out
}
