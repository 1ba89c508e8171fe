package importer

import (
	"fmt"

	"github.com/piwi3910/ShaperCut/internal/model"
)

// ApplyAssignments writes each assignment's set fields onto the matching
// nodes of job. A node matches by ID first, then by name; matching a group
// applies the data to every path inside it. It returns the number of paths
// changed and a warning for every assignment that matched nothing.
func ApplyAssignments(job *model.Job, assignments []Assignment) (int, []string) {
	var warnings []string
	changed := 0
	for _, a := range assignments {
		targets := matchNodes(job, a.Path)
		if len(targets) == 0 {
			warnings = append(warnings, fmt.Sprintf("No path named '%s'", a.Path))
			continue
		}
		for _, n := range targets {
			for _, leaf := range model.SelectPaths([]*model.Node{n}).Nodes {
				leaf.Data = a.Data.Inherit(leaf.Data)
				changed++
			}
		}
	}
	return changed, warnings
}

func matchNodes(job *model.Job, key string) []*model.Node {
	if n := job.FindNode(key); n != nil {
		return []*model.Node{n}
	}
	var found []*model.Node
	var walk func([]*model.Node)
	walk = func(nodes []*model.Node) {
		for _, n := range nodes {
			if n.Name == key {
				found = append(found, n)
				continue
			}
			walk(n.Children)
		}
	}
	walk(job.Nodes)
	return found
}
