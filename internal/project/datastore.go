package project

import (
	"fmt"

	"github.com/piwi3910/ShaperCut/internal/dimension"
	"github.com/piwi3910/ShaperCut/internal/model"
)

// frameID keys the job frame in a JobData.
const frameID = "#frame"

// JobData holds the machining data of a job as key/value stores, one per
// node ID, so saved values pass the same checks as typed ones.
type JobData struct {
	nodes map[string]dimension.MapStore
}

// NewJobData returns an empty JobData.
func NewJobData() *JobData {
	return &JobData{nodes: map[string]dimension.MapStore{}}
}

// Node returns the store for one node, creating it on first use.
func (d *JobData) Node(id string) dimension.Store {
	s, ok := d.nodes[id]
	if !ok {
		s = dimension.MapStore{}
		d.nodes[id] = s
	}
	return s
}

// ReadPathData loads the path data stored for id. Values that fail
// validation are cleared from the store and returned as field errors.
func (d *JobData) ReadPathData(id string) (model.PathData, []*model.FieldError) {
	s := d.Node(id)
	data, errs := model.LoadPathData(s)
	model.ClearFields(s, errs)
	return data, errs
}

// ReadFrameData loads the frame data stored for id, clearing invalid values.
func (d *JobData) ReadFrameData(id string, fallback dimension.Unit) (model.FrameData, []*model.FieldError) {
	s := d.Node(id)
	data, errs := model.LoadFrameData(s, fallback)
	model.ClearFields(s, errs)
	return data, errs
}

// CheckJob runs the frame and every node of job through a JobData and
// replaces their data with what survives validation. Cut type spellings
// are normalized. The returned errors name the node each bad value was
// dropped from.
func CheckJob(job *model.Job) []error {
	d := NewJobData()
	var problems []error
	report := func(id string, errs []*model.FieldError) {
		for _, e := range errs {
			problems = append(problems, fmt.Errorf("node %q: %w", id, e))
		}
	}

	job.Frame.Data.Save(d.Node(frameID))
	frame, errs := d.ReadFrameData(frameID, job.Units)
	job.Frame.Data = frame
	report("frame", errs)
	delete(d.nodes, frameID)

	var walk func([]*model.Node)
	walk = func(nodes []*model.Node) {
		for _, n := range nodes {
			n.Data.Save(d.Node(n.ID))
			data, errs := d.ReadPathData(n.ID)
			n.Data = data
			report(n.ID, errs)
			delete(d.nodes, n.ID)
			walk(n.Children)
		}
	}
	walk(job.Nodes)
	return problems
}
