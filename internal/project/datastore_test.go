package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ShaperCut/internal/dimension"
	"github.com/piwi3910/ShaperCut/internal/model"
)

func TestJobDataNodesAreSeparate(t *testing.T) {
	d := NewJobData()
	d.Node("n1").Set(model.KeyCutType, "pocket")

	v, ok := d.Node("n1").Get(model.KeyCutType)
	assert.True(t, ok)
	assert.Equal(t, "pocket", v)

	_, ok = d.Node("other").Get(model.KeyCutType)
	assert.False(t, ok)
}

func TestReadPathDataClearsInvalidValues(t *testing.T) {
	d := NewJobData()
	s := d.Node("n1")
	s.Set(model.KeyCutType, "sideways")
	s.Set(model.KeyCutDepth, "0.5 in")
	s.Set(model.KeyBitDiameter, "wide")

	data, errs := d.ReadPathData("n1")
	assert.Len(t, errs, 2)
	assert.Equal(t, dimension.RealString("0.5 in"), data.CutDepth)
	assert.Empty(t, data.CutType)

	v, _ := s.Get(model.KeyCutType)
	assert.Empty(t, v)
	v, _ = s.Get(model.KeyBitDiameter)
	assert.Empty(t, v)
	v, _ = s.Get(model.KeyCutDepth)
	assert.Equal(t, "0.5 in", v)

	data, errs = d.ReadPathData("n1")
	assert.Empty(t, errs)
	assert.Equal(t, model.PathData{CutDepth: "0.5 in"}, data)
}

func TestReadFrameData(t *testing.T) {
	d := NewJobData()
	d.Node("frame").Set(model.KeyDefaultUnits, "cubits")
	d.Node("frame").Set(model.KeyWidth, "300 mm")

	data, errs := d.ReadFrameData("frame", dimension.Inch)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], dimension.ErrInvalidUnit)
	assert.Equal(t, dimension.Inch, data.DefaultUnits)
	assert.Equal(t, dimension.RealString("300 mm"), data.Width)
}

func TestCheckJobKeepsNodesApart(t *testing.T) {
	job := model.NewJob("dup", dimension.Millimeter)
	job.Nodes = []*model.Node{
		{ID: "x", Kind: model.NodeRectangle, Data: model.PathData{CutType: model.CutPocket}},
		{ID: "x", Kind: model.NodeRectangle, Data: model.PathData{CutDepth: "2 mm"}},
	}
	assert.Empty(t, CheckJob(&job))
	assert.Equal(t, model.PathData{CutType: model.CutPocket}, job.Nodes[0].Data)
	assert.Equal(t, model.PathData{CutDepth: "2 mm"}, job.Nodes[1].Data)
	assert.Equal(t, dimension.Millimeter, job.Frame.Data.DefaultUnits)
}
