package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ShaperCut/internal/dimension"
	"github.com/piwi3910/ShaperCut/internal/engine"
	"github.com/piwi3910/ShaperCut/internal/model"
)

func TestCollectLabelInfos(t *testing.T) {
	plan := buildTestPlan(t)
	labels := CollectLabelInfos(plan)
	require.Len(t, labels, 2)

	panel := labels[0]
	assert.Equal(t, "outer", panel.PathID)
	assert.Equal(t, "Panel", panel.Name)
	assert.Equal(t, plan.Job.ID, panel.JobID)
	assert.Equal(t, model.CutOutside, panel.CutType)
	assert.Equal(t, "15 mm", panel.CutDepth)
	assert.Equal(t, dimension.Millimeter, panel.Units)
	assert.InDelta(t, 100, panel.Width, 1e-9)
	assert.InDelta(t, 80, panel.Height, 1e-9)

	assert.Equal(t, "hole", labels[1].PathID)
}

func TestLabelInfoJSON(t *testing.T) {
	data, err := json.Marshal(CollectLabelInfos(buildTestPlan(t))[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cut_type":"outside"`)
	assert.Contains(t, string(data), `"path":"outer"`)
}

func TestWriteLabels(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteLabels(&buf, buildTestPlan(t)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteLabelsNoCuts(t *testing.T) {
	job := model.NewJob("guides", dimension.Millimeter)
	job.Nodes = []*model.Node{
		{ID: "g", Kind: model.NodeLine, Outline: model.Outline{{X: 0, Y: 0}, {X: 10, Y: 0}},
			Data: model.PathData{CutType: model.CutGuide}},
	}
	plan := engine.New(model.DefaultAppConfig()).Plan(job)
	var buf bytes.Buffer
	assert.Error(t, WriteLabels(&buf, plan))
}

func TestNewJobInfo(t *testing.T) {
	info := NewJobInfo(buildTestPlan(t))
	assert.Equal(t, "Coaster", info.Name)
	assert.Equal(t, 3, info.Paths)
	assert.Equal(t, 1, info.Skipped)
	assert.Equal(t, 1, info.ByCutType[model.CutPocket])
	assert.Positive(t, info.RemovedArea)
}
