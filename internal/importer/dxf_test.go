package importer

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/piwi3910/ShaperCut/internal/model"
)

func TestChainSegmentsClosedOutOfOrder(t *testing.T) {
	segs := []segment{
		{start: model.Point2D{X: 10, Y: 10}, end: model.Point2D{X: 0, Y: 10}},
		{start: model.Point2D{X: 0, Y: 0}, end: model.Point2D{X: 10, Y: 0}},
		{start: model.Point2D{X: 0, Y: 10}, end: model.Point2D{X: 0, Y: 0}},
		{start: model.Point2D{X: 10, Y: 10}, end: model.Point2D{X: 10, Y: 0}},
	}
	shapes := chainSegments(segs, chainTolerance)
	require.Len(t, shapes, 1)
	assert.True(t, shapes[0].closed)
	assert.Len(t, shapes[0].outline, 4)
	assert.InDelta(t, 100, shapes[0].outline.Area(), 1e-9)
}

func TestChainSegmentsOpen(t *testing.T) {
	segs := []segment{
		{start: model.Point2D{X: 5, Y: 0}, end: model.Point2D{X: 5, Y: 5}},
		{start: model.Point2D{X: 0, Y: 0}, end: model.Point2D{X: 5, Y: 0}},
		{start: model.Point2D{X: 20, Y: 20}, end: model.Point2D{X: 30, Y: 20}},
	}
	shapes := chainSegments(segs, chainTolerance)
	require.Len(t, shapes, 2)
	for _, s := range shapes {
		assert.False(t, s.closed)
	}
	lengths := []int{len(shapes[0].outline), len(shapes[1].outline)}
	assert.ElementsMatch(t, []int{3, 2}, lengths)
}

func TestBulgeArcPointsSemicircle(t *testing.T) {
	pts := bulgeArcPoints(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 2, Y: 0}, 1, 32)
	require.Len(t, pts, 33)
	for _, p := range pts {
		assert.InDelta(t, 1, math.Hypot(p.X-1, p.Y), 1e-9)
	}
	// Positive bulge sweeps counter-clockwise, below the chord here
	assert.InDelta(t, 1, pts[16].X, 1e-9)
	assert.InDelta(t, -1, pts[16].Y, 1e-9)
	assert.Equal(t, model.Point2D{X: 2, Y: 0}, pts[32])

	pts = bulgeArcPoints(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 2, Y: 0}, -1, 32)
	assert.InDelta(t, 1, pts[16].Y, 1e-9)
}

func TestFlipY(t *testing.T) {
	got := flipY(model.Outline{{X: 1, Y: 0}, {X: 2, Y: 10}}, 10)
	assert.Equal(t, model.Outline{{X: 1, Y: 10}, {X: 2, Y: 0}}, got)
}

func TestImportDXF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drawing.dxf")

	d := dxf.NewDrawing()
	d.AddLayer("Pocket", color.Red, dxf.DefaultLineType, true)
	d.Circle(50, 50, 0, 10)
	d.AddLayer("Sketch", dxf.DefaultColor, dxf.DefaultLineType, true)
	d.Line(0, 0, 0, 100, 0, 0)
	d.Line(100, 0, 0, 100, 100, 0)
	require.NoError(t, d.SaveAs(path))

	result := ImportDXF(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Nodes, 2)

	pocket := result.Nodes[0]
	assert.Equal(t, "Pocket", pocket.Name)
	assert.Equal(t, model.NodeGroup, pocket.Kind)
	require.Len(t, pocket.Children, 1)
	circle := pocket.Children[0]
	assert.Equal(t, model.NodeEllipse, circle.Kind)
	assert.True(t, circle.Closed)
	assert.Equal(t, model.CutPocket, circle.Data.CutType)

	sketch := result.Nodes[1]
	require.Len(t, sketch.Children, 1)
	line := sketch.Children[0]
	assert.False(t, line.Closed)
	assert.Len(t, line.Outline, 3)
	assert.Empty(t, line.Data.CutType)

	sel := model.SelectPaths(result.Nodes)
	assert.Len(t, sel.Nodes, 2)
	assert.Empty(t, sel.Invalid)
}

func TestImportDXFMissingFile(t *testing.T) {
	result := ImportDXF("/nonexistent/drawing.dxf")
	assert.NotEmpty(t, result.Errors)
}
