package clip

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(x0, y0, x1, y1 int64) Path {
	return Path{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

func TestAreaAndOrientation(t *testing.T) {
	sq := square(0, 0, 10, 10)
	assert.Equal(t, 100.0, Area(sq))
	assert.Equal(t, -100.0, Area(Reverse(sq)))
	assert.Equal(t, 0.0, Area(Path{{0, 0}, {1, 1}}))
}

func TestBounds(t *testing.T) {
	r, ok := Bounds(Paths{square(0, 0, 10, 10), square(-5, 3, 2, 20)})
	require.True(t, ok)
	assert.Equal(t, Rect{MinX: -5, MinY: 0, MaxX: 10, MaxY: 20}, r)

	_, ok = Bounds(Paths{{}})
	assert.False(t, ok)
}

func TestContains(t *testing.T) {
	sq := square(0, 0, 10, 10)
	assert.True(t, Contains(sq, Point{5, 5}))
	assert.False(t, Contains(sq, Point{15, 5}))
}

func TestOrientNestsHoles(t *testing.T) {
	outer := Reverse(square(0, 0, 100, 100))
	hole := square(25, 25, 75, 75)
	got := Orient(Paths{outer, hole, {{1, 1}}})
	require.Len(t, got, 2)
	assert.Positive(t, Area(got[0]))
	assert.Negative(t, Area(got[1]))
	assert.InDelta(t, 10000.0-2500.0, TotalArea(got), 1e-9)
}

func TestOrientTouchingPathsAreNotNested(t *testing.T) {
	got := Orient(Paths{square(0, 0, 10, 10), Reverse(square(10, 0, 20, 10))})
	require.Len(t, got, 2)
	assert.Positive(t, Area(got[0]))
	assert.Positive(t, Area(got[1]))
}

func TestCircle(t *testing.T) {
	c := Circle(50, 128)
	require.Len(t, c, 128)
	assert.Equal(t, Point{50, 0}, c[0])
	assert.Equal(t, Point{0, 50}, c[32])
	assert.Equal(t, Point{-50, 0}, c[64])
	assert.Positive(t, Area(c))
}

func TestSimplifyBowTie(t *testing.T) {
	bowTie := Path{{0, 0}, {10, 10}, {10, 0}, {0, 10}}
	got := Simplify(Paths{bowTie})
	require.NotEmpty(t, got)
	var area float64
	for _, p := range got {
		area += math.Abs(Area(p))
	}
	assert.InDelta(t, 50.0, area, 1e-9)
}

func TestSimplifyFixesOrientation(t *testing.T) {
	got := Simplify(Paths{Reverse(square(0, 0, 10, 10))})
	require.Len(t, got, 1)
	assert.InDelta(t, 100.0, Area(got[0]), 1e-9)
}

func TestSimplifyEvenOddNesting(t *testing.T) {
	// A square drawn inside another with the same winding becomes a hole.
	got := Simplify(Paths{square(0, 0, 30, 30), square(10, 10, 20, 20)})
	require.Len(t, got, 2)
	assert.InDelta(t, 900.0-100.0, TotalArea(got), 1e-9)
}

func TestSimplifyEmpty(t *testing.T) {
	assert.Empty(t, Simplify(nil))
	assert.Empty(t, Simplify(Paths{{{1, 1}}}))
}

func TestCleanPolygonRemovesCollinearVertices(t *testing.T) {
	p := Path{{0, 0}, {5, 0}, {10, 0}, {10, 10}, {0, 10}}
	assert.Equal(t, square(0, 0, 10, 10), CleanPolygon(p, 1))
}

func TestCleanPolygonMergesClosePoints(t *testing.T) {
	p := Path{{0, 0}, {100, 0}, {100, 1}, {100, 100}, {0, 100}}
	got := CleanPolygon(p, 1.5)
	assert.Len(t, got, 4)
}

func TestCleanPolygonCollapses(t *testing.T) {
	assert.Nil(t, CleanPolygon(nil, 1))
	assert.Nil(t, CleanPolygon(Path{{0, 0}, {10, 0}}, 1))
	assert.Nil(t, CleanPolygon(Path{{0, 0}, {1, 0}, {0, 1}}, 2))
	assert.Empty(t, Clean(Paths{{{0, 0}, {10, 0}}}, 1))
}

func TestCleanIsIdempotent(t *testing.T) {
	sampled := Paths{
		{{0, 0}, {10, 0}, {20, 0}, {30, 1}, {40, 0}, {40, 10}, {40, 20}, {40, 40}, {20, 40}, {0, 40}, {0, 20}},
		Circle(500, 128),
	}
	once := Clean(sampled, 1)
	twice := Clean(once, 1)
	require.Equal(t, len(once), len(twice))
	for i := range once {
		assert.InEpsilon(t, Area(once[i]), Area(twice[i]), 1e-3)
		r1, _ := Bounds(Paths{once[i]})
		r2, _ := Bounds(Paths{twice[i]})
		assert.InDelta(t, r1.MinX, r2.MinX, 2)
		assert.InDelta(t, r1.MinY, r2.MinY, 2)
		assert.InDelta(t, r1.MaxX, r2.MaxX, 2)
		assert.InDelta(t, r1.MaxY, r2.MaxY, 2)
	}
}

func TestSimplifyThenCleanIsIdempotent(t *testing.T) {
	bowTie := Path{{0, 0}, {400, 400}, {400, 0}, {200, 1}, {0, 400}}
	disc := Translate(Circle(300, 96), Point{X: 2000, Y: 2000})
	once := Clean(Simplify(Paths{bowTie, disc}), 1)
	twice := Clean(Simplify(once), 1)
	require.NotEmpty(t, once)
	require.Equal(t, len(once), len(twice))
	assert.InEpsilon(t, TotalArea(once), TotalArea(twice), 1e-3)
	r1, ok := Bounds(once)
	require.True(t, ok)
	r2, ok := Bounds(twice)
	require.True(t, ok)
	assert.InDelta(t, r1.MinX, r2.MinX, 2)
	assert.InDelta(t, r1.MinY, r2.MinY, 2)
	assert.InDelta(t, r1.MaxX, r2.MaxX, 2)
	assert.InDelta(t, r1.MaxY, r2.MaxY, 2)
}

func TestOffsetKeepsSharpCornersMitered(t *testing.T) {
	// A thin wedge would be squared off under the default miter limit.
	wedge := Paths{{{0, 0}, {1000, 100}, {0, 200}}}
	grown := Offset(wedge, 20)
	r, ok := Bounds(grown)
	require.True(t, ok)
	assert.Greater(t, r.MaxX, int64(1100))
}

func TestCleanPolyline(t *testing.T) {
	p := Path{{0, 0}, {5, 0}, {10, 0}, {10, 10}}
	assert.Equal(t, Path{{0, 0}, {10, 0}, {10, 10}}, CleanPolyline(p, 1))
	assert.Equal(t, Path{{0, 0}, {10, 0}}, CleanPolyline(Path{{0, 0}, {10, 0}}, 1))
	assert.Nil(t, CleanPolyline(Path{{0, 0}}, 1))
	assert.Nil(t, CleanPolyline(Path{{3, 3}, {3, 3}}, 1))
}

func TestOffsetSquare(t *testing.T) {
	sq := Paths{square(0, 0, 1000, 1000)}

	grown := Offset(sq, 50)
	r, ok := Bounds(grown)
	require.True(t, ok)
	assert.Equal(t, Rect{MinX: -50, MinY: -50, MaxX: 1050, MaxY: 1050}, r)
	assert.InDelta(t, 1100.0*1100.0, TotalArea(grown), 1e-6)

	shrunk := Offset(sq, -50)
	r, ok = Bounds(shrunk)
	require.True(t, ok)
	assert.Equal(t, Rect{MinX: 50, MinY: 50, MaxX: 950, MaxY: 950}, r)
	assert.InDelta(t, 900.0*900.0, TotalArea(shrunk), 1e-6)
}

func TestOffsetMovesHolesOppositeToOutline(t *testing.T) {
	ring := Paths{square(0, 0, 1000, 1000), Reverse(square(300, 300, 700, 700))}
	grown := Offset(ring, 50)
	assert.InDelta(t, 1100.0*1100.0-300.0*300.0, TotalArea(grown), 1e-6)
}

func TestOffsetShrinkToNothing(t *testing.T) {
	assert.Empty(t, Offset(Paths{square(0, 0, 100, 100)}, -60))
}

func TestOffsetZeroIsIdentity(t *testing.T) {
	sq := Paths{square(0, 0, 10, 10)}
	assert.Equal(t, sq, Offset(sq, 0))
}

func TestMinkowskiSumClosedBand(t *testing.T) {
	pattern := square(-10, -10, 10, 10)
	band := MinkowskiSum(pattern, Paths{square(0, 0, 100, 100)}, true, false)
	r, ok := Bounds(band)
	require.True(t, ok)
	assert.Equal(t, Rect{MinX: -10, MinY: -10, MaxX: 110, MaxY: 110}, r)
	assert.InDelta(t, 120.0*120.0-80.0*80.0, TotalArea(band), 1e-6)
}

func TestMinkowskiSumFilled(t *testing.T) {
	pattern := square(-10, -10, 10, 10)
	solid := MinkowskiSum(pattern, Paths{square(0, 0, 100, 100)}, true, true)
	assert.InDelta(t, 120.0*120.0, TotalArea(solid), 1e-6)
}

func TestMinkowskiSumOpenSegment(t *testing.T) {
	pattern := square(-10, -10, 10, 10)
	got := MinkowskiSum(pattern, Paths{{{0, 0}, {100, 0}}}, false, false)
	assert.InDelta(t, 120.0*20.0, TotalArea(got), 1e-6)
}

func TestMinkowskiSumEmpty(t *testing.T) {
	assert.Empty(t, MinkowskiSum(Circle(10, 16), nil, true, true))
	assert.Empty(t, MinkowskiSum(nil, Paths{square(0, 0, 1, 1)}, true, false))
}
