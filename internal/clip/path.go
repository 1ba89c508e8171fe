// Package clip holds the integer polygon operations the toolpath engine is
// built on: boolean union under a fill rule, vertex cleanup, mitered
// offsetting and Minkowski sums.
//
// Coordinates are integers. Callers scale their geometry up before entering
// this package so rounding stays below the precision they care about.
package clip

import "math"

// Point is an integer coordinate.
type Point struct {
	X, Y int64
}

// Path is a sequence of points. Closed paths repeat nothing: the last point
// connects back to the first.
type Path []Point

// Paths is a polygon set. Outer boundaries have positive area and holes
// negative area.
type Paths []Path

// Area returns the signed shoelace area of p. Counter-clockwise paths (with
// Y pointing up) are positive.
func Area(p Path) float64 {
	if len(p) < 3 {
		return 0
	}
	var a float64
	prev := p[len(p)-1]
	for _, pt := range p {
		a += float64(prev.X)*float64(pt.Y) - float64(pt.X)*float64(prev.Y)
		prev = pt
	}
	return a / 2
}

// TotalArea sums the signed areas of ps, so holes are subtracted.
func TotalArea(ps Paths) float64 {
	var a float64
	for _, p := range ps {
		a += Area(p)
	}
	return a
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX, MinY, MaxX, MaxY int64
}

// Bounds returns the bounding box of every point in ps. ok is false when ps
// has no points.
func Bounds(ps Paths) (r Rect, ok bool) {
	r = Rect{MinX: math.MaxInt64, MinY: math.MaxInt64, MaxX: math.MinInt64, MaxY: math.MinInt64}
	for _, p := range ps {
		for _, pt := range p {
			r.MinX = min(r.MinX, pt.X)
			r.MinY = min(r.MinY, pt.Y)
			r.MaxX = max(r.MaxX, pt.X)
			r.MaxY = max(r.MaxY, pt.Y)
			ok = true
		}
	}
	if !ok {
		return Rect{}, false
	}
	return r, true
}

// Reverse returns p with its points in the opposite order.
func Reverse(p Path) Path {
	out := make(Path, len(p))
	for i, pt := range p {
		out[len(p)-1-i] = pt
	}
	return out
}

// Translate returns p shifted by d.
func Translate(p Path, d Point) Path {
	out := make(Path, len(p))
	for i, pt := range p {
		out[i] = Point{X: pt.X + d.X, Y: pt.Y + d.Y}
	}
	return out
}

// Circle returns a regular polygon with n vertices approximating a circle of
// the given radius around the origin, counter-clockwise from angle zero.
func Circle(radius float64, n int) Path {
	if n < 3 {
		n = 3
	}
	out := make(Path, n)
	for i := range out {
		theta := 2 * math.Pi * float64(i) / float64(n)
		out[i] = Point{
			X: int64(math.Round(radius * math.Cos(theta))),
			Y: int64(math.Round(radius * math.Sin(theta))),
		}
	}
	return out
}

// Contains reports whether pt lies strictly inside the closed path p using
// the even-odd crossing rule.
func Contains(p Path, pt Point) bool {
	inside := false
	j := len(p) - 1
	for i := range p {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			x := float64(b.X-a.X)*float64(pt.Y-a.Y)/float64(b.Y-a.Y) + float64(a.X)
			if float64(pt.X) < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// onBoundary reports whether pt lies on an edge of the closed path p.
func onBoundary(p Path, pt Point) bool {
	j := len(p) - 1
	for i := range p {
		a, b := p[j], p[i]
		cross := (b.X-a.X)*(pt.Y-a.Y) - (b.Y-a.Y)*(pt.X-a.X)
		if cross == 0 &&
			pt.X >= min(a.X, b.X) && pt.X <= max(a.X, b.X) &&
			pt.Y >= min(a.Y, b.Y) && pt.Y <= max(a.Y, b.Y) {
			return true
		}
		j = i
	}
	return false
}

// inside reports whether p lies inside q, judged by the first vertex of p
// that is not on the boundary of q. Paths that only touch are not nested.
func inside(p, q Path) bool {
	for _, pt := range p {
		if !onBoundary(q, pt) {
			return Contains(q, pt)
		}
	}
	return false
}

// Orient makes every outer boundary in ps positive and every hole negative,
// judging nesting depth by containment. Degenerate paths with fewer than
// three points are dropped.
func Orient(ps Paths) Paths {
	out := make(Paths, 0, len(ps))
	for i, p := range ps {
		if len(p) < 3 {
			continue
		}
		depth := 0
		for j, q := range ps {
			if i != j && len(q) >= 3 && inside(p, q) {
				depth++
			}
		}
		positive := Area(p) > 0
		if (depth%2 == 0) != positive {
			p = Reverse(p)
		}
		out = append(out, p)
	}
	return out
}
