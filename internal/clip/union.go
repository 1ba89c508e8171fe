package clip

import clipper "github.com/ctessum/go.clipper"

// FillRule decides which regions of a self-overlapping polygon set count as
// filled.
type FillRule int

const (
	EvenOdd FillRule = iota
	NonZero
	Positive
)

func (f FillRule) clipper() clipper.PolyFillType {
	switch f {
	case NonZero:
		return clipper.PftNonZero
	case Positive:
		return clipper.PftPositive
	default:
		return clipper.PftEvenOdd
	}
}

// clipperOptions are the clipper init options: no reversed output, no
// strictly simple output and collinear vertices merged.
const clipperOptions = 0

func toClipperPath(p Path) clipper.Path {
	cp := make(clipper.Path, len(p))
	for i, pt := range p {
		cp[i] = &clipper.IntPoint{X: clipper.CInt(pt.X), Y: clipper.CInt(pt.Y)}
	}
	return cp
}

func fromClipperPath(cp clipper.Path) Path {
	p := make(Path, len(cp))
	for i, ip := range cp {
		p[i] = Point{X: int64(ip.X), Y: int64(ip.Y)}
	}
	return p
}

func toClipper(ps Paths) clipper.Paths {
	out := make(clipper.Paths, 0, len(ps))
	for _, p := range ps {
		if len(p) < 3 {
			continue
		}
		out = append(out, toClipperPath(p))
	}
	return out
}

func fromClipper(ps clipper.Paths) Paths {
	out := make(Paths, 0, len(ps))
	for _, cp := range ps {
		if len(cp) < 3 {
			continue
		}
		out = append(out, fromClipperPath(cp))
	}
	return out
}

// Union merges subject and clip polygons into a set of non-overlapping
// polygons under fill. The result is oriented with Orient.
func Union(subject, clip Paths, fill FillRule) Paths {
	subj, clp := toClipper(subject), toClipper(clip)
	if len(subj) == 0 && len(clp) == 0 {
		return Paths{}
	}
	c := clipper.NewClipper(clipperOptions)
	if len(subj) > 0 {
		c.AddPaths(subj, clipper.PtSubject, true)
	}
	if len(clp) > 0 {
		c.AddPaths(clp, clipper.PtClip, true)
	}
	solution, ok := c.Execute1(clipper.CtUnion, fill.clipper(), fill.clipper())
	if !ok {
		return Paths{}
	}
	return Orient(fromClipper(solution))
}

// Simplify removes self-intersections from ps, treating overlapping loops
// with the even-odd rule.
func Simplify(ps Paths) Paths {
	return Union(ps, nil, EvenOdd)
}
