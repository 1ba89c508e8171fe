package clip

import clipper "github.com/ctessum/go.clipper"

// MinkowskiSum sweeps pattern along every path in paths and returns the
// covered region. closed sweeps the edge from the last point back to the
// first. fill also covers the interior of each path, so a closed outline
// becomes a solid region instead of a band along its boundary.
func MinkowskiSum(pattern Path, paths Paths, closed, fill bool) Paths {
	if len(pattern) == 0 {
		return Paths{}
	}
	c := clipper.NewClipper(clipperOptions)
	pat := toClipperPath(pattern)
	var subject, clip Paths
	for _, p := range paths {
		if len(p) == 0 {
			continue
		}
		subject = append(subject, fromClipper(c.Minkowski(pat, toClipperPath(p), true, closed))...)
		if fill && len(p) >= 3 {
			clip = append(clip, Translate(p, pattern[0]))
		}
	}
	return Union(subject, clip, NonZero)
}
