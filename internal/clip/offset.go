package clip

import clipper "github.com/ctessum/go.clipper"

// miterLimit keeps every corner mitered instead of squared off.
const miterLimit = 1e9

// Offset grows (delta > 0) or shrinks (delta < 0) the polygon set ps by
// |delta| with mitered corners. Paths must be oriented as Orient leaves
// them so holes move the opposite way to their outer boundary.
func Offset(ps Paths, delta float64) Paths {
	ps = Orient(ps)
	if delta == 0 {
		return ps
	}
	src := toClipper(ps)
	if len(src) == 0 {
		return Paths{}
	}
	co := clipper.NewClipperOffset()
	co.MiterLimit = miterLimit
	co.AddPaths(src, clipper.JtMiter, clipper.EtClosedPolygon)
	return Orient(fromClipper(co.Execute(delta)))
}
