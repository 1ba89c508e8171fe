package clip

import clipper "github.com/ctessum/go.clipper"

// CleanPolygon removes vertices of the closed path p that are within
// distance of a neighbour, duplicate spikes, and vertices that are nearly
// collinear with their neighbours. A result with fewer than three vertices
// is returned as nil.
func CleanPolygon(p Path, distance float64) Path {
	if len(p) == 0 {
		return nil
	}
	c := clipper.NewClipper(clipperOptions)
	out := c.CleanPolygon(toClipperPath(p), distance)
	if len(out) < 3 {
		return nil
	}
	return fromClipperPath(out)
}

// Clean applies CleanPolygon to every path in ps and drops the ones that
// collapse.
func Clean(ps Paths, distance float64) Paths {
	out := make(Paths, 0, len(ps))
	for _, p := range ps {
		if cp := CleanPolygon(p, distance); cp != nil {
			out = append(out, cp)
		}
	}
	return out
}

// CleanPolyline is CleanPolygon for an open path. The end points are always
// kept. A result with fewer than two vertices is returned as nil.
func CleanPolyline(p Path, distance float64) Path {
	if len(p) < 2 {
		return nil
	}
	c := clipper.NewClipper(clipperOptions)
	cp := toClipperPath(p)
	distSqrd := distance * distance
	out := clipper.Path{cp[0]}
	for i := 1; i < len(cp)-1; i++ {
		last := out[len(out)-1]
		if c.PointsAreClose(cp[i], last, distSqrd) {
			continue
		}
		if c.SlopesNearCollinear(last, cp[i], cp[i+1], distSqrd) {
			continue
		}
		out = append(out, cp[i])
	}
	end := cp[len(cp)-1]
	if len(out) > 1 && c.PointsAreClose(end, out[len(out)-1], distSqrd) {
		out[len(out)-1] = end
	} else {
		out = append(out, end)
	}
	if len(out) < 2 || (len(out) == 2 && *out[0] == *out[1]) {
		return nil
	}
	return fromClipperPath(out)
}
