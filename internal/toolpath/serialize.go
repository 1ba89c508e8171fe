package toolpath

import (
	"strconv"
	"strings"

	"github.com/piwi3910/ShaperCut/internal/clip"
)

// emptyPath is drawn in place of an empty result so every reference stays
// a valid path.
const emptyPath = "M0,0"

// Serialize renders ps, divided by scale, as SVG path data. Each subpath is
// closed with Z when closed is set.
func Serialize(ps clip.Paths, scale float64, closed bool) string {
	var b strings.Builder
	for _, p := range ps {
		for i, pt := range p {
			if i == 0 {
				b.WriteByte('M')
			} else {
				b.WriteByte('L')
			}
			b.WriteString(formatCoord(float64(pt.X) / scale))
			b.WriteByte(',')
			b.WriteString(formatCoord(float64(pt.Y) / scale))
		}
		if closed && len(p) > 0 {
			b.WriteByte('Z')
		}
	}
	if b.Len() == 0 {
		return emptyPath
	}
	return b.String()
}

func formatCoord(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
