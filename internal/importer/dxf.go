package importer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/ShaperCut/internal/model"
)

// chainTolerance is the maximum gap between segment endpoints that are
// joined into one path.
const chainTolerance = 0.01

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE and ARC entities into paths.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

// shape is one flattened DXF entity or chain before it becomes a node.
type shape struct {
	kind    model.NodeKind
	outline model.Outline
	closed  bool
}

// ImportDXF imports the geometry of a DXF file. Each LWPOLYLINE, CIRCLE or
// chain of connected LINEs and ARCs becomes a path node; chains that do not
// meet up stay open. Nodes are grouped by layer, and a layer named after a
// cut type ("inside", "pocket", ...) assigns that cut type to its paths.
// Y is flipped so the drawing reads top-down like an SVG.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var layers []string
	shapes := map[string][]shape{}
	segments := map[string][]segment{}
	seen := map[string]bool{}
	addLayer := func(name string) {
		if !seen[name] {
			seen[name] = true
			layers = append(layers, name)
		}
	}

	skipped := 0
	for _, ent := range entities {
		layer := layerName(ent)
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToOutline(e)
			if len(outline) < 2 {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 2 vertices")
				continue
			}
			closed := e.Closed
			if !closed && len(outline) >= 3 && pointsClose(outline[0], outline[len(outline)-1], chainTolerance) {
				outline = outline[:len(outline)-1]
				closed = true
			}
			kind := model.NodeVector
			if closed {
				kind = model.NodePolygon
			}
			addLayer(layer)
			shapes[layer] = append(shapes[layer], shape{kind: kind, outline: outline, closed: closed})

		case *entity.Circle:
			addLayer(layer)
			shapes[layer] = append(shapes[layer], shape{
				kind:    model.NodeEllipse,
				outline: circleToOutline(e, 64),
				closed:  true,
			})

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				addLayer(layer)
				segments[layer] = append(segments[layer], pointsToSegments(pts)...)
			}

		case *entity.Line:
			addLayer(layer)
			segments[layer] = append(segments[layer], segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})

		default:
			skipped++
		}
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}

	for _, layer := range layers {
		for _, c := range chainSegments(segments[layer], chainTolerance) {
			kind := model.NodeVector
			if len(c.outline) == 2 {
				kind = model.NodeLine
			}
			c.kind = kind
			shapes[layer] = append(shapes[layer], c)
		}
	}

	maxY := math.Inf(-1)
	count := 0
	for _, layer := range layers {
		for _, s := range shapes[layer] {
			_, hi := s.outline.BoundingBox()
			maxY = max(maxY, hi.Y)
			count++
		}
	}
	if count == 0 {
		result.Errors = append(result.Errors, "No shapes found in DXF file")
		return result
	}

	for _, layer := range layers {
		cutType, _ := model.ParseCutType(strings.ToLower(strings.TrimSpace(layer)))
		group := &model.Node{
			ID:   newID(),
			Name: layer,
			Kind: model.NodeGroup,
		}
		for i, s := range shapes[layer] {
			lo, hi := s.outline.BoundingBox()
			if hi.X-lo.X < chainTolerance && hi.Y-lo.Y < chainTolerance {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Skipped degenerate shape on layer %q", layer))
				continue
			}
			group.Children = append(group.Children, &model.Node{
				ID:      newID(),
				Name:    fmt.Sprintf("%s %d", layer, i+1),
				Kind:    s.kind,
				Outline: flipY(s.outline, maxY),
				Closed:  s.closed,
				Data:    model.PathData{CutType: cutType},
			})
		}
		if len(group.Children) > 0 {
			result.Nodes = append(result.Nodes, group)
		}
	}

	if len(result.Nodes) == 0 {
		result.Errors = append(result.Errors, "No usable shapes found in DXF file")
	}
	return result
}

func newID() string {
	return uuid.New().String()[:8]
}

// layerName returns the entity's layer, "0" when it has none.
func layerName(e entity.Entity) string {
	if l := e.Layer(); l != nil && l.Name() != "" {
		return l.Name()
	}
	return "0"
}

// flipY mirrors the outline about the horizontal line y = top/2, moving
// the drawing from DXF's Y-up space into Y-down space.
func flipY(o model.Outline, top float64) model.Outline {
	result := make(model.Outline, len(o))
	for i, p := range o {
		result[i] = model.Point2D{X: p.X, Y: top - p.Y}
	}
	return result
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an Outline.
// Bulge values on vertices produce interpolated arc segments. The bulge on
// the last vertex only applies when the polyline is closed.
func lwPolylineToOutline(lw *entity.LwPolyline) model.Outline {
	var outline model.Outline

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := model.Point2D{X: v[0], Y: v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}
		last := i == len(lw.Vertices)-1
		if last && !lw.Closed {
			bulge = 0
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := model.Point2D{X: lw.Vertices[nextIdx][0], Y: lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			// The next vertex is added by the following iteration
			outline = append(outline, arcPts[:len(arcPts)-1]...)
		} else {
			outline = append(outline, current)
		}
	}

	return outline
}

// bulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle;
// positive bulges run counter-clockwise.
func bulgeArcPoints(p1, p2 model.Point2D, bulge float64, numSegments int) model.Outline {
	dx := p2.X - p1.X
	dy := p2.Y - p1.Y
	chordLen := math.Hypot(dx, dy)
	if chordLen < 1e-9 {
		return model.Outline{p1, p2}
	}

	sweep := 4 * math.Atan(bulge)
	radius := chordLen / (2 * math.Abs(math.Sin(sweep/2)))

	// Center lies on the chord's perpendicular bisector, to the left of the
	// chord for counter-clockwise arcs shorter than a half circle.
	mx := (p1.X + p2.X) / 2
	my := (p1.Y + p2.Y) / 2
	h := radius * math.Cos(sweep/2)
	sign := 1.0
	if bulge < 0 {
		sign = -1
	}
	cx := mx - sign*h*dy/chordLen
	cy := my + sign*h*dx/chordLen

	start := math.Atan2(p1.Y-cy, p1.X-cx)
	pts := make(model.Outline, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		angle := start + sweep*float64(i)/float64(numSegments)
		pts[i] = model.Point2D{
			X: cx + radius*math.Cos(angle),
			Y: cy + radius*math.Sin(angle),
		}
	}
	pts[numSegments] = p2
	return pts
}

// circleToOutline approximates a circle as a regular polygon.
func circleToOutline(c *entity.Circle, numSegments int) model.Outline {
	outline := make(model.Outline, numSegments)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		outline[i] = model.Point2D{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return outline
}

// arcToPoints converts a DXF ARC entity to a series of line points.
func arcToPoints(a *entity.Arc, numSegments int) []model.Point2D {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]model.Point2D, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = model.Point2D{
			X: cx + r*math.Cos(angle),
			Y: cy + r*math.Sin(angle),
		}
	}
	return pts
}

// pointsToSegments converts a point sequence to a slice of connected segments.
func pointsToSegments(pts []model.Point2D) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects individual segments into paths. A chain whose ends
// meet is closed; the rest are returned open. Chains grow at both ends so
// the order segments appear in does not split a path.
func chainSegments(segs []segment, tolerance float64) []shape {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var shapes []shape

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}
		chain := []model.Point2D{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		for changed := true; changed; {
			changed = false
			head, tail := chain[0], chain[len(chain)-1]
			for i, seg := range segs {
				if used[i] {
					continue
				}
				switch {
				case pointsClose(tail, seg.start, tolerance):
					chain = append(chain, seg.end)
				case pointsClose(tail, seg.end, tolerance):
					chain = append(chain, seg.start)
				case pointsClose(head, seg.end, tolerance):
					chain = append([]model.Point2D{seg.start}, chain...)
				case pointsClose(head, seg.start, tolerance):
					chain = append([]model.Point2D{seg.end}, chain...)
				default:
					continue
				}
				used[i] = true
				changed = true
				break
			}
		}

		closed := false
		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			chain = chain[:len(chain)-1]
			closed = true
		}
		shapes = append(shapes, shape{outline: model.Outline(chain), closed: closed})
	}

	// Largest first for a stable order
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].outline.Area() > shapes[j].outline.Area()
	})

	return shapes
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point2D, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
