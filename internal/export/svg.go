// Package export writes planned jobs to SVG, JSON, PDF and Excel, and
// prints QR-coded labels for the cut pieces.
package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/ShaperCut/internal/dimension"
	"github.com/piwi3910/ShaperCut/internal/engine"
	"github.com/piwi3910/ShaperCut/internal/model"
	"github.com/piwi3910/ShaperCut/internal/toolpath"
)

const (
	svgNamespace    = "http://www.w3.org/2000/svg"
	shaperNamespace = "http://www.shapertools.com/namespaces/shaper"
)

type svgDocument struct {
	XMLName xml.Name  `xml:"svg"`
	Xmlns   string    `xml:"xmlns,attr"`
	Shaper  string    `xml:"xmlns:shaper,attr,omitempty"`
	Width   string    `xml:"width,attr,omitempty"`
	Height  string    `xml:"height,attr,omitempty"`
	ViewBox string    `xml:"viewBox,attr"`
	Paths   []svgPath `xml:"path"`
}

type svgPath struct {
	ID       string `xml:"id,attr,omitempty"`
	Class    string `xml:"class,attr,omitempty"`
	D        string `xml:"d,attr"`
	Fill     string `xml:"fill,attr,omitempty"`
	FillRule string `xml:"fill-rule,attr,omitempty"`
	Stroke   string `xml:"stroke,attr,omitempty"`
	CutType  string `xml:"shaper:cutType,attr,omitempty"`
	CutDepth string `xml:"shaper:cutDepth,attr,omitempty"`
}

// cutStyle is the fill and stroke a Shaper Origin reads as each cut type.
var cutStyle = map[model.CutType]struct{ fill, stroke string }{
	model.CutOutside: {"#000000", "#000000"},
	model.CutInside:  {"#ffffff", "#000000"},
	model.CutOnline:  {"none", "#7f7f7f"},
	model.CutPocket:  {"#7f7f7f", "none"},
	model.CutGuide:   {"none", "#0068ff"},
}

// previewColor tints the preview per cut type.
var previewColor = map[model.CutType]string{
	model.CutOutside: "#2196f3",
	model.CutInside:  "#4caf50",
	model.CutOnline:  "#ff9800",
	model.CutPocket:  "#9c27b0",
	model.CutGuide:   "#00bcd4",
}

// WriteSVG writes the designs of the planned paths as an SVG the Shaper
// Origin can cut directly: each path carries shaper:cutType and
// shaper:cutDepth, and the document size is set in the job's unit.
func WriteSVG(w io.Writer, plan engine.Plan) error {
	doc := newDocument(plan, false)
	doc.Shaper = shaperNamespace
	for _, e := range plan.Entries {
		design, ok := findComputed(e.Result.Paths, toolpath.KindDesignPath)
		if !ok {
			continue
		}
		style := cutStyle[e.Data.CutType]
		doc.Paths = append(doc.Paths, svgPath{
			ID:       e.Node.ID,
			D:        design.D,
			Fill:     style.fill,
			Stroke:   style.stroke,
			CutType:  string(e.Data.CutType),
			CutDepth: compact(string(e.Data.CutDepth)),
		})
	}
	return encode(w, doc)
}

// WritePreviewSVG writes every computed path: the region each bit removes
// and the design outline on top of it. Cut regions use the even-odd rule so
// the holes of a ring stay open.
func WritePreviewSVG(w io.Writer, plan engine.Plan) error {
	doc := newDocument(plan, true)
	for _, e := range plan.Entries {
		color := previewColor[e.Data.CutType]
		for _, c := range e.Result.Paths {
			p := svgPath{D: c.D, FillRule: "evenodd"}
			switch c.Kind {
			case toolpath.KindCutPaths:
				p.ID = e.Node.ID + "-cut"
				p.Class = string(c.CutType) + " cut"
				p.Fill = color
			case toolpath.KindDesignPath:
				p.ID = e.Node.ID + "-design"
				p.Class = string(c.CutType) + " design"
				p.Fill = "none"
				p.Stroke = "#000000"
			}
			doc.Paths = append(doc.Paths, p)
		}
	}
	return encode(w, doc)
}

func findComputed(paths []toolpath.ComputedPath, kind toolpath.Kind) (toolpath.ComputedPath, bool) {
	for _, p := range paths {
		if p.Kind == kind {
			return p, true
		}
	}
	return toolpath.ComputedPath{}, false
}

// newDocument sizes the document to the plan's designs, and to its cut
// regions as well when withCuts is set.
func newDocument(plan engine.Plan, withCuts bool) svgDocument {
	doc := svgDocument{Xmlns: svgNamespace, ViewBox: "0 0 0 0"}
	lo, hi, ok := planBounds(plan, withCuts)
	if !ok {
		return doc
	}
	w, h := hi.X-lo.X, hi.Y-lo.Y
	doc.ViewBox = strings.Join([]string{num(lo.X), num(lo.Y), num(w), num(h)}, " ")
	doc.Width = length(w, plan.Job.Units)
	doc.Height = length(h, plan.Job.Units)
	return doc
}

// planBounds returns the bounding box of the designs of plan, including
// the cut contours when withCuts is set.
func planBounds(plan engine.Plan, withCuts bool) (lo, hi model.Point2D, ok bool) {
	var all []model.Outline
	for _, e := range plan.Entries {
		all = append(all, e.Result.Design...)
		if withCuts {
			all = append(all, e.Result.Contour...)
		}
	}
	return outlinesBounds(all)
}

// length renders v as an SVG length in unit, "100mm" style. Without a real
// unit the bare number is used.
func length(v float64, unit dimension.Unit) string {
	if !unit.IsReal() {
		return num(v)
	}
	s, err := dimension.Format(dimension.New(v, unit))
	if err != nil {
		return num(v)
	}
	return compact(string(s))
}

// compact removes the space between number and unit: "15 mm" becomes "15mm".
func compact(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

func num(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func encode(w io.Writer, doc svgDocument) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode SVG: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
