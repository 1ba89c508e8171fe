package export

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/ShaperCut/internal/dimension"
	"github.com/piwi3910/ShaperCut/internal/engine"
	"github.com/piwi3910/ShaperCut/internal/model"
)

// rgb represents an RGB color.
type rgb struct {
	R, G, B int
}

// cutColors mirrors the preview SVG palette.
var cutColors = map[model.CutType]rgb{
	model.CutOutside: {R: 33, G: 150, B: 243}, // blue
	model.CutInside:  {R: 76, G: 175, B: 80},  // green
	model.CutOnline:  {R: 255, G: 152, B: 0},  // orange
	model.CutPocket:  {R: 156, G: 39, B: 176}, // purple
	model.CutGuide:   {R: 0, G: 188, B: 212},  // cyan
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	summaryQR    = 40.0
)

// WritePDF renders plan as a PDF: a preview page with every cut region and
// design outline drawn to scale, followed by a summary page listing each
// path with a QR code of the job totals.
func WritePDF(w io.Writer, plan engine.Plan) error {
	if len(plan.Entries) == 0 {
		return fmt.Errorf("no planned paths to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPreviewPage(pdf, plan)

	pdf.AddPage()
	if err := renderSummaryPage(pdf, plan); err != nil {
		return err
	}

	return pdf.Output(w)
}

// renderPreviewPage draws the job, scaled to fit the page.
func renderPreviewPage(pdf *fpdf.Fpdf, plan engine.Plan) {
	summary := plan.Summary()
	units := unitLabel(plan.Job.Units)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, plan.Job.Name, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Paths: %d | Skipped: %d | Cut length: %.1f %s | Removed area: %.1f %s²",
		summary.Paths, summary.Skipped, summary.CutLength, units, summary.RemovedArea, units)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	lo, hi, ok := planBounds(plan, true)
	if !ok {
		return
	}
	jobW, jobH := hi.X-lo.X, hi.Y-lo.Y

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/math.Max(jobW, 1e-9), drawHeight/math.Max(jobH, 1e-9))

	canvasW := jobW * scale
	canvasH := jobH * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	toPage := func(p model.Point2D) (float64, float64) {
		return offsetX + (p.X-lo.X)*scale, offsetY + (p.Y-lo.Y)*scale
	}

	// Cut regions first so the designs stay visible on top
	for _, e := range plan.Entries {
		if len(e.Result.Contour) == 0 {
			continue
		}
		col := cutColors[e.Data.CutType]
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetAlpha(0.6, "Normal")
		drawOutlines(pdf, e.Result.Contour, true, toPage)
		pdf.DrawPath("f*")
		pdf.SetAlpha(1, "Normal")
	}

	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.2)
	for _, e := range plan.Entries {
		if len(e.Result.Design) == 0 {
			continue
		}
		closed := e.Node.Closed || e.Data.CutType.ForcesClosed()
		if e.Data.CutType == model.CutGuide {
			pdf.SetDashPattern([]float64{1, 1}, 0)
		}
		drawOutlines(pdf, e.Result.Design, closed, toPage)
		pdf.DrawPath("D")
		pdf.SetDashPattern([]float64{}, 0)
	}

	drawDimensionAnnotations(pdf, jobW, jobH, units, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, summary, offsetY+canvasH+6)
}

// drawOutlines adds the outlines to the current path without painting it.
func drawOutlines(pdf *fpdf.Fpdf, outlines []model.Outline, closed bool, toPage func(model.Point2D) (float64, float64)) {
	for _, o := range outlines {
		for i, p := range o {
			x, y := toPage(p)
			if i == 0 {
				pdf.MoveTo(x, y)
			} else {
				pdf.LineTo(x, y)
			}
		}
		if closed && len(o) > 2 {
			pdf.ClosePath()
		}
	}
}

// drawDimensionAnnotations adds width and height labels outside the drawing.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, jobW, jobH float64, units string, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.2f %s", jobW, units)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.2f %s", jobH, units)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend renders one swatch per cut type used in the job.
func drawLegend(pdf *fpdf.Fpdf, summary engine.Summary, startY float64) {
	if startY > pageHeight-marginBottom {
		startY = pageHeight - marginBottom
	}
	pdf.SetFont("Helvetica", "", 8)
	xPos := marginLeft
	for _, c := range model.CutTypes() {
		n := summary.ByCutType[c]
		if n == 0 {
			continue
		}
		col := cutColors[c]
		label := fmt.Sprintf("%s (%d)", c, n)
		labelW := pdf.GetStringWidth(label) + 6

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")
		xPos += labelW + 4
	}
}

// renderSummaryPage draws the path table, skipped nodes and the job QR code.
func renderSummaryPage(pdf *fpdf.Fpdf, plan engine.Plan) error {
	units := unitLabel(plan.Job.Units)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Toolpath Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	info := NewJobInfo(plan)
	if err := placeQR(pdf, "qr_job", info, pageWidth-marginRight-summaryQR, marginTop+16, summaryQR); err != nil {
		return err
	}

	y := marginTop + 18

	colWidths := []float64{45, 25, 30, 30, 35, 40}
	headers := []string{"Path", "Cut Type", "Depth", "Bit", "Cut Length (" + units + ")", "Removed (" + units + "²)"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, e := range sortedEntries(plan) {
		if y > pageHeight-marginBottom-6 {
			pdf.AddPage()
			y = marginTop
		}
		rowData := []string{
			nodeLabel(e.Node),
			string(e.Data.CutType),
			string(e.Data.CutDepth),
			string(e.Data.BitDiameter),
			fmt.Sprintf("%.2f", e.Result.CutLength),
			fmt.Sprintf("%.2f", e.Result.RemovedArea),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(plan.Skipped) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Skipped Paths", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, s := range plan.Skipped {
			if y > pageHeight-marginBottom-5 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s: %s", nodeLabel(s.Node), s.Reason), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by ShaperCut", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}

// sortedEntries orders the plan by cut type, then by name.
func sortedEntries(plan engine.Plan) []engine.Entry {
	rank := map[model.CutType]int{}
	for i, c := range model.CutTypes() {
		rank[c] = i
	}
	entries := append([]engine.Entry(nil), plan.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if rank[a.Data.CutType] != rank[b.Data.CutType] {
			return rank[a.Data.CutType] < rank[b.Data.CutType]
		}
		return nodeLabel(a.Node) < nodeLabel(b.Node)
	})
	return entries
}

func nodeLabel(n *model.Node) string {
	if n.Name != "" {
		return n.Name
	}
	return n.ID
}

// unitLabel names the unit of job coordinates in captions.
func unitLabel(u dimension.Unit) string {
	if !u.IsReal() {
		return "units"
	}
	return string(u)
}
