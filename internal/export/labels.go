package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/ShaperCut/internal/dimension"
	"github.com/piwi3910/ShaperCut/internal/engine"
	"github.com/piwi3910/ShaperCut/internal/model"
)

// LabelInfo holds the data encoded into each path label's QR code.
type LabelInfo struct {
	JobID    string         `json:"job"`
	PathID   string         `json:"path"`
	Name     string         `json:"name"`
	CutType  model.CutType  `json:"cut_type"`
	CutDepth string         `json:"cut_depth,omitempty"`
	Bit      string         `json:"bit,omitempty"`
	Width    float64        `json:"width"`
	Height   float64        `json:"height"`
	Units    dimension.Unit `json:"units"`
}

// JobInfo is the job summary encoded on the PDF summary page.
type JobInfo struct {
	JobID       string                `json:"job"`
	Name        string                `json:"name"`
	Units       dimension.Unit        `json:"units"`
	Paths       int                   `json:"paths"`
	Skipped     int                   `json:"skipped"`
	ByCutType   map[model.CutType]int `json:"by_cut_type"`
	CutLength   float64               `json:"cut_length"`
	RemovedArea float64               `json:"removed_area"`
}

// NewJobInfo summarizes plan for its QR code.
func NewJobInfo(plan engine.Plan) JobInfo {
	s := plan.Summary()
	return JobInfo{
		JobID:       plan.Job.ID,
		Name:        plan.Job.Name,
		Units:       plan.Job.Units,
		Paths:       s.Paths,
		Skipped:     s.Skipped,
		ByCutType:   s.ByCutType,
		CutLength:   s.CutLength,
		RemovedArea: s.RemovedArea,
	}
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectLabelInfos returns a label for every path that cuts, sized by the
// path's design outline.
func CollectLabelInfos(plan engine.Plan) []LabelInfo {
	var labels []LabelInfo
	for _, e := range plan.Entries {
		if !e.Data.CutType.IsCut() {
			continue
		}
		lo, hi, ok := outlinesBounds(e.Result.Design)
		if !ok {
			continue
		}
		labels = append(labels, LabelInfo{
			JobID:    plan.Job.ID,
			PathID:   e.Node.ID,
			Name:     nodeLabel(e.Node),
			CutType:  e.Data.CutType,
			CutDepth: string(e.Data.CutDepth),
			Bit:      string(e.Data.BitDiameter),
			Width:    hi.X - lo.X,
			Height:   hi.Y - lo.Y,
			Units:    plan.Job.Units,
		})
	}
	return labels
}

// WriteLabels generates a PDF of QR-coded labels for every cut path.
// Each label contains the path name, cut data and a QR code encoding the
// label as JSON. Labels are laid out on a standard label sheet format
// (Avery 5160 / 3 columns x 10 rows on US Letter).
func WriteLabels(w io.Writer, plan engine.Plan) error {
	labels := CollectLabelInfos(plan)
	if len(labels) == 0 {
		return fmt.Errorf("no cut paths to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label, i); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Name, err)
		}
	}

	return pdf.Output(w)
}

// placeQR encodes data as JSON into a QR code and draws it at x, y.
func placeQR(pdf *fpdf.Fpdf, imgName string, data any, x, y, size float64) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal QR data: %w", err)
	}

	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(png))
	pdf.ImageOptions(imgName, x, y, size, size, false, opts, 0, "")
	return nil
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo, index int) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	if err := placeQR(pdf, fmt.Sprintf("qr_label_%d", index), info, qrX, qrY, qrSize); err != nil {
		return err
	}

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	name := info.Name
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.2f x %.2f %s", info.Width, info.Height, unitLabel(info.Units))
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%s cut, depth %s", info.CutType, orDash(info.CutDepth)), "", 1, "L", false, 0, "")
	pdf.SetXY(textX, y+labelPadding+12.5)
	pdf.CellFormat(textW, 3, "Bit "+orDash(info.Bit), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// outlinesBounds returns the bounding box of every point in outlines.
func outlinesBounds(outlines []model.Outline) (lo, hi model.Point2D, ok bool) {
	for _, o := range outlines {
		if len(o) == 0 {
			continue
		}
		a, b := o.BoundingBox()
		if !ok {
			lo, hi, ok = a, b, true
			continue
		}
		lo.X, lo.Y = min(lo.X, a.X), min(lo.Y, a.Y)
		hi.X, hi.Y = max(hi.X, b.X), max(hi.Y, b.Y)
	}
	return lo, hi, ok
}
