package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ShaperCut/internal/engine"
	"github.com/piwi3910/ShaperCut/internal/model"
)

const (
	pathsSheet   = "Paths"
	summarySheet = "Summary"
	skippedSheet = "Skipped"
)

// WriteReport writes an Excel workbook describing plan: one row per path
// with its cut data and totals, a summary sheet and, when any node was
// skipped, a sheet listing why.
func WriteReport(w io.Writer, plan engine.Plan) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), pathsSheet); err != nil {
		return err
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	units := unitLabel(plan.Job.Units)
	rows := [][]interface{}{{
		"ID", "Name", "Kind", "Cut Type", "Depth", "Bit",
		"Cut Length (" + units + ")", "Removed Area (" + units + "²)",
	}}
	for _, e := range sortedEntries(plan) {
		rows = append(rows, []interface{}{
			e.Node.ID,
			e.Node.Name,
			string(e.Node.Kind),
			string(e.Data.CutType),
			string(e.Data.CutDepth),
			string(e.Data.BitDiameter),
			e.Result.CutLength,
			e.Result.RemovedArea,
		})
	}
	if err := writeRows(f, pathsSheet, rows, header); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	s := plan.Summary()
	summary := [][]interface{}{
		{"Job", plan.Job.Name},
		{"Units", units},
		{"Paths", s.Paths},
		{"Skipped", s.Skipped},
		{"Collapsed", s.Collapsed},
		{"Cut Length", s.CutLength},
		{"Removed Area", s.RemovedArea},
	}
	for _, c := range model.CutTypes() {
		summary = append(summary, []interface{}{"Paths: " + string(c), s.ByCutType[c]})
	}
	if err := writeRows(f, summarySheet, summary, 0); err != nil {
		return err
	}

	if len(plan.Skipped) > 0 {
		if _, err := f.NewSheet(skippedSheet); err != nil {
			return err
		}
		skipped := [][]interface{}{{"ID", "Name", "Reason"}}
		for _, sk := range plan.Skipped {
			skipped = append(skipped, []interface{}{sk.Node.ID, sk.Node.Name, sk.Reason})
		}
		if err := writeRows(f, skippedSheet, skipped, header); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(pathsSheet, "A", "H", 16); err != nil {
		return err
	}
	return f.Write(w)
}

// writeRows fills sheet from A1. A non-zero headerStyle is applied to the
// first row.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	if headerStyle != 0 && len(rows) > 0 {
		last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}
	return nil
}
