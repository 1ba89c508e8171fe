// Package importer reads drawings and cut assignment sheets. DXF files
// become path nodes; CSV and Excel sheets assign a cut type, depth and bit
// to paths by ID or name. Sheets are read with automatic delimiter
// detection and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/ShaperCut/internal/dimension"
	"github.com/piwi3910/ShaperCut/internal/expr"
	"github.com/piwi3910/ShaperCut/internal/model"
)

// ImportResult holds the results of an import operation. Problems with
// single rows or entities are collected rather than failing the import.
type ImportResult struct {
	Nodes       []*model.Node
	Assignments []Assignment
	Errors      []string
	Warnings    []string
}

// Assignment sets path data on every path whose ID or name is Path.
type Assignment struct {
	Path string
	Data model.PathData
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Path    int
	CutType int
	Depth   int
	Bit     int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"path":    {"path", "id", "name", "label", "shape", "part"},
	"cutType": {"cut type", "cuttype", "cut", "type", "operation", "op"},
	"depth":   {"depth", "cut depth", "cutdepth", "z"},
	"bit":     {"bit", "bit diameter", "bitdiameter", "diameter", "dia", "tool"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping (path, cut type, depth, bit) and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Path: -1, CutType: -1, Depth: -1, Bit: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "path":
					if mapping.Path == -1 {
						mapping.Path = i
					}
				case "cutType":
					if mapping.CutType == -1 {
						mapping.CutType = i
					}
				case "depth":
					if mapping.Depth == -1 {
						mapping.Depth = i
					}
				case "bit":
					if mapping.Bit == -1 {
						mapping.Bit = i
					}
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Path: 0, CutType: 1, Depth: 2, Bit: 3}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts an Assignment from a row using the given column mapping.
// Dimensions are read like a dimension field: "1 1/8 in", "3mm" and bare
// numbers in units are all accepted. Returns the assignment, any error
// message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, units dimension.Unit) (Assignment, string, string) {
	a := Assignment{Path: getCell(row, mapping.Path)}
	if a.Path == "" {
		return Assignment{}, fmt.Sprintf("%s: Missing path", rowLabel), ""
	}

	if s := getCell(row, mapping.CutType); s != "" {
		c, err := model.ParseCutType(strings.ToLower(s))
		if err != nil {
			return Assignment{}, fmt.Sprintf("%s: Invalid cut type '%s'", rowLabel, s), ""
		}
		a.Data.CutType = c
	}

	if s := getCell(row, mapping.Depth); s != "" {
		v, ok := expr.ValidateDimensionInput(s, true, units)
		if !ok {
			return Assignment{}, fmt.Sprintf("%s: Invalid depth '%s'", rowLabel, s), ""
		}
		a.Data.CutDepth = v
	}

	if s := getCell(row, mapping.Bit); s != "" {
		v, ok := expr.ValidateDimensionInput(s, true, units)
		if !ok || v == "" {
			return Assignment{}, fmt.Sprintf("%s: Invalid bit diameter '%s'", rowLabel, s), ""
		}
		a.Data.BitDiameter = v
	}

	if a.Data == (model.PathData{}) {
		return Assignment{}, "", fmt.Sprintf("%s: Nothing to assign to '%s', skipping", rowLabel, a.Path)
	}
	return a, "", ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports cut assignments from a CSV file. Bare numbers are read
// in units. It automatically detects the delimiter and maps columns by
// header names. Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string, units dimension.Unit) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", units, result.Warnings)
}

// ImportCSVFromReader imports cut assignments from a CSV reader with a
// specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune, units dimension.Unit) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", units, nil)
}

// ImportExcel imports cut assignments from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string, units dimension.Unit) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", units, nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into an assignment.
func importFromRows(rows [][]string, rowPrefix string, units dimension.Unit, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Path == -1 {
			result.Errors = append(result.Errors, "Required columns not found in header: Path")
			return result
		}
		if mapping.CutType == -1 && mapping.Depth == -1 && mapping.Bit == -1 {
			result.Errors = append(result.Errors, "Header has no cut type, depth or bit column")
			return result
		}
	} else if cell := getCell(rows[0], 1); cell != "" {
		// An unrecognized header still holds no valid cut type in the
		// second column; skip it and use positional mapping
		if _, err := model.ParseCutType(strings.ToLower(cell)); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		a, errMsg, warning := parseRow(row, mapping, rowLabel, units)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
			continue
		}
		result.Assignments = append(result.Assignments, a)
	}

	return result
}
