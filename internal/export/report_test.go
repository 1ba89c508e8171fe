package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, buildTestPlan(t)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{pathsSheet, summarySheet, skippedSheet}, f.GetSheetList())

	rows, err := f.GetRows(pathsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Cut Type", rows[0][3])
	assert.Equal(t, "Cut Length (mm)", rows[0][6])
	assert.Equal(t, "outer", rows[1][0])
	assert.Equal(t, "outside", rows[1][3])
	assert.Equal(t, "15 mm", rows[1][4])

	v, err := f.GetCellValue(summarySheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	skipped, err := f.GetRows(skippedSheet)
	require.NoError(t, err)
	require.Len(t, skipped, 2)
	assert.Equal(t, "frame", skipped[1][0])
}
