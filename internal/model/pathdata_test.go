package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ShaperCut/internal/dimension"
)

func TestLoadPathData(t *testing.T) {
	s := dimension.MapStore{
		KeyCutDepth:    "0.5 in",
		KeyCutType:     "on-line",
		KeyBitDiameter: "3 mm",
	}
	data, errs := LoadPathData(s)
	assert.Empty(t, errs)
	assert.Equal(t, PathData{CutDepth: "0.5 in", CutType: CutOnline, BitDiameter: "3 mm"}, data)
}

func TestLoadPathDataReportsInvalidFields(t *testing.T) {
	s := dimension.MapStore{
		KeyCutDepth:    "-1 in",
		KeyCutType:     "engrave",
		KeyBitDiameter: "6 mm",
	}
	data, errs := LoadPathData(s)
	require.Len(t, errs, 2)
	assert.Equal(t, KeyCutDepth, errs[0].Key)
	assert.ErrorIs(t, errs[0], dimension.ErrInvalidDimensionString)
	assert.Equal(t, KeyCutType, errs[1].Key)
	assert.ErrorIs(t, errs[1], ErrInvalidCutType)
	assert.Equal(t, dimension.RealString("6 mm"), data.BitDiameter)

	// Loading leaves the store alone.
	assert.Equal(t, "engrave", s[KeyCutType])

	ClearFields(s, errs)
	assert.Equal(t, "", s[KeyCutType])
	assert.Equal(t, "", s[KeyCutDepth])
	assert.Equal(t, "6 mm", s[KeyBitDiameter])
}

func TestPathDataSaveSkipsUnset(t *testing.T) {
	s := dimension.MapStore{KeyCutDepth: "1 in"}
	PathData{CutType: CutPocket}.Save(s)
	assert.Equal(t, "1 in", s[KeyCutDepth])
	assert.Equal(t, "pocket", s[KeyCutType])
	_, ok := s[KeyBitDiameter]
	assert.False(t, ok)
}

func TestPathDataInherit(t *testing.T) {
	base := PathData{CutDepth: "1 in", CutType: CutInside, BitDiameter: "0.25 in"}
	got := PathData{CutType: CutOutside}.Inherit(base)
	assert.Equal(t, PathData{CutDepth: "1 in", CutType: CutOutside, BitDiameter: "0.25 in"}, got)
}

func TestApplyPathData(t *testing.T) {
	s := dimension.MapStore{KeyCutDepth: "1 in", KeyBitDiameter: "3 mm"}
	depth := "2 mm"
	clear := ""
	cut := "on-line"
	err := ApplyPathData(s, PathDataUpdate{CutDepth: &depth, CutType: &cut, BitDiameter: &clear})
	require.NoError(t, err)
	assert.Equal(t, "2 mm", s[KeyCutDepth])
	assert.Equal(t, "online", s[KeyCutType])
	assert.Equal(t, "", s[KeyBitDiameter])
}

func TestApplyPathDataRejectsWithoutWriting(t *testing.T) {
	s := dimension.MapStore{KeyCutDepth: "1 in"}
	depth := "2 mm"
	bad := "thick"
	err := ApplyPathData(s, PathDataUpdate{CutDepth: &depth, BitDiameter: &bad})
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KeyBitDiameter, fe.Key)
	assert.Equal(t, "1 in", s[KeyCutDepth])
}
