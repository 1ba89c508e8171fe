package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/ShaperCut/internal/dimension"
)

func TestLoadFrameData(t *testing.T) {
	s := dimension.MapStore{KeyDefaultUnits: "mm", KeyWidth: "300 mm"}
	data, errs := LoadFrameData(s, dimension.Inch)
	assert.Empty(t, errs)
	assert.Equal(t, FrameData{DefaultUnits: dimension.Millimeter, Width: "300 mm"}, data)

	data, errs = LoadFrameData(dimension.MapStore{}, dimension.Inch)
	assert.Empty(t, errs)
	assert.Equal(t, dimension.Inch, data.DefaultUnits)
	assert.Empty(t, data.Width)
}

func TestLoadFrameDataInvalid(t *testing.T) {
	s := dimension.MapStore{KeyDefaultUnits: "px", KeyWidth: "-3 in"}
	data, errs := LoadFrameData(s, dimension.Inch)
	require.Len(t, errs, 2)
	assert.ErrorIs(t, errs[0], dimension.ErrInvalidUnit)
	assert.ErrorIs(t, errs[1], dimension.ErrInvalidDimensionString)
	assert.Equal(t, dimension.Inch, data.DefaultUnits)
}

func TestFrameDataSaveClearsWidth(t *testing.T) {
	s := dimension.MapStore{KeyWidth: "1 in"}
	FrameData{DefaultUnits: dimension.Millimeter}.Save(s)
	assert.Equal(t, "mm", s[KeyDefaultUnits])
	assert.Equal(t, "", s[KeyWidth])
}

func TestFrameDimensions(t *testing.T) {
	f := Frame{Name: "Board", PixelWidth: 400, PixelHeight: 200, Data: FrameData{Width: "10 in"}}

	ratio, err := f.AspectRatio()
	require.NoError(t, err)
	assert.Equal(t, 2.0, ratio)

	h, err := f.Height()
	require.NoError(t, err)
	assert.Equal(t, dimension.New(5, dimension.Inch), h)

	w, err := f.WidthFromHeight(dimension.New(100, dimension.Millimeter))
	require.NoError(t, err)
	assert.Equal(t, dimension.New(200, dimension.Millimeter), w)

	upp, err := f.UnitsPerPixel()
	require.NoError(t, err)
	assert.Equal(t, dimension.Inch, upp.Unit)
	assert.True(t, math.Abs(upp.Scalar-0.025) < 1e-12)
}

func TestFrameWithoutWidth(t *testing.T) {
	f := Frame{Name: "Board", PixelWidth: 400, PixelHeight: 200}
	_, ok := f.Width()
	assert.False(t, ok)
	_, err := f.Height()
	assert.Error(t, err)
	_, err = f.UnitsPerPixel()
	assert.Error(t, err)

	_, err = Frame{Name: "Empty"}.AspectRatio()
	assert.Error(t, err)
}
