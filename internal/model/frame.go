package model

import (
	"fmt"

	"github.com/piwi3910/ShaperCut/internal/dimension"
)

// FrameData is the metadata of a frame: the unit new values default to and
// the real-world width the frame represents.
type FrameData struct {
	DefaultUnits dimension.Unit       `json:"defaultUnits"`
	Width        dimension.RealString `json:"width,omitempty"`
}

// LoadFrameData reads and validates the frame keys in s. A missing or
// invalid unit falls back to fallback.
func LoadFrameData(s dimension.Store, fallback dimension.Unit) (FrameData, []*FieldError) {
	data := FrameData{DefaultUnits: fallback}
	var errs []*FieldError

	if u, ok, err := dimension.LoadUnit(s, KeyDefaultUnits); err != nil {
		errs = append(errs, &FieldError{Key: KeyDefaultUnits, Err: err})
	} else if ok {
		data.DefaultUnits = u
	}

	if v, ok, err := dimension.LoadRealString(s, KeyWidth, true); err != nil {
		errs = append(errs, &FieldError{Key: KeyWidth, Err: err})
	} else if ok {
		data.Width = v
	}
	return data, errs
}

// Save writes d into s. An empty width clears the stored width.
func (d FrameData) Save(s dimension.Store) {
	if d.DefaultUnits != dimension.None {
		s.Set(KeyDefaultUnits, string(d.DefaultUnits))
	}
	s.Set(KeyWidth, string(d.Width))
}

// Frame is a drawing area with a pixel size and an optional real size.
type Frame struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PixelWidth  float64   `json:"pixelWidth"`
	PixelHeight float64   `json:"pixelHeight"`
	Data        FrameData `json:"data"`
}

// AspectRatio returns width divided by height in pixels.
func (f Frame) AspectRatio() (float64, error) {
	if f.PixelWidth <= 0 || f.PixelHeight <= 0 {
		return 0, fmt.Errorf("frame %q has no size", f.Name)
	}
	return f.PixelWidth / f.PixelHeight, nil
}

// Width returns the real-world width of the frame, if one is set.
func (f Frame) Width() (dimension.Dimension, bool) {
	if f.Data.Width == "" {
		return dimension.Dimension{}, false
	}
	d, err := dimension.ParseRealString(f.Data.Width)
	if err != nil {
		return dimension.Dimension{}, false
	}
	return d, true
}

// Height derives the real-world height from the width and aspect ratio.
func (f Frame) Height() (dimension.Dimension, error) {
	w, ok := f.Width()
	if !ok {
		return dimension.Dimension{}, fmt.Errorf("frame %q has no width", f.Name)
	}
	ratio, err := f.AspectRatio()
	if err != nil {
		return dimension.Dimension{}, err
	}
	return dimension.Div(w, dimension.Scalar(ratio))
}

// WidthFromHeight returns the width that gives the frame the real-world
// height h.
func (f Frame) WidthFromHeight(h dimension.Dimension) (dimension.Dimension, error) {
	ratio, err := f.AspectRatio()
	if err != nil {
		return dimension.Dimension{}, err
	}
	return dimension.Mul(h, dimension.Scalar(ratio))
}

// UnitsPerPixel returns the scale from pixels to the frame's width unit.
func (f Frame) UnitsPerPixel() (dimension.Dimension, error) {
	w, ok := f.Width()
	if !ok {
		return dimension.Dimension{}, fmt.Errorf("frame %q has no width", f.Name)
	}
	if f.PixelWidth <= 0 {
		return dimension.Dimension{}, fmt.Errorf("frame %q has no size", f.Name)
	}
	return dimension.Div(w, dimension.Scalar(f.PixelWidth))
}
