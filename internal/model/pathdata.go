package model

import (
	"fmt"

	"github.com/piwi3910/ShaperCut/internal/dimension"
)

// Keys under which path and frame data are kept in a dimension.Store.
const (
	KeyCutDepth     = "cutDepth"
	KeyCutType      = "cutType"
	KeyBitDiameter  = "bitDiameter"
	KeyDefaultUnits = "defaultUnits"
	KeyWidth        = "width"
)

// FieldError ties a validation error to the store key it was read from.
type FieldError struct {
	Key string
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Key, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ClearFields resets every key named in errs. Loading never mutates the
// store; callers that want bad values gone call this explicitly.
func ClearFields(s dimension.Store, errs []*FieldError) {
	for _, e := range errs {
		s.Set(e.Key, "")
	}
}

// PathData is the machining metadata attached to a path.
type PathData struct {
	CutDepth    dimension.RealString `json:"cutDepth,omitempty"`
	CutType     CutType              `json:"cutType,omitempty"`
	BitDiameter dimension.RealString `json:"bitDiameter,omitempty"`
}

// LoadPathData reads and validates the path keys in s. Invalid values are
// left unset in the result and reported as field errors.
func LoadPathData(s dimension.Store) (PathData, []*FieldError) {
	var data PathData
	var errs []*FieldError

	if v, ok, err := dimension.LoadRealString(s, KeyCutDepth, true); err != nil {
		errs = append(errs, &FieldError{Key: KeyCutDepth, Err: err})
	} else if ok {
		data.CutDepth = v
	}

	if raw, found := s.Get(KeyCutType); found {
		if c, err := ParseCutType(raw); err != nil {
			errs = append(errs, &FieldError{Key: KeyCutType, Err: err})
		} else {
			data.CutType = c
		}
	}

	if v, ok, err := dimension.LoadRealString(s, KeyBitDiameter, true); err != nil {
		errs = append(errs, &FieldError{Key: KeyBitDiameter, Err: err})
	} else if ok {
		data.BitDiameter = v
	}

	return data, errs
}

// Save writes the set fields of d into s. Unset fields are left alone.
func (d PathData) Save(s dimension.Store) {
	if d.CutDepth != "" {
		s.Set(KeyCutDepth, string(d.CutDepth))
	}
	if d.CutType != "" {
		s.Set(KeyCutType, string(d.CutType))
	}
	if d.BitDiameter != "" {
		s.Set(KeyBitDiameter, string(d.BitDiameter))
	}
}

// Inherit fills the unset fields of d from base, which is typically the
// data of the component an instance was created from.
func (d PathData) Inherit(base PathData) PathData {
	if d.CutDepth == "" {
		d.CutDepth = base.CutDepth
	}
	if d.CutType == "" {
		d.CutType = base.CutType
	}
	if d.BitDiameter == "" {
		d.BitDiameter = base.BitDiameter
	}
	return d
}

// PathDataUpdate is a partial edit of PathData. A nil field is left
// untouched and a pointer to "" clears the stored value.
type PathDataUpdate struct {
	CutDepth    *string `json:"cutDepth,omitempty"`
	CutType     *string `json:"cutType,omitempty"`
	BitDiameter *string `json:"bitDiameter,omitempty"`
}

// ApplyPathData validates u and writes it to s. Nothing is written when any
// field is invalid.
func ApplyPathData(s dimension.Store, u PathDataUpdate) error {
	if u.CutDepth != nil && *u.CutDepth != "" {
		if _, err := dimension.AssertRealString(*u.CutDepth, true); err != nil {
			return &FieldError{Key: KeyCutDepth, Err: err}
		}
	}
	cutType := ""
	if u.CutType != nil && *u.CutType != "" {
		c, err := ParseCutType(*u.CutType)
		if err != nil {
			return &FieldError{Key: KeyCutType, Err: err}
		}
		cutType = string(c)
	}
	if u.BitDiameter != nil && *u.BitDiameter != "" {
		if _, err := dimension.AssertRealString(*u.BitDiameter, true); err != nil {
			return &FieldError{Key: KeyBitDiameter, Err: err}
		}
	}

	if u.CutDepth != nil {
		s.Set(KeyCutDepth, *u.CutDepth)
	}
	if u.CutType != nil {
		s.Set(KeyCutType, cutType)
	}
	if u.BitDiameter != nil {
		s.Set(KeyBitDiameter, *u.BitDiameter)
	}
	return nil
}
