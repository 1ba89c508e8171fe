package model

import "math"

// Point2D represents a 2D coordinate in drawing units.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a path as a sequence of 2D points. Whether the last
// point connects back to the first is carried separately by the owner.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Scale multiplies every coordinate by f.
func (o Outline) Scale(f float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X * f, Y: p.Y * f}
	}
	return result
}

// Length returns the total length of the outline, including the closing
// edge when closed is set.
func (o Outline) Length(closed bool) float64 {
	if len(o) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(o); i++ {
		total += math.Hypot(o[i].X-o[i-1].X, o[i].Y-o[i-1].Y)
	}
	if closed {
		last := o[len(o)-1]
		total += math.Hypot(o[0].X-last.X, o[0].Y-last.Y)
	}
	return total
}

// Area returns the absolute area enclosed by the outline (shoelace formula).
func (o Outline) Area() float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}
