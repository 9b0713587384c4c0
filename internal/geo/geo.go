// Package geo holds the coordinate types shared by the markup model and the
// conversion pipeline, plus the RAS/LPS axis flip and the GeoJSON bridge.
package geo

import (
	"errors"
	"math"
)

// ErrInvalidCoordinates is returned when a raw coordinate slice does not
// describe a 3D point.
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Position3D represents a 3D coordinate without GIS dependencies.
type Position3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FromSlice validates a raw []float64 and converts it into a Position3D.
// The slice must hold exactly three components.
func FromSlice(coords []float64) (Position3D, error) {
	if len(coords) != 3 {
		return Position3D{}, ErrInvalidCoordinates
	}
	return Position3D{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}

// Slice returns the position as a 3-element slice, the shape used on the
// markup wire format.
func (p Position3D) Slice() [3]float64 {
	return [3]float64{p.X, p.Y, p.Z}
}

// SwapRASLPS converts between the RAS and LPS anatomical conventions by
// negating the first two axes. Applying it twice is the identity, exactly.
func (p Position3D) SwapRASLPS() Position3D {
	return Position3D{X: -p.X, Y: -p.Y, Z: p.Z}
}

// Norm returns the Euclidean length of the position treated as a vector.
func (p Position3D) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Sub returns p - q componentwise.
func (p Position3D) Sub(q Position3D) Position3D {
	return Position3D{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Scale returns the position scaled by s.
func (p Position3D) Scale(s float64) Position3D {
	return Position3D{X: p.X * s, Y: p.Y * s, Z: p.Z * s}
}

// Axes is a 3x3 row-major matrix whose rows are the x, y, z axis vectors of
// an oriented box. The rows need not be unit length or orthogonal.
type Axes [3]Position3D

// RowDot multiplies the matrix rows against a column vector: result i is the
// dot product of row i with v.
func (a Axes) RowDot(v [3]float64) Position3D {
	return Position3D{
		X: a[0].X*v[0] + a[0].Y*v[1] + a[0].Z*v[2],
		Y: a[1].X*v[0] + a[1].Y*v[1] + a[1].Z*v[2],
		Z: a[2].X*v[0] + a[2].Y*v[1] + a[2].Z*v[2],
	}
}

// Normalized returns the matrix with every row scaled to unit length.
func (a Axes) Normalized() Axes {
	var out Axes
	for i, row := range a {
		n := row.Norm()
		if n == 0 {
			out[i] = row
			continue
		}
		out[i] = row.Scale(1 / n)
	}
	return out
}
