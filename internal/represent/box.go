package represent

import (
	"fmt"

	"github.com/slic3r-display/converter/internal/geo"
	"github.com/slic3r-display/converter/internal/stl"
)

// Box is an oriented box given by its minimal corner and three arbitrary
// axis vectors (not necessarily unit length or orthogonal). Boxes produce
// surface meshes rather than markup documents, so Box deliberately does not
// satisfy the Representable interface.
type Box struct {
	Origin geo.Position3D
	Axes   geo.Axes
}

// Write transforms the reference unit cube by the box's axes, translates it
// to the origin and saves the result as an STL mesh.
func (b *Box) Write(path string) error {
	return WriteBoxFrom(b.Origin, b.Axes, path)
}

// WriteBoxFrom writes a box mesh directly from an origin and axes, with no
// intermediate Box instance.
func WriteBoxFrom(origin geo.Position3D, axes geo.Axes, path string) error {
	mesh, err := stl.UnitCube()
	if err != nil {
		return err
	}
	return saveGeometry(origin, axes, path, mesh)
}

func saveGeometry(origin geo.Position3D, axes geo.Axes, path string, mesh *stl.Mesh) error {
	mesh.Transform(axes)
	mesh.Translate(origin)
	if err := mesh.Save(path); err != nil {
		return fmt.Errorf("could not write box mesh: %w", err)
	}
	return nil
}

// CenterToOrigin converts a box given by its center point into the
// minimal-corner origin, treating the axis rows as given (unnormalized):
// origin = center - axes . (1/2, 1/2, 1/2).
func CenterToOrigin(center geo.Position3D, axes geo.Axes) geo.Position3D {
	return center.Sub(axes.RowDot([3]float64{0.5, 0.5, 0.5}))
}

// CenterToOriginScaled is CenterToOrigin with the axis lengths dismissed:
// rows are normalized first and the half-offsets scaled per axis. Axis
// length and scale are not multiplied.
func CenterToOriginScaled(center geo.Position3D, axes geo.Axes, scale [3]float64) geo.Position3D {
	normalized := axes.Normalized()
	return center.Sub(normalized.RowDot([3]float64{
		0.5 * scale[0],
		0.5 * scale[1],
		0.5 * scale[2],
	}))
}
