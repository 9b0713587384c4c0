package geo

import (
	"encoding/json"
	"fmt"

	geom "github.com/peterstace/simplefeatures/geom"
)

// MultiPointGeoJSON encodes a flattened point sequence as a GeoJSON
// MultiPoint with XYZ coordinates, preserving input order.
func MultiPointGeoJSON(points []Position3D) ([]byte, error) {
	pts := make([]geom.Point, len(points))
	for i, p := range points {
		pts[i] = geom.NewPoint(geom.Coordinates{
			XY:   geom.XY{X: p.X, Y: p.Y},
			Z:    p.Z,
			Type: geom.DimXYZ,
		})
	}
	mp := geom.NewMultiPoint(pts)

	out, err := json.Marshal(mp.AsGeometry())
	if err != nil {
		return nil, fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	return out, nil
}
