package markup

import "math"

// Wire-contract literals for the external tool's markup schema. These values
// are part of the interchange contract and must not drift.
const (
	SchemaURL = "https://raw.githubusercontent.com/slicer/slicer/master/Modules/Loadable/Markups/Resources/Schema/markups-schema-v1.0.3.json#"

	StatusDefined   = "defined"
	StatusUndefined = "undefined"

	DefaultCoordinateSystem = "LPS"
	DefaultCoordinateUnits  = "mm"
	DefaultLabelFormat      = "%N-%d"

	DefaultGlyphType = "Sphere3D"
	DefaultSnapMode  = "toVisibleSurface"

	DefaultScale         = 3.0
	DefaultThickness     = 0.2
	DefaultSliceOpacity  = 0.6
	DefaultSelectedShade = 0.5000076295109484
)

// negZero: Go has no literal for a negative-zero float.
var negZero = math.Copysign(0, -1)

// DefaultOrientation is a row-major 3x3 rotation, diag(-1,-1,1) flattened.
// The first two rows carry signed zeros off the diagonal; they are part of
// the wire contract and emit as -0.
var DefaultOrientation = [9]float64{-1, negZero, negZero, negZero, -1, negZero, 0, 0, 1}

// DefaultColor is the unselected markup color.
var DefaultColor = [3]float64{0.4, 1.0, 1.0}

// DefaultSelectedColor is the selected markup color.
var DefaultSelectedColor = [3]float64{1.0, DefaultSelectedShade, DefaultSelectedShade}

// DefaultProjectionColor is the slice-projection color.
var DefaultProjectionColor = [3]float64{1.0, 1.0, 1.0}
