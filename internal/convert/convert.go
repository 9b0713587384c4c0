// Package convert sniffs markup files, decodes them by variant and flattens
// any representable geometry down to a single fiducial point set.
package convert

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/slic3r-display/converter/internal/geo"
	"github.com/slic3r-display/converter/internal/markup"
	"github.com/slic3r-display/converter/internal/represent"
)

var (
	// ErrUnrecognizedFormat is returned when file content matches none of the
	// known markup types.
	ErrUnrecognizedFormat = errors.New("unrecognized markup format")

	// ErrTypeMismatch is returned when concatenation is invoked over mixed
	// representable variants.
	ErrTypeMismatch = errors.New("mismatched representable types")
)

// DetectKind determines a file's markup kind from its content. The original
// tool scanned for literal `"type": "..."` substrings; this parses the
// document structure instead, which survives reformatting. Candidates are
// checked in order Fiducial, Line, Curve/ClosedCurve and the first match
// wins (files are expected to hold one markup type).
func DetectKind(content []byte) (markup.Kind, error) {
	var sniff struct {
		Markups []struct {
			Type string `json:"type"`
		} `json:"markups"`
	}
	if err := json.Unmarshal(content, &sniff); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnrecognizedFormat, err)
	}

	present := make(map[string]bool, len(sniff.Markups))
	for _, m := range sniff.Markups {
		present[m.Type] = true
	}

	switch {
	case present["Fiducial"]:
		return markup.KindFiducial, nil
	case present["Line"]:
		return markup.KindLine, nil
	case present["Curve"], present["ClosedCurve"]:
		return markup.KindCurve, nil
	default:
		return 0, fmt.Errorf("%w: no known markup type present", ErrUnrecognizedFormat)
	}
}

// ConvertFile reads a markup file, decodes it by the sniffed variant's rules
// and flattens every control-point position, markups outer and control
// points inner, into a single PointSet. The optional coordinate swap is
// applied before flattening.
func ConvertFile(path string, swap bool) (*represent.PointSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	kind, err := DetectKind(content)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	markups, err := markup.DecodeMarkups(kind, content)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}

	r, err := fromMarkups(kind, markups)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	if swap {
		swapRepresentable(r)
	}
	if err := r.Rebuild(); err != nil {
		return nil, err
	}
	return Convert(r), nil
}

// fromMarkups reassembles the raw geometry of the matching representable
// variant from decoded markups.
func fromMarkups(kind markup.Kind, markups []*markup.Markup) (represent.Representable, error) {
	switch kind {
	case markup.KindLine:
		s := represent.NewLineSet()
		for _, m := range markups {
			if m.Len() != 2 {
				return nil, fmt.Errorf("line markup holds %d control points, want 2", m.Len())
			}
			s.Lines = append(s.Lines, [2]geo.Position3D{
				positionOf(m.ControlPoints[0]),
				positionOf(m.ControlPoints[1]),
			})
		}
		return s, nil
	case markup.KindCurve, markup.KindClosedCurve:
		s := represent.NewCurveSet()
		for _, m := range markups {
			curve := make([]geo.Position3D, 0, m.Len())
			for _, cp := range m.ControlPoints {
				curve = append(curve, positionOf(cp))
			}
			s.Curves = append(s.Curves, curve)
		}
		return s, nil
	default:
		s := represent.NewPointSet()
		for _, m := range markups {
			for _, cp := range m.ControlPoints {
				s.Points = append(s.Points, positionOf(cp))
			}
		}
		return s, nil
	}
}

func positionOf(cp markup.ControlPoint) geo.Position3D {
	return geo.Position3D{X: cp.Position[0], Y: cp.Position[1], Z: cp.Position[2]}
}

func swapRepresentable(r represent.Representable) {
	switch s := r.(type) {
	case *represent.PointSet:
		s.SwapCoordinateSystem()
	case *represent.LineSet:
		s.SwapCoordinateSystem()
	case *represent.CurveSet:
		s.SwapCoordinateSystem()
	}
}

// Convert flattens a representable's current document into a PointSet
// without a rebuild step; the caller is assumed to have populated the
// document already.
func Convert(r represent.Representable) *represent.PointSet {
	result := represent.NewPointSet()
	for _, m := range r.Document().Markups {
		for _, cp := range m.ControlPoints {
			result.Points = append(result.Points, positionOf(cp))
		}
	}
	return result
}

// Concatenate rebuilds each input and flattens all control-point positions
// into one PointSet, preserving per-input, per-markup, per-point order. All
// inputs must share the same variant; mixing variants fails before any work
// is done.
func Concatenate(representables ...represent.Representable) (*represent.PointSet, error) {
	if len(representables) == 0 {
		return nil, fmt.Errorf("%w: nothing to concatenate", ErrTypeMismatch)
	}
	kind := representables[0].Kind()
	for _, r := range representables[1:] {
		if r.Kind() != kind {
			return nil, fmt.Errorf("%w: %s and %s", ErrTypeMismatch, kind.TypeName(), r.Kind().TypeName())
		}
	}

	result := represent.NewPointSet()
	for _, r := range representables {
		if err := r.Rebuild(); err != nil {
			return nil, err
		}
		result.Points = append(result.Points, Convert(r).Points...)
	}
	return result, nil
}

// ConcatenateFiles converts every file and concatenates the results. The
// coordinate swap is applied per file; because the flip is independent per
// point, this is identical to swapping the concatenated result.
func ConcatenateFiles(paths []string, swap bool) (*represent.PointSet, error) {
	converted := make([]represent.Representable, 0, len(paths))
	for _, path := range paths {
		r, err := ConvertFile(path, swap)
		if err != nil {
			return nil, err
		}
		converted = append(converted, r)
	}
	return Concatenate(converted...)
}

// GeoJSON renders a flattened point set as a GeoJSON MultiPoint with XYZ
// coordinates, preserving flattened order.
func GeoJSON(ps *represent.PointSet) ([]byte, error) {
	return geo.MultiPointGeoJSON(ps.Points)
}
