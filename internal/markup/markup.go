// Package markup implements the data model and JSON codec for the external
// visualization tool's markup interchange format.
package markup

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/slic3r-display/converter/internal/geo"
)

var (
	// ErrCapacityExceeded is returned when an append would push a markup past
	// its variant's capacity.
	ErrCapacityExceeded = errors.New("markup capacity exceeded")

	// ErrIndexOutOfRange is returned on a positional assign outside the range
	// allowed by the variant.
	ErrIndexOutOfRange = errors.New("control point index out of range")

	// ErrUnrecognizedType is returned when a document entry's type does not
	// belong to the decoding variant.
	ErrUnrecognizedType = errors.New("unrecognized markup type")
)

// Markup is one named geometric annotation entity. Field order matches the
// external tool's schema and is the order emitted on the wire.
type Markup struct {
	Type                       string         `json:"type"`
	ControlPoints              []ControlPoint `json:"controlPoints"`
	Display                    Display        `json:"display"`
	CoordinateSystem           string         `json:"coordinateSystem"`
	CoordinateUnits            string         `json:"coordinateUnits"`
	FixedNumberOfControlPoints bool           `json:"fixedNumberOfControlPoints"`
	LabelFormat                string         `json:"labelFormat"`
	LastUsedControlPointNumber int            `json:"lastUsedControlPointNumber"`

	kind Kind
}

// New returns an empty markup of the given variant with schema defaults and
// a fresh Display.
func New(kind Kind) *Markup {
	return &Markup{
		Type:             kind.TypeName(),
		ControlPoints:    []ControlPoint{},
		Display:          DefaultDisplay(),
		CoordinateSystem: DefaultCoordinateSystem,
		CoordinateUnits:  DefaultCoordinateUnits,
		LabelFormat:      DefaultLabelFormat,
		kind:             kind,
	}
}

// Kind returns the markup's variant.
func (m *Markup) Kind() Kind { return m.kind }

// Len returns the number of control points.
func (m *Markup) Len() int { return len(m.ControlPoints) }

// Add appends a control point labeled with the variant prefix. The new
// point's id is the 1-based insertion position; ids are contiguous and never
// reused (removal is not supported).
func (m *Markup) Add(point geo.Position3D) error {
	return m.add(point, "")
}

// AddNumbered appends a control point labeled "{prefix}_{n}".
func (m *Markup) AddNumbered(point geo.Position3D, n int) error {
	return m.add(point, fmt.Sprintf("_%d", n))
}

func (m *Markup) add(point geo.Position3D, suffix string) error {
	if err := m.checkCapacity(); err != nil {
		return err
	}
	m.ControlPoints = append(m.ControlPoints, MakeControlPoint(
		len(m.ControlPoints)+1,
		m.kind.Prefix()+suffix,
		point.X, point.Y, point.Z,
	))
	return nil
}

// AddLabeled appends a control point carrying the exact label given, for
// callers that supply their own labeling scheme instead of the variant
// prefix.
func (m *Markup) AddLabeled(point geo.Position3D, label string) error {
	if err := m.checkCapacity(); err != nil {
		return err
	}
	cp := NewControlPoint(len(m.ControlPoints)+1, label)
	cp.SetPosition(point.X, point.Y, point.Z)
	m.ControlPoints = append(m.ControlPoints, cp)
	return nil
}

func (m *Markup) checkCapacity() error {
	if c := m.kind.Capacity(); c > 0 && len(m.ControlPoints) >= c {
		return fmt.Errorf("%w: %s markup holds at most %d control points", ErrCapacityExceeded, m.Type, c)
	}
	return nil
}

// Set assigns a position by 1-based index. Index len+1 behaves as Add; any
// existing index is overwritten in place through SetPosition. Valid indices
// satisfy 0 < i <= capacity (when bounded) and i <= len+1.
func (m *Markup) Set(i int, point geo.Position3D) error {
	if i < 1 || i > len(m.ControlPoints)+1 {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	if c := m.kind.Capacity(); c > 0 && i > c {
		return fmt.Errorf("%w: %d exceeds %s capacity %d", ErrIndexOutOfRange, i, m.Type, c)
	}
	if i == len(m.ControlPoints)+1 {
		if err := m.Add(point); err != nil {
			return err
		}
	} else {
		m.ControlPoints[i-1].SetPosition(point.X, point.Y, point.Z)
	}
	m.LastUsedControlPointNumber = i
	return nil
}

// wire shapes used on decode. Only type and control points are interpreted;
// remaining schema fields are regenerated on encode.
type wireControlPoint struct {
	ID       int       `json:"id"`
	Position []float64 `json:"position"`
}

type wireMarkup struct {
	Type          string             `json:"type"`
	ControlPoints []wireControlPoint `json:"controlPoints"`
}

type wireDocument struct {
	Markups []wireMarkup `json:"markups"`
}

// DecodeMarkups parses a document's markups array according to the given
// variant's rules. Every entry's type must be accepted by the variant; each
// control point is re-added preserving the original id as the label suffix
// and the position as given.
func DecodeMarkups(kind Kind, data []byte) ([]*Markup, error) {
	var doc wireDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse markup document: %w", err)
	}

	markups := make([]*Markup, 0, len(doc.Markups))
	for _, entry := range doc.Markups {
		if !kind.accepts(entry.Type) {
			return nil, fmt.Errorf("%w: %q not accepted by %s variant", ErrUnrecognizedType, entry.Type, kind.TypeName())
		}
		m := New(kind)
		for _, cp := range entry.ControlPoints {
			pos, err := geo.FromSlice(cp.Position)
			if err != nil {
				return nil, fmt.Errorf("control point %d: %w", cp.ID, err)
			}
			if err := m.AddNumbered(pos, cp.ID); err != nil {
				return nil, err
			}
		}
		markups = append(markups, m)
	}
	return markups, nil
}
