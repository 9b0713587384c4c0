package markup

import "fmt"

// ControlPoint is a single labeled 3D coordinate belonging to a markup.
// Field order matches the external tool's schema.
type ControlPoint struct {
	ID               int        `json:"id"`
	Label            string     `json:"label"`
	Description      string     `json:"description"`
	AssociatedNodeID string     `json:"associatedNodeID"`
	Position         [3]float64 `json:"position"`
	Orientation      [9]float64 `json:"orientation"`
	Selected         bool       `json:"selected"`
	Locked           bool       `json:"locked"`
	Visibility       bool       `json:"visibility"`
	PositionStatus   string     `json:"positionStatus"`
}

// NewControlPoint returns a control point with schema defaults and an
// undefined position.
func NewControlPoint(id int, label string) ControlPoint {
	return ControlPoint{
		ID:             id,
		Label:          label,
		Orientation:    DefaultOrientation,
		Selected:       true,
		Visibility:     true,
		PositionStatus: StatusUndefined,
	}
}

// MakeControlPoint builds a control point labeled "{label}-{id}" with its
// position already defined.
func MakeControlPoint(id int, label string, x, y, z float64) ControlPoint {
	cp := NewControlPoint(id, fmt.Sprintf("%s-%d", label, id))
	cp.SetPosition(x, y, z)
	return cp
}

// SetPosition mutates the position components in place and marks the
// position as defined. Once defined, the status never reverts.
func (cp *ControlPoint) SetPosition(x, y, z float64) {
	cp.PositionStatus = StatusDefined
	cp.Position[0] = x
	cp.Position[1] = y
	cp.Position[2] = z
}
