package markup

// Kind enumerates the closed set of markup variants. Variants differ only in
// capacity, label prefix and the type strings they accept on decode, so they
// are dispatched by switch rather than through an interface.
type Kind int

const (
	KindFiducial Kind = iota
	KindLine
	KindCurve
	KindClosedCurve
)

// TypeName returns the wire value for the markup "type" field.
func (k Kind) TypeName() string {
	switch k {
	case KindFiducial:
		return "Fiducial"
	case KindLine:
		return "Line"
	case KindCurve:
		return "Curve"
	case KindClosedCurve:
		return "ClosedCurve"
	default:
		return "Unknown"
	}
}

// Prefix returns the label prefix used when auto-labeling added control
// points.
func (k Kind) Prefix() string {
	switch k {
	case KindLine:
		return "L"
	case KindCurve, KindClosedCurve:
		return "OC"
	default:
		return "P"
	}
}

// Capacity returns the maximum number of control points the variant may
// hold. Zero means unbounded.
func (k Kind) Capacity() int {
	if k == KindLine {
		return 2
	}
	return 0
}

// AcceptedTypes lists the wire type strings the variant recognizes on
// decode. The curve variant accepts both open and closed curves.
func (k Kind) AcceptedTypes() []string {
	switch k {
	case KindFiducial:
		return []string{"Fiducial"}
	case KindLine:
		return []string{"Line"}
	case KindCurve, KindClosedCurve:
		return []string{"Curve", "ClosedCurve"}
	default:
		return nil
	}
}

func (k Kind) accepts(typeName string) bool {
	for _, t := range k.AcceptedTypes() {
		if t == typeName {
			return true
		}
	}
	return false
}
