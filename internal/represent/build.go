package represent

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/slic3r-display/converter/internal/geo"
	"github.com/slic3r-display/converter/internal/markup"
)

// ErrMalformedInput is returned when a raw point arrangement does not match
// the expected point/pair/sequence shape.
var ErrMalformedInput = errors.New("malformed point arrangement")

// BuildFromPoints serializes a flat list of raw 3-vectors as a one-markup
// fiducial document, point i labeled "P_{i+1}". Empty input is a documented
// no-op returning the empty string. Shape violations are reported before any
// output is produced.
func BuildFromPoints(points [][]float64) (string, error) {
	parsed, err := parsePoints(points)
	if err != nil {
		return "", err
	}
	if len(parsed) == 0 {
		return "", nil
	}

	m := markup.New(markup.KindFiducial)
	for i, p := range parsed {
		if err := m.AddLabeled(p, fmt.Sprintf("P_%d", i+1)); err != nil {
			return "", err
		}
	}
	return encodeSingle([]*markup.Markup{m})
}

// BuildFromLines serializes raw (start, end) pairs as one line markup per
// pair. Each element must be exactly two 3-vectors.
func BuildFromLines(lines [][][]float64) (string, error) {
	if len(lines) == 0 {
		return "", nil
	}

	markups := make([]*markup.Markup, 0, len(lines))
	for i, raw := range lines {
		if len(raw) != 2 {
			return "", fmt.Errorf("%w: line %d has %d endpoints, want 2", ErrMalformedInput, i, len(raw))
		}
		m := markup.New(markup.KindLine)
		for _, rawPoint := range raw {
			p, err := geo.FromSlice(rawPoint)
			if err != nil {
				return "", fmt.Errorf("%w: line %d: %v", ErrMalformedInput, i, err)
			}
			if err := m.AddNumbered(p, i+1); err != nil {
				return "", err
			}
		}
		markups = append(markups, m)
	}
	return encodeSingle(markups)
}

// BuildFromCurves serializes raw point sequences as one curve markup per
// sequence, points added in order with the "OC" prefix.
func BuildFromCurves(curves [][][]float64) (string, error) {
	if len(curves) == 0 {
		return "", nil
	}

	markups := make([]*markup.Markup, 0, len(curves))
	for i, raw := range curves {
		m := markup.New(markup.KindCurve)
		for _, rawPoint := range raw {
			p, err := geo.FromSlice(rawPoint)
			if err != nil {
				return "", fmt.Errorf("%w: curve %d: %v", ErrMalformedInput, i, err)
			}
			if err := m.Add(p); err != nil {
				return "", err
			}
		}
		markups = append(markups, m)
	}
	return encodeSingle(markups)
}

func parsePoints(points [][]float64) ([]geo.Position3D, error) {
	parsed := make([]geo.Position3D, 0, len(points))
	for i, raw := range points {
		p, err := geo.FromSlice(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: point %d: %v", ErrMalformedInput, i, err)
		}
		parsed = append(parsed, p)
	}
	return parsed, nil
}

func encodeSingle(markups []*markup.Markup) (string, error) {
	doc := markup.Document{Markups: markups}
	out, err := doc.Encode()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// WriteFromPoints builds and writes a fiducial document in one step, with
// no intermediate PointSet.
func WriteFromPoints(points [][]float64, path string) error {
	out, err := BuildFromPoints(points)
	if err != nil {
		return err
	}
	return writeString(out, path)
}

// PrintFromPoints builds a fiducial document and prints it to w.
func PrintFromPoints(points [][]float64, w io.Writer) error {
	out, err := BuildFromPoints(points)
	if err != nil {
		return err
	}
	return printString(out, w)
}

// WriteFromLines builds and writes a line document in one step.
func WriteFromLines(lines [][][]float64, path string) error {
	out, err := BuildFromLines(lines)
	if err != nil {
		return err
	}
	return writeString(out, path)
}

// PrintFromLines builds a line document and prints it to w.
func PrintFromLines(lines [][][]float64, w io.Writer) error {
	out, err := BuildFromLines(lines)
	if err != nil {
		return err
	}
	return printString(out, w)
}

// WriteFromCurves builds and writes a curve document in one step.
func WriteFromCurves(curves [][][]float64, path string) error {
	out, err := BuildFromCurves(curves)
	if err != nil {
		return err
	}
	return writeString(out, path)
}

// PrintFromCurves builds a curve document and prints it to w.
func PrintFromCurves(curves [][][]float64, w io.Writer) error {
	out, err := BuildFromCurves(curves)
	if err != nil {
		return err
	}
	return printString(out, w)
}

func writeString(out, path string) error {
	if err := os.WriteFile(path, []byte(out+"\n"), 0644); err != nil {
		return fmt.Errorf("could not write to %q: %w", path, err)
	}
	return nil
}

func printString(out string, w io.Writer) error {
	if _, err := fmt.Fprintln(w, out); err != nil {
		return fmt.Errorf("could not print markup document: %w", err)
	}
	return nil
}
