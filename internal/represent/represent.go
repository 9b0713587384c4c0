// Package represent adapts raw user geometry (point sets, line segments,
// curves, oriented boxes) into markup documents for the external
// visualization tool. Raw geometry is the source of truth; the owned
// document is a derived view rebuilt wholesale on demand.
package represent

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/slic3r-display/converter/internal/geo"
	"github.com/slic3r-display/converter/internal/markup"
)

// Representable is the document-producing capability: a geometry holder
// that can rebuild its markup document from raw geometry. Box does not
// implement it; boxes produce meshes, not documents.
type Representable interface {
	Kind() markup.Kind
	Rebuild() error
	Document() *markup.Document
}

// Write rebuilds r's document and serializes it to path. The original
// tool swallowed write failures after printing a message; here the error
// is returned and the CLI layer decides whether to continue.
func Write(r Representable, path string) error {
	out, err := encode(r)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, append(out, '\n'), 0644); err != nil {
		return fmt.Errorf("could not write to %q: %w", path, err)
	}
	return nil
}

// WriteGzip rebuilds r's document and writes it gzip-compressed to path.
// The compressed stream holds exactly what Write would have written.
func WriteGzip(r Representable, path string) error {
	out, err := encode(r)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not write to %q: %w", path, err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	if _, err := gz.Write(append(out, '\n')); err != nil {
		return fmt.Errorf("could not write to %q: %w", path, err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("could not write to %q: %w", path, err)
	}
	return nil
}

// Print rebuilds r's document and serializes it to w.
func Print(r Representable, w io.Writer) error {
	out, err := encode(r)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", out); err != nil {
		return fmt.Errorf("could not print markup document: %w", err)
	}
	return nil
}

func encode(r Representable) ([]byte, error) {
	if err := r.Rebuild(); err != nil {
		return nil, err
	}
	return r.Document().Encode()
}

// PointSet holds a flat sequence of 3D points rendered as a single
// fiducial markup.
type PointSet struct {
	Points []geo.Position3D

	doc markup.Document
}

// NewPointSet builds a PointSet over the given points.
func NewPointSet(points ...geo.Position3D) *PointSet {
	return &PointSet{Points: points}
}

// Kind returns the fiducial variant.
func (s *PointSet) Kind() markup.Kind { return markup.KindFiducial }

// Document returns the owned markup document.
func (s *PointSet) Document() *markup.Document { return &s.doc }

// Rebuild replaces the document with one fiducial markup holding a control
// point per raw point, point i labeled "P_{i+1}".
func (s *PointSet) Rebuild() error {
	m := markup.New(markup.KindFiducial)
	for i, p := range s.Points {
		if err := m.AddLabeled(p, fmt.Sprintf("P_%d", i+1)); err != nil {
			return err
		}
	}
	s.doc.Replace([]*markup.Markup{m})
	return nil
}

// SwapCoordinateSystem flips the first two axes of every point.
func (s *PointSet) SwapCoordinateSystem() {
	for i := range s.Points {
		s.Points[i] = s.Points[i].SwapRASLPS()
	}
}

// LineSet holds start/end pairs rendered as one line markup per pair.
type LineSet struct {
	Lines [][2]geo.Position3D

	doc markup.Document
}

// NewLineSet builds a LineSet over the given segment pairs.
func NewLineSet(lines ...[2]geo.Position3D) *LineSet {
	return &LineSet{Lines: lines}
}

// Kind returns the line variant.
func (s *LineSet) Kind() markup.Kind { return markup.KindLine }

// Document returns the owned markup document.
func (s *LineSet) Document() *markup.Document { return &s.doc }

// Rebuild replaces the document with one capacity-2 line markup per pair,
// endpoints suffixed with the 1-based line index.
func (s *LineSet) Rebuild() error {
	markups := make([]*markup.Markup, 0, len(s.Lines))
	for i, line := range s.Lines {
		m := markup.New(markup.KindLine)
		if err := m.AddNumbered(line[0], i+1); err != nil {
			return err
		}
		if err := m.AddNumbered(line[1], i+1); err != nil {
			return err
		}
		markups = append(markups, m)
	}
	s.doc.Replace(markups)
	return nil
}

// SwapCoordinateSystem flips the first two axes of every endpoint.
func (s *LineSet) SwapCoordinateSystem() {
	for i := range s.Lines {
		s.Lines[i][0] = s.Lines[i][0].SwapRASLPS()
		s.Lines[i][1] = s.Lines[i][1].SwapRASLPS()
	}
}

// CurveSet holds point sequences rendered as one curve markup each.
type CurveSet struct {
	Curves [][]geo.Position3D

	doc markup.Document
}

// NewCurveSet builds a CurveSet over the given point sequences.
func NewCurveSet(curves ...[]geo.Position3D) *CurveSet {
	return &CurveSet{Curves: curves}
}

// Kind returns the curve variant.
func (s *CurveSet) Kind() markup.Kind { return markup.KindCurve }

// Document returns the owned markup document.
func (s *CurveSet) Document() *markup.Document { return &s.doc }

// Rebuild replaces the document with one curve markup per sequence, points
// added in order with the "OC" prefix.
func (s *CurveSet) Rebuild() error {
	markups := make([]*markup.Markup, 0, len(s.Curves))
	for _, curve := range s.Curves {
		m := markup.New(markup.KindCurve)
		for _, p := range curve {
			if err := m.Add(p); err != nil {
				return err
			}
		}
		markups = append(markups, m)
	}
	s.doc.Replace(markups)
	return nil
}

// SwapCoordinateSystem flips the first two axes of every curve point.
func (s *CurveSet) SwapCoordinateSystem() {
	for i := range s.Curves {
		for j := range s.Curves[i] {
			s.Curves[i][j] = s.Curves[i][j].SwapRASLPS()
		}
	}
}
