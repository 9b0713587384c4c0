package represent

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slic3r-display/converter/internal/geo"
	"github.com/slic3r-display/converter/internal/markup"
)

func TestPointSetRebuild(t *testing.T) {
	s := NewPointSet(
		geo.Position3D{X: 1},
		geo.Position3D{Y: 2},
		geo.Position3D{Z: 3},
	)

	require.NoError(t, s.Rebuild())

	doc := s.Document()
	require.Len(t, doc.Markups, 1)
	m := doc.Markups[0]
	assert.Equal(t, "Fiducial", m.Type)
	require.Equal(t, 3, m.Len())
	assert.Equal(t, "P_1", m.ControlPoints[0].Label)
	assert.Equal(t, "P_3", m.ControlPoints[2].Label)
	assert.Equal(t, [3]float64{0, 0, 3}, m.ControlPoints[2].Position)
}

func TestPointSetRebuild_Idempotent(t *testing.T) {
	s := NewPointSet(geo.Position3D{X: 1})

	require.NoError(t, s.Rebuild())
	require.NoError(t, s.Rebuild())

	// Rebuild replaces wholesale; it never appends across calls.
	require.Len(t, s.Document().Markups, 1)
	assert.Equal(t, 1, s.Document().Markups[0].Len())
}

func TestLineSetRebuild(t *testing.T) {
	s := NewLineSet(
		[2]geo.Position3D{{X: 0}, {X: 1}},
		[2]geo.Position3D{{Y: 0}, {Y: 1}},
	)

	require.NoError(t, s.Rebuild())

	doc := s.Document()
	require.Len(t, doc.Markups, 2)
	for i, m := range doc.Markups {
		assert.Equal(t, "Line", m.Type)
		assert.Equal(t, 2, m.Len())
		assert.Contains(t, m.ControlPoints[0].Label, fmt.Sprintf("L_%d", i+1))
	}
	assert.Equal(t, "L_1-1", doc.Markups[0].ControlPoints[0].Label)
	assert.Equal(t, "L_1-2", doc.Markups[0].ControlPoints[1].Label)
}

func TestCurveSetRebuild(t *testing.T) {
	s := NewCurveSet(
		[]geo.Position3D{{X: 1}, {X: 2}, {X: 3}},
	)

	require.NoError(t, s.Rebuild())

	doc := s.Document()
	require.Len(t, doc.Markups, 1)
	m := doc.Markups[0]
	assert.Equal(t, "Curve", m.Type)
	require.Equal(t, 3, m.Len())
	assert.Equal(t, "OC-1", m.ControlPoints[0].Label)
	assert.Equal(t, [3]float64{3, 0, 0}, m.ControlPoints[2].Position)
}

func TestSwapCoordinateSystem(t *testing.T) {
	s := NewPointSet(geo.Position3D{X: 1, Y: 2, Z: 3})
	s.SwapCoordinateSystem()
	assert.Equal(t, geo.Position3D{X: -1, Y: -2, Z: 3}, s.Points[0])

	l := NewLineSet([2]geo.Position3D{{X: 1}, {Y: 1}})
	l.SwapCoordinateSystem()
	assert.Equal(t, geo.Position3D{X: -1}, l.Lines[0][0])
	assert.Equal(t, geo.Position3D{Y: -1}, l.Lines[0][1])

	c := NewCurveSet([]geo.Position3D{{X: 1, Y: 1, Z: 1}})
	c.SwapCoordinateSystem()
	assert.Equal(t, geo.Position3D{X: -1, Y: -1, Z: 1}, c.Curves[0][0])
}

func TestWriteAndDecode(t *testing.T) {
	s := NewLineSet([2]geo.Position3D{{}, {X: 1}})
	path := filepath.Join(t.TempDir(), "lines.mrk.json")

	require.NoError(t, Write(s, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	markups, err := markup.DecodeMarkups(markup.KindLine, data)
	require.NoError(t, err)
	require.Len(t, markups, 1)
	assert.Equal(t, [3]float64{1, 0, 0}, markups[0].ControlPoints[1].Position)
}

func TestWriteGzip_DecodesToSameDocument(t *testing.T) {
	s := NewLineSet([2]geo.Position3D{{}, {X: 1, Y: 2, Z: 3}})
	dir := t.TempDir()
	plainPath := filepath.Join(dir, "lines.mrk.json")
	gzPath := filepath.Join(dir, "lines.mrk.json.gz")

	require.NoError(t, Write(s, plainPath))
	require.NoError(t, WriteGzip(s, gzPath))

	f, err := os.Open(gzPath)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	unzipped, err := io.ReadAll(gz)
	require.NoError(t, err)

	plain, err := os.ReadFile(plainPath)
	require.NoError(t, err)
	assert.Equal(t, plain, unzipped)

	markups, err := markup.DecodeMarkups(markup.KindLine, unzipped)
	require.NoError(t, err)
	require.Len(t, markups, 1)
	assert.Equal(t, [3]float64{1, 2, 3}, markups[0].ControlPoints[1].Position)
}

func TestWriteGzip_BadPath(t *testing.T) {
	s := NewPointSet(geo.Position3D{X: 1})
	err := WriteGzip(s, filepath.Join(t.TempDir(), "no", "such", "dir", "out.mrk.json.gz"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not write")
}

func TestWrite_BadPath(t *testing.T) {
	s := NewPointSet(geo.Position3D{X: 1})
	err := Write(s, filepath.Join(t.TempDir(), "no", "such", "dir", "out.mrk.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not write")
}

func TestPrint(t *testing.T) {
	s := NewPointSet(geo.Position3D{X: 1, Y: 2, Z: 3})
	var buf bytes.Buffer

	require.NoError(t, Print(s, &buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, markup.SchemaURL, decoded["@schema"])
}

func TestBuildFromPoints(t *testing.T) {
	out, err := BuildFromPoints([][]float64{
		{1.0, 0.0, 0.0},
		{2.0, 0.0, 0.0},
	})
	require.NoError(t, err)

	markups, err := markup.DecodeMarkups(markup.KindFiducial, []byte(out))
	require.NoError(t, err)
	require.Len(t, markups, 1)
	require.Equal(t, 2, markups[0].Len())
	assert.Equal(t, [3]float64{2, 0, 0}, markups[0].ControlPoints[1].Position)

	var decoded struct {
		Markups []struct {
			ControlPoints []struct {
				Label string `json:"label"`
			} `json:"controlPoints"`
		} `json:"markups"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "P_1", decoded.Markups[0].ControlPoints[0].Label)
	assert.Equal(t, "P_2", decoded.Markups[0].ControlPoints[1].Label)
}

func TestBuildFromPoints_EmptyIsNoOp(t *testing.T) {
	out, err := BuildFromPoints(nil)
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestBuildFromPoints_Malformed(t *testing.T) {
	_, err := BuildFromPoints([][]float64{{1.0, 2.0}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestBuildFromLines(t *testing.T) {
	out, err := BuildFromLines([][][]float64{
		{{1, 0, 0}, {2, 0, 0}},
		{{3, 0, 0}, {4, 0, 0}},
	})
	require.NoError(t, err)

	markups, err := markup.DecodeMarkups(markup.KindLine, []byte(out))
	require.NoError(t, err)
	require.Len(t, markups, 2)
	assert.Equal(t, [3]float64{4, 0, 0}, markups[1].ControlPoints[1].Position)
}

func TestBuildFromLines_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		lines [][][]float64
	}{
		{"not a pair", [][][]float64{{{1, 0, 0}}}},
		{"three endpoints", [][][]float64{{{1, 0, 0}, {2, 0, 0}, {3, 0, 0}}}},
		{"short point", [][][]float64{{{1, 0}, {2, 0, 0}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFromLines(tt.lines)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedInput))
		})
	}
}

func TestBuildFromCurves(t *testing.T) {
	out, err := BuildFromCurves([][][]float64{
		{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}},
	})
	require.NoError(t, err)

	markups, err := markup.DecodeMarkups(markup.KindCurve, []byte(out))
	require.NoError(t, err)
	require.Len(t, markups, 1)
	assert.Equal(t, 3, markups[0].Len())
}

func TestPrintFromPoints(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintFromPoints([][]float64{{1, 2, 3}}, &buf))
	assert.Contains(t, buf.String(), `"@schema"`)
}

func TestWriteFromLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.mrk.json")
	require.NoError(t, WriteFromLines([][][]float64{{{0, 0, 0}, {1, 0, 0}}}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	markups, err := markup.DecodeMarkups(markup.KindLine, data)
	require.NoError(t, err)
	require.Len(t, markups, 1)
}
