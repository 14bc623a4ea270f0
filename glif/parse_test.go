package glif

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCubicGlyph(t *testing.T) {
	got, err := ReadGlif("testdata/a.glif", StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	want := Glif{
		Name:     "a",
		Format:   2,
		Advance:  Advance{Width: 470},
		Unicodes: []rune{'a'},
		Anchors:  []Anchor{{Name: "top", X: 235, Y: 520}},
		Outline: Outline{
			{Points: []Point{
				{X: 60, Y: 0, Kind: Line},
				{X: 410, Y: 0, Kind: Line},
				{X: 410, Y: 510, Kind: Line},
				{X: 60, Y: 510, Kind: Line},
			}},
			{Points: []Point{
				{X: 235, Y: 60, Kind: Curve, Smooth: true},
				{X: 300, Y: 60},
				{X: 350, Y: 110},
				{X: 350, Y: 255, Kind: Curve, Smooth: true},
				{X: 350, Y: 400},
				{X: 300, Y: 450},
				{X: 235, Y: 450, Kind: Curve, Smooth: true},
				{X: 170, Y: 450},
				{X: 120, Y: 400},
				{X: 120, Y: 255, Kind: Curve, Smooth: true},
				{X: 120, Y: 110},
				{X: 170, Y: 60},
			}},
		},
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("unexpected glyph (-want +got):\n%s", diff)
	}
	if !got.Outline[0].IsClosed() || !got.Outline[1].IsClosed() {
		t.Error("both contours should be closed")
	}
}

// format 1 stores anchors as lone named move points
func TestParseQuadGlyphAndLegacyAnchor(t *testing.T) {
	got, err := ReadGlif("testdata/q.glif", StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	want := Glif{
		Name:    "q",
		Format:  1,
		Advance: Advance{Width: 300},
		Anchors: []Anchor{{Name: "top", X: 150, Y: 200}},
		Outline: Outline{
			{Points: []Point{
				{X: 0, Y: 0, Kind: Move},
				{X: 50, Y: 100},
				{X: 150, Y: 100},
				{X: 200, Y: 0, Kind: QCurve},
			}},
		},
	}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("unexpected glyph (-want +got):\n%s", diff)
	}
	if got.Outline[0].IsClosed() {
		t.Error("a contour starting with a move point is open")
	}
}

const componentGlif = `<?xml version="1.0" encoding="UTF-8"?>
<glyph name="agrave" format="2">
  <advance width="470"/>
  <outline>
    <component base="a"/>
    <component base="grave" xOffset="120" yOffset="30"/>
  </outline>
</glyph>
`

func TestComponentsSkipped(t *testing.T) {
	glyph, err := ReadGlifStream(strings.NewReader(componentGlif), IgnoreErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if len(glyph.Outline) != 0 {
		t.Errorf("components should not produce contours, got %d", len(glyph.Outline))
	}

	if _, err = ReadGlifStream(strings.NewReader(componentGlif), StrictErrorMode); err == nil {
		t.Error("expected an error for component elements in strict mode")
	}
}

func TestParseErrors(t *testing.T) {
	for _, content := range []string{
		"",
		"not xml at all",
		`<glyph name="x" format="2"><outline><contour><point y="2" type="line"/></contour></outline></glyph>`,
		`<glyph name="x" format="2"><outline><contour><point x="a" y="2"/></contour></outline></glyph>`,
		`<glyph name="x" format="2"><outline><contour><point x="1" y="2" type="cusp"/></contour></outline></glyph>`,
		`<glyph name="x" format="2"><outline><point x="1" y="2"/></outline></glyph>`,
		`<glyph name="x" format="two"></glyph>`,
		`<glyph name="x" format="2"><unicode hex="zz"/></glyph>`,
	} {
		if _, err := ReadGlifStream(strings.NewReader(content), StrictErrorMode); err == nil {
			t.Errorf("expected an error parsing %q", content)
		}
	}
}

func TestPointKindString(t *testing.T) {
	for kind, want := range map[PointKind]string{
		OffCurve:     "offcurve",
		Move:         "move",
		Line:         "line",
		Curve:        "curve",
		QCurve:       "qcurve",
		PointKind(9): "invalid",
	} {
		if got := kind.String(); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
	if OffCurve.OnCurve() || !QCurve.OnCurve() {
		t.Error("unexpected OnCurve classification")
	}
}

func TestReadGlifMissingFile(t *testing.T) {
	_, err := ReadGlif("testdata/missing.glif", WarnErrorMode)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}
