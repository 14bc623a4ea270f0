package svgexport

import (
	"errors"
	"testing"

	"github.com/benoitkugler/glif2svg/glif"
	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/math/f64"
)

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

func pt(x, y float64, kind glif.PointKind) glif.Point {
	return glif.Point{X: x, Y: y, Kind: kind}
}

func TestClosedSquare(t *testing.T) {
	outline := glif.Outline{{Points: []glif.Point{
		pt(0, 0, glif.Line),
		pt(1, 0, glif.Line),
		pt(1, 1, glif.Line),
		pt(0, 1, glif.Line),
	}}}
	// flip against the square's own height
	flip := f64.Aff3{1, 0, 0, 0, -1, 1}
	p, err := ToPath(outline, flip, glif.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	want := "M0,1 L1,1 L1,0 L0,0 Z"
	if got := p.ToSVGPath(0); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestOpenContour(t *testing.T) {
	outline := glif.Outline{{Points: []glif.Point{
		pt(0, 0, glif.Move),
		pt(2, 0, glif.Line),
		pt(2, 2, glif.Line),
	}}}
	p, err := ToPath(outline, identity, glif.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	want := "M0,0 L2,0 L2,2"
	if got := p.ToSVGPath(0); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestQuadraticChaining(t *testing.T) {
	// two consecutive off-curve points imply an on-curve point at
	// their midpoint, yielding two quadratic segments
	outline := glif.Outline{{Points: []glif.Point{
		pt(0, 0, glif.Move),
		pt(1, 2, glif.OffCurve),
		pt(3, 2, glif.OffCurve),
		pt(4, 0, glif.QCurve),
	}}}
	p, err := ToPath(outline, identity, glif.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	want := Path{
		MoveTo{0, 0},
		QuadTo{f64.Vec2{1, 2}, f64.Vec2{2, 2}},
		QuadTo{f64.Vec2{3, 2}, f64.Vec2{4, 0}},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("unexpected path (-want +got):\n%s", diff)
	}
}

func TestCubicSegments(t *testing.T) {
	outline := glif.Outline{{Points: []glif.Point{
		pt(0, 0, glif.Move),
		pt(0, 1, glif.OffCurve),
		pt(1, 1, glif.OffCurve),
		pt(1, 0, glif.Curve),
	}}}
	p, err := ToPath(outline, identity, glif.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	want := Path{
		MoveTo{0, 0},
		CubicTo{f64.Vec2{0, 1}, f64.Vec2{1, 1}, f64.Vec2{1, 0}},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("unexpected path (-want +got):\n%s", diff)
	}
}

// the wrap-around segment of a closed contour ends on the first
// on-curve point, whose kind types it
func TestClosedContourWrapsTrailingControls(t *testing.T) {
	outline := glif.Outline{{Points: []glif.Point{
		pt(0, 0, glif.Curve),
		pt(2, 0, glif.Line),
		pt(2, 2, glif.OffCurve),
		pt(0, 2, glif.OffCurve),
	}}}
	p, err := ToPath(outline, identity, glif.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	want := Path{
		MoveTo{0, 0},
		LineTo{2, 0},
		CubicTo{f64.Vec2{2, 2}, f64.Vec2{0, 2}, f64.Vec2{0, 0}},
		Close{},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("unexpected path (-want +got):\n%s", diff)
	}
}

// TrueType-style contours have no on-curve point at all; the path
// opens on the implied point between the last and first controls.
func TestAllOffCurveContour(t *testing.T) {
	outline := glif.Outline{{Points: []glif.Point{
		pt(0, 0, glif.OffCurve),
		pt(2, 0, glif.OffCurve),
		pt(2, 2, glif.OffCurve),
		pt(0, 2, glif.OffCurve),
	}}}
	p, err := ToPath(outline, identity, glif.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	want := Path{
		MoveTo{0, 1},
		QuadTo{f64.Vec2{0, 0}, f64.Vec2{1, 0}},
		QuadTo{f64.Vec2{2, 0}, f64.Vec2{2, 1}},
		QuadTo{f64.Vec2{2, 2}, f64.Vec2{1, 2}},
		QuadTo{f64.Vec2{0, 2}, f64.Vec2{0, 1}},
		Close{},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("unexpected path (-want +got):\n%s", diff)
	}
}

func TestMalformedCubic(t *testing.T) {
	outline := glif.Outline{{Points: []glif.Point{
		pt(0, 0, glif.Move),
		pt(1, 1, glif.OffCurve),
		pt(2, 0, glif.Curve), // one control point instead of two
	}}}
	_, err := ToPath(outline, identity, glif.WarnErrorMode)
	if !errors.Is(err, ErrMalformedCurve) {
		t.Errorf("expected ErrMalformedCurve, got %v", err)
	}
}

func TestTrailingControlsOpenContour(t *testing.T) {
	outline := glif.Outline{{Points: []glif.Point{
		pt(0, 0, glif.Move),
		pt(1, 1, glif.OffCurve),
	}}}
	_, err := ToPath(outline, identity, glif.WarnErrorMode)
	if !errors.Is(err, ErrMalformedCurve) {
		t.Errorf("expected ErrMalformedCurve, got %v", err)
	}
}

func TestInteriorMove(t *testing.T) {
	outline := glif.Outline{{Points: []glif.Point{
		pt(0, 0, glif.Move),
		pt(1, 0, glif.Line),
		pt(2, 0, glif.Move),
	}}}
	_, err := ToPath(outline, identity, glif.WarnErrorMode)
	if !errors.Is(err, ErrMalformedCurve) {
		t.Errorf("expected ErrMalformedCurve, got %v", err)
	}
}

func TestEmptyContourPolicy(t *testing.T) {
	outline := glif.Outline{
		{Points: []glif.Point{pt(0, 0, glif.Move), pt(1, 0, glif.Line)}},
		{}, // empty
	}
	if _, err := ToPath(outline, identity, glif.StrictErrorMode); !errors.Is(err, ErrEmptyContour) {
		t.Errorf("expected ErrEmptyContour, got %v", err)
	}
	p, err := ToPath(outline, identity, glif.IgnoreErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := p.ToSVGPath(0), "M0,0 L1,0"; got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEmptyOutline(t *testing.T) {
	p, err := ToPath(nil, identity, glif.StrictErrorMode)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.ToSVGPath(6); got != "" {
		t.Errorf("expected empty path data, got %s", got)
	}
}
