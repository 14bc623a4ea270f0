// Package glif parses UFO .glif glyph files into an outline model:
// a list of contours made of typed points, plus the glyph metadata
// (advance, unicode values, anchors) needed by exporters.
// See for example glif2svg/svgexport .
package glif

import (
	"io"
	"os"
)

// ErrorMode determines how recoverable defects in the input
// (unsupported elements, empty contours) are handled.
type ErrorMode uint8

const (
	// IgnoreErrorMode skips the offending element silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips the offending element and logs a warning.
	WarnErrorMode
	// StrictErrorMode aborts with an error.
	StrictErrorMode
)

// PointKind tags a contour point. The zero value is OffCurve,
// matching the .glif convention that a point without a "type"
// attribute is a control point.
type PointKind uint8

const (
	OffCurve PointKind = iota // control point, consumed by the next on-curve point
	Move                      // start of an open contour
	Line
	Curve  // cubic bezier endpoint, expects two preceding off-curve points
	QCurve // quadratic bezier endpoint, accepts chained off-curve points
)

func (k PointKind) String() string {
	switch k {
	case OffCurve:
		return "offcurve"
	case Move:
		return "move"
	case Line:
		return "line"
	case Curve:
		return "curve"
	case QCurve:
		return "qcurve"
	}
	return "invalid"
}

// OnCurve returns true for the kinds the path passes through.
func (k PointKind) OnCurve() bool { return k != OffCurve }

// Point is one contour point in glyph coordinates (Y up,
// origin at the baseline).
type Point struct {
	Name   string
	X, Y   float64
	Kind   PointKind
	Smooth bool
}

// Contour is one sub-path of a glyph outline.
type Contour struct {
	Points []Point
}

// IsClosed reports whether the contour loops back onto its first
// point. Per the .glif convention, a contour is open exactly when its
// first point is a move.
func (c Contour) IsClosed() bool {
	return len(c.Points) > 0 && c.Points[0].Kind != Move
}

// Outline is the full vector shape of one glyph. The slice order is
// the paint order and must be preserved by consumers.
type Outline []Contour

// Advance is the glyph advance, in glyph units.
type Advance struct {
	Width, Height float64
}

// Anchor is a named attachment position.
type Anchor struct {
	Name string
	X, Y float64
}

// Glif holds the data parsed from one .glif file.
type Glif struct {
	Name     string
	Format   int
	Advance  Advance
	Unicodes []rune
	Anchors  []Anchor
	Outline  Outline
}

// ReadGlifStream parses a .glif file from the given io.Reader.
// errMode determines if the parser ignores, errors out, or logs a
// warning when it meets an element it does not handle (components,
// images, unknown tags).
func ReadGlifStream(stream io.Reader, errMode ErrorMode) (*Glif, error) {
	return parseGlif(stream, errMode)
}

// ReadGlif parses the named .glif file.
// See ReadGlifStream for the meaning of errMode.
func ReadGlif(glifFile string, errMode ErrorMode) (*Glif, error) {
	fin, errf := os.Open(glifFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadGlifStream(fin, errMode)
}
