package svgexport

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/math/f64"
)

// This file defines the basic path structure

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathQuadTo
	pathCubicTo
	pathClose
)

// Operation groups the different SVG path commands
type Operation interface {
	command() pathCommand
}

type MoveTo f64.Vec2

type LineTo f64.Vec2

type QuadTo [2]f64.Vec2

type CubicTo [3]f64.Vec2

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (QuadTo) command() pathCommand  { return pathQuadTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic SVG operations, already
// expressed in the output (Y down) coordinate space.
type Path []Operation

// ToSVGPath returns the "d" attribute content for the path, with
// every number serialized at prec decimal digits. Contour chunks are
// separated by a single space.
func (p Path) ToSVGPath(prec int) string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = "M" + formatNum(op[0], prec) + "," + formatNum(op[1], prec)
		case LineTo:
			chunks[i] = "L" + formatNum(op[0], prec) + "," + formatNum(op[1], prec)
		case QuadTo:
			chunks[i] = "Q" + formatNum(op[0][0], prec) + "," + formatNum(op[0][1], prec) +
				"," + formatNum(op[1][0], prec) + "," + formatNum(op[1][1], prec)
		case CubicTo:
			chunks[i] = "C" + formatNum(op[0][0], prec) + "," + formatNum(op[0][1], prec) +
				"," + formatNum(op[1][0], prec) + "," + formatNum(op[1][1], prec) +
				"," + formatNum(op[2][0], prec) + "," + formatNum(op[2][1], prec)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path,
// at the default precision.
func (p Path) String() string {
	return p.ToSVGPath(DefaultPrecision)
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a f64.Vec2) {
	*p = append(*p, MoveTo(a))
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b f64.Vec2) {
	*p = append(*p, LineTo(b))
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c f64.Vec2) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d f64.Vec2) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// formatNum truncates v toward zero at prec decimal digits and trims
// trailing zeros, which is what the reference converter emits.
// The locale-independent "." is always the decimal separator.
func formatNum(v float64, prec int) string {
	pow := math.Pow(10, float64(prec))
	scaled := v * pow
	// guard against binary representation noise (0.7*1e6 is slightly
	// below 700000) before truncating
	if r := math.Round(scaled); math.Abs(scaled-r) < 1e-9*math.Max(1, math.Abs(scaled)) {
		scaled = r
	} else {
		scaled = math.Trunc(scaled)
	}
	v = scaled / pow
	if v == 0 { // normalize -0
		v = 0
	}
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if prec > 0 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}
