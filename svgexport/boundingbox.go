package svgexport

import (
	"math"

	"github.com/benoitkugler/glif2svg/glif"
	"golang.org/x/image/math/f64"
)

// Computes the bounding box of an outline, needed to size the
// document when no font metrics are available.

// Bounds is an axis-aligned box in glyph coordinates.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

func (b Bounds) union(x, y float64) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, x), MinY: math.Min(b.MinY, y),
		MaxX: math.Max(b.MaxX, x), MaxY: math.Max(b.MaxY, y),
	}
}

var emptyBounds = Bounds{
	MinX: math.Inf(1), MinY: math.Inf(1),
	MaxX: math.Inf(-1), MaxY: math.Inf(-1),
}

// ControlBounds returns the tightest box containing every contour
// point, on-curve and off-curve alike. Control points bound the
// curve's convex hull, so the box may overestimate the ink extent but
// never clips it. An empty outline yields the zero Bounds.
func ControlBounds(outline glif.Outline) Bounds {
	b, seen := emptyBounds, false
	for _, contour := range outline {
		for _, pt := range contour.Points {
			b = b.union(pt.X, pt.Y)
			seen = true
		}
	}
	if !seen {
		return Bounds{}
	}
	return b
}

// TightBounds returns the box hugging the actual curves, found by
// evaluating each segment at the roots of its derivative. It is
// slightly more work than ControlBounds and only changes the result
// for outlines whose control points stick out of the ink.
func TightBounds(outline glif.Outline, errMode glif.ErrorMode) (Bounds, error) {
	identity := f64.Aff3{1, 0, 0, 0, 1, 0}
	p, err := ToPath(outline, identity, errMode)
	if err != nil {
		return Bounds{}, err
	}
	b, seen := emptyBounds, false
	var cur f64.Vec2
	for _, op := range p {
		var curve bezier
		switch op := op.(type) {
		case MoveTo:
			cur = f64.Vec2(op)
			b = b.union(cur[0], cur[1])
			seen = true
			continue
		case LineTo:
			curve = line{cur, f64.Vec2(op)}
			cur = f64.Vec2(op)
		case QuadTo:
			curve = quadBezier{cur, op[0], op[1]}
			cur = op[1]
		case CubicTo:
			curve = cubicBezier{cur, op[0], op[1], op[2]}
			cur = op[2]
		case Close:
			// the closing line adds no extrema beyond its endpoints
			continue
		}
		b = unionCurve(b, curve)
		seen = true
	}
	if !seen {
		return Bounds{}, nil
	}
	return b, nil
}

type bezier interface {
	// compute the t zeroing the derivative
	criticalPoints() (tX, tY []float64)
	// compute the point at time t
	evaluateCurve(t float64) (x, y float64)
}

func unionCurve(b Bounds, curve bezier) Bounds {
	resX, resY := curve.criticalPoints()
	// extrema lie at the critical points or at the endpoints
	for _, t := range append(append(resX, 0, 1), resY...) {
		if !(0 <= t && t <= 1) {
			continue
		}
		x, y := curve.evaluateCurve(t)
		b = b.union(x, y)
	}
	return b
}

type line [2]f64.Vec2

func (l line) criticalPoints() (tX, tY []float64) { return nil, nil }

func (l line) evaluateCurve(t float64) (x, y float64) {
	return bezierLine(l[0][0], l[1][0], t), bezierLine(l[0][1], l[1][1], t)
}

func bezierLine(p0, p1, t float64) float64 {
	return (p1-p0)*t + p0
}

type quadBezier [3]f64.Vec2

// quadratic polynomial
// x = At^2 + Bt + C
// where
// A = p0 + p2 - 2p1
// B = 2(p1 - p0)
// C = p0
func bezierQuad(p0, p1, p2, t float64) float64 {
	return (p0+p2-2*p1)*t*t + 2*(p1-p0)*t + p0
}

// derivative as at + b where a,b :
func quadraticDerivative(p0, p1, p2 float64) (a, b float64) {
	return 2 * (p2 - p1 - (p1 - p0)), 2 * (p1 - p0)
}

// handle the case where a = 0
func linearRoots(a, b float64) []float64 {
	if a == 0 {
		return nil
	}
	return []float64{-b / a}
}

func (cu quadBezier) criticalPoints() (tX, tY []float64) {
	aX, bX := quadraticDerivative(cu[0][0], cu[1][0], cu[2][0])
	aY, bY := quadraticDerivative(cu[0][1], cu[1][1], cu[2][1])
	return linearRoots(aX, bX), linearRoots(aY, bY)
}

func (cu quadBezier) evaluateCurve(t float64) (x, y float64) {
	return bezierQuad(cu[0][0], cu[1][0], cu[2][0], t),
		bezierQuad(cu[0][1], cu[1][1], cu[2][1], t)
}

type cubicBezier [4]f64.Vec2

// cubic polynomial
// x = At^3 + Bt^2 + Ct + D
// where A,B,C,D:
// A = p3 -3 * p2 + 3 * p1 - p0
// B = 3 * p2 - 6 * p1 +3 * p0
// C = 3 * p1 - 3 * p0
// D = p0
func bezierSpline(p0, p1, p2, p3, t float64) float64 {
	return (p3-3*p2+3*p1-p0)*t*t*t +
		(3*p2-6*p1+3*p0)*t*t +
		(3*p1-3*p0)*t +
		(p0)
}

// derivative of the cubic polynomial, taken as at^2 + bt + c:
func cubicDerivative(p0, p1, p2, p3 float64) (a, b, c float64) {
	return 3*p3 - 9*p2 + 9*p1 - 3*p0, 6*p2 - 12*p1 + 6*p0, 3*p1 - 3*p0
}

func quadraticRoots(a, b, c float64) []float64 {
	if a == 0 {
		// at^2 + bt + c is then a simple line
		return linearRoots(b, c)
	}
	d := b*b - 4*a*c
	if d < 0 {
		return nil
	}
	if d == 0 {
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(d)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

func (cu cubicBezier) criticalPoints() (tX, tY []float64) {
	aX, bX, cX := cubicDerivative(cu[0][0], cu[1][0], cu[2][0], cu[3][0])
	aY, bY, cY := cubicDerivative(cu[0][1], cu[1][1], cu[2][1], cu[3][1])
	return quadraticRoots(aX, bX, cX), quadraticRoots(aY, bY, cY)
}

func (cu cubicBezier) evaluateCurve(t float64) (x, y float64) {
	return bezierSpline(cu[0][0], cu[1][0], cu[2][0], cu[3][0], t),
		bezierSpline(cu[0][1], cu[1][1], cu[2][1], cu[3][1], t)
}
