package svgexport

import (
	"errors"
	"fmt"
	"log"

	"github.com/benoitkugler/glif2svg/glif"
	"golang.org/x/image/math/f64"
)

// Converts glyph outlines to SVG path operations.
//
// Glyph space is Y up with the origin on the baseline; SVG space is
// Y down. The caller passes the affine transform performing the flip
// (and the translation to the origin, when sizing from computed
// bounds), derived once per document so that every contour shares the
// same vertical reference.

var (
	// ErrMalformedCurve reports a curve point without the off-curve
	// control points it requires.
	ErrMalformedCurve = errors.New("malformed curve")
	// ErrEmptyContour reports a contour without any point. It is only
	// returned under StrictErrorMode; otherwise empty contours are
	// skipped.
	ErrEmptyContour = errors.New("empty contour")
)

// apply maps a glyph space point through the 2x3 affine transform.
func apply(trans f64.Aff3, pt glif.Point) f64.Vec2 {
	return f64.Vec2{
		trans[0]*pt.X + trans[1]*pt.Y + trans[2],
		trans[3]*pt.X + trans[4]*pt.Y + trans[5],
	}
}

// onCurveBetween synthesizes the implied on-curve point halfway
// between two consecutive quadratic control points.
func onCurveBetween(a, b glif.Point) glif.Point {
	return glif.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2, Kind: glif.QCurve}
}

// ToPath converts one outline to SVG path operations, mapping every
// coordinate through trans. Contours are emitted in outline order;
// closed contours end with a Close operation. An empty outline yields
// an empty path without error.
func ToPath(outline glif.Outline, trans f64.Aff3, errMode glif.ErrorMode) (Path, error) {
	var p Path
	for i, contour := range outline {
		var err error
		p, err = appendContour(p, contour, trans, errMode)
		if err != nil {
			return nil, fmt.Errorf("contour %d: %w", i, err)
		}
	}
	return p, nil
}

func appendContour(p Path, contour glif.Contour, trans f64.Aff3, errMode glif.ErrorMode) (Path, error) {
	pts := contour.Points
	if len(pts) == 0 {
		switch errMode {
		case glif.StrictErrorMode:
			return p, ErrEmptyContour
		case glif.WarnErrorMode:
			log.Println("skipping empty contour")
		}
		return p, nil
	}

	closed := contour.IsClosed()

	// Pick the start point and order the remaining points so that
	// every segment ends on the on-curve point that types it. A
	// closed contour is rotated to begin on-curve, and its first
	// point reappears at the end as the wrap-around terminator.
	var start glif.Point
	var walk []glif.Point
	if !closed {
		start = pts[0]
		walk = pts[1:]
	} else if i := firstOnCurve(pts); i >= 0 {
		start = pts[i]
		walk = make([]glif.Point, 0, len(pts))
		walk = append(walk, pts[i+1:]...)
		walk = append(walk, pts[:i+1]...)
	} else {
		// TrueType-style contour made only of off-curve points:
		// open it at the implied point between the last and first
		// controls.
		start = onCurveBetween(pts[len(pts)-1], pts[0])
		walk = make([]glif.Point, 0, len(pts)+1)
		walk = append(walk, pts...)
		walk = append(walk, start)
	}

	p.Start(apply(trans, start))

	var offs []glif.Point // pending control points
	for i, pt := range walk {
		last := closed && i == len(walk)-1
		switch pt.Kind {
		case glif.OffCurve:
			offs = append(offs, pt)
		case glif.Line:
			if len(offs) != 0 {
				return p, fmt.Errorf("%w: line point after %d off-curve point(s)", ErrMalformedCurve, len(offs))
			}
			if !last { // the closing line is implied by Z
				p.Line(apply(trans, pt))
			}
		case glif.Curve:
			if len(offs) != 2 {
				return p, fmt.Errorf("%w: cubic point with %d off-curve point(s), want 2", ErrMalformedCurve, len(offs))
			}
			p.CubeBezier(apply(trans, offs[0]), apply(trans, offs[1]), apply(trans, pt))
			offs = offs[:0]
		case glif.QCurve:
			// chained controls imply on-curve points at their
			// midpoints, one quadratic segment each
			for len(offs) > 1 {
				mid := onCurveBetween(offs[0], offs[1])
				p.QuadBezier(apply(trans, offs[0]), apply(trans, mid))
				offs = offs[1:]
			}
			if len(offs) == 1 {
				p.QuadBezier(apply(trans, offs[0]), apply(trans, pt))
				offs = offs[:0]
			} else if !last {
				// a qcurve without controls is a straight segment
				p.Line(apply(trans, pt))
			}
		case glif.Move:
			return p, fmt.Errorf("%w: unexpected interior move point", ErrMalformedCurve)
		default:
			return p, fmt.Errorf("unknown point kind %d", pt.Kind)
		}
	}
	if len(offs) != 0 {
		// only reachable on open contours: nothing terminates the controls
		return p, fmt.Errorf("%w: %d trailing off-curve point(s)", ErrMalformedCurve, len(offs))
	}
	p.Stop(closed)
	return p, nil
}

func firstOnCurve(pts []glif.Point) int {
	for i, pt := range pts {
		if pt.Kind.OnCurve() {
			return i
		}
	}
	return -1
}
