// Converts parsed UFO glyphs (see glif2svg/glif) into standalone SVG
// documents: one path element per glyph, sized either from the font's
// declared metrics or from the outline's computed bounds.
package svgexport

import (
	"encoding/xml"
	"errors"

	"github.com/benoitkugler/glif2svg/fontinfo"
	"github.com/benoitkugler/glif2svg/glif"
	"golang.org/x/image/math/f64"
)

// DefaultPrecision is the number of decimal digits used when no
// explicit precision is configured.
const DefaultPrecision = 6

const svgNamespace = "http://www.w3.org/2000/svg"

// ErrInvalidPrecision reports a negative precision, rejected before
// any conversion starts.
var ErrInvalidPrecision = errors.New("precision must not be negative")

// Options control the document output. The zero value is valid:
// precision 0, viewBox emitted, metrics honored when present,
// defects ignored silently.
type Options struct {
	// Metrics provides the font-wide vertical metrics; when nil the
	// document is sized from the outline's computed bounds.
	Metrics *fontinfo.Metrics

	// Precision is the number of decimal digits kept on every number
	// in the output.
	Precision int

	// OmitViewBox drops the viewBox attribute; width and height
	// attributes are emitted in both cases.
	OmitViewBox bool

	// IgnoreMetrics forces bounds-based sizing even when Metrics are
	// available.
	IgnoreMetrics bool

	// TightBounds evaluates curve extrema instead of using the
	// control polygon when computing bounds.
	TightBounds bool

	// Mode picks the policy for recoverable outline defects
	// (empty contours).
	Mode glif.ErrorMode
}

// DefaultOptions are the options used by the glif2svg command line
// tool: warn-and-skip on defective contours, 6 digits of precision.
var DefaultOptions = Options{Precision: DefaultPrecision, Mode: glif.WarnErrorMode}

func (o Options) validate() error {
	if o.Precision < 0 {
		return ErrInvalidPrecision
	}
	return nil
}

// document mirrors the output structure; encoding/xml keeps the
// attribute order fixed, so marshaling is deterministic.
type document struct {
	XMLName xml.Name    `xml:"svg"`
	Xmlns   string      `xml:"xmlns,attr"`
	Version string      `xml:"version,attr"`
	Width   string      `xml:"width,attr"`
	Height  string      `xml:"height,attr"`
	ViewBox string      `xml:"viewBox,attr,omitempty"`
	Path    pathElement `xml:"path"`
}

type pathElement struct {
	D string `xml:"d,attr"`
}

// Export converts one parsed glyph to a self-contained SVG document.
//
// With metrics (and IgnoreMetrics unset), the document is sized by
// the glyph advance width and the font's em height, so that all
// glyphs of a font share a common frame and baseline. Without them,
// the document hugs the computed bounds and the ink is translated to
// the origin. In both cases Y is flipped once, against the vertical
// reference pinned here.
func Export(glyph *glif.Glif, opts Options) (string, error) {
	if err := opts.validate(); err != nil {
		return "", err
	}

	var (
		width, height float64
		trans         f64.Aff3
	)
	if opts.Metrics != nil && !opts.IgnoreMetrics {
		width = glyph.Advance.Width
		height = opts.Metrics.EmHeight()
		trans = f64.Aff3{1, 0, 0, 0, -1, opts.Metrics.EmTop()}
	} else {
		var bounds Bounds
		if opts.TightBounds {
			var err error
			bounds, err = TightBounds(glyph.Outline, opts.Mode)
			if err != nil {
				return "", err
			}
		} else {
			bounds = ControlBounds(glyph.Outline)
		}
		width, height = bounds.Width(), bounds.Height()
		trans = f64.Aff3{1, 0, -bounds.MinX, 0, -1, bounds.MaxY}
	}

	path, err := ToPath(glyph.Outline, trans, opts.Mode)
	if err != nil {
		return "", err
	}

	doc := document{
		Xmlns:   svgNamespace,
		Version: "1.1",
		Width:   formatNum(width, opts.Precision),
		Height:  formatNum(height, opts.Precision),
		Path:    pathElement{D: path.ToSVGPath(opts.Precision)},
	}
	if !opts.OmitViewBox {
		doc.ViewBox = "0 0 " + doc.Width + " " + doc.Height
	}

	out, err := xml.MarshalIndent(doc, "", "    ")
	if err != nil {
		return "", err
	}
	return xml.Header + string(out) + "\n", nil
}
