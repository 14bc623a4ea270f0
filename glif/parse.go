package glif

import (
	"encoding/xml"
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// glifCursor is used while parsing .glif files
type glifCursor struct {
	glyph     *Glif
	contour   []Point
	inContour bool
	skipDepth int // > 0 while inside lib/note/image subtrees
	errorMode ErrorMode
}

type glifFunc func(c *glifCursor, attrs []xml.Attr) error

var elementFuncs = map[string]glifFunc{
	"glyph":   glyphF,
	"advance": advanceF,
	"unicode": unicodeF,
	"anchor":  anchorF,
	"outline": outlineF,
	"contour": contourF,
	"point":   pointF,
}

func parseFloat(v string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}

func parseGlif(stream io.Reader, errMode ErrorMode) (*Glif, error) {
	glyph := &Glif{}
	cursor := &glifCursor{glyph: glyph, errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenGlyph := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenGlyph {
					return nil, errors.New("invalid glif xml file")
				}
				break
			}
			return glyph, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			if cursor.skipDepth > 0 {
				cursor.skipDepth++
				continue
			}
			switch se.Name.Local {
			case "lib", "note", "image", "guideline":
				// plist payloads and editor metadata, no outline content
				cursor.skipDepth = 1
				continue
			}
			if se.Name.Local == "glyph" {
				seenGlyph = true
			}
			err = cursor.readStartElement(se)
			if err != nil {
				return glyph, err
			}
		case xml.EndElement:
			if cursor.skipDepth > 0 {
				cursor.skipDepth--
				continue
			}
			if se.Name.Local == "contour" {
				cursor.closeContour()
			}
		}
	}
	return glyph, nil
}

func (c *glifCursor) readStartElement(se xml.StartElement) error {
	df, ok := elementFuncs[se.Name.Local]
	if !ok {
		errStr := "Cannot process glif element " + se.Name.Local
		if c.errorMode == StrictErrorMode {
			return errors.New(errStr)
		} else if c.errorMode == WarnErrorMode {
			log.Println(errStr)
		}
		return nil
	}
	return df(c, se.Attr)
}

// closeContour commits the pending contour to the outline. The glif
// format 1 anchor convention (a lone named move point) is lifted into
// the glyph's anchor list instead.
func (c *glifCursor) closeContour() {
	if !c.inContour {
		return
	}
	c.inContour = false
	pts := c.contour
	c.contour = nil
	if len(pts) == 1 && pts[0].Kind == Move && pts[0].Name != "" {
		c.glyph.Anchors = append(c.glyph.Anchors, Anchor{
			Name: pts[0].Name, X: pts[0].X, Y: pts[0].Y,
		})
		return
	}
	c.glyph.Outline = append(c.glyph.Outline, Contour{Points: pts})
}

func glyphF(c *glifCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "name":
			c.glyph.Name = attr.Value
		case "format":
			format, err := strconv.Atoi(strings.TrimSpace(attr.Value))
			if err != nil {
				return errors.New("invalid glyph format attribute: " + attr.Value)
			}
			c.glyph.Format = format
		}
	}
	return nil
}

func advanceF(c *glifCursor, attrs []xml.Attr) error {
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "width":
			c.glyph.Advance.Width, err = parseFloat(attr.Value)
		case "height":
			c.glyph.Advance.Height, err = parseFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func unicodeF(c *glifCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local == "hex" {
			v, err := strconv.ParseUint(strings.TrimSpace(attr.Value), 16, 32)
			if err != nil {
				return errors.New("invalid unicode hex attribute: " + attr.Value)
			}
			c.glyph.Unicodes = append(c.glyph.Unicodes, rune(v))
		}
	}
	return nil
}

func anchorF(c *glifCursor, attrs []xml.Attr) error {
	var (
		anchor Anchor
		err    error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			anchor.X, err = parseFloat(attr.Value)
		case "y":
			anchor.Y, err = parseFloat(attr.Value)
		case "name":
			anchor.Name = attr.Value
		}
		if err != nil {
			return err
		}
	}
	c.glyph.Anchors = append(c.glyph.Anchors, anchor)
	return nil
}

func outlineF(*glifCursor, []xml.Attr) error { return nil } // outline is just a container

func contourF(c *glifCursor, _ []xml.Attr) error {
	if c.inContour {
		return errors.New("nested contour elements")
	}
	c.inContour = true
	return nil
}

func pointF(c *glifCursor, attrs []xml.Attr) error {
	if !c.inContour {
		return errors.New("point element outside of a contour")
	}
	var (
		pt           Point
		seenX, seenY bool
		err          error
	)
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			pt.X, err = parseFloat(attr.Value)
			seenX = true
		case "y":
			pt.Y, err = parseFloat(attr.Value)
			seenY = true
		case "type":
			pt.Kind, err = parsePointKind(attr.Value)
		case "smooth":
			pt.Smooth = attr.Value == "yes"
		case "name":
			pt.Name = attr.Value
		}
		if err != nil {
			return err
		}
	}
	if !seenX || !seenY {
		return errors.New("point element misses x or y attribute")
	}
	c.contour = append(c.contour, pt)
	return nil
}

func parsePointKind(v string) (PointKind, error) {
	switch v {
	case "move":
		return Move, nil
	case "line":
		return Line, nil
	case "curve":
		return Curve, nil
	case "qcurve":
		return QCurve, nil
	case "offcurve", "": // explicit "offcurve" is legal although redundant
		return OffCurve, nil
	}
	return OffCurve, errors.New("unknown point type " + v)
}
