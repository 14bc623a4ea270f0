// Package fontinfo reads font-wide vertical metrics from a UFO
// fontinfo.plist file. Exporters use them to size documents from the
// declared em box instead of the ink extent of a single glyph.
package fontinfo

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// Metrics are the font-wide values relevant to glyph export, in glyph
// units. Fields missing from the plist are left at zero.
type Metrics struct {
	UnitsPerEm float64
	Ascender   float64
	Descender  float64 // negative for ink below the baseline
	CapHeight  float64
	XHeight    float64
}

// EmHeight is the declared height of the em box, used as document
// height when exporting with metrics. Falls back to UnitsPerEm when
// ascender and descender are absent.
func (m Metrics) EmHeight() float64 {
	if h := m.Ascender - m.Descender; h > 0 {
		return h
	}
	return m.UnitsPerEm
}

// EmTop is the Y coordinate (glyph space) of the top of the em box:
// the reference height for flipping into SVG's Y-down space.
func (m Metrics) EmTop() float64 {
	if m.Ascender != 0 || m.Descender != 0 {
		return m.Ascender
	}
	return m.UnitsPerEm
}

// ReadMetricsStream parses an XML plist from the given io.Reader,
// keeping only the top level keys of Metrics.
func ReadMetricsStream(stream io.Reader) (*Metrics, error) {
	metrics := &Metrics{}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		depth    int // nesting level of dict/array containers
		key      string
		text     strings.Builder
		captured bool
		seenDict bool
	)
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				if !seenDict {
					return nil, errors.New("invalid fontinfo plist")
				}
				break
			}
			return metrics, err
		}
		switch se := t.(type) {
		case xml.StartElement:
			switch se.Name.Local {
			case "dict", "array":
				seenDict = true
				depth++
				key = ""
				captured = false
			case "key", "integer", "real":
				text.Reset()
				captured = true
			default:
				captured = false
			}
		case xml.CharData:
			if captured {
				text.Write(se)
			}
		case xml.EndElement:
			switch se.Name.Local {
			case "dict", "array":
				depth--
			case "key":
				key = text.String()
			case "integer", "real":
				// only top level keys carry metrics; nested
				// containers hold guidelines, name records, etc.
				if depth == 1 && key != "" {
					v, err := strconv.ParseFloat(strings.TrimSpace(text.String()), 64)
					if err != nil {
						return nil, fmt.Errorf("invalid value for fontinfo key %s: %w", key, err)
					}
					metrics.assign(key, v)
				}
				key = ""
			default:
				key = ""
			}
			captured = false
		}
	}
	return metrics, nil
}

// ReadMetrics parses the named fontinfo.plist file.
func ReadMetrics(plistFile string) (*Metrics, error) {
	fin, errf := os.Open(plistFile)
	if errf != nil {
		return nil, errf
	}
	defer fin.Close()
	return ReadMetricsStream(fin)
}

func (m *Metrics) assign(key string, v float64) {
	switch key {
	case "unitsPerEm":
		m.UnitsPerEm = v
	case "ascender":
		m.Ascender = v
	case "descender":
		m.Descender = v
	case "capHeight":
		m.CapHeight = v
	case "xHeight":
		m.XHeight = v
	}
}

// Find locates the fontinfo.plist governing the given .glif file,
// walking up from the glyph's directory (the UFO layout stores glyphs
// in font.ufo/glyphs/). It returns false when no fontinfo.plist
// exists, which callers treat as "export from computed bounds",
// not as an error.
func Find(glifPath string) (string, bool) {
	dir := filepath.Dir(glifPath)
	for i := 0; i < 3; i++ {
		candidate := filepath.Join(dir, "fontinfo.plist")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false
}
