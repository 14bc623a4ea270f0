// Command glif2svg converts UFO .glif glyph files to SVG documents.
//
// The vertical metrics (em height, ascender) are read from the
// font's fontinfo.plist when one is found next to the glyph (or
// given with -fontinfo); otherwise the document is sized from the
// outline's computed bounds. A directory of .glif files is converted
// concurrently, and one defective glyph does not abort the batch.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/benoitkugler/glif2svg/fontinfo"
	"github.com/benoitkugler/glif2svg/glif"
	"github.com/benoitkugler/glif2svg/svgexport"
)

const pipeName = "-"

var (
	output      = flag.String("out", pipeName, "Destination file, or directory in directory mode. \"-\" means stdout.")
	noViewBox   = flag.Bool("no-viewbox", false, "Don't put a viewBox attribute in the SVG")
	noMetrics   = flag.Bool("no-metrics", false, "Ignore font metrics, size the SVG from the outline bounds")
	fontinfoArg = flag.String("fontinfo", "", "Path of the fontinfo.plist providing the metrics (located automatically when empty)")
	precision   = flag.Int("precision", svgexport.DefaultPrecision, "Number of decimal digits in the output")
	tightBounds = flag.Bool("tight-bounds", false, "Compute outline bounds from curve extrema instead of control points")
	strict      = flag.Bool("strict", false, "Fail on defective contours and unknown elements instead of skipping them")
	quiet       = flag.Bool("quiet", false, "Don't warn about skipped elements")
	workers     = flag.Int("conc", runtime.NumCPU(), "Number of files to convert concurrently in directory mode")
)

func main() {
	log.SetPrefix("glif2svg: ")
	log.SetFlags(0)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(),
			"Usage: glif2svg [options] <file.glif | glyphs dir> [output]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	input := flag.Arg(0)
	if input == "" {
		flag.Usage()
		os.Exit(2)
	}
	dest := *output
	if flag.Arg(1) != "" {
		dest = flag.Arg(1)
	}

	mode := glif.WarnErrorMode
	if *strict {
		mode = glif.StrictErrorMode
	} else if *quiet {
		mode = glif.IgnoreErrorMode
	}
	opts := svgexport.Options{
		Precision:     *precision,
		OmitViewBox:   *noViewBox,
		IgnoreMetrics: *noMetrics,
		TightBounds:   *tightBounds,
		Mode:          mode,
	}

	fi, err := os.Stat(input)
	if err != nil {
		log.Fatal(err)
	}
	if fi.IsDir() {
		err = convertDir(input, dest, opts)
	} else {
		err = convertFile(input, dest, opts)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// loadMetrics resolves the metrics record governing the given glyph
// file, honoring the -fontinfo override. A missing fontinfo.plist is
// not an error: the converter degrades to bounds-based sizing.
func loadMetrics(glifPath string) *fontinfo.Metrics {
	if *noMetrics {
		return nil
	}
	plist := *fontinfoArg
	if plist == "" {
		var ok bool
		plist, ok = fontinfo.Find(glifPath)
		if !ok {
			if !*quiet {
				log.Println("no fontinfo.plist found, sizing from outline bounds")
			}
			return nil
		}
	}
	metrics, err := fontinfo.ReadMetrics(plist)
	if err != nil {
		log.Printf("failed to read metrics from %s: %s", plist, err)
		return nil
	}
	return metrics
}

func render(input string, opts svgexport.Options) (string, error) {
	glyph, err := glif.ReadGlif(input, opts.Mode)
	if err != nil {
		return "", err
	}
	return svgexport.Export(glyph, opts)
}

func convertFile(input, dest string, opts svgexport.Options) error {
	opts.Metrics = loadMetrics(input)
	doc, err := render(input, opts)
	if err != nil {
		return err
	}
	if dest == pipeName || dest == "" {
		_, err = io.WriteString(os.Stdout, doc)
		return err
	}
	return os.WriteFile(dest, []byte(doc), 0644)
}

type result struct {
	path string
	err  error
}

// convertDir converts every .glif file of the input directory into
// dest, spreading the files over the configured number of workers.
// The glyphs of one font share their metrics, resolved once up front.
func convertDir(input, dest string, opts svgexport.Options) error {
	if dest == pipeName || dest == "" {
		return errors.New("directory mode needs an output directory (-out)")
	}
	if _, err := os.Stat(dest); err != nil {
		if err = os.Mkdir(dest, 0755); err != nil {
			return err
		}
	}
	entries, err := os.ReadDir(input)
	if err != nil {
		return err
	}
	opts.Metrics = loadMetrics(filepath.Join(input, "_"))

	if *workers <= 0 {
		*workers = runtime.NumCPU()
	}
	paths := make(chan string)
	results := make(chan result)
	var wg sync.WaitGroup
	wg.Add(*workers)
	for i := 0; i < *workers; i++ {
		go func() {
			defer wg.Done()
			for path := range paths {
				name := strings.TrimSuffix(filepath.Base(path), ".glif") + ".svg"
				doc, err := render(path, opts)
				if err == nil {
					err = os.WriteFile(filepath.Join(dest, name), []byte(doc), 0644)
				}
				results <- result{path: path, err: err}
			}
		}()
	}
	go func() {
		for _, e := range entries {
			if !e.IsDir() && filepath.Ext(e.Name()) == ".glif" {
				paths <- filepath.Join(input, e.Name())
			}
		}
		close(paths)
		wg.Wait()
		close(results)
	}()

	failed := 0
	for res := range results {
		if res.err != nil {
			// a single defective glyph must not abort the batch
			failed++
			log.Printf("%s: %s", res.path, res.err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d glyph(s) failed", failed)
	}
	return nil
}
