// Package pdfdoc is the boundary to the PDF library. It exposes the
// minimal document surface the extraction pipeline needs: per-page
// text spans in reading order, raw annotation records, and a
// best-effort table of contents.
package pdfdoc

import "github.com/dgallion1/vivamark/internal/geometry"

// Annotation subtypes the pipeline understands. Anything else is
// skipped (and counted) by the extractor.
const (
	SubtypeText      = "Text"
	SubtypeHighlight = "Highlight"
	SubtypeInk       = "Ink"
)

// Annotation is one raw PDF annotation record. All coordinates are
// top-origin page coordinates.
type Annotation struct {
	Subtype  string
	Rect     geometry.Rect
	Quads    []geometry.Rect // highlight quad-point regions, one rect per quad
	Contents string          // free text, possibly empty
	Author   string          // ignored by the pipeline
}

// TextSpan is a contiguous run of page text with a known position.
// A page yields spans in reading order (top-to-bottom, left-to-right);
// the slice index is meaningful for previous/next-line lookups.
type TextSpan struct {
	Rect geometry.Rect
	Text string
}

// Page holds everything extracted from one PDF page.
type Page struct {
	Number      int // 1-based
	Width       float64
	Height      float64
	Spans       []TextSpan
	Annotations []Annotation
}

// TOCEntry is one outline entry. StartPage is 1-based; 0 means the
// destination could not be resolved.
type TOCEntry struct {
	Title     string
	StartPage int
}

// Source is the document surface consumed by the extractor and
// grouper. The concrete implementation is Reader; tests use fakes.
type Source interface {
	PageCount() int
	Page(n int) (Page, error)
	TOC() []TOCEntry
}
