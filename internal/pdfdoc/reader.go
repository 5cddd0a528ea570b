package pdfdoc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/vivamark/internal/geometry"
)

// Input limits. Documents beyond these are rejected up front to keep
// worst-case run time bounded.
const (
	DefaultMaxSizeMB = 500
	DefaultMaxPages  = 10000
)

var (
	ErrNotFound     = errors.New("pdf file not found")
	ErrNotPDF       = errors.New("not a pdf file")
	ErrTooLarge     = errors.New("pdf exceeds maximum file size")
	ErrTooManyPages = errors.New("pdf exceeds maximum page count")
)

// Limits bounds the documents Open accepts. Zero fields use defaults.
type Limits struct {
	MaxSizeMB int64
	MaxPages  int
}

func (l Limits) withDefaults() Limits {
	if l.MaxSizeMB <= 0 {
		l.MaxSizeMB = DefaultMaxSizeMB
	}
	if l.MaxPages <= 0 {
		l.MaxPages = DefaultMaxPages
	}
	return l
}

// Reader is the ledongthuc/pdf-backed Source implementation.
type Reader struct {
	f     *os.File
	r     *pdflib.Reader
	pages int

	pageKeys map[string]int // page dict fingerprint -> 1-based page number
}

var _ Source = (*Reader)(nil)

// Open validates the path against the limits and opens the document.
// It fails with ErrNotFound, ErrNotPDF, ErrTooLarge or ErrTooManyPages
// so callers can report the exact reason.
func Open(path string, limits Limits) (*Reader, error) {
	limits = limits.withDefaults()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotPDF, path)
	}
	if strings.ToLower(filepath.Ext(path)) != ".pdf" {
		return nil, fmt.Errorf("%w: %s", ErrNotPDF, path)
	}
	if sizeMB := info.Size() / (1024 * 1024); sizeMB > limits.MaxSizeMB {
		return nil, fmt.Errorf("%w: %d MB > %d MB", ErrTooLarge, sizeMB, limits.MaxSizeMB)
	}

	f, r, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	n := r.NumPage()
	if n > limits.MaxPages {
		f.Close()
		return nil, fmt.Errorf("%w: %d pages > %d", ErrTooManyPages, n, limits.MaxPages)
	}

	return &Reader{f: f, r: r, pages: n}, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	return err
}

// PageCount returns the number of pages in the document.
func (r *Reader) PageCount() int { return r.pages }

// Page extracts spans and annotations for the 1-based page n.
// ledongthuc/pdf panics on some malformed objects, so the decode is
// guarded and a panic surfaces as an ordinary error.
func (r *Reader) Page(n int) (page Page, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("decode page %d: %v", n, rec)
		}
	}()

	page = Page{Number: n}

	p := r.r.Page(n)
	if p.V.IsNull() {
		return page, nil
	}

	topY, w, h := pageBox(p.V)
	page.Width, page.Height = w, h

	page.Spans = extractSpans(p, topY)
	page.Annotations = extractAnnotations(p.V, topY)
	return page, nil
}

// pageBox resolves the page media box, following the Parent chain for
// inherited values. Falls back to US letter when absent.
func pageBox(v pdflib.Value) (topY, width, height float64) {
	for depth := 0; depth < 32 && v.Kind() == pdflib.Dict; depth++ {
		mb := v.Key("MediaBox")
		if mb.Kind() == pdflib.Array && mb.Len() == 4 {
			x0 := mb.Index(0).Float64()
			y0 := mb.Index(1).Float64()
			x1 := mb.Index(2).Float64()
			y1 := mb.Index(3).Float64()
			return y1, x1 - x0, y1 - y0
		}
		v = v.Key("Parent")
	}
	return 792, 612, 792
}

// extractSpans reads the positioned text of a page and merges it into
// word-level spans in reading order (top-to-bottom, left-to-right).
// topY converts the PDF bottom-origin Y axis to top-origin
// coordinates. Word granularity is what lets a highlight resolve to
// exactly the words under it.
func extractSpans(p pdflib.Page, topY float64) []TextSpan {
	content := p.Content()
	if len(content.Text) == 0 {
		return nil
	}

	// Bucket text items by baseline so each bucket is one visual line.
	rows := make(map[int][]pdflib.Text)
	for _, t := range content.Text {
		if t.S == "" {
			continue
		}
		key := int(t.Y + 0.5)
		rows[key] = append(rows[key], t)
	}

	keys := make([]int, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	// Larger PDF Y first = closer to the page top.
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	var spans []TextSpan
	for _, k := range keys {
		line := rows[k]
		sort.Slice(line, func(i, j int) bool { return line[i].X < line[j].X })
		spans = appendRowWords(spans, line, topY)
	}
	return spans
}

// appendRowWords splits one baseline row of text items into word
// spans. Item widths are distributed evenly over their runes; that is
// approximate but plenty for overlap tests against highlight quads.
func appendRowWords(spans []TextSpan, row []pdflib.Text, topY float64) []TextSpan {
	var word strings.Builder
	var rect geometry.Rect

	flush := func() {
		if word.Len() == 0 {
			return
		}
		text := strings.TrimSpace(word.String())
		if text != "" {
			spans = append(spans, TextSpan{Rect: rect, Text: text})
		}
		word.Reset()
		rect = geometry.Rect{}
	}

	prevEnd := 0.0
	for i, t := range row {
		size := t.FontSize
		if size <= 0 {
			size = 10
		}
		if i > 0 && t.X-prevEnd > size*0.25 {
			flush()
		}
		prevEnd = t.X + t.W

		runes := []rune(t.S)
		runeW := t.W / float64(len(runes))
		x := t.X
		for _, r := range runes {
			if r == ' ' || r == '\t' || r == '\n' {
				flush()
			} else {
				word.WriteRune(r)
				rect = rect.Union(geometry.NewRect(x, topY-t.Y-size, x+runeW, topY-t.Y))
			}
			x += runeW
		}
	}
	flush()
	return spans
}

// extractAnnotations walks the raw Annots array of a page dict.
// Entries it cannot make sense of come back as zero-value records the
// extractor counts and skips.
func extractAnnotations(pageDict pdflib.Value, topY float64) []Annotation {
	arr := pageDict.Key("Annots")
	if arr.Kind() != pdflib.Array {
		return nil
	}

	annots := make([]Annotation, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		d := arr.Index(i)
		if d.Kind() != pdflib.Dict {
			continue
		}
		a := Annotation{
			Subtype:  d.Key("Subtype").Name(),
			Contents: strings.TrimSpace(d.Key("Contents").Text()),
			Author:   d.Key("T").Text(),
			Rect:     rectValue(d.Key("Rect"), topY),
			Quads:    quadValues(d.Key("QuadPoints"), topY),
		}
		annots = append(annots, a)
	}
	return annots
}

// rectValue converts a PDF rect array [x0 y0 x1 y1] to a top-origin
// rectangle. Anything malformed yields the zero rect.
func rectValue(v pdflib.Value, topY float64) geometry.Rect {
	if v.Kind() != pdflib.Array || v.Len() != 4 {
		return geometry.Rect{}
	}
	x0 := v.Index(0).Float64()
	y0 := v.Index(1).Float64()
	x1 := v.Index(2).Float64()
	y1 := v.Index(3).Float64()
	return geometry.NewRect(x0, topY-y1, x1, topY-y0)
}

// quadValues converts a QuadPoints array (8 numbers per quad) into
// one bounding rect per quad. Trailing partial groups are ignored.
func quadValues(v pdflib.Value, topY float64) []geometry.Rect {
	if v.Kind() != pdflib.Array || v.Len() < 8 {
		return nil
	}
	quads := make([]geometry.Rect, 0, v.Len()/8)
	for i := 0; i+8 <= v.Len(); i += 8 {
		var q [8]float64
		for j := 0; j < 8; j += 2 {
			q[j] = v.Index(i + j).Float64()
			q[j+1] = topY - v.Index(i+j+1).Float64()
		}
		quads = append(quads, geometry.FromQuad(q))
	}
	return quads
}
