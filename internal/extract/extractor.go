// Package extract drives per-page, per-annotation processing: it
// filters to supported annotation types, estimates line numbers,
// resolves highlighted/context text, classifies the free text and
// emits normalized comment records. Individual malformed annotations
// are counted and skipped; they never abort the run.
package extract

import (
	"fmt"
	"log/slog"

	"github.com/dgallion1/vivamark/internal/comment"
	"github.com/dgallion1/vivamark/internal/geometry"
	"github.com/dgallion1/vivamark/internal/pdfdoc"
)

// Extractor walks a document and produces comment records in page
// order. It owns the run's Stats exclusively.
type Extractor struct {
	src   pdfdoc.Source
	est   geometry.LineEstimator
	log   *slog.Logger
	stats *Stats
}

// New creates an extractor over src.
func New(src pdfdoc.Source, est geometry.LineEstimator, log *slog.Logger) *Extractor {
	return &Extractor{
		src:   src,
		est:   est,
		log:   log,
		stats: NewStats(),
	}
}

// Stats exposes the run counters; read once at the end of the run.
func (e *Extractor) Stats() *Stats { return e.stats }

// Run processes every page sequentially and returns the ordered
// comment records. Pages and annotations that fail to decode are
// logged, counted and skipped.
func (e *Extractor) Run() []comment.Comment {
	var comments []comment.Comment

	total := e.src.PageCount()
	for n := 1; n <= total; n++ {
		page, err := e.src.Page(n)
		if err != nil {
			e.log.Warn("skipping page", "page", n, "error", err)
			e.stats.addSkip("page decode error")
			continue
		}
		e.stats.addPage()

		for _, a := range page.Annotations {
			e.stats.addAnnotation()
			if c, ok := e.processAnnotation(page, a); ok {
				comments = append(comments, c)
			}
		}
	}

	return comments
}

func (e *Extractor) processAnnotation(page pdfdoc.Page, a pdfdoc.Annotation) (comment.Comment, bool) {
	switch a.Subtype {
	case pdfdoc.SubtypeText, pdfdoc.SubtypeHighlight, pdfdoc.SubtypeInk:
	default:
		subtype := a.Subtype
		if subtype == "" {
			subtype = "(unknown)"
		}
		reason := fmt.Sprintf("unsupported type: %s", subtype)
		e.stats.addSkip(reason)
		e.log.Debug("skipping annotation", "page", page.Number, "reason", reason)
		return comment.Comment{}, false
	}

	line := e.est.EstimateLine(anchorY(a))

	var highlighted, context string
	switch a.Subtype {
	case pdfdoc.SubtypeHighlight, pdfdoc.SubtypeInk:
		highlighted, context = highlightContext(a, page.Spans, e.est)
	default:
		// Plain text notes carry no highlight geometry; use the
		// span(s) nearest the anchor line.
		context = anchorContext(a.Rect, page.Spans, e.est)
	}

	c := comment.Comment{
		Page:        page.Number,
		Line:        line,
		Kind:        comment.Classify(a.Contents),
		Text:        a.Contents,
		Highlighted: highlighted,
		Context:     context,
	}

	if !c.HasContent() {
		e.stats.addSkip("empty record")
		e.log.Debug("skipping annotation", "page", page.Number, "reason", "empty record")
		return comment.Comment{}, false
	}

	e.stats.addEmitted()
	e.log.Debug("extracted comment",
		"page", c.Page,
		"line", c.Line,
		"kind", c.Kind,
		"highlighted", highlighted != "",
	)
	return c, true
}

// anchorY picks the Y coordinate the line estimate is based on: the
// top of the bounding rect, or of the first quad when no rect exists.
func anchorY(a pdfdoc.Annotation) float64 {
	if !a.Rect.IsZero() {
		return a.Rect.Y0
	}
	if len(a.Quads) > 0 {
		return a.Quads[0].Y0
	}
	return 0
}
