package extract

import (
	"strings"

	"github.com/dgallion1/vivamark/internal/comment"
	"github.com/dgallion1/vivamark/internal/geometry"
	"github.com/dgallion1/vivamark/internal/pdfdoc"
)

const (
	// Highlights longer than this stand alone; the surrounding
	// context would add nothing and is suppressed.
	maxInlineHighlight = 150

	// Rendered context is capped at this many runes, centered on
	// the bolded highlight.
	maxContextLen = 300
)

// highlightContext resolves the text under a highlight or ink
// annotation and a one-line-each-way context window around it.
// Both results may be empty; this never fails.
func highlightContext(a pdfdoc.Annotation, spans []pdfdoc.TextSpan, est geometry.LineEstimator) (highlighted, context string) {
	regions := a.Quads
	if len(regions) == 0 && !a.Rect.IsZero() {
		regions = []geometry.Rect{a.Rect}
	}
	if len(regions) == 0 {
		return "", ""
	}

	var hit []int
	for i, span := range spans {
		if span.Text == "" {
			continue
		}
		for _, r := range regions {
			if r.Intersects(span.Rect) {
				hit = append(hit, i)
				break
			}
		}
	}
	if len(hit) == 0 {
		// Geometry resolved to no text; fall back to the anchor line.
		return "", anchorContext(a.Rect, spans, est)
	}

	parts := make([]string, 0, len(hit))
	for _, i := range hit {
		parts = append(parts, spans[i].Text)
	}
	highlighted = normalizeSpace(strings.Join(parts, " "))

	// Expand the covered line range by one line each way.
	firstLine := est.EstimateLine(spans[hit[0]].Rect.Y0)
	lastLine := est.EstimateLine(spans[hit[len(hit)-1]].Rect.Y0)
	var window []string
	for _, span := range spans {
		line := est.EstimateLine(span.Rect.Y0)
		if line >= firstLine-1 && line <= lastLine+1 {
			window = append(window, span.Text)
		}
	}

	context = renderContext(normalizeSpace(strings.Join(window, " ")), highlighted)
	return highlighted, context
}

// anchorContext builds context for an annotation without usable
// highlight geometry: the span(s) on the estimated line nearest the
// annotation's anchor point.
func anchorContext(anchor geometry.Rect, spans []pdfdoc.TextSpan, est geometry.LineEstimator) string {
	if anchor.IsZero() || len(spans) == 0 {
		return ""
	}
	target := est.EstimateLine(anchor.Y0)

	best := -1
	for _, span := range spans {
		d := est.EstimateLine(span.Rect.Y0) - target
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return ""
	}

	var parts []string
	for _, span := range spans {
		d := est.EstimateLine(span.Rect.Y0) - target
		if d < 0 {
			d = -d
		}
		if d == best {
			parts = append(parts, span.Text)
		}
	}
	return comment.EscapeMarkdown(normalizeSpace(strings.Join(parts, " ")))
}

// renderContext embeds the highlighted portion of the window in bold
// markup. Both pieces are markdown-escaped first so the result is
// safe to emit verbatim. Over-long highlights suppress the context
// entirely.
func renderContext(window, highlighted string) string {
	if highlighted == "" {
		return clampContext(comment.EscapeMarkdown(window))
	}
	if len(highlighted) > maxInlineHighlight {
		return ""
	}

	ctx := comment.EscapeMarkdown(window)
	hl := comment.EscapeMarkdown(highlighted)
	if i := strings.Index(ctx, hl); i >= 0 {
		ctx = ctx[:i] + "**" + hl + "**" + ctx[i+len(hl):]
	}
	return clampContext(ctx)
}

// clampContext limits context length, keeping the bolded region
// visible and marking cut edges with ellipses.
func clampContext(ctx string) string {
	runes := []rune(ctx)
	if len(runes) <= maxContextLen {
		return ctx
	}

	boldStart := strings.Index(ctx, "**")
	if boldStart < 0 {
		return string(runes[:maxContextLen]) + "..."
	}

	startR := len([]rune(ctx[:boldStart]))
	endR := len(runes)
	if closing := strings.Index(ctx[boldStart+2:], "**"); closing >= 0 {
		endR = len([]rune(ctx[:boldStart+2+closing])) + 2
	}

	start := startR - maxContextLen/2
	if start < 0 {
		start = 0
	}
	end := start + maxContextLen
	if end < endR {
		end = endR // never cut through the bold region
	}
	if end > len(runes) {
		end = len(runes)
	}

	out := string(runes[start:end])
	if start > 0 {
		out = "..." + out
	}
	if end < len(runes) {
		out += "..."
	}
	return out
}

// normalizeSpace collapses all whitespace runs to single spaces.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
