package pdfdoc

import (
	pdflib "github.com/ledongthuc/pdf"
)

// Outline items deeper than this are sections, not chapters.
const maxChapterDepth = 2

// Caps the outline walk so a cyclic Next chain cannot loop forever.
const maxOutlineItems = 4096

// TOC returns the document outline flattened to (title, start page)
// pairs, chapter levels only. Malformed outlines are tolerated:
// entries whose destination cannot be resolved get StartPage 0, and a
// missing outline yields nil. Never an error; grouping degrades to
// pages instead.
func (r *Reader) TOC() (entries []TOCEntry) {
	// The raw object walk shares ledongthuc/pdf's panicky decoding.
	defer func() {
		if rec := recover(); rec != nil {
			entries = nil
		}
	}()

	root := r.r.Trailer().Key("Root")
	outlines := root.Key("Outlines")
	if outlines.Kind() != pdflib.Dict {
		return nil
	}

	budget := maxOutlineItems
	r.walkOutline(outlines.Key("First"), 1, &budget, &entries)
	return entries
}

func (r *Reader) walkOutline(item pdflib.Value, depth int, budget *int, out *[]TOCEntry) {
	for ; item.Kind() == pdflib.Dict && *budget > 0; item = item.Key("Next") {
		*budget--

		title := item.Key("Title").Text()
		if title != "" {
			*out = append(*out, TOCEntry{
				Title:     title,
				StartPage: r.resolveDestPage(item),
			})
		}

		if depth < maxChapterDepth {
			r.walkOutline(item.Key("First"), depth+1, budget, out)
		}
	}
}

// resolveDestPage finds the 1-based page an outline item points at,
// or 0 if it cannot.
func (r *Reader) resolveDestPage(item pdflib.Value) int {
	dest := item.Key("Dest")
	if dest.Kind() != pdflib.Array {
		a := item.Key("A")
		if a.Kind() == pdflib.Dict && a.Key("S").Name() == "GoTo" {
			dest = a.Key("D")
		}
	}
	if dest.Kind() != pdflib.Array || dest.Len() == 0 {
		return 0
	}

	target := dest.Index(0)
	switch target.Kind() {
	case pdflib.Integer:
		// Remote-style destinations carry a 0-based page number.
		n := int(target.Int64()) + 1
		if n < 1 || n > r.pages {
			return 0
		}
		return n
	case pdflib.Dict:
		return r.pageNumberOf(target)
	default:
		return 0
	}
}

// pageNumberOf maps a resolved page dict back to its page number.
// The Value API exposes no object identity, so page dicts are matched
// by their printed form (indirect references make it unique per page).
func (r *Reader) pageNumberOf(pageDict pdflib.Value) int {
	if r.pageKeys == nil {
		r.pageKeys = make(map[string]int, r.pages)
		for n := 1; n <= r.pages; n++ {
			v := r.r.Page(n).V
			if v.IsNull() {
				continue
			}
			r.pageKeys[v.String()] = n
		}
	}
	return r.pageKeys[pageDict.String()]
}
