// Package group partitions comment records into named groups, by
// chapter when the document outline allows it and by page otherwise.
package group

import (
	"fmt"
	"sort"

	"github.com/dgallion1/vivamark/internal/comment"
	"github.com/dgallion1/vivamark/internal/pdfdoc"
)

// Grouping decides which group a page belongs to. It is built once
// per run; the zero value groups by page.
type Grouping struct {
	intervals []interval // sorted by start page; empty means page mode
}

type interval struct {
	start int // 1-based first page of the chapter
	title string
}

// NewGrouping builds a chapter grouping from the TOC, or a page
// grouping when the TOC is missing, unresolvable, or has fewer than
// two distinct chapters. Malformed entries are tolerated, never an
// error.
func NewGrouping(toc []pdfdoc.TOCEntry) Grouping {
	var ivs []interval
	titles := make(map[string]bool)
	for _, e := range toc {
		if e.StartPage < 1 || e.Title == "" {
			continue
		}
		ivs = append(ivs, interval{start: e.StartPage, title: e.Title})
		titles[e.Title] = true
	}
	if len(titles) < 2 {
		return Grouping{}
	}

	// Stable sort keeps document order for equal start pages, so the
	// later of two overlapping chapters wins the lookup.
	sort.SliceStable(ivs, func(i, j int) bool { return ivs[i].start < ivs[j].start })
	return Grouping{intervals: ivs}
}

// ByChapter reports whether chapter grouping is active.
func (g Grouping) ByChapter() bool { return len(g.intervals) > 0 }

// KeyFor returns the group key for a page: the containing chapter
// title (last matching interval wins) or "Page N".
func (g Grouping) KeyFor(page int) string {
	key := ""
	for _, iv := range g.intervals {
		if iv.start <= page {
			key = iv.title
		} else {
			break
		}
	}
	if key == "" {
		return fmt.Sprintf("Page %d", page)
	}
	return key
}

// Group is one ordered bucket of comments under a shared key.
type Group struct {
	Key      string
	Comments []comment.Comment
}

// Partition splits comments into groups. Group order follows first
// appearance in the input; within a group comments are ordered by
// page then line. Every input comment lands in exactly one group.
func Partition(comments []comment.Comment, g Grouping) []Group {
	buckets := make(map[string]int)
	var groups []Group

	for _, c := range comments {
		key := g.KeyFor(c.Page)
		idx, ok := buckets[key]
		if !ok {
			idx = len(groups)
			buckets[key] = idx
			groups = append(groups, Group{Key: key})
		}
		if g.ByChapter() {
			c.Chapter = key
		}
		groups[idx].Comments = append(groups[idx].Comments, c)
	}

	for i := range groups {
		cs := groups[i].Comments
		sort.SliceStable(cs, func(a, b int) bool {
			if cs[a].Page != cs[b].Page {
				return cs[a].Page < cs[b].Page
			}
			return cs[a].Line < cs[b].Line
		})
	}
	return groups
}
