// Package report renders grouped comment records into the three
// output documents: the full log, the student-facing correction sheet
// and the examiner's question list.
package report

import (
	"fmt"
	"strings"

	"github.com/dgallion1/vivamark/internal/comment"
	"github.com/dgallion1/vivamark/internal/group"
)

// A context line is only worth printing when it adds this many
// characters beyond the highlight it wraps.
const minContextGain = 20

// RenderAll renders every comment, grouped as computed.
func RenderAll(groups []group.Group) string {
	var b strings.Builder
	b.WriteString("# All Comments\n\n")

	total := 0
	for _, g := range groups {
		total += len(g.Comments)
	}
	if total == 0 {
		b.WriteString("No comments found.\n")
		return b.String()
	}

	for _, g := range groups {
		fmt.Fprintf(&b, "## %s\n\n", comment.EscapeMarkdown(g.Key))
		for _, c := range g.Comments {
			renderEntry(&b, c)
			b.WriteString("\n")
		}
	}

	fmt.Fprintf(&b, "\n---\n\n**Total comments: %d**\n", total)
	return b.String()
}

// Student sections in render order. Correction and Error are distinct
// tags but both belong on the must-fix sheet.
var studentSections = []struct {
	kind    comment.Kind
	heading string
}{
	{comment.Error, "Errors"},
	{comment.Correction, "Corrections"},
	{comment.Typo, "Typos"},
	{comment.Note, "Notes"},
}

// RenderStudent renders the student-facing subset (notes, corrections,
// errors, typos), sectioned by kind and sub-grouped by chapter when
// chapter grouping is active.
func RenderStudent(groups []group.Group, byChapter bool) string {
	var b strings.Builder
	b.WriteString("# Student Corrections\n\n")
	b.WriteString("This document contains notes, corrections, errors, and typos identified in the thesis.\n\n")

	byKind := make(map[comment.Kind][]comment.Comment)
	total := 0
	for _, g := range groups {
		for _, c := range g.Comments {
			if c.Kind == comment.Question {
				continue
			}
			byKind[c.Kind] = append(byKind[c.Kind], c)
			total++
		}
	}
	if total == 0 {
		b.WriteString("No student corrections found.\n")
		return b.String()
	}

	for _, sec := range studentSections {
		cs := byKind[sec.kind]
		if len(cs) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", sec.heading)

		if byChapter {
			for _, sub := range subgroupByChapter(cs) {
				fmt.Fprintf(&b, "### %s\n\n", comment.EscapeMarkdown(sub.Key))
				for _, c := range sub.Comments {
					renderEntry(&b, c)
					b.WriteString("\n")
				}
			}
		} else {
			for _, c := range cs {
				renderEntry(&b, c)
				b.WriteString("\n")
			}
		}
	}

	fmt.Fprintf(&b, "\n---\n\n**Total corrections: %d**\n", total)
	return b.String()
}

// RenderExaminer renders the viva question list (Question kind only),
// grouped as computed.
func RenderExaminer(groups []group.Group) string {
	var b strings.Builder
	b.WriteString("# Examiner Questions\n\n")
	b.WriteString("Questions to ask during the viva examination.\n\n")

	total := 0
	for _, g := range groups {
		questions := filterKind(g.Comments, comment.Question)
		if len(questions) == 0 {
			continue
		}
		total += len(questions)
		fmt.Fprintf(&b, "## %s\n\n", comment.EscapeMarkdown(g.Key))
		for _, c := range questions {
			renderEntry(&b, c)
			b.WriteString("\n")
		}
	}
	if total == 0 {
		b.WriteString("No questions found.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "\n---\n\n**Total questions: %d**\n", total)
	return b.String()
}

// renderEntry writes one comment as a multi-level list item. The
// context field is already markdown-ready (escaped, highlight bolded)
// and is embedded verbatim; everything else is escaped here.
func renderEntry(b *strings.Builder, c comment.Comment) {
	fmt.Fprintf(b, "- **Page %d, Line %d**\n", c.Page, c.Line)
	if c.Text != "" {
		fmt.Fprintf(b, "  - Comment: %s\n", comment.EscapeMarkdown(c.Text))
	}
	if c.Highlighted != "" {
		fmt.Fprintf(b, "  - Highlighted: %s\n", comment.EscapeMarkdown(c.Highlighted))
		if c.Context != "" && len(c.Context) > len(c.Highlighted)+minContextGain {
			fmt.Fprintf(b, "  - Context: %s\n", c.Context)
		}
	} else if c.Context != "" {
		fmt.Fprintf(b, "  - Context: %s\n", c.Context)
	}
}

func filterKind(cs []comment.Comment, kind comment.Kind) []comment.Comment {
	var out []comment.Comment
	for _, c := range cs {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// subgroupByChapter buckets comments by their chapter in
// first-appearance order. Input order is preserved within buckets.
func subgroupByChapter(cs []comment.Comment) []group.Group {
	idx := make(map[string]int)
	var out []group.Group
	for _, c := range cs {
		key := c.Chapter
		if key == "" {
			key = fmt.Sprintf("Page %d", c.Page)
		}
		i, ok := idx[key]
		if !ok {
			i = len(out)
			idx[key] = i
			out = append(out, group.Group{Key: key})
		}
		out[i].Comments = append(out[i].Comments, c)
	}
	return out
}
