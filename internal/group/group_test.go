package group

import (
	"testing"

	"github.com/dgallion1/vivamark/internal/comment"
	"github.com/dgallion1/vivamark/internal/pdfdoc"
)

func mkComment(page, line int, kind comment.Kind, text string) comment.Comment {
	return comment.Comment{Page: page, Line: line, Kind: kind, Text: text}
}

func TestGroupingNoTOCFallsBackToPages(t *testing.T) {
	g := NewGrouping(nil)
	if g.ByChapter() {
		t.Fatal("expected page grouping with no TOC")
	}
	if key := g.KeyFor(7); key != "Page 7" {
		t.Fatalf("KeyFor(7)=%q, want %q", key, "Page 7")
	}
}

func TestGroupingUnresolvedEntriesFallBack(t *testing.T) {
	toc := []pdfdoc.TOCEntry{
		{Title: "Introduction", StartPage: 0},
		{Title: "Methods", StartPage: 0},
	}
	if NewGrouping(toc).ByChapter() {
		t.Fatal("unresolvable TOC entries should fall back to pages")
	}
}

func TestGroupingSingleChapterFallsBack(t *testing.T) {
	toc := []pdfdoc.TOCEntry{{Title: "Everything", StartPage: 1}}
	if NewGrouping(toc).ByChapter() {
		t.Fatal("a single chapter is not useful grouping")
	}
}

func TestGroupingChapterLookup(t *testing.T) {
	toc := []pdfdoc.TOCEntry{
		{Title: "Introduction", StartPage: 1},
		{Title: "Methods", StartPage: 10},
		{Title: "Results", StartPage: 30},
	}
	g := NewGrouping(toc)
	if !g.ByChapter() {
		t.Fatal("expected chapter grouping")
	}
	tests := []struct {
		page int
		want string
	}{
		{1, "Introduction"},
		{9, "Introduction"},
		{10, "Methods"},
		{29, "Methods"},
		{30, "Results"},
		{500, "Results"},
	}
	for _, tt := range tests {
		if got := g.KeyFor(tt.page); got != tt.want {
			t.Errorf("KeyFor(%d)=%q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestGroupingOverlappingTOCLastWins(t *testing.T) {
	// Two chapters claiming the same start page: the later entry in
	// document order wins the lookup.
	toc := []pdfdoc.TOCEntry{
		{Title: "Old Chapter", StartPage: 5},
		{Title: "New Chapter", StartPage: 5},
	}
	g := NewGrouping(toc)
	if got := g.KeyFor(6); got != "New Chapter" {
		t.Fatalf("KeyFor(6)=%q, want %q", got, "New Chapter")
	}
}

func TestPartitionFirstAppearanceOrder(t *testing.T) {
	comments := []comment.Comment{
		mkComment(3, 2, comment.Note, "a"),
		mkComment(1, 1, comment.Question, "b"),
		mkComment(3, 1, comment.Typo, "c"),
	}
	groups := Partition(comments, Grouping{})

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].Key != "Page 3" || groups[1].Key != "Page 1" {
		t.Fatalf("group order %q,%q, want first-appearance", groups[0].Key, groups[1].Key)
	}
	// Within a group, page then line order.
	if groups[0].Comments[0].Text != "c" || groups[0].Comments[1].Text != "a" {
		t.Fatalf("comments not sorted by line within group: %+v", groups[0].Comments)
	}
}

func TestPartitionRoundTrip(t *testing.T) {
	var comments []comment.Comment
	for p := 1; p <= 8; p++ {
		comments = append(comments, mkComment(p, 1, comment.Note, "n"))
		comments = append(comments, mkComment(p, 5, comment.Question, "q"))
	}

	groups := Partition(comments, NewGrouping(nil))

	flat := 0
	seen := make(map[string]int)
	for _, g := range groups {
		for _, c := range g.Comments {
			flat++
			seen[c.Text+string(rune('0'+c.Page))+string(rune('0'+c.Line))]++
		}
	}
	if flat != len(comments) {
		t.Fatalf("flattened %d comments, want %d", flat, len(comments))
	}
	for k, n := range seen {
		if n != 1 {
			t.Fatalf("comment %q appears %d times", k, n)
		}
	}
}

func TestPartitionSetsChapter(t *testing.T) {
	toc := []pdfdoc.TOCEntry{
		{Title: "Intro", StartPage: 1},
		{Title: "Body", StartPage: 3},
	}
	groups := Partition([]comment.Comment{mkComment(4, 1, comment.Note, "x")}, NewGrouping(toc))
	if len(groups) != 1 || groups[0].Comments[0].Chapter != "Body" {
		t.Fatalf("chapter not set: %+v", groups)
	}
}
