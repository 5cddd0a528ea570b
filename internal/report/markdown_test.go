package report

import (
	"strings"
	"testing"

	"github.com/dgallion1/vivamark/internal/comment"
	"github.com/dgallion1/vivamark/internal/group"
)

func questionComment() comment.Comment {
	return comment.Comment{
		Page:        19,
		Line:        15,
		Kind:        comment.Question,
		Text:        "Q - is this correct?",
		Highlighted: "faster than",
		Context:     "PICs are good because light is **faster than** electricity",
	}
}

func testGroups() []group.Group {
	return []group.Group{
		{Key: "Page 19", Comments: []comment.Comment{
			questionComment(),
			{Page: 19, Line: 20, Kind: comment.Typo, Text: "Typo: recieve"},
		}},
		{Key: "Page 21", Comments: []comment.Comment{
			{Page: 21, Line: 3, Kind: comment.Error, Text: "Error: wrong units", Highlighted: "10 ms"},
		}},
	}
}

func TestRenderAll(t *testing.T) {
	out := RenderAll(testGroups())

	for _, want := range []string{
		"# All Comments",
		"## Page 19",
		"## Page 21",
		"- **Page 19, Line 15**",
		"  - Comment: Q - is this correct?",
		"  - Highlighted: faster than",
		"  - Context: PICs are good because light is **faster than** electricity",
		"**Total comments: 3**",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderAll missing %q\n%s", want, out)
		}
	}
}

func TestRenderExaminerFiltersQuestions(t *testing.T) {
	out := RenderExaminer(testGroups())

	if !strings.Contains(out, "- **Page 19, Line 15**") {
		t.Errorf("question missing from examiner report:\n%s", out)
	}
	if strings.Contains(out, "recieve") || strings.Contains(out, "wrong units") {
		t.Errorf("non-question leaked into examiner report:\n%s", out)
	}
	if !strings.Contains(out, "**Total questions: 1**") {
		t.Errorf("missing total:\n%s", out)
	}
}

func TestRenderStudentFiltersAndSections(t *testing.T) {
	out := RenderStudent(testGroups(), false)

	if strings.Contains(out, "is this correct") {
		t.Errorf("question leaked into student report:\n%s", out)
	}
	errIdx := strings.Index(out, "## Errors")
	typoIdx := strings.Index(out, "## Typos")
	if errIdx < 0 || typoIdx < 0 {
		t.Fatalf("missing kind sections:\n%s", out)
	}
	if errIdx > typoIdx {
		t.Errorf("Errors section should precede Typos:\n%s", out)
	}
	if !strings.Contains(out, "**Total corrections: 2**") {
		t.Errorf("missing total:\n%s", out)
	}
}

func TestRenderStudentChapterSubgroups(t *testing.T) {
	groups := []group.Group{
		{Key: "Methods", Comments: []comment.Comment{
			{Page: 12, Line: 4, Kind: comment.Typo, Text: "Typo: teh", Chapter: "Methods"},
		}},
	}
	out := RenderStudent(groups, true)
	if !strings.Contains(out, "### Methods") {
		t.Errorf("missing chapter subsection:\n%s", out)
	}
}

func TestRenderEmptyReports(t *testing.T) {
	all := RenderAll(nil)
	student := RenderStudent(nil, false)
	examiner := RenderExaminer(nil)

	if !strings.Contains(all, "No comments found.") {
		t.Errorf("empty all report:\n%s", all)
	}
	if !strings.Contains(student, "No student corrections found.") {
		t.Errorf("empty student report:\n%s", student)
	}
	if !strings.Contains(examiner, "No questions found.") {
		t.Errorf("empty examiner report:\n%s", examiner)
	}

	// Still valid markdown: each renders to HTML with its title heading.
	for _, md := range []string{all, student, examiner} {
		html, err := RenderHTML(md)
		if err != nil {
			t.Fatalf("render html: %v", err)
		}
		if !strings.Contains(html, "<h1") {
			t.Errorf("expected h1 in rendered html:\n%s", html)
		}
	}
}

func TestRenderEscapesMarkdown(t *testing.T) {
	groups := []group.Group{{Key: "Page 2", Comments: []comment.Comment{
		{Page: 2, Line: 1, Kind: comment.Note, Text: "Note: see [4] and x*y"},
	}}}
	out := RenderAll(groups)
	if !strings.Contains(out, `\[4\]`) || !strings.Contains(out, `x\*y`) {
		t.Errorf("comment text not escaped:\n%s", out)
	}
}

func TestRenderContextGainThreshold(t *testing.T) {
	// Context barely longer than the highlight adds nothing and is
	// dropped from the entry.
	c := comment.Comment{
		Page: 1, Line: 1, Kind: comment.Note,
		Text:        "Note: x",
		Highlighted: "some highlighted words",
		Context:     "**some highlighted words**",
	}
	out := RenderAll([]group.Group{{Key: "Page 1", Comments: []comment.Comment{c}}})
	if strings.Contains(out, "Context:") {
		t.Errorf("short context should be omitted:\n%s", out)
	}

	c.Context = "a long surrounding sentence with **some highlighted words** inside it"
	out = RenderAll([]group.Group{{Key: "Page 1", Comments: []comment.Comment{c}}})
	if !strings.Contains(out, "Context: a long surrounding sentence") {
		t.Errorf("long context should be kept:\n%s", out)
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := RenderAll(testGroups())
	b := RenderAll(testGroups())
	if a != b {
		t.Fatal("RenderAll is not deterministic")
	}
}
