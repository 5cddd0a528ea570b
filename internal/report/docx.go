package report

import (
	"fmt"
	"os"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/vivamark/internal/comment"
	"github.com/dgallion1/vivamark/internal/group"
)

// WriteStudentDocx renders the student correction sheet as a Word
// document, for examiners who circulate feedback as .docx. Fields go
// in as plain text; the markdown escaping and bold markers of the
// report files do not apply here.
func WriteStudentDocx(path string, groups []group.Group) error {
	w := docx.New().WithDefaultTheme()

	w.AddParagraph().AddText("Student Corrections").Size("36")
	w.AddParagraph().AddText("Notes, corrections, errors, and typos identified in the thesis.")

	total := 0
	for _, sec := range studentSections {
		var cs []comment.Comment
		for _, g := range groups {
			cs = append(cs, filterKind(g.Comments, sec.kind)...)
		}
		if len(cs) == 0 {
			continue
		}
		total += len(cs)

		w.AddParagraph().AddText(sec.heading).Size("28")
		for _, c := range cs {
			w.AddParagraph().AddText(fmt.Sprintf("Page %d, Line %d: %s", c.Page, c.Line, c.Text))
			if c.Highlighted != "" {
				w.AddParagraph().AddText("Highlighted: " + c.Highlighted)
			}
		}
	}
	w.AddParagraph().AddText(fmt.Sprintf("Total corrections: %d", total))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := w.WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
