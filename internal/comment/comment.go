package comment

// Kind classifies a comment into the fixed taxonomy.
type Kind string

const (
	Question   Kind = "Question"
	Note       Kind = "Note"
	Correction Kind = "Correction"
	Error      Kind = "Error"
	Typo       Kind = "Typo"
)

// Comment is one normalized annotation record. Records are immutable
// after extraction; grouping and rendering only read them.
type Comment struct {
	Page        int    // 1-based page number
	Line        int    // estimated 1-based line number, best effort
	Kind        Kind
	Text        string // full free text of the annotation, prefix retained
	Highlighted string // text under the highlight/ink geometry, if resolvable
	Context     string // surrounding line(s), highlight bolded, markdown-ready
	Chapter     string // set when chapter grouping resolved one
}

// HasContent reports whether the record carries any text at all.
// Annotations contributing nothing are dropped rather than emitted.
func (c Comment) HasContent() bool {
	return c.Text != "" || c.Highlighted != "" || c.Context != ""
}
