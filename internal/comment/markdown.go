package comment

import "strings"

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`[`, `\[`,
	`]`, `\]`,
)

// EscapeMarkdown escapes markdown special characters so extracted
// text can be embedded in the reports verbatim.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
