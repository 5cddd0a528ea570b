package comment

import "strings"

// Classify maps a comment's free text to a Kind by its leading token.
// The token runs up to the first colon, hyphen or whitespace and is
// matched case-insensitively. Unrecognized or empty text is a Note.
func Classify(text string) Kind {
	token := leadingToken(text)
	switch strings.ToUpper(token) {
	case "Q":
		return Question
	case "NOTE":
		return Note
	case "CORRECTION":
		return Correction
	case "ERROR":
		return Error
	case "TYPO":
		return Typo
	default:
		return Note
	}
}

func leadingToken(text string) string {
	s := strings.TrimSpace(text)
	end := len(s)
	for i, r := range s {
		if r == ':' || r == '-' || r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			end = i
			break
		}
	}
	return s[:end]
}
