package report

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// RenderHTML converts a rendered markdown report to an HTML fragment
// for the review server.
func RenderHTML(markdown string) (string, error) {
	md := goldmark.New()
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
