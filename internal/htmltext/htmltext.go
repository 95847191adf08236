// Package htmltext extracts the visible text from review bodies that carry
// HTML markup (line breaks, entities, inline tags).
package htmltext

import (
	"strings"

	"golang.org/x/net/html"
)

// Strip returns the text content of s with tags removed and entities decoded.
// Block-level breaks become single spaces so adjacent words do not fuse.
func Strip(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			buf.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				return
			case "br", "p", "div", "li":
				buf.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
