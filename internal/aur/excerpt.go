package aur

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// maxExcerptLen bounds the text kept from an error body.
const maxExcerptLen = 200

// skipTags hold no human-readable text.
var skipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
}

// bodyExcerpt reduces a non-2xx response body to a short line of text.
// Maintenance and proxy pages are usually HTML, so markup is stripped; a
// JSON or plain-text body is kept as is. Binary bodies yield "".
func bodyExcerpt(body []byte) string {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !utf8.Valid(body) {
		return ""
	}

	text := string(body)
	if body[0] == '<' {
		doc, err := html.Parse(bytes.NewReader(body))
		if err != nil {
			return ""
		}
		var sb strings.Builder
		collectText(doc, &sb)
		text = sb.String()
	}

	text = strings.Join(strings.Fields(text), " ")
	if len(text) > maxExcerptLen {
		cut := maxExcerptLen
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "..."
	}
	return text
}

func collectText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		if skipTags[n.Data] {
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}
