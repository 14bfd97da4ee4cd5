package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var (
	sourceWhitespace   = regexp.MustCompile(`[ \t\r\n\f]+`)
	trailingBlanks     = regexp.MustCompile(`[ \t]+\n`)
	leadingBlanks      = regexp.MustCompile(`\n[ \t]+`)
	excessNewlines     = regexp.MustCompile(`\n{3,}`)
	repeatedBlanks     = regexp.MustCompile(`[ \t]{2,}`)
	hiddenStyleMatcher = regexp.MustCompile(`(?i)(display\s*:\s*none|visibility\s*:\s*hidden)`)
)

// CollapseWhitespace normalizes rendered text: carriage returns are dropped,
// non-breaking spaces become spaces, blanks around newlines are trimmed, runs
// of three or more newlines shrink to two and runs of blanks to one.
func CollapseWhitespace(value string) string {
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "\r", "")
	value = strings.ReplaceAll(value, "\u00a0", " ")
	value = trailingBlanks.ReplaceAllString(value, "\n")
	value = leadingBlanks.ReplaceAllString(value, "\n")
	value = excessNewlines.ReplaceAllString(value, "\n\n")
	value = repeatedBlanks.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

var lineBreaks = map[string]string{
	"p":          "\n\n",
	"h1":         "\n\n",
	"h2":         "\n\n",
	"h3":         "\n\n",
	"h4":         "\n\n",
	"div":        "\n",
	"li":         "\n",
	"ul":         "\n",
	"ol":         "\n",
	"section":    "\n",
	"article":    "\n",
	"blockquote": "\n",
	"tr":         "\n",
	"header":     "\n",
	"footer":     "\n",
}

var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
	"head":     true,
}

// innerText approximates rendered text: source whitespace collapses to a
// single space, <br> and block elements break lines, hidden subtrees vanish.
func innerText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeText(&b, n, false)
	}
	return b.String()
}

func writeText(b *strings.Builder, n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			b.WriteString(n.Data)
			return
		}
		b.WriteString(sourceWhitespace.ReplaceAllString(n.Data, " "))
	case html.ElementNode:
		if skippedElements[n.Data] || hiddenNode(n) {
			return
		}
		if n.Data == "br" {
			b.WriteString("\n")
			return
		}
		brk := lineBreaks[n.Data]
		b.WriteString(brk)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeText(b, c, pre || n.Data == "pre" || n.Data == "textarea")
		}
		b.WriteString(brk)
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeText(b, c, pre)
		}
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// hiddenNode reports whether the element itself is hidden by attribute or inline style.
func hiddenNode(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if _, ok := attr(n, "hidden"); ok {
		return true
	}
	if t, _ := attr(n, "type"); n.Data == "input" && strings.EqualFold(t, "hidden") {
		return true
	}
	style, _ := attr(n, "style")
	return hiddenStyleMatcher.MatchString(style)
}

// isVisible reports whether neither the node nor any ancestor is hidden.
func isVisible(sel *goquery.Selection) bool {
	if sel.Length() == 0 {
		return false
	}
	for n := sel.Get(0); n != nil; n = n.Parent {
		if hiddenNode(n) {
			return false
		}
	}
	return true
}

// isEditable reports whether the node accepts typed text: a textarea, an
// input, or content under an enabled contenteditable.
func isEditable(sel *goquery.Selection) bool {
	if sel.Length() == 0 {
		return false
	}
	n := sel.Get(0)
	if n.Type == html.ElementNode && (n.Data == "textarea" || n.Data == "input") {
		return true
	}
	for ; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		v, ok := attr(n, "contenteditable")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "true", "plaintext-only":
			return true
		default:
			return false
		}
	}
	return false
}

// truncateRunes cuts s to at most limit characters.
func truncateRunes(s string, limit int) (string, bool) {
	r := []rune(s)
	if len(r) <= limit {
		return s, false
	}
	return string(r[:limit]), true
}
