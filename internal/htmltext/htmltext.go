// Package htmltext turns job description HTML into the text forms partner
// job boards render.
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// LineBreak is the only markup Flatten emits.
const LineBreak = "<br>"

var blockElements = map[string]struct{}{
	"p":   {},
	"div": {},
	"h1":  {},
	"h2":  {},
	"h3":  {},
	"h4":  {},
	"h5":  {},
	"h6":  {},
}

var angleEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// Flatten renders fragment as lines joined by LineBreak. Every block element
// ends a line, <br> always ends one (an empty line when nothing precedes it),
// and runs of empty lines collapse to a single one.
func Flatten(fragment string) string {
	doc := parse(fragment)
	if doc == nil {
		return ""
	}

	var (
		lines   []string
		current []string
	)
	flush := func(force bool) {
		if len(current) == 0 && !force {
			return
		}
		lines = append(lines, angleEscaper.Replace(strings.Join(current, " ")))
		current = current[:0]
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			current = append(current, strings.Fields(n.Data)...)
			return
		case html.ElementNode:
			if n.Data == "br" {
				flush(true)
				return
			}
		}

		block := n.Type == html.ElementNode && isBlock(n.Data)
		if block {
			flush(false)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
		if block {
			flush(false)
		}
	}

	for _, node := range doc.Nodes {
		walk(node)
	}
	flush(false)

	return joinLines(lines, LineBreak)
}

// PlainText renders only paragraphs, level-3 headings and list items as
// plain text. An empty line follows each paragraph, each heading and the
// last item of every list.
func PlainText(fragment string) string {
	doc := parse(fragment)
	if doc == nil {
		return ""
	}

	var lines []string
	doc.Find("p, h3, li").Each(func(_ int, s *goquery.Selection) {
		text := collapse(s.Text())
		switch goquery.NodeName(s) {
		case "p", "h3":
			if text == "" {
				return
			}
			lines = append(lines, text, "")
		case "li":
			if text != "" {
				lines = append(lines, text)
			}
			if s.NextAllFiltered("li").Length() == 0 {
				lines = append(lines, "")
			}
		}
	})

	return joinLines(lines, "\n")
}

func parse(fragment string) *goquery.Document {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}
	doc.Find("script, style, noscript").Remove()
	return doc
}

func isBlock(name string) bool {
	_, ok := blockElements[strings.ToLower(name)]
	return ok
}

func collapse(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// joinLines drops leading and trailing empty lines and keeps at most one
// empty line between two non-empty ones.
func joinLines(lines []string, sep string) string {
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		if line == "" {
			blank = len(out) > 0
			continue
		}
		if blank {
			out = append(out, "")
			blank = false
		}
		out = append(out, line)
	}
	return strings.Join(out, sep)
}
