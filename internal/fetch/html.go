package fetch

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var dayTitlePattern = regexp.MustCompile(`^---\s*Day\s+\d+:\s*(.+?)\s*---$`)

// ParseDayTitle extracts the puzzle title from a day page. The <title> tag
// only carries "Day N - Advent of Code"; the real name lives in the first
// h2, shaped like "--- Day 7: Handy Haversacks ---".
func ParseDayTitle(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse day page: %w", err)
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "h2" {
			text := strings.TrimSpace(nodeText(n))
			if m := dayTitlePattern.FindStringSubmatch(text); m != nil {
				title = m[1]
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if title == "" {
		return "", fmt.Errorf("no day title heading found")
	}
	return title, nil
}

// nodeText collects the text content of a node and its children.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(nodeText(c))
	}
	return text.String()
}
