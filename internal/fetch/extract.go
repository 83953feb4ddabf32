package fetch

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document holds what the crawl core needs from one parsed page.
type Document struct {
	// Title is the contents of the <title> tag, trimmed.
	Title string

	// Text is the visible text of the page, with runs of whitespace
	// collapsed to single spaces. Script and style contents are
	// excluded because they are code, not prose.
	Text string

	// Links are the raw href values of <a> elements in document order.
	// They are intentionally not resolved here; the link classifier
	// applies its own resolution rules.
	Links []string
}

// ExtractDocument parses HTML and collects the title, visible text, and
// raw anchor hrefs in a single pass.
//
// Design decision: golang.org/x/net/html rather than regex or a heavier
// DOM library. It tolerates the malformed HTML the open web serves, and
// a single tree walk is all that is needed here.
func ExtractDocument(content io.Reader) (*Document, error) {
	root, err := html.Parse(content)
	if err != nil {
		return nil, err
	}

	doc := &Document{Links: make([]string, 0)}
	var text strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "script", "style":
				// Code and styling contribute no words.
				return
			case "title":
				if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					doc.Title = strings.TrimSpace(n.FirstChild.Data)
				}
				return
			case "a":
				if href := getAttr(n, "href"); href != "" {
					doc.Links = append(doc.Links, href)
				}
			}
		case html.TextNode:
			text.WriteString(n.Data)
			text.WriteString(" ")
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	doc.Text = strings.Join(strings.Fields(text.String()), " ")
	return doc, nil
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
