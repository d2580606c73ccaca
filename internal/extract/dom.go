package extract

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseHTML parses a transcript or dossier page into a node tree
func ParseHTML(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// IsElement reports whether n is an element of the given type
func IsElement(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

// Attr returns the value of an attribute, or "" when absent
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}

// Text returns the concatenated text content of n, preserving the source
// whitespace so that line breaks inside headings survive
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return n.Data
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			buf.WriteString(node.Data)
			return
		}
		if IsElement(node, atom.Br) {
			buf.WriteString("\n")
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return buf.String()
}

// FindAll finds all nodes below n (inclusive) matching a predicate, in
// document order
func FindAll(n *html.Node, predicate func(*html.Node) bool) []*html.Node {
	var results []*html.Node

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if predicate(node) {
			results = append(results, node)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if n != nil {
		walk(n)
	}
	return results
}

// FindFirst finds the first node below n (inclusive) matching a predicate
func FindFirst(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	var result *html.Node

	var walk func(*html.Node) bool
	walk = func(node *html.Node) bool {
		if predicate(node) {
			result = node
			return true
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}

	if n != nil {
		walk(n)
	}
	return result
}

// Closest returns the nearest ancestor of n (exclusive) matching a predicate
func Closest(n *html.Node, predicate func(*html.Node) bool) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if predicate(p) {
			return p
		}
	}
	return nil
}

// NextElementSibling skips text and comment nodes
func NextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

// FirstElementChild returns the first child element of n, if any
func FirstElementChild(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

// WalkSiblings walks forward from start (exclusive) through its element
// siblings. Siblings matching match are collected until limit is reached
// (limit <= 0 means unbounded); the walk ends early at the first sibling for
// which stop returns true. A nil stop never stops.
func WalkSiblings(start *html.Node, stop, match func(*html.Node) bool, limit int) []*html.Node {
	var collected []*html.Node
	if start == nil {
		return collected
	}

	for s := NextElementSibling(start); s != nil; s = NextElementSibling(s) {
		if stop != nil && stop(s) {
			break
		}
		if match(s) {
			collected = append(collected, s)
			if limit > 0 && len(collected) >= limit {
				break
			}
		}
	}

	return collected
}

// blockNodes returns the headings, paragraphs and tables of a document in
// document order; the walk does not descend into tables
func blockNodes(doc *html.Node) []*html.Node {
	var nodes []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.H1, atom.H2, atom.P, atom.Table:
				nodes = append(nodes, n)
				return
			case atom.Script, atom.Style:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return nodes
}

func isTable(n *html.Node) bool { return IsElement(n, atom.Table) }
