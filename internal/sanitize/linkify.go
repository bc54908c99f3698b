// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// urlPattern matches bare http(s) URLs and www-prefixed hosts in text.
var urlPattern = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"]+`)

// trailingPunct lists characters trimmed from the end of a matched URL so
// sentence punctuation does not become part of the link target.
const trailingPunct = `.,;:!?')`

// skipLinkify marks elements whose text content is never linkified.
// Anchors cannot nest and code samples must stay verbatim.
var skipLinkify = map[atom.Atom]bool{
	atom.A:    true,
	atom.Pre:  true,
	atom.Code: true,
}

// linkify parses a sanitized HTML fragment, wraps bare URLs found in text
// nodes in anchor elements with rel="nofollow", and serializes the result.
// URLs already inside anchors, pre, or code are left alone.
func linkify(fragment string) (string, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return "", err
	}
	for _, n := range nodes {
		ctx.AppendChild(n)
	}

	linkifyChildren(ctx)

	var b strings.Builder
	for c := ctx.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// linkifyChildren walks the children of n, rewriting text nodes in place.
// Siblings are captured before rewriting because linkifyText splices new
// nodes into the list it is iterating.
func linkifyChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.ElementNode && skipLinkify[c.DataAtom]:
			// Subtree stays untouched.
		case c.Type == html.TextNode:
			linkifyText(n, c)
		default:
			linkifyChildren(c)
		}
		c = next
	}
}

// linkifyText replaces the text node with an alternating sequence of text
// and anchor nodes, one anchor per URL match.
func linkifyText(parent, text *html.Node) {
	matches := urlPattern.FindAllStringIndex(text.Data, -1)
	if len(matches) == 0 {
		return
	}

	last := 0
	var repl []*html.Node
	for _, m := range matches {
		start := m[0]
		url := strings.TrimRight(text.Data[m[0]:m[1]], trailingPunct)
		end := start + len(url)

		if start > last {
			repl = append(repl, textNode(text.Data[last:start]))
		}

		href := url
		if !strings.HasPrefix(strings.ToLower(url), "http") {
			href = "http://" + url
		}
		a := &html.Node{
			Type:     html.ElementNode,
			Data:     "a",
			DataAtom: atom.A,
			Attr: []html.Attribute{
				{Key: "href", Val: href},
				{Key: "rel", Val: "nofollow"},
			},
		}
		a.AppendChild(textNode(url))
		repl = append(repl, a)
		last = end
	}
	if last < len(text.Data) {
		repl = append(repl, textNode(text.Data[last:]))
	}

	for _, r := range repl {
		parent.InsertBefore(r, text)
	}
	parent.RemoveChild(text)
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
