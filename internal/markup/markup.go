// Package markup builds HTML element trees and serializes them.
//
// It is a thin layer over golang.org/x/net/html: nodes are plain
// html.Node values, text is escaped on render and Raw nodes are written
// verbatim. Script and style text children are never escaped.
package markup

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr is a single element attribute
type Attr struct {
	Key string
	Val string
}

// A returns an attribute
func A(key, val string) Attr {
	return Attr{Key: key, Val: val}
}

// Class returns a class attribute
func Class(v string) Attr { return A("class", v) }

// ID returns an id attribute
func ID(v string) Attr { return A("id", v) }

// Style returns a style attribute
func Style(v string) Attr { return A("style", v) }

// Href returns an href attribute
func Href(v string) Attr { return A("href", v) }

// Node is an element, text, comment or raw markup fragment
type Node struct {
	n *html.Node
}

// El creates an element node
func El(tag string, attrs ...Attr) *Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range attrs {
		n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	return &Node{n: n}
}

// Text creates an escaped text node
func Text(s string) *Node {
	return &Node{n: &html.Node{Type: html.TextNode, Data: s}}
}

// Raw creates a node whose content is written without escaping
func Raw(s string) *Node {
	return &Node{n: &html.Node{Type: html.RawNode, Data: s}}
}

// Comment creates an HTML comment
func Comment(s string) *Node {
	return &Node{n: &html.Node{Type: html.CommentNode, Data: " " + s + " "}}
}

// Append adds children in order and returns n. Nil children are skipped.
// A child can only be attached once.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		if c == nil {
			continue
		}
		n.n.AppendChild(c.n)
	}
	return n
}

// AppendText is shorthand for Append(Text(s))
func (n *Node) AppendText(s string) *Node {
	return n.Append(Text(s))
}

// SetAttr sets or replaces an attribute
func (n *Node) SetAttr(key, val string) *Node {
	for i := range n.n.Attr {
		if n.n.Attr[i].Key == key {
			n.n.Attr[i].Val = val
			return n
		}
	}
	n.n.Attr = append(n.n.Attr, html.Attribute{Key: key, Val: val})
	return n
}

// Attr returns the value of an attribute
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Tag returns the element name, or "" for non-element nodes
func (n *Node) Tag() string {
	if n.n.Type != html.ElementNode {
		return ""
	}
	return n.n.Data
}

// Render writes the serialized node to w
func Render(w io.Writer, n *Node) error {
	return html.Render(w, n.n)
}

// String serializes the node. Render errors (a void element with
// children) yield an empty string.
func (n *Node) String() string {
	var buf bytes.Buffer
	if err := Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// Join concatenates CSS class names, skipping empty parts
func Join(classes ...string) string {
	parts := classes[:0:0]
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}
