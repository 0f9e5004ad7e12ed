// Package svgdoc is a small ordered element tree for building SVG documents.
//
// Attributes keep their insertion order and children their append order, so
// the serialized output is deterministic. Text and attribute values are
// escaped on output; [Element.CDATA] content is written verbatim inside a
// CDATA section.
package svgdoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Namespaces used by the root element.
const (
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
)

// Attr is one attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of the tree.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
	CDATA    string
}

// New returns an element with the given name and attribute pairs.
func New(name string, kv ...string) *Element {
	e := &Element{Name: name}
	for i := 0; i+1 < len(kv); i += 2 {
		e.Set(kv[i], kv[i+1])
	}
	return e
}

// Set assigns an attribute, replacing an existing value in place.
func (e *Element) Set(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Setf assigns a formatted attribute.
func (e *Element) Setf(name, format string, args ...any) *Element {
	return e.Set(name, fmt.Sprintf(format, args...))
}

// Get returns an attribute value.
func (e *Element) Get(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Append adds children and returns e.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Find returns all descendants of e (e included) named name, in document
// order.
func (e *Element) Find(name string) []*Element {
	var out []*Element
	e.walk(func(el *Element) {
		if el.Name == name {
			out = append(out, el)
		}
	})
	return out
}

// ByID returns the first descendant (or e itself) with the given id.
func (e *Element) ByID(id string) *Element {
	var found *Element
	e.walk(func(el *Element) {
		if found != nil {
			return
		}
		if v, ok := el.Get("id"); ok && v == id {
			found = el
		}
	})
	return found
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		c.walk(fn)
	}
}

// WriteTo serializes the element and its subtree.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	e.write(&buf)
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// Bytes serializes the element as a standalone document with an XML
// declaration.
func (e *Element) Bytes() []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	e.write(&buf)
	buf.WriteByte('\n')
	return buf.Bytes()
}

// String serializes the element without a declaration.
func (e *Element) String() string {
	var buf bytes.Buffer
	e.write(&buf)
	return buf.String()
}

func (e *Element) write(buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		fmt.Fprintf(buf, ` %s="`, a.Name)
		escape(buf, a.Value)
		buf.WriteByte('"')
	}
	if len(e.Children) == 0 && e.Text == "" && e.CDATA == "" {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	if e.Text != "" {
		escape(buf, e.Text)
	}
	if e.CDATA != "" {
		buf.WriteString("<![CDATA[")
		// A literal terminator is split across two sections.
		buf.WriteString(strings.ReplaceAll(e.CDATA, "]]>", "]]]]><![CDATA[>"))
		buf.WriteString("]]>")
	}
	for _, c := range e.Children {
		c.write(buf)
	}
	fmt.Fprintf(buf, "</%s>", e.Name)
}

func escape(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(s))
}
