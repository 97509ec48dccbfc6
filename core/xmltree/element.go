package xmltree

import (
	"bytes"
	"strings"
)

// Attr is an ordered element attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is a writable XML element. Attributes and children keep their
// insertion order, so rendering the same tree always produces the same
// bytes.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// NewElement returns an element with the given name.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// SetAttr appends an attribute, or overwrites it when already present.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Add appends child elements.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// AddNew appends a new child element and returns it.
func (e *Element) AddNew(name string) *Element {
	child := NewElement(name)
	e.Children = append(e.Children, child)
	return child
}

// SetText sets the element's text content. Text and child elements are
// mutually exclusive; rendering prefers children when both are set.
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// Render serializes the tree with an XML declaration and two-space
// indentation.
func (e *Element) Render() []byte {
	var buf bytes.Buffer
	buf.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	e.render(&buf, 0)
	return buf.Bytes()
}

func (e *Element) render(buf *bytes.Buffer, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteString("<")
	buf.WriteString(e.Name)
	for _, attr := range e.Attrs {
		buf.WriteString(" ")
		buf.WriteString(attr.Name)
		buf.WriteString("=\"")
		buf.WriteString(EscapeAttr(attr.Value))
		buf.WriteString("\"")
	}

	switch {
	case len(e.Children) > 0:
		buf.WriteString(">\n")
		for _, child := range e.Children {
			child.render(buf, depth+1)
		}
		buf.WriteString(indent)
		buf.WriteString("</")
		buf.WriteString(e.Name)
		buf.WriteString(">\n")
	case e.Text != "":
		buf.WriteString(">")
		buf.WriteString(EscapeText(e.Text))
		buf.WriteString("</")
		buf.WriteString(e.Name)
		buf.WriteString(">\n")
	default:
		buf.WriteString("/>\n")
	}
}

// EscapeText escapes the basic XML entities for text content.
func EscapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// EscapeAttr escapes text for use in XML attributes. Includes quote escaping
// in addition to the basic entities.
func EscapeAttr(s string) string {
	s = EscapeText(s)
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
