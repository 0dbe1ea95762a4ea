package svg

import (
	"fmt"
	"io"
	"strings"
)

// QuoteStyle controls how attribute values are quoted by the serializer.
type QuoteStyle int

const (
	// QuoteDouble always uses double quotes, escaping any embedded '"'.
	QuoteDouble QuoteStyle = iota
	// QuoteSingle always uses single quotes, escaping any embedded '\''.
	QuoteSingle
	// QuoteAuto prefers double quotes, falling back to single quotes only
	// when the value contains a '"' and no '\''; otherwise escapes.
	QuoteAuto
)

// SerializerOptions controls the shape of the rendered SVG text, per
// spec.md §4.5.
type SerializerOptions struct {
	// Pretty turns on indentation and newlines between sibling nodes.
	// Compact (the default, false) emits no inter-tag whitespace beyond what
	// the tree already holds as Text nodes.
	Pretty bool
	// Indent is the per-depth-level indent string used when Pretty is set.
	// Defaults to two spaces.
	Indent string
	// QuoteAttrs selects the attribute-value quoting style. Defaults to
	// QuoteDouble.
	QuoteAttrs QuoteStyle
	// SelfClose renders an empty element as "<tag/>" instead of
	// "<tag></tag>". Defaults to true.
	SelfClose bool
	// FinalNewline appends a trailing "\n" to the output.
	FinalNewline bool
}

// DefaultSerializerOptions returns compact output, double-quoted attributes,
// self-closing empty elements, no trailing newline.
func DefaultSerializerOptions() SerializerOptions {
	return SerializerOptions{
		Indent:     "  ",
		QuoteAttrs: QuoteDouble,
		SelfClose:  true,
	}
}

// Serialize renders doc back to SVG text using the default options.
func Serialize(doc *Document) (string, error) {
	return SerializeWithOptions(doc, DefaultSerializerOptions())
}

// SerializeWithOptions renders doc back to SVG text per opts.
func SerializeWithOptions(doc *Document, opts SerializerOptions) (string, error) {
	var b strings.Builder
	if err := WriteDocument(&b, doc, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteDocument streams doc to w. This is the form the CLI and the datauri
// encoder build on, mirroring the teacher's Encoder (xml/streaming_encoder.go)
// wrapping an io.Writer instead of building one giant string in memory.
func WriteDocument(w io.Writer, doc *Document, opts SerializerOptions) error {
	if opts.Indent == "" {
		opts = SerializerOptions{
			Pretty:       opts.Pretty,
			Indent:       "  ",
			QuoteAttrs:   opts.QuoteAttrs,
			SelfClose:    opts.SelfClose,
			FinalNewline: opts.FinalNewline,
		}
	}
	enc := &encoder{w: w, opts: opts}

	if doc.Metadata.HasXMLDecl {
		enc.writeXMLDecl(doc.Metadata)
	}
	for _, n := range doc.Prologue {
		if err := enc.writeNode(n, 0); err != nil {
			return err
		}
		if opts.Pretty {
			enc.writeRaw("\n")
		}
	}
	if doc.Root == nil {
		return &SerializeError{Msg: "document has no root element"}
	}
	if err := enc.writeElement(doc.Root, 0); err != nil {
		return err
	}
	for _, n := range doc.Epilogue {
		if opts.Pretty {
			enc.writeRaw("\n")
		}
		if err := enc.writeNode(n, 0); err != nil {
			return err
		}
	}
	if opts.FinalNewline {
		enc.writeRaw("\n")
	}
	return enc.err
}

type encoder struct {
	w    io.Writer
	opts SerializerOptions
	err  error
}

func (e *encoder) writeRaw(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}

func (e *encoder) indent(depth int) {
	if !e.opts.Pretty {
		return
	}
	e.writeRaw(strings.Repeat(e.opts.Indent, depth))
}

func (e *encoder) writeXMLDecl(meta DocumentMetadata) {
	version := meta.Version
	if version == "" {
		version = "1.0"
	}
	e.writeRaw(`<?xml version="` + version + `"`)
	if meta.Encoding != "" {
		e.writeRaw(` encoding="` + meta.Encoding + `"`)
	}
	if meta.Standalone != "" {
		e.writeRaw(` standalone="` + meta.Standalone + `"`)
	}
	e.writeRaw("?>")
	if e.opts.Pretty {
		e.writeRaw("\n")
	}
}

func (e *encoder) writeNode(n Node, depth int) error {
	switch n.Kind {
	case KindElement:
		return e.writeElement(n.Element, depth)
	case KindText:
		e.indent(depth)
		e.writeRaw(escapeText(n.Text))
	case KindComment:
		e.indent(depth)
		e.writeRaw("<!--" + n.Text + "-->")
	case KindCData:
		e.indent(depth)
		e.writeRaw("<![CDATA[" + n.Text + "]]>")
	case KindDocType:
		e.indent(depth)
		e.writeRaw("<!DOCTYPE " + n.Text + ">")
	case KindPI:
		e.indent(depth)
		e.writeRaw("<?" + n.Text + " " + n.Data + "?>")
	default:
		return &SerializeError{Msg: fmt.Sprintf("unknown node kind %d", n.Kind)}
	}
	return e.err
}

func (e *encoder) writeElement(el *Element, depth int) error {
	e.indent(depth)
	e.writeRaw("<" + el.Name)

	seen := make(map[string]bool, el.Attrs.Len())
	el.Attrs.Each(func(name, value string) bool {
		if seen[name] {
			e.err = &SerializeError{Msg: "duplicate attribute " + name + " on <" + el.Name + ">"}
			return false
		}
		seen[name] = true
		e.writeRaw(" " + name + "=" + quoteAttr(value, e.opts.QuoteAttrs))
		return true
	})
	if e.err != nil {
		return e.err
	}

	if len(el.Children) == 0 && e.opts.SelfClose {
		e.writeRaw("/>")
		return e.err
	}
	e.writeRaw(">")

	allBlockChildren := e.opts.Pretty && hasOnlyElementOrWhitespaceChildren(el)
	for _, c := range el.Children {
		if allBlockChildren && c.IsWhitespaceText() {
			continue
		}
		if allBlockChildren {
			e.writeRaw("\n")
		}
		d := depth
		if allBlockChildren {
			d = depth + 1
		}
		if err := e.writeNode(c, d); err != nil {
			return err
		}
	}
	if allBlockChildren {
		e.writeRaw("\n")
		e.indent(depth)
	}
	e.writeRaw("</" + el.Name + ">")
	return e.err
}

func hasOnlyElementOrWhitespaceChildren(el *Element) bool {
	for _, c := range el.Children {
		if c.Kind != KindElement && !c.IsWhitespaceText() {
			return false
		}
	}
	return true
}

func quoteAttr(value string, style QuoteStyle) string {
	switch style {
	case QuoteSingle:
		return "'" + escapeAttrValue(value, '\'') + "'"
	case QuoteAuto:
		if strings.Contains(value, `"`) && !strings.Contains(value, "'") {
			return "'" + escapeAttrValue(value, '\'') + "'"
		}
		return `"` + escapeAttrValue(value, '"') + `"`
	default:
		return `"` + escapeAttrValue(value, '"') + `"`
	}
}

// escapeText escapes the characters XML character data requires escaped, in
// the same spirit as the teacher's escapeText (xml/c14n.go): minimal,
// standards-required escaping only, no defensive over-escaping.
func escapeText(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// escapeAttrValue escapes an attribute value for the given quote character,
// matching the teacher's escapeAttr but parameterized by quote style.
func escapeAttrValue(s string, quote rune) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '&':
			b.WriteString("&amp;")
		case r == '<':
			b.WriteString("&lt;")
		case r == quote && quote == '"':
			b.WriteString("&quot;")
		case r == quote && quote == '\'':
			b.WriteString("&apos;")
		case r == '\n':
			b.WriteString("&#10;")
		case r == '\t':
			b.WriteString("&#9;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
