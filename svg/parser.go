package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

// ParserOptions controls what the parser surfaces to passes. The parser
// itself is always lossless; these options only gate what lands in the tree,
// per spec.md §4.1.
type ParserOptions struct {
	// PreserveComments keeps Comment nodes in the tree. Default true.
	PreserveComments bool
	// PreserveWhitespace keeps Text nodes verbatim, including whitespace-only
	// ones. Default true.
	PreserveWhitespace bool
}

// DefaultParserOptions returns the spec's documented defaults: both true.
func DefaultParserOptions() ParserOptions {
	return ParserOptions{PreserveComments: true, PreserveWhitespace: true}
}

// cdataSentinel matches a CDATA placeholder inserted by extractCData. The
// delimiter U+E000 is a private-use code point: legal XML character data (so
// encoding/xml accepts it, unlike U+0000) and not expected in SVG text. The
// placeholder never reaches the Document tree.
var cdataSentinel = regexp.MustCompile("CDATA:(\\d+)")

var cdataPattern = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)

// extractCData pulls every <![CDATA[...]]> section out of data before
// handing it to encoding/xml, which otherwise silently merges CDATA content
// into ordinary character data with no way to tell it apart afterwards. Each
// section is replaced by a numbered sentinel and returned separately, then
// re-inlined as CData nodes once the surrounding text is tokenized. This
// mirrors the teacher's own sanitizeSoup (xml/sanitize_soup.go): a regex
// pass over raw bytes that swaps sensitive tag bodies for a safe
// placeholder before the body goes anywhere near encoding/xml.
func extractCData(data []byte) ([]byte, []string) {
	var sections []string
	out := cdataPattern.ReplaceAllFunc(data, func(m []byte) []byte {
		sub := cdataPattern.FindSubmatch(m)
		idx := len(sections)
		sections = append(sections, string(sub[1]))
		return []byte(fmt.Sprintf("CDATA:%d", idx))
	})
	return out, sections
}

// splitCData turns a decoded text blob that may contain one or more CDATA
// sentinels back into an ordered sequence of Text/CData nodes.
func splitCData(text string, sections []string) []Node {
	if !strings.ContainsRune(text, '') {
		return []Node{TextNode(text)}
	}
	var nodes []Node
	last := 0
	for _, loc := range cdataSentinel.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			nodes = append(nodes, TextNode(text[last:loc[0]]))
		}
		idx, _ := strconv.Atoi(text[loc[2]:loc[3]])
		if idx >= 0 && idx < len(sections) {
			nodes = append(nodes, CDataNode(sections[idx]))
		}
		last = loc[1]
	}
	if last < len(text) {
		nodes = append(nodes, TextNode(text[last:]))
	}
	return nodes
}

// Parse reads svgText and returns its Document tree, or a *ParseError.
func Parse(svgText string) (*Document, error) {
	return ParseWithOptions(svgText, DefaultParserOptions())
}

// ParseWithOptions is Parse with explicit ParserOptions.
func ParseWithOptions(svgText string, opts ParserOptions) (*Document, error) {
	cleaned, cdataSections := extractCData([]byte(svgText))

	dec := xml.NewDecoder(strings.NewReader(string(cleaned)))
	dec.Strict = true
	// Non-UTF-8 input is rare for SVG (spec.md §6 assumes UTF-8) but an
	// encoding="..." declaration naming another charset must still decode
	// rather than fail outright; charset.NewReaderLabel covers the labels
	// encoding/xml itself has no decoder for (ISO-8859-1, Shift_JIS, ...).
	dec.CharsetReader = charset.NewReaderLabel

	doc := &Document{}
	type frame struct {
		el   *Element
		open xml.Name
	}
	var stack []frame
	rootSeen := false

	appendNode := func(n Node) {
		switch {
		case len(stack) > 0:
			stack[len(stack)-1].el.AddChild(n)
		case !rootSeen:
			doc.Prologue = append(doc.Prologue, n)
		default:
			doc.Epilogue = append(doc.Epilogue, n)
		}
	}

	for {
		// RawToken keeps prefixes as written ("xlink:href", not the namespace
		// URI); it does not match end tags, so that is checked below.
		tok, err := dec.RawToken()
		if err != nil {
			if err == io.EOF {
				if len(stack) > 0 {
					return nil, &ParseError{Msg: "unexpected end of input: unclosed <" + stack[len(stack)-1].el.Name + ">"}
				}
				break
			}
			return nil, wrapXMLError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := NewElement(qualifiedName(t.Name))
			for _, attr := range t.Attr {
				name := qualifiedAttrName(attr.Name)
				if ns, ok := namespaceDecl(attr.Name); ok {
					if el.Namespaces == nil {
						el.Namespaces = make(map[string]string)
					}
					el.Namespaces[ns] = attr.Value
				}
				el.SetAttr(name, attr.Value)
			}
			if len(stack) == 0 {
				if rootSeen {
					return nil, &ParseError{Msg: "multiple root elements"}
				}
				doc.Root = el
				rootSeen = true
			} else {
				stack[len(stack)-1].el.AddChild(ElementNode(el))
			}
			stack = append(stack, frame{el: el, open: t.Name})

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, &ParseError{Msg: "unexpected closing tag </" + qualifiedName(t.Name) + ">"}
			}
			if top := stack[len(stack)-1]; top.open != t.Name {
				return nil, &ParseError{Msg: "element <" + top.el.Name + "> closed by </" + qualifiedName(t.Name) + ">"}
			}
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if !opts.PreserveWhitespace && isAllWhitespace(string(t)) {
				continue
			}
			for _, n := range splitCData(string(t), cdataSections) {
				if n.Kind == KindText && !opts.PreserveWhitespace && isAllWhitespace(n.Text) {
					continue
				}
				appendNode(n)
			}

		case xml.Comment:
			if opts.PreserveComments {
				appendNode(CommentNode(string(t)))
			}

		case xml.ProcInst:
			if t.Target == "xml" {
				applyXMLDecl(doc, string(t.Inst))
				continue
			}
			appendNode(PINode(t.Target, string(t.Inst)))

		case xml.Directive:
			// The directive text starts with the DOCTYPE keyword; DocTypeNode
			// holds only the body after it.
			appendNode(DocTypeNode(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(t)), "DOCTYPE"))))
		}
	}

	if !rootSeen {
		return nil, &ParseError{Msg: "no root element found"}
	}
	return doc, nil
}

func isAllWhitespace(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
		default:
			return false
		}
	}
	return true
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// qualifiedAttrName reconstructs the attribute name as it appeared in
// source, including an "xmlns"/"xmlns:prefix" form for namespace
// declarations, which encoding/xml otherwise splits into Space="xmlns".
func qualifiedAttrName(n xml.Name) string {
	if n.Space == "xmlns" {
		return "xmlns:" + n.Local
	}
	if n.Space == "" && n.Local == "xmlns" {
		return "xmlns"
	}
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// namespaceDecl reports whether attr declares a namespace, and its prefix
// ("" for the default namespace).
func namespaceDecl(n xml.Name) (string, bool) {
	if n.Space == "" && n.Local == "xmlns" {
		return "", true
	}
	if n.Space == "xmlns" {
		return n.Local, true
	}
	return "", false
}

// applyXMLDecl parses the instruction body of <?xml ...?> into
// DocumentMetadata, the way the reference implementation stores the
// declaration as metadata rather than as a node (spec.md §9 design notes).
func applyXMLDecl(doc *Document, inst string) {
	doc.Metadata.HasXMLDecl = true
	doc.Metadata.Version = xmlDeclAttr(inst, "version")
	doc.Metadata.Encoding = xmlDeclAttr(inst, "encoding")
	doc.Metadata.Standalone = xmlDeclAttr(inst, "standalone")
}

var xmlDeclAttrRe = regexp.MustCompile(`(\w+)\s*=\s*["']([^"']*)["']`)

func xmlDeclAttr(inst, name string) string {
	for _, m := range xmlDeclAttrRe.FindAllStringSubmatch(inst, -1) {
		if m[1] == name {
			return m[2]
		}
	}
	return ""
}
