package svg

// Package svg implements an SVG document optimizer: a parser that turns SVG
// text into an in-memory tree, a catalog of rewriting passes, a pipeline
// runner that drives them to a fixed point, and a serializer that renders
// the tree back to text. See SPEC_FULL.md for the full design.

// Document is the root of a parsed SVG file: an ordered prologue, exactly one
// root element, and an ordered epilogue, plus round-trip metadata. It is the
// unit of ownership for a single optimization run (see Run).
type Document struct {
	Prologue []Node
	Root     *Element
	Epilogue []Node
	Metadata DocumentMetadata
}

// DocumentMetadata carries round-trip artifacts that have no natural home as
// tree nodes: the original source path (if any), and the XML declaration's
// version/encoding, which the reference implementation this engine is
// modeled on also keeps as metadata rather than as a synthesized
// ProcessingInstruction node.
type DocumentMetadata struct {
	Path       string
	HasXMLDecl bool
	Version    string
	Encoding   string
	Standalone string // "", "yes", or "no"; only meaningful when HasXMLDecl
}

// NewDocument returns an empty document with a bare <svg> root.
func NewDocument() *Document {
	return &Document{Root: NewElement("svg")}
}

// NodeKind discriminates the closed set of node variants a Document tree can
// contain. Go has no native sum type, so Node emulates one with an explicit
// discriminator plus a one-of payload, per spec.md §9 ("never with
// inheritance").
type NodeKind int

const (
	// KindElement holds an *Element in Node.Element.
	KindElement NodeKind = iota
	// KindText holds verbatim character data in Node.Text.
	KindText
	// KindComment holds a verbatim comment body (no delimiters) in Node.Text.
	KindComment
	// KindPI holds a processing instruction: Node.Text is the target,
	// Node.Data is the instruction body.
	KindPI
	// KindCData holds a verbatim CDATA body in Node.Text.
	KindCData
	// KindDocType holds a verbatim DOCTYPE body in Node.Text.
	KindDocType
)

// Node is a tagged variant over {Element, Text, Comment, ProcessingInstruction,
// CData, DocType}. Only the field(s) relevant to Kind are meaningful.
type Node struct {
	Kind    NodeKind
	Element *Element // valid when Kind == KindElement
	Text    string   // verbatim text/comment/cdata/doctype body, or PI target
	Data    string   // PI instruction data; unused otherwise
}

// TextNode constructs a KindText node.
func TextNode(text string) Node { return Node{Kind: KindText, Text: text} }

// CommentNode constructs a KindComment node.
func CommentNode(body string) Node { return Node{Kind: KindComment, Text: body} }

// CDataNode constructs a KindCData node.
func CDataNode(body string) Node { return Node{Kind: KindCData, Text: body} }

// DocTypeNode constructs a KindDocType node.
func DocTypeNode(body string) Node { return Node{Kind: KindDocType, Text: body} }

// PINode constructs a KindPI node.
func PINode(target, data string) Node {
	return Node{Kind: KindPI, Text: target, Data: data}
}

// ElementNode wraps el as a Node.
func ElementNode(el *Element) Node { return Node{Kind: KindElement, Element: el} }

// IsElement reports whether n holds an Element.
func (n Node) IsElement() bool { return n.Kind == KindElement }

// IsText reports whether n holds character data.
func (n Node) IsText() bool { return n.Kind == KindText }

// IsComment reports whether n holds a comment.
func (n Node) IsComment() bool { return n.Kind == KindComment }

// IsDocType reports whether n holds a DOCTYPE declaration.
func (n Node) IsDocType() bool { return n.Kind == KindDocType }

// IsWhitespaceText reports whether n is text made only of whitespace.
func (n Node) IsWhitespaceText() bool {
	if n.Kind != KindText {
		return false
	}
	for _, r := range n.Text {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return false
		}
	}
	return true
}

// Element is a single XML/SVG element: its qualified name, its
// insertion-ordered attributes, the namespace prefixes it declares, and its
// ordered children.
type Element struct {
	Name       string
	Attrs      *Attrs
	Namespaces map[string]string // prefix ("" = default) -> URI, declared here
	Children   []Node
}

// NewElement returns an empty element named name.
func NewElement(name string) *Element {
	return &Element{Name: name, Attrs: NewAttrs()}
}

// TagName satisfies svg/internal/selector.Node.
func (e *Element) TagName() string { return e.Name }

// AttrValue satisfies svg/internal/selector.Node.
func (e *Element) AttrValue(name string) (string, bool) { return e.Attrs.Get(name) }

// Attr is shorthand for e.Attrs.Value(name).
func (e *Element) Attr(name string) string { return e.Attrs.Value(name) }

// HasAttr is shorthand for e.Attrs.Has(name).
func (e *Element) HasAttr(name string) bool { return e.Attrs.Has(name) }

// SetAttr is shorthand for e.Attrs.Set(name, value).
func (e *Element) SetAttr(name, value string) { e.Attrs.Set(name, value) }

// RemoveAttr is shorthand for e.Attrs.Remove(name).
func (e *Element) RemoveAttr(name string) { e.Attrs.Remove(name) }

// AddChild appends child to e's children.
func (e *Element) AddChild(n Node) { e.Children = append(e.Children, n) }

// IsEmpty reports whether e has no children at all.
func (e *Element) IsEmpty() bool { return len(e.Children) == 0 }

// ChildElements returns, in document order, the child nodes that are
// elements.
func (e *Element) ChildElements() []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.IsElement() {
			out = append(out, c.Element)
		}
	}
	return out
}

// Clone returns a deep copy of e and its entire subtree.
func (e *Element) Clone() *Element {
	out := &Element{
		Name:     e.Name,
		Attrs:    e.Attrs.Clone(),
		Children: make([]Node, len(e.Children)),
	}
	if e.Namespaces != nil {
		out.Namespaces = make(map[string]string, len(e.Namespaces))
		for k, v := range e.Namespaces {
			out.Namespaces[k] = v
		}
	}
	for i, c := range e.Children {
		if c.IsElement() {
			out.Children[i] = ElementNode(c.Element.Clone())
		} else {
			out.Children[i] = c
		}
	}
	return out
}

// Walk visits e and every descendant element in depth-first pre-order,
// calling fn on each. This is the traversal contract spec.md §4.4 requires
// passes to follow unless they document a different order. fn may mutate the
// element it's given (including its Attrs and Children slice header) but
// must not retain the *Element pointer past the call.
func Walk(e *Element, fn func(*Element)) {
	fn(e)
	for _, c := range e.Children {
		if c.IsElement() {
			Walk(c.Element, fn)
		}
	}
}

// WalkWithParent is like Walk but also passes the chain of ancestor elements
// (root-to-parent, root first) to fn, for code that needs local ancestor
// context without storing parent pointers on the node itself (spec.md §3
// ownership model).
func WalkWithParent(e *Element, ancestors []*Element, fn func(el *Element, ancestors []*Element)) {
	fn(e, ancestors)
	next := append(ancestors, e) //nolint:gocritic // intentional append-then-recurse on a stack slice
	for _, c := range e.Children {
		if c.IsElement() {
			WalkWithParent(c.Element, next, fn)
		}
	}
}
