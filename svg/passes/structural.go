package passes

import (
	"regexp"
	"strings"

	"github.com/arturoeanton/go-svgo/svg"
)

// RemoveComments drops Comment nodes, keeping legal comments by default.
// Grounded on original_source/svgn/src/plugins/remove_comments.rs.
type RemoveComments struct{}

func (RemoveComments) Name() string        { return "remove-comments" }
func (RemoveComments) Description() string { return "removes comments" }

type RemoveCommentsParams struct {
	PreservePatterns bool // when true (default), keep legal comments (body starts with '!')
}

func (RemoveComments) Apply(doc *svg.Document, _ svg.Context, params svg.Params) error {
	preserveLegal := true
	if p, ok := params.(RemoveCommentsParams); ok {
		preserveLegal = p.PreservePatterns
	}
	keep := func(n svg.Node) bool {
		return n.Kind != svg.KindComment || (preserveLegal && isLegalComment(n.Text))
	}
	doc.Prologue = filterNodes(doc.Prologue, keep)
	doc.Epilogue = filterNodes(doc.Epilogue, keep)
	svg.Walk(doc.Root, func(el *svg.Element) {
		retainChildren(el, keep)
	})
	return nil
}

func filterNodes(nodes []svg.Node, keep func(svg.Node) bool) []svg.Node {
	out := nodes[:0:0]
	for _, n := range nodes {
		if keep(n) {
			out = append(out, n)
		}
	}
	return out
}

// removeNamedElement is shared machinery for passes that drop every element
// with a fixed tag name, optionally gated by a predicate on the element.
func removeNamedElement(doc *svg.Document, tag string, drop func(*svg.Element) bool) {
	svg.Walk(doc.Root, func(el *svg.Element) {
		retainChildren(el, func(n svg.Node) bool {
			if !n.IsElement() || n.Element.Name != tag {
				return true
			}
			return !drop(n.Element)
		})
	})
}

// RemoveMetadata drops every <metadata> element.
type RemoveMetadata struct{}

func (RemoveMetadata) Name() string        { return "remove-metadata" }
func (RemoveMetadata) Description() string { return "removes <metadata>" }
func (RemoveMetadata) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	removeNamedElement(doc, "metadata", func(*svg.Element) bool { return true })
	return nil
}

// RemoveTitle drops every <title> element.
type RemoveTitle struct{}

func (RemoveTitle) Name() string        { return "remove-title" }
func (RemoveTitle) Description() string { return "removes <title>" }
func (RemoveTitle) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	removeNamedElement(doc, "title", func(*svg.Element) bool { return true })
	return nil
}

// RemoveDesc drops <desc> elements that are empty or match the standard
// "Created with/using" boilerplate, or all of them when RemoveAny is set.
// Grounded on original_source/svgn/src/plugins/remove_desc.rs.
type RemoveDesc struct{}

func (RemoveDesc) Name() string        { return "remove-desc" }
func (RemoveDesc) Description() string { return "removes description" }

type RemoveDescParams struct {
	RemoveAny bool
}

var standardDescRe = regexp.MustCompile(`^(Created with|Created using)`)

func (RemoveDesc) Apply(doc *svg.Document, _ svg.Context, params svg.Params) error {
	removeAny := false
	if p, ok := params.(RemoveDescParams); ok {
		removeAny = p.RemoveAny
	}
	removeNamedElement(doc, "desc", func(el *svg.Element) bool {
		if removeAny {
			return true
		}
		if el.IsEmpty() {
			return true
		}
		if text, ok := textContent(el); ok {
			return standardDescRe.MatchString(strings.TrimSpace(text))
		}
		return false
	})
	return nil
}

// RemoveDoctype drops the DOCTYPE declaration from prologue/epilogue.
type RemoveDoctype struct{}

func (RemoveDoctype) Name() string        { return "remove-doctype" }
func (RemoveDoctype) Description() string { return "removes doctype declaration" }
func (RemoveDoctype) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	keep := func(n svg.Node) bool { return !n.IsDocType() }
	doc.Prologue = filterNodes(doc.Prologue, keep)
	doc.Epilogue = filterNodes(doc.Epilogue, keep)
	return nil
}

// RemoveXMLProcInst drops the XML declaration (metadata, not a node) and any
// processing instruction targeting "xml". Grounded on
// original_source/svgn/src/plugins/remove_xml_proc_inst.rs.
type RemoveXMLProcInst struct{}

func (RemoveXMLProcInst) Name() string        { return "remove-xml-proc-inst" }
func (RemoveXMLProcInst) Description() string { return "removes XML processing instruction" }
func (RemoveXMLProcInst) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	doc.Metadata.HasXMLDecl = false
	doc.Metadata.Version = ""
	doc.Metadata.Encoding = ""
	doc.Metadata.Standalone = ""
	keep := func(n svg.Node) bool { return !(n.Kind == svg.KindPI && n.Text == "xml") }
	doc.Prologue = filterNodes(doc.Prologue, keep)
	doc.Epilogue = filterNodes(doc.Epilogue, keep)
	return nil
}

// RemoveEmptyAttrs drops attributes whose value is empty, except the
// conditional-processing allowlist.
type RemoveEmptyAttrs struct{}

func (RemoveEmptyAttrs) Name() string        { return "remove-empty-attrs" }
func (RemoveEmptyAttrs) Description() string { return "removes empty attributes" }
func (RemoveEmptyAttrs) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	svg.Walk(doc.Root, func(el *svg.Element) {
		el.Attrs.RetainFunc(func(name, value string) bool {
			return value != "" || conditionalProcessingAttrs[name]
		})
	})
	return nil
}

// textlikeElements are removed by RemoveEmptyText when they hold no content.
var textlikeElements = map[string]bool{"text": true, "tspan": true, "tref": true}

// RemoveEmptyText drops empty <text>/<tspan>/<tref>; <tref> is also removed
// when it has no href.
type RemoveEmptyText struct{}

func (RemoveEmptyText) Name() string        { return "remove-empty-text" }
func (RemoveEmptyText) Description() string { return "removes empty text elements" }
func (RemoveEmptyText) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	svg.Walk(doc.Root, func(el *svg.Element) {
		retainChildren(el, func(n svg.Node) bool {
			if !n.IsElement() || !textlikeElements[n.Element.Name] {
				return true
			}
			child := n.Element
			if child.Name == "tref" && !child.HasAttr("href") && !child.HasAttr("xlink:href") {
				return false
			}
			return !child.IsEmpty()
		})
	})
	return nil
}

// RemoveEmptyContainers drops empty container elements, bottom-up, with the
// exceptions enumerated in spec.md §4.4: never the root <svg>; <pattern>
// with any attributes; <mask> with an id; <g> with a filter; elements that
// are direct children of <switch>.
type RemoveEmptyContainers struct{}

func (RemoveEmptyContainers) Name() string        { return "remove-empty-containers" }
func (RemoveEmptyContainers) Description() string { return "removes empty container elements" }

func (RemoveEmptyContainers) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	var visit func(el *svg.Element, parent *svg.Element)
	visit = func(el *svg.Element, parent *svg.Element) {
		for _, c := range el.Children {
			if c.IsElement() {
				visit(c.Element, el)
			}
		}
		retainChildren(el, func(n svg.Node) bool {
			if !n.IsElement() {
				return true
			}
			return !shouldRemoveEmptyContainer(n.Element, el)
		})
	}
	visit(doc.Root, nil)
	return nil
}

func shouldRemoveEmptyContainer(el, parent *svg.Element) bool {
	if el.Name == "svg" {
		return false
	}
	if !containerElements[el.Name] || !el.IsEmpty() {
		return false
	}
	if parent != nil && parent.Name == "switch" {
		return false
	}
	switch el.Name {
	case "pattern":
		return el.Attrs.Len() == 0
	case "mask":
		return !el.HasAttr("id")
	case "g":
		return !el.HasAttr("filter")
	}
	return true
}

var rasterExtRe = regexp.MustCompile(`(?i)\.(jpe?g|png|gif)(\?|#|$)`)
var rasterDataURIRe = regexp.MustCompile(`(?i)^data:image/(jpeg|png|gif)`)

// RemoveRasterImages drops <image> elements referencing a raster image, by
// URL extension or data-URI mime type.
type RemoveRasterImages struct{}

func (RemoveRasterImages) Name() string        { return "remove-raster-images" }
func (RemoveRasterImages) Description() string { return "removes raster images" }
func (RemoveRasterImages) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	removeNamedElement(doc, "image", func(el *svg.Element) bool {
		href := el.Attr("href")
		if href == "" {
			href = el.Attr("xlink:href")
		}
		return rasterExtRe.MatchString(href) || rasterDataURIRe.MatchString(href)
	})
	return nil
}

// RemoveScripts drops <script> elements, on* event-handler attributes
// everywhere, and rewrites javascript: <a> links to their non-text children.
type RemoveScripts struct{}

func (RemoveScripts) Name() string        { return "remove-scripts" }
func (RemoveScripts) Description() string { return "removes scripts" }
func (RemoveScripts) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	removeNamedElement(doc, "script", func(*svg.Element) bool { return true })
	svg.Walk(doc.Root, func(el *svg.Element) {
		el.Attrs.RetainFunc(func(name, _ string) bool {
			return !(len(name) > 2 && strings.HasPrefix(name, "on"))
		})
		var out []svg.Node
		for _, c := range el.Children {
			if !c.IsElement() || c.Element.Name != "a" {
				out = append(out, c)
				continue
			}
			href := c.Element.Attr("href")
			if href == "" {
				href = c.Element.Attr("xlink:href")
			}
			if strings.HasPrefix(strings.TrimSpace(href), "javascript:") {
				retainChildren(c.Element, func(n svg.Node) bool { return n.Kind != svg.KindText })
				out = append(out, c.Element.Children...)
			} else {
				out = append(out, c)
			}
		}
		el.Children = out
	})
	return nil
}

// RemoveXMLNS drops the default xmlns attribute on every <svg> element.
// Disabled by default in the preset, matching
// original_source/svgn/src/plugins/remove_xmlns.rs.
type RemoveXMLNS struct{}

func (RemoveXMLNS) Name() string        { return "remove-xmlns" }
func (RemoveXMLNS) Description() string { return "removes xmlns attribute" }
func (RemoveXMLNS) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	svg.Walk(doc.Root, func(el *svg.Element) {
		if el.Name == "svg" {
			el.RemoveAttr("xmlns")
		}
	})
	return nil
}
