package passes

import (
	"strings"

	"github.com/aymerick/douceur/css"
	cssparser "github.com/aymerick/douceur/parser"
	"github.com/arturoeanton/go-svgo/svg"
	"github.com/arturoeanton/go-svgo/svg/internal/selector"
)

// RemoveStyleElement drops every <style>.
type RemoveStyleElement struct{}

func (RemoveStyleElement) Name() string        { return "remove-style-element" }
func (RemoveStyleElement) Description() string { return "removes <style> elements" }
func (RemoveStyleElement) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	removeNamedElement(doc, "style", func(*svg.Element) bool { return true })
	return nil
}

// MergeStyles folds every <style> element into the first occurrence,
// wrapping media-scoped sheets in "@media {...}" and removing the other
// <style> elements. The sheets are joined as plain text; no CSS parser is
// involved.
type MergeStyles struct{}

func (MergeStyles) Name() string        { return "merge-styles" }
func (MergeStyles) Description() string { return "merges multiple style elements into one" }

func (MergeStyles) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	var styleEls []*svg.Element
	svg.Walk(doc.Root, func(el *svg.Element) {
		if el.Name == "style" {
			styleEls = append(styleEls, el)
		}
	})
	if len(styleEls) < 2 {
		return nil
	}

	var merged strings.Builder
	for i, el := range styleEls {
		var tb strings.Builder
		for _, c := range el.Children {
			if c.Kind == svg.KindText || c.Kind == svg.KindCData {
				tb.WriteString(c.Text)
			}
		}
		text := tb.String()
		media := el.Attr("media")
		if i > 0 {
			merged.WriteString("\n")
		}
		if media != "" && media != "all" {
			merged.WriteString("@media " + media + " {" + text + "}")
		} else {
			merged.WriteString(text)
		}
	}

	first := styleEls[0]
	first.RemoveAttr("media")
	body := merged.String()
	first.Children = nil
	if strings.ContainsAny(body, "<&") {
		first.AddChild(svg.CDataNode(body))
	} else {
		first.AddChild(svg.TextNode(body))
	}

	rest := make(map[*svg.Element]bool, len(styleEls)-1)
	for _, el := range styleEls[1:] {
		rest[el] = true
	}
	svg.Walk(doc.Root, func(el *svg.Element) {
		retainChildren(el, func(n svg.Node) bool {
			return !(n.IsElement() && rest[n.Element])
		})
	})
	return nil
}

// presentationAttrs is the set of CSS properties that double as SVG
// presentation attributes, used by convert-style-to-attrs and inline-styles.
var presentationAttrs = map[string]bool{
	"fill": true, "stroke": true, "stroke-width": true, "stroke-linecap": true,
	"stroke-linejoin": true, "stroke-dasharray": true, "stroke-dashoffset": true,
	"opacity": true, "fill-opacity": true, "stroke-opacity": true,
	"color": true, "font-family": true, "font-size": true, "font-weight": true,
	"font-style": true, "text-anchor": true, "visibility": true, "display": true,
	"stop-color": true, "stop-opacity": true, "clip-path": true, "clip-rule": true,
	"mask": true, "filter": true, "transform": true,
}

// ConvertStyleToAttrs moves each style declaration that is also a valid
// presentation attribute onto the element as an attribute, when that
// attribute isn't already set; unrecognized declarations are left in style.
type ConvertStyleToAttrs struct{}

func (ConvertStyleToAttrs) Name() string        { return "convert-style-to-attrs" }
func (ConvertStyleToAttrs) Description() string { return "moves style properties to presentation attributes" }

func (ConvertStyleToAttrs) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	svg.Walk(doc.Root, func(el *svg.Element) {
		style := el.Attr("style")
		if style == "" {
			return
		}
		decls, err := cssparser.ParseDeclarations(style)
		if err != nil {
			return
		}
		var kept []string
		for _, d := range decls {
			if d.Important || !presentationAttrs[d.Property] || el.HasAttr(d.Property) {
				kept = append(kept, declString(d))
				continue
			}
			el.SetAttr(d.Property, d.Value)
		}
		if len(kept) == 0 {
			el.RemoveAttr("style")
		} else {
			el.SetAttr("style", strings.Join(kept, ";"))
		}
	})
	return nil
}

func declString(d *css.Declaration) string {
	if d.Important {
		return d.Property + ":" + d.Value + " !important"
	}
	return d.Property + ":" + d.Value
}

// MinifyStyles collapses whitespace in <style> content and style attribute
// values: strips comments, removes space around structural punctuation, and
// drops the trailing semicolon before a closing brace or end of string.
type MinifyStyles struct{}

func (MinifyStyles) Name() string        { return "minify-styles" }
func (MinifyStyles) Description() string { return "minifies styles" }

func (MinifyStyles) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	svg.Walk(doc.Root, func(el *svg.Element) {
		if el.Name == "style" {
			if text, ok := textContent(el); ok {
				el.Children[0] = svg.TextNode(minifyCSS(text))
			}
		}
		if style := el.Attr("style"); style != "" {
			el.SetAttr("style", minifyDeclarationList(style))
		}
	})
	return nil
}

func minifyDeclarationList(s string) string {
	parts := strings.Split(s, ";")
	var kept []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return minifyCSS(strings.Join(kept, ";"))
}

// InlineStyles matches class/id/element selectors from <style> blocks
// against elements and inlines the matched declarations as a style
// attribute, in rule source order (a later rule overrides an earlier one for
// the same property; selector specificity is not compared). Declarations
// already in the element's style attribute are written after them, so they
// keep precedence as inline styles do in CSS.
type InlineStyles struct{}

func (InlineStyles) Name() string        { return "inline-styles" }
func (InlineStyles) Description() string { return "moves styles from <style> elements to style attributes" }

func (InlineStyles) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	var sheets []*css.Stylesheet
	svg.Walk(doc.Root, func(el *svg.Element) {
		if el.Name != "style" {
			return
		}
		text, ok := textContent(el)
		if !ok {
			return
		}
		sheet, err := cssparser.Parse(text)
		if err != nil {
			return
		}
		sheets = append(sheets, sheet)
	})
	if len(sheets) == 0 {
		return nil
	}

	type rule struct {
		sel   *selector.Selector
		decls []*css.Declaration
	}
	var rules []rule
	for _, sheet := range sheets {
		for _, r := range sheet.Rules {
			if r.Kind != css.QualifiedRule {
				continue
			}
			for _, raw := range strings.Split(r.Prelude, ",") {
				sel, err := selector.Parse(strings.TrimSpace(raw))
				if err != nil {
					continue
				}
				rules = append(rules, rule{sel: sel, decls: r.Declarations})
			}
		}
	}

	var visit func(el *svg.Element, ancestors []selector.Node)
	visit = func(el *svg.Element, ancestors []selector.Node) {
		var matched []*css.Declaration
		for _, r := range rules {
			if r.sel.Matches(el, ancestors) {
				matched = append(matched, r.decls...)
			}
		}
		if len(matched) > 0 {
			var b strings.Builder
			for _, d := range matched {
				if b.Len() > 0 {
					b.WriteString(";")
				}
				b.WriteString(declString(d))
			}
			if existing := el.Attr("style"); existing != "" {
				b.WriteString(";" + existing)
			}
			el.SetAttr("style", b.String())
		}
		next := append(ancestors, selector.Node(el)) //nolint:gocritic // stack slice, single active branch at a time
		for _, c := range el.Children {
			if c.IsElement() {
				visit(c.Element, next)
			}
		}
	}
	visit(doc.Root, nil)
	return nil
}
