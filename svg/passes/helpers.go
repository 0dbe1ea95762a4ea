// Package passes implements the built-in rewriting passes and the
// preset-default registry, grounded throughout on the reference
// implementation's per-plugin modules (original_source/svgn/src/plugins/*)
// translated into the tree shape defined by package svg.
package passes

import (
	"regexp"
	"strings"

	"github.com/arturoeanton/go-svgo/svg"
)

// retainChildren keeps only the children of el for which keep returns true,
// preserving the relative order of survivors. This is the concrete "children
// retain in place" operation spec.md §9 requires every deleting pass to use.
func retainChildren(el *svg.Element, keep func(svg.Node) bool) {
	kept := el.Children[:0:0]
	for _, c := range el.Children {
		if keep(c) {
			kept = append(kept, c)
		}
	}
	el.Children = kept
}

// containerElements is the set of elements remove-empty-containers
// considers: the reference implementation's CONTAINER_ELEMENTS
// (original_source/svgn/src/plugins/remove_empty_containers.rs) without svg,
// which remove-empty-containers never removes, plus symbol.
var containerElements = map[string]bool{
	"a": true, "defs": true, "foreignObject": true, "g": true,
	"marker": true, "mask": true, "missing-glyph": true, "pattern": true,
	"switch": true, "symbol": true,
}

// conditionalProcessingAttrs is the fixed allowlist of attributes whose
// empty value is semantically meaningful (spec.md §4.4 remove-empty-attrs).
var conditionalProcessingAttrs = map[string]bool{
	"requiredExtensions": true, "requiredFeatures": true, "systemLanguage": true,
}

// colorAttrNames is the fixed set of attributes convert-colors normalizes.
var colorAttrNames = map[string]bool{
	"fill": true, "stroke": true, "color": true,
	"stop-color": true, "flood-color": true, "lighting-color": true,
}

// idRefAttrs enumerates the attributes that can hold a "#id" reference
// outside of url(...) and style values: href and its xlink-prefixed legacy
// form.
var idRefAttrs = []string{"href", "xlink:href"}

var urlRefRe = regexp.MustCompile(`url\(\s*#([^)\s'"]+)\s*\)`)

// findURLRefs returns every id referenced via url(#id) inside value.
func findURLRefs(value string) []string {
	var out []string
	for _, m := range urlRefRe.FindAllStringSubmatch(value, -1) {
		out = append(out, m[1])
	}
	return out
}

// replaceURLRefs rewrites every url(#id) in value using rename(id).
func replaceURLRefs(value string, rename func(string) string) string {
	return urlRefRe.ReplaceAllStringFunc(value, func(m string) string {
		sub := urlRefRe.FindStringSubmatch(m)
		return "url(#" + rename(sub[1]) + ")"
	})
}

// hrefTarget returns the "#id" fragment a href/xlink:href attribute points
// at, if any.
func hrefTarget(value string) (string, bool) {
	if strings.HasPrefix(value, "#") {
		return value[1:], true
	}
	return "", false
}

// isLegalComment reports whether a comment body (without delimiters) is a
// "legal comment" per spec.md's glossary: first non-whitespace char is '!'.
func isLegalComment(body string) bool {
	trimmed := strings.TrimLeft(body, " \t\r\n")
	return strings.HasPrefix(trimmed, "!")
}

func textContent(el *svg.Element) (string, bool) {
	if len(el.Children) != 1 || !el.Children[0].IsText() {
		return "", false
	}
	return el.Children[0].Text, true
}
