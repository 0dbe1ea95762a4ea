package passes

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arturoeanton/go-svgo/svg"
)

// CleanupAttrsParams mirrors the three independently togglable sub-steps in
// original_source/svgn/src/plugins/cleanup_attrs.rs, each defaulting to true.
type CleanupAttrsParams struct {
	Newlines bool
	Trim     bool
	Spaces   bool
}

func defaultCleanupAttrsParams() CleanupAttrsParams {
	return CleanupAttrsParams{Newlines: true, Trim: true, Spaces: true}
}

var reNewlinesNeedSpace = regexp.MustCompile(`(\S)\r?\n(\S)`)
var reNewlines = regexp.MustCompile(`\r?\n`)
var reSpaces = regexp.MustCompile(`\s{2,}`)

// CleanupAttrs normalizes whitespace inside every attribute value.
type CleanupAttrs struct{}

func (CleanupAttrs) Name() string        { return "cleanup-attrs" }
func (CleanupAttrs) Description() string { return "cleans up attributes from whitespace" }

func (CleanupAttrs) Apply(doc *svg.Document, _ svg.Context, params svg.Params) error {
	p := defaultCleanupAttrsParams()
	if given, ok := params.(CleanupAttrsParams); ok {
		p = given
	}
	svg.Walk(doc.Root, func(el *svg.Element) {
		for _, name := range el.Attrs.Keys() {
			v := el.Attr(name)
			if p.Newlines {
				v = reNewlinesNeedSpace.ReplaceAllString(v, "$1 $2")
				v = reNewlines.ReplaceAllString(v, "")
			}
			if p.Spaces {
				v = reSpaces.ReplaceAllString(v, " ")
			}
			if p.Trim {
				v = strings.TrimSpace(v)
			}
			el.SetAttr(name, v)
		}
	})
	return nil
}

// CleanupEnableBackground drops enable-background everywhere when the
// document has no filter element; otherwise simplifies the common
// "new 0 0 W H" form on <svg>/<mask>/<pattern> whose width/height match.
type CleanupEnableBackground struct{}

func (CleanupEnableBackground) Name() string { return "cleanup-enable-background" }
func (CleanupEnableBackground) Description() string {
	return "cleans up enable-background attribute"
}

var enableBgRe = regexp.MustCompile(`^new\s+0\s+0\s+(\S+)\s+(\S+)$`)

func (CleanupEnableBackground) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	hasFilter := false
	svg.Walk(doc.Root, func(el *svg.Element) {
		if el.Name == "filter" {
			hasFilter = true
		}
	})
	if !hasFilter {
		svg.Walk(doc.Root, func(el *svg.Element) {
			el.RemoveAttr("enable-background")
		})
		return nil
	}
	svg.Walk(doc.Root, func(el *svg.Element) {
		if el.Name != "svg" && el.Name != "mask" && el.Name != "pattern" {
			return
		}
		v := el.Attr("enable-background")
		m := enableBgRe.FindStringSubmatch(v)
		if m == nil {
			return
		}
		if m[1] != el.Attr("width") || m[2] != el.Attr("height") {
			return
		}
		if el.Name == "svg" {
			el.RemoveAttr("enable-background")
		} else {
			el.SetAttr("enable-background", "new")
		}
	})
	return nil
}

// attrSortPriority lists attributes that should sort before everything else,
// in this fixed order; anything not listed sorts alphabetically after it.
var attrSortPriority = []string{
	"id", "xmlns", "xmlns:xlink", "class", "style",
	"x", "y", "width", "height", "viewBox",
	"cx", "cy", "r", "rx", "ry", "d", "points",
	"transform", "fill", "stroke",
}

var attrSortRank = func() map[string]int {
	m := make(map[string]int, len(attrSortPriority))
	for i, n := range attrSortPriority {
		m[n] = i
	}
	return m
}()

// SortAttrs reorders each element's attributes by a stable priority list,
// then alphabetically. Grounded on the teacher's own attribute
// canonicalization (xml/c14n.go sorts attributes alphabetically for
// canonical output); this pass generalizes that with an SVG-aware priority
// prefix.
type SortAttrs struct{}

func (SortAttrs) Name() string        { return "sort-attrs" }
func (SortAttrs) Description() string { return "sorts element attributes" }

func (SortAttrs) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	svg.Walk(doc.Root, func(el *svg.Element) {
		keys := el.Attrs.Keys()
		sortAttrNames(keys)
		el.Attrs.Reorder(keys)
	})
	return nil
}

func sortAttrNames(keys []string) {
	rank := func(name string) int {
		if r, ok := attrSortRank[name]; ok {
			return r
		}
		return len(attrSortPriority)
	}
	// insertion sort: stable, small N per element, and keeps the
	// implementation dependency-free for a purely local comparison.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0; j-- {
			ri, rj := rank(keys[j]), rank(keys[j-1])
			if ri < rj || (ri == rj && keys[j] < keys[j-1]) {
				keys[j], keys[j-1] = keys[j-1], keys[j]
			} else {
				break
			}
		}
	}
}

// CleanupNumericValues rounds/trims numeric attribute and path-adjacent
// values to a fixed precision and drops redundant "px" units, without
// touching non-numeric content. A conservative, attribute-value-local
// rewrite per spec.md §4.4.
type CleanupNumericValues struct{}

func (CleanupNumericValues) Name() string        { return "cleanup-numeric-values" }
func (CleanupNumericValues) Description() string { return "rounds numeric values" }

type CleanupNumericValuesParams struct {
	Precision  int // decimal places to keep; 0 means integers, default 3
	RemovePx   bool
	LeadingZero bool // keep a leading zero before the decimal point
}

var numericAttrNames = map[string]bool{
	"x": true, "y": true, "cx": true, "cy": true, "r": true,
	"rx": true, "ry": true, "width": true, "height": true,
	"x1": true, "y1": true, "x2": true, "y2": true,
	"stroke-width": true, "opacity": true, "fill-opacity": true, "stroke-opacity": true,
}

var trailingPxRe = regexp.MustCompile(`^(-?[0-9.]+)px$`)

func (CleanupNumericValues) Apply(doc *svg.Document, _ svg.Context, params svg.Params) error {
	p := CleanupNumericValuesParams{Precision: 3, RemovePx: true, LeadingZero: true}
	if given, ok := params.(CleanupNumericValuesParams); ok {
		p = given
	}
	svg.Walk(doc.Root, func(el *svg.Element) {
		for _, name := range el.Attrs.Keys() {
			if !numericAttrNames[name] {
				continue
			}
			v := el.Attr(name)
			if p.RemovePx {
				if m := trailingPxRe.FindStringSubmatch(v); m != nil {
					v = m[1]
				}
			}
			if rounded, ok := roundNumber(v, p.Precision); ok {
				if !p.LeadingZero {
					rounded = stripLeadingZero(rounded)
				}
				el.SetAttr(name, rounded)
			} else {
				el.SetAttr(name, v)
			}
		}
	})
	return nil
}

func roundNumber(s string, precision int) (string, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", false
	}
	rounded := strconv.FormatFloat(f, 'f', precision, 64)
	if strings.Contains(rounded, ".") {
		rounded = strings.TrimRight(rounded, "0")
		rounded = strings.TrimSuffix(rounded, ".")
	}
	if rounded == "" || rounded == "-0" {
		rounded = "0"
	}
	return rounded, true
}

// stripLeadingZero turns "0.5"/"-0.5" into ".5"/"-.5", the common
// cleanup-numeric-values micro-optimization.
func stripLeadingZero(s string) string {
	if strings.HasPrefix(s, "0.") {
		return s[1:]
	}
	if strings.HasPrefix(s, "-0.") {
		return "-" + s[2:]
	}
	return s
}

// CleanupListOfValues applies the same numeric rounding as
// CleanupNumericValues to space/comma-separated value lists such as
// viewBox, points, and stroke-dasharray.
type CleanupListOfValues struct{}

func (CleanupListOfValues) Name() string        { return "cleanup-list-of-values" }
func (CleanupListOfValues) Description() string { return "rounds list of numeric values" }

var listValuedAttrs = map[string]bool{"viewBox": true, "points": true, "stroke-dasharray": true}

func (CleanupListOfValues) Apply(doc *svg.Document, _ svg.Context, params svg.Params) error {
	precision := 3
	if p, ok := params.(CleanupNumericValuesParams); ok {
		precision = p.Precision
	}
	splitter := regexp.MustCompile(`[\s,]+`)
	svg.Walk(doc.Root, func(el *svg.Element) {
		for _, name := range el.Attrs.Keys() {
			if !listValuedAttrs[name] {
				continue
			}
			parts := splitter.Split(strings.TrimSpace(el.Attr(name)), -1)
			for i, part := range parts {
				if rounded, ok := roundNumber(part, precision); ok {
					parts[i] = rounded
				}
			}
			el.SetAttr(name, strings.Join(parts, " "))
		}
	})
	return nil
}
