package passes

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/arturoeanton/go-svgo/svg"
	"github.com/arturoeanton/go-svgo/svg/internal/colornames"
)

// ConvertEllipseToCircle rewrites <ellipse> to <circle> when rx==ry or one
// of them is "auto". Grounded on
// original_source/svgn/src/plugins/convert_ellipse_to_circle.rs.
type ConvertEllipseToCircle struct{}

func (ConvertEllipseToCircle) Name() string        { return "convert-ellipse-to-circle" }
func (ConvertEllipseToCircle) Description() string { return "converts non-eccentric <ellipse>s to <circle>s" }

func (ConvertEllipseToCircle) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	svg.Walk(doc.Root, func(el *svg.Element) {
		if el.Name != "ellipse" {
			return
		}
		rx := el.Attr("rx")
		if rx == "" {
			rx = "0"
		}
		ry := el.Attr("ry")
		if ry == "" {
			ry = "0"
		}
		if rx != ry && rx != "auto" && ry != "auto" {
			return
		}
		var r string
		switch {
		case rx == "auto":
			r = ry
		default:
			r = rx
		}
		el.Name = "circle"
		el.RemoveAttr("rx")
		el.RemoveAttr("ry")
		el.SetAttr("r", r)
	})
	return nil
}

// ConvertColorsParams controls convert-colors' independently togglable
// sub-steps, per spec.md §4.4.
type ConvertColorsParams struct {
	NamesToHex    bool
	RGBToHex      bool
	ShortenHex    bool
	HexToShortName bool
	CaseMode      string // "lower" (default), "upper", or "" to leave as-is
	CurrentColor  string // non-empty regex of colors to replace with currentColor; "" disables
}

func defaultConvertColorsParams() ConvertColorsParams {
	return ConvertColorsParams{NamesToHex: true, RGBToHex: true, ShortenHex: true, HexToShortName: true, CaseMode: "lower"}
}

var rgbFuncRe = regexp.MustCompile(`^rgb\(\s*([^,]+)\s*,\s*([^,]+)\s*,\s*([^,]+)\s*\)$`)
var shortHexRe = regexp.MustCompile(`^#([0-9a-fA-F])\1([0-9a-fA-F])\2([0-9a-fA-F])\3$`)

// ConvertColors normalizes color-carrying attribute values. Never rewrites a
// value inside url(...), and never emits currentColor while inside a <mask>
// (tracked with an enter/exit counter on the traversal stack, reset at the
// start of every Apply call per spec.md §5).
type ConvertColors struct{}

func (ConvertColors) Name() string        { return "convert-colors" }
func (ConvertColors) Description() string { return "converts colors to shorter formats" }

func (ConvertColors) Apply(doc *svg.Document, _ svg.Context, params svg.Params) error {
	p := defaultConvertColorsParams()
	if given, ok := params.(ConvertColorsParams); ok {
		p = given
	}
	var currentColorRe *regexp.Regexp
	if p.CurrentColor != "" {
		var err error
		currentColorRe, err = regexp.Compile(p.CurrentColor)
		if err != nil {
			return &svg.PassProcessingError{Pass: "convert-colors", Msg: "invalid current-color pattern", Err: err}
		}
	}

	maskDepth := 0
	var walk func(el *svg.Element)
	walk = func(el *svg.Element) {
		entered := false
		if el.Name == "mask" {
			maskDepth++
			entered = true
		}
		for _, name := range el.Attrs.Keys() {
			if !colorAttrNames[name] {
				continue
			}
			v := el.Attr(name)
			if strings.Contains(v, "url(") {
				continue
			}
			nv := convertColorValue(v, p)
			if currentColorRe != nil && maskDepth == 0 && currentColorRe.MatchString(nv) {
				nv = "currentColor"
			}
			el.SetAttr(name, nv)
		}
		for _, c := range el.Children {
			if c.IsElement() {
				walk(c.Element)
			}
		}
		if entered {
			maskDepth--
		}
	}
	walk(doc.Root)
	return nil
}

func convertColorValue(v string, p ConvertColorsParams) string {
	if p.NamesToHex {
		if hex, ok := colornames.HexFor(v); ok {
			v = "#" + hex
		}
	}
	if p.RGBToHex {
		if m := rgbFuncRe.FindStringSubmatch(v); m != nil {
			if hex, ok := rgbToHex(m[1], m[2], m[3]); ok {
				v = "#" + hex
			}
		}
	}
	if strings.HasPrefix(v, "#") && len(v) == 7 {
		if p.ShortenHex {
			if m := shortHexRe.FindStringSubmatch(v); m != nil {
				v = "#" + m[1] + m[2] + m[3]
			}
		}
		if p.HexToShortName {
			if name, ok := colornames.NameFor(strings.TrimPrefix(v, "#")); ok && len(name)+1 < len(v) {
				v = name
			}
		}
	}
	if strings.HasPrefix(v, "#") {
		switch p.CaseMode {
		case "upper":
			v = strings.ToUpper(v)
		case "lower":
			v = strings.ToLower(v)
		}
	}
	return v
}

func rgbToHex(rs, gs, bs string) (string, bool) {
	r, ok1 := parseColorChannel(rs)
	g, ok2 := parseColorChannel(gs)
	b, ok3 := parseColorChannel(bs)
	if !ok1 || !ok2 || !ok3 {
		return "", false
	}
	return fmt.Sprintf("%02x%02x%02x", r, g, b), true
}

func parseColorChannel(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, false
		}
		return clampByte(int(math.Round(f * 2.55))), true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return clampByte(n), true
}

func clampByte(n int) int {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// ConvertOneStopGradients replaces any linearGradient/radialGradient with
// exactly one <stop> child by a solid color, rewriting every reference and
// dropping the gradient definition (and its <defs> if left empty).
// Grounded on spec.md §4.4 and the general "gather then mutate" pattern
// spec.md §4.4/§9 prescribes for cross-cutting passes.
type ConvertOneStopGradients struct{}

func (ConvertOneStopGradients) Name() string { return "convert-one-stop-gradients" }
func (ConvertOneStopGradients) Description() string {
	return "converts one-stop (single color) gradients to a plain color"
}

func (ConvertOneStopGradients) Apply(doc *svg.Document, _ svg.Context, _ svg.Params) error {
	colors := map[string]string{}
	var defsParents []*svg.Element

	svg.Walk(doc.Root, func(el *svg.Element) {
		if el.Name != "linearGradient" && el.Name != "radialGradient" {
			return
		}
		id := el.Attr("id")
		if id == "" {
			return
		}
		stops := 0
		var color string
		for _, c := range el.ChildElements() {
			if c.Name == "stop" {
				stops++
				color = stopColor(c)
			}
		}
		if stops == 1 {
			colors[id] = color
		}
	})
	if len(colors) == 0 {
		return nil
	}

	rewrite := func(v string) string {
		return urlRefRe.ReplaceAllStringFunc(v, func(m string) string {
			sub := urlRefRe.FindStringSubmatch(m)
			if c, ok := colors[sub[1]]; ok {
				return c
			}
			return m
		})
	}

	svg.Walk(doc.Root, func(el *svg.Element) {
		for _, name := range el.Attrs.Keys() {
			v := el.Attr(name)
			if strings.Contains(v, "url(#") {
				el.SetAttr(name, rewrite(v))
			}
		}
	})

	svg.Walk(doc.Root, func(el *svg.Element) {
		if el.Name == "defs" {
			defsParents = append(defsParents, el)
		}
		retainChildren(el, func(n svg.Node) bool {
			if !n.IsElement() {
				return true
			}
			if n.Element.Name != "linearGradient" && n.Element.Name != "radialGradient" {
				return true
			}
			_, collapsed := colors[n.Element.Attr("id")]
			return !collapsed
		})
	})
	svg.Walk(doc.Root, func(el *svg.Element) {
		retainChildren(el, func(n svg.Node) bool {
			return !(n.IsElement() && n.Element.Name == "defs" && n.Element.IsEmpty())
		})
	})
	return nil
}

func stopColor(stop *svg.Element) string {
	if c := stop.Attr("stop-color"); c != "" {
		return c
	}
	style := stop.Attr("style")
	for _, decl := range strings.Split(style, ";") {
		parts := strings.SplitN(decl, ":", 2)
		if len(parts) == 2 && strings.TrimSpace(parts[0]) == "stop-color" {
			return strings.TrimSpace(parts[1])
		}
	}
	return "#000000"
}
