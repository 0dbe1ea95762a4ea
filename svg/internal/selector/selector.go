// Package selector implements the small subset of CSS selector syntax the
// reference optimizer exposes to remove-elements-by-attr and
// remove-attributes-by-selector: a chain of compound selectors (tag, #id,
// .class, [attr], [attr=value], [attr~=value], [attr^=value], [attr$=value],
// [attr*=value]) joined by descendant (" ") or child (">") combinators.
//
// This is a hand-rolled matcher rather than an imported CSS engine because
// every CSS selector library available in the retrieval pack (e.g.
// github.com/ericchiang/css, found via cogentcore-core's go.mod) is built
// against golang.org/x/net/html.Node, not an arbitrary tree type, and
// adapting one would mean round-tripping every document through html.Node
// just to run a handful of attribute filters. The grammar and recursive
// descent style below instead generalizes the teacher's own path-query
// engine (arturoeanton-go-xml's QueryAll/parseSegment/matchFilter in
// xml/helper.go), which already solves the same "name plus bracketed
// predicate" parsing problem against a different tree shape.
package selector

import (
	"fmt"
	"strings"
)

// Node is the minimal element-tree view selector needs. svg.Element
// satisfies it without importing the svg package here (avoiding an import
// cycle between svg and svg/internal/selector).
type Node interface {
	TagName() string
	AttrValue(name string) (string, bool)
}

// Combinator joins two compound selectors in a chain.
type Combinator int

const (
	// Descendant matches any ancestor, not just the immediate parent.
	Descendant Combinator = iota
	// Child matches only the immediate parent.
	Child
)

// Selector is a parsed chain of compound selectors, rightmost first (the
// way matching proceeds: check the candidate node, then walk up ancestors).
type Selector struct {
	steps []step
}

type step struct {
	combinator Combinator // combinator to the *previous* (left) step; ignored for steps[0]
	tag        string     // "" means any tag
	id         string
	classes    []string
	attrs      []attrPredicate
}

type attrPredicate struct {
	name string
	op   string // "", "=", "~=", "^=", "$=", "*="
	val  string
}

// Parse compiles a selector string. It supports one compound-selector chain;
// comma-separated selector lists are not part of the grammar (inline-styles
// splits a rule's prelude on commas and parses each entry on its own).
func Parse(sel string) (*Selector, error) {
	sel = strings.TrimSpace(sel)
	if sel == "" {
		return nil, fmt.Errorf("selector: empty selector")
	}
	tokens, err := tokenize(sel)
	if err != nil {
		return nil, err
	}
	s := &Selector{}
	for _, tok := range tokens {
		st, err := parseCompound(tok.text)
		if err != nil {
			return nil, err
		}
		st.combinator = tok.combinator
		s.steps = append(s.steps, st)
	}
	if len(s.steps) == 0 {
		return nil, fmt.Errorf("selector: no compound selectors found in %q", sel)
	}
	return s, nil
}

type rawToken struct {
	text       string
	combinator Combinator
}

// tokenize splits a selector chain on whitespace and ">" while keeping
// bracketed predicates (which may contain spaces) intact.
func tokenize(sel string) ([]rawToken, error) {
	var tokens []rawToken
	combinator := Descendant
	var cur strings.Builder
	depth := 0
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, rawToken{text: cur.String(), combinator: combinator})
			cur.Reset()
			combinator = Descendant
		}
	}
	for _, r := range sel {
		switch {
		case r == '[':
			depth++
			cur.WriteRune(r)
		case r == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("selector: unmatched ']' in %q", sel)
			}
			cur.WriteRune(r)
		case depth > 0:
			cur.WriteRune(r)
		case r == '>':
			flush()
			combinator = Child
		case r == ' ' || r == '\t':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("selector: unmatched '[' in %q", sel)
	}
	flush()
	return tokens, nil
}

func parseCompound(tok string) (step, error) {
	var st step
	i := 0
	for i < len(tok) {
		switch tok[i] {
		case '#':
			end := nextSpecial(tok, i+1)
			st.id = tok[i+1 : end]
			i = end
		case '.':
			end := nextSpecial(tok, i+1)
			st.classes = append(st.classes, tok[i+1:end])
			i = end
		case '[':
			end := strings.IndexByte(tok[i:], ']')
			if end < 0 {
				return st, fmt.Errorf("selector: unmatched '[' in %q", tok)
			}
			end += i
			pred, err := parseAttrPredicate(tok[i+1 : end])
			if err != nil {
				return st, err
			}
			st.attrs = append(st.attrs, pred)
			i = end + 1
		default:
			end := nextSpecial(tok, i)
			st.tag = tok[i:end]
			i = end
		}
	}
	return st, nil
}

func nextSpecial(s string, from int) int {
	for i := from; i < len(s); i++ {
		switch s[i] {
		case '#', '.', '[':
			return i
		}
	}
	return len(s)
}

var attrOps = []string{"~=", "^=", "$=", "*=", "="}

func parseAttrPredicate(inside string) (attrPredicate, error) {
	inside = strings.TrimSpace(inside)
	for _, op := range attrOps {
		if idx := strings.Index(inside, op); idx >= 0 {
			name := strings.TrimSpace(inside[:idx])
			val := strings.TrimSpace(inside[idx+len(op):])
			val = strings.Trim(val, `"'`)
			return attrPredicate{name: name, op: op, val: val}, nil
		}
	}
	if inside == "" {
		return attrPredicate{}, fmt.Errorf("selector: empty attribute predicate")
	}
	return attrPredicate{name: inside, op: ""}, nil
}

// Matches reports whether node, whose ancestor chain (root-to-parent, root
// first) is ancestors, satisfies s.
func (s *Selector) Matches(node Node, ancestors []Node) bool {
	return s.matchFrom(len(s.steps)-1, node, ancestors)
}

func (s *Selector) matchFrom(stepIdx int, node Node, ancestors []Node) bool {
	st := s.steps[stepIdx]
	if !matchesStep(st, node) {
		return false
	}
	if stepIdx == 0 {
		return true
	}
	prevCombinator := st.combinator
	if prevCombinator == Child {
		if len(ancestors) == 0 {
			return false
		}
		parent := ancestors[len(ancestors)-1]
		return s.matchFrom(stepIdx-1, parent, ancestors[:len(ancestors)-1])
	}
	for i := len(ancestors) - 1; i >= 0; i-- {
		if s.matchFrom(stepIdx-1, ancestors[i], ancestors[:i]) {
			return true
		}
	}
	return false
}

func matchesStep(st step, node Node) bool {
	if st.tag != "" && st.tag != "*" && node.TagName() != st.tag {
		return false
	}
	if st.id != "" {
		v, ok := node.AttrValue("id")
		if !ok || v != st.id {
			return false
		}
	}
	if len(st.classes) > 0 {
		v, ok := node.AttrValue("class")
		if !ok {
			return false
		}
		have := make(map[string]bool)
		for _, c := range strings.Fields(v) {
			have[c] = true
		}
		for _, want := range st.classes {
			if !have[want] {
				return false
			}
		}
	}
	for _, pred := range st.attrs {
		v, ok := node.AttrValue(pred.name)
		if !ok {
			return false
		}
		if !matchAttrOp(pred, v) {
			return false
		}
	}
	return true
}

func matchAttrOp(pred attrPredicate, value string) bool {
	switch pred.op {
	case "":
		return true
	case "=":
		return value == pred.val
	case "~=":
		for _, w := range strings.Fields(value) {
			if w == pred.val {
				return true
			}
		}
		return false
	case "^=":
		return strings.HasPrefix(value, pred.val)
	case "$=":
		return strings.HasSuffix(value, pred.val)
	case "*=":
		return strings.Contains(value, pred.val)
	default:
		return false
	}
}
