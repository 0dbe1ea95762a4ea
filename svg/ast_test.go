package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeConstructorsAndPredicates(t *testing.T) {
	text := TextNode("hi")
	assert.True(t, text.IsText())
	assert.False(t, text.IsElement())

	ws := TextNode("  \n\t")
	assert.True(t, ws.IsWhitespaceText())
	assert.False(t, text.IsWhitespaceText())

	comment := CommentNode(" hello ")
	assert.True(t, comment.IsComment())

	doctype := DocTypeNode("svg PUBLIC ...")
	assert.True(t, doctype.IsDocType())

	el := ElementNode(NewElement("rect"))
	assert.True(t, el.IsElement())
	assert.Equal(t, "rect", el.Element.Name)
}

func TestElementAttrShorthands(t *testing.T) {
	el := NewElement("circle")
	el.SetAttr("r", "5")
	require.True(t, el.HasAttr("r"))
	assert.Equal(t, "5", el.Attr("r"))

	el.RemoveAttr("r")
	assert.False(t, el.HasAttr("r"))
	assert.Equal(t, "", el.Attr("r"))
}

func TestElementChildElementsSkipsNonElementNodes(t *testing.T) {
	root := NewElement("g")
	root.AddChild(TextNode("  "))
	a := NewElement("rect")
	root.AddChild(ElementNode(a))
	root.AddChild(CommentNode("x"))
	b := NewElement("circle")
	root.AddChild(ElementNode(b))

	got := root.ChildElements()
	require.Len(t, got, 2)
	assert.Equal(t, "rect", got[0].Name)
	assert.Equal(t, "circle", got[1].Name)
}

func TestElementCloneIsDeep(t *testing.T) {
	root := NewElement("g")
	root.SetAttr("id", "a")
	child := NewElement("rect")
	child.SetAttr("x", "1")
	root.AddChild(ElementNode(child))

	clone := root.Clone()
	clone.ChildElements()[0].SetAttr("x", "2")

	assert.Equal(t, "1", root.ChildElements()[0].Attr("x"), "mutating the clone must not affect the original")
	assert.Equal(t, "2", clone.ChildElements()[0].Attr("x"))
}

func TestWalkVisitsDepthFirstPreOrder(t *testing.T) {
	root := NewElement("svg")
	g := NewElement("g")
	rect := NewElement("rect")
	circle := NewElement("circle")
	g.AddChild(ElementNode(rect))
	root.AddChild(ElementNode(g))
	root.AddChild(ElementNode(circle))

	var visited []string
	Walk(root, func(e *Element) { visited = append(visited, e.Name) })
	assert.Equal(t, []string{"svg", "g", "rect", "circle"}, visited)
}

func TestWalkWithParentTracksAncestors(t *testing.T) {
	root := NewElement("svg")
	mask := NewElement("mask")
	rect := NewElement("rect")
	mask.AddChild(ElementNode(rect))
	root.AddChild(ElementNode(mask))

	var gotAncestors [][]string
	WalkWithParent(root, nil, func(el *Element, ancestors []*Element) {
		var names []string
		for _, a := range ancestors {
			names = append(names, a.Name)
		}
		gotAncestors = append(gotAncestors, names)
	})

	require.Len(t, gotAncestors, 3)
	assert.Empty(t, gotAncestors[0])
	assert.Equal(t, []string{"svg"}, gotAncestors[1])
	assert.Equal(t, []string{"svg", "mask"}, gotAncestors[2])
}

func TestTagNameAndAttrValueSatisfySelectorNode(t *testing.T) {
	el := NewElement("path")
	el.SetAttr("fill", "red")
	assert.Equal(t, "path", el.TagName())
	v, ok := el.AttrValue("fill")
	assert.True(t, ok)
	assert.Equal(t, "red", v)
	_, ok = el.AttrValue("missing")
	assert.False(t, ok)
}
