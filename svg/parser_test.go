package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleDocument(t *testing.T) {
	doc, err := Parse(`<svg xmlns="http://www.w3.org/2000/svg"><rect x="1" y="2"/></svg>`)
	require.NoError(t, err)
	require.NotNil(t, doc.Root)
	assert.Equal(t, "svg", doc.Root.Name)
	require.Len(t, doc.Root.ChildElements(), 1)
	rect := doc.Root.ChildElements()[0]
	assert.Equal(t, "rect", rect.Name)
	assert.Equal(t, "1", rect.Attr("x"))
	assert.Equal(t, "2", rect.Attr("y"))
}

func TestParseNoRootElementIsParseError(t *testing.T) {
	_, err := Parse(`<!-- just a comment -->`)
	require.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParseMultipleRootElementsIsParseError(t *testing.T) {
	_, err := Parse(`<svg/><svg/>`)
	require.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParseMalformedXMLIsParseError(t *testing.T) {
	_, err := Parse(`<svg><rect></svg>`)
	require.Error(t, err)
	var pe *ParseError
	assert.ErrorAs(t, err, &pe)
}

func TestParseCommentsPreservedByDefault(t *testing.T) {
	doc, err := Parse(`<svg><!-- note --><rect/></svg>`)
	require.NoError(t, err)
	var sawComment bool
	for _, n := range doc.Root.Children {
		if n.IsComment() {
			sawComment = true
			assert.Equal(t, " note ", n.Text)
		}
	}
	assert.True(t, sawComment)
}

func TestParseCommentsDroppedWhenDisabled(t *testing.T) {
	opts := ParserOptions{PreserveComments: false, PreserveWhitespace: true}
	doc, err := ParseWithOptions(`<svg><!-- note --><rect/></svg>`, opts)
	require.NoError(t, err)
	for _, n := range doc.Root.Children {
		assert.False(t, n.IsComment())
	}
}

func TestParseWhitespaceDroppedWhenDisabled(t *testing.T) {
	opts := ParserOptions{PreserveComments: true, PreserveWhitespace: false}
	doc, err := ParseWithOptions("<svg>\n  <rect/>\n</svg>", opts)
	require.NoError(t, err)
	for _, n := range doc.Root.Children {
		if n.IsText() {
			assert.False(t, n.IsWhitespaceText(), "whitespace-only text must be dropped")
		}
	}
}

func TestParseCDataRoundTripsAsCDataNode(t *testing.T) {
	doc, err := Parse(`<style><![CDATA[.a { fill: red; }]]></style>`)
	require.NoError(t, err)
	require.Len(t, doc.Root.Children, 1)
	n := doc.Root.Children[0]
	require.Equal(t, KindCData, n.Kind)
	assert.Equal(t, ".a { fill: red; }", n.Text)
}

func TestParseMixedTextAndCData(t *testing.T) {
	doc, err := Parse(`<style>before<![CDATA[mid]]>after</style>`)
	require.NoError(t, err)
	var kinds []NodeKind
	var texts []string
	for _, n := range doc.Root.Children {
		kinds = append(kinds, n.Kind)
		texts = append(texts, n.Text)
	}
	require.Equal(t, []NodeKind{KindText, KindCData, KindText}, kinds)
	assert.Equal(t, []string{"before", "mid", "after"}, texts)
}

func TestParseXMLDeclStoredAsMetadataNotNode(t *testing.T) {
	doc, err := Parse(`<?xml version="1.1" encoding="UTF-8" standalone="yes"?><svg/>`)
	require.NoError(t, err)
	assert.True(t, doc.Metadata.HasXMLDecl)
	assert.Equal(t, "1.1", doc.Metadata.Version)
	assert.Equal(t, "UTF-8", doc.Metadata.Encoding)
	assert.Equal(t, "yes", doc.Metadata.Standalone)
	for _, n := range doc.Prologue {
		assert.NotEqual(t, KindPI, n.Kind, "the xml declaration must not become a PI node")
	}
}

func TestParseNamespacedAttributes(t *testing.T) {
	doc, err := Parse(`<svg xmlns:xlink="http://www.w3.org/1999/xlink"><use xlink:href="#a"/></svg>`)
	require.NoError(t, err)
	use := doc.Root.ChildElements()[0]
	assert.Equal(t, "#a", use.Attr("xlink:href"))
	assert.Equal(t, "http://www.w3.org/1999/xlink", doc.Root.Namespaces["xlink"])
}

func TestParseDoctypePreserved(t *testing.T) {
	doc, err := Parse(`<!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd"><svg/>`)
	require.NoError(t, err)
	require.Len(t, doc.Prologue, 1)
	assert.True(t, doc.Prologue[0].IsDocType())
}
