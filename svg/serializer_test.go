package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeRoundTripIdentity(t *testing.T) {
	src := `<svg xmlns="http://www.w3.org/2000/svg"><rect x="1" y="2"/></svg>`
	doc, err := Parse(src)
	require.NoError(t, err)
	out, err := Serialize(doc)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestSerializeSelfClosesEmptyElements(t *testing.T) {
	doc := NewDocument()
	doc.Root.SetAttr("width", "10")
	out, err := Serialize(doc)
	require.NoError(t, err)
	assert.Equal(t, `<svg width="10"/>`, out)
}

func TestSerializeNoSelfCloseWritesExplicitEndTag(t *testing.T) {
	doc := NewDocument()
	opts := DefaultSerializerOptions()
	opts.SelfClose = false
	out, err := SerializeWithOptions(doc, opts)
	require.NoError(t, err)
	assert.Equal(t, `<svg></svg>`, out)
}

func TestSerializeDuplicateAttributeIsSerializeError(t *testing.T) {
	el := NewElement("svg")
	el.Attrs.Set("x", "1")
	el.Attrs.Set("y", "2")
	doc := &Document{Root: el}
	// Force a duplicate by setting the same key's underlying slot twice
	// via the low-level keys slice, simulating a pass bug that produced a
	// duplicate key the Attrs API itself normally prevents.
	el.Attrs.keys = append(el.Attrs.keys, "x")

	_, err := Serialize(doc)
	require.Error(t, err)
	var se *SerializeError
	assert.ErrorAs(t, err, &se)
}

func TestSerializeNoRootIsSerializeError(t *testing.T) {
	doc := &Document{}
	_, err := Serialize(doc)
	require.Error(t, err)
	var se *SerializeError
	assert.ErrorAs(t, err, &se)
}

func TestSerializeQuoteStyles(t *testing.T) {
	el := NewElement("svg")
	el.SetAttr("title", `she said "hi"`)
	doc := &Document{Root: el}

	opts := DefaultSerializerOptions()
	opts.QuoteAttrs = QuoteSingle
	out, err := SerializeWithOptions(doc, opts)
	require.NoError(t, err)
	assert.Contains(t, out, `title='she said "hi"'`)

	opts.QuoteAttrs = QuoteAuto
	out, err = SerializeWithOptions(doc, opts)
	require.NoError(t, err)
	assert.Contains(t, out, `title='she said "hi"'`, "QuoteAuto should prefer single quotes when the value has a double quote and no single quote")
}

func TestSerializePrettyIndentsElementOnlyChildren(t *testing.T) {
	doc, err := Parse(`<svg><g><rect/></g></svg>`)
	require.NoError(t, err)
	opts := DefaultSerializerOptions()
	opts.Pretty = true
	out, err := SerializeWithOptions(doc, opts)
	require.NoError(t, err)
	assert.Equal(t, "<svg>\n  <g>\n    <rect/>\n  </g>\n</svg>", out)
}

func TestSerializeEscapesTextAndAttributes(t *testing.T) {
	el := NewElement("svg")
	el.SetAttr("data-x", `a & b < c`)
	doc := &Document{Root: el}
	doc.Root.AddChild(TextNode("a & b < c > d"))

	out, err := Serialize(doc)
	require.NoError(t, err)
	assert.Contains(t, out, `data-x="a &amp; b &lt; c"`)
	assert.Contains(t, out, "a &amp; b &lt; c &gt; d")
}

func TestSerializeCDataRoundTrip(t *testing.T) {
	src := `<style><![CDATA[.a{fill:red}]]></style>`
	doc, err := Parse(src)
	require.NoError(t, err)
	out, err := Serialize(doc)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestSerializeXMLDeclWritten(t *testing.T) {
	doc, err := Parse(`<?xml version="1.0" encoding="UTF-8"?><svg/>`)
	require.NoError(t, err)
	out, err := Serialize(doc)
	require.NoError(t, err)
	assert.Equal(t, `<?xml version="1.0" encoding="UTF-8"?><svg/>`, out)
}
