package svg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addAttrOncePass sets a fixed attribute on the root the first time it runs
// per document, then is a no-op on subsequent passes, so it lets multipass
// converge after exactly one substantive iteration.
type addAttrOncePass struct{}

func (addAttrOncePass) Name() string        { return "test-add-attr-once" }
func (addAttrOncePass) Description() string { return "test pass" }
func (addAttrOncePass) Apply(doc *Document, _ Context, _ Params) error {
	if !doc.Root.HasAttr("marked") {
		doc.Root.SetAttr("marked", "1")
	}
	return nil
}

type countingPass struct{ calls *int }

func (p countingPass) Name() string        { return "test-counter" }
func (p countingPass) Description() string { return "counts Apply calls" }
func (p countingPass) Apply(_ *Document, _ Context, _ Params) error {
	*p.calls++
	return nil
}

type failingPass struct{}

func (failingPass) Name() string        { return "test-failing" }
func (failingPass) Description() string { return "always fails" }
func (failingPass) Apply(_ *Document, _ Context, _ Params) error {
	return errors.New("boom")
}

func TestRunUnknownPluginIsConfigError(t *testing.T) {
	reg := NewRegistry()
	doc := NewDocument()
	cfg := Config{Plugins: []PluginConfig{{Name: "does-not-exist", Enabled: true}}}

	_, err := Run(reg, doc, cfg)
	require.Error(t, err)
	var ce *ConfigError
	assert.ErrorAs(t, err, &ce)
}

func TestRunDisabledPluginIsSkipped(t *testing.T) {
	calls := 0
	reg := NewRegistry()
	reg.Register(countingPass{calls: &calls})
	doc := NewDocument()
	cfg := Config{Plugins: []PluginConfig{{Name: "test-counter", Enabled: false}}}

	_, err := Run(reg, doc, cfg)
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
}

func TestRunPassErrorWrappedAsPassProcessingError(t *testing.T) {
	reg := NewRegistry()
	reg.Register(failingPass{})
	doc := NewDocument()
	cfg := Config{Plugins: []PluginConfig{{Name: "test-failing", Enabled: true}}}

	_, err := Run(reg, doc, cfg)
	require.Error(t, err)
	var pe *PassProcessingError
	assert.ErrorAs(t, err, &pe)
	assert.Equal(t, "test-failing", pe.Pass)
}

func TestRunSinglePassRunsExactlyOnce(t *testing.T) {
	calls := 0
	reg := NewRegistry()
	reg.Register(countingPass{calls: &calls})
	doc := NewDocument()
	cfg := Config{Plugins: []PluginConfig{{Name: "test-counter", Enabled: true}}, Multipass: false}

	info, err := Run(reg, doc, cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, info.Passes)
}

func TestRunMultipassConvergesAndStops(t *testing.T) {
	reg := NewRegistry()
	reg.Register(addAttrOncePass{})
	doc := NewDocument()
	cfg := Config{Plugins: []PluginConfig{{Name: "test-add-attr-once", Enabled: true}}, Multipass: true}

	info, err := Run(reg, doc, cfg)
	require.NoError(t, err)
	assert.True(t, doc.Root.HasAttr("marked"))
	assert.Less(t, info.Passes, maxMultipassIterations, "should converge before the hard cap once output stabilizes")
	assert.GreaterOrEqual(t, info.Passes, 1)
}

func TestRunMultipassNoOpPipelineStopsAfterSecondIteration(t *testing.T) {
	calls := 0
	reg := NewRegistry()
	reg.Register(countingPass{calls: &calls})
	doc := NewDocument()
	doc.Root.SetAttr("seed", "0")
	cfg := Config{Plugins: []PluginConfig{{Name: "test-counter", Enabled: true}}, Multipass: true}

	info, err := Run(reg, doc, cfg)
	require.NoError(t, err)
	// countingPass never mutates the document, so serialized output never
	// changes between iterations. The first iteration has no earlier output
	// to compare against, so multipass stops after the second iteration
	// rather than running away to the cap.
	assert.Equal(t, 2, info.Passes)
}
