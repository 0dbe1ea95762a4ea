package svg

// DataURIMode selects how Optimize's output is wrapped as a data: URI.
type DataURIMode int

const (
	// DataURINone leaves the output as plain SVG text (the default).
	DataURINone DataURIMode = iota
	// DataURIBase64 wraps as "data:image/svg+xml;base64,<...>".
	DataURIBase64
	// DataURIEnc wraps as "data:image/svg+xml,<percent-encoded>", escaping
	// only the handful of characters unsafe in a bare URI.
	DataURIEnc
	// DataURIUnenc wraps as "data:image/svg+xml,<verbatim>", with no
	// escaping at all. Preserved for parity with the reference
	// implementation, which ships this as a literal no-op transform.
	DataURIUnenc
)

// PluginConfig selects one pass and its parameters within a pipeline.
type PluginConfig struct {
	Name    string
	Params  Params
	Enabled bool
}

// Config is the full set of knobs for a single Optimize call: which passes
// run, in what order, how many times, and how the result is packaged. It
// corresponds to the reference implementation's Config plus the CLI-facing
// datauri/path fields (original_source/src/optimizer.rs, src/bin/svgn.rs).
type Config struct {
	// Plugins is the ordered pipeline. An unresolvable Name is a hard
	// *ConfigError at Optimize time; there is no "silently skip unknown
	// plugin" mode.
	Plugins []PluginConfig
	// Multipass re-runs the full pipeline to a fixed point (output stops
	// changing) or until 10 passes have run, whichever comes first.
	Multipass bool
	// Pretty controls the serializer's pretty-printing.
	Pretty bool
	// Path is the source file path, surfaced to passes via Context.Path for
	// diagnostics; optional.
	Path string
	// Datauri wraps the final output as a data: URI when set to anything
	// other than DataURINone.
	Datauri DataURIMode
	// Parser holds parser-level options (comment/whitespace preservation).
	Parser ParserOptions
}

// DefaultConfig returns a Config with parser defaults, compact serialization,
// single-pass, and an empty plugin list (the preset-default pipeline is
// PresetDefault in svg/passes).
func DefaultConfig() Config {
	return Config{
		Parser: DefaultParserOptions(),
	}
}

// WithPlugin appends a plugin to the end of the pipeline with default (nil)
// params, enabled.
func (c Config) WithPlugin(name string) Config {
	c.Plugins = append(append([]PluginConfig{}, c.Plugins...), PluginConfig{Name: name, Enabled: true})
	return c
}

// Disable returns a copy of c with the named plugin's Enabled flag cleared,
// wherever it appears in the pipeline. It is a no-op if name isn't present.
func (c Config) Disable(name string) Config {
	out := append([]PluginConfig{}, c.Plugins...)
	for i := range out {
		if out[i].Name == name {
			out[i].Enabled = false
		}
	}
	c.Plugins = out
	return c
}

// Enable is the inverse of Disable.
func (c Config) Enable(name string) Config {
	out := append([]PluginConfig{}, c.Plugins...)
	for i := range out {
		if out[i].Name == name {
			out[i].Enabled = true
		}
	}
	c.Plugins = out
	return c
}
