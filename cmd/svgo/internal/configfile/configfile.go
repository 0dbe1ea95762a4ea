// Package configfile discovers and decodes an on-disk svgo configuration
// file into svg.Config. File discovery/deserialization is explicitly
// out of scope for the core engine (spec.md §1); this package is the CLI's
// own collaborator, decoding with github.com/goccy/go-yaml the way
// MacroPower-x and hesusruiz-rite (both visible in the retrieval pack) use
// it for their own config/document decoding.
package configfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/arturoeanton/go-svgo/svg"
)

// defaultNames are tried, in order, in the current working directory when
// no --config flag is given.
var defaultNames = []string{".svgo.yml", ".svgo.yaml", "svgo.config.yml"}

// pluginEntry mirrors the on-disk shape of one `plugins` list entry: either
// a bare string (the pass name, enabled with no params) or an object.
type pluginEntry struct {
	Name    string                 `yaml:"name"`
	Params  map[string]interface{} `yaml:"params"`
	Enabled *bool                  `yaml:"enabled"`
}

// UnmarshalYAML accepts either a bare scalar ("remove-comments") or a full
// object ({name: ..., params: ..., enabled: ...}), per spec.md §6's
// "Recognized keys" description of the plugins list.
func (p *pluginEntry) UnmarshalYAML(data []byte) error {
	var name string
	if err := yaml.Unmarshal(data, &name); err == nil && name != "" {
		p.Name = name
		return nil
	}
	type alias pluginEntry
	var a alias
	if err := yaml.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = pluginEntry(a)
	return nil
}

type fileConfig struct {
	Plugins   []pluginEntry `yaml:"plugins"`
	Multipass bool          `yaml:"multipass"`
	Datauri   string        `yaml:"datauri"`
	Path      string        `yaml:"path"`
	JS2SVG    struct {
		Pretty     bool   `yaml:"pretty"`
		Indent     string `yaml:"indent"`
		QuoteAttrs string `yaml:"quoteAttrs"`
		SelfClose  *bool  `yaml:"selfClosing"`
	} `yaml:"js2svg"`
	Parser struct {
		PreserveComments   *bool `yaml:"preserveComments"`
		PreserveWhitespace *bool `yaml:"preserveWhitespace"`
	} `yaml:"parser"`
}

// Discover looks for a config file in dir, trying defaultNames in order. It
// returns "", nil if none is found — that is not an error, callers fall
// back to the built-in preset.
func Discover(dir string) (string, error) {
	for _, name := range defaultNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// Load reads and decodes the config file at path into a svg.Config.
func Load(path string) (svg.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return svg.Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return svg.Config{}, &svg.ConfigError{Msg: "malformed config file " + path, Err: err}
	}

	cfg := svg.DefaultConfig()
	cfg.Multipass = fc.Multipass
	cfg.Path = fc.Path
	cfg.Pretty = fc.JS2SVG.Pretty
	cfg.Datauri = parseDatauriMode(fc.Datauri)

	if fc.Parser.PreserveComments != nil {
		cfg.Parser.PreserveComments = *fc.Parser.PreserveComments
	}
	if fc.Parser.PreserveWhitespace != nil {
		cfg.Parser.PreserveWhitespace = *fc.Parser.PreserveWhitespace
	}

	for _, entry := range fc.Plugins {
		enabled := true
		if entry.Enabled != nil {
			enabled = *entry.Enabled
		}
		cfg.Plugins = append(cfg.Plugins, svg.PluginConfig{
			Name:    entry.Name,
			Params:  entry.Params,
			Enabled: enabled,
		})
	}
	return cfg, nil
}

func parseDatauriMode(s string) svg.DataURIMode {
	switch s {
	case "base64":
		return svg.DataURIBase64
	case "enc":
		return svg.DataURIEnc
	case "unenc":
		return svg.DataURIUnenc
	default:
		return svg.DataURINone
	}
}
