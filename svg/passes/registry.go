package passes

import "github.com/arturoeanton/go-svgo/svg"

// DefaultRegistry builds a *svg.Registry containing every pass this package
// implements, registered in the same family order SPEC_FULL.md lists them:
// structural removers, attribute normalizers, shape/data simplifiers,
// id/reference passes, style/CSS passes, then the miscellaneous family.
// Grounded on the reference implementation's create_default_registry
// (original_source/svgn/src/plugin.rs), which registers its ~29 built-ins
// the same way: a flat, explicit list, not reflection-based discovery.
func DefaultRegistry() *svg.Registry {
	r := svg.NewRegistry()
	for _, p := range []svg.Pass{
		RemoveComments{},
		RemoveMetadata{},
		RemoveTitle{},
		RemoveDesc{},
		RemoveDoctype{},
		RemoveXMLProcInst{},
		RemoveEmptyAttrs{},
		RemoveEmptyText{},
		RemoveEmptyContainers{},
		RemoveRasterImages{},
		RemoveScripts{},
		RemoveXMLNS{},

		CleanupAttrs{},
		CleanupEnableBackground{},
		SortAttrs{},
		CleanupNumericValues{},
		CleanupListOfValues{},

		ConvertEllipseToCircle{},
		ConvertColors{},
		ConvertOneStopGradients{},
		ConvertPathData{},

		CleanupIds{},
		PrefixIds{},
		RemoveElementsByAttr{},
		RemoveAttributesBySelector{},

		RemoveStyleElement{},
		MergeStyles{},
		ConvertStyleToAttrs{},
		MinifyStyles{},
		InlineStyles{},

		CollapseGroups{},
		RemoveViewBox{},
		RemoveDimensions{},
		RemoveUnknownsAndDefaults{},
		RemoveDeprecatedAttrs{},
		RemoveNonInheritableGroupAttrs{},
		RemoveEditorsNSData{},
		RemoveUselessDefs{},
		RemoveUselessTransforms{},
		RemoveHiddenElems{},
		RemoveOffCanvasPaths{},
		RemoveUnusedNS{},
		SortDefsChildren{},
		AddAttributesToSVGElement{},
		AddClassesToSVGElement{},
	} {
		r.Register(p)
	}
	return r
}

// presetDefaultNames is the curated pass list "preset-default" runs,
// approximating the reference optimizer's default behavior (spec.md
// glossary: "Preset-default"). Destructive-by-convention and
// disabled-by-default passes (remove-xmlns, remove-elements-by-attr,
// remove-attributes-by-selector, prefix-ids, add-*-to-svg-element,
// convert-path-data) are left out of the default list; callers opt in
// explicitly via Config.WithPlugin/Enable.
var presetDefaultNames = []string{
	"remove-doctype",
	"remove-xml-proc-inst",
	"remove-comments",
	"remove-metadata",
	"remove-editors-ns-data",
	"cleanup-attrs",
	"merge-styles",
	"inline-styles",
	"minify-styles",
	"cleanup-ids",
	"remove-useless-defs",
	"cleanup-numeric-values",
	"cleanup-list-of-values",
	"convert-colors",
	"remove-unknowns-and-defaults",
	"remove-non-inheritable-group-attrs",
	"remove-useless-transforms",
	"cleanup-enable-background",
	"remove-hidden-elems",
	"remove-empty-text",
	"convert-ellipse-to-circle",
	"convert-one-stop-gradients",
	"convert-style-to-attrs",
	"remove-empty-attrs",
	"remove-empty-containers",
	"remove-unused-ns",
	"sort-defs-children",
	"remove-title",
	"remove-desc",
	"remove-style-element",
	"sort-attrs",
}

// PresetDefault returns a Config wired to the preset-default pass list,
// multipass on, compact serialization — the library's out-of-the-box
// equivalent to running the reference optimizer with no configuration file.
func PresetDefault() svg.Config {
	cfg := svg.DefaultConfig()
	cfg.Multipass = true
	for _, name := range presetDefaultNames {
		cfg = cfg.WithPlugin(name)
	}
	return cfg
}
