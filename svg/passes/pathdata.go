package passes

import "github.com/arturoeanton/go-svgo/svg"

// ConvertPathData is shipped as the same erroring stub the reference
// implementation ships (original_source/svgn/src/plugins/convert_path_data.rs
// and svg.md §9's open question): a full path-data normalizer — parsing,
// re-serializing, and arc/curve-fitting optimization of `d` — is a
// significant subproject of its own, out of scope for this core engine.
// Registering the stub (rather than omitting the name) keeps pipeline
// configs that reference "convert-path-data" failing with a precise,
// pass-local error instead of the registry's generic unknown-plugin error.
type ConvertPathData struct{}

func (ConvertPathData) Name() string        { return "convert-path-data" }
func (ConvertPathData) Description() string { return "optimizes path data (not implemented)" }

func (ConvertPathData) Apply(_ *svg.Document, _ svg.Context, _ svg.Params) error {
	return &svg.PassProcessingError{
		Pass: "convert-path-data",
		Msg:  "path data optimization is not implemented in this build",
	}
}
