package svg

// Result is the outcome of a single Optimize call: either Data holds the
// optimized SVG (or data URI) text and Err is nil, or Err explains why
// optimization stopped, in which case Data is empty. Splitting these out
// (rather than just returning (string, error)) matches the reference
// implementation's OptimizationResult, which callers use to report partial
// diagnostics even on failure; this port keeps Info populated up to the
// point of failure for the same reason.
type Result struct {
	Data string
	Info Info
	Err  error
}

// Optimize parses input, runs cfg's pipeline against it (iterating to a
// fixed point when cfg.Multipass is set, capped at 10 passes), serializes the
// result, and applies cfg.Datauri wrapping. A parse failure or a pass error
// aborts the run before any output is produced — there is no partial
// serialization of a document a failed pass left mid-mutation.
func Optimize(input string, reg *Registry, cfg Config) Result {
	info := newInfo(len(input))

	doc, err := ParseWithOptions(input, cfg.Parser)
	if err != nil {
		return Result{Info: info, Err: err}
	}

	runInfo, err := Run(reg, doc, cfg)
	info.PluginsApplied = runInfo.PluginsApplied
	info.Passes = runInfo.Passes
	if err != nil {
		return Result{Info: info, Err: err}
	}

	serialOpts := DefaultSerializerOptions()
	serialOpts.Pretty = cfg.Pretty
	out, err := SerializeWithOptions(doc, serialOpts)
	if err != nil {
		return Result{Info: info, Err: err}
	}

	info.finalize(len(out))
	out = encodeDataURI(out, cfg.Datauri)
	return Result{Data: out, Info: info}
}
