package svg

// Params is the opaque, pass-specific configuration blob handed to Apply. A
// pass defines its own params struct and type-asserts it out of this
// interface{} in its own Apply. A pass that implements ParamValidator has
// its params checked by Run before the pipeline starts; a rejected value
// fails with a *PassInvalidConfigError.
type Params = interface{}

// Context carries per-run, per-pass information a Pass's Apply may need
// beyond the document itself: the source path (for passes that report
// diagnostics), and how many multipass iterations have run so far, mirroring
// the reference implementation's PluginInfo (original_source/src/plugin.rs).
type Context struct {
	Path           string
	MultipassCount int
}

// Pass is one rewriting step in the optimization pipeline. Implementations
// live under svg/passes; Apply mutates doc's tree in place. A Pass must never
// retain doc, or any Element/Node it was given, past the call.
type Pass interface {
	// Name is the stable identifier used in Config.Plugins and --enable/--disable.
	Name() string
	// Description is a short, human-readable summary shown by `svgo --help`-style
	// listings.
	Description() string
	// Apply runs the pass against doc. params is whatever Config supplied for
	// this pass, or nil if none was given.
	Apply(doc *Document, ctx Context, params Params) error
}

// ParamValidator is implemented by passes that want their configuration
// checked once, up front, before the pipeline runs rather than discovering a
// malformed param mid-multipass.
type ParamValidator interface {
	ValidateParams(params Params) error
}

// Conditional is implemented by passes that can be skipped outright for a
// given document without running Apply at all (e.g. a pass gated on the
// presence of a viewBox attribute).
type Conditional interface {
	ShouldApply(doc *Document, ctx Context, params Params) bool
}

// Registry is a named catalog of passes, built once at startup and shared
// read-only across runs. This mirrors the reference implementation's
// PluginRegistry (original_source/src/plugin.rs): a flat, ordered list
// plugins register themselves into, looked up by name at Config-resolution
// time.
type Registry struct {
	order []string
	byName map[string]Pass
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Pass)}
}

// Register adds p to the registry. Registering a name twice replaces the
// earlier pass but keeps its position in Names().
func (r *Registry) Register(p Pass) {
	if _, exists := r.byName[p.Name()]; !exists {
		r.order = append(r.order, p.Name())
	}
	r.byName[p.Name()] = p
}

// Get returns the pass named name, or nil if unregistered.
func (r *Registry) Get(name string) Pass {
	return r.byName[name]
}

// Names returns every registered pass name in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
