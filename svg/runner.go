package svg

// maxMultipassIterations is the hard cap on fixed-point iterations, matching
// the reference implementation's loop (original_source/src/optimizer.rs:
// "passes >= 10"). Multipass stops earlier if the serialized output stops
// changing.
const maxMultipassIterations = 10

// Info reports what a Run call actually did, for CLI reporting and tests.
type Info struct {
	OriginalSize     int
	OptimizedSize    int
	PluginsApplied   []string
	Passes           int
	CompressionRatio float64
}

func newInfo(originalSize int) Info {
	return Info{OriginalSize: originalSize}
}

func (i *Info) finalize(optimizedSize int) {
	i.OptimizedSize = optimizedSize
	if i.OriginalSize == 0 {
		i.CompressionRatio = 0
		return
	}
	i.CompressionRatio = 1 - float64(optimizedSize)/float64(i.OriginalSize)
}

// Run executes cfg's pipeline against doc in place, iterating to a fixed
// point when cfg.Multipass is set. It returns run statistics; the caller is
// responsible for serializing doc afterward (Optimize does both).
func Run(reg *Registry, doc *Document, cfg Config) (Info, error) {
	info := Info{}
	resolved, err := resolvePipeline(reg, cfg.Plugins)
	if err != nil {
		return info, err
	}

	serialOpts := DefaultSerializerOptions()
	serialOpts.Pretty = cfg.Pretty

	previous := ""
	for pass := 0; pass < maxMultipassIterations; pass++ {
		ctx := Context{Path: cfg.Path, MultipassCount: pass}
		for _, rp := range resolved {
			if !rp.plugin.Enabled {
				continue
			}
			p := rp.pass
			if cond, ok := p.(Conditional); ok && !cond.ShouldApply(doc, ctx, rp.plugin.Params) {
				continue
			}
			if err := p.Apply(doc, ctx, rp.plugin.Params); err != nil {
				return info, &PassProcessingError{Pass: p.Name(), Msg: "pass failed", Err: err}
			}
			info.PluginsApplied = append(info.PluginsApplied, p.Name())
		}
		info.Passes = pass + 1

		current, err := SerializeWithOptions(doc, serialOpts)
		if err != nil {
			return info, err
		}
		if !cfg.Multipass || current == previous {
			break
		}
		previous = current
	}
	return info, nil
}

type resolvedPlugin struct {
	plugin PluginConfig
	pass   Pass
}

func resolvePipeline(reg *Registry, plugins []PluginConfig) ([]resolvedPlugin, error) {
	out := make([]resolvedPlugin, 0, len(plugins))
	for _, pc := range plugins {
		p := reg.Get(pc.Name)
		if p == nil {
			return nil, &ConfigError{Msg: "unknown plugin " + pc.Name}
		}
		if v, ok := p.(ParamValidator); ok {
			if err := v.ValidateParams(pc.Params); err != nil {
				return nil, &PassInvalidConfigError{Pass: pc.Name, Msg: err.Error()}
			}
		}
		out = append(out, resolvedPlugin{plugin: pc, pass: p})
	}
	return out, nil
}
