// Command svgo is the command-line front end for the SVG optimization
// engine in package svg. Flag surface and modes (single file, directory,
// stdin/stdout) follow the reference implementation's CLI
// (original_source/svgn/src/bin/svgn.rs), translated onto cobra/pflag the
// way MacroPower-x/cmd/magicschema wires its own root command.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arturoeanton/go-svgo/cmd/svgo/internal/cliutil"
	"github.com/arturoeanton/go-svgo/cmd/svgo/internal/configfile"
	"github.com/arturoeanton/go-svgo/svg"
	"github.com/arturoeanton/go-svgo/svg/passes"
)

// version is set at build time from a VCS tag (spec.md §6); "dev" is the
// fallback for local builds.
var version = "dev"

type options struct {
	input      string
	output     string
	folder     string
	pretty     bool
	multipass  bool
	configPath string
	enable     []string
	disable    []string
	datauri    string
}

func main() {
	opts := &options{}
	logCfg := cliutil.NewLogConfig()

	rootCmd := &cobra.Command{
		Use:           "svgo",
		Short:         "Optimize SVG files",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts, logCfg)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.input, "input", "i", "", "input file (default: stdin)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVarP(&opts.folder, "folder", "f", "", "rewrite every *.svg in this directory in place")
	flags.BoolVarP(&opts.pretty, "pretty", "p", false, "pretty-print the output")
	flags.BoolVar(&opts.multipass, "multipass", false, "run the pipeline to a fixed point")
	flags.StringVar(&opts.configPath, "config", "", "path to a config file")
	flags.StringSliceVar(&opts.enable, "enable", nil, "enable a plugin by name (repeatable)")
	flags.StringSliceVar(&opts.disable, "disable", nil, "disable a plugin by name (repeatable)")
	flags.StringVar(&opts.datauri, "datauri", "", "wrap output as a data: URI: base64, enc, or unenc")
	logCfg.RegisterFlags(flags)

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("svgo {{.Version}}\n")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "svgo: %v\n", err)
		os.Exit(1)
	}
}

func run(opts *options, logCfg *cliutil.LogConfig) error {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return err
	}
	logger := slog.New(handler)

	cfg, err := resolveConfig(opts)
	if err != nil {
		return err
	}
	registry := passes.DefaultRegistry()

	if opts.folder != "" {
		return runFolder(opts.folder, registry, cfg, logger)
	}
	return runSingle(opts, registry, cfg, logger)
}

func resolveConfig(opts *options) (svg.Config, error) {
	var cfg svg.Config
	switch {
	case opts.configPath != "":
		loaded, err := configfile.Load(opts.configPath)
		if err != nil {
			return svg.Config{}, err
		}
		cfg = loaded
	default:
		discovered, err := configfile.Discover(".")
		if err != nil {
			return svg.Config{}, err
		}
		if discovered != "" {
			loaded, err := configfile.Load(discovered)
			if err != nil {
				return svg.Config{}, err
			}
			cfg = loaded
		} else {
			cfg = passes.PresetDefault()
		}
	}

	cfg.Pretty = cfg.Pretty || opts.pretty
	cfg.Multipass = cfg.Multipass || opts.multipass
	for _, name := range opts.disable {
		cfg = cfg.Disable(name)
	}
	for _, name := range opts.enable {
		if !hasPlugin(cfg, name) {
			cfg = cfg.WithPlugin(name)
		} else {
			cfg = cfg.Enable(name)
		}
	}
	if opts.datauri != "" {
		cfg.Datauri = parseDatauriFlag(opts.datauri)
	}
	return cfg, nil
}

func hasPlugin(cfg svg.Config, name string) bool {
	for _, p := range cfg.Plugins {
		if p.Name == name {
			return true
		}
	}
	return false
}

func parseDatauriFlag(s string) svg.DataURIMode {
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

func runSingle(opts *options, registry *svg.Registry, cfg svg.Config, logger *slog.Logger) error {
	input, err := readInput(opts.input)
	if err != nil {
		return err
	}
	if opts.input != "" {
		cfg.Path = opts.input
	}

	result := svg.Optimize(input, registry, cfg)
	if result.Err != nil {
		return result.Err
	}

	if err := writeOutput(opts.output, result.Data); err != nil {
		return err
	}
	logger.Info("optimized",
		"original_bytes", result.Info.OriginalSize,
		"optimized_bytes", result.Info.OptimizedSize,
		"compression_ratio", result.Info.CompressionRatio,
		"passes", result.Info.Passes,
	)
	return nil
}

func runFolder(dir string, registry *svg.Registry, cfg svg.Config, logger *slog.Logger) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var failures int
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".svg") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := optimizeFileInPlace(path, registry, cfg, logger); err != nil {
			logger.Error("failed to optimize", "file", path, "error", err)
			failures++
			continue
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d file(s) failed to optimize", failures)
	}
	return nil
}

func optimizeFileInPlace(path string, registry *svg.Registry, cfg svg.Config, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	fileCfg := cfg
	fileCfg.Path = path
	result := svg.Optimize(string(data), registry, fileCfg)
	if result.Err != nil {
		return result.Err
	}
	if err := os.WriteFile(path, []byte(result.Data), 0o644); err != nil {
		return err
	}
	logger.Info("optimized", "file", path,
		"original_bytes", result.Info.OriginalSize,
		"optimized_bytes", result.Info.OptimizedSize)
	return nil
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := readAllStdin()
		return data, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeOutput(path, data string) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.WriteString(data)
		return err
	}
	return os.WriteFile(path, []byte(data), 0o644)
}

func readAllStdin() (string, error) {
	var b strings.Builder
	buf := make([]byte, 32*1024)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			b.Write(buf[:n])
		}
		if err != nil {
			break
		}
	}
	return b.String(), nil
}
