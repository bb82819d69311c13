// Package driver orchestrates the load -> detect -> generate pipeline from
// spec.md §5: evaluate project scripts twice (once gated to option/
// toolchain registration, once gated to target registration), probe the
// host toolchain and options between the two passes, then emit the
// Makefile and render configfiles.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gocfg/internal/configfile"
	"gocfg/internal/graph"
	"gocfg/internal/makefile"
	"gocfg/internal/model"
	"gocfg/internal/obslog"
	"gocfg/internal/osutil"
	"gocfg/internal/platform"
	"gocfg/internal/probe"
	"gocfg/internal/scope"
	"gocfg/internal/scriptapi"
	"gocfg/internal/scriptrun"
	"gocfg/internal/store"
	"gocfg/internal/toolchain"
)

// Options configures one configure-and-generate run. cmd/gocfg populates
// this directly from the CLI flags of spec.md §6; Driver owns no flag
// parsing of its own.
type Options struct {
	ProjectDir string
	BuildDir   string

	Plat, Arch, Mode string
	Toolchain        string // empty selects toolchain.DefaultOrder(Plat, Arch)

	Prefix, BinDir, LibDir, IncludeDir string

	// OptionOverrides holds --<option>=<value> values; applied as each
	// option's default before probing, so an override always wins without
	// a probe running (spec.md §2: "CLI arguments override option values").
	OptionOverrides map[string]string

	Status *obslog.Status
	Log    *obslog.Logger
}

func (o *Options) fillDefaults() {
	if o.BuildDir == "" {
		o.BuildDir = "build"
	}
	if o.Mode == "" {
		o.Mode = "release"
	}
	if o.Plat == "" || o.Arch == "" {
		hostPlat, hostArch := platform.HostDefault()
		if o.Plat == "" {
			o.Plat = hostPlat
		}
		if o.Arch == "" {
			o.Arch = hostArch
		}
	}
	if o.Prefix == "" {
		o.Prefix = "/usr/local"
	}
	if o.BinDir == "" {
		o.BinDir = "bin"
	}
	if o.LibDir == "" {
		o.LibDir = "lib"
	}
	if o.IncludeDir == "" {
		o.IncludeDir = "include"
	}
}

// Driver runs one configure-and-generate pass over a project directory.
type Driver struct {
	Opts Options
	DB   *store.Store

	// Prober overrides the toolchain candidate prober; nil uses
	// toolchain.DefaultProber. Tests inject a fake here to avoid depending
	// on a real compiler being present.
	Prober toolchain.Prober
	// ProbeRunner overrides the subprocess runner the option prober
	// shells out with; nil uses osutil.Run.
	ProbeRunner func(ctx context.Context, dir, program string, args ...string) (osutil.RunResult, error)
}

// New returns a Driver with opts' defaults filled in and a fresh store.
func New(opts Options) *Driver {
	opts.fillDefaults()
	return &Driver{Opts: opts, DB: store.New()}
}

func (d *Driver) status(format string, args ...interface{}) {
	if d.Opts.Status != nil {
		d.Opts.Status.Line(format, args...)
	}
}

// Run executes load -> detect -> generate, writing the Makefile and any
// configfiles under d.Opts.ProjectDir.
func (d *Driver) Run(ctx context.Context) error {
	tc, info, err := d.RunNoGenerate(ctx)
	if err != nil {
		return err
	}

	d.status("generating Makefile")
	return d.generate(ctx, tc, info)
}

// RunNoGenerate executes load -> detect -> targets without writing
// anything to disk: no Makefile, no configfiles. It is the pure
// introspection half of Run, used by --diagnosis so that dumping the
// store never has the side effect of generating build output.
func (d *Driver) RunNoGenerate(ctx context.Context) (model.Toolchain, platform.Info, error) {
	toolchain.RegisterPredeclared(d.DB)

	info := platform.Info{Plat: d.Opts.Plat, Arch: d.Opts.Arch, Mode: d.Opts.Mode}
	sc := scope.New(d.Opts.ProjectDir)
	engine := scriptapi.New(d.DB, sc, platform.Predicates{Info: info})
	loader := scriptrun.NewLoader(d.Opts.ProjectDir, engine)

	d.status("loading project scripts")
	sc.SetPhase(scope.PhaseLoad)
	if err := loader.RunAll(); err != nil {
		return model.Toolchain{}, info, fmt.Errorf("load: %w", err)
	}

	if unknown := d.applyOptionOverrides(); len(unknown) > 0 {
		return model.Toolchain{}, info, fmt.Errorf("unknown option: %s", unknown[0])
	}

	d.status("detecting toolchain")
	sc.SetPhase(scope.PhaseDetect)
	tcName, err := d.detectToolchain(ctx)
	if err != nil {
		return model.Toolchain{}, info, err
	}
	info.Toolchain = tcName
	engine.Pred = platform.Predicates{Info: info}
	tc := model.NewToolchain(d.DB, tcName)

	if err := d.probeOptions(ctx, tc); err != nil {
		return model.Toolchain{}, info, err
	}

	d.status("registering targets")
	sc.SetPhase(scope.PhaseTargets)
	if err := loader.RunAll(); err != nil {
		return model.Toolchain{}, info, fmt.Errorf("targets: %w", err)
	}

	return tc, info, nil
}

// applyOptionOverrides sets each --<option>=<value> override as that
// option's default (spec.md §2: a non-empty default wins without
// probing), returning the names that don't match any option the scripts
// just registered — spec.md §6/§7 treats an unknown CLI option as fatal.
func (d *Driver) applyOptionOverrides() (unknown []string) {
	for name, value := range d.Opts.OptionOverrides {
		if !d.DB.Has(store.KindOption, name) {
			unknown = append(unknown, name)
			continue
		}
		model.NewOption(d.DB, name).Set("default", value)
	}
	return unknown
}

func (d *Driver) detectToolchain(ctx context.Context) (string, error) {
	order := toolchain.DefaultOrder(d.Opts.Plat, d.Opts.Arch)
	if d.Opts.Toolchain != "" {
		order = []string{d.Opts.Toolchain}
	}

	prober := d.Prober
	if prober == nil {
		prober = toolchain.DefaultProber{WorkDir: d.Opts.ProjectDir}
	}
	detector := toolchain.NewDetector(d.DB, prober)
	name, err := detector.Detect(ctx, order)
	if err != nil {
		return "", err
	}
	if d.Opts.Status != nil {
		d.Opts.Status.Checking("toolchain")
		d.Opts.Status.Result(name, true)
	}
	return name, nil
}

func (d *Driver) probeOptions(ctx context.Context, tc model.Toolchain) error {
	p := probe.NewProber(tc)
	p.WorkDir = d.Opts.ProjectDir
	if d.ProbeRunner != nil {
		p.Runner = d.ProbeRunner
	}
	for _, name := range d.DB.Names(store.KindOption) {
		opt := model.NewOption(d.DB, name)
		if err := p.ProbeOption(ctx, opt); err != nil {
			return fmt.Errorf("probe %s: %w", name, err)
		}
		if d.Opts.Status != nil {
			d.Opts.Status.Checking(name)
			d.Opts.Status.Result(opt.Value(), opt.ValueBool())
		}
	}
	return nil
}

func (d *Driver) generate(ctx context.Context, tc model.Toolchain, info platform.Info) error {
	paths := graph.Paths{Plat: info.Plat, Arch: info.Arch, Mode: info.Mode, BuildDir: d.Opts.BuildDir}
	install := makefile.InstallDirs{
		Prefix:     d.Opts.Prefix,
		BinDir:     d.Opts.BinDir,
		LibDir:     d.Opts.LibDir,
		IncludeDir: d.Opts.IncludeDir,
	}

	emitter := makefile.NewEmitter(d.DB, paths, tc, install, d.Opts.ProjectDir)

	makefilePath := filepath.Join(d.Opts.ProjectDir, "Makefile")
	f, err := os.Create(makefilePath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := emitter.Emit(f); err != nil {
		return err
	}

	return d.renderConfigFiles(ctx, info.Plat)
}

func (d *Driver) renderConfigFiles(ctx context.Context, plat string) error {
	for _, name := range d.DB.Names(store.KindTarget) {
		if name == store.RootScope {
			continue
		}
		t := model.NewTarget(d.DB, name)
		for _, tmplPath := range t.ConfigFiles() {
			if err := d.renderOne(ctx, t, plat, tmplPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderOne processes one configfile template, writing its rendered
// output alongside the template with a trailing ".in" suffix stripped
// (the autotools-style template naming convention; see DESIGN.md).
func (d *Driver) renderOne(ctx context.Context, t model.Target, plat, tmplPath string) error {
	full := filepath.Join(d.Opts.ProjectDir, tmplPath)
	raw, err := os.ReadFile(full)
	if err != nil {
		return err
	}

	rendered := configfile.Process(ctx, t, plat, d.Opts.ProjectDir, string(raw), osutil.Run)

	outDir := filepath.Dir(full)
	if cd := t.Get("configdir"); cd != "" {
		outDir = filepath.Join(d.Opts.ProjectDir, cd)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	outName := strings.TrimSuffix(filepath.Base(tmplPath), ".in")
	return os.WriteFile(filepath.Join(outDir, outName), []byte(rendered), 0o644)
}
