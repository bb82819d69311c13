package probe

import (
	"context"
	"os"
	"strings"

	"gocfg/internal/model"
	"gocfg/internal/osutil"
	"gocfg/internal/toolchain"
	"gocfg/internal/translate"
)

// abstractItems is the fixed set of abstract flag categories translated
// from an option's own attributes when composing a probe compile command
// (spec.md §4.4).
var abstractItems = []string{"languages", "warnings", "optimizes", "defines", "udefines"}

// Compiler resolves the single program backing a toolkind, as fixed by
// toolchain detection.
type Compiler interface {
	Toolset(toolkind string) string
}

// Prober runs option probes by compiling (and optionally linking)
// synthesized snippets through the selected toolchain.
type Prober struct {
	Toolchain Compiler
	Runner    func(ctx context.Context, dir, program string, args ...string) (osutil.RunResult, error)
	WorkDir   string
}

// NewProber returns a Prober that shells out via osutil.Run.
func NewProber(tc Compiler) *Prober {
	return &Prober{Toolchain: tc, Runner: osutil.Run}
}

// ProbeOption resolves opt.Value() following spec.md §4.4 and §8
// properties 2-3: a non-empty default always wins without probing; an
// empty default with no probing inputs on a given kind counts that kind
// as a vacuous success; otherwise a real compile (and optional link) is
// attempted.
func (p *Prober) ProbeOption(ctx context.Context, opt model.Option) error {
	if opt.Default() != "" {
		opt.Set("value", opt.Default())
		return nil
	}

	cOK, err := p.probeKind(ctx, opt, "c")
	if err != nil {
		return err
	}
	cxxOK, err := p.probeKind(ctx, opt, "cxx")
	if err != nil {
		return err
	}
	opt.SetValue(cOK && cxxOK)
	return nil
}

// probeToolKind maps a probing kind ("c"/"cxx") to its compiler toolkind.
func probeToolKind(kind string) translate.ToolKind {
	if kind == "cxx" {
		return translate.CXX
	}
	return translate.CC
}

func (p *Prober) probeKind(ctx context.Context, opt model.Option, kind string) (bool, error) {
	if !opt.HasProbingInputs(kind) {
		return true, nil
	}

	toolkind := probeToolKind(kind)
	program := p.Toolchain.Toolset(string(toolkind))
	toolname, ok := toolchain.ClassifyToolName(program)
	if !ok {
		return false, nil
	}

	snippet := BuildSnippet(opt, kind)
	src := osutil.TempPath("gocfg-probe", sourceExt(kind))
	obj := osutil.TempPath("gocfg-probe", ".o")
	defer osutil.RemoveAllQuiet(src, obj)

	if err := os.WriteFile(src, []byte(snippet), 0o644); err != nil {
		return false, err
	}

	compileFlags, err := composeFlags(toolkind, toolname, abstractItems, opt)
	if err != nil {
		return false, err
	}
	rawFlags := opt.List("cxflags")
	if kind == "cxx" {
		rawFlags = append(rawFlags, opt.List("cxxflags")...)
	} else {
		rawFlags = append(rawFlags, opt.List("cflags")...)
	}

	args := append([]string{"-c"}, compileFlags...)
	args = append(args, rawFlags...)
	args = append(args, "-o", obj, src)

	result, err := p.Runner(ctx, p.WorkDir, program, args...)
	if err != nil || result.ExitCode != 0 {
		return false, nil
	}

	links := opt.List("links")
	syslinks := opt.List("syslinks")
	if len(links) == 0 && len(syslinks) == 0 {
		return true, nil
	}
	return p.probeLink(ctx, opt, obj)
}

func (p *Prober) probeLink(ctx context.Context, opt model.Option, obj string) (bool, error) {
	ldProgram := p.Toolchain.Toolset("ld")
	ldName, ok := toolchain.ClassifyToolName(ldProgram)
	if !ok {
		return false, nil
	}

	bin := osutil.TempPath("gocfg-probe", "")
	defer osutil.RemoveAllQuiet(bin)

	flags, err := composeFlags(translate.LD, ldName, []string{"linkdirs", "links", "syslinks"}, opt)
	if err != nil {
		return false, err
	}
	args := append(flags, opt.List("ldflags")...)
	args = append(args, "-o", bin, obj)

	result, err := p.Runner(ctx, p.WorkDir, ldProgram, args...)
	if err != nil {
		return false, nil
	}
	return result.ExitCode == 0, nil
}

// composeFlags translates each abstract itemname's token list for opt and
// rewrites colons in the translated output to spaces before the flags are
// split into argv (spec.md §4.4: "A colon in a translated flag segment is
// a delimiter and is rewritten to a space before invocation").
func composeFlags(kind translate.ToolKind, name translate.ToolName, itemnames []string, opt model.Option) ([]string, error) {
	var out []string
	for _, item := range itemnames {
		translated, err := translate.TranslateAll(kind, name, item, opt.List(item))
		if err != nil {
			return nil, err
		}
		translated = strings.ReplaceAll(translated, ":", " ")
		out = append(out, strings.Fields(translated)...)
	}
	return out, nil
}
