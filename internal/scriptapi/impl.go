package scriptapi

import (
	"strings"

	"gocfg/internal/model"
	"gocfg/internal/platform"
	"gocfg/internal/scope"
	"gocfg/internal/store"
)

// Engine is the concrete ScriptAPI backing store + phase gate, injected
// into the yaegi interpreter as the "gocfg" variable (SPEC_FULL.md §6
// ADD). Includes is wired to a callback rather than evaluating scripts
// itself, keeping scriptapi free of a dependency on the interpreter
// package that hosts it.
type Engine struct {
	DB    *store.Store
	Scope *scope.Scope
	Pred  platform.Predicates

	// IncludesFn evaluates each named script (or <dir>/<file> form),
	// pushing/popping scriptdir; wired by internal/scriptrun.
	IncludesFn func(paths ...string)

	projectName string
	projectVers string

	// config is the ad-hoc is_config/has_config/set_config namespace
	// (spec.md §6 lists these predicates without defining their backing
	// store; resolved here as a simple script-scoped string map separate
	// from Option.value — see DESIGN.md Open Question log).
	config map[string]string
}

// New returns an Engine bound to db and gated by sc.
func New(db *store.Store, sc *scope.Scope, pred platform.Predicates) *Engine {
	return &Engine{DB: db, Scope: sc, Pred: pred, config: map[string]string{}}
}

// current holds whichever Engine the yaegi interpreter's generated
// preamble should bind to "gocfg" for the script presently being
// evaluated. The loader (internal/scriptrun) is strictly single-threaded
// per spec.md §5, so a package-level pointer is sufficient for handing a
// live Go value to interpreted code.
var current ScriptAPI

// SetCurrent installs e as the Engine the next yaegi evaluation resolves
// "gocfg" to, via the Current() export.
func SetCurrent(e ScriptAPI) { current = e }

// Current is exported to the yaegi interpreter's symbol table
// (internal/scriptrun) so a script's generated preamble can bind
// "gocfg := scriptapi.Current()".
func Current() ScriptAPI { return current }

var _ ScriptAPI = (*Engine)(nil)

// --- Project ---

func (e *Engine) SetProject(name string) { e.projectName = name }

func (e *Engine) SetVersion(version string, buildDateFormat ...string) {
	e.projectVers = version
	// Project-level version/build-format feed every target declared
	// without its own set_version call, via root scope.
	root := model.NewTarget(e.DB, store.RootScope)
	root.Set("version", version)
	if len(buildDateFormat) > 0 {
		root.Set("version_build", buildDateFormat[0])
	}
}

func (e *Engine) Includes(paths ...string) {
	if e.IncludesFn != nil {
		e.IncludesFn(paths...)
	}
}

// --- Options ---

func (e *Engine) Option(name string, rest ...string) {
	if !e.Scope.OptionsActive() {
		return
	}
	e.DB.Declare(store.KindOption, name)
	e.Scope.BeginOption(name)

	opt := model.NewOption(e.DB, name)
	if len(rest) > 0 {
		opt.Set("description", rest[0])
	}
	if len(rest) > 1 {
		opt.Set("default", rest[1])
	}
	if len(rest) > 0 && rest[0] != "" {
		e.OptionEnd()
	}
}

func (e *Engine) OptionEnd() { e.Scope.EndOption() }

func (e *Engine) currentOption() (model.Option, bool) {
	name := e.Scope.CurrentOption()
	if name == "" {
		return model.Option{}, false
	}
	return model.NewOption(e.DB, name), true
}

func (e *Engine) SetShowmenu(enabled bool) {
	if opt, ok := e.currentOption(); ok {
		if enabled {
			opt.Set("showmenu", "enabled")
		} else {
			opt.Set("showmenu", "disabled")
		}
	}
}

func (e *Engine) SetDescription(desc string) {
	if opt, ok := e.currentOption(); ok {
		opt.Set("description", desc)
	}
}

func (e *Engine) AddCFuncs(names ...string)    { e.appendOptionList("cfuncs", names) }
func (e *Engine) AddCxxFuncs(names ...string)  { e.appendOptionList("cxxfuncs", names) }
func (e *Engine) AddCIncludes(n ...string)     { e.appendOptionList("cincludes", n) }
func (e *Engine) AddCxxIncludes(n ...string)   { e.appendOptionList("cxxincludes", n) }
func (e *Engine) AddCTypes(types ...string)    { e.appendOptionList("ctypes", types) }
func (e *Engine) AddCxxTypes(types ...string)  { e.appendOptionList("cxxtypes", types) }

func (e *Engine) AddCSnippets(text string) {
	if opt, ok := e.currentOption(); ok {
		opt.AppendSnippet("c", text)
	}
}

func (e *Engine) AddCxxSnippets(text string) {
	if opt, ok := e.currentOption(); ok {
		opt.AppendSnippet("cxx", text)
	}
}

func (e *Engine) appendOptionList(key string, values []string) {
	opt, ok := e.currentOption()
	if !ok {
		return
	}
	for _, v := range values {
		opt.Append(key, v)
	}
}

// --- Toolchains ---

func (e *Engine) Toolchain(name string) {
	if !e.Scope.ToolchainsActive() {
		return
	}
	e.DB.Declare(store.KindToolchain, name)
	e.Scope.BeginToolchain(name)
	model.NewToolchain(e.DB, name).Set("name", name)
}

func (e *Engine) ToolchainEnd() { e.Scope.EndToolchain() }

func (e *Engine) SetToolset(kind string, programs ...string) {
	name := e.Scope.CurrentToolchain()
	if name == "" {
		return
	}
	tc := model.NewToolchain(e.DB, name)
	tc.Set("toolset_"+kind, strings.Join(programs, ":"))
}

// --- Targets ---

func (e *Engine) Target(name string) {
	if !e.Scope.TargetsActive() {
		return
	}
	e.DB.Declare(store.KindTarget, name)
	e.Scope.BeginTarget(name)
}

func (e *Engine) TargetEnd() { e.Scope.EndTarget() }

func (e *Engine) currentTarget() model.Target {
	return model.NewTarget(e.DB, e.Scope.CurrentTarget())
}

func (e *Engine) targetActive() bool {
	return e.Scope.TargetsActive()
}

func (e *Engine) SetKind(kind string) {
	if e.targetActive() {
		e.currentTarget().SetKind(model.TargetKind(kind))
	}
}

func (e *Engine) setTargetAttr(key, value string) {
	if e.targetActive() {
		e.currentTarget().Set(key, value)
	}
}

func (e *Engine) SetFilename(v string)   { e.setTargetAttr("filename", v) }
func (e *Engine) SetBasename(v string)   { e.setTargetAttr("basename", v) }
func (e *Engine) SetExtension(v string)  { e.setTargetAttr("extension", v) }
func (e *Engine) SetPrefixname(v string) { e.setTargetAttr("prefixname", v) }
func (e *Engine) SetTargetdir(v string)  { e.setTargetAttr("targetdir", v) }
func (e *Engine) SetObjectdir(v string)  { e.setTargetAttr("objectdir", v) }
func (e *Engine) SetConfigdir(v string)  { e.setTargetAttr("configdir", v) }
func (e *Engine) SetInstalldir(v string) { e.setTargetAttr("installdir", v) }
func (e *Engine) SetStrip(v string)      { e.setTargetAttr("strip", v) }
func (e *Engine) SetSymbols(v string)    { e.setTargetAttr("symbols", v) }

func (e *Engine) SetLanguages(values ...string) { e.setTargetAttr("languages", strings.Join(values, " ")) }
func (e *Engine) SetWarnings(values ...string)  { e.setTargetAttr("warnings", strings.Join(values, " ")) }
func (e *Engine) SetOptimizes(values ...string) { e.setTargetAttr("optimizes", strings.Join(values, " ")) }

func (e *Engine) SetConfigvar(name, value string) {
	if !e.targetActive() {
		return
	}
	t := e.currentTarget()
	t.Set("configvar_"+name, value)
	for _, existing := range t.ConfigVars() {
		if existing == name {
			return
		}
	}
	t.Append("configvars", name)
}

// SetDefault resolves against whichever entity scope is current: an
// option's default value, or (during target loading) a target's
// built-by-default flag.
func (e *Engine) SetDefault(v string) {
	if opt, ok := e.currentOption(); ok {
		opt.Set("default", v)
		return
	}
	if e.targetActive() {
		e.currentTarget().Set("default", v)
	}
}

func (e *Engine) addTargetTokens(attr string, values []string) {
	if e.targetActive() {
		e.currentTarget().AddTokens(attr, values)
	}
}

func (e *Engine) appendTargetList(attr string, values []string) {
	if !e.targetActive() {
		return
	}
	t := e.currentTarget()
	for _, v := range values {
		t.Append(attr, v)
	}
}

func (e *Engine) AddFiles(paths ...string)        { e.appendTargetList("files", paths) }
func (e *Engine) AddHeaderFiles(entries ...string) { e.appendTargetList("headerfiles", entries) }
func (e *Engine) AddInstallFiles(entries ...string) {
	e.appendTargetList("installfiles", entries)
}
func (e *Engine) AddConfigFiles(paths ...string) { e.appendTargetList("configfiles", paths) }
func (e *Engine) AddDeps(names ...string)        { e.appendTargetList("deps", names) }
func (e *Engine) AddOptions(names ...string)     { e.appendTargetList("options", names) }

func (e *Engine) AddDefines(values ...string)      { e.addTargetTokens("defines", values) }
func (e *Engine) AddUdefines(values ...string)     { e.addTargetTokens("udefines", values) }
func (e *Engine) AddIncludeDirs(dirs ...string)    { e.addTargetTokens("includedirs", dirs) }
func (e *Engine) AddLinks(names ...string)         { e.addTargetTokens("links", names) }
func (e *Engine) AddSysLinks(names ...string)      { e.addTargetTokens("syslinks", names) }
func (e *Engine) AddLinkDirs(dirs ...string)       { e.addTargetTokens("linkdirs", dirs) }
func (e *Engine) AddFrameworks(names ...string)    { e.addTargetTokens("frameworks", names) }
func (e *Engine) AddFrameworkDirs(dirs ...string)  { e.addTargetTokens("frameworkdirs", dirs) }

// AddRpathDirs is a plain list append: rpathdirs has no "_public" variant
// (spec.md §3 names only seven dual-visibility attributes, rpathdirs is
// not among them).
func (e *Engine) AddRpathDirs(dirs ...string) { e.appendTargetList("rpathdirs", dirs) }

func (e *Engine) AddCFlags(flags ...string)   { e.appendTargetList("cflags", flags) }
func (e *Engine) AddCxxFlags(flags ...string) { e.appendTargetList("cxxflags", flags) }
func (e *Engine) AddCxFlags(flags ...string)  { e.appendTargetList("cxflags", flags) }
func (e *Engine) AddMFlags(flags ...string)   { e.appendTargetList("mflags", flags) }
func (e *Engine) AddMxxFlags(flags ...string) { e.appendTargetList("mxxflags", flags) }
func (e *Engine) AddMxFlags(flags ...string)  { e.appendTargetList("mxflags", flags) }
func (e *Engine) AddAsFlags(flags ...string)  { e.appendTargetList("asflags", flags) }
func (e *Engine) AddLdFlags(flags ...string)  { e.appendTargetList("ldflags", flags) }
func (e *Engine) AddShFlags(flags ...string)  { e.appendTargetList("shflags", flags) }
func (e *Engine) AddArFlags(flags ...string)  { e.appendTargetList("arflags", flags) }

// --- Predicates ---

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func (e *Engine) IsPlat(values ...string) bool      { return contains(values, e.Pred.Info.Plat) }
func (e *Engine) IsArch(values ...string) bool      { return contains(values, e.Pred.Info.Arch) }
func (e *Engine) IsMode(values ...string) bool      { return contains(values, e.Pred.Info.Mode) }
func (e *Engine) IsToolchain(values ...string) bool { return contains(values, e.Pred.Info.Toolchain) }
func (e *Engine) IsHost(values ...string) bool {
	plat, _ := platform.HostDefault()
	return contains(values, plat)
}

func (e *Engine) IsConfig(name string) bool {
	v, ok := e.config[name]
	return ok && v != "" && v != "false" && v != "0"
}
func (e *Engine) HasConfig(name string) bool {
	_, ok := e.config[name]
	return ok
}
func (e *Engine) SetConfig(name, value string) { e.config[name] = value }
