// Package scriptapi defines the Script API surface (spec.md §6) that a
// project script is allowed to call. The yaegi-evaluated script sees a
// single package-level ScriptAPI value named "gocfg" (SPEC_FULL.md §6
// ADD) — the language substrate is out of scope, this interface is the
// entire contract.
package scriptapi

// ScriptAPI is the sole surface a project script can mutate the engine
// through. Every method is a no-op when called outside the loading phase
// it belongs to (spec.md §4.2: "mis-phased calls are silently ignored").
type ScriptAPI interface {
	// Project
	SetProject(name string)
	SetVersion(version string, buildDateFormat ...string)
	Includes(paths ...string)

	// Options. rest[0] is description, rest[1] is default; a non-empty
	// description auto-closes the option (spec.md §4.2 one-line form).
	Option(name string, rest ...string)
	OptionEnd()
	SetShowmenu(enabled bool)
	SetDescription(desc string)
	AddCFuncs(names ...string)
	AddCxxFuncs(names ...string)
	AddCIncludes(names ...string)
	AddCxxIncludes(names ...string)
	AddCTypes(types ...string)
	AddCxxTypes(types ...string)
	AddCSnippets(text string)
	AddCxxSnippets(text string)

	// Toolchains
	Toolchain(name string)
	ToolchainEnd()
	SetToolset(kind string, programs ...string)

	// Targets
	Target(name string)
	TargetEnd()
	SetKind(kind string)
	SetFilename(v string)
	SetBasename(v string)
	SetExtension(v string)
	SetPrefixname(v string)
	SetTargetdir(v string)
	SetObjectdir(v string)
	SetConfigdir(v string)
	SetInstalldir(v string)
	SetStrip(v string)
	SetSymbols(v string)
	SetLanguages(values ...string)
	SetWarnings(values ...string)
	SetOptimizes(values ...string)
	SetConfigvar(name, value string)
	// SetDefault applies to whichever scope is current: an option's
	// scalar default value, or a target's built-by-default boolean
	// ("true"/"false").
	SetDefault(v string)

	AddFiles(paths ...string)
	AddHeaderFiles(entries ...string)
	AddInstallFiles(entries ...string)
	AddConfigFiles(paths ...string)
	AddDeps(names ...string)
	AddOptions(names ...string)
	AddDefines(values ...string)
	AddUdefines(values ...string)
	AddIncludeDirs(dirs ...string)
	AddLinks(names ...string)
	AddSysLinks(names ...string)
	AddLinkDirs(dirs ...string)
	AddRpathDirs(dirs ...string)
	AddFrameworks(names ...string)
	AddFrameworkDirs(dirs ...string)

	AddCFlags(flags ...string)
	AddCxxFlags(flags ...string)
	AddCxFlags(flags ...string)
	AddMFlags(flags ...string)
	AddMxxFlags(flags ...string)
	AddMxFlags(flags ...string)
	AddAsFlags(flags ...string)
	AddLdFlags(flags ...string)
	AddShFlags(flags ...string)
	AddArFlags(flags ...string)

	// Predicates
	IsPlat(values ...string) bool
	IsArch(values ...string) bool
	IsMode(values ...string) bool
	IsToolchain(values ...string) bool
	IsHost(values ...string) bool
	IsConfig(name string) bool
	HasConfig(name string) bool
	SetConfig(name, value string)
}
