// Package makefile implements the Makefile emitter from spec.md §4.8: it
// linearizes the resolved target graph into toolchain variables, per-target
// flag variables, compile/link/archive rules, and the run/clean/install
// phony targets.
package makefile

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gocfg/internal/graph"
	"gocfg/internal/model"
	"gocfg/internal/osutil"
	"gocfg/internal/store"
	"gocfg/internal/toolchain"
	"gocfg/internal/translate"
)

// InstallDirs collects the install path defaults an "install" rule resolves
// against (spec.md §4.8 item 9); BinDir/LibDir/IncludeDir are relative to a
// target's own installdir when set, else to Prefix.
type InstallDirs struct {
	Prefix     string
	BinDir     string
	LibDir     string
	IncludeDir string
}

// flagVarName is the Makefile variable name suffix for a toolkind's
// composed flags, matching the worked example in spec.md §6 scenario S1
// ("$(hello_cflags)", "$(hello_ldflags)").
func flagVarName(kind translate.ToolKind) string {
	switch kind {
	case translate.CC:
		return "cflags"
	case translate.CXX:
		return "cxxflags"
	case translate.MM:
		return "mflags"
	case translate.MXX:
		return "mxxflags"
	case translate.AS:
		return "asflags"
	case translate.LD:
		return "ldflags"
	case translate.SH:
		return "shflags"
	case translate.AR:
		return "arflags"
	default:
		return string(kind)
	}
}

// linkKindForTarget returns the toolkind a target's artifact is produced
// with: ar for static archives, sh for shared objects, ld for binaries.
func linkKindForTarget(kind model.TargetKind) translate.ToolKind {
	switch kind {
	case model.KindStatic:
		return translate.AR
	case model.KindShared:
		return translate.SH
	default:
		return translate.LD
	}
}

// targetInfo is the per-target working set the emitter computes once and
// threads through every section.
type targetInfo struct {
	t            model.Target
	sources      []string // project-relative source paths
	compileKinds []translate.ToolKind
	linkKind     translate.ToolKind
}

// Emitter writes the generated Makefile for one resolved project.
type Emitter struct {
	DB         *store.Store
	Resolver   *graph.Resolver
	Paths      graph.Paths
	TC         model.Toolchain
	Install    InstallDirs
	ProjectDir string
}

// NewEmitter returns an Emitter over a fully loaded and detected store.
func NewEmitter(db *store.Store, paths graph.Paths, tc model.Toolchain, install InstallDirs, projectDir string) *Emitter {
	return &Emitter{
		DB:         db,
		Resolver:   graph.NewResolver(db),
		Paths:      paths,
		TC:         tc,
		Install:    install,
		ProjectDir: projectDir,
	}
}

func (e *Emitter) targets() []model.Target {
	var out []model.Target
	for _, name := range e.DB.Names(store.KindTarget) {
		if name == store.RootScope {
			continue
		}
		out = append(out, model.NewTarget(e.DB, name))
	}
	return out
}

// buildInfos resolves each target's source file glob patterns and
// classifies the toolkinds it exercises (spec.md §4.6, §4.8 item 3: "The
// union of kind across all targets plus all sourcekinds populates
// toolkinds").
func (e *Emitter) buildInfos(targets []model.Target) ([]targetInfo, error) {
	infos := make([]targetInfo, 0, len(targets))
	for _, t := range targets {
		var sources []string
		for _, pattern := range t.Files() {
			matches, err := osutil.Glob(e.ProjectDir, pattern)
			if err != nil {
				return nil, err
			}
			sources = append(sources, matches...)
		}

		kindSet := map[translate.ToolKind]bool{}
		for _, src := range sources {
			k, err := graph.SourceKind(src)
			if err != nil {
				return nil, err
			}
			kindSet[translate.ToolKind(k)] = true
		}
		var compileKinds []translate.ToolKind
		for k := range kindSet {
			compileKinds = append(compileKinds, k)
		}
		sort.Slice(compileKinds, func(i, j int) bool { return compileKinds[i] < compileKinds[j] })

		infos = append(infos, targetInfo{
			t:            t,
			sources:      sources,
			compileKinds: compileKinds,
			linkKind:     linkKindForTarget(t.Kind()),
		})
	}
	return infos, nil
}

// allToolKinds returns the deduplicated, sorted set of toolkinds any
// target in infos exercises.
func allToolKinds(infos []targetInfo) []translate.ToolKind {
	set := map[translate.ToolKind]bool{}
	for _, info := range infos {
		set[info.linkKind] = true
		for _, k := range info.compileKinds {
			set[k] = true
		}
	}
	var out []translate.ToolKind
	for k := range set {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Emit writes the complete Makefile to w.
func (e *Emitter) Emit(w io.Writer) error {
	targets := e.targets()
	infos, err := e.buildInfos(targets)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	writeHeader(bw)
	writeVerbositySwitch(bw)

	toolNames := e.writeToolchainVars(bw, infos)
	if err := e.writeFlagVars(bw, infos, toolNames); err != nil {
		return err
	}
	writePhony(bw, targets)
	if err := e.writeTargetRules(bw, infos); err != nil {
		return err
	}
	writeRunRule(bw, targets)
	if err := e.writeCleanRule(bw, infos); err != nil {
		return err
	}
	if err := e.writeInstallRule(bw, targets); err != nil {
		return err
	}

	return bw.Flush()
}

func writeHeader(w *bufio.Writer) {
	fmt.Fprintln(w, "# Generated by gocfg. Do not edit by hand; re-run gocfg instead.")
	fmt.Fprintln(w)
}

func writeVerbositySwitch(w *bufio.Writer) {
	fmt.Fprintln(w, "ifneq ($(VERBOSE),1)")
	fmt.Fprintln(w, "V=@")
	fmt.Fprintln(w, "endif")
	fmt.Fprintln(w)
}

// writeToolchainVars emits one <KIND>=<program> line per toolkind any
// target uses, returning the resolved ToolName per toolkind for later flag
// composition (spec.md §4.8 item 3).
func (e *Emitter) writeToolchainVars(w *bufio.Writer, infos []targetInfo) map[translate.ToolKind]translate.ToolName {
	names := map[translate.ToolKind]translate.ToolName{}
	for _, kind := range allToolKinds(infos) {
		program := e.TC.Toolset(string(kind))
		fmt.Fprintf(w, "%s=%s\n", strings.ToUpper(string(kind)), program)

		name, ok := toolNameFor(kind, program)
		if ok {
			names[kind] = name
		}
	}
	fmt.Fprintln(w)
	return names
}

// toolNameFor classifies program's compiler family; ar uses a fixed
// translate.Ar name since spec.md's archiver recipe is toolname-independent.
func toolNameFor(kind translate.ToolKind, program string) (translate.ToolName, bool) {
	if kind == translate.AR {
		return translate.Ar, true
	}
	return toolchain.ClassifyToolName(program)
}

func (e *Emitter) writeFlagVars(w *bufio.Writer, infos []targetInfo, toolNames map[translate.ToolKind]translate.ToolName) error {
	for _, info := range infos {
		for _, kind := range info.compileKinds {
			name, ok := toolNames[kind]
			if !ok {
				continue
			}
			flags, err := ComposeCompileFlags(e.Resolver, info.t, kind, name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s_%s=%s\n", info.t.Name, flagVarName(kind), strings.Join(flags, " "))
		}

		if info.linkKind == translate.AR {
			fmt.Fprintf(w, "%s_%s=%s\n", info.t.Name, flagVarName(translate.AR), strings.Join(info.t.List("arflags"), " "))
			continue
		}
		name, ok := toolNames[info.linkKind]
		if !ok {
			continue
		}
		flags, err := ComposeLinkFlags(e.Resolver, e.Paths, info.t, info.linkKind, name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s_%s=%s\n", info.t.Name, flagVarName(info.linkKind), strings.Join(flags, " "))
	}
	fmt.Fprintln(w)
	return nil
}

func isDefault(t model.Target) bool {
	enabled, _ := t.Default()
	return enabled
}

func writePhony(w *bufio.Writer, targets []model.Target) {
	var all, defaults []string
	for _, t := range targets {
		all = append(all, t.Name)
		if isDefault(t) {
			defaults = append(defaults, t.Name)
		}
	}
	fmt.Fprintf(w, ".PHONY: default all run clean install %s\n\n", strings.Join(all, " "))
	fmt.Fprintf(w, "default: %s\n\n", strings.Join(defaults, " "))
	fmt.Fprintf(w, "all: %s\n\n", strings.Join(all, " "))
}

func (e *Emitter) writeTargetRules(w *bufio.Writer, infos []targetInfo) error {
	for _, info := range infos {
		t := info.t
		targetFile, err := e.Paths.TargetFile(t)
		if err != nil {
			return err
		}

		var depFiles []string
		libs, err := e.Resolver.TransitiveLibDeps(t)
		if err != nil {
			return err
		}
		for _, depName := range libs {
			dep := model.NewTarget(e.DB, depName)
			depFile, err := e.Paths.TargetFile(dep)
			if err != nil {
				return err
			}
			depFiles = append(depFiles, depFile)
		}

		var objFiles []string
		for _, src := range info.sources {
			objFiles = append(objFiles, e.Paths.ObjectFile(t, src))
		}

		fmt.Fprintf(w, "%s: %s\n\n", t.Name, targetFile)

		fmt.Fprintf(w, "%s: %s\n", targetFile, strings.Join(append(append([]string{}, depFiles...), objFiles...), " "))
		fmt.Fprintf(w, "\t@echo Linking %s\n", t.Name)
		fmt.Fprintf(w, "\t$(V)mkdir -p $(dir %s)\n", targetFile)
		fmt.Fprintf(w, "\t%s\n\n", linkRecipe(info, targetFile, objFiles))

		for _, src := range info.sources {
			obj := e.Paths.ObjectFile(t, src)
			kind, err := graph.SourceKind(src)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s: %s\n", obj, src)
			fmt.Fprintf(w, "\t@echo Compiling %s\n", src)
			fmt.Fprintf(w, "\t$(V)mkdir -p $(dir %s)\n", obj)
			fmt.Fprintf(w, "\t$(V)$(%s) -c $(%s_%s) -o %s %s\n\n",
				strings.ToUpper(kind), t.Name, flagVarName(translate.ToolKind(kind)), obj, src)
		}
	}
	return nil
}

func linkRecipe(info targetInfo, targetFile string, objFiles []string) string {
	t := info.t
	objs := strings.Join(objFiles, " ")
	switch info.linkKind {
	case translate.AR:
		return fmt.Sprintf("$(V)$(AR) -cr %s $(%s_arflags) %s", targetFile, t.Name, objs)
	case translate.SH:
		return fmt.Sprintf("$(V)$(SH) -o %s $(%s_shflags) %s", targetFile, t.Name, objs)
	default:
		return fmt.Sprintf("$(V)$(LD) -o %s $(%s_ldflags) %s", targetFile, t.Name, objs)
	}
}

func writeRunRule(w *bufio.Writer, targets []model.Target) {
	var binaries []string
	for _, t := range targets {
		if t.Kind() == model.KindBinary && isDefault(t) {
			binaries = append(binaries, t.Name)
		}
	}
	fmt.Fprintf(w, "run: %s\n", strings.Join(binaries, " "))
	for _, name := range binaries {
		fmt.Fprintf(w, "\t$(V)./%s\n", name)
	}
	fmt.Fprintln(w)
}

func (e *Emitter) writeCleanRule(w *bufio.Writer, infos []targetInfo) error {
	var defaults []string
	for _, info := range infos {
		if isDefault(info.t) {
			defaults = append(defaults, info.t.Name)
		}
	}
	fmt.Fprintf(w, "clean: %s\n", strings.Join(defaults, " "))
	for _, info := range infos {
		if !isDefault(info.t) {
			continue
		}
		targetFile, err := e.Paths.TargetFile(info.t)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "\t$(V)rm -f %s\n", targetFile)
		for _, src := range info.sources {
			fmt.Fprintf(w, "\t$(V)rm -f %s\n", e.Paths.ObjectFile(info.t, src))
		}
	}
	fmt.Fprintln(w)
	return nil
}

// installDest implements spec.md §4.8's path encoding for one
// headerfiles/installfiles entry.
func installDest(entry model.FileEntry, base string) string {
	name := entry.Name
	if name == "" {
		name = path.Base(entry.Src)
	}
	if entry.Root == "" {
		return path.Join(base, entry.Prefix, name)
	}
	rel, err := filepath.Rel(entry.Root, entry.Src)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path.Join(base, entry.Prefix, name)
	}
	return path.Join(base, entry.Prefix, filepath.ToSlash(filepath.Dir(rel)), name)
}

func (e *Emitter) writeInstallRule(w *bufio.Writer, targets []model.Target) error {
	fmt.Fprintln(w, "install:")
	for _, t := range targets {
		root := t.Get("installdir")
		if root == "" {
			root = e.Install.Prefix
		}

		targetFile, err := e.Paths.TargetFile(t)
		if err != nil {
			return err
		}
		destDir := path.Join(root, e.Install.BinDir)
		if t.Kind().IsLibrary() {
			destDir = path.Join(root, e.Install.LibDir)
		}
		fmt.Fprintf(w, "\t$(V)mkdir -p %s\n", destDir)
		fmt.Fprintf(w, "\t$(V)cp %s %s\n", targetFile, destDir)

		includeDir := path.Join(root, e.Install.IncludeDir)
		for _, hf := range t.HeaderFiles() {
			dest := installDest(hf, includeDir)
			fmt.Fprintf(w, "\t$(V)mkdir -p %s\n", path.Dir(dest))
			fmt.Fprintf(w, "\t$(V)cp %s %s\n", hf.Src, dest)
		}
		for _, inf := range t.InstallFiles() {
			dest := installDest(inf, root)
			fmt.Fprintf(w, "\t$(V)mkdir -p %s\n", path.Dir(dest))
			fmt.Fprintf(w, "\t$(V)cp %s %s\n", inf.Src, dest)
		}
	}
	fmt.Fprintln(w)
	return nil
}
