package makefile

import (
	"strings"

	"gocfg/internal/graph"
	"gocfg/internal/model"
	"gocfg/internal/translate"
)

// compileAbstractItems are the abstract knobs the prober also translates
// when synthesizing a probe compile command (spec.md §4.4), plus
// includedirs, which the prober does not translate; the emitter composes
// this set for a real target's flag variables.
var compileAbstractItems = []string{"languages", "warnings", "optimizes", "defines", "udefines", "includedirs"}

// linkAbstractItems are the abstract knobs translated for a target's link
// line.
var linkAbstractItems = []string{"linkdirs", "links", "syslinks", "rpathdirs", "frameworks", "frameworkdirs"}

// rawFlagAttrs returns the raw (untranslated) flag attributes a given
// compile toolkind reads directly, e.g. cc reads both cflags and the
// shared cxflags (spec.md §4.4's "raw flags are cxflags plus one of
// cflags or cxxflags", generalized across all compile toolkinds).
func rawFlagAttrs(kind translate.ToolKind) []string {
	switch kind {
	case translate.CC:
		return []string{"cflags", "cxflags"}
	case translate.CXX:
		return []string{"cxxflags", "cxflags"}
	case translate.MM:
		return []string{"mflags", "mxflags"}
	case translate.MXX:
		return []string{"mxxflags", "mxflags"}
	case translate.AS:
		return []string{"asflags"}
	case translate.LD:
		return []string{"ldflags"}
	case translate.SH:
		return []string{"shflags"}
	case translate.AR:
		return []string{"arflags"}
	default:
		return nil
	}
}

// ComposeCompileFlags computes a target's effective compile flags for one
// compile toolkind: translated abstract items (inheriting public values
// from static/shared deps via the graph resolver) followed by the
// target's own raw flag attributes.
func ComposeCompileFlags(r *graph.Resolver, t model.Target, kind translate.ToolKind, name translate.ToolName) ([]string, error) {
	var out []string
	for _, item := range compileAbstractItems {
		values, err := r.EffectiveList(t, item)
		if err != nil {
			return nil, err
		}
		translated, err := translate.TranslateAll(kind, name, item, values)
		if err != nil {
			return nil, err
		}
		out = append(out, strings.Fields(translated)...)
	}
	for _, attr := range rawFlagAttrs(kind) {
		out = append(out, t.List(attr)...)
	}
	return out, nil
}

// ComposeLinkFlags computes a target's effective link flags for its
// linking toolkind (ld for binary, sh for shared): translated abstract
// items, the -L/-l flags contributed by its own transitive library deps,
// then its raw flag attribute.
func ComposeLinkFlags(r *graph.Resolver, p graph.Paths, t model.Target, kind translate.ToolKind, name translate.ToolName) ([]string, error) {
	var out []string
	for _, item := range linkAbstractItems {
		values, err := r.EffectiveList(t, item)
		if err != nil {
			return nil, err
		}
		translated, err := translate.TranslateAll(kind, name, item, values)
		if err != nil {
			return nil, err
		}
		out = append(out, strings.Fields(translated)...)
	}

	libs, err := r.TransitiveLibDeps(t)
	if err != nil {
		return nil, err
	}
	for _, libName := range libs {
		lib := model.NewTarget(r.DB, libName)
		linkName := lib.Get("basename")
		if linkName == "" {
			linkName = lib.Name
		}
		out = append(out, "-L"+p.TargetDir(lib), "-l"+linkName)
	}

	out = append(out, t.List(rawFlagAttrs(kind)[0])...)
	return out, nil
}

// LinkKindForTarget returns the toolkind a target links through: sh for
// shared libraries, ld for everything else that produces a linked
// artifact (binary). Static targets archive instead of linking.
func LinkKindForTarget(kind model.TargetKind) translate.ToolKind {
	if kind == model.KindShared {
		return translate.SH
	}
	return translate.LD
}
