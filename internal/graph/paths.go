// Package graph implements the target graph resolver from spec.md §4.6:
// target/object file path defaults, source-to-object mapping, transitive
// library dependency closure, and effective (own + public-inherited)
// attribute values.
package graph

import (
	"fmt"
	"path"
	"strings"

	"gocfg/internal/model"
	"gocfg/internal/platform"
)

// UnknownSourceExtensionError is fatal per spec.md §7.
type UnknownSourceExtensionError struct{ Path string }

func (e *UnknownSourceExtensionError) Error() string {
	return fmt.Sprintf("unknown source extension: %s", e.Path)
}

// MissingKindError is fatal per spec.md §3 invariant 2 / §7: kind must be
// set exactly once before generation.
type MissingKindError struct{ Target string }

func (e *MissingKindError) Error() string {
	return fmt.Sprintf("target %q: kind is not set", e.Target)
}

// Paths computes the structural file-path defaults for one target
// (spec.md §4.6).
type Paths struct {
	Plat     string
	Arch     string
	Mode     string
	BuildDir string
}

// TargetDir returns the target's output directory.
func (p Paths) TargetDir(t model.Target) string {
	if v := t.Get("targetdir"); v != "" {
		return v
	}
	return path.Join(p.BuildDir, p.Plat, p.Arch, p.Mode)
}

// ObjectDir returns the target's intermediate object directory.
func (p Paths) ObjectDir(t model.Target) string {
	if v := t.Get("objectdir"); v != "" {
		return v
	}
	return path.Join(p.BuildDir, ".objs", t.Name, p.Plat, p.Arch, p.Mode)
}

// filenameDefaults returns (prefix, extension) for (kind, plat) absent an
// explicit override (spec.md §4.6).
func (p Paths) filenameDefaults(kind model.TargetKind) (prefix, ext string) {
	mingw := platform.IsMingw(p.Plat)
	switch kind {
	case model.KindStatic:
		return "lib", ".a"
	case model.KindShared:
		if mingw {
			return "lib", ".dll"
		}
		return "lib", ".so"
	case model.KindBinary:
		if mingw {
			return "", ".exe"
		}
		return "", ""
	default:
		return "", ""
	}
}

// TargetFile returns the full target file path: <targetdir>/<prefix>
// <basename><ext>, unless "filename" was set explicitly (spec.md §8
// property 1).
func (p Paths) TargetFile(t model.Target) (string, error) {
	if t.Kind() == "" {
		return "", &MissingKindError{Target: t.Name}
	}
	if fn := t.Get("filename"); fn != "" {
		return path.Join(p.TargetDir(t), fn), nil
	}

	prefix, ext := p.filenameDefaults(t.Kind())
	if v := t.Get("prefixname"); v != "" {
		prefix = v
	}
	if v := t.Get("extension"); v != "" {
		ext = v
	}
	basename := t.Get("basename")
	if basename == "" {
		basename = t.Name
	}
	return path.Join(p.TargetDir(t), prefix+basename+ext), nil
}

// SourceKind classifies a source file's extension into a toolkind
// (spec.md §4.6); unknown extensions are fatal.
func SourceKind(srcPath string) (string, error) {
	ext := strings.ToLower(path.Ext(srcPath))
	switch ext {
	case ".c":
		return "cc", nil
	case ".cpp", ".cc", ".ixx":
		return "cxx", nil
	case ".m":
		return "mm", nil
	case ".mm", ".mxx":
		return "mxx", nil
	case ".s", ".asm":
		return "as", nil
	default:
		return "", &UnknownSourceExtensionError{Path: srcPath}
	}
}

// ObjectFile maps a source path to its object file path under objectdir,
// using .obj on mingw and .o elsewhere (spec.md §4.6).
func (p Paths) ObjectFile(t model.Target, srcPath string) string {
	ext := ".o"
	if platform.IsMingw(p.Plat) {
		ext = ".obj"
	}
	return path.Join(p.ObjectDir(t), srcPath+ext)
}
