// Package translate implements the flag translator from spec.md §4.3: a
// pure function mapping an abstract (toolkind, toolname, itemname, value)
// tuple to the concrete compiler-specific flag string. Every idiom
// decision about how a compiler family spells a concept lives here —
// callers never concatenate flags by hand.
package translate

import (
	"fmt"
	"strings"
)

// ToolKind is a role in the compile/link pipeline.
type ToolKind string

const (
	CC  ToolKind = "cc"
	CXX ToolKind = "cxx"
	AS  ToolKind = "as"
	MM  ToolKind = "mm"
	MXX ToolKind = "mxx"
	AR  ToolKind = "ar"
	SH  ToolKind = "sh"
	LD  ToolKind = "ld"
)

// ToolName is a compiler family identifier derived from the selected
// program's basename.
type ToolName string

const (
	GCC     ToolName = "gcc"
	GXX     ToolName = "gxx"
	Clang   ToolName = "clang"
	ClangXX ToolName = "clangxx"
	Ar      ToolName = "ar"
)

// UnknownToolNameError is fatal per spec.md §7.
type UnknownToolNameError struct{ ToolName ToolName }

func (e *UnknownToolNameError) Error() string {
	return fmt.Sprintf("unknown toolname %q", e.ToolName)
}

// UnknownItemNameError is fatal per spec.md §7.
type UnknownItemNameError struct{ ItemName string }

func (e *UnknownItemNameError) Error() string {
	return fmt.Sprintf("unknown itemname %q", e.ItemName)
}

// UnknownLanguageError is the one "unknown value" case that is fatal
// rather than silently skipped (spec.md §4.3, §6 scenario S6): a
// cxx/c++-prefixed languages value that doesn't name a supported standard.
type UnknownLanguageError struct{ Value string }

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown language value %q", e.Value)
}

func isClangFamily(name ToolName) bool {
	return name == Clang || name == ClangXX
}

// Translate maps one (itemname, value) pair to its compiler-specific flag
// fragment. An empty, nil-error result means "silently skip" (spec.md
// §4.3: "Unknown value for a known itemname yields empty string").
func Translate(kind ToolKind, name ToolName, itemname, value string) (string, error) {
	switch name {
	case GCC, GXX, Clang, ClangXX, Ar:
		// supported family
	default:
		return "", &UnknownToolNameError{ToolName: name}
	}

	switch itemname {
	case "defines":
		return "-D" + escapeDefine(value), nil
	case "udefines":
		return "-U" + value, nil
	case "includedirs":
		return "-I" + value, nil
	case "linkdirs":
		return "-L" + value, nil
	case "links", "syslinks":
		return "-l" + value, nil
	case "frameworks":
		return "-framework " + value, nil
	case "frameworkdirs":
		return "-F" + value, nil
	case "rpathdirs":
		return translateRpath(name, value), nil
	case "symbols":
		return translateSymbols(value), nil
	case "strip":
		return translateStrip(name, value), nil
	case "warnings":
		return translateWarnings(value), nil
	case "optimizes":
		return translateOptimizes(name, value), nil
	case "languages":
		return translateLanguages(kind, value)
	default:
		return "", &UnknownItemNameError{ItemName: itemname}
	}
}

// escapeDefine escapes double quotes in a -D value, matching the source's
// special-cased `-D"x=\"y\""` handling (spec.md §9).
func escapeDefine(value string) string {
	return strings.ReplaceAll(value, `"`, `\"`)
}

func translateRpath(name ToolName, value string) string {
	if isClangFamily(name) {
		value = strings.ReplaceAll(value, "$ORIGIN", "@loader_path")
		return fmt.Sprintf("-Xlinker -rpath -Xlinker %s", value)
	}
	value = strings.ReplaceAll(value, "@loader_path", "$$ORIGIN")
	return fmt.Sprintf("-Wl,-rpath='%s'", value)
}

func translateSymbols(value string) string {
	switch value {
	case "debug":
		return "-g"
	case "hidden":
		return "-fvisibility=hidden"
	default:
		return ""
	}
}

func translateStrip(name ToolName, value string) string {
	switch value {
	case "debug":
		return "-Wl,-S"
	case "all":
		if isClangFamily(name) {
			return "-Wl,-x"
		}
		return "-s"
	default:
		return ""
	}
}

func translateWarnings(value string) string {
	switch value {
	case "all", "more", "less":
		return "-Wall"
	case "allextra", "everything":
		return "-Wall -Wextra"
	case "error":
		return "-Werror"
	case "none":
		return "-w"
	default:
		return ""
	}
}

func translateOptimizes(name ToolName, value string) string {
	switch value {
	case "fast":
		return "-O1"
	case "faster":
		return "-O2"
	case "fastest":
		return "-O3"
	case "smallest":
		if isClangFamily(name) {
			return "-Oz"
		}
		return "-Os"
	case "aggressive":
		return "-Ofast"
	case "none":
		return "-O0"
	default:
		return ""
	}
}

var cLanguages = map[string]bool{
	"c89": true, "c90": true, "c94": true, "c99": true, "c11": true, "c17": true,
	"gnu89": true, "gnu90": true, "gnu94": true, "gnu99": true, "gnu11": true, "gnu17": true,
	"ansi": true,
}

var cxxVersions = map[string]bool{
	"98": true, "03": true, "11": true, "14": true, "17": true, "20": true,
}

func translateLanguages(kind ToolKind, value string) (string, error) {
	switch kind {
	case CC, MM:
		if value == "ansi" {
			return "-ansi", nil
		}
		if cLanguages[value] {
			return "-std=" + value, nil
		}
		return "", nil
	case CXX, MXX:
		return translateCxxLanguage(value)
	default:
		return "", nil
	}
}

func translateCxxLanguage(value string) (string, error) {
	var prefix, version string
	switch {
	case strings.HasPrefix(value, "gnu++"):
		prefix, version = "gnu++", strings.TrimPrefix(value, "gnu++")
	case strings.HasPrefix(value, "gnuxx"):
		prefix, version = "gnu++", strings.TrimPrefix(value, "gnuxx")
	case strings.HasPrefix(value, "c++"):
		prefix, version = "c++", strings.TrimPrefix(value, "c++")
	case strings.HasPrefix(value, "cxx"):
		prefix, version = "c++", strings.TrimPrefix(value, "cxx")
	default:
		// Not a recognized c++-family spelling at all: not "unknown
		// value starting with cxx/c++", just an unrelated token.
		return "", nil
	}

	if !cxxVersions[version] {
		return "", &UnknownLanguageError{Value: value}
	}
	return "-std=" + prefix + version, nil
}

// TranslateAll translates every token in values for (kind, name, itemname)
// and concatenates the non-empty results separated by spaces, with a
// leading space, matching spec.md §4.3's batch form.
func TranslateAll(kind ToolKind, name ToolName, itemname string, values []string) (string, error) {
	var b strings.Builder
	for _, v := range values {
		flag, err := Translate(kind, name, itemname, v)
		if err != nil {
			return "", err
		}
		if flag == "" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(flag)
	}
	return b.String(), nil
}

// ComposeArgs translates every itemname in itemnames against lister's
// token list for that item, returning the result pre-split into argv-style
// tokens. Neither the prober nor the Makefile emitter calls it: each
// composes its flags with TranslateAll directly.
func ComposeArgs(kind ToolKind, name ToolName, itemnames []string, lister func(itemname string) []string) ([]string, error) {
	var out []string
	for _, item := range itemnames {
		translated, err := TranslateAll(kind, name, item, lister(item))
		if err != nil {
			return nil, err
		}
		out = append(out, strings.Fields(translated)...)
	}
	return out, nil
}
