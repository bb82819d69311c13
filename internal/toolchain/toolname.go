package toolchain

import (
	"path/filepath"
	"strings"

	"gocfg/internal/translate"
)

// ClassifyToolName derives the compiler-family ToolName from a program's
// basename, stripping cross-compile target triples and version suffixes
// (e.g. "x86_64-w64-mingw32-gcc-13" -> GCC, "clang++-18" -> ClangXX).
func ClassifyToolName(program string) (translate.ToolName, bool) {
	base := filepath.Base(program)

	switch {
	case hasCoreName(base, "clang++") || hasCoreName(base, "clangxx"):
		return translate.ClangXX, true
	case hasCoreName(base, "clang"):
		return translate.Clang, true
	case hasCoreName(base, "g++") || hasCoreName(base, "gxx"):
		return translate.GXX, true
	case hasCoreName(base, "gcc") || hasCoreName(base, "cc"):
		return translate.GCC, true
	case hasCoreName(base, "ar") || hasCoreName(base, "gcc-ar"):
		return translate.Ar, true
	default:
		return "", false
	}
}

// hasCoreName reports whether base names a program whose core identifier
// (ignoring a leading target-triple prefix and a trailing "-<version>"
// suffix) equals want, e.g. "x86_64-w64-mingw32-gcc-13" has core "gcc".
func hasCoreName(base, want string) bool {
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == want {
		return true
	}
	segments := strings.Split(stem, "-")
	for i, seg := range segments {
		if seg != want {
			continue
		}
		// Accept either a leading prefix (triple-gcc) or a trailing
		// numeric version suffix (gcc-13), or both.
		if i == len(segments)-1 {
			return true
		}
		if i == len(segments)-2 && isNumeric(segments[i+1]) {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
