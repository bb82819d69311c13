package toolchain

import (
	"os"

	"gocfg/internal/model"
	"gocfg/internal/store"
)

// candidateSet is the per-toolset-kind candidate program list for one
// predeclared toolchain.
type candidateSet map[string][]string

// predeclaredToolchains enumerates the toolchains spec.md §4.5 requires at
// minimum, each with its ordered candidate list per toolset kind.
var predeclaredToolchains = map[string]candidateSet{
	"clang": {
		"cc": {"clang"}, "cxx": {"clang++"}, "as": {"clang"},
		"mm": {"clang"}, "mxx": {"clang++"},
		"ld": {"clang++"}, "sh": {"clang++"}, "ar": {"ar"},
	},
	"gcc": {
		"cc": {"gcc"}, "cxx": {"g++"}, "as": {"gcc"},
		"mm": {"gcc"}, "mxx": {"g++"},
		"ld": {"g++"}, "sh": {"g++"}, "ar": {"ar"},
	},
	"envs": {
		"cc": {envOr("CC")}, "cxx": {envOr("CXX")}, "as": {envOr("AS")},
		"mm": {envOr("CC")}, "mxx": {envOr("CXX")},
		"ld": {envOr("LD")}, "sh": {envOr("LD")}, "ar": {envOr("AR")},
	},
	"x86_64_w64_mingw32": {
		"cc": {"x86_64-w64-mingw32-gcc"}, "cxx": {"x86_64-w64-mingw32-g++"},
		"as": {"x86_64-w64-mingw32-gcc"}, "mm": {"x86_64-w64-mingw32-gcc"},
		"mxx": {"x86_64-w64-mingw32-g++"}, "ld": {"x86_64-w64-mingw32-g++"},
		"sh": {"x86_64-w64-mingw32-g++"}, "ar": {"x86_64-w64-mingw32-ar"},
	},
	"i686_w64_mingw32": {
		"cc": {"i686-w64-mingw32-gcc"}, "cxx": {"i686-w64-mingw32-g++"},
		"as": {"i686-w64-mingw32-gcc"}, "mm": {"i686-w64-mingw32-gcc"},
		"mxx": {"i686-w64-mingw32-g++"}, "ld": {"i686-w64-mingw32-g++"},
		"sh": {"i686-w64-mingw32-g++"}, "ar": {"i686-w64-mingw32-ar"},
	},
}

func envOr(name string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return ""
}

// RegisterPredeclared seeds db with the minimum set of toolchains
// spec.md §4.5 requires, so that user scripts never need to declare the
// common cases themselves.
func RegisterPredeclared(db *store.Store) {
	for name, set := range predeclaredToolchains {
		db.Declare(store.KindToolchain, name)
		tc := model.NewToolchain(db, name)
		for kind, candidates := range set {
			for _, c := range candidates {
				if c == "" {
					continue
				}
				tc.Set("toolset_"+kind, candidates[0])
				break
			}
		}
	}
}

// DefaultOrder returns the platform-defaulted order candidate toolchains
// are tried in (spec.md §4.5): macOS prefers clang then gcc; elsewhere gcc
// then clang; the mingw platform forces the mingw-prefixed toolchain by
// arch.
func DefaultOrder(plat, arch string) []string {
	switch plat {
	case "mingw":
		if arch == "i386" || arch == "i686" {
			return []string{"i686_w64_mingw32"}
		}
		return []string{"x86_64_w64_mingw32"}
	case "macosx":
		return []string{"clang", "gcc", "envs"}
	default:
		return []string{"gcc", "clang", "envs"}
	}
}
