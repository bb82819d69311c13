// Package platform resolves the host plat/arch pair and the platform
// predicates (is_plat, is_arch, is_host, ...) exposed to scripts.
package platform

import "runtime"

// Platform names used throughout flag translation and path defaults.
const (
	Macosx  = "macosx"
	Linux   = "linux"
	Windows = "windows"
	Mingw   = "mingw"
)

// Info is the resolved host/target platform, fixed for the lifetime of a
// single configure run.
type Info struct {
	Plat      string
	Arch      string
	Mode      string // "release" or "debug"
	Toolchain string // resolved toolchain name, set after detection
}

// HostDefault returns the plat/arch implied by the running process, before
// any --plat/--arch override is applied.
func HostDefault() (plat, arch string) {
	switch runtime.GOOS {
	case "darwin":
		plat = Macosx
	case "windows":
		plat = Windows
	default:
		plat = Linux
	}

	switch runtime.GOARCH {
	case "amd64":
		arch = "x86_64"
	case "386":
		arch = "i386"
	case "arm64":
		arch = "arm64"
	default:
		arch = runtime.GOARCH
	}
	return plat, arch
}

// IsMingw reports whether plat denotes a mingw cross-toolchain target,
// which several path/extension defaults key off (spec.md §4.6).
func IsMingw(plat string) bool {
	return plat == Mingw
}

// Predicates bundles the is_* script predicates over a resolved Info.
type Predicates struct{ Info Info }

func (p Predicates) IsPlat(v string) bool      { return p.Info.Plat == v }
func (p Predicates) IsArch(v string) bool      { return p.Info.Arch == v }
func (p Predicates) IsMode(v string) bool      { return p.Info.Mode == v }
func (p Predicates) IsToolchain(v string) bool { return p.Info.Toolchain == v }
func (p Predicates) IsHost(plat string) bool {
	hostPlat, _ := HostDefault()
	return hostPlat == plat
}
