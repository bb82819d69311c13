package platform

import "testing"

func TestPredicatesMatchResolvedInfo(t *testing.T) {
	p := Predicates{Info: Info{Plat: Linux, Arch: "x86_64", Mode: "debug", Toolchain: "gcc"}}

	if !p.IsPlat(Linux) || p.IsPlat(Macosx) {
		t.Fatalf("IsPlat mismatched resolved plat")
	}
	if !p.IsArch("x86_64") || p.IsArch("arm64") {
		t.Fatalf("IsArch mismatched resolved arch")
	}
	if !p.IsMode("debug") || p.IsMode("release") {
		t.Fatalf("IsMode mismatched resolved mode")
	}
	if !p.IsToolchain("gcc") || p.IsToolchain("clang") {
		t.Fatalf("IsToolchain mismatched resolved toolchain")
	}
}

func TestIsMingw(t *testing.T) {
	if !IsMingw(Mingw) {
		t.Fatalf("expected %q to be mingw", Mingw)
	}
	if IsMingw(Linux) {
		t.Fatalf("did not expect %q to be mingw", Linux)
	}
}
