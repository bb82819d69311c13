// Package toolchain implements the toolchain detector from spec.md §4.5:
// it enumerates candidate programs per toolset kind, verifies each via a
// cheap probe, and collapses the winning candidate into the toolchain's
// singleton toolset.
package toolchain

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/singleflight"

	"gocfg/internal/model"
	"gocfg/internal/osutil"
	"gocfg/internal/store"
)

func writeEmptyFile(path string) error {
	return os.WriteFile(path, nil, 0o644)
}

// Prober probes one candidate program for a toolset kind, returning true
// if it's usable. Production code uses DefaultProber; tests inject fakes.
type Prober interface {
	Probe(ctx context.Context, toolsetKind, program string) bool
}

// DefaultProber implements spec.md §4.5's per-toolname probe rules:
// gcc/gxx/clang/clangxx are probed with "--version" (exit 0 required);
// ar is probed by archiving an empty object file.
type DefaultProber struct {
	WorkDir string
}

func (p DefaultProber) Probe(ctx context.Context, toolsetKind, program string) bool {
	if program == "" {
		return false
	}
	if toolsetKind == "ar" {
		return probeAr(ctx, p.WorkDir, program)
	}
	result, err := osutil.Run(ctx, p.WorkDir, program, "--version")
	if err != nil {
		return false
	}
	return result.ExitCode == 0
}

func probeAr(ctx context.Context, dir, program string) bool {
	obj := osutil.TempPath("gocfg-ar-probe", ".o")
	lib := osutil.TempPath("gocfg-ar-probe", ".a")
	defer osutil.RemoveAllQuiet(obj, lib)

	if err := writeEmptyFile(obj); err != nil {
		return false
	}
	result, err := osutil.Run(ctx, dir, program, "-cr", lib, obj)
	if err != nil {
		return false
	}
	return result.ExitCode == 0
}

// Detector runs the toolchain detection phase.
type Detector struct {
	DB     *store.Store
	Prober Prober

	group singleflight.Group
	cache map[string]bool
}

// NewDetector returns a Detector backed by db, probing candidates with p.
func NewDetector(db *store.Store, p Prober) *Detector {
	return &Detector{DB: db, Prober: p, cache: make(map[string]bool)}
}

// ErrNoToolchain is fatal per spec.md §7 ("toolchain not found").
type ErrNoToolchain struct{ Tried []string }

func (e *ErrNoToolchain) Error() string {
	return fmt.Sprintf("toolchain not found (tried: %v)", e.Tried)
}

// Detect tries each toolchain name in candidateOrder, in order, and
// returns the name of the first one whose every required toolset kind
// resolves to a working program. On success, each resolved toolset_<k>
// is collapsed to the single winning program.
func (d *Detector) Detect(ctx context.Context, candidateOrder []string) (string, error) {
	var tried []string
	for _, name := range candidateOrder {
		if !d.DB.Has(store.KindToolchain, name) {
			continue
		}
		tried = append(tried, name)
		if d.detectOne(ctx, name) {
			return name, nil
		}
	}
	return "", &ErrNoToolchain{Tried: tried}
}

// detectOne attempts to resolve every toolset kind for one toolchain. The
// store is written only when every kind resolves; on failure the
// toolchain's toolset_* values are left untouched.
func (d *Detector) detectOne(ctx context.Context, name string) bool {
	tc := model.NewToolchain(d.DB, name)
	resolved := make(map[string]string, len(model.ToolsetKinds))

	for _, kind := range model.ToolsetKinds {
		program, ok := d.resolveKind(ctx, tc, kind)
		if !ok {
			return false
		}
		resolved[kind] = program
	}

	for kind, program := range resolved {
		tc.SetToolset(kind, program)
	}
	return true
}

func (d *Detector) resolveKind(ctx context.Context, tc model.Toolchain, kind string) (string, bool) {
	for _, candidate := range tc.Candidates(kind) {
		if d.probeCached(ctx, kind, candidate) {
			return candidate, true
		}
	}
	return "", false
}

// probeCached memoizes probe results per program name in d.cache, with
// singleflight collapsing duplicate in-flight probes, so a program that
// backs multiple toolset kinds (common for cc/as/mm all resolving to the
// same gcc binary) is only ever probed once (spec.md §4.5: "result is
// cached per toolname"). The archiver probe uses a different check (a
// link test, not "--version"), so "ar" candidates get their own cache
// namespace even if their name collides with a compiler candidate's.
func (d *Detector) probeCached(ctx context.Context, kind, program string) bool {
	cacheKey := program
	if kind == "ar" {
		cacheKey = "ar:" + program
	}
	if ok, hit := d.cache[cacheKey]; hit {
		return ok
	}

	v, _, _ := d.group.Do(cacheKey, func() (interface{}, error) {
		ok := d.Prober.Probe(ctx, kind, program)
		return ok, nil
	})
	ok := v.(bool)
	d.cache[cacheKey] = ok
	return ok
}
