package toolchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocfg/internal/model"
	"gocfg/internal/store"
)

type fakeProber struct {
	ok         map[string]bool
	callCounts map[string]int
}

func newFakeProber(ok map[string]bool) *fakeProber {
	return &fakeProber{ok: ok, callCounts: make(map[string]int)}
}

func (f *fakeProber) Probe(ctx context.Context, toolsetKind, program string) bool {
	f.callCounts[program]++
	return f.ok[program]
}

func TestDetectSucceedsWhenAllKindsResolve(t *testing.T) {
	db := store.New()
	db.Declare(store.KindToolchain, "gcc")
	tc := model.NewToolchain(db, "gcc")
	for _, k := range model.ToolsetKinds {
		tc.Set("toolset_"+k, "gcc-tool-"+k)
	}

	ok := make(map[string]bool)
	for _, k := range model.ToolsetKinds {
		ok["gcc-tool-"+k] = true
	}
	prober := newFakeProber(ok)

	d := NewDetector(db, prober)
	name, err := d.Detect(context.Background(), []string{"gcc"})
	require.NoError(t, err)
	assert.Equal(t, "gcc", name)
	assert.True(t, tc.Complete())
}

func TestDetectFailsWhenOneKindHasNoWorkingCandidate(t *testing.T) {
	db := store.New()
	db.Declare(store.KindToolchain, "gcc")
	tc := model.NewToolchain(db, "gcc")
	for _, k := range model.ToolsetKinds {
		tc.Set("toolset_"+k, "tool-"+k)
	}

	ok := map[string]bool{}
	for _, k := range model.ToolsetKinds {
		if k == "ar" {
			continue // ar never probes OK
		}
		ok["tool-"+k] = true
	}
	prober := newFakeProber(ok)

	d := NewDetector(db, prober)
	_, err := d.Detect(context.Background(), []string{"gcc"})
	require.Error(t, err)
	var target *ErrNoToolchain
	assert.ErrorAs(t, err, &target)
}

func TestDetectTriesAlternatesInOrder(t *testing.T) {
	db := store.New()
	db.Declare(store.KindToolchain, "gcc")
	tc := model.NewToolchain(db, "gcc")
	for _, k := range model.ToolsetKinds {
		if k == "cc" {
			tc.Set("toolset_cc", "gcc-13")
			tc.Set("toolset_cc_1", "gcc-12")
			continue
		}
		tc.Set("toolset_"+k, "tool-"+k)
	}

	ok := map[string]bool{"gcc-12": true}
	for _, k := range model.ToolsetKinds {
		if k != "cc" {
			ok["tool-"+k] = true
		}
	}
	prober := newFakeProber(ok)

	d := NewDetector(db, prober)
	name, err := d.Detect(context.Background(), []string{"gcc"})
	require.NoError(t, err)
	assert.Equal(t, "gcc", name)
	assert.Equal(t, "gcc-12", tc.Toolset("cc"))
}

func TestDetectFallsThroughCandidateOrder(t *testing.T) {
	db := store.New()
	db.Declare(store.KindToolchain, "clang")
	db.Declare(store.KindToolchain, "gcc")

	clang := model.NewToolchain(db, "clang")
	for _, k := range model.ToolsetKinds {
		clang.Set("toolset_"+k, "clang-tool-"+k)
	}
	gcc := model.NewToolchain(db, "gcc")
	for _, k := range model.ToolsetKinds {
		gcc.Set("toolset_"+k, "gcc-tool-"+k)
	}

	ok := map[string]bool{}
	for _, k := range model.ToolsetKinds {
		ok["gcc-tool-"+k] = true // clang tools all fail
	}
	prober := newFakeProber(ok)

	d := NewDetector(db, prober)
	name, err := d.Detect(context.Background(), []string{"clang", "gcc"})
	require.NoError(t, err)
	assert.Equal(t, "gcc", name)
}

func TestDetectCachesProbePerProgram(t *testing.T) {
	db := store.New()
	db.Declare(store.KindToolchain, "gcc")
	tc := model.NewToolchain(db, "gcc")
	for _, k := range model.ToolsetKinds {
		if k == "ar" {
			tc.Set("toolset_ar", "ar-tool")
			continue
		}
		// Every non-archiver kind resolves to the SAME underlying
		// program name and must only be probed once.
		tc.Set("toolset_"+k, "shared-tool")
	}

	prober := newFakeProber(map[string]bool{"shared-tool": true, "ar-tool": true})
	d := NewDetector(db, prober)
	_, err := d.Detect(context.Background(), []string{"gcc"})
	require.NoError(t, err)
	assert.Equal(t, 1, prober.callCounts["shared-tool"])
}

func TestDetectSkipsUndeclaredToolchains(t *testing.T) {
	db := store.New()
	d := NewDetector(db, newFakeProber(nil))
	_, err := d.Detect(context.Background(), []string{"nonexistent"})
	require.Error(t, err)
}
