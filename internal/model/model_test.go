package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gocfg/internal/store"
)

func TestOptionNeedsProbing(t *testing.T) {
	db := store.New()
	opt := NewOption(db, "pthread")
	assert.False(t, opt.NeedsProbing(), "no probing inputs, no default => nothing to probe")

	opt.Append("clinks", "ignored")
	assert.False(t, opt.NeedsProbing())

	opt.Append("links", "pthread")
	assert.True(t, opt.NeedsProbing())

	opt.Set("default", "y")
	assert.False(t, opt.NeedsProbing(), "non-empty default always skips probing")
}

func TestOptionHasProbingInputsPerKind(t *testing.T) {
	db := store.New()
	opt := NewOption(db, "foo")
	assert.False(t, opt.HasProbingInputs("c"))
	opt.Append("cfuncs", "foo")
	assert.True(t, opt.HasProbingInputs("c"))
	assert.False(t, opt.HasProbingInputs("cxx"))
}

func TestTargetAddTokensPublicSplit(t *testing.T) {
	db := store.New()
	tgt := NewTarget(db, "app")
	tgt.AddTokens("defines", []string{"A", "B"})
	assert.Equal(t, []string{"A", "B"}, tgt.List("defines"))
	assert.Empty(t, tgt.List("defines_public"))
}

func TestTargetAddTokensWithPublicMarker(t *testing.T) {
	db := store.New()
	tgt := NewTarget(db, "lib")
	tgt.AddTokens("defines", []string{"A", "B", PublicMarker, "C"})
	assert.Equal(t, []string{"A", "B", "C"}, tgt.List("defines"))
	assert.Equal(t, []string{"A", "B", "C"}, tgt.List("defines_public"))
}

func TestTargetAddTokensPublicIgnoredForNonPublicAttr(t *testing.T) {
	db := store.New()
	tgt := NewTarget(db, "lib")
	tgt.AddTokens("cflags", []string{"-O2", PublicMarker, "-Wall"})
	assert.Equal(t, []string{"-O2", "-Wall"}, tgt.List("cflags"))
	assert.Empty(t, tgt.List("cflags_public"))
}

func TestParseFileEntries(t *testing.T) {
	entries := ParseFileEntries([]string{"src/a.h:src:include:a.h", "b.h:::"})
	assert.Len(t, entries, 2)
	assert.Equal(t, FileEntry{Src: "src/a.h", Root: "src", Prefix: "include", Name: "a.h"}, entries[0])
	assert.Equal(t, FileEntry{Src: "b.h", Root: "", Prefix: "", Name: ""}, entries[1])
}

func TestToolchainCandidates(t *testing.T) {
	db := store.New()
	tc := NewToolchain(db, "gcc")
	tc.Set("toolset_cc", "gcc-13:gcc-12")
	tc.Set("toolset_cc_1", "gcc")
	assert.Equal(t, []string{"gcc-13", "gcc-12", "gcc"}, tc.Candidates("cc"))
}

func TestToolchainComplete(t *testing.T) {
	db := store.New()
	tc := NewToolchain(db, "gcc")
	assert.False(t, tc.Complete())
	for _, k := range ToolsetKinds {
		tc.SetToolset(k, "tool-"+k)
	}
	assert.True(t, tc.Complete())
}
