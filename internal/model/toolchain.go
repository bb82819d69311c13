package model

import (
	"strconv"
	"strings"

	"gocfg/internal/store"
)

// Toolchain is a named view over a Toolchain entity.
type Toolchain struct {
	Name string
	db   *store.Store
}

func NewToolchain(db *store.Store, name string) Toolchain {
	return Toolchain{Name: name, db: db}
}

func (t Toolchain) Get(key string) string {
	v, _ := t.db.Get(store.KindToolchain, t.Name, key)
	return v
}

func (t Toolchain) Set(key, value string) {
	t.db.Set(store.KindToolchain, t.Name, key, value)
}

// Candidates returns the ordered sequence of candidate program names for
// toolset kind k: the primary "toolset_<k>" followed by any indexed
// alternates "toolset_<k>_1", "toolset_<k>_2", ... Primary and alternate
// values may themselves be space- or colon-separated per spec.md §3
// ("treat as an ordered sequence of candidate program names").
func (t Toolchain) Candidates(toolsetKind string) []string {
	var out []string
	primary := t.Get("toolset_" + toolsetKind)
	out = append(out, splitCandidateList(primary)...)

	for i := 1; ; i++ {
		key := "toolset_" + toolsetKind + "_" + strconv.Itoa(i)
		v, ok := t.db.Get(store.KindToolchain, t.Name, key)
		if !ok || v == "" {
			break
		}
		out = append(out, splitCandidateList(v)...)
	}
	return out
}

func splitCandidateList(v string) []string {
	v = strings.ReplaceAll(v, ":", " ")
	return strings.Fields(v)
}

// Toolset returns the single program collapsed into toolset_<k> by
// detection, or "" if detection has not resolved this kind yet.
func (t Toolchain) Toolset(toolsetKind string) string {
	return t.Get("toolset_" + toolsetKind)
}

// SetToolset collapses toolset kind k to the single program that passed
// probing (spec.md §3: "during detection, each toolset_k is collapsed
// from a candidate sequence to the single program that passed probing").
func (t Toolchain) SetToolset(toolsetKind, program string) {
	t.Set("toolset_"+toolsetKind, program)
}

// Complete reports whether every required toolset kind has been resolved
// to a single program (spec.md §4.5: "a toolchain succeeds iff every
// required kind has at least one candidate that probes OK").
func (t Toolchain) Complete() bool {
	for _, k := range ToolsetKinds {
		if t.Toolset(k) == "" {
			return false
		}
	}
	return true
}
