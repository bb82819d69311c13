package model

import (
	"strings"

	"gocfg/internal/store"
)

// Target is a named view over a Target entity.
type Target struct {
	Name string
	db   *store.Store
}

func NewTarget(db *store.Store, name string) Target {
	return Target{Name: name, db: db}
}

func (t Target) Get(key string) string {
	v, _ := t.db.Get(store.KindTarget, t.Name, key)
	return v
}

func (t Target) List(key string) []string {
	return t.db.List(store.KindTarget, t.Name, key)
}

func (t Target) Set(key, value string) {
	t.db.Set(store.KindTarget, t.Name, key, value)
}

func (t Target) Append(key, token string) {
	t.db.Append(store.KindTarget, t.Name, key, token)
}

// AddTokens implements the {public} split from spec.md §3 invariant 5 /
// §8 property 5 for one of the seven dual-visibility attributes. A call
// with no "{public}" marker anywhere in args leaves every token
// private-only. A call with the marker present copies every non-marker
// token (both before and after the marker) into both the private attr and
// its "<attr>_public" companion — e.g. add_defines(A, B, {public}, C)
// yields defines="A B C" and defines_public="A B C".
func (t Target) AddTokens(attr string, args []string) {
	public := false
	for _, a := range args {
		if a == PublicMarker {
			public = true
			break
		}
	}

	for _, a := range args {
		if a == PublicMarker {
			continue
		}
		t.Append(attr, a)
		if public && PublicAttrs[attr] {
			t.Append(PublicKey(attr), a)
		}
	}
}

func (t Target) Kind() TargetKind { return TargetKind(t.Get("kind")) }
func (t Target) SetKind(k TargetKind) {
	t.Set("kind", string(k))
}

func (t Target) Default() (enabled bool, explicit bool) {
	v := t.Get("default")
	if v == "" {
		return true, false
	}
	return v == "true", true
}

func (t Target) Deps() []string    { return t.List("deps") }
func (t Target) Options() []string { return t.List("options") }
func (t Target) Files() []string   { return t.List("files") }

func (t Target) ConfigVars() []string { return t.List("configvars") }
func (t Target) ConfigVar(name string) string {
	return t.Get("configvar_" + name)
}

// FileEntry is one "srcpath:rootdir:prefixdir:filename" token from
// headerfiles/installfiles (spec.md §3, §4.8).
type FileEntry struct {
	Src    string
	Root   string
	Prefix string
	Name   string
}

// ParseFileEntries decodes a headerfiles/installfiles attribute.
func ParseFileEntries(tokens []string) []FileEntry {
	out := make([]FileEntry, 0, len(tokens))
	for _, tok := range tokens {
		parts := strings.SplitN(tok, ":", 4)
		for len(parts) < 4 {
			parts = append(parts, "")
		}
		out = append(out, FileEntry{Src: parts[0], Root: parts[1], Prefix: parts[2], Name: parts[3]})
	}
	return out
}

func (t Target) HeaderFiles() []FileEntry   { return ParseFileEntries(t.List("headerfiles")) }
func (t Target) InstallFiles() []FileEntry  { return ParseFileEntries(t.List("installfiles")) }
func (t Target) ConfigFiles() []string      { return t.List("configfiles") }
