package model

import (
	"gocfg/internal/store"
)

// Option is a named view over an Option entity in the store.
type Option struct {
	Name string
	db   *store.Store
}

func NewOption(db *store.Store, name string) Option {
	return Option{Name: name, db: db}
}

func (o Option) Get(key string) string {
	v, _ := o.db.Get(store.KindOption, o.Name, key)
	return v
}

func (o Option) List(key string) []string {
	return o.db.List(store.KindOption, o.Name, key)
}

func (o Option) Set(key, value string) {
	o.db.Set(store.KindOption, o.Name, key, value)
}

func (o Option) Append(key, token string) {
	o.db.Append(store.KindOption, o.Name, key, token)
}

// AppendSnippet concatenates raw multi-line C/C++ source onto a
// <kind>snippets attribute. Unlike Append, this joins with a newline and
// is not whitespace-tokenized on read: snippet text is arbitrary source,
// not a flag-like token list.
func (o Option) AppendSnippet(kind, text string) {
	existing := o.Get(kind + "snippets")
	if existing == "" {
		o.Set(kind+"snippets", text)
		return
	}
	o.Set(kind+"snippets", existing+"\n"+text)
}

func (o Option) Description() string { return o.Get("description") }
func (o Option) Default() string     { return o.Get("default") }
func (o Option) ShowMenu() Tristate   { return ParseTristate(o.Get("showmenu")) }

// Value returns the resolved probe result: "true"/"false" once the
// detection phase has run, or the empty string beforehand.
func (o Option) Value() string { return o.Get("value") }

func (o Option) SetValue(v bool) {
	if v {
		o.Set("value", "true")
	} else {
		o.Set("value", "false")
	}
}

// ValueBool reports the resolved boolean, defaulting to false if unset.
func (o Option) ValueBool() bool { return o.Value() == "true" }

// NeedsProbing implements spec.md §8 property 2 / §9's disambiguation of
// "_option_need_checking": probe iff default is empty AND at least one
// probing input is non-empty: a C or C++ funcs/includes/types/snippets
// attribute, links, or syslinks.
func (o Option) NeedsProbing() bool {
	if o.Default() != "" {
		return false
	}
	for _, k := range []string{"c", "cxx"} {
		if o.HasProbingInputs(k) {
			return true
		}
	}
	return len(o.List("links")) > 0 || len(o.List("syslinks")) > 0
}

// HasProbingInputs implements spec.md §8 property 3 for one kind ("c" or
// "cxx"): true if any of <k>funcs/<k>includes/<k>types/<k>snippets is
// non-empty.
func (o Option) HasProbingInputs(kind string) bool {
	for _, suffix := range []string{"funcs", "includes", "types"} {
		if len(o.List(kind+suffix)) > 0 {
			return true
		}
	}
	return o.Get(kind+"snippets") != ""
}
