// Package diagnosis implements the --diagnosis flag (spec.md §6 ADD): a
// YAML dump of the full store so a misbehaving project script can be
// debugged by inspecting exactly what it registered, independent of
// whether generation ever reaches the Makefile stage.
package diagnosis

import (
	"gopkg.in/yaml.v3"

	"gocfg/internal/store"
)

// Dump is the serializable snapshot of one store, grouped by kind then
// entity name in declaration order.
type Dump struct {
	Options    []Entity `yaml:"options,omitempty"`
	Toolchains []Entity `yaml:"toolchains,omitempty"`
	Targets    []Entity `yaml:"targets,omitempty"`
}

// Entity is one declared name with its raw, unmerged attribute map.
type Entity struct {
	Name  string            `yaml:"name"`
	Attrs map[string]string `yaml:"attrs"`
}

func entities(db *store.Store, kind store.Kind) []Entity {
	names := db.Names(kind)
	out := make([]Entity, 0, len(names))
	for _, name := range names {
		label := name
		if label == store.RootScope {
			label = "(root)"
		}
		out = append(out, Entity{Name: label, Attrs: db.Attrs(kind, name)})
	}
	return out
}

// Collect builds a Dump of db's current contents.
func Collect(db *store.Store) Dump {
	return Dump{
		Options:    entities(db, store.KindOption),
		Toolchains: entities(db, store.KindToolchain),
		Targets:    entities(db, store.KindTarget),
	}
}

// Render marshals db to its YAML diagnosis form.
func Render(db *store.Store) (string, error) {
	out, err := yaml.Marshal(Collect(db))
	if err != nil {
		return "", err
	}
	return string(out), nil
}
