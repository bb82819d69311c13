package graph

import (
	"fmt"
	"strings"

	"gocfg/internal/model"
	"gocfg/internal/store"
)

// CycleError is fatal per spec.md §3 ADD invariant: a dependency cycle
// among targets is reported during graph resolution, not left to the
// generated Makefile to discover.
type CycleError struct{ Path []string }

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle: %s", strings.Join(e.Path, " -> "))
}

// UnknownTargetError is fatal: a deps= entry names a target that was
// never declared.
type UnknownTargetError struct{ Name string }

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("unknown target in deps: %q", e.Name)
}

// Resolver walks the target dependency graph declared in db, exposing the
// transitive library closure and {public}-propagated effective attributes
// used to compose a target's compile/link flags (spec.md §4.6).
type Resolver struct {
	DB *store.Store

	libDeps map[string][]string
	visit   map[string]int // 0=unvisited, 1=in-progress, 2=done
}

// NewResolver returns a Resolver bound to db.
func NewResolver(db *store.Store) *Resolver {
	return &Resolver{DB: db, libDeps: map[string][]string{}, visit: map[string]int{}}
}

func (r *Resolver) target(name string) (model.Target, error) {
	if !r.DB.Has(store.KindTarget, name) {
		return model.Target{}, &UnknownTargetError{Name: name}
	}
	return model.NewTarget(r.DB, name), nil
}

// TransitiveLibDeps returns the flattened, deduplicated closure of every
// static/shared target reachable from t's own deps, in discovery order
// with first occurrence winning (spec.md §4.6: "keeping only dependents
// of kind static or shared ... first occurrence nearest the root
// survives"). A cycle anywhere in the reachable deps subgraph is fatal,
// even through a non-library target.
func (r *Resolver) TransitiveLibDeps(t model.Target) ([]string, error) {
	if cached, ok := r.libDeps[t.Name]; ok {
		return cached, nil
	}

	var order []string
	seen := map[string]bool{}
	path := []string{t.Name}
	r.visit = map[string]int{t.Name: 1}

	var walk func(name string) error
	walk = func(name string) error {
		switch r.visit[name] {
		case 1:
			return &CycleError{Path: append(append([]string{}, path...), name)}
		case 2:
			return nil
		}
		r.visit[name] = 1
		path = append(path, name)

		dt, err := r.target(name)
		if err != nil {
			return err
		}
		for _, depName := range dt.Deps() {
			dep, err := r.target(depName)
			if err != nil {
				return err
			}
			if dep.Kind().IsLibrary() && !seen[depName] {
				seen[depName] = true
				order = append(order, depName)
			}
			if err := walk(depName); err != nil {
				return err
			}
		}

		path = path[:len(path)-1]
		r.visit[name] = 2
		return nil
	}

	for _, depName := range t.Deps() {
		dep, err := r.target(depName)
		if err != nil {
			return nil, err
		}
		if dep.Kind().IsLibrary() && !seen[depName] {
			seen[depName] = true
			order = append(order, depName)
		}
		if err := walk(depName); err != nil {
			return nil, err
		}
	}

	r.libDeps[t.Name] = order
	return order, nil
}

// EffectiveList returns t's own token list for attr concatenated with the
// "<attr>_public" list of every transitively-linked static/shared
// dependency, in TransitiveLibDeps order (spec.md §3, §4.6). attr must be
// one of model.PublicAttrs' keys for the dependency contribution to be
// meaningful; non-public-capable attrs simply return t's own list.
func (r *Resolver) EffectiveList(t model.Target, attr string) ([]string, error) {
	out := append([]string{}, t.List(attr)...)
	if !model.PublicAttrs[attr] {
		return out, nil
	}

	libs, err := r.TransitiveLibDeps(t)
	if err != nil {
		return nil, err
	}
	for _, libName := range libs {
		lib := model.NewTarget(r.DB, libName)
		out = append(out, lib.List(model.PublicKey(attr))...)
	}
	return out, nil
}
