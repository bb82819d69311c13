package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocfg/internal/model"
	"gocfg/internal/store"
)

func declareTarget(db *store.Store, name string, kind model.TargetKind, deps ...string) model.Target {
	tgt := model.NewTarget(db, name)
	tgt.SetKind(kind)
	for _, d := range deps {
		tgt.Append("deps", d)
	}
	return tgt
}

func TestTransitiveLibDepsSkipsNonLibraryTargets(t *testing.T) {
	db := store.New()
	declareTarget(db, "core", model.KindStatic)
	declareTarget(db, "helper", model.KindBinary, "core") // a binary dep never links as a lib itself
	app := declareTarget(db, "app", model.KindBinary, "helper")

	r := NewResolver(db)
	libs, err := r.TransitiveLibDeps(app)
	require.NoError(t, err)
	assert.Equal(t, []string{"core"}, libs)
}

func TestTransitiveLibDepsDedupFirstOccurrenceWins(t *testing.T) {
	db := store.New()
	declareTarget(db, "base", model.KindStatic)
	declareTarget(db, "b", model.KindStatic, "base")
	declareTarget(db, "c", model.KindStatic, "base")
	app := declareTarget(db, "app", model.KindBinary, "b", "c")

	r := NewResolver(db)
	libs, err := r.TransitiveLibDeps(app)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "base", "c"}, libs)
}

func TestTransitiveLibDepsDetectsCycle(t *testing.T) {
	db := store.New()
	declareTarget(db, "a", model.KindStatic, "b")
	declareTarget(db, "b", model.KindStatic, "a")

	r := NewResolver(db)
	_, err := r.TransitiveLibDeps(model.NewTarget(db, "a"))
	require.Error(t, err)
	var cycle *CycleError
	assert.ErrorAs(t, err, &cycle)
}

func TestTransitiveLibDepsUnknownTargetFails(t *testing.T) {
	db := store.New()
	app := declareTarget(db, "app", model.KindBinary, "missing")

	r := NewResolver(db)
	_, err := r.TransitiveLibDeps(app)
	require.Error(t, err)
	var unknown *UnknownTargetError
	assert.ErrorAs(t, err, &unknown)
}

func TestEffectiveListInheritsPublicAttrsFromLibDeps(t *testing.T) {
	db := store.New()
	core := model.NewTarget(db, "core")
	core.SetKind(model.KindStatic)
	core.AddTokens("includedirs", []string{"core/include", model.PublicMarker})

	app := model.NewTarget(db, "app")
	app.SetKind(model.KindBinary)
	app.Append("deps", "core")
	app.AddTokens("includedirs", []string{"app/include"})

	r := NewResolver(db)
	list, err := r.EffectiveList(app, "includedirs")
	require.NoError(t, err)
	assert.Equal(t, []string{"app/include", "core/include"}, list)
}

func TestEffectiveListNonPublicAttrIgnoresDeps(t *testing.T) {
	db := store.New()
	core := model.NewTarget(db, "core")
	core.SetKind(model.KindStatic)
	core.Append("cflags", "-DCORE")

	app := model.NewTarget(db, "app")
	app.SetKind(model.KindBinary)
	app.Append("deps", "core")
	app.Append("cflags", "-DAPP")

	r := NewResolver(db)
	list, err := r.EffectiveList(app, "cflags")
	require.NoError(t, err)
	assert.Equal(t, []string{"-DAPP"}, list)
}

func TestTransitiveLibDepsCachesPerTarget(t *testing.T) {
	db := store.New()
	declareTarget(db, "core", model.KindStatic)
	app := declareTarget(db, "app", model.KindBinary, "core")

	r := NewResolver(db)
	first, err := r.TransitiveLibDeps(app)
	require.NoError(t, err)
	core := model.NewTarget(db, "core")
	core.Append("deps", "ghost-not-declared")

	second, err := r.TransitiveLibDeps(app)
	require.NoError(t, err)
	assert.Equal(t, first, second, "cached result must not re-walk after mutation")
}
