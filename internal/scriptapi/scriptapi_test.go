package scriptapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocfg/internal/model"
	"gocfg/internal/platform"
	"gocfg/internal/scope"
	"gocfg/internal/store"
)

func newEngine() (*Engine, *store.Store, *scope.Scope) {
	db := store.New()
	sc := scope.New("/proj")
	pred := platform.Predicates{Info: platform.Info{Plat: "linux", Arch: "x86_64", Mode: "release", Toolchain: "gcc"}}
	return New(db, sc, pred), db, sc
}

func TestOptionOneLineFormAutoCloses(t *testing.T) {
	e, db, _ := newEngine()
	e.Option("pthread", "POSIX threads", "")
	e.AddCFuncs("pthread_create") // should be a no-op: scope already closed

	opt := model.NewOption(db, "pthread")
	assert.Equal(t, "POSIX threads", opt.Description())
	assert.Empty(t, opt.List("cfuncs"))
}

func TestOptionBlockFormStaysOpenUntilEnd(t *testing.T) {
	e, db, _ := newEngine()
	e.Option("pthread")
	e.AddCFuncs("pthread_create")
	e.AddCIncludes("pthread.h")
	e.OptionEnd()

	opt := model.NewOption(db, "pthread")
	assert.Equal(t, []string{"pthread_create"}, opt.List("cfuncs"))
	assert.Equal(t, []string{"pthread.h"}, opt.List("cincludes"))
}

func TestOptionRegistrationIgnoredOutsideLoadPhase(t *testing.T) {
	e, db, sc := newEngine()
	sc.SetPhase(scope.PhaseTargets)
	e.Option("pthread")
	e.AddCFuncs("pthread_create")

	require.False(t, db.Has(store.KindOption, "pthread"))
}

func TestTargetRegistrationAndTokens(t *testing.T) {
	e, db, sc := newEngine()
	sc.SetPhase(scope.PhaseTargets)

	e.Target("app")
	e.SetKind("binary")
	e.AddFiles("main.c")
	e.AddIncludeDirs("include", "{public}")
	e.TargetEnd()

	tgt := model.NewTarget(db, "app")
	assert.Equal(t, model.KindBinary, tgt.Kind())
	assert.Equal(t, []string{"main.c"}, tgt.Files())
	assert.Equal(t, []string{"include"}, tgt.List("includedirs"))
	assert.Equal(t, []string{"include"}, tgt.List("includedirs_public"))
}

func TestSetDefaultResolvesCurrentScope(t *testing.T) {
	e, db, sc := newEngine()

	e.Option("foo")
	e.SetDefault("y")
	e.OptionEnd()
	assert.Equal(t, "y", model.NewOption(db, "foo").Default())

	sc.SetPhase(scope.PhaseTargets)
	e.Target("app")
	e.SetDefault("false")
	e.TargetEnd()
	enabled, explicit := model.NewTarget(db, "app").Default()
	assert.True(t, explicit)
	assert.False(t, enabled)
}

func TestPredicates(t *testing.T) {
	e, _, _ := newEngine()
	assert.True(t, e.IsPlat("linux", "mingw"))
	assert.False(t, e.IsPlat("mingw"))
	assert.True(t, e.IsArch("x86_64"))
	assert.True(t, e.IsMode("release"))
	assert.True(t, e.IsToolchain("gcc"))
}

func TestConfigPredicates(t *testing.T) {
	e, _, _ := newEngine()
	assert.False(t, e.HasConfig("feature"))
	e.SetConfig("feature", "true")
	assert.True(t, e.HasConfig("feature"))
	assert.True(t, e.IsConfig("feature"))

	e.SetConfig("other", "0")
	assert.True(t, e.HasConfig("other"))
	assert.False(t, e.IsConfig("other"))
}

func TestIncludesInvokesCallback(t *testing.T) {
	e, _, _ := newEngine()
	var got []string
	e.IncludesFn = func(paths ...string) { got = paths }
	e.Includes("sub/a.gocfg", "sub/b.gocfg")
	assert.Equal(t, []string{"sub/a.gocfg", "sub/b.gocfg"}, got)
}
