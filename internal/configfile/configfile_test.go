package configfile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gocfg/internal/model"
	"gocfg/internal/osutil"
	"gocfg/internal/store"
)

func TestRenderDefineVariants(t *testing.T) {
	vars := map[string]string{
		"HAS_PTHREAD": "1",
		"HAS_WIDGETS": "0",
		"PREFIX":      "/usr/local",
	}
	template := "${define HAS_PTHREAD}\n${define HAS_WIDGETS}\n${define HAS_MISSING}\n${PREFIX}\n"
	want := "#define HAS_PTHREAD 1\n/* #define HAS_WIDGETS 0 */\n/* #undef HAS_MISSING */\n/usr/local\n"
	assert.Equal(t, want, Render(template, vars))
}

func TestRenderDefineWithArbitraryValue(t *testing.T) {
	vars := map[string]string{"BACKEND": "sqlite"}
	assert.Equal(t, "#define BACKEND sqlite", Render("${define BACKEND}", vars))
}

func TestRenderIsIdempotent(t *testing.T) {
	vars := map[string]string{"VERSION": "1.2.3"}
	template := "version=${VERSION}"
	once := Render(template, vars)
	twice := Render(once, vars)
	assert.Equal(t, once, twice)
}

func TestPredefinedVarsSplitsVersion(t *testing.T) {
	db := store.New()
	tgt := model.NewTarget(db, "app")
	tgt.Set("version", "1.2.3")

	vars := PredefinedVars(tgt, "linux", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "1", vars["VERSION_MAJOR"])
	assert.Equal(t, "2", vars["VERSION_MINOR"])
	assert.Equal(t, "3", vars["VERSION_ALTER"])
	assert.Equal(t, "LINUX", vars["OS"])
}

func TestPredefinedVarsMingwIsWindows(t *testing.T) {
	db := store.New()
	tgt := model.NewTarget(db, "app")
	vars := PredefinedVars(tgt, "mingw", time.Now())
	assert.Equal(t, "WINDOWS", vars["OS"])
}

func TestPredefinedVarsFormatsVersionBuild(t *testing.T) {
	db := store.New()
	tgt := model.NewTarget(db, "app")
	tgt.Set("version_build", "%Y%m%d%H%M")

	vars := PredefinedVars(tgt, "linux", time.Date(2024, 6, 1, 13, 5, 0, 0, time.UTC))
	assert.Equal(t, "202406011305", vars["VERSION_BUILD"])
}

func TestGitVarsTolerateMissingGit(t *testing.T) {
	failingRunner := func(ctx context.Context, dir, program string, args ...string) (osutil.RunResult, error) {
		return osutil.RunResult{}, assert.AnError
	}
	vars := GitVars(context.Background(), "/tmp", failingRunner)
	assert.Empty(t, vars)
}

func TestGitVarsCollectsEachCommand(t *testing.T) {
	runner := func(ctx context.Context, dir, program string, args ...string) (osutil.RunResult, error) {
		switch args[0] {
		case "describe":
			return osutil.RunResult{ExitCode: 0, Stdout: "v1.2.3\n"}, nil
		case "rev-parse":
			return osutil.RunResult{ExitCode: 0, Stdout: "deadbeef\n"}, nil
		case "log":
			return osutil.RunResult{ExitCode: 0, Stdout: "2024-06-01T00:00:00Z\n"}, nil
		}
		return osutil.RunResult{ExitCode: 1}, nil
	}
	vars := GitVars(context.Background(), "/tmp", runner)
	assert.Equal(t, "v1.2.3", vars["GIT_TAG"])
	assert.Equal(t, "deadbeef", vars["GIT_COMMIT"])
	assert.Equal(t, "2024-06-01T00:00:00Z", vars["GIT_COMMIT_DATE"])
}

func TestNeedsGitDetectsToken(t *testing.T) {
	assert.True(t, NeedsGit("build ${GIT_COMMIT_SHORT}"))
	assert.False(t, NeedsGit("build ${VERSION}"))
}

func TestProcessMergesConfigvarsAndPredefined(t *testing.T) {
	db := store.New()
	tgt := model.NewTarget(db, "app")
	tgt.Set("version", "1.2.3")
	tgt.Set("configvar_HAS_PTHREAD", "1")
	tgt.Append("configvars", "HAS_PTHREAD")

	out := Process(context.Background(), tgt, "linux", "/tmp", "${define HAS_PTHREAD}\n${VERSION_MAJOR}\n", nil)
	assert.Equal(t, "#define HAS_PTHREAD 1\n1\n", out)
}
