package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gocfg/internal/osutil"
	"gocfg/internal/store"
)

// fakeProber reports every candidate usable, so toolchain detection always
// resolves to the first name tried without shelling out to a real compiler.
type fakeProber struct{}

func (fakeProber) Probe(ctx context.Context, toolsetKind, program string) bool {
	return program != ""
}

func fakeRunner(ctx context.Context, dir, program string, args ...string) (osutil.RunResult, error) {
	return osutil.RunResult{ExitCode: 0}, nil
}

const helloScript = `
gocfg.SetProject("hello")
gocfg.Target("hello")
gocfg.SetKind("binary")
gocfg.AddFiles("main.c")
gocfg.TargetEnd()
`

func TestRunGeneratesMakefileForMinimalProject(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gocfg.go"), []byte(helloScript), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.c"), []byte("int main(){return 0;}\n"), 0o644))

	d := New(Options{ProjectDir: dir, Plat: "linux", Arch: "x86_64"})
	d.Prober = fakeProber{}
	d.ProbeRunner = fakeRunner

	require.NoError(t, d.Run(context.Background()))

	makefileBytes, err := os.ReadFile(filepath.Join(dir, "Makefile"))
	require.NoError(t, err)
	content := string(makefileBytes)
	assert.Contains(t, content, "hello: build/linux/x86_64/release/hello")
	assert.Contains(t, content, "$(CC) -c $(hello_cflags)")
}

func TestRunAppliesOptionOverrideAsDefault(t *testing.T) {
	dir := t.TempDir()
	script := `
gocfg.Option("pthread")
gocfg.OptionEnd()
gocfg.Target("hello")
gocfg.SetKind("binary")
gocfg.AddFiles("main.c")
gocfg.TargetEnd()
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gocfg.go"), []byte(script), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.c"), []byte("int main(){return 0;}\n"), 0o644))

	d := New(Options{
		ProjectDir:      dir,
		Plat:            "linux",
		Arch:            "x86_64",
		OptionOverrides: map[string]string{"pthread": "true"},
	})
	d.Prober = fakeProber{}
	d.ProbeRunner = fakeRunner

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, "true", d.DB.List("options", "pthread", "value")[0])
}

// TestRunNoGenerateWritesNoFiles guards the --diagnosis contract: running
// load -> detect -> targets alone must register everything a full Run
// would (so the store is inspectable) without writing a Makefile or any
// configfile to disk.
func TestRunNoGenerateWritesNoFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.gocfg.go"), []byte(helloScript), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "main.c"), []byte("int main(){return 0;}\n"), 0o644))

	d := New(Options{ProjectDir: dir, Plat: "linux", Arch: "x86_64"})
	d.Prober = fakeProber{}
	d.ProbeRunner = fakeRunner

	tc, info, err := d.RunNoGenerate(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, tc.Name)
	assert.Equal(t, "linux", info.Plat)
	assert.True(t, d.DB.Has(store.KindTarget, "hello"))

	_, statErr := os.Stat(filepath.Join(dir, "Makefile"))
	assert.True(t, os.IsNotExist(statErr), "RunNoGenerate must not write a Makefile")
}
