// Package scriptrun evaluates project scripts through an embedded Go
// interpreter (github.com/traefik/yaegi): only a fixed set of
// standard-library packages is reachable, and the only domain-specific
// symbol exposed is "gocfg", the ScriptAPI instance for the run
// (SPEC_FULL.md §1 ADD, §6 ADD).
package scriptrun

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"gocfg/internal/scriptapi"
)

// ScriptFileName is the project-root script convention: a single file
// evaluated first, falling back to every matching file at depth 2 of the
// project tree when absent (spec.md §4.2). The original spec leaves the
// filename itself unspecified; ".gocfg.go" was chosen so scripts read as
// ordinary (if unbuilt) Go source to editors and tooling.
const ScriptFileName = "build.gocfg.go"

// allowedImports is the sandboxing allowlist: scripts may only reference
// these standard-library packages.
var allowedImports = map[string]bool{
	"strings":       true,
	"strconv":       true,
	"fmt":           true,
	"path/filepath": true,
	"os":            true,
}

// UnknownImportError is fatal: a script referenced a package outside the
// sandbox allowlist.
type UnknownImportError struct{ Package string }

func (e *UnknownImportError) Error() string {
	return fmt.Sprintf("script imports disallowed package %q", e.Package)
}

// Loader discovers and evaluates project scripts against a ScriptAPI
// engine for one loading phase at a time (spec.md §4.2: scripts are
// evaluated once per phase, mis-phased calls silently ignored).
type Loader struct {
	ProjectDir string
	Engine     *scriptapi.Engine
}

// NewLoader returns a Loader rooted at projectDir, wiring engine's
// Includes callback to this loader's script evaluation.
func NewLoader(projectDir string, engine *scriptapi.Engine) *Loader {
	l := &Loader{ProjectDir: projectDir, Engine: engine}
	engine.IncludesFn = l.includes
	return l
}

// DiscoverScripts finds the project-root script, or failing that every
// ScriptFileName at depth 2 of the project tree (spec.md §4.2).
func (l *Loader) DiscoverScripts() ([]string, error) {
	root := filepath.Join(l.ProjectDir, ScriptFileName)
	if _, err := os.Stat(root); err == nil {
		return []string{root}, nil
	}

	var found []string
	entries, err := os.ReadDir(l.ProjectDir)
	if err != nil {
		return nil, err
	}
	for _, e1 := range entries {
		if !e1.IsDir() {
			continue
		}
		sub, err := os.ReadDir(filepath.Join(l.ProjectDir, e1.Name()))
		if err != nil {
			continue
		}
		for _, e2 := range sub {
			if !e2.IsDir() && e2.Name() == ScriptFileName {
				found = append(found, filepath.Join(l.ProjectDir, e1.Name(), e2.Name()))
			}
		}
	}
	return found, nil
}

// RunAll evaluates every discovered script under the engine's current
// phase.
func (l *Loader) RunAll() error {
	scripts, err := l.DiscoverScripts()
	if err != nil {
		return err
	}
	for _, path := range scripts {
		if err := l.EvalFile(path); err != nil {
			return err
		}
	}
	return nil
}

// includes implements the shared includes(path…) operation: each path is
// either a specific script file or a "<dir>/<file>" convention, with
// scriptdir pushed for the duration of the nested evaluation.
func (l *Loader) includes(paths ...string) {
	for _, p := range paths {
		full := p
		if !filepath.IsAbs(full) {
			full = filepath.Join(l.Engine.Scope.ScriptDir(), p)
		}
		l.Engine.Scope.PushScriptDir(filepath.Dir(full))
		if err := l.EvalFile(full); err != nil {
			fmt.Fprintf(os.Stderr, "gocfg: includes(%q): %v\n", p, err)
		}
		l.Engine.Scope.PopScriptDir()
	}
}

// EvalFile reads and interprets one script file against l.Engine.
func (l *Loader) EvalFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := validateImports(string(src)); err != nil {
		return err
	}

	i := interp.New(interp.Options{GoPath: filepath.Dir(path)})
	if err := i.Use(stdlib.Symbols); err != nil {
		return fmt.Errorf("failed to load interpreter stdlib: %w", err)
	}
	if err := i.Use(exports()); err != nil {
		return fmt.Errorf("failed to load script API symbols: %w", err)
	}

	scriptapi.SetCurrent(l.Engine)
	_, err = i.Eval(wrap(string(src)))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// exports exposes the single domain symbol a script may reference beyond
// the sandboxed stdlib subset: scriptapi.Current, bound to "gocfg" in the
// generated preamble (SPEC_FULL.md §6 ADD).
func exports() interp.Exports {
	return interp.Exports{
		"gocfg/internal/scriptapi/scriptapi": {
			"Current": reflect.ValueOf(scriptapi.Current),
		},
	}
}

// wrap injects the package clause and preamble binding "gocfg" to the
// current Engine, if the script is a bare statement sequence rather than
// an already-complete "package main" file.
func wrap(src string) string {
	if strings.Contains(src, "package main") {
		return src
	}
	return "package main\n\nimport gocfgapi \"gocfg/internal/scriptapi\"\n\nvar gocfg = gocfgapi.Current()\n\nfunc main() {\n" + src + "\n}\n"
}

func validateImports(src string) error {
	inBlock := false
	for _, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
		case inBlock && strings.HasPrefix(trimmed, ")"):
			inBlock = false
		case inBlock:
			pkg := strings.Trim(trimmed, `"`)
			if pkg != "" && !allowedImports[pkg] {
				return &UnknownImportError{Package: pkg}
			}
		case strings.HasPrefix(trimmed, "import "):
			pkg := strings.Trim(strings.TrimPrefix(trimmed, "import "), `"`)
			if !allowedImports[pkg] {
				return &UnknownImportError{Package: pkg}
			}
		}
	}
	return nil
}
