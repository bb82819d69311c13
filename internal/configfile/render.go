// Package configfile implements the ${VAR}/${define VAR} substitution
// engine from spec.md §4.7: one output file per target configfile
// template, byte-for-byte verbatim outside the substitution patterns.
package configfile

import (
	"context"
	"regexp"
	"time"

	"gocfg/internal/model"
	"gocfg/internal/osutil"
)

var (
	definePattern = regexp.MustCompile(`\$\{define\s+(\w+)\}`)
	varPattern    = regexp.MustCompile(`\$\{(\w+)\}`)
)

// renderDefine implements spec.md §4.7's define rule for one variable.
func renderDefine(name string, vars map[string]string) string {
	value, ok := vars[name]
	if !ok || value == "" {
		return "/* #undef " + name + " */"
	}
	switch value {
	case "1", "true":
		return "#define " + name + " 1"
	case "0", "false":
		return "/* #define " + name + " 0 */"
	default:
		return "#define " + name + " " + value
	}
}

// Render applies the substitution rules to template using vars, then
// sweeps any ${define X} that named a variable absent from vars down to
// "/* #undef X */" (spec.md §4.7: "a final sweep replaces any remaining
// ${define X}"). Everything else in template is preserved verbatim.
func Render(template string, vars map[string]string) string {
	out := definePattern.ReplaceAllStringFunc(template, func(m string) string {
		name := defineVarName(m)
		return renderDefine(name, vars)
	})

	out = varPattern.ReplaceAllStringFunc(out, func(m string) string {
		name := varPattern.FindStringSubmatch(m)[1]
		return vars[name]
	})

	out = definePattern.ReplaceAllStringFunc(out, func(m string) string {
		return "/* #undef " + defineVarName(m) + " */"
	})

	return out
}

func defineVarName(match string) string {
	return definePattern.FindStringSubmatch(match)[1]
}

// Runner matches osutil.Run's signature, injected so Process is
// testable without shelling out to a real git binary.
type Runner func(ctx context.Context, dir, program string, args ...string) (osutil.RunResult, error)

// Process renders one configfile template for target t: predefined
// variables (OS, VERSION*, configvars) plus, when the template mentions a
// GIT_ token, variables queried from git in projectDir.
func Process(ctx context.Context, t model.Target, plat, projectDir, template string, runner Runner) string {
	vars := PredefinedVars(t, plat, time.Now())
	if NeedsGit(template) {
		for k, v := range GitVars(ctx, projectDir, runner) {
			vars[k] = v
		}
	}
	return Render(template, vars)
}
