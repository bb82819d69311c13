package configfile

import (
	"context"
	"strings"
	"time"

	"gocfg/internal/model"
	"gocfg/internal/osutil"
	"gocfg/internal/platform"
)

// strftimeToLayout converts the small subset of strftime directives
// version_build patterns use into a Go time layout (spec.md §9: "treat
// version_build as a date format pattern and apply it to the current
// local time").
var strftimeDirectives = []struct {
	directive string
	layout    string
}{
	{"%Y", "2006"},
	{"%m", "01"},
	{"%d", "02"},
	{"%H", "15"},
	{"%M", "04"},
	{"%S", "05"},
}

func strftimeToLayout(pattern string) string {
	out := pattern
	for _, d := range strftimeDirectives {
		out = strings.ReplaceAll(out, d.directive, d.layout)
	}
	return out
}

// FormatVersionBuild renders a version_build strftime-style pattern
// against now.
func FormatVersionBuild(pattern string, now time.Time) string {
	if pattern == "" {
		return ""
	}
	return now.Format(strftimeToLayout(pattern))
}

// PredefinedVars computes the always-available substitution variables
// for a target: OS, VERSION, VERSION_MAJOR/MINOR/ALTER, VERSION_BUILD
// (spec.md §4.7).
func PredefinedVars(t model.Target, plat string, now time.Time) map[string]string {
	vars := map[string]string{}

	osName := strings.ToUpper(plat)
	if platform.IsMingw(plat) {
		osName = "WINDOWS"
	}
	vars["OS"] = osName

	version := t.Get("version")
	vars["VERSION"] = version

	parts := strings.SplitN(version, ".", 3)
	for len(parts) < 3 {
		parts = append(parts, "")
	}
	vars["VERSION_MAJOR"] = parts[0]
	vars["VERSION_MINOR"] = parts[1]
	vars["VERSION_ALTER"] = parts[2]

	vars["VERSION_BUILD"] = FormatVersionBuild(t.Get("version_build"), now)

	for _, name := range t.ConfigVars() {
		vars[name] = t.ConfigVar(name)
	}

	return vars
}

// gitCommands maps each GIT_ variable this templater supports to the git
// subcommand that produces it.
var gitCommands = map[string][]string{
	"GIT_TAG":          {"describe", "--tags"},
	"GIT_TAG_LONG":     {"describe", "--tags", "--long"},
	"GIT_BRANCH":       {"rev-parse", "--abbrev-ref", "HEAD"},
	"GIT_COMMIT_SHORT": {"rev-parse", "--short", "HEAD"},
	"GIT_COMMIT":       {"rev-parse", "HEAD"},
}

// NeedsGit reports whether template references any GIT_ variable, per
// spec.md §4.7's "if the template mentions any GIT_ token".
func NeedsGit(template string) bool {
	return strings.Contains(template, "GIT_")
}

// GitVars shells out to git for every supported GIT_ variable, tolerating
// a missing git binary or a non-repo directory by silently omitting the
// corresponding variables (spec.md §4.7: "missing git is tolerated").
func GitVars(ctx context.Context, dir string, runner func(context.Context, string, string, ...string) (osutil.RunResult, error)) map[string]string {
	vars := map[string]string{}
	for name, args := range gitCommands {
		result, err := runner(ctx, dir, "git", args...)
		if err != nil || result.ExitCode != 0 {
			continue
		}
		vars[name] = strings.TrimSpace(result.Stdout)
	}

	if date, err := runner(ctx, dir, "git", "log", "-1", "--format=%cI"); err == nil && date.ExitCode == 0 {
		vars["GIT_COMMIT_DATE"] = strings.TrimSpace(date.Stdout)
	}

	return vars
}
