// Package main implements the gocfg CLI entry point: a thin wrapper that
// parses flags (spec.md §6 treats argument parsing as an external
// collaborator, not core scope), builds an internal/driver.Options, and
// reports the result the way spec.md §7 prescribes.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"gocfg/internal/diagnosis"
	"gocfg/internal/driver"
	"gocfg/internal/obslog"
	"gocfg/internal/osutil"
	"gocfg/internal/userconfig"
)

const version = "0.1.0"

var (
	flagVerbose    bool
	flagDiagnosis  bool
	flagGenerator  string
	flagMakePath   string
	flagNinjaPath  string
	flagPlat       string
	flagArch       string
	flagMode       string
	flagToolchain  string
	flagPrefix     string
	flagBinDir     string
	flagLibDir     string
	flagIncludeDir string
	flagBuildDir   string

	logger *zap.Logger

	// pendingOverrides holds the --<option>=<value> pairs split out of
	// os.Args by main before cobra parses the fixed flag set.
	pendingOverrides map[string]string
)

var rootCmd = &cobra.Command{
	Use:     "gocfg",
	Short:   "gocfg generates a Makefile from project build scripts",
	Version: version,
	RunE:    runConfigure,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.BoolVar(&flagVerbose, "verbose", false, "enable categorized debug trace")
	flags.BoolVar(&flagDiagnosis, "diagnosis", false, "dump the full option/toolchain/target store as YAML instead of generating")
	flags.StringVar(&flagGenerator, "generator", "gmake", "backend generator: gmake or ninja (ninja is unsupported)")
	flags.StringVar(&flagMakePath, "make", "make", "path to the make binary verified with --version")
	flags.StringVar(&flagNinjaPath, "ninja", "", "path to the ninja binary (unsupported, rejected if --generator=ninja)")
	flags.StringVar(&flagPlat, "plat", "", "target platform (defaults to host)")
	flags.StringVar(&flagArch, "arch", "", "target architecture (defaults to host)")
	flags.StringVar(&flagMode, "mode", "release", "build mode: release or debug")
	flags.StringVar(&flagToolchain, "toolchain", "", "toolchain name (defaults to platform probe order)")
	flags.StringVar(&flagPrefix, "prefix", "/usr/local", "install prefix")
	flags.StringVar(&flagBinDir, "bindir", "bin", "install bindir, relative to prefix")
	flags.StringVar(&flagLibDir, "libdir", "lib", "install libdir, relative to prefix")
	flags.StringVar(&flagIncludeDir, "includedir", "include", "install includedir, relative to prefix")
	flags.StringVar(&flagBuildDir, "buildir", "build", "intermediate build directory")

	rootCmd.SetVersionTemplate("gocfg version {{.Version}}\n")
}

func main() {
	// --<option>=<value> is dynamic per-project (spec.md §6): option names
	// come from the scripts, not a fixed flag table, so they're split out
	// of os.Args before cobra ever sees them and replayed as overrides.
	known, overrides := splitOptionOverrides(os.Args[1:])
	pendingOverrides = overrides
	rootCmd.SetArgs(known)

	helpOrVersion := containsAny(known, "--help", "-h", "--version")

	if err := rootCmd.Execute(); err != nil {
		obslog.Fatal(err)
		os.Exit(1)
	}

	// spec.md §6: --help/--version exit 2, distinct from the 0/1 used by
	// an actual configure run.
	if helpOrVersion {
		os.Exit(2)
	}
}

func containsAny(args []string, targets ...string) bool {
	for _, a := range args {
		for _, t := range targets {
			if a == t {
				return true
			}
		}
	}
	return false
}

var knownLongFlags = map[string]bool{
	"verbose": true, "diagnosis": true, "generator": true, "make": true,
	"ninja": true, "plat": true, "arch": true, "mode": true, "toolchain": true,
	"prefix": true, "bindir": true, "libdir": true, "includedir": true,
	"buildir": true, "help": true, "version": true,
}

// splitOptionOverrides partitions raw CLI args into the fixed flags cobra
// understands and the dynamic --<option>=<value> pairs that only make
// sense once project scripts have registered that option name.
func splitOptionOverrides(args []string) (known []string, overrides map[string]string) {
	overrides = map[string]string{}
	for _, a := range args {
		if !strings.HasPrefix(a, "--") {
			known = append(known, a)
			continue
		}
		body := strings.TrimPrefix(a, "--")
		name, value, hasValue := strings.Cut(body, "=")
		if !hasValue || knownLongFlags[name] {
			known = append(known, a)
			continue
		}
		overrides[name] = value
	}
	return known, overrides
}

func runConfigure(cmd *cobra.Command, args []string) error {
	cfg := zap.NewProductionConfig()
	if flagVerbose {
		cfg.Level.SetLevel(zapcore.DebugLevel)
	}
	var err error
	logger, err = cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	projectDir, err := os.Getwd()
	if err != nil {
		return err
	}

	userCfg, err := userconfig.Load(filepath.Join(projectDir, "gocfg.yaml"))
	if err != nil {
		return err
	}

	if flagGenerator == "ninja" {
		return fmt.Errorf("ninja generator requested: unsupported")
	}
	if flagGenerator != "gmake" {
		return fmt.Errorf("unknown generator: %s", flagGenerator)
	}
	if _, err := osutil.Run(cmd.Context(), projectDir, flagMakePath, "--version"); err != nil {
		return fmt.Errorf("make not found: %s: %w", flagMakePath, err)
	}

	status := obslog.NewStatus(os.Stdout)
	obsCfg := obslog.Config{DebugMode: flagVerbose || userCfg.Verbose, Categories: userCfg.LogCategories}
	log := obslog.New(obsCfg, filepath.Join(projectDir, ".gocfg", "logs"))
	defer log.Close()

	toolchainName := flagToolchain
	if toolchainName == "" {
		toolchainName = userCfg.Toolchain
	}
	mode := flagMode
	if !cmd.Flags().Changed("mode") && userCfg.Mode != "" {
		mode = userCfg.Mode
	}
	prefix := flagPrefix
	if !cmd.Flags().Changed("prefix") && userCfg.Prefix != "" {
		prefix = userCfg.Prefix
	}

	d := driver.New(driver.Options{
		ProjectDir:      projectDir,
		BuildDir:        flagBuildDir,
		Plat:            flagPlat,
		Arch:            flagArch,
		Mode:            mode,
		Toolchain:       toolchainName,
		Prefix:          prefix,
		BinDir:          flagBinDir,
		LibDir:          flagLibDir,
		IncludeDir:      flagIncludeDir,
		OptionOverrides: pendingOverrides,
		Status:          status,
		Log:             log,
	})

	if flagDiagnosis {
		return runDiagnosis(cmd.Context(), d)
	}

	if err := d.Run(cmd.Context()); err != nil {
		logger.Error("configure failed", zap.Error(err))
		return err
	}
	return nil
}

// runDiagnosis runs load -> detect -> targets only (no Makefile, no
// configfiles written) and dumps whatever the store holds, so a
// misbehaving script can be inspected without the command generating any
// build output as a side effect.
func runDiagnosis(ctx context.Context, d *driver.Driver) error {
	_, _, _ = d.RunNoGenerate(ctx) // best-effort: dump whatever was registered even on failure
	out, err := diagnosis.Render(d.DB)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
