// Package obslog provides the engine's two logging surfaces: an always-on
// "checking for X ... ok" Status line (spec.md §7) and a categorized,
// config-gated debug trace of internal resolver/translator/prober
// decisions, with lazily-opened per-category dated log files.
package obslog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category names one internal subsystem's debug trace.
type Category string

const (
	CategoryLoad       Category = "load"
	CategoryProbe      Category = "probe"
	CategoryToolchain  Category = "toolchain"
	CategoryGraph      Category = "graph"
	CategoryConfigfile Category = "configfile"
	CategoryMakefile   Category = "makefile"
)

// Config gates the debug trace; it is populated from gocfg.yaml
// (internal/userconfig) with CLI --verbose overriding DebugMode.
type Config struct {
	DebugMode  bool
	Categories map[string]bool
}

func (c Config) categoryEnabled(cat Category) bool {
	if !c.DebugMode {
		return false
	}
	if c.Categories == nil {
		return true
	}
	enabled, ok := c.Categories[string(cat)]
	if !ok {
		return true
	}
	return enabled
}

// Logger is the engine-wide observability sink: Status always writes,
// Debugf is a no-op unless DebugMode and the category are both enabled.
type Logger struct {
	cfg    Config
	logDir string

	mu      sync.Mutex
	files   map[Category]*os.File
	loggers map[Category]*log.Logger
}

// New returns a Logger that lazily opens one file per enabled category
// under logDir. A zero-value logDir disables file output entirely; only
// Status keeps working.
func New(cfg Config, logDir string) *Logger {
	return &Logger{cfg: cfg, logDir: logDir, files: map[Category]*os.File{}, loggers: map[Category]*log.Logger{}}
}

// Debugf writes a trace line for cat, silently doing nothing when the
// category is disabled or no log directory was configured.
func (l *Logger) Debugf(cat Category, format string, args ...interface{}) {
	if l == nil || l.logDir == "" || !l.cfg.categoryEnabled(cat) {
		return
	}

	logger := l.loggerFor(cat)
	if logger == nil {
		return
	}
	logger.Printf(format, args...)
}

func (l *Logger) loggerFor(cat Category) *log.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lg, ok := l.loggers[cat]; ok {
		return lg
	}

	if err := os.MkdirAll(l.logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "obslog: could not create log directory %s: %v\n", l.logDir, err)
		return nil
	}

	name := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02"), cat)
	path := filepath.Join(l.logDir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "obslog: could not open log file %s: %v\n", path, err)
		return nil
	}

	l.files[cat] = f
	lg := log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	l.loggers[cat] = lg
	return lg
}

// Close releases every opened category log file.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range l.files {
		f.Close()
	}
}
