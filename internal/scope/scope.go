// Package scope implements the three-phase loader state machine from
// spec.md §4.2: which registration calls take effect depends on which
// phase is current, and a single "current entity" scope gates unscoped
// setters to root scope.
package scope

// Phase is one of the three mutually exclusive loading phases.
type Phase int

const (
	// PhaseLoad is active for option(...)/toolchain(...) registration;
	// options and toolchains accept mutations, targets do not.
	PhaseLoad Phase = iota
	// PhaseDetect is the probing/detection phase; no registration calls
	// are active, only the prober and toolchain detector write to the
	// store.
	PhaseDetect
	// PhaseTargets is active for target(...) registration.
	PhaseTargets
)

// Scope tracks the current loading phase plus whichever entity scope
// (option/toolchain/target) is currently open, and the scriptdir stack
// pushed/popped by includes(...).
type Scope struct {
	phase Phase

	currentOption    string
	currentToolchain string
	currentTarget    string // "" denotes root scope

	scriptDirs []string
}

// New returns a Scope starting in the load phase at root target scope.
func New(rootScriptDir string) *Scope {
	return &Scope{phase: PhaseLoad, scriptDirs: []string{rootScriptDir}}
}

func (s *Scope) Phase() Phase     { return s.phase }
func (s *Scope) SetPhase(p Phase) { s.phase = p }

// OptionsActive reports whether option(...) registration calls take
// effect in the current phase (spec.md §4.2 table).
func (s *Scope) OptionsActive() bool { return s.phase == PhaseLoad }

// ToolchainsActive reports whether toolchain(...) registration calls
// take effect in the current phase.
func (s *Scope) ToolchainsActive() bool { return s.phase == PhaseLoad }

// TargetsActive reports whether target(...) registration calls take
// effect in the current phase.
func (s *Scope) TargetsActive() bool { return s.phase == PhaseTargets }

func (s *Scope) CurrentOption() string    { return s.currentOption }
func (s *Scope) CurrentToolchain() string { return s.currentToolchain }
func (s *Scope) CurrentTarget() string    { return s.currentTarget }

func (s *Scope) BeginOption(name string) { s.currentOption = name }
func (s *Scope) EndOption()              { s.currentOption = "" }

func (s *Scope) BeginToolchain(name string) { s.currentToolchain = name }
func (s *Scope) EndToolchain()              { s.currentToolchain = "" }

func (s *Scope) BeginTarget(name string) { s.currentTarget = name }
func (s *Scope) EndTarget()              { s.currentTarget = "" }

// PushScriptDir enters a nested includes(...) evaluation.
func (s *Scope) PushScriptDir(dir string) { s.scriptDirs = append(s.scriptDirs, dir) }

// PopScriptDir returns to the including script's directory.
func (s *Scope) PopScriptDir() {
	if len(s.scriptDirs) > 1 {
		s.scriptDirs = s.scriptDirs[:len(s.scriptDirs)-1]
	}
}

// ScriptDir is the directory of the script currently being evaluated,
// exposed to scripts as the "scriptdir" value.
func (s *Scope) ScriptDir() string {
	if len(s.scriptDirs) == 0 {
		return ""
	}
	return s.scriptDirs[len(s.scriptDirs)-1]
}
