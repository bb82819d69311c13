// Package model provides typed, named-entity views over the raw store
// (package gocfg/internal/store), implementing the Option/Toolchain/Target
// attribute vocabulary and the {public} propagation rule from spec.md §3.
package model

// PublicMarker is the literal token that splits an add_* argument list
// into private-only tokens (before it) and publicly-propagated tokens
// (spec.md §3 invariant 5).
const PublicMarker = "{public}"

// PublicAttrs names the target attributes that carry a parallel
// "<attr>_public" variant exposed to dependents (spec.md §3).
var PublicAttrs = map[string]bool{
	"defines":      true,
	"udefines":     true,
	"includedirs":  true,
	"linkdirs":     true,
	"links":        true,
	"syslinks":     true,
	"frameworks":   true,
}

// PublicKey returns the companion public-attribute key for attr.
func PublicKey(attr string) string {
	return attr + "_public"
}

// ToolsetKinds enumerates the toolset roles every toolchain declares.
var ToolsetKinds = []string{"as", "cc", "cxx", "mm", "mxx", "ld", "sh", "ar"}

// TargetKind is the closed set of buildable target kinds.
type TargetKind string

const (
	KindBinary TargetKind = "binary"
	KindStatic TargetKind = "static"
	KindShared TargetKind = "shared"
)

// IsLibrary reports whether k produces an artifact other targets can link
// against (spec.md §4.6: "keeping only dependents of kind static or
// shared").
func (k TargetKind) IsLibrary() bool {
	return k == KindStatic || k == KindShared
}

// Tristate models showmenu's enabled/disabled/unset values (spec.md §3).
type Tristate int

const (
	TristateUnset Tristate = iota
	TristateEnabled
	TristateDisabled
)

func ParseTristate(s string) Tristate {
	switch s {
	case "enabled", "true", "1":
		return TristateEnabled
	case "disabled", "false", "0":
		return TristateDisabled
	default:
		return TristateUnset
	}
}
