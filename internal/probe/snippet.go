// Package probe implements the option prober from spec.md §4.4: it
// synthesizes a C/C++ snippet from an option's probing attributes,
// compiles (and optionally links) it through the selected toolchain, and
// records the boolean result back onto the option.
package probe

import (
	"fmt"
	"strings"

	"gocfg/internal/model"
)

// kindExt maps a probing kind ("c" or "cxx") to the source extension the
// synthesized snippet is written with.
var kindExt = map[string]string{"c": ".c", "cxx": ".cpp"}

// BuildSnippet assembles the synthetic source for kind ("c" or "cxx")
// from opt's probing attributes, in the exact order spec.md §4.4
// specifies: includes, typedef'd types, raw snippet text, then a main()
// wrapping each func probe. Raw snippet text (<kind>snippets) is a
// scalar, not a space-tokenized list, since it is arbitrary multi-line C
// source rather than a flag-like token.
func BuildSnippet(opt model.Option, kind string) string {
	var b strings.Builder

	for _, inc := range opt.List(kind + "includes") {
		fmt.Fprintf(&b, "#include \"%s\"\n", inc)
	}

	for _, typ := range opt.List(kind + "types") {
		fmt.Fprintf(&b, "typedef %s __type_%s;\n", typ, sanitizeTypeName(typ))
	}

	if raw := opt.Get(kind + "snippets"); raw != "" {
		b.WriteString(raw)
		b.WriteByte('\n')
	}

	b.WriteString("int main(int argc, char** argv) {\n")
	for _, fn := range opt.List(kind + "funcs") {
		b.WriteString("  ")
		b.WriteString(funcLine(fn))
		b.WriteByte('\n')
	}
	b.WriteString("  return 0;\n}\n")

	return b.String()
}

func funcLine(fn string) string {
	if strings.Contains(fn, "(") {
		return fn + ";"
	}
	return fmt.Sprintf("volatile void* p%s = (void*)&%s;", fn, fn)
}

func sanitizeTypeName(typ string) string {
	var b strings.Builder
	for _, r := range typ {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func sourceExt(kind string) string {
	return kindExt[kind]
}
