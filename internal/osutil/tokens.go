// Package osutil provides the pure string/path/process helpers the rest of
// gocfg builds on: whitespace-joined token lists, recursive glob expansion,
// and subprocess execution with captured output.
package osutil

import "strings"

// SplitTokens splits a space-joined attribute value into its tokens,
// tolerating leading/trailing whitespace and collapsing empty tokens.
// Store values are always whitespace-delimited lists (spec.md §4.1), so
// every reader of a list attribute should go through this instead of a
// bare strings.Fields/strings.Split.
func SplitTokens(value string) []string {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// JoinTokens re-joins tokens into the store's space-delimited representation.
func JoinTokens(tokens []string) string {
	return strings.Join(tokens, " ")
}

// AppendToken concatenates a new token onto an existing space-joined value,
// per the store's append semantics (§4.1): `" " + token`.
func AppendToken(existing, token string) string {
	if existing == "" {
		return token
	}
	return existing + " " + token
}

// Dedup returns tokens with duplicates removed, first occurrence wins.
func Dedup(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
