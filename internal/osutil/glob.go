package osutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Glob expands a file pattern relative to root using the rules specified
// in spec.md §9: "**" recurses, a single "*" matches one path segment, and
// a pattern with no wildcard is taken literally (existence is not checked
// here; callers treat a literal miss the same as any other source list
// entry so that generated files can be referenced before they exist).
func Glob(root, pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[") {
		return []string{pattern}, nil
	}

	if strings.Contains(pattern, "**") {
		return globRecursive(root, pattern)
	}
	return globShallow(root, pattern)
}

func globRecursive(root, pattern string) ([]string, error) {
	// "**" may appear once, splitting the pattern into a literal prefix
	// directory and a suffix glob matched at any depth beneath it.
	idx := strings.Index(pattern, "**")
	prefix := strings.TrimSuffix(pattern[:idx], "/")
	suffix := strings.TrimPrefix(pattern[idx+2:], "/")

	base := root
	if prefix != "" {
		base = filepath.Join(root, prefix)
	}

	var matches []string
	err := filepath.Walk(base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		ok := true
		if suffix != "" {
			ok, err = filepath.Match(suffix, rel)
			if err != nil {
				return err
			}
			if !ok {
				// Allow suffix to match just the base name too, so
				// "**/*.c" matches nested files, not only top-level ones.
				ok, err = filepath.Match(suffix, filepath.Base(rel))
				if err != nil {
					return err
				}
			}
		}
		if ok {
			relToRoot, _ := filepath.Rel(root, path)
			matches = append(matches, filepath.ToSlash(relToRoot))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

func globShallow(root, pattern string) ([]string, error) {
	full := filepath.Join(root, pattern)
	names, err := filepath.Glob(full)
	if err != nil {
		return nil, err
	}
	matches := make([]string, 0, len(names))
	for _, n := range names {
		rel, err := filepath.Rel(root, n)
		if err != nil {
			return nil, err
		}
		matches = append(matches, filepath.ToSlash(rel))
	}
	sort.Strings(matches)
	return matches, nil
}
