package osutil

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// TempPath returns a path inside os.TempDir() for a scratch file used by a
// probe or a toolchain candidate check (a synthesized snippet, an object
// file, a throwaway static archive). The name is suffixed with a random
// UUID so that concurrent gocfg invocations sharing a temp directory never
// collide, and the caller is responsible for deleting it on every exit
// path (spec.md §5).
func TempPath(prefix, ext string) string {
	name := prefix + "-" + uuid.NewString() + ext
	return filepath.Join(os.TempDir(), name)
}

// RemoveAllQuiet deletes each path, ignoring errors for paths that were
// never created (e.g. the link step never ran because compilation failed).
func RemoveAllQuiet(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		_ = os.Remove(p)
	}
}
