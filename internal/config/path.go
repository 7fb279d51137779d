// Package config resolves kpboard settings and Cin7 credentials.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves a leading ~ and any $VAR references in path, so
// secrets.path can point outside the working directory.
func ExpandPath(path string) string {
	path = os.ExpandEnv(path)

	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && !strings.HasPrefix(rest, "/")) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
