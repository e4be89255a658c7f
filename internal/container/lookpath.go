//go:build linux

package container

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// lookPath resolves name to an executable path against the current
// (already chrooted) filesystem view: absolute and relative paths
// containing a slash are used as-is, otherwise every directory in $PATH
// is searched, falling back to a conventional default when $PATH is
// unset, since the container's environment may not define one.
func lookPath(name string) (string, error) {
	if strings.Contains(name, "/") {
		if isExecutable(name) {
			return name, nil
		}
		return "", fmt.Errorf("%q: not an executable file", name)
	}

	path := os.Getenv("PATH")
	if path == "" {
		path = "/usr/local/sbin:/usr/local/bin:/usr/sbin:/usr/bin:/sbin:/bin"
	}

	for _, dir := range strings.Split(path, ":") {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%q: executable file not found in $PATH", name)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0o111 != 0
}
