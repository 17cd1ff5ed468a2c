// Package platform picks the default fragment staging directory for the
// host's nginx installation.
package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// StagingDirName is the directory created next to nginx.conf to hold
// location fragments.
const StagingDirName = "fragments.d"

// nginxRoots lists nginx configuration roots per OS, most specific first.
var nginxRoots = map[string][]string{
	"linux": {
		"/etc/nginx",
		"/usr/local/nginx/conf",
	},
	"darwin": {
		"/opt/homebrew/etc/nginx", // Apple Silicon Homebrew
		"/usr/local/etc/nginx",    // Intel Homebrew
	},
	"freebsd": {
		"/usr/local/etc/nginx",
	},
}

// pathExists is replaced in tests.
var pathExists = func(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DefaultStagingDir returns the staging directory below the first nginx
// configuration root found on this platform.
func DefaultStagingDir() (string, error) {
	return stagingDirFor(runtime.GOOS)
}

func stagingDirFor(goos string) (string, error) {
	roots, ok := nginxRoots[goos]
	if !ok {
		return "", fmt.Errorf("unsupported platform: %s", goos)
	}

	for _, root := range roots {
		if pathExists(root) {
			return filepath.Join(root, StagingDirName), nil
		}
	}
	return "", fmt.Errorf("nginx configuration directory not found (checked %v)", roots)
}

// Platform returns a string describing the current platform.
func Platform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
