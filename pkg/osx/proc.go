package osx

import (
	"os"
	"path/filepath"
)

const defaultProc = "/proc"

// HostProc returns the proc mount of the host, honoring $HOST_PROC when
// the agent runs in a container, joined with the optional path elements.
func HostProc(elem ...string) string {
	root, ok := os.LookupEnv("HOST_PROC")
	if !ok || root == "" {
		root = defaultProc
	}
	return filepath.Join(append([]string{root}, elem...)...)
}
