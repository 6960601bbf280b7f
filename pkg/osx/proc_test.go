package osx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHostProc(t *testing.T) {
	t.Setenv("HOST_PROC", "")
	assert.Equal(t, "/proc", HostProc())
	assert.Equal(t, "/proc/self/mountstats", HostProc("self", "mountstats"))

	t.Setenv("HOST_PROC", "/host/proc/")
	assert.Equal(t, "/host/proc", HostProc())
	assert.Equal(t, "/host/proc/net/rpc/nfs", HostProc("net", "rpc", "nfs"))
}
