package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	f, err := Compile(nil)
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = Compile([]string{"nfs_uptime"})
	require.NoError(t, err)
	assert.True(t, f.Match("nfs_uptime"))
	assert.False(t, f.Match("nfs_uptime_x"))

	f, err = Compile([]string{"nfs_uptime", "nfs_procedure"})
	require.NoError(t, err)
	assert.True(t, f.Match("nfs_procedure"))
	assert.False(t, f.Match("nfs"))

	f, err = Compile([]string{"nfs_nfsclient_perop_*", "nfs_uptime"})
	require.NoError(t, err)
	assert.True(t, f.Match("nfs_nfsclient_perop_rtt"))
	assert.True(t, f.Match("nfs_uptime"))
	assert.False(t, f.Match("nfs_nfsclient_bytes_readpages"))
}
