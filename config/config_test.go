package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashcat.cloud/nfsmon/types"
)

const testConfig = `
[global]
hostname = "nfs-$hostname"
interval = "10s"
[global.labels]
region = "lab"

[log]
file_name = "stdout"

[[writers]]
url = "http://127.0.0.1:9090/api/v1/write"
timeout = 5000
`

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(testConfig), 0o644))

	require.NoError(t, InitConfig(dir, false, true, 0, ""))

	assert.Equal(t, dir, Config.ConfigDir)
	assert.Equal(t, 10*time.Second, GetInterval())
	assert.Equal(t, "ms", Config.Global.Precision)
	assert.Equal(t, 1000, Config.WriterOpt.Batch)
	assert.Equal(t, "stdout", Config.Log.FileName)
	require.Len(t, Config.Writers, 1)
	assert.Equal(t, int64(5000), Config.Writers[0].Timeout)
	assert.Equal(t, "nfs-"+Hostname.Get(), Config.GetHostname())
}

func TestInitConfigMissingFile(t *testing.T) {
	assert.Error(t, InitConfig(t.TempDir(), false, false, 0, ""))
}

func TestProcess(t *testing.T) {
	Config = &ConfigType{Global: Global{
		Hostname: "box",
		Labels:   map[string]string{"region": "lab", "mountpoint": "global"},
	}}
	defer func() { Config = nil }()

	ic := &InternalConfig{
		Labels:      map[string]string{"team": "storage", "serverexport": "-"},
		MetricsDrop: []string{"nfs_nfsclient_events_*"},
	}
	require.NoError(t, ic.InitInternalConfig())

	in := types.NewSampleList()
	in.PushSample("nfs", "uptime", float64(10), map[string]string{"mountpoint": "_data", "serverexport": "srv:/x"})
	in.PushSample("nfs", "nfsclient_events_vfsopen", uint64(1))

	out := ic.Process(in).PopBackAll()
	require.Len(t, out, 1)
	s := out[0]
	assert.Equal(t, "nfs_uptime", s.Metric)
	assert.False(t, s.Timestamp.IsZero())
	assert.Equal(t, map[string]string{
		"mountpoint":     "_data",
		"team":           "storage",
		"region":         "lab",
		"agent_hostname": "box",
	}, s.Labels)
}
