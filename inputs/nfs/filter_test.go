package nfs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashcat.cloud/nfsmon/pkg/set"
)

func TestParseOpSelector(t *testing.T) {
	tests := []struct {
		in    string
		kind  OpSelectorKind
		names []string
	}{
		{"", OpsNone, nil},
		{"   ", OpsNone, nil},
		{"all", OpsAll, nil},
		{" all ", OpsAll, nil},
		{"read, write", OpsSubset, []string{"read", "write"}},
		{"read;write\tlookup", OpsSubset, []string{"lookup", "read", "write"}},
		{",,;", OpsNone, nil},
		{"READ READ", OpsSubset, []string{"READ"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			sel := ParseOpSelector(tt.in)
			assert.Equal(t, tt.kind, sel.Kind)
			if tt.kind == OpsSubset {
				assert.Equal(t, tt.names, set.Sorted(sel.Names))
			}
		})
	}
}

func TestOpSelectorMatch(t *testing.T) {
	assert.False(t, ParseOpSelector("").Match("read"))
	assert.True(t, ParseOpSelector("all").Match("anything"))

	sub := ParseOpSelector("read, write")
	assert.True(t, sub.Match("read"))
	assert.True(t, sub.Match("write"))
	assert.False(t, sub.Match("lookup"))
	// names are matched as written in mountstats
	assert.False(t, sub.Match("READ"))
}

func boolPtr(b bool) *bool { return &b }

func TestNewFilterConfigImplicitWildcard(t *testing.T) {
	fc, err := NewFilterConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, fc.Len())

	p := fc.Resolve("/anything")
	assert.Equal(t, uint64(DefaultMinAge), p.MinAge)
	assert.True(t, p.Show)
	assert.Equal(t, OpsNone, p.PerOp.Kind)

	// explicit entries do not replace the implicit wildcard
	fc, err = NewFilterConfig([]MountpointConfig{{Mountpoint: "/data", PerOpStatistics: "all"}})
	require.NoError(t, err)
	assert.Equal(t, 2, fc.Len())
	assert.Equal(t, uint64(0), fc.Resolve("/data").MinAge)
	assert.Equal(t, OpsAll, fc.Resolve("/data").PerOp.Kind)
	assert.Equal(t, uint64(DefaultMinAge), fc.Resolve("/other").MinAge)
}

func TestNewFilterConfigExplicitWildcard(t *testing.T) {
	fc, err := NewFilterConfig([]MountpointConfig{
		{Mountpoint: "all", MinAge: 60, PerOpStatistics: "read"},
		{Mountpoint: "/data", Show: boolPtr(false)},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, fc.Len())

	p := fc.Resolve("/home")
	assert.Equal(t, uint64(60), p.MinAge)
	assert.True(t, p.PerOp.Match("read"))

	assert.False(t, fc.Resolve("/data").Show)
	assert.True(t, fc.Resolve("/data").Suppressed(1 << 40))
	assert.False(t, fc.Resolve("/home").Suppressed(60))
}

func TestNewFilterConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		entries []MountpointConfig
		field   string
	}{
		{"empty mountpoint", []MountpointConfig{{Mountpoint: " "}}, "mountpoint"},
		{"duplicate", []MountpointConfig{{Mountpoint: "/a"}, {Mountpoint: "/a"}}, "mountpoint"},
		{"negative min_age", []MountpointConfig{{Mountpoint: "/a", MinAge: -1}}, "min_age"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := NewFilterConfig(tt.entries)
			assert.Nil(t, fc)

			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestFilterPolicySuppressed(t *testing.T) {
	p := FilterPolicy{MinAge: 3600, Show: true}
	assert.True(t, p.Suppressed(1800))
	assert.False(t, p.Suppressed(3600))
	assert.False(t, p.Suppressed(7200))

	assert.False(t, FilterPolicy{Show: true}.Suppressed(0))
	assert.True(t, FilterPolicy{Show: false}.Suppressed(7200))
}
