package nfs

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

type recordingSink struct {
	lists []ValueList
	fail  map[string]bool
}

func (s *recordingSink) Submit(vl *ValueList) error {
	if s.fail[vl.Type] {
		return fmt.Errorf("%s rejected", vl.Type)
	}
	s.lists = append(s.lists, *vl)
	return nil
}

func (s *recordingSink) types() []string {
	out := make([]string, 0, len(s.lists))
	for _, vl := range s.lists {
		if vl.TypeInstance != "" {
			out = append(out, vl.Type+"/"+vl.TypeInstance)
			continue
		}
		out = append(out, vl.Type)
	}
	return out
}

func testRecord(mountpoint string, age uint64, ops ...string) *MountRecord {
	rec := &MountRecord{Mountpoint: mountpoint, Device: "srv:/export", Age: age, Transport: TransportTCP}
	for i := range rec.Events {
		rec.Events[i] = uint64(i)
	}
	for i := range rec.Bytes {
		rec.Bytes[i] = uint64(100 + i)
	}
	for _, op := range ops {
		rec.addOp(op, []uint64{1, 2, 3, 4, 5, 6, 7, 8})
	}
	return rec
}

func mustFilters(t *testing.T, entries ...MountpointConfig) *FilterConfig {
	t.Helper()
	fc, err := NewFilterConfig(entries)
	require.NoError(t, err)
	return fc
}

func TestDispatchEmitsAllCategories(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(mustFilters(t, MountpointConfig{Mountpoint: "all"}), sink)

	require.NoError(t, d.Dispatch(testRecord("/data", 10)))
	assert.Equal(t, []string{"uptime", "nfsclient_events", "nfsclient_bytes", "nfsclient_xprttcp/tcp"}, sink.types())

	uptime := sink.lists[0]
	assert.Equal(t, "nfs", uptime.Plugin)
	assert.Equal(t, "_data", uptime.PluginInstance)
	assert.Equal(t, Gauge, uptime.Values[0].Kind)
	assert.Equal(t, float64(10), uptime.Values[0].Gauge)

	events := sink.lists[1]
	assert.Equal(t, EventCounters, events.Names)
	require.Len(t, events.Values, NumEvents)
	assert.Equal(t, uint64(24), events.Values[24].Derive)

	xprt := sink.lists[3]
	assert.Len(t, xprt.Values, len(XprtTCPCounters))
	assert.Equal(t, "srv:/export", xprt.Labels["serverexport"])
}

func TestDispatchShowFalse(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(mustFilters(t,
		MountpointConfig{Mountpoint: "/data", Show: boolPtr(false)},
		MountpointConfig{Mountpoint: "all", Show: boolPtr(true)},
	), sink)

	require.NoError(t, d.Dispatch(testRecord("/data", 1<<20)))
	assert.Empty(t, sink.lists)

	require.NoError(t, d.Dispatch(testRecord("/home", 1<<20)))
	assert.NotEmpty(t, sink.lists)
}

func TestDispatchMinAge(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(mustFilters(t, MountpointConfig{Mountpoint: "all", MinAge: 3600}), sink)

	require.NoError(t, d.Dispatch(testRecord("/young", 1800)))
	assert.Empty(t, sink.lists)

	require.NoError(t, d.Dispatch(testRecord("/old", 7200)))
	assert.NotEmpty(t, sink.lists)
	assert.Equal(t, "_old", sink.lists[0].PluginInstance)
}

func TestDispatchImplicitWildcardMinAge(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(mustFilters(t), sink)

	require.NoError(t, d.Dispatch(testRecord("/fresh", 60)))
	assert.Empty(t, sink.lists)
}

func TestDispatchPerOpSubset(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(mustFilters(t, MountpointConfig{Mountpoint: "all", PerOpStatistics: "read, write"}), sink)

	require.NoError(t, d.Dispatch(testRecord("/data", 0, "read", "write", "lookup")))

	var perop []string
	for _, vl := range sink.lists {
		if vl.Type == typePerOp {
			perop = append(perop, vl.TypeInstance)
			assert.Equal(t, PerOpCounters, vl.Names)
		}
	}
	assert.Equal(t, []string{"read", "write"}, perop)
}

func TestDispatchPerOpNone(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(mustFilters(t, MountpointConfig{Mountpoint: "all"}), sink)

	require.NoError(t, d.Dispatch(testRecord("/data", 0, "read")))
	for _, vl := range sink.lists {
		assert.NotEqual(t, typePerOp, vl.Type)
	}
}

func TestDispatchContinuesAfterSubmitError(t *testing.T) {
	sink := &recordingSink{fail: map[string]bool{typeEvents: true, typeBytes: true}}
	d := NewDispatcher(mustFilters(t, MountpointConfig{Mountpoint: "all", PerOpStatistics: "all"}), sink)

	err := d.Dispatch(testRecord("/data", 0, "read"))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 2)
	assert.Equal(t, []string{"uptime", "nfsclient_xprttcp/tcp", "nfsclient_perop/read"}, sink.types())
}

func TestDispatchEmptyRecord(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(mustFilters(t), sink)
	require.NoError(t, d.Dispatch(&MountRecord{}))
	require.NoError(t, d.Dispatch(nil))
	assert.Empty(t, sink.lists)
}

func TestDispatchFromParser(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(mustFilters(t, MountpointConfig{Mountpoint: "all"}), sink)

	input := "device srv:/data with fstype nfs mounted on /data\n" +
		"\tage: 10\n" +
		"\tevents: 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0 0\n" +
		"\tbytes: 0 0 0 0 0 0 0 0\n" +
		"\txprt: udp 0 0 0 0 0 0 0\n"

	var errs error
	err := ParseMountstats(strings.NewReader(input), func(rec *MountRecord) {
		errs = multierr.Append(errs, d.Dispatch(rec))
	})
	require.NoError(t, err)
	require.NoError(t, errs)
	assert.Equal(t, []string{"uptime", "nfsclient_events", "nfsclient_bytes", "nfsclient_xprtudp/udp"}, sink.types())
}
