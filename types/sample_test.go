package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSampleMergesLabels(t *testing.T) {
	s := NewSample("nfs", "nfsclient-events.vfsopen", uint64(3),
		map[string]string{"mountpoint": "_data", "a": "1"},
		map[string]string{"a": "2"})

	assert.Equal(t, "nfs_nfsclient_events_vfsopen", s.Metric)
	assert.Equal(t, map[string]string{"mountpoint": "_data", "a": "2"}, s.Labels)
}

func TestConvertTimeSeries(t *testing.T) {
	ts := time.UnixMilli(1700000012345)
	s := NewSample("", "nfs_uptime", float64(7200), map[string]string{"z": "1", "mount-point": "_data"}).SetTime(ts)

	pt := s.ConvertTimeSeries("s")
	require.NotNil(t, pt)
	require.Len(t, pt.Samples, 1)
	assert.Equal(t, int64(1700000012000), pt.Samples[0].Timestamp)
	assert.Equal(t, float64(7200), pt.Samples[0].Value)

	require.Len(t, pt.Labels, 3)
	assert.Equal(t, "__name__", pt.Labels[0].Name)
	assert.Equal(t, "nfs_uptime", pt.Labels[0].Value)
	assert.Equal(t, "mount_point", pt.Labels[1].Name)
	assert.Equal(t, "z", pt.Labels[2].Name)
}

func TestConvertTimeSeriesRejectsNonNumeric(t *testing.T) {
	s := NewSample("", "x", struct{}{})
	assert.Nil(t, s.ConvertTimeSeries("ms"))
}

func TestSampleListOrder(t *testing.T) {
	l := NewSampleList()
	l.PushSample("", "a", 1)
	l.PushSample("", "b", 2)
	l.PushFront(NewSample("", "c", 3))

	assert.Equal(t, 3, l.Len())
	back := l.BackAll()
	assert.Equal(t, "a", back[0].Metric)

	all := l.PopBackAll()
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[0].Metric)
	assert.Equal(t, "b", all[1].Metric)
	assert.Equal(t, "c", all[2].Metric)
	assert.Equal(t, 0, l.Len())
}
