package self_metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flashcat.cloud/nfsmon/config"
	"flashcat.cloud/nfsmon/types"
)

func TestGather(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "nfsmon_mountstats_parse_errors_total", Help: "h"})
	c.Inc()
	reg.MustRegister(c)

	s := &SelfMetrics{gatherer: reg}
	require.NoError(t, s.Init())

	slist := types.NewSampleList()
	s.Gather(slist)

	ss := slist.BackAll()
	require.Len(t, ss, 2)
	assert.Equal(t, "nfsmon_info", ss[0].Metric)
	assert.Equal(t, config.Version, ss[0].Labels["version"])
	assert.Equal(t, "nfsmon_mountstats_parse_errors_total", ss[1].Metric)
	assert.Equal(t, float64(1), ss[1].Value)
}
