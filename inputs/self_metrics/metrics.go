package self_metrics

import (
	"log"

	"github.com/prometheus/client_golang/prometheus"

	"flashcat.cloud/nfsmon/config"
	"flashcat.cloud/nfsmon/inputs"
	"flashcat.cloud/nfsmon/pkg/metrics"
	"flashcat.cloud/nfsmon/types"
)

const (
	inputName     = "self_metrics"
	defaultPrefix = "nfsmon"
)

// SelfMetrics reports the agent's own prometheus registry, the nfs
// input's parse and dispatch counters among them.
type SelfMetrics struct {
	config.PluginConfig

	gatherer prometheus.Gatherer
}

func init() {
	inputs.Add(inputName, func() inputs.Input {
		return &SelfMetrics{}
	})
}

func (s *SelfMetrics) Name() string {
	return inputName
}

func (s *SelfMetrics) Init() error {
	if s.gatherer == nil {
		s.gatherer = prometheus.DefaultGatherer
	}
	return s.InitInternalConfig()
}

func (s *SelfMetrics) Drop() {}

func (s *SelfMetrics) Gather(slist *types.SampleList) {
	mfs, err := s.gatherer.Gather()
	if err != nil {
		log.Println("E! self_metrics: failed to gather:", err)
		return
	}

	slist.PushSample(defaultPrefix, "info", 1, map[string]string{"version": config.Version})
	metrics.FromFamilies(defaultPrefix, mfs, nil, slist)
}
