package config

import (
	"time"

	"flashcat.cloud/nfsmon/pkg/filter"
	"flashcat.cloud/nfsmon/types"
)

const agentHostnameLabelKey = "agent_hostname"

// InternalConfig is embedded by every input and post-processes the samples
// it gathered before they are handed to the writers.
type InternalConfig struct {
	// append labels
	Labels map[string]string `toml:"labels"`

	// metrics drop and pass filter
	MetricsDrop       []string `toml:"metrics_drop"`
	MetricsPass       []string `toml:"metrics_pass"`
	MetricsDropFilter filter.Filter
	MetricsPassFilter filter.Filter

	// metric name prefix
	MetricsNamePrefix string `toml:"metrics_name_prefix"`
}

func (ic *InternalConfig) GetLabels() map[string]string {
	if ic.Labels != nil {
		return ic.Labels
	}

	return map[string]string{}
}

func (ic *InternalConfig) InitInternalConfig() error {
	var err error
	if ic.MetricsDropFilter, err = filter.Compile(ic.MetricsDrop); err != nil {
		return err
	}

	if ic.MetricsPassFilter, err = filter.Compile(ic.MetricsPass); err != nil {
		return err
	}

	return nil
}

func (ic *InternalConfig) Process(slist *types.SampleList) *types.SampleList {
	nlst := types.NewSampleList()
	if slist == nil || slist.Len() == 0 {
		return nlst
	}

	now := time.Now()
	ss := slist.PopBackAll()

	for i := range ss {
		if ss[i] == nil {
			continue
		}

		if ic.MetricsDropFilter != nil && ic.MetricsDropFilter.Match(ss[i].Metric) {
			continue
		}

		if ic.MetricsPassFilter != nil && !ic.MetricsPassFilter.Match(ss[i].Metric) {
			continue
		}

		if ss[i].Timestamp.IsZero() {
			ss[i].Timestamp = now
		}

		if len(ic.MetricsNamePrefix) > 0 {
			ss[i].Metric = ic.MetricsNamePrefix + ss[i].Metric
		}

		// add instance labels, "-" removes a label set by the input
		for k, v := range ic.GetLabels() {
			if v == "-" {
				delete(ss[i].Labels, k)
				continue
			}
			ss[i].Labels[k] = v
		}

		if Config != nil {
			for k, v := range Config.Global.Labels {
				if _, has := ss[i].Labels[k]; !has {
					ss[i].Labels[k] = v
				}
			}

			if _, has := ss[i].Labels[agentHostnameLabelKey]; !has && !Config.Global.OmitHostname {
				ss[i].Labels[agentHostnameLabelKey] = Config.GetHostname()
			}
		}

		nlst.PushFront(ss[i])
	}

	return nlst
}

type PluginConfig struct {
	InternalConfig
	Interval Duration `toml:"interval"`
}

func (pc *PluginConfig) GetInterval() Duration {
	return pc.Interval
}
