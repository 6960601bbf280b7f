package types

import (
	"sort"
	"strings"
	"time"

	"github.com/prometheus/common/model"
	"github.com/prometheus/prometheus/prompb"

	"flashcat.cloud/nfsmon/pkg/conv"
)

type Sample struct {
	Metric    string            `json:"metric"`
	Timestamp time.Time         `json:"timestamp"`
	Value     interface{}       `json:"value"`
	Labels    map[string]string `json:"labels"`
}

var (
	labelReplacer  = strings.NewReplacer("-", "_", ".", "_", " ", "_", "/", "_")
	metricReplacer = strings.NewReplacer("-", "_", ".", "_", " ", "_", "'", "_", "\"", "_")
	zeroTime       = time.Unix(0, 0)
)

// NewSample builds a sample named prefix_metric. Later label maps win over
// earlier ones.
func NewSample(prefix, metric string, value interface{}, labels ...map[string]string) *Sample {
	s := &Sample{
		Metric: metricReplacer.Replace(metric),
		Value:  value,
		Labels: make(map[string]string),
	}

	if prefix != "" {
		s.Metric = prefix + "_" + s.Metric
	}

	for _, m := range labels {
		for k, v := range m {
			s.Labels[k] = v
		}
	}

	return s
}

func (s *Sample) SetTime(t time.Time) *Sample {
	if t.IsZero() || zeroTime.Equal(t) {
		return s
	}
	s.Timestamp = t
	return s
}

// ConvertTimeSeries returns nil when the value is not numeric.
func (s *Sample) ConvertTimeSeries(precision string) *prompb.TimeSeries {
	value, err := conv.ToFloat64(s.Value)
	if err != nil {
		return nil
	}

	ts := s.Timestamp.UnixMilli()
	switch precision {
	case "s":
		ts = ts / 1000 * 1000
	case "m":
		ts = ts / 1000 * 1000
		ts -= ts % 60000
	}

	pt := &prompb.TimeSeries{
		Samples: []prompb.Sample{{Timestamp: ts, Value: value}},
		Labels:  make([]prompb.Label, 0, len(s.Labels)+1),
	}

	pt.Labels = append(pt.Labels, prompb.Label{
		Name:  model.MetricNameLabel,
		Value: s.Metric,
	})

	keys := make([]string, 0, len(s.Labels))
	for k := range s.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		pt.Labels = append(pt.Labels, prompb.Label{
			Name:  labelReplacer.Replace(k),
			Value: s.Labels[k],
		})
	}

	return pt
}
