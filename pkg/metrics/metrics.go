package metrics

import (
	"fmt"
	"math"
	"strings"
	"time"

	dto "github.com/prometheus/client_model/go"

	"flashcat.cloud/nfsmon/pkg/prom"
	"flashcat.cloud/nfsmon/types"
)

// FromFamilies converts gathered metric families into samples. Names that
// do not start with prefix get it prepended.
func FromFamilies(prefix string, mfs []*dto.MetricFamily, labels map[string]string, slist *types.SampleList) {
	for _, mf := range mfs {
		name := mf.GetName()
		for _, m := range mf.Metric {
			tags := MakeLabels(m, labels)

			switch mf.GetType() {
			case dto.MetricType_SUMMARY:
				HandleSummary(prefix, m, tags, name, slist)
			case dto.MetricType_HISTOGRAM:
				HandleHistogram(prefix, m, tags, name, slist)
			default:
				HandleGaugeCounter(prefix, m, tags, name, slist)
			}
		}
	}
}

func MakeLabels(m *dto.Metric, labels map[string]string) map[string]string {
	result := make(map[string]string, len(labels)+len(m.GetLabel()))
	for key, value := range labels {
		result[key] = value
	}
	for _, pair := range m.GetLabel() {
		result[pair.GetName()] = pair.GetValue()
	}
	return result
}

// metricTime converts a millisecond timestamp, zero when unset.
func metricTime(ts int64) time.Time {
	if ts <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ts)
}

func namePrefix(prefix, name string) string {
	if strings.HasPrefix(name, prefix) {
		return ""
	}
	return prefix
}

func HandleSummary(prefix string, m *dto.Metric, tags map[string]string, name string, slist *types.SampleList) {
	np := namePrefix(prefix, name)
	ts := metricTime(m.GetTimestampMs())
	s := m.GetSummary()

	slist.PushFront(types.NewSample("", prom.BuildMetric(np, name, "count"), float64(s.GetSampleCount()), tags).SetTime(ts))
	slist.PushFront(types.NewSample("", prom.BuildMetric(np, name, "sum"), s.GetSampleSum(), tags).SetTime(ts))

	for _, q := range s.Quantile {
		slist.PushFront(types.NewSample("", prom.BuildMetric(np, name), q.GetValue(), tags,
			map[string]string{"quantile": fmt.Sprint(q.GetQuantile())}).SetTime(ts))
	}
}

func HandleHistogram(prefix string, m *dto.Metric, tags map[string]string, name string, slist *types.SampleList) {
	np := namePrefix(prefix, name)
	ts := metricTime(m.GetTimestampMs())
	h := m.GetHistogram()

	slist.PushFront(types.NewSample("", prom.BuildMetric(np, name, "count"), float64(h.GetSampleCount()), tags).SetTime(ts))
	slist.PushFront(types.NewSample("", prom.BuildMetric(np, name, "sum"), h.GetSampleSum(), tags).SetTime(ts))
	slist.PushFront(types.NewSample("", prom.BuildMetric(np, name, "bucket"), float64(h.GetSampleCount()), tags,
		map[string]string{"le": "+Inf"}).SetTime(ts))

	for _, b := range h.Bucket {
		slist.PushFront(types.NewSample("", prom.BuildMetric(np, name, "bucket"), float64(b.GetCumulativeCount()), tags,
			map[string]string{"le": fmt.Sprint(b.GetUpperBound())}).SetTime(ts))
	}
}

func HandleGaugeCounter(prefix string, m *dto.Metric, tags map[string]string, name string, slist *types.SampleList) {
	var v float64
	switch {
	case m.Gauge != nil:
		v = m.GetGauge().GetValue()
	case m.Counter != nil:
		v = m.GetCounter().GetValue()
	case m.Untyped != nil:
		v = m.GetUntyped().GetValue()
	default:
		return
	}

	if math.IsNaN(v) {
		return
	}

	slist.PushFront(types.NewSample("", prom.BuildMetric(namePrefix(prefix, name), name), v, tags).SetTime(metricTime(m.GetTimestampMs())))
}
