package nfs

import (
	"fmt"
	"strings"

	"flashcat.cloud/nfsmon/types"
)

type ValueKind int

const (
	Gauge ValueKind = iota
	Derive
)

// Value is either a gauge or a monotonically increasing derive counter.
type Value struct {
	Kind   ValueKind
	Gauge  float64
	Derive uint64
}

func GaugeValue(v float64) Value { return Value{Kind: Gauge, Gauge: v} }
func DeriveValue(v uint64) Value { return Value{Kind: Derive, Derive: v} }

func deriveValues(in []uint64) []Value {
	out := make([]Value, len(in))
	for i := range in {
		out[i] = DeriveValue(in[i])
	}
	return out
}

// ValueList is one emission: a type with its ordered values, identified
// by plugin, plugin instance and type instance.
type ValueList struct {
	Plugin         string
	PluginInstance string
	Type           string
	TypeInstance   string
	Names          []string
	Values         []Value
	Labels         map[string]string
}

// Sink receives value lists from the dispatcher.
type Sink interface {
	Submit(vl *ValueList) error
}

// SanitizeInstance replaces every byte outside [A-Za-z0-9] with '_'.
func SanitizeInstance(s string) string {
	b := []byte(s)
	for i, c := range b {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			continue
		}
		b[i] = '_'
	}
	return string(b)
}

// SampleSink turns value lists into samples named
// <plugin>_<type>_<name>. A value list with a single unnamed value is
// named <plugin>_<type>, and a type that already carries the plugin
// prefix is not prefixed twice.
type SampleSink struct {
	slist *types.SampleList
}

func NewSampleSink(slist *types.SampleList) *SampleSink {
	return &SampleSink{slist: slist}
}

func (s *SampleSink) Submit(vl *ValueList) error {
	if vl == nil {
		return nil
	}

	if len(vl.Values) != len(vl.Names) {
		return fmt.Errorf("%s/%s: %d values for %d names", vl.Type, vl.PluginInstance, len(vl.Values), len(vl.Names))
	}

	labels := make(map[string]string, len(vl.Labels)+1)
	for k, v := range vl.Labels {
		labels[k] = v
	}
	if vl.TypeInstance != "" {
		labels["type_instance"] = vl.TypeInstance
	}

	prefix := vl.Plugin
	if strings.HasPrefix(vl.Type, prefix+"_") {
		prefix = ""
	}

	for i, name := range vl.Names {
		metric := vl.Type
		if name != "" {
			metric += "_" + name
		}

		var value interface{}
		switch vl.Values[i].Kind {
		case Gauge:
			value = vl.Values[i].Gauge
		default:
			value = vl.Values[i].Derive
		}

		s.slist.PushSample(prefix, metric, value, labels)
	}

	return nil
}
