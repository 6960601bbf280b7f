package nfs

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

const (
	pluginName = "nfs"

	typeUptime = "uptime"
	typeEvents = "nfsclient_events"
	typeBytes  = "nfsclient_bytes"
	typePerOp  = "nfsclient_perop"
)

// Dispatcher applies the filter policy of a record's mountpoint and
// submits its counters to the sink.
type Dispatcher struct {
	filters *FilterConfig
	sink    Sink
}

func NewDispatcher(filters *FilterConfig, sink Sink) *Dispatcher {
	return &Dispatcher{filters: filters, sink: sink}
}

// Dispatch emits rec. Every category is submitted even when an earlier
// one failed; the failures are returned combined.
func (d *Dispatcher) Dispatch(rec *MountRecord) error {
	if rec == nil || !rec.Pending() {
		return nil
	}

	policy := d.filters.Resolve(rec.Mountpoint)
	if policy.Suppressed(rec.Age) {
		records.WithLabelValues(resultSuppressed).Inc()
		return nil
	}

	instance := SanitizeInstance(rec.Mountpoint)
	labels := map[string]string{
		"mountpoint":   instance,
		"serverexport": rec.Device,
	}

	submit := func(typ, typeInstance string, names []string, values []Value) error {
		err := d.sink.Submit(&ValueList{
			Plugin:         pluginName,
			PluginInstance: instance,
			Type:           typ,
			TypeInstance:   typeInstance,
			Names:          names,
			Values:         values,
			Labels:         labels,
		})
		return errors.Wrapf(err, "submit %s %s", typ, typeInstance)
	}

	var err error
	err = multierr.Append(err, submit(typeUptime, "", []string{""}, []Value{GaugeValue(float64(rec.Age))}))
	err = multierr.Append(err, submit(typeEvents, "", EventCounters, deriveValues(rec.Events[:])))
	err = multierr.Append(err, submit(typeBytes, "", ByteCounters, deriveValues(rec.Bytes[:])))
	err = multierr.Append(err, submit(rec.Transport.TypeName(), rec.Transport.String(), rec.Transport.Counters(), deriveValues(rec.XprtValues())))

	if policy.PerOp.Kind != OpsNone {
		for i := range rec.Ops {
			op := &rec.Ops[i]
			if !policy.PerOp.Match(op.Name) {
				continue
			}
			err = multierr.Append(err, submit(typePerOp, op.Name, PerOpCounters, deriveValues(op.Metrics[:])))
		}
	}

	if err != nil {
		records.WithLabelValues(resultFailed).Inc()
	} else {
		records.WithLabelValues(resultEmitted).Inc()
	}
	return err
}
