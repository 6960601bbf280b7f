package nfs

import "github.com/prometheus/client_golang/prometheus"

var (
	parseErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "nfsmon",
		Subsystem: "mountstats",
		Name:      "parse_errors_total",
		Help:      "Number of mountstats passes aborted by a malformed line.",
	})

	records = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "nfsmon",
		Subsystem: "mountstats",
		Name:      "records_total",
		Help:      "Number of NFS mount records dispatched, by result.",
	}, []string{"result"})

	gatherDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "nfsmon",
		Name:      "gather_duration_seconds",
		Help:      "Time spent in one gather of the nfs input.",
		Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5},
	})
)

const (
	resultEmitted    = "emitted"
	resultSuppressed = "suppressed"
	resultFailed     = "failed"
)

func init() {
	prometheus.MustRegister(parseErrors, records, gatherDuration)
}
