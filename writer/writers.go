package writer

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/prometheus/prompb"

	"flashcat.cloud/nfsmon/config"
	"flashcat.cloud/nfsmon/types"
)

// Writers fans queued series out to every configured endpoint.
type Writers struct {
	writers   []*Writer
	queue     *types.SafeListLimited[prompb.TimeSeries]
	batch     int
	precision string
	testMode  bool
	debugMode bool
	out       io.Writer

	stop chan struct{}
	done chan struct{}
}

var writers *Writers

func newWriters(c *config.ConfigType) (*Writers, error) {
	ws := &Writers{
		queue:     types.NewSafeListLimited[prompb.TimeSeries](c.WriterOpt.ChanSize),
		batch:     c.WriterOpt.Batch,
		precision: c.Global.Precision,
		testMode:  c.TestMode,
		debugMode: c.DebugMode,
		out:       os.Stdout,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}

	for _, opt := range c.Writers {
		w, err := newWriter(opt)
		if err != nil {
			return nil, fmt.Errorf("failed to init writer %s: %v", opt.Url, err)
		}
		ws.writers = append(ws.writers, w)
	}

	return ws, nil
}

func InitWriters() error {
	ws, err := newWriters(config.Config)
	if err != nil {
		return err
	}
	writers = ws
	go writers.loop()
	return nil
}

func StopWriters() {
	if writers == nil {
		return
	}
	close(writers.stop)
	<-writers.done
}

// WriteSamples queues samples for the remote endpoints, or prints them in
// test mode.
func WriteSamples(samples []*types.Sample) {
	if writers == nil {
		return
	}
	writers.push(samples)
}

func (ws *Writers) push(samples []*types.Sample) {
	series := make([]prompb.TimeSeries, 0, len(samples))
	for _, s := range samples {
		if s == nil {
			continue
		}

		if ws.testMode || ws.debugMode {
			printTestMetric(ws.out, s)
		}
		if ws.testMode {
			continue
		}

		if ts := s.ConvertTimeSeries(ws.precision); ts != nil {
			series = append(series, *ts)
		}
	}

	if len(series) == 0 {
		return
	}

	if !ws.queue.PushFrontN(series) {
		log.Printf("W! write queue is full, %d series dropped", len(series))
	}
}

func (ws *Writers) loop() {
	defer close(ws.done)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ws.stop:
			ws.flush()
			return
		case <-ticker.C:
			ws.flush()
		}
	}
}

func (ws *Writers) flush() {
	for {
		items := ws.queue.PopBackN(ws.batch)
		if len(items) == 0 {
			return
		}
		ws.write(items)
	}
}

func (ws *Writers) write(items []prompb.TimeSeries) {
	var wg sync.WaitGroup
	for _, w := range ws.writers {
		wg.Add(1)
		go func(w *Writer) {
			defer wg.Done()
			if err := w.Write(context.Background(), items); err != nil {
				log.Println("W!", err)
			}
		}(w)
	}
	wg.Wait()
}

func printTestMetric(out io.Writer, sample *types.Sample) {
	var sb strings.Builder

	sb.WriteString(sample.Timestamp.Format("15:04:05"))
	sb.WriteString(" ")
	sb.WriteString(sample.Metric)

	arr := make([]string, 0, len(sample.Labels))
	for key, val := range sample.Labels {
		arr = append(arr, fmt.Sprintf("%s=%v", key, val))
	}
	sort.Strings(arr)

	for _, pair := range arr {
		sb.WriteString(" ")
		sb.WriteString(pair)
	}

	sb.WriteString(" ")
	sb.WriteString(fmt.Sprint(sample.Value))

	fmt.Fprintln(out, sb.String())
}
