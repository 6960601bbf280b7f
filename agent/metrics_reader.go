package agent

import (
	"log"
	"runtime/debug"
	"time"

	"flashcat.cloud/nfsmon/config"
	"flashcat.cloud/nfsmon/inputs"
	"flashcat.cloud/nfsmon/types"
	"flashcat.cloud/nfsmon/writer"
)

// InputReader runs one input on its interval and forwards the processed
// samples to the writers.
type InputReader struct {
	inputName string
	input     inputs.Input
	quitChan  chan struct{}
	done      chan struct{}
	forward   func([]*types.Sample)
}

func newInputReader(inputName string, in inputs.Input) *InputReader {
	return &InputReader{
		inputName: inputName,
		input:     in,
		quitChan:  make(chan struct{}),
		done:      make(chan struct{}),
		forward:   writer.WriteSamples,
	}
}

func (r *InputReader) Start() {
	go r.startInput()
}

// Stop waits for a running gather to finish, then drops the input.
func (r *InputReader) Stop() {
	close(r.quitChan)
	<-r.done
	r.input.Drop()
}

func (r *InputReader) interval() time.Duration {
	if r.input.GetInterval() > 0 {
		return time.Duration(r.input.GetInterval())
	}
	return config.GetInterval()
}

func (r *InputReader) startInput() {
	defer close(r.done)

	interval := r.interval()
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-r.quitChan:
			return
		case <-timer.C:
			start := time.Now()
			r.gatherOnce()

			if config.Config != nil && config.Config.DebugMode {
				log.Println("D!", r.inputName, ": gather once, duration:", time.Since(start))
			}

			next := interval - time.Since(start)
			if next < 0 {
				next = 0
			}
			timer.Reset(next)
		}
	}
}

// gatherOnce confines a panic of the input, allocation failures
// included, to the current cycle.
func (r *InputReader) gatherOnce() {
	defer func() {
		if rc := recover(); rc != nil {
			log.Println("E!", r.inputName, ": gather metrics panic:", rc, string(debug.Stack()))
		}
	}()

	slist := types.NewSampleList()
	r.input.Gather(slist)

	out := r.input.Process(slist)
	if out == nil || out.Len() == 0 {
		return
	}
	r.forward(out.PopBackAll())
}
