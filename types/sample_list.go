package types

import (
	"container/list"
	"sync"
)

// SampleList collects samples from one gather. Inputs push to the front,
// the reader pops from the back so samples leave in push order.
type SampleList struct {
	sync.RWMutex
	L *list.List
}

func NewSampleList() *SampleList {
	return &SampleList{L: list.New()}
}

func (l *SampleList) PushSample(prefix, metric string, value interface{}, labels ...map[string]string) *list.Element {
	v := NewSample(prefix, metric, value, labels...)
	l.Lock()
	e := l.L.PushFront(v)
	l.Unlock()
	return e
}

func (l *SampleList) PushSamples(prefix string, fields map[string]interface{}, labels ...map[string]string) {
	l.Lock()
	for metric, value := range fields {
		l.L.PushFront(NewSample(prefix, metric, value, labels...))
	}
	l.Unlock()
}

func (l *SampleList) PushFront(v *Sample) *list.Element {
	l.Lock()
	e := l.L.PushFront(v)
	l.Unlock()
	return e
}

func (l *SampleList) PopBackAll() []*Sample {
	l.Lock()
	defer l.Unlock()

	count := l.L.Len()
	items := make([]*Sample, 0, count)
	for i := 0; i < count; i++ {
		item := l.L.Remove(l.L.Back())
		if v, ok := item.(*Sample); ok {
			items = append(items, v)
		}
	}
	return items
}

// BackAll returns the samples in push order without removing them.
func (l *SampleList) BackAll() []*Sample {
	l.RLock()
	defer l.RUnlock()

	items := make([]*Sample, 0, l.L.Len())
	for e := l.L.Back(); e != nil; e = e.Prev() {
		if v, ok := e.Value.(*Sample); ok {
			items = append(items, v)
		}
	}
	return items
}

func (l *SampleList) Len() int {
	l.RLock()
	defer l.RUnlock()
	return l.L.Len()
}
