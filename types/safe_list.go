package types

import (
	"container/list"
	"sync"
)

// SafeListLimited is a bounded FIFO shared by producers and one consumer.
// Pushes beyond maxSize are rejected.
type SafeListLimited[T any] struct {
	sync.Mutex
	maxSize int
	l       *list.List
}

func NewSafeListLimited[T any](maxSize int) *SafeListLimited[T] {
	return &SafeListLimited[T]{maxSize: maxSize, l: list.New()}
}

// PushFrontN adds vs unless the list is full. It is all or nothing.
func (sl *SafeListLimited[T]) PushFrontN(vs []T) bool {
	sl.Lock()
	defer sl.Unlock()

	if sl.l.Len()+len(vs) > sl.maxSize {
		return false
	}
	for _, v := range vs {
		sl.l.PushFront(v)
	}
	return true
}

// PopBackN removes up to n of the oldest items.
func (sl *SafeListLimited[T]) PopBackN(n int) []T {
	sl.Lock()
	defer sl.Unlock()

	count := sl.l.Len()
	if count == 0 {
		return nil
	}
	if count > n {
		count = n
	}

	items := make([]T, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, sl.l.Remove(sl.l.Back()).(T))
	}
	return items
}

func (sl *SafeListLimited[T]) Len() int {
	sl.Lock()
	defer sl.Unlock()
	return sl.l.Len()
}
