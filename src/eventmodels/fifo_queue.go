package eventmodels

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// FIFOQueue is a bounded channel-backed queue shared between producers and a
// single drainer. Enqueue blocks once size items are pending.
type FIFOQueue[T any] struct {
	caller  string
	queue   chan T
	wg      *sync.WaitGroup
	counter uint
	mutex   *sync.Mutex
}

func NewFIFOQueue[T any](caller string, size int) *FIFOQueue[T] {
	return &FIFOQueue[T]{
		queue:   make(chan T, size),
		wg:      &sync.WaitGroup{},
		counter: 0,
		mutex:   &sync.Mutex{},
		caller:  caller,
	}
}

func (q *FIFOQueue[T]) Enqueue(item T) {
	q.mutex.Lock()
	q.counter++
	counter := q.counter
	q.mutex.Unlock()

	log.Tracef("%v (%p): enqueue, pending=%v", q.caller, q, counter)
	q.wg.Add(1)
	q.queue <- item
}

// Dequeue never blocks; ok is false when nothing is pending.
func (q *FIFOQueue[T]) Dequeue() (T, bool) {
	select {
	case item := <-q.queue:
		q.wg.Done()

		q.mutex.Lock()
		q.counter--
		counter := q.counter
		q.mutex.Unlock()

		log.Tracef("%v (%p): dequeue, pending=%v", q.caller, q, counter)
		return item, true
	default:
		var zero T
		return zero, false
	}
}

func (q *FIFOQueue[T]) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	return int(q.counter)
}

// Drain pops everything currently pending, oldest first.
func (q *FIFOQueue[T]) Drain() []T {
	var items []T
	for {
		item, ok := q.Dequeue()
		if !ok {
			return items
		}

		items = append(items, item)
	}
}

func (q *FIFOQueue[T]) Close() {
	q.wg.Wait()
	close(q.queue)
}
