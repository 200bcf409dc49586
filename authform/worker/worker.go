package worker

import (
	"log/slog"
	"sync"

	"github.com/samber/oops"
)

// Task is a unit of work run by the Worker pool.
type Task func()

// Worker pool with queue for running Tasks asynchronously.
type Worker struct {
	queue   chan Task
	stop    chan struct{}
	size    int
	wg      sync.WaitGroup
	mu      sync.RWMutex
	once    sync.Once
	stopped bool
	log     *slog.Logger
}

// New returns a Worker with the given number of goroutines and queue length.
// Non-positive values fall back to a single goroutine and a queue of 100.
func New(size, queueLength int, logger *slog.Logger) *Worker {
	if size <= 0 {
		size = 1
	}
	if queueLength <= 0 {
		queueLength = 100
	}
	if logger == nil {
		logger = slog.Default()
	}
	w := new(Worker)
	w.queue = make(chan Task, queueLength)
	w.stop = make(chan struct{})
	w.size = size
	w.log = logger.With("component", "worker")
	return w
}

// Enqueue adds the task to the queue.  It blocks while the queue is full and
// fails once the Worker has been stopped.
func (w *Worker) Enqueue(t Task) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return oops.Code("WORKER_STOPPED").Errorf("worker is stopped")
	}
	select {
	case w.queue <- t:
		return nil
	case <-w.stop:
		return oops.Code("WORKER_STOPPED").Errorf("worker is stopped")
	}
}

// Stop signals all goroutines to finish, waits for them to return and then
// runs whatever is left in the queue, so every accepted Task runs exactly once.
func (w *Worker) Stop() {
	w.once.Do(func() { close(w.stop) })

	// wait for pending Enqueue calls to return
	w.mu.Lock()
	w.stopped = true
	w.mu.Unlock()

	w.wg.Wait()
	for {
		select {
		case t := <-w.queue:
			w.run(t)
		default:
			w.log.Info("Worker stopped")
			return
		}
	}
}

func (w *Worker) run(t Task) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("Task panicked", "panic", r)
		}
	}()
	t()
}

// Start launches the worker goroutines and returns.
func (w *Worker) Start() {
	for idx := 0; idx < w.size; idx++ {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			for {
				select {
				case <-w.stop:
					return
				case t := <-w.queue:
					w.run(t)
				}
			}
		}()
	}
	w.log.Info("Worker started", "size", w.size)
}
