// Package worker provides the long-lived goroutine dedicated to numerical
// advancement. Jobs run one at a time in submission order; the scheduler
// never submits a second advance while one is outstanding, so the buffer
// never backs up.
package worker

import "sync"

type Worker struct {
	jobs      chan func()
	done      chan struct{}
	closeOnce sync.Once
}

func New() *Worker {
	w := &Worker{
		jobs: make(chan func(), 1),
		done: make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Worker) loop() {
	defer close(w.done)
	for job := range w.jobs {
		job()
	}
}

// Submit queues a job for the worker goroutine. Submitting after Close
// panics; the space owns the worker's lifetime and never does so.
func (w *Worker) Submit(job func()) {
	w.jobs <- job
}

// Close stops the worker after any in-flight job finishes and waits for
// the goroutine to exit.
func (w *Worker) Close() {
	w.closeOnce.Do(func() { close(w.jobs) })
	<-w.done
}
