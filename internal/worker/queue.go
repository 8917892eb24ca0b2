// Package worker runs jobs one at a time, in submission order, on a single
// background goroutine. Every submission returns a Task the caller may await.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/phonebook/pkg/ctxutil"
)

// ErrStopped is the result of a task submitted after Stop.
var ErrStopped = errors.New("worker: queue stopped")

// Job is a unit of work executed on the queue goroutine.
type Job func(ctx context.Context) error

// Task is the completion handle of a submitted job.
type Task struct {
	ID   uuid.UUID
	Name string

	done chan struct{}
	err  error
}

func newTask(name string) *Task {
	return &Task{ID: uuid.New(), Name: name, done: make(chan struct{})}
}

// Done is closed when the job has finished.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Err returns the job result. Only meaningful after Done is closed.
func (t *Task) Err() error {
	select {
	case <-t.done:
		return t.err
	default:
		return nil
	}
}

// Wait blocks until the job finishes or ctx is done. A ctx error does not
// cancel the job itself.
func (t *Task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Task) finish(err error) {
	t.err = err
	close(t.done)
}

type queued struct {
	task *Task
	job  Job
}

// Queue executes jobs sequentially. Call Stop on shutdown.
type Queue struct {
	log *slog.Logger

	mu      sync.Mutex
	pending []queued
	closed  bool

	wake    chan struct{}
	stop    chan struct{}
	stopped chan struct{}
}

// NewQueue starts the worker goroutine.
func NewQueue(log *slog.Logger) *Queue {
	q := &Queue{
		log:     log.With("component", "worker"),
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go q.run()
	return q
}

// Submit enqueues job and returns immediately.
func (q *Queue) Submit(name string, job Job) *Task {
	task := newTask(name)

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		task.finish(ErrStopped)
		return task
	}
	q.pending = append(q.pending, queued{task: task, job: job})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return task
}

// Stop rejects new submissions, runs what is already queued and waits for
// the worker goroutine to exit. Safe to call more than once.
func (q *Queue) Stop() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		close(q.stop)
	}
	q.mu.Unlock()

	<-q.stopped
}

func (q *Queue) run() {
	defer close(q.stopped)

	for {
		if item, ok := q.next(); ok {
			q.execute(item)
			continue
		}

		select {
		case <-q.wake:
		case <-q.stop:
			for {
				item, ok := q.next()
				if !ok {
					return
				}
				q.execute(item)
			}
		}
	}
}

func (q *Queue) next() (queued, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return queued{}, false
	}
	item := q.pending[0]
	q.pending[0] = queued{}
	q.pending = q.pending[1:]
	return item, true
}

func (q *Queue) execute(item queued) {
	start := time.Now()
	err := q.safeRun(item)

	attrs := []any{
		slog.String("task_id", item.task.ID.String()),
		slog.String("task", item.task.Name),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		q.log.Warn("task failed", append(attrs, slog.String("error", err.Error()))...)
	} else {
		q.log.Debug("task done", attrs...)
	}

	item.task.finish(err)
}

func (q *Queue) safeRun(item queued) (err error) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error("task panic recovered",
				slog.String("task", item.task.Name),
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
			)
			err = fmt.Errorf("task %s panicked: %v", item.task.Name, r)
		}
	}()
	return item.job(ctxutil.WithTaskID(context.Background(), item.task.ID))
}
