// Package async runs calendar writes on a background goroutine so the calendar owner
// never waits on the database.
package async

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"guildcalendar/internal/domain"
)

// Recorder observes the outcome of every storage job.
type Recorder interface {
	StorageApplied(statements int, err error)
}

type nopRecorder struct{}

func (nopRecorder) StorageApplied(int, error) {}

type job struct {
	stmts []domain.Statement
	hooks []func()
	done  chan error
}

// Worker implements domain.PersistenceGateway. Jobs are applied one at a time, in the
// order they were submitted.
type Worker struct {
	repo     domain.CalendarRepository
	logger   *slog.Logger
	recorder Recorder
	timeout  time.Duration

	mu     sync.RWMutex
	closed bool
	jobs   chan job
}

// NewWorker returns a worker with room for queueSize pending jobs. A nil recorder is
// allowed.
func NewWorker(repo domain.CalendarRepository, queueSize int, timeout time.Duration, recorder Recorder, logger *slog.Logger) *Worker {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Worker{
		repo:     repo,
		logger:   logger,
		recorder: recorder,
		timeout:  timeout,
		jobs:     make(chan job, queueSize),
	}
}

func (w *Worker) Execute(stmt domain.Statement) <-chan error {
	return w.submit(job{stmts: []domain.Statement{stmt}})
}

func (w *Worker) Commit(tx *domain.Transaction) <-chan error {
	return w.submit(job{stmts: tx.Statements(), hooks: tx.CommitHooks()})
}

func (w *Worker) submit(j job) <-chan error {
	j.done = make(chan error, 1)

	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		j.done <- domain.ErrStorageClosed
		close(j.done)
		return j.done
	}
	select {
	case w.jobs <- j:
	default:
		w.logger.Warn("calendar storage queue full, waiting", "capacity", cap(w.jobs))
		w.jobs <- j
	}
	return j.done
}

// Run applies jobs until Close is called and the queue is drained. Jobs already queued
// are still applied after ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	for j := range w.jobs {
		w.apply(ctx, j)
	}
	return nil
}

func (w *Worker) apply(ctx context.Context, j job) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	err := w.repo.Apply(ctx, j.stmts)
	w.recorder.StorageApplied(len(j.stmts), err)
	if err != nil {
		w.logger.Warn("calendar storage write failed", "statements", len(j.stmts), "error", err)
	} else {
		for _, hook := range j.hooks {
			hook()
		}
	}
	j.done <- err
	close(j.done)
}

// Close stops accepting jobs. Run returns once the queued jobs are applied.
func (w *Worker) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	close(w.jobs)
}

// Pending returns the number of queued jobs.
func (w *Worker) Pending() int { return len(w.jobs) }

var _ domain.PersistenceGateway = (*Worker)(nil)
