package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cvan-em/artsnetwork/internal/logger"
)

// notifyJob is a deferred piece of work, typically an email send. The job id
// ties queue log lines to the request that enqueued it.
type notifyJob struct {
	id   string
	name string
	fn   func() error
}

// Notifier runs queued jobs on a single background worker so that slow SMTP
// conversations never hold up an HTTP response. When the queue is full the
// job is dropped and logged rather than blocking the caller.
type Notifier struct {
	jobs chan notifyJob
	wg   sync.WaitGroup

	startOnce sync.Once
	stopOnce  sync.Once
}

func NewNotifier(queueSize int) *Notifier {
	if queueSize <= 0 {
		queueSize = 64
	}
	return &Notifier{
		jobs: make(chan notifyJob, queueSize),
	}
}

// Start launches the worker goroutine. The worker drains remaining jobs
// after ctx is cancelled so enqueued mail still goes out during shutdown.
func (n *Notifier) Start(ctx context.Context) {
	n.startOnce.Do(func() {
		n.wg.Add(1)
		go n.run(ctx)
	})
}

func (n *Notifier) run(ctx context.Context) {
	defer n.wg.Done()
	for {
		select {
		case job, ok := <-n.jobs:
			if !ok {
				return
			}
			n.execute(job)
		case <-ctx.Done():
			for {
				select {
				case job, ok := <-n.jobs:
					if !ok {
						return
					}
					n.execute(job)
				default:
					return
				}
			}
		}
	}
}

func (n *Notifier) execute(job notifyJob) {
	start := time.Now()
	if err := job.fn(); err != nil {
		logger.Log.Error("notification job failed", "job_id", job.id, "job", job.name, "error", err)
		return
	}
	logger.Log.Debug("notification job done", "job_id", job.id, "job", job.name, "duration", time.Since(start))
}

// Enqueue schedules fn to run on the worker. Returns the job id, or "" if
// the queue was full and the job dropped.
func (n *Notifier) Enqueue(name string, fn func() error) string {
	job := notifyJob{id: uuid.NewString(), name: name, fn: fn}
	select {
	case n.jobs <- job:
		return job.id
	default:
		logger.Log.Error("notification queue full, dropping job", "job", name)
		return ""
	}
}

// Stop closes the queue and waits for the worker to finish the backlog.
func (n *Notifier) Stop() {
	n.stopOnce.Do(func() {
		close(n.jobs)
	})
	n.wg.Wait()
}
