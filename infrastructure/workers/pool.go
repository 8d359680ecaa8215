// ABOUTME: Bounded worker pool running network fetches off the caller's goroutine
// ABOUTME: Limits concurrent requests and drains queued jobs before stopping

package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"feeder-resolver/core/interfaces"
)

// Job is a unit of work executed by a pool worker
type Job func()

// Pool manages a fixed set of workers reading from a shared queue
type Pool struct {
	jobQueue chan Job
	config   WorkerConfig
	logger   interfaces.Logger
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.RWMutex
	running  bool
}

// worker represents an individual worker goroutine
type worker struct {
	id       int
	jobQueue <-chan Job
	ctx      context.Context
	wg       *sync.WaitGroup
	logger   interfaces.Logger
}

// WorkerConfig holds configuration for the pool
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int

	// SubmitTimeout bounds how long Submit waits for queue space
	SubmitTimeout time.Duration
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers:    8,
		QueueSize:     64,
		SubmitTimeout: 5 * time.Second,
	}
}

// NewPool creates a pool. Call Start before submitting jobs.
func NewPool(config WorkerConfig, logger interfaces.Logger) *Pool {
	defaults := DefaultWorkerConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.SubmitTimeout <= 0 {
		config.SubmitTimeout = defaults.SubmitTimeout
	}

	return &Pool{
		jobQueue: make(chan Job, config.QueueSize),
		config:   config,
		logger:   logger,
	}
}

// Start starts the worker goroutines
func (p *Pool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return nil
	}

	p.ctx, p.cancel = context.WithCancel(context.Background())
	for i := 0; i < p.config.MaxWorkers; i++ {
		w := &worker{
			id:       i,
			jobQueue: p.jobQueue,
			ctx:      p.ctx,
			wg:       &p.wg,
			logger:   p.logger,
		}
		p.wg.Add(1)
		go w.run()
	}

	p.running = true
	return nil
}

// Stop stops accepting jobs, runs what is already queued and waits for the
// workers to exit.
func (p *Pool) Stop() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	p.cancel()
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

// Submit queues job. It fails with ErrWorkerNotRunning after Stop, with
// ErrQueueFull when no space frees up within the submit timeout, or with
// ctx's error.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	// Held across the send so Stop cannot drain the queue under a pending submit
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.running {
		return ErrWorkerNotRunning
	}

	timer := time.NewTimer(p.config.SubmitTimeout)
	defer timer.Stop()

	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrQueueFull
	}
}

// run is the main loop for each worker
func (w *worker) run() {
	defer w.wg.Done()

	for {
		select {
		case job := <-w.jobQueue:
			w.processJob(job)
		case <-w.ctx.Done():
			w.drain()
			return
		}
	}
}

// drain runs jobs still queued at shutdown
func (w *worker) drain() {
	for {
		select {
		case job := <-w.jobQueue:
			w.processJob(job)
		default:
			return
		}
	}
}

// processJob runs a single job, keeping the worker alive if it panics
func (w *worker) processJob(job Job) {
	defer func() {
		if r := recover(); r != nil && w.logger != nil {
			w.logger.Error("Worker job panicked", map[string]interface{}{
				"worker": w.id,
				"panic":  fmt.Sprint(r),
			})
		}
	}()

	job()
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
