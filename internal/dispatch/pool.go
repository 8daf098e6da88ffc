package dispatch

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"gamestudio/website/pkg/logger"
	"gamestudio/website/pkg/metrics"

	"go.uber.org/zap"
)

const jobTimeout = 5 * time.Second

// Pool drains a Queue with a fixed number of workers.
type Pool struct {
	queue   *Queue
	size    int
	timeout time.Duration
	log     *zap.Logger

	wg   sync.WaitGroup
	once sync.Once
}

// Option configures a Pool.
type Option func(*Pool)

// WithLogger sets the pool logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// WithJobTimeout bounds the context handed to each job.
func WithJobTimeout(d time.Duration) Option {
	return func(p *Pool) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// NewPool creates a pool of size workers over q. A size below one uses the
// number of CPUs.
func NewPool(q *Queue, size int, opts ...Option) *Pool {
	if size < 1 {
		size = runtime.NumCPU()
	}
	p := &Pool{
		queue:   q,
		size:    size,
		timeout: jobTimeout,
		log:     logger.OrNop(nil),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.Named("dispatch")
	return p
}

// Start launches the workers. They exit when the queue is closed and empty.
// ctx is the parent of every job context.
func (p *Pool) Start(ctx context.Context) {
	p.once.Do(func() {
		for i := 0; i < p.size; i++ {
			p.wg.Add(1)
			go p.work(ctx, "worker-"+strconv.Itoa(i))
		}
	})
}

// Shutdown closes the queue and waits for queued jobs to finish.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.queue.Close()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		p.log.Warn("shutdown timed out", zap.Int("pending", p.queue.Len()))
		return fmt.Errorf("dispatch shutdown: %w", ctx.Err())
	}
}

func (p *Pool) work(ctx context.Context, name string) {
	defer p.wg.Done()
	log := p.log.With(zap.String("worker", name))

	for job := range p.queue.Jobs() {
		metrics.UpdateDispatchQueueSize(p.queue.Len())
		p.run(ctx, log, job)
	}
}

func (p *Pool) run(ctx context.Context, log *zap.Logger, job Job) {
	// Jobs outlive the request that queued them but not shutdown's deadline.
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			log.Error("job panicked", zap.String("kind", job.Kind), zap.Any("panic", r))
		}
	}()
	job.Run(jobCtx)
}
