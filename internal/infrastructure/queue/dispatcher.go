package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/apostaesportiva/bolao/internal/api/metrics"
	"github.com/apostaesportiva/bolao/internal/core/domain"
	"github.com/apostaesportiva/bolao/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	jobTimeout     = 30 * time.Second
)

// ObjectDeleter removes stored objects.
type ObjectDeleter interface {
	Delete(ctx context.Context, key string) error
}

var _ ports.CleanupQueue = (*Dispatcher)(nil)

// Dispatcher routes avatar cleanup jobs to a fixed set of workers using
// consistent hashing on the user id, so jobs for one user run in order.
type Dispatcher struct {
	workers []chan domain.CleanupJob
	store   ObjectDeleter
	cache   ports.UserCache
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ObjectDeleter, cache ports.UserCache, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.CleanupJob, numWorkers),
		store:   store,
		cache:   cache,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.CleanupJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers run until Stop closes their
// channels, so cancelling ctx never drops queued jobs; ctx only seeds the
// per-job context.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Stop refuses new jobs and waits for queued ones to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// Enqueue hands a job to the worker responsible for its user. The call does
// not block; when the worker channel is full the job runs on a fresh goroutine.
func (d *Dispatcher) Enqueue(job domain.CleanupJob) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.log.Warn().Str("uid", job.UID).Str("key", job.ObjectKey).Msg("cleanup queue closed, job dropped")
		return
	}

	idx := d.shardIndex(job.UID)
	select {
	case d.workers[idx] <- job:
		metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		d.log.Warn().Str("uid", job.UID).Int("worker_id", idx).Msg("cleanup worker saturated, running inline")
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.process(context.Background(), idx, job)
		}()
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(uid string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(uid))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.CleanupJob) {
	defer d.wg.Done()
	depth := metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(id))
	for job := range ch {
		depth.Dec()
		d.process(ctx, id, job)
	}
}

// process removes the stale object, if any, and drops the cached summary.
func (d *Dispatcher) process(ctx context.Context, id int, job domain.CleanupJob) {
	start := time.Now()
	defer func() { metrics.CleanupDuration.Observe(time.Since(start).Seconds()) }()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), jobTimeout)
	defer cancel()

	result := "skipped"
	if job.ObjectKey != "" {
		if err := d.store.Delete(ctx, job.ObjectKey); err != nil {
			result = "error"
			d.log.Error().Err(err).
				Str("uid", job.UID).
				Str("key", job.ObjectKey).
				Int("worker_id", id).
				Msg("photo cleanup failed")
		} else {
			result = "deleted"
		}
	}
	metrics.CleanupJobsTotal.WithLabelValues(result).Inc()

	if d.cache == nil || job.UID == "" {
		return
	}
	if err := d.cache.Delete(ctx, job.UID); err != nil {
		d.log.Warn().Err(err).Str("uid", job.UID).Msg("user cache invalidation failed")
	}
}
