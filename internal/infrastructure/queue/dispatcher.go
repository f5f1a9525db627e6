package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/Surajbalal/Animal-Guard/internal/api/metrics"
	"github.com/Surajbalal/Animal-Guard/internal/core/domain"
	"github.com/Surajbalal/Animal-Guard/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 5 * time.Second
)

// Dispatcher writes report audit events through a fixed set of workers using
// consistent hashing on the report code, guaranteeing per-report ordering.
type Dispatcher struct {
	workers []chan domain.ReportEvent
	repo    ports.ReportEventRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	done   <-chan struct{}
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ReportEventRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ReportEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ReportEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers exit once Stop has drained
// their channel, or when ctx is cancelled after writing what is already
// buffered. Events published after cancellation are dropped.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	d.done = ctx.Done()
	d.mu.Unlock()
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish hands an event to the worker responsible for its report. It never
// blocks the caller: when the worker is backed up the event is dropped.
func (d *Dispatcher) Publish(event domain.ReportEvent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed || d.cancelled() {
		metrics.AuditEventsTotal.WithLabelValues(string(event.Type), "dropped").Inc()
		return
	}

	idx := d.shardIndex(event.ReportCode)
	// Counted before the send so the worker's Dec never runs first.
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()
	select {
	case d.workers[idx] <- event:
	default:
		depth.Dec()
		metrics.AuditEventsTotal.WithLabelValues(string(event.Type), "dropped").Inc()
		d.log.Warn().
			Str("report_code", event.ReportCode).
			Int("worker_id", idx).
			Msg("audit queue full, event dropped")
	}
}

// Stop closes the queues and waits for the workers to flush what is queued.
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

// cancelled reports whether the context given to Start is done. Callers
// hold d.mu.
func (d *Dispatcher) cancelled() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}

// shardIndex maps a report code deterministically to a worker index.
func (d *Dispatcher) shardIndex(code string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(code))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ReportEvent) {
	defer d.wg.Done()
	depth := metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.write(ctx, id, event)
		case <-ctx.Done():
			d.drain(ctx, id, ch, depth)
			return
		}
	}
}

// drain writes the events already buffered in ch without waiting for more.
func (d *Dispatcher) drain(ctx context.Context, id int, ch <-chan domain.ReportEvent, depth prometheus.Gauge) {
	for {
		select {
		case event, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()
			d.write(ctx, id, event)
		default:
			return
		}
	}
}

func (d *Dispatcher) write(ctx context.Context, id int, event domain.ReportEvent) {
	// Detached from cancellation so queued events still land during shutdown.
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
	defer cancel()

	start := time.Now()
	err := d.repo.Insert(wctx, &event)
	metrics.AuditWriteDuration.WithLabelValues(string(event.Type)).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AuditEventsTotal.WithLabelValues(string(event.Type), "failed").Inc()
		d.log.Error().Err(err).
			Str("report_code", event.ReportCode).
			Str("type", string(event.Type)).
			Int("worker_id", id).
			Msg("audit event write failed")
		return
	}
	metrics.AuditEventsTotal.WithLabelValues(string(event.Type), "stored").Inc()
}
