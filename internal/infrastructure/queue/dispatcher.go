package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mercury-homes/lead-funnel/internal/api/metrics"
	"github.com/mercury-homes/lead-funnel/internal/core/domain"
	"github.com/mercury-homes/lead-funnel/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	sendTimeout    = 15 * time.Second
)

// Dispatcher fans lead alerts out to a fixed set of workers. Alerts are
// sharded by phone number so one applicant's alerts are delivered in order.
//
// The dispatcher owns its lifetime: Start launches the workers and Stop
// drains whatever is buffered. It does not follow any request or signal
// context.
type Dispatcher struct {
	workers []chan domain.LeadAlert
	sender  ports.AlertSender
	log     zerolog.Logger

	// ctx is cancelled when Stop gives up waiting; in-flight sends abort and
	// the rest of the buffer is abandoned.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender ports.AlertSender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		workers: make([]chan domain.LeadAlert, numWorkers),
		sender:  sender,
		log:     log.With().Str("component", "alerts").Str("sender", sender.Name()).Logger(),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LeadAlert, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop refuses new alerts and waits for the workers to deliver everything
// already queued. If ctx ends first, pending sends are cancelled and the
// alerts left in the buffers are logged and counted as failed; Stop then
// returns ctx.Err(). Calling Stop more than once is a no-op.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return nil
	}
	d.stopped = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		<-done
		return ctx.Err()
	}
}

// Enqueue hands an alert to the worker owning its phone number. It never
// blocks the caller: when that worker's buffer is full, or the dispatcher
// is stopped, the alert is dropped and counted as failed.
func (d *Dispatcher) Enqueue(alert domain.LeadAlert) {
	idx := d.shardIndex(alert.Phone)

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.drop(alert, idx, "dispatcher stopped, dropping alert")
		return
	}
	select {
	case d.workers[idx] <- alert:
		metrics.AlertsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		d.drop(alert, idx, "alert queue full, dropping alert")
	}
}

func (d *Dispatcher) drop(alert domain.LeadAlert, idx int, msg string) {
	metrics.AlertsFailedTotal.WithLabelValues(d.sender.Name()).Inc()
	d.log.Warn().
		Str("application_id", alert.ApplicationID).
		Str("kind", string(alert.Kind)).
		Int("worker_id", idx).
		Msg(msg)
}

// shardIndex maps a phone number deterministically to a worker index.
func (d *Dispatcher) shardIndex(phone string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(phone))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(id int, ch <-chan domain.LeadAlert) {
	defer d.wg.Done()
	depth := metrics.AlertsQueueDepth.WithLabelValues(strconv.Itoa(id))
	for alert := range ch {
		depth.Dec()
		if d.ctx.Err() != nil {
			d.drop(alert, id, "shutdown deadline passed, abandoning alert")
			continue
		}
		d.deliver(id, alert)
	}
}

func (d *Dispatcher) deliver(id int, alert domain.LeadAlert) {
	sendCtx, cancel := context.WithTimeout(d.ctx, sendTimeout)
	defer cancel()

	if err := d.sender.Send(sendCtx, alert); err != nil {
		metrics.AlertsFailedTotal.WithLabelValues(d.sender.Name()).Inc()
		d.log.Error().Err(err).
			Str("application_id", alert.ApplicationID).
			Str("kind", string(alert.Kind)).
			Int("worker_id", id).
			Msg("alert delivery failed")
		return
	}
	metrics.AlertsSentTotal.WithLabelValues(d.sender.Name()).Inc()
}
