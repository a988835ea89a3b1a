package events

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	DefaultBuffer       = 256
	defaultDeliverLimit = 2 * time.Second
)

// Sink receives every dispatched event.
type Sink interface {
	Deliver(ctx context.Context, e Event) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, e Event) error

func (f SinkFunc) Deliver(ctx context.Context, e Event) error { return f(ctx, e) }

// Dispatcher fans events out to its sinks from a single goroutine. Events
// published while the buffer is full are dropped with a warning.
type Dispatcher struct {
	logger  *zap.Logger
	sinks   []Sink
	ch      chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	start   sync.Once
	stop    sync.Once
	dropped prometheus.Counter
}

type Option func(*Dispatcher)

func WithBuffer(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.ch = make(chan Event, n)
		}
	}
}

// WithDropCounter counts events lost to a full buffer.
func WithDropCounter(c prometheus.Counter) Option {
	return func(d *Dispatcher) { d.dropped = c }
}

func NewDispatcher(logger *zap.Logger, sinks []Sink, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		sinks:  sinks,
		ch:     make(chan Event, DefaultBuffer),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Dispatcher) Publish(e Event) {
	select {
	case <-d.done:
		d.drop(e, "dispatcher stopped")
		return
	default:
	}

	select {
	case d.ch <- e:
	default:
		d.drop(e, "buffer full")
	}
}

func (d *Dispatcher) drop(e Event, reason string) {
	if d.dropped != nil {
		d.dropped.Inc()
	}
	d.logger.Warn("event dropped",
		zap.String("event", string(e.Name)),
		zap.String("entity_id", e.EntityID.String()),
		zap.String("reason", reason))
}

// Start launches the delivery goroutine. Calling it more than once has no
// effect.
func (d *Dispatcher) Start() {
	d.start.Do(func() {
		d.wg.Add(1)
		go d.run()
	})
}

// Stop delivers whatever is already buffered and waits for the delivery
// goroutine to exit.
func (d *Dispatcher) Stop() {
	d.stop.Do(func() { close(d.done) })
	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case e := <-d.ch:
			d.deliver(e)
		case <-d.done:
			for {
				select {
				case e := <-d.ch:
					d.deliver(e)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(e Event) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), defaultDeliverLimit)
		if err := sink.Deliver(ctx, e); err != nil {
			d.logger.Warn("event delivery failed",
				zap.String("event", string(e.Name)),
				zap.Error(err))
		}
		cancel()
	}
}
