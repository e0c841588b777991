package dispatcher

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/atomicstack/playctl/internal/logging"
	"github.com/atomicstack/playctl/internal/logging/events"
	"github.com/atomicstack/playctl/internal/request"
	"github.com/atomicstack/playctl/internal/state"
	"github.com/google/uuid"
)

// ErrClosed is returned by Submit once the dispatcher stopped accepting
// requests. Producers treat it as fatal.
var ErrClosed = errors.New("dispatcher: request queue closed")

// Handler executes a request against the remote service.
type Handler interface {
	HandleRequest(ctx context.Context, s *state.Shared, req request.ClientRequest) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, s *state.Shared, req request.ClientRequest) error

func (f HandlerFunc) HandleRequest(ctx context.Context, s *state.Shared, req request.ClientRequest) error {
	return f(ctx, s, req)
}

// Submitter is the producer side of the dispatcher.
type Submitter interface {
	Submit(req request.ClientRequest) error
}

type queued struct {
	id  string
	req request.ClientRequest
}

// Dispatcher owns an unbounded FIFO request queue with a single consumer
// loop. Every dequeued request runs in its own goroutine; completion order
// is unspecified and failures never reach the producer.
type Dispatcher struct {
	state   *state.Shared
	handler Handler

	mu     sync.Mutex
	queue  []queued
	closed bool
	notify chan struct{}

	inflight sync.WaitGroup
	locks    *resourceLocks
}

// New creates a dispatcher executing requests with h against s.
func New(s *state.Shared, h Handler) *Dispatcher {
	return &Dispatcher{
		state:   s,
		handler: h,
		notify:  make(chan struct{}, 1),
		locks:   newResourceLocks(),
	}
}

// Submit enqueues req without blocking.
func (d *Dispatcher) Submit(req request.ClientRequest) error {
	if req == nil {
		return errors.New("dispatcher: nil request")
	}
	id := uuid.NewString()
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.queue = append(d.queue, queued{id: id, req: req})
	d.mu.Unlock()

	select {
	case d.notify <- struct{}{}:
	default:
	}
	events.Request.Submit(id, request.Describe(req))
	return nil
}

// Close stops accepting requests. Run returns once the queue is drained.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	select {
	case d.notify <- struct{}{}:
	default:
	}
}

// Pending returns the number of queued requests not yet started.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

// Wait blocks until every started request has finished.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

// Run is the consumption loop. It returns nil after Close once the queue is
// empty, or ctx.Err() when ctx ends first. It never waits for a started
// request to finish.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		item, ok := d.next(ctx)
		if !ok {
			return ctx.Err()
		}
		d.spawn(ctx, item)
	}
}

func (d *Dispatcher) next(ctx context.Context) (queued, bool) {
	for {
		d.mu.Lock()
		if len(d.queue) > 0 {
			item := d.queue[0]
			d.queue[0] = queued{}
			d.queue = d.queue[1:]
			d.mu.Unlock()
			return item, true
		}
		closed := d.closed
		d.mu.Unlock()
		if closed {
			return queued{}, false
		}
		select {
		case <-ctx.Done():
			return queued{}, false
		case <-d.notify:
		}
	}
}

func (d *Dispatcher) spawn(ctx context.Context, item queued) {
	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		desc := request.Describe(item.req)
		if key := request.ResourceKey(item.req); key != "" {
			unlock := d.locks.lock(key)
			defer unlock()
		}
		start := time.Now()
		events.Request.Start(item.id, desc)
		if err := d.handler.HandleRequest(ctx, d.state, item.req); err != nil {
			logging.Warn("failed to handle client request", "request", desc, "error", err)
			events.Request.Fail(item.id, desc, err)
			return
		}
		events.Request.Done(item.id, desc, time.Since(start).Milliseconds())
	}()
}
