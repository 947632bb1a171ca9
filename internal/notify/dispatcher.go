package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Event struct {
	UserID        uint // zero addresses every admin
	Title         string
	Message       string
	Type          string
	AppointmentID *uint
}

const writeTimeout = 5 * time.Second

// Dispatcher records events off the request path. A full queue drops the
// event; a notification must never fail the booking that produced it.
type Dispatcher struct {
	recorder *Recorder
	queue    chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(recorder *Recorder, size int) *Dispatcher {
	if size <= 0 {
		size = 100
	}

	d := &Dispatcher{
		recorder: recorder,
		queue:    make(chan Event, size),
		done:     make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := d.recorder.Record(ctx, ev); err != nil {
			log.Error().Err(err).
				Uint("user_id", ev.UserID).
				Str("type", ev.Type).
				Msg("failed to record notification")
		}
		cancel()
	}
}

// Dispatch never blocks. Events sent after Close are dropped.
func (d *Dispatcher) Dispatch(ev Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		log.Warn().Str("type", ev.Type).Msg("notifier closed, dropping event")
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Warn().Str("type", ev.Type).Msg("notification queue full, dropping event")
	}
}

// Close stops accepting events and waits until the queued ones are written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
