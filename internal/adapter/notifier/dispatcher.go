package notifier

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"autocredit-backend/internal/domain/event"
)

// EmailSender is the transactional-mail capability. Delivery failures stay
// inside the dispatcher; they never reach the emitting usecase.
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogEmailSender stands in when no mail provider is configured.
type LogEmailSender struct{}

func (LogEmailSender) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("notifier: email to=%s subject=%q (log-only sender)", to, subject)
	return nil
}

// Dispatcher consumes lifecycle events off a buffered channel on its own
// goroutine, keeping notification work out of the transactional path. Emit
// never blocks: when the buffer is full the event is dropped and logged.
type Dispatcher struct {
	mu     sync.Mutex
	closed bool
	ch     chan event.Event
	mail   EmailSender
	done   chan struct{}
}

var _ event.Emitter = (*Dispatcher)(nil)

func NewDispatcher(buffer int, mail EmailSender) *Dispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	if mail == nil {
		mail = LogEmailSender{}
	}
	d := &Dispatcher{
		ch:   make(chan event.Event, buffer),
		mail: mail,
		done: make(chan struct{}),
	}
	go d.run()
	return d
}

func (d *Dispatcher) Emit(_ context.Context, e event.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return errors.New("notifier: dispatcher closed")
	}
	select {
	case d.ch <- e:
		return nil
	default:
		return fmt.Errorf("notifier: buffer full, event %s dropped", e.Type)
	}
}

// Close stops the loop after draining buffered events.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.ch)
	}
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for e := range d.ch {
		d.deliver(e)
	}
}

func (d *Dispatcher) deliver(e event.Event) {
	to, _ := e.Payload["client_id"].(string)
	subject := subjectFor(e.Type)
	if err := d.mail.Send(context.Background(), to, subject, e.ID); err != nil {
		// best effort: log and drop, the financial mutation already committed
		log.Printf("notifier: delivery failed for %s (%s): %v", e.Type, e.ID, err)
	}
}

func subjectFor(t event.Type) string {
	switch t {
	case event.TypePurchaseRequested:
		return "We received your purchase request"
	case event.TypeFinancingDecision:
		return "Your financing evaluation is ready"
	case event.TypePurchaseCompleted:
		return "Your purchase is complete"
	case event.TypePaymentRegistered:
		return "Payment received"
	}
	return string(t)
}
