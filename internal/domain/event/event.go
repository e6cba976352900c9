package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePurchaseRequested Type = "purchase.requested"
	TypeFinancingDecision Type = "purchase.financing_decision"
	TypePurchaseCompleted Type = "purchase.completed"
	TypePaymentRegistered Type = "payment.registered"
)

// Event is the structured lifecycle payload handed to the notification
// dispatcher. The core never blocks on, nor observes, delivery.
type Event struct {
	ID         string         `json:"id"`
	Type       Type           `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

func New(t Type, payload map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Emitter hands events to the out-of-core dispatcher. Implementations must
// be non-blocking; a returned error is logged by the caller and dropped,
// never rolled into a financial mutation.
type Emitter interface {
	Emit(ctx context.Context, e Event) error
}
