package eventmock

import (
	"context"
	"sync"

	"autocredit-backend/internal/domain/event"
)

// Emitter records emitted events for assertions; optionally fails every
// emit to exercise the log-and-drop path.
type Emitter struct {
	mu     sync.Mutex
	Events []event.Event
	Err    error
}

var _ event.Emitter = (*Emitter)(nil)

func (m *Emitter) Emit(_ context.Context, e event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, e)
	return nil
}

func (m *Emitter) ByType(t event.Type) []event.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []event.Event
	for _, e := range m.Events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
