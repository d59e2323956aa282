package events

import interfaces "github.com/sheikh-saqib/payments-transaction-engine/internal/interfaces"

// NopPublisher discards every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(topic string, event any) error {
	return nil
}

var _ interfaces.EventPublisher = NopPublisher{}
