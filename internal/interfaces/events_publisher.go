package interfaces

// EventPublisher emits domain events to an external broker. Publishing is
// best-effort from the engine's point of view; a failed publish never fails
// the transaction that triggered it.
type EventPublisher interface {
	Publish(topic string, event any) error
}
