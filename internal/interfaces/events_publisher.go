package interfaces

// EventPublisher notifies downstream consumers of committed ledger writes.
// Publishing is best-effort: the statement is already durable by the time
// an event goes out.
type EventPublisher interface {
	Publish(topic string, event any) error
}
