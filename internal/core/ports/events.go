package ports

import "context"

// EventPublisher pushes domain events to an external broker. The ledger is
// the source of truth; publish failures must never roll a command back.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event any) error
}
