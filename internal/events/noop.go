package events

import (
	"context"

	"github.com/cardledger/card_ledger_app/internal/core/ports"
)

// NoopPublisher discards every event. Used when no broker is configured.
type NoopPublisher struct{}

var _ ports.EventPublisher = NoopPublisher{}

func (NoopPublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}
