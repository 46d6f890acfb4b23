package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/core/ledger"
	"github.com/cardledger/card_ledger_app/internal/core/ports"
	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"
	"github.com/cardledger/card_ledger_app/internal/middleware"
)

// EntriesPostedTopic is the broker topic ledger events are published to.
const EntriesPostedTopic = "card_ledger.entries_posted"

// cardService exposes the card ledger to the transport layer and publishes an
// event after every successful command. The ledger itself stays the source of
// truth: a failed publish is logged and swallowed.
type cardService struct {
	ledger    *ledger.Ledger
	publisher ports.EventPublisher
}

// NewCardService creates a new CardService around the given ledger.
func NewCardService(l *ledger.Ledger, publisher ports.EventPublisher) portssvc.CardSvcFacade {
	return &cardService{
		ledger:    l,
		publisher: publisher,
	}
}

var _ portssvc.CardSvcFacade = (*cardService)(nil)

func (s *cardService) IssueCard(ctx context.Context, maxLimit decimal.Decimal) (domain.CardStatus, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journalLen := len(s.ledger.Journal())
	status, err := s.ledger.IssueCard(maxLimit)
	if err != nil {
		logger.Warn("Card issuance rejected", slog.String("error", err.Error()))
		return status, err
	}

	logger.Info("Card issued", slog.String("max_limit", maxLimit.String()))
	s.publish(ctx, "card_issued", status, journalLen)
	return status, nil
}

func (s *cardService) ActivateCard(ctx context.Context) (domain.CardStatus, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journalLen := len(s.ledger.Journal())
	status, err := s.ledger.ActivateCard()
	if err != nil {
		logger.Warn("Card activation rejected", slog.String("error", err.Error()))
		return status, err
	}

	logger.Info("Card activated")
	s.publish(ctx, "card_activated", status, journalLen)
	return status, nil
}

func (s *cardService) ProcessPurchase(ctx context.Context, merchant string, amount decimal.Decimal) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	journalLen := len(s.ledger.Journal())
	if err := s.ledger.ProcessPurchase(merchant, amount); err != nil {
		logger.Warn("Purchase rejected", slog.String("merchant", merchant), slog.String("amount", amount.String()), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Purchase processed", slog.String("merchant", merchant), slog.String("amount", amount.String()))
	s.publish(ctx, "purchase", s.ledger.Card().Status, journalLen)
	return nil
}

func (s *cardService) CloseBill(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	journalLen := len(s.ledger.Journal())
	if err := s.ledger.CloseBill(); err != nil {
		logger.Warn("Bill closing rejected", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Bill closed")
	s.publish(ctx, "bill_closed", s.ledger.Card().Status, journalLen)
	return nil
}

func (s *cardService) ProcessPayment(ctx context.Context, amount decimal.Decimal) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	journalLen := len(s.ledger.Journal())
	if err := s.ledger.ProcessPayment(amount); err != nil {
		logger.Warn("Payment rejected", slog.String("amount", amount.String()), slog.String("error", err.Error()))
		return err
	}

	logger.Info("Payment processed", slog.String("amount", amount.String()))
	s.publish(ctx, "payment", s.ledger.Card().Status, journalLen)
	return nil
}

func (s *cardService) GetCard(ctx context.Context) domain.Card {
	return s.ledger.Card()
}

func (s *cardService) GetBalance(ctx context.Context) decimal.Decimal {
	return s.ledger.Balance()
}

func (s *cardService) ListJournal(ctx context.Context) []domain.Entry {
	return s.ledger.Journal()
}

func (s *cardService) ListAccounts(ctx context.Context) map[domain.BookAccount]domain.AccountInfo {
	return s.ledger.Accounts()
}

// publish emits the entries appended since journalLen. Publish failures are
// logged and dropped; the applied command is never rolled back for them.
func (s *cardService) publish(ctx context.Context, operation string, status domain.CardStatus, journalLen int) {
	journal := s.ledger.Journal()
	var entries []domain.Entry
	if journalLen <= len(journal) {
		entries = journal[journalLen:]
	}

	event := domain.EntriesPostedEvent{
		EventID:    uuid.NewString(),
		Operation:  operation,
		CardStatus: status,
		OccurredAt: time.Now().UTC(),
		Entries:    entries,
	}
	if err := s.publisher.Publish(ctx, EntriesPostedTopic, event); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to publish ledger event",
			slog.String("operation", operation), slog.String("error", err.Error()))
	}
}
