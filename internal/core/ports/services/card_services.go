package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
)

// CardReaderSvc defines the read-only views over the card ledger.
type CardReaderSvc interface {
	// GetCard returns the card's lifecycle state and permanent limit.
	GetCard(ctx context.Context) domain.Card

	// GetBalance returns the currently available spending room.
	GetBalance(ctx context.Context) decimal.Decimal

	// ListJournal returns every applied entry in processing order.
	ListJournal(ctx context.Context) []domain.Entry

	// ListAccounts returns the full chart of accounts with running balances.
	ListAccounts(ctx context.Context) map[domain.BookAccount]domain.AccountInfo
}

// CardWriterSvc defines the guarded commands of the card lifecycle.
type CardWriterSvc interface {
	// IssueCard issues the card with the given permanent limit.
	IssueCard(ctx context.Context, maxLimit decimal.Decimal) (domain.CardStatus, error)

	// ActivateCard moves an issued card to Active.
	ActivateCard(ctx context.Context) (domain.CardStatus, error)

	// ProcessPurchase books a purchase against the available limit.
	ProcessPurchase(ctx context.Context, merchant string, amount decimal.Decimal) error

	// CloseBill closes the current bill over the settled balance.
	CloseBill(ctx context.Context) error

	// ProcessPayment records a payment against the closed bill.
	ProcessPayment(ctx context.Context, amount decimal.Decimal) error
}

// CardSvcFacade combines all card ledger operations.
type CardSvcFacade interface {
	CardReaderSvc
	CardWriterSvc
}

// ServiceContainer holds instances of all the application services and is the
// entry point handlers use to reach functionality.
type ServiceContainer struct {
	Card CardSvcFacade
}
