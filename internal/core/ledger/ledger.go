package ledger

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/cardledger/card_ledger_app/internal/apperrors"
	"github.com/cardledger/card_ledger_app/internal/core/domain"
)

// Ledger owns one card's lifecycle state, the account registry and the
// append-only journal. Every public operation validates the command against
// the current card state, asks the movement generator for the entry set and
// applies it all-or-nothing.
//
// A single mutex guards card, registry and journal together: each operation
// is one indivisible critical section, so partial application of a multi-entry
// event is never observable.
type Ledger struct {
	mu        sync.Mutex
	card      domain.Card
	accounts  *AccountRegistry
	journal   []domain.Entry
	movements *MovementGenerator
}

// New creates a fresh ledger with a not-issued card, a zeroed chart of
// accounts and an empty journal.
func New(movements *MovementGenerator) *Ledger {
	return &Ledger{
		card: domain.Card{
			Status:   domain.CardNotIssued,
			MaxLimit: decimal.Zero,
		},
		accounts:  NewAccountRegistry(),
		movements: movements,
	}
}

// process is the atomic application primitive behind every operation: it
// verifies that every referenced account exists before mutating anything,
// then applies each entry to the registry and appends it to the journal.
// A rejected set leaves accounts and journal untouched.
func (l *Ledger) process(entries []domain.Entry) error {
	for _, entry := range entries {
		if _, err := l.accounts.Lookup(entry.DebitAccount); err != nil {
			return err
		}
		if _, err := l.accounts.Lookup(entry.CreditAccount); err != nil {
			return err
		}
	}

	for _, entry := range entries {
		if err := l.accounts.Apply(entry); err != nil {
			return err
		}
		l.journal = append(l.journal, entry)
	}
	return nil
}

// IssueCard issues the card with the given permanent limit and posts the
// issuance entries. Only legal on a not-issued card.
func (l *Ledger) IssueCard(maxLimit decimal.Decimal) (domain.CardStatus, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.card.Status != domain.CardNotIssued {
		return l.card.Status, apperrors.ErrCardAlreadyIssued
	}
	if maxLimit.LessThanOrEqual(decimal.Zero) {
		return l.card.Status, fmt.Errorf("%w: max limit must be positive, got %s", apperrors.ErrValidation, maxLimit)
	}

	if err := l.process(l.movements.CardIssued(maxLimit)); err != nil {
		return l.card.Status, err
	}
	l.card = domain.Card{
		Status:   domain.CardInactive,
		MaxLimit: maxLimit,
	}
	return l.card.Status, nil
}

// ActivateCard moves an issued card to Active. Activating an already active
// card succeeds and stays Active; Active is terminal, there is no
// deactivation path.
func (l *Ledger) ActivateCard() (domain.CardStatus, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.card.Status == domain.CardNotIssued {
		return l.card.Status, apperrors.ErrCardNotIssued
	}
	l.card.Status = domain.CardActive
	return l.card.Status, nil
}

// ProcessPurchase books a purchase on an active card.
//
// The duplicate check compares merchant and amount against the single most
// recently journaled entry only. This is a bounded heuristic against
// accidental double submission, not exactly-once idempotency over the whole
// journal.
func (l *Ledger) ProcessPurchase(merchant string, amount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.card.Status {
	case domain.CardNotIssued:
		return apperrors.ErrCardNotIssued
	case domain.CardInactive:
		return apperrors.ErrCardInactive
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: purchase amount must be positive, got %s", apperrors.ErrValidation, amount)
	}

	if last, ok := l.lastEntry(); ok && last.Merchant != nil {
		if *last.Merchant == merchant && last.Amount.Equal(amount) {
			return apperrors.ErrDoubleTransaction
		}
	}

	if l.availableLimit().LessThan(amount) {
		return apperrors.ErrInsufficientLimit
	}

	return l.process(l.movements.Purchase(merchant, amount))
}

// CloseBill closes the current bill: the absolute settled balance moves to
// the receivable account. Closing with nothing settled posts no entries.
func (l *Ledger) CloseBill() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.card.Status == domain.CardNotIssued {
		return apperrors.ErrCardNotIssued
	}

	closedAmount, err := l.accounts.Balance(domain.AssetSettled)
	if err != nil {
		return err
	}
	if closedAmount.IsZero() {
		return nil
	}
	return l.process(l.movements.ClosedBill(closedAmount))
}

// ProcessPayment records a payment against the closed bill, restoring
// spendable limit and booking the bank-side cash movement.
func (l *Ledger) ProcessPayment(paymentAmount decimal.Decimal) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.card.Status == domain.CardNotIssued {
		return apperrors.ErrCardNotIssued
	}
	if paymentAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: payment amount must be positive, got %s", apperrors.ErrValidation, paymentAmount)
	}
	return l.process(l.movements.Payment(paymentAmount))
}

// Balance returns the currently available spending room: the absolute value
// of the AssetCurrentLimit amount.
func (l *Ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.availableLimit()
}

// Card returns the current card state.
func (l *Ledger) Card() domain.Card {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.card
}

// Journal returns a copy of the journal in processing order.
func (l *Ledger) Journal() []domain.Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	journal := make([]domain.Entry, len(l.journal))
	copy(journal, l.journal)
	return journal
}

// Accounts returns a snapshot of the full chart of accounts.
func (l *Ledger) Accounts() map[domain.BookAccount]domain.AccountInfo {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.accounts.Snapshot()
}

func (l *Ledger) availableLimit() decimal.Decimal {
	// The chart of accounts is fixed, so this lookup cannot miss.
	balance, err := l.accounts.Balance(domain.AssetCurrentLimit)
	if err != nil {
		return decimal.Zero
	}
	return balance
}

func (l *Ledger) lastEntry() (domain.Entry, bool) {
	if len(l.journal) == 0 {
		return domain.Entry{}, false
	}
	return l.journal[len(l.journal)-1], true
}
