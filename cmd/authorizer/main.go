package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardledger/card_ledger_app/internal/apperrors"
	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/core/ledger"
	portssvc "github.com/cardledger/card_ledger_app/internal/core/ports/services"
	"github.com/cardledger/card_ledger_app/internal/core/services"
	"github.com/cardledger/card_ledger_app/internal/events"
)

// The authorizer drives the card ledger from a stream of JSON records, one
// per stdin line, and answers each with the resulting account state plus any
// violations:
//
//	{"account": {"active-card": true, "available-limit": 100}}
//	{"transaction": {"merchant": "Burguer King", "amount": 20, "time": "2022-07-08T09:10:11Z"}}
//
// An account record issues the card with the given limit (and activates it
// when active-card is true); a transaction record attempts a purchase.

type accountRecord struct {
	ActiveCard     bool            `json:"active-card"`
	AvailableLimit decimal.Decimal `json:"available-limit"`
}

type transactionRecord struct {
	Merchant string          `json:"merchant"`
	Amount   decimal.Decimal `json:"amount"`
	Time     time.Time       `json:"time"`
}

type inputRecord struct {
	Account     *accountRecord     `json:"account"`
	Transaction *transactionRecord `json:"transaction"`
}

type accountState struct {
	ActiveCard     bool            `json:"active-card"`
	AvailableLimit decimal.Decimal `json:"available-limit"`
}

type outputRecord struct {
	Account    accountState `json:"account"`
	Violations []string     `json:"violations"`
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cardService := services.NewCardService(
		ledger.New(ledger.NewMovementGenerator()),
		events.NoopPublisher{},
	)

	scanner := bufio.NewScanner(os.Stdin)
	encoder := json.NewEncoder(os.Stdout)
	ctx := context.Background()

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record inputRecord
		if err := json.Unmarshal(line, &record); err != nil {
			logger.Warn("Skipping malformed input line", slog.String("error", err.Error()))
			continue
		}

		violations := processRecord(ctx, cardService, record)
		out := outputRecord{
			Account:    currentState(ctx, cardService),
			Violations: violations,
		}
		if err := encoder.Encode(out); err != nil {
			logger.Error("Failed to write output", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Error("Failed to read input", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func processRecord(ctx context.Context, svc portssvc.CardSvcFacade, record inputRecord) []string {
	switch {
	case record.Account != nil:
		if _, err := svc.IssueCard(ctx, record.Account.AvailableLimit); err != nil {
			return []string{violationCode(err)}
		}
		if record.Account.ActiveCard {
			if _, err := svc.ActivateCard(ctx); err != nil {
				return []string{violationCode(err)}
			}
		}
		return []string{}
	case record.Transaction != nil:
		if err := svc.ProcessPurchase(ctx, record.Transaction.Merchant, record.Transaction.Amount); err != nil {
			return []string{violationCode(err)}
		}
		return []string{}
	default:
		return []string{"unknown-record"}
	}
}

func currentState(ctx context.Context, svc portssvc.CardSvcFacade) accountState {
	return accountState{
		ActiveCard:     svc.GetCard(ctx).Status == domain.CardActive,
		AvailableLimit: svc.GetBalance(ctx),
	}
}

func violationCode(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrCardAlreadyIssued):
		return "account-already-initialized"
	case errors.Is(err, apperrors.ErrCardNotIssued):
		return "account-not-initialized"
	case errors.Is(err, apperrors.ErrCardInactive):
		return "card-not-active"
	case errors.Is(err, apperrors.ErrInsufficientLimit):
		return "insufficient-limit"
	case errors.Is(err, apperrors.ErrDoubleTransaction):
		return "doubled-transaction"
	case errors.Is(err, apperrors.ErrBookAccountNonExistent):
		return "book-account-nonexistent"
	case errors.Is(err, apperrors.ErrValidation):
		return "invalid-amount"
	default:
		return "unexpected-error"
	}
}
