package dto

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
)

// IssueCardRequest defines the data needed to issue the card.
type IssueCardRequest struct {
	MaxLimit decimal.Decimal `json:"maxLimit" binding:"required,decimal_gt_zero"`
}

// PurchaseRequest defines the data needed to book a purchase.
type PurchaseRequest struct {
	Merchant string          `json:"merchant" binding:"required"`
	Amount   decimal.Decimal `json:"amount" binding:"required,decimal_gt_zero"`
}

// PaymentRequest defines the data needed to record a payment.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,decimal_gt_zero"`
}

// CardResponse defines the data returned for the card state.
type CardResponse struct {
	Status   domain.CardStatus `json:"status"`
	MaxLimit decimal.Decimal   `json:"maxLimit"`
}

// BalanceResponse defines the data returned for a balance query:
// the currently available spending room.
type BalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}

// EntryResponse defines the data returned for one journal entry.
type EntryResponse struct {
	EntryID       string             `json:"entryID"`
	Amount        decimal.Decimal    `json:"amount"`
	DebitAccount  domain.BookAccount `json:"debitAccount"`
	CreditAccount domain.BookAccount `json:"creditAccount"`
	PostDate      time.Time          `json:"postDate"`
	Merchant      *string            `json:"merchant,omitempty"`
}

// JournalResponse wraps the full journal in processing order.
type JournalResponse struct {
	Entries []EntryResponse `json:"entries"`
}

// AccountResponse defines the data returned for one book account.
type AccountResponse struct {
	Account     domain.BookAccount `json:"account"`
	AccountType domain.AccountType `json:"accountType"`
	Amount      decimal.Decimal    `json:"amount"`
	Version     uint32             `json:"version"`
	OffBalance  bool               `json:"offBalance"`
}

// ToCardResponse converts a domain.Card to a CardResponse DTO.
func ToCardResponse(card domain.Card) CardResponse {
	return CardResponse{
		Status:   card.Status,
		MaxLimit: card.MaxLimit,
	}
}

// ToEntryResponse converts a domain.Entry to an EntryResponse DTO.
func ToEntryResponse(entry domain.Entry) EntryResponse {
	return EntryResponse{
		EntryID:       entry.EntryID,
		Amount:        entry.Amount,
		DebitAccount:  entry.DebitAccount,
		CreditAccount: entry.CreditAccount,
		PostDate:      entry.PostDate,
		Merchant:      entry.Merchant,
	}
}

// ToJournalResponse converts the journal to its response DTO.
func ToJournalResponse(entries []domain.Entry) JournalResponse {
	res := JournalResponse{Entries: make([]EntryResponse, len(entries))}
	for i, entry := range entries {
		res.Entries[i] = ToEntryResponse(entry)
	}
	return res
}

// ToAccountsResponse converts the registry snapshot to a stable, sorted list.
func ToAccountsResponse(accounts map[domain.BookAccount]domain.AccountInfo) []AccountResponse {
	res := make([]AccountResponse, 0, len(accounts))
	for account, info := range accounts {
		res = append(res, AccountResponse{
			Account:     account,
			AccountType: account.Type(),
			Amount:      info.Amount,
			Version:     info.Version,
			OffBalance:  info.OffBalance,
		})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Account < res[j].Account })
	return res
}
