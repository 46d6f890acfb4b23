package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one leg-pair of a double-entry posting: the given amount is
// subtracted from the debit account and added to the credit account.
// Entries generated together for a single economic event share an EntryID.
// Entries are immutable once created; processing only appends them to the
// journal, it never edits one.
type Entry struct {
	EntryID       string          `json:"entryID"`
	Amount        decimal.Decimal `json:"amount"` // always strictly positive
	DebitAccount  BookAccount     `json:"debitAccount"`
	CreditAccount BookAccount     `json:"creditAccount"`
	PostDate      time.Time       `json:"postDate"`
	Merchant      *string         `json:"merchant,omitempty"` // set only on purchase legs
}
