package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of a book account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
)

// BookAccount names one account of the fixed chart of accounts.
// The universe is closed: every value is created once at ledger construction
// and never added to or removed at runtime.
type BookAccount string

const (
	AssetSettled               BookAccount = "ASSET_SETTLED"
	AssetCurrentLimit          BookAccount = "ASSET_CURRENT_LIMIT"
	AssetMaxCurrentLimit       BookAccount = "ASSET_MAX_CURRENT_LIMIT"
	AssetTransitoryBank        BookAccount = "ASSET_TRANSITORY_BANK"
	LiabilityPayable           BookAccount = "LIABILITY_PAYABLE"
	LiabilityReceivable        BookAccount = "LIABILITY_RECEIVABLE"
	LiabilityCurrentLimitCp    BookAccount = "LIABILITY_CURRENT_LIMIT_CP"
	LiabilityMaxCurrentLimitCp BookAccount = "LIABILITY_MAX_CURRENT_LIMIT_CP"
	EquityInterchange          BookAccount = "EQUITY_INTERCHANGE"
)

// AllBookAccounts lists the full chart of accounts in a stable order.
func AllBookAccounts() []BookAccount {
	return []BookAccount{
		AssetSettled,
		AssetCurrentLimit,
		AssetMaxCurrentLimit,
		AssetTransitoryBank,
		LiabilityPayable,
		LiabilityReceivable,
		LiabilityCurrentLimitCp,
		LiabilityMaxCurrentLimitCp,
		EquityInterchange,
	}
}

// Type returns the accounting category the book account belongs to.
func (b BookAccount) Type() AccountType {
	switch b {
	case AssetSettled, AssetCurrentLimit, AssetMaxCurrentLimit, AssetTransitoryBank:
		return Asset
	case EquityInterchange:
		return Equity
	default:
		return Liability
	}
}

// OffBalance reports whether the account tracks credit-limit shadow accounting
// rather than real settled money.
func (b BookAccount) OffBalance() bool {
	switch b {
	case AssetCurrentLimit, LiabilityCurrentLimitCp, AssetMaxCurrentLimit, LiabilityMaxCurrentLimitCp:
		return true
	}
	return false
}

// AccountInfo holds the mutable state of one book account.
// Amount is the signed running balance; Version counts the postings applied
// to the account (debit or credit), starting at 0.
type AccountInfo struct {
	Amount     decimal.Decimal `json:"amount"`
	Version    uint32          `json:"version"`
	OffBalance bool            `json:"offBalance"`
}
