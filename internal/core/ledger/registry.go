package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cardledger/card_ledger_app/internal/apperrors"
	"github.com/cardledger/card_ledger_app/internal/core/domain"
)

// AccountRegistry holds the fixed chart of accounts with their running
// balances. The key set is created once and never changes; only the
// AccountInfo values mutate.
type AccountRegistry struct {
	accounts map[domain.BookAccount]*domain.AccountInfo
}

// NewAccountRegistry builds the registry with every book account at a zero
// balance and version 0.
func NewAccountRegistry() *AccountRegistry {
	accounts := make(map[domain.BookAccount]*domain.AccountInfo, len(domain.AllBookAccounts()))
	for _, acc := range domain.AllBookAccounts() {
		accounts[acc] = &domain.AccountInfo{
			Amount:     decimal.Zero,
			Version:    0,
			OffBalance: acc.OffBalance(),
		}
	}
	return &AccountRegistry{accounts: accounts}
}

// Lookup returns the state of one book account.
func (r *AccountRegistry) Lookup(account domain.BookAccount) (domain.AccountInfo, error) {
	info, ok := r.accounts[account]
	if !ok {
		return domain.AccountInfo{}, fmt.Errorf("%w: %s", apperrors.ErrBookAccountNonExistent, account)
	}
	return *info, nil
}

// Apply posts one entry to both of its accounts at once: the amount is
// subtracted from the debit account and added to the credit account, and both
// version counters are bumped. Both accounts are resolved before either is
// touched, so a missing account leaves the registry unchanged.
func (r *AccountRegistry) Apply(entry domain.Entry) error {
	debit, ok := r.accounts[entry.DebitAccount]
	if !ok {
		return fmt.Errorf("%w: debit %s", apperrors.ErrBookAccountNonExistent, entry.DebitAccount)
	}
	credit, ok := r.accounts[entry.CreditAccount]
	if !ok {
		return fmt.Errorf("%w: credit %s", apperrors.ErrBookAccountNonExistent, entry.CreditAccount)
	}

	debit.Amount = debit.Amount.Sub(entry.Amount)
	debit.Version++
	credit.Amount = credit.Amount.Add(entry.Amount)
	credit.Version++
	return nil
}

// Balance returns the absolute value of the account's signed amount.
func (r *AccountRegistry) Balance(account domain.BookAccount) (decimal.Decimal, error) {
	info, err := r.Lookup(account)
	if err != nil {
		return decimal.Zero, err
	}
	return info.Amount.Abs(), nil
}

// Snapshot returns a copy of the full registry state.
func (r *AccountRegistry) Snapshot() map[domain.BookAccount]domain.AccountInfo {
	snapshot := make(map[domain.BookAccount]domain.AccountInfo, len(r.accounts))
	for acc, info := range r.accounts {
		snapshot[acc] = *info
	}
	return snapshot
}
