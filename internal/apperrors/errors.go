package apperrors

import "errors"

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// The errors below are the closed set of business-rule violations the card
// ledger can report. All of them are recoverable by the caller and leave the
// ledger state untouched.
var (
	// ErrInsufficientLimit indicates a purchase larger than the available limit.
	ErrInsufficientLimit = errors.New("insufficient limit")

	// ErrCardAlreadyIssued indicates a second issuance attempt on the same ledger.
	ErrCardAlreadyIssued = errors.New("card already issued")

	// ErrCardNotIssued indicates an operation attempted before the card was issued.
	ErrCardNotIssued = errors.New("card not issued")

	// ErrCardInactive indicates a purchase attempted before card activation.
	ErrCardInactive = errors.New("card inactive")

	// ErrBookAccountNonExistent indicates an entry referencing an account the
	// registry does not hold. Unreachable with the fixed chart of accounts, but
	// entries are constructed independently of the registry, so every lookup
	// stays guarded.
	ErrBookAccountNonExistent = errors.New("book account nonexistent")

	// ErrDoubleTransaction indicates a purchase with the same merchant and
	// amount as the immediately preceding journal entry.
	ErrDoubleTransaction = errors.New("doubled transaction")
)
