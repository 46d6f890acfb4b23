package domain

import (
	"github.com/shopspring/decimal"
)

// CardStatus is the lifecycle state of the card. Transitions are
// one-directional: NotIssued -> Inactive -> Active, with no regression.
type CardStatus string

const (
	CardNotIssued CardStatus = "NOT_ISSUED"
	CardInactive  CardStatus = "INACTIVE"
	CardActive    CardStatus = "ACTIVE"
)

// Card holds the lifecycle state and the permanent credit ceiling.
// MaxLimit is set once at issuance and never changes afterwards.
type Card struct {
	Status   CardStatus      `json:"status"`
	MaxLimit decimal.Decimal `json:"maxLimit"`
}
