package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
)

// interchangeFeeRate is the share of every purchase skimmed into the
// interchange equity account. 2% of a positive amount can never exceed the
// amount itself, so the fee leg is always smaller than the settlement leg.
var interchangeFeeRate = decimal.New(2, -2) // 0.02

// MovementGenerator translates business events into the ordered set of
// balanced ledger entries each event implies. It holds no ledger state; its
// only side effects are sourcing the entry id and the posting timestamp, both
// injectable so tests stay deterministic.
//
// No method returns an empty set or an entry with a non-positive amount: a
// leg whose amount rounds to zero is omitted.
type MovementGenerator struct {
	now   func() time.Time
	newID func() string
}

// NewMovementGenerator returns a generator stamping entries with the current
// UTC time and fresh UUIDs.
func NewMovementGenerator() *MovementGenerator {
	return &MovementGenerator{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// NewMovementGeneratorWithSources returns a generator using the given clock
// and id source. Intended for tests and for callers that need a single
// authoritative clock per ledger.
func NewMovementGeneratorWithSources(now func() time.Time, newID func() string) *MovementGenerator {
	return &MovementGenerator{now: now, newID: newID}
}

// CardIssued establishes both the permanent ceiling and the currently
// spendable limit for a freshly issued card.
func (g *MovementGenerator) CardIssued(maxLimit decimal.Decimal) []domain.Entry {
	now := g.now()
	id := g.newID()

	return []domain.Entry{
		{
			EntryID:       id,
			DebitAccount:  domain.AssetMaxCurrentLimit,
			CreditAccount: domain.LiabilityMaxCurrentLimitCp,
			Amount:        maxLimit,
			PostDate:      now,
		},
		{
			EntryID:       id,
			DebitAccount:  domain.AssetCurrentLimit,
			CreditAccount: domain.LiabilityCurrentLimitCp,
			Amount:        maxLimit,
			PostDate:      now,
		},
	}
}

// Purchase settles the purchase against the payable account, skims the
// interchange fee and consumes spendable limit.
//
// The fee is amount * 2%, rounded half away from zero to 2 decimal places
// (the rounding decimal.Decimal.Round applies). If the fee rounds to zero the
// interchange leg is omitted rather than posting a zero-amount entry.
func (g *MovementGenerator) Purchase(merchant string, amount decimal.Decimal) []domain.Entry {
	now := g.now()
	id := g.newID()
	interchange := amount.Mul(interchangeFeeRate).Round(2)

	entries := []domain.Entry{
		{
			EntryID:       id,
			DebitAccount:  domain.AssetSettled,
			CreditAccount: domain.LiabilityPayable,
			Amount:        amount,
			PostDate:      now,
			Merchant:      &merchant,
		},
	}
	if interchange.IsPositive() {
		entries = append(entries, domain.Entry{
			EntryID:       id,
			DebitAccount:  domain.LiabilityPayable,
			CreditAccount: domain.EquityInterchange,
			Amount:        interchange,
			PostDate:      now,
			Merchant:      &merchant,
		})
	}
	entries = append(entries, domain.Entry{
		EntryID:       id,
		DebitAccount:  domain.LiabilityCurrentLimitCp,
		CreditAccount: domain.AssetCurrentLimit,
		Amount:        amount,
		PostDate:      now,
		Merchant:      &merchant,
	})
	return entries
}

// ClosedBill moves the settled balance into the receivable account at bill
// close. closedAmount is the absolute settled balance at close time, supplied
// by the caller.
func (g *MovementGenerator) ClosedBill(closedAmount decimal.Decimal) []domain.Entry {
	return []domain.Entry{
		{
			EntryID:       g.newID(),
			DebitAccount:  domain.LiabilityReceivable,
			CreditAccount: domain.AssetSettled,
			Amount:        closedAmount,
			PostDate:      g.now(),
		},
	}
}

// Payment restores spendable limit and records the bank-side cash movement.
func (g *MovementGenerator) Payment(paymentAmount decimal.Decimal) []domain.Entry {
	now := g.now()
	id := g.newID()

	return []domain.Entry{
		{
			EntryID:       id,
			DebitAccount:  domain.AssetCurrentLimit,
			CreditAccount: domain.LiabilityCurrentLimitCp,
			Amount:        paymentAmount,
			PostDate:      now,
		},
		{
			EntryID:       id,
			DebitAccount:  domain.AssetTransitoryBank,
			CreditAccount: domain.LiabilityReceivable,
			Amount:        paymentAmount,
			PostDate:      now,
		},
	}
}
