package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/core/ledger"
)

var testPostDate = time.Date(2023, 5, 14, 10, 30, 0, 0, time.UTC)

func fixedGenerator(id string) *ledger.MovementGenerator {
	return ledger.NewMovementGeneratorWithSources(
		func() time.Time { return testPostDate },
		func() string { return id },
	)
}

func TestMovementGenerator_CardIssued(t *testing.T) {
	gen := fixedGenerator("issue-1")

	entries := gen.CardIssued(decimal.RequireFromString("1000.00"))

	require.Len(t, entries, 2)

	assert.Equal(t, domain.AssetMaxCurrentLimit, entries[0].DebitAccount)
	assert.Equal(t, domain.LiabilityMaxCurrentLimitCp, entries[0].CreditAccount)
	assert.Equal(t, domain.AssetCurrentLimit, entries[1].DebitAccount)
	assert.Equal(t, domain.LiabilityCurrentLimitCp, entries[1].CreditAccount)

	for _, entry := range entries {
		assert.Equal(t, "issue-1", entry.EntryID)
		assert.True(t, entry.Amount.Equal(decimal.RequireFromString("1000.00")))
		assert.Equal(t, testPostDate, entry.PostDate)
		assert.Nil(t, entry.Merchant)
	}
}

func TestMovementGenerator_Purchase(t *testing.T) {
	gen := fixedGenerator("purchase-1")

	entries := gen.Purchase("Burguer King", decimal.RequireFromString("20.00"))

	require.Len(t, entries, 3)

	settlement := entries[0]
	assert.Equal(t, domain.AssetSettled, settlement.DebitAccount)
	assert.Equal(t, domain.LiabilityPayable, settlement.CreditAccount)
	assert.True(t, settlement.Amount.Equal(decimal.RequireFromString("20.00")))

	interchange := entries[1]
	assert.Equal(t, domain.LiabilityPayable, interchange.DebitAccount)
	assert.Equal(t, domain.EquityInterchange, interchange.CreditAccount)
	assert.True(t, interchange.Amount.Equal(decimal.RequireFromString("0.40")), "fee should be 2 percent of 20.00")

	limit := entries[2]
	assert.Equal(t, domain.LiabilityCurrentLimitCp, limit.DebitAccount)
	assert.Equal(t, domain.AssetCurrentLimit, limit.CreditAccount)
	assert.True(t, limit.Amount.Equal(decimal.RequireFromString("20.00")))

	for _, entry := range entries {
		assert.Equal(t, "purchase-1", entry.EntryID)
		require.NotNil(t, entry.Merchant)
		assert.Equal(t, "Burguer King", *entry.Merchant)
	}
}

func TestMovementGenerator_PurchaseFeeRounding(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		wantFee string
	}{
		{name: "rounds half away from zero", amount: "33.33", wantFee: "0.67"},
		{name: "exact fee", amount: "100.00", wantFee: "2.00"},
		{name: "rounds down", amount: "10.10", wantFee: "0.20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := fixedGenerator("p").Purchase("m", decimal.RequireFromString(tt.amount))

			require.Len(t, entries, 3)
			fee := entries[1]
			assert.Equal(t, domain.EquityInterchange, fee.CreditAccount)
			assert.True(t, fee.Amount.Equal(decimal.RequireFromString(tt.wantFee)),
				"fee for %s: want %s, got %s", tt.amount, tt.wantFee, fee.Amount)
			assert.True(t, fee.Amount.LessThanOrEqual(entries[0].Amount))
		})
	}
}

func TestMovementGenerator_PurchaseOmitsZeroFeeLeg(t *testing.T) {
	// 0.10 * 0.02 = 0.002, which rounds to 0.00: no zero-amount entries allowed.
	entries := fixedGenerator("p").Purchase("m", decimal.RequireFromString("0.10"))

	require.Len(t, entries, 2)
	assert.Equal(t, domain.AssetSettled, entries[0].DebitAccount)
	assert.Equal(t, domain.AssetCurrentLimit, entries[1].CreditAccount)
	for _, entry := range entries {
		assert.True(t, entry.Amount.IsPositive())
	}
}

func TestMovementGenerator_ClosedBill(t *testing.T) {
	entries := fixedGenerator("close-1").ClosedBill(decimal.RequireFromString("20.00"))

	require.Len(t, entries, 1)
	assert.Equal(t, domain.LiabilityReceivable, entries[0].DebitAccount)
	assert.Equal(t, domain.AssetSettled, entries[0].CreditAccount)
	assert.True(t, entries[0].Amount.Equal(decimal.RequireFromString("20.00")))
	assert.Nil(t, entries[0].Merchant)
}

func TestMovementGenerator_Payment(t *testing.T) {
	entries := fixedGenerator("pay-1").Payment(decimal.RequireFromString("20.00"))

	require.Len(t, entries, 2)

	assert.Equal(t, domain.AssetCurrentLimit, entries[0].DebitAccount)
	assert.Equal(t, domain.LiabilityCurrentLimitCp, entries[0].CreditAccount)
	assert.Equal(t, domain.AssetTransitoryBank, entries[1].DebitAccount)
	assert.Equal(t, domain.LiabilityReceivable, entries[1].CreditAccount)

	for _, entry := range entries {
		assert.Equal(t, "pay-1", entry.EntryID)
		assert.True(t, entry.Amount.Equal(decimal.RequireFromString("20.00")))
		assert.Nil(t, entry.Merchant)
	}
}

func TestMovementGenerator_DefaultSources(t *testing.T) {
	gen := ledger.NewMovementGenerator()

	first := gen.CardIssued(decimal.RequireFromString("100.00"))
	second := gen.CardIssued(decimal.RequireFromString("100.00"))

	require.Len(t, first, 2)
	assert.Equal(t, first[0].EntryID, first[1].EntryID, "entries of one event share an id")
	assert.NotEqual(t, first[0].EntryID, second[0].EntryID, "separate events get separate ids")
	assert.Equal(t, time.UTC, first[0].PostDate.Location())
}
