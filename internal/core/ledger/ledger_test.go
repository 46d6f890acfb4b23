package ledger_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardledger/card_ledger_app/internal/apperrors"
	"github.com/cardledger/card_ledger_app/internal/core/domain"
	"github.com/cardledger/card_ledger_app/internal/core/ledger"
)

func newTestLedger() *ledger.Ledger {
	sequence := 0
	gen := ledger.NewMovementGeneratorWithSources(
		func() time.Time { return testPostDate },
		func() string {
			sequence++
			return fmt.Sprintf("event-%d", sequence)
		},
	)
	return ledger.New(gen)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// assertConservation checks the fundamental double-entry law: summing every
// account's signed amount yields zero after any sequence of applied events.
func assertConservation(t *testing.T, l *ledger.Ledger) {
	t.Helper()
	sum := decimal.Zero
	for _, info := range l.Accounts() {
		sum = sum.Add(info.Amount)
	}
	assert.True(t, sum.IsZero(), "double-entry conservation violated, sum is %s", sum)
}

func TestLedger_IssueCard(t *testing.T) {
	l := newTestLedger()

	status, err := l.IssueCard(dec("1000.00"))

	require.NoError(t, err)
	assert.Equal(t, domain.CardInactive, status)
	assert.True(t, l.Balance().Equal(dec("1000.00")))
	assert.Len(t, l.Journal(), 2)

	accounts := l.Accounts()
	assert.True(t, accounts[domain.AssetCurrentLimit].Amount.Equal(dec("-1000.00")))
	assert.True(t, accounts[domain.LiabilityCurrentLimitCp].Amount.Equal(dec("1000.00")))
	assert.True(t, accounts[domain.AssetMaxCurrentLimit].Amount.Equal(dec("-1000.00")))
	assert.Equal(t, uint32(1), accounts[domain.AssetCurrentLimit].Version)
	assertConservation(t, l)
}

func TestLedger_IssueCardTwice(t *testing.T) {
	l := newTestLedger()

	_, err := l.IssueCard(dec("1000.00"))
	require.NoError(t, err)
	before := l.Accounts()

	_, err = l.IssueCard(dec("500.00"))

	assert.ErrorIs(t, err, apperrors.ErrCardAlreadyIssued)
	assert.Equal(t, before, l.Accounts(), "rejected command must leave balances unchanged")
	assert.Len(t, l.Journal(), 2)
}

func TestLedger_IssueCardNonPositiveLimit(t *testing.T) {
	l := newTestLedger()

	_, err := l.IssueCard(dec("0.00"))

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Empty(t, l.Journal())
}

func TestLedger_ActivateCard(t *testing.T) {
	l := newTestLedger()

	_, err := l.ActivateCard()
	assert.ErrorIs(t, err, apperrors.ErrCardNotIssued)

	_, err = l.IssueCard(dec("1000.00"))
	require.NoError(t, err)

	status, err := l.ActivateCard()
	require.NoError(t, err)
	assert.Equal(t, domain.CardActive, status)

	// Activating an active card is a no-op that stays Active.
	status, err = l.ActivateCard()
	require.NoError(t, err)
	assert.Equal(t, domain.CardActive, status)
}

func TestLedger_ProcessPurchaseStatusChecks(t *testing.T) {
	t.Run("not issued", func(t *testing.T) {
		l := newTestLedger()

		err := l.ProcessPurchase("Padaria", dec("10.00"))

		assert.ErrorIs(t, err, apperrors.ErrCardNotIssued)
	})

	t.Run("inactive", func(t *testing.T) {
		l := newTestLedger()
		_, err := l.IssueCard(dec("1000.00"))
		require.NoError(t, err)

		err = l.ProcessPurchase("Padaria", dec("10.00"))

		assert.ErrorIs(t, err, apperrors.ErrCardInactive)
		assert.Len(t, l.Journal(), 2)
	})
}

func TestLedger_ProcessPurchaseInsufficientLimit(t *testing.T) {
	l := newTestLedger()
	_, err := l.IssueCard(dec("50.00"))
	require.NoError(t, err)
	_, err = l.ActivateCard()
	require.NoError(t, err)

	err = l.ProcessPurchase("Padaria", dec("50.01"))

	assert.ErrorIs(t, err, apperrors.ErrInsufficientLimit)
	assert.Len(t, l.Journal(), 2)
	assert.True(t, l.Balance().Equal(dec("50.00")))

	// Spending exactly the available limit is allowed.
	err = l.ProcessPurchase("Padaria", dec("50.00"))
	require.NoError(t, err)
	assert.True(t, l.Balance().IsZero())
	assertConservation(t, l)
}

func TestLedger_ProcessPurchaseDoubleTransaction(t *testing.T) {
	l := newTestLedger()
	_, err := l.IssueCard(dec("1000.00"))
	require.NoError(t, err)
	_, err = l.ActivateCard()
	require.NoError(t, err)

	require.NoError(t, l.ProcessPurchase("X", dec("10.00")))
	journalLen := len(l.Journal())

	err = l.ProcessPurchase("X", dec("10.00"))

	assert.ErrorIs(t, err, apperrors.ErrDoubleTransaction)
	assert.Len(t, l.Journal(), journalLen, "rejected duplicate must not grow the journal")

	// Same merchant with another amount, or another merchant with the same
	// amount, are both fine.
	assert.NoError(t, l.ProcessPurchase("X", dec("10.01")))
	assert.NoError(t, l.ProcessPurchase("Y", dec("10.01")))

	// The check only looks one entry back: an intervening event clears it.
	require.NoError(t, l.ProcessPurchase("Z", dec("5.00")))
	require.NoError(t, l.CloseBill())
	assert.NoError(t, l.ProcessPurchase("Z", dec("5.00")))
	assertConservation(t, l)
}

func TestLedger_CloseBill(t *testing.T) {
	t.Run("not issued", func(t *testing.T) {
		l := newTestLedger()

		assert.ErrorIs(t, l.CloseBill(), apperrors.ErrCardNotIssued)
	})

	t.Run("nothing settled posts nothing", func(t *testing.T) {
		l := newTestLedger()
		_, err := l.IssueCard(dec("1000.00"))
		require.NoError(t, err)

		require.NoError(t, l.CloseBill())

		assert.Len(t, l.Journal(), 2)
	})

	t.Run("moves settled balance to receivable", func(t *testing.T) {
		l := newTestLedger()
		_, err := l.IssueCard(dec("1000.00"))
		require.NoError(t, err)
		_, err = l.ActivateCard()
		require.NoError(t, err)
		require.NoError(t, l.ProcessPurchase("Mercado", dec("100.00")))

		require.NoError(t, l.CloseBill())

		accounts := l.Accounts()
		assert.True(t, accounts[domain.AssetSettled].Amount.IsZero())
		// Settled was 100.00 minus the 2.00 interchange fee.
		assert.True(t, accounts[domain.LiabilityReceivable].Amount.Equal(dec("-98.00")))
		assertConservation(t, l)
	})
}

func TestLedger_ProcessPayment(t *testing.T) {
	t.Run("not issued", func(t *testing.T) {
		l := newTestLedger()

		assert.ErrorIs(t, l.ProcessPayment(dec("10.00")), apperrors.ErrCardNotIssued)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		l := newTestLedger()
		_, err := l.IssueCard(dec("1000.00"))
		require.NoError(t, err)

		assert.ErrorIs(t, l.ProcessPayment(dec("-5.00")), apperrors.ErrValidation)
	})
}

// TestLedger_RoundTrip runs the full issue/activate/purchase/close/pay cycle
// and checks the balances the cycle must produce at each step.
func TestLedger_RoundTrip(t *testing.T) {
	l := newTestLedger()

	_, err := l.IssueCard(dec("1000.00"))
	require.NoError(t, err)
	_, err = l.ActivateCard()
	require.NoError(t, err)

	require.NoError(t, l.ProcessPurchase("Burguer King", dec("20.00")))
	assert.True(t, l.Balance().Equal(dec("980.00")), "limit after purchase")

	require.NoError(t, l.CloseBill())
	accounts := l.Accounts()
	assert.True(t, accounts[domain.AssetSettled].Amount.IsZero(), "settled after close")

	require.NoError(t, l.ProcessPayment(dec("20.00")))
	assert.True(t, l.Balance().Equal(dec("1000.00")), "limit restored after payment")

	// 2 issuance + 3 purchase + 1 close + 2 payment entries.
	assert.Len(t, l.Journal(), 8)
	assertConservation(t, l)
}

// TestLedger_JournalOrderAndImmutability checks that the journal is returned
// in processing order and that the returned slice is detached from the ledger.
func TestLedger_JournalOrderAndImmutability(t *testing.T) {
	l := newTestLedger()
	_, err := l.IssueCard(dec("1000.00"))
	require.NoError(t, err)
	_, err = l.ActivateCard()
	require.NoError(t, err)
	require.NoError(t, l.ProcessPurchase("Livraria", dec("42.00")))

	journal := l.Journal()
	require.Len(t, journal, 5)
	assert.Equal(t, domain.AssetMaxCurrentLimit, journal[0].DebitAccount)
	assert.Equal(t, domain.AssetCurrentLimit, journal[1].DebitAccount)
	assert.Equal(t, domain.AssetSettled, journal[2].DebitAccount)

	journal[0].Amount = dec("9999.99")
	assert.True(t, l.Journal()[0].Amount.Equal(dec("1000.00")))
}

func TestLedger_VersionsCountPostings(t *testing.T) {
	l := newTestLedger()
	_, err := l.IssueCard(dec("1000.00"))
	require.NoError(t, err)
	_, err = l.ActivateCard()
	require.NoError(t, err)
	require.NoError(t, l.ProcessPurchase("Cinema", dec("30.00")))

	accounts := l.Accounts()
	// Touched once by issuance, once by the purchase limit leg.
	assert.Equal(t, uint32(2), accounts[domain.AssetCurrentLimit].Version)
	// Touched by settlement and the interchange fee leg.
	assert.Equal(t, uint32(2), accounts[domain.LiabilityPayable].Version)
	// Never touched yet.
	assert.Equal(t, uint32(0), accounts[domain.AssetTransitoryBank].Version)
}
