package finance

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finflow/backend/internal/domain/shared/valueobject"
)

func TestNewSettlementTransaction(t *testing.T) {
	tenantID := uuid.New()
	accountID := uuid.New()
	payableID := uuid.New()
	amount := valueobject.NewMoneyBRL(decimal.NewFromInt(1200))

	t.Run("creates expense transaction referencing the payable", func(t *testing.T) {
		tx, err := NewSettlementTransaction(tenantID, accountID, DirectionExpense, amount,
			"Aluguel do escritorio", "rent", time.Now(), ReferenceAccountPayable, payableID)

		require.NoError(t, err)
		assert.Equal(t, DirectionExpense, tx.Direction)
		assert.Equal(t, ReferenceAccountPayable, *tx.ReferenceType)
		assert.Equal(t, payableID, *tx.ReferenceID)
		assert.Len(t, tx.GetDomainEvents(), 1)
	})

	t.Run("rejects an unknown reference type", func(t *testing.T) {
		_, err := NewSettlementTransaction(tenantID, accountID, DirectionExpense, amount,
			"Aluguel", "rent", time.Now(), ReferenceType("invoice"), payableID)

		assert.Error(t, err)
	})

	t.Run("rejects a nil reference id", func(t *testing.T) {
		_, err := NewSettlementTransaction(tenantID, accountID, DirectionExpense, amount,
			"Aluguel", "rent", time.Now(), ReferenceAccountPayable, uuid.Nil)

		assert.Error(t, err)
	})
}

func TestNewLedgerTransaction(t *testing.T) {
	tenantID := uuid.New()
	accountID := uuid.New()
	amount := valueobject.NewMoneyBRL(decimal.NewFromInt(500))

	t.Run("creates free-standing entry without a reference", func(t *testing.T) {
		tx, err := NewLedgerTransaction(tenantID, accountID, DirectionIncome, amount,
			"Ajuste manual", "adjustment", time.Now())

		require.NoError(t, err)
		assert.Nil(t, tx.ReferenceType)
		assert.Nil(t, tx.ReferenceID)
	})

	t.Run("defaults a zero transaction date to now", func(t *testing.T) {
		tx, err := NewLedgerTransaction(tenantID, accountID, DirectionIncome, amount,
			"Ajuste manual", "adjustment", time.Time{})

		require.NoError(t, err)
		assert.False(t, tx.TransactionDate.IsZero())
	})

	t.Run("rejects a nil bank account", func(t *testing.T) {
		_, err := NewLedgerTransaction(tenantID, uuid.Nil, DirectionIncome, amount,
			"Ajuste", "adjustment", time.Now())

		assert.Error(t, err)
	})

	t.Run("rejects an invalid direction", func(t *testing.T) {
		_, err := NewLedgerTransaction(tenantID, accountID, TransactionDirection("transfer"), amount,
			"Ajuste", "adjustment", time.Now())

		assert.Error(t, err)
	})

	t.Run("rejects a negative amount", func(t *testing.T) {
		_, err := NewLedgerTransaction(tenantID, accountID, DirectionIncome,
			valueobject.NewMoneyBRL(decimal.NewFromInt(-1)), "Ajuste", "adjustment", time.Now())

		assert.Error(t, err)
	})
}

func TestLedgerTransaction_SignedAmount(t *testing.T) {
	tenantID := uuid.New()
	accountID := uuid.New()
	amount := valueobject.NewMoneyBRL(decimal.NewFromInt(300))

	income, err := NewLedgerTransaction(tenantID, accountID, DirectionIncome, amount,
		"Fatura", "services", time.Now())
	require.NoError(t, err)
	expense, err := NewLedgerTransaction(tenantID, accountID, DirectionExpense, amount,
		"Aluguel", "rent", time.Now())
	require.NoError(t, err)

	assert.True(t, income.SignedAmount().Equal(decimal.NewFromInt(300)))
	assert.True(t, expense.SignedAmount().Equal(decimal.NewFromInt(-300)))
}
