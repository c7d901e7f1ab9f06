package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/domain/shared/valueobject"
)

type settlementFixture struct {
	payables     *MockPayableRepo
	receivables  *MockReceivableRepo
	ledger       *MockLedgerRepo
	bankAccounts *MockBankAccountRepo
	service      *SettlementService
}

func newSettlementFixture() *settlementFixture {
	f := &settlementFixture{
		payables:     new(MockPayableRepo),
		receivables:  new(MockReceivableRepo),
		ledger:       new(MockLedgerRepo),
		bankAccounts: new(MockBankAccountRepo),
	}
	scope := NewNoOpSettlementScope(f.payables, f.receivables, f.ledger, f.bankAccounts)
	f.service = NewSettlementService(scope, nil)
	return f
}

func newTestPayable(t *testing.T, tenantID uuid.UUID, dueDate time.Time) *finance.AccountPayable {
	t.Helper()
	payable, err := finance.NewAccountPayable(
		tenantID,
		"Office rent",
		valueobject.NewMoneyBRL(decimal.NewFromInt(1500)),
		"rent",
		finance.PayableSourceManual,
		dueDate,
		"Landlord Ltda",
	)
	require.NoError(t, err)
	payable.ClearDomainEvents()
	return payable
}

func newTestReceivable(t *testing.T, tenantID uuid.UUID, dueDate time.Time) *finance.AccountReceivable {
	t.Helper()
	receivable, err := finance.NewAccountReceivable(
		tenantID,
		"Consulting invoice",
		valueobject.NewMoneyBRL(decimal.NewFromInt(3200)),
		"services",
		finance.ReceivableSourceManual,
		dueDate,
		"Acme Corp",
	)
	require.NoError(t, err)
	receivable.ClearDomainEvents()
	return receivable
}

func newTestBankAccount(t *testing.T, tenantID uuid.UUID) *finance.BankAccount {
	t.Helper()
	account, err := finance.NewBankAccount(
		tenantID,
		"Main checking",
		"Banco do Brasil",
		finance.BankAccountTypeChecking,
		"0001",
		"12345-6",
		valueobject.NewMoneyBRL(decimal.Zero),
	)
	require.NoError(t, err)
	return account
}

func TestSettlePayable(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	dueDate := time.Now().Add(48 * time.Hour)

	t.Run("settles a pending payable", func(t *testing.T) {
		f := newSettlementFixture()
		payable := newTestPayable(t, tenantID, dueDate)
		account := newTestBankAccount(t, tenantID)

		f.ledger.On("FindByReference", mock.Anything, finance.ReferenceAccountPayable, payable.ID).
			Return(nil, shared.ErrNotFound)
		f.payables.On("FindByIDForUpdate", mock.Anything, tenantID, payable.ID).Return(payable, nil)
		f.bankAccounts.On("FindByIDForTenant", mock.Anything, tenantID, account.ID).Return(account, nil)
		f.ledger.On("Save", mock.Anything, mock.AnythingOfType("*finance.LedgerTransaction")).Return(nil)
		f.payables.On("Save", mock.Anything, payable).Return(nil)

		resp, err := f.service.SettlePayable(ctx, tenantID, payable.ID, SettleRequest{BankAccountID: account.ID})
		require.NoError(t, err)
		assert.False(t, resp.Idempotent)
		assert.Equal(t, "expense", resp.Transaction.Direction)
		assert.True(t, resp.Transaction.Amount.Equal(decimal.NewFromInt(1500)))
		require.NotNil(t, resp.Transaction.ReferenceType)
		assert.Equal(t, "account_payable", *resp.Transaction.ReferenceType)
		require.NotNil(t, resp.Transaction.ReferenceID)
		assert.Equal(t, payable.ID, *resp.Transaction.ReferenceID)

		assert.Equal(t, finance.PayableStatusPaid, payable.Status)
		require.NotNil(t, payable.BankAccountID)
		assert.Equal(t, account.ID, *payable.BankAccountID)

		f.ledger.AssertExpectations(t)
		f.payables.AssertExpectations(t)
	})

	t.Run("repeated settlement returns existing transaction", func(t *testing.T) {
		f := newSettlementFixture()
		payable := newTestPayable(t, tenantID, dueDate)
		account := newTestBankAccount(t, tenantID)

		existing, err := finance.NewSettlementTransaction(
			tenantID, account.ID, finance.DirectionExpense,
			valueobject.NewMoneyBRL(decimal.NewFromInt(1500)),
			payable.Description, payable.Category, time.Now(),
			finance.ReferenceAccountPayable, payable.ID,
		)
		require.NoError(t, err)

		f.ledger.On("FindByReference", mock.Anything, finance.ReferenceAccountPayable, payable.ID).
			Return(existing, nil)
		f.payables.On("FindByIDForTenant", mock.Anything, tenantID, payable.ID).Return(payable, nil)

		resp, err := f.service.SettlePayable(ctx, tenantID, payable.ID, SettleRequest{BankAccountID: account.ID})
		require.NoError(t, err)
		assert.True(t, resp.Idempotent)
		assert.Equal(t, existing.ID, resp.Transaction.ID)
		require.NotNil(t, resp.Payable)
		assert.Equal(t, payable.ID, resp.Payable.ID)

		// No lock, no insert, no update on the replay path.
		f.payables.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
		f.ledger.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.payables.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("overdue payable is settleable", func(t *testing.T) {
		f := newSettlementFixture()
		payable := newTestPayable(t, tenantID, time.Now().Add(-72*time.Hour))
		require.NoError(t, payable.MarkOverdue(time.Now()))
		account := newTestBankAccount(t, tenantID)

		f.ledger.On("FindByReference", mock.Anything, finance.ReferenceAccountPayable, payable.ID).
			Return(nil, shared.ErrNotFound)
		f.payables.On("FindByIDForUpdate", mock.Anything, tenantID, payable.ID).Return(payable, nil)
		f.bankAccounts.On("FindByIDForTenant", mock.Anything, tenantID, account.ID).Return(account, nil)
		f.ledger.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.payables.On("Save", mock.Anything, payable).Return(nil)

		resp, err := f.service.SettlePayable(ctx, tenantID, payable.ID, SettleRequest{BankAccountID: account.ID})
		require.NoError(t, err)
		assert.False(t, resp.Idempotent)
		assert.Equal(t, finance.PayableStatusPaid, payable.Status)
	})

	t.Run("cancelled payable is not settleable", func(t *testing.T) {
		f := newSettlementFixture()
		payable := newTestPayable(t, tenantID, dueDate)
		require.NoError(t, payable.Cancel("duplicate entry"))
		account := newTestBankAccount(t, tenantID)

		f.ledger.On("FindByReference", mock.Anything, finance.ReferenceAccountPayable, payable.ID).
			Return(nil, shared.ErrNotFound)
		f.payables.On("FindByIDForUpdate", mock.Anything, tenantID, payable.ID).Return(payable, nil)

		_, err := f.service.SettlePayable(ctx, tenantID, payable.ID, SettleRequest{BankAccountID: account.ID})
		require.Error(t, err)
		assert.True(t, shared.IsInvalidState(err))

		f.ledger.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.payables.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown payable", func(t *testing.T) {
		f := newSettlementFixture()
		id := uuid.New()

		f.ledger.On("FindByReference", mock.Anything, finance.ReferenceAccountPayable, id).
			Return(nil, shared.ErrNotFound)
		f.payables.On("FindByIDForUpdate", mock.Anything, tenantID, id).Return(nil, shared.ErrNotFound)

		_, err := f.service.SettlePayable(ctx, tenantID, id, SettleRequest{BankAccountID: uuid.New()})
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("deactivated bank account", func(t *testing.T) {
		f := newSettlementFixture()
		payable := newTestPayable(t, tenantID, dueDate)
		account := newTestBankAccount(t, tenantID)
		account.Deactivate()

		f.ledger.On("FindByReference", mock.Anything, finance.ReferenceAccountPayable, payable.ID).
			Return(nil, shared.ErrNotFound)
		f.payables.On("FindByIDForUpdate", mock.Anything, tenantID, payable.ID).Return(payable, nil)
		f.bankAccounts.On("FindByIDForTenant", mock.Anything, tenantID, account.ID).Return(account, nil)

		_, err := f.service.SettlePayable(ctx, tenantID, payable.ID, SettleRequest{BankAccountID: account.ID})
		require.Error(t, err)
		assert.True(t, shared.IsInvalidState(err))
		assert.Equal(t, finance.PayableStatusPending, payable.Status)
		f.ledger.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("ledger insert failure leaves payable untouched", func(t *testing.T) {
		f := newSettlementFixture()
		payable := newTestPayable(t, tenantID, dueDate)
		account := newTestBankAccount(t, tenantID)

		f.ledger.On("FindByReference", mock.Anything, finance.ReferenceAccountPayable, payable.ID).
			Return(nil, shared.ErrNotFound)
		f.payables.On("FindByIDForUpdate", mock.Anything, tenantID, payable.ID).Return(payable, nil)
		f.bankAccounts.On("FindByIDForTenant", mock.Anything, tenantID, account.ID).Return(account, nil)
		f.ledger.On("Save", mock.Anything, mock.Anything).Return(assert.AnError)

		_, err := f.service.SettlePayable(ctx, tenantID, payable.ID, SettleRequest{BankAccountID: account.ID})
		require.Error(t, err)
		f.payables.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("explicit settlement date is used", func(t *testing.T) {
		f := newSettlementFixture()
		payable := newTestPayable(t, tenantID, dueDate)
		account := newTestBankAccount(t, tenantID)
		settledAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

		f.ledger.On("FindByReference", mock.Anything, finance.ReferenceAccountPayable, payable.ID).
			Return(nil, shared.ErrNotFound)
		f.payables.On("FindByIDForUpdate", mock.Anything, tenantID, payable.ID).Return(payable, nil)
		f.bankAccounts.On("FindByIDForTenant", mock.Anything, tenantID, account.ID).Return(account, nil)
		f.ledger.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.payables.On("Save", mock.Anything, payable).Return(nil)

		resp, err := f.service.SettlePayable(ctx, tenantID, payable.ID, SettleRequest{
			BankAccountID: account.ID,
			SettledAt:     &settledAt,
		})
		require.NoError(t, err)
		assert.Equal(t, settledAt, resp.Transaction.TransactionDate)
		require.NotNil(t, payable.PaidDate)
		assert.Equal(t, settledAt, *payable.PaidDate)
	})
}

func TestSettleReceivable(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	dueDate := time.Now().Add(48 * time.Hour)

	t.Run("settles a pending receivable as income", func(t *testing.T) {
		f := newSettlementFixture()
		receivable := newTestReceivable(t, tenantID, dueDate)
		account := newTestBankAccount(t, tenantID)

		f.ledger.On("FindByReference", mock.Anything, finance.ReferenceAccountReceivable, receivable.ID).
			Return(nil, shared.ErrNotFound)
		f.receivables.On("FindByIDForUpdate", mock.Anything, tenantID, receivable.ID).Return(receivable, nil)
		f.bankAccounts.On("FindByIDForTenant", mock.Anything, tenantID, account.ID).Return(account, nil)
		f.ledger.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.receivables.On("Save", mock.Anything, receivable).Return(nil)

		resp, err := f.service.SettleReceivable(ctx, tenantID, receivable.ID, SettleRequest{BankAccountID: account.ID})
		require.NoError(t, err)
		assert.Equal(t, "income", resp.Transaction.Direction)
		assert.Equal(t, finance.ReceivableStatusReceived, receivable.Status)
	})

	t.Run("repeated settlement returns existing transaction", func(t *testing.T) {
		f := newSettlementFixture()
		receivable := newTestReceivable(t, tenantID, dueDate)
		account := newTestBankAccount(t, tenantID)

		existing, err := finance.NewSettlementTransaction(
			tenantID, account.ID, finance.DirectionIncome,
			valueobject.NewMoneyBRL(decimal.NewFromInt(3200)),
			receivable.Description, receivable.Category, time.Now(),
			finance.ReferenceAccountReceivable, receivable.ID,
		)
		require.NoError(t, err)

		f.ledger.On("FindByReference", mock.Anything, finance.ReferenceAccountReceivable, receivable.ID).
			Return(existing, nil)
		f.receivables.On("FindByIDForTenant", mock.Anything, tenantID, receivable.ID).Return(receivable, nil)

		resp, err := f.service.SettleReceivable(ctx, tenantID, receivable.ID, SettleRequest{BankAccountID: account.ID})
		require.NoError(t, err)
		assert.True(t, resp.Idempotent)
		require.NotNil(t, resp.Receivable)
		f.receivables.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
		f.ledger.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("received receivable is not settleable twice via state", func(t *testing.T) {
		f := newSettlementFixture()
		receivable := newTestReceivable(t, tenantID, dueDate)
		account := newTestBankAccount(t, tenantID)
		require.NoError(t, receivable.MarkReceived(account.ID, time.Now()))

		f.ledger.On("FindByReference", mock.Anything, finance.ReferenceAccountReceivable, receivable.ID).
			Return(nil, shared.ErrNotFound)
		f.receivables.On("FindByIDForUpdate", mock.Anything, tenantID, receivable.ID).Return(receivable, nil)

		_, err := f.service.SettleReceivable(ctx, tenantID, receivable.ID, SettleRequest{BankAccountID: account.ID})
		require.Error(t, err)
		assert.True(t, shared.IsInvalidState(err))
	})
}
