package finance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/shared"
)

type MockPayableRepo struct {
	mock.Mock
}

func (m *MockPayableRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountPayable, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ObligationFilter) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepo) FindPendingDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]finance.AccountPayable, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountPayable), args.Error(1)
}

func (m *MockPayableRepo) Save(ctx context.Context, ap *finance.AccountPayable) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *MockPayableRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ObligationFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockReceivableRepo struct {
	mock.Mock
}

func (m *MockReceivableRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountReceivable, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountReceivable, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ObligationFilter) ([]finance.AccountReceivable, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepo) FindPendingDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]finance.AccountReceivable, error) {
	args := m.Called(ctx, cutoff, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.AccountReceivable), args.Error(1)
}

func (m *MockReceivableRepo) Save(ctx context.Context, ar *finance.AccountReceivable) error {
	args := m.Called(ctx, ar)
	return args.Error(0)
}

func (m *MockReceivableRepo) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ObligationFilter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.LedgerTransaction, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerRepo) FindByReference(ctx context.Context, refType finance.ReferenceType, refID uuid.UUID) (*finance.LedgerTransaction, error) {
	args := m.Called(ctx, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.LedgerTransaction, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerRepo) FindByBankAccount(ctx context.Context, tenantID, bankAccountID uuid.UUID, filter shared.Filter) ([]finance.LedgerTransaction, error) {
	args := m.Called(ctx, tenantID, bankAccountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.LedgerTransaction), args.Error(1)
}

func (m *MockLedgerRepo) Save(ctx context.Context, tx *finance.LedgerTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepo) CountByReference(ctx context.Context, refType finance.ReferenceType, refID uuid.UUID) (int64, error) {
	args := m.Called(ctx, refType, refID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepo) SummarizeByMonth(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]finance.MonthlyCashFlow, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.MonthlyCashFlow), args.Error(1)
}

type MockBankAccountRepo struct {
	mock.Mock
}

func (m *MockBankAccountRepo) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.BankAccount, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepo) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]finance.BankAccount, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]finance.BankAccount), args.Error(1)
}

func (m *MockBankAccountRepo) Save(ctx context.Context, account *finance.BankAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

// Compile-time checks that the mocks satisfy the repository interfaces
var (
	_ finance.AccountPayableRepository    = (*MockPayableRepo)(nil)
	_ finance.AccountReceivableRepository = (*MockReceivableRepo)(nil)
	_ finance.LedgerTransactionRepository = (*MockLedgerRepo)(nil)
	_ finance.BankAccountRepository       = (*MockBankAccountRepo)(nil)
)
