package handler

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/shared"
)

// In-memory repositories for handler tests. They implement the domain
// repository interfaces over plain maps; no locking semantics beyond a
// mutex, which is enough for single-request handler tests.

type fakePayableRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*finance.AccountPayable
}

func newFakePayableRepo() *fakePayableRepo {
	return &fakePayableRepo{items: make(map[uuid.UUID]*finance.AccountPayable)}
}

func (r *fakePayableRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*finance.AccountPayable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.items[id]
	if !ok || ap.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return ap, nil
}

func (r *fakePayableRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountPayable, error) {
	return r.FindByIDForTenant(ctx, tenantID, id)
}

func (r *fakePayableRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ finance.ObligationFilter) ([]finance.AccountPayable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []finance.AccountPayable
	for _, ap := range r.items {
		if ap.TenantID == tenantID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakePayableRepo) FindPendingDueBefore(_ context.Context, cutoff time.Time, _ int) ([]finance.AccountPayable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []finance.AccountPayable
	for _, ap := range r.items {
		if ap.Status == finance.PayableStatusPending && ap.DueDate.Before(cutoff) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakePayableRepo) Save(_ context.Context, ap *finance.AccountPayable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[ap.ID] = ap
	return nil
}

func (r *fakePayableRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ finance.ObligationFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, ap := range r.items {
		if ap.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

type fakeReceivableRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*finance.AccountReceivable
}

func newFakeReceivableRepo() *fakeReceivableRepo {
	return &fakeReceivableRepo{items: make(map[uuid.UUID]*finance.AccountReceivable)}
}

func (r *fakeReceivableRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*finance.AccountReceivable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ar, ok := r.items[id]
	if !ok || ar.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return ar, nil
}

func (r *fakeReceivableRepo) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountReceivable, error) {
	return r.FindByIDForTenant(ctx, tenantID, id)
}

func (r *fakeReceivableRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ finance.ObligationFilter) ([]finance.AccountReceivable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []finance.AccountReceivable
	for _, ar := range r.items {
		if ar.TenantID == tenantID {
			out = append(out, *ar)
		}
	}
	return out, nil
}

func (r *fakeReceivableRepo) FindPendingDueBefore(_ context.Context, cutoff time.Time, _ int) ([]finance.AccountReceivable, error) {
	return nil, nil
}

func (r *fakeReceivableRepo) Save(_ context.Context, ar *finance.AccountReceivable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[ar.ID] = ar
	return nil
}

func (r *fakeReceivableRepo) CountForTenant(_ context.Context, tenantID uuid.UUID, _ finance.ObligationFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, ar := range r.items {
		if ar.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

type fakeLedgerRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*finance.LedgerTransaction
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{items: make(map[uuid.UUID]*finance.LedgerTransaction)}
}

func (r *fakeLedgerRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*finance.LedgerTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.items[id]
	if !ok || tx.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return tx, nil
}

func (r *fakeLedgerRepo) FindByReference(_ context.Context, refType finance.ReferenceType, refID uuid.UUID) (*finance.LedgerTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, tx := range r.items {
		if tx.ReferenceType != nil && *tx.ReferenceType == refType &&
			tx.ReferenceID != nil && *tx.ReferenceID == refID {
			return tx, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeLedgerRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]finance.LedgerTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []finance.LedgerTransaction
	for _, tx := range r.items {
		if tx.TenantID == tenantID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) FindByBankAccount(_ context.Context, tenantID, bankAccountID uuid.UUID, _ shared.Filter) ([]finance.LedgerTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []finance.LedgerTransaction
	for _, tx := range r.items {
		if tx.TenantID == tenantID && tx.BankAccountID == bankAccountID {
			out = append(out, *tx)
		}
	}
	return out, nil
}

func (r *fakeLedgerRepo) Save(_ context.Context, tx *finance.LedgerTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[tx.ID] = tx
	return nil
}

func (r *fakeLedgerRepo) CountByReference(_ context.Context, refType finance.ReferenceType, refID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, tx := range r.items {
		if tx.ReferenceType != nil && *tx.ReferenceType == refType &&
			tx.ReferenceID != nil && *tx.ReferenceID == refID {
			n++
		}
	}
	return n, nil
}

func (r *fakeLedgerRepo) SummarizeByMonth(_ context.Context, _ uuid.UUID, _, _ time.Time) ([]finance.MonthlyCashFlow, error) {
	return nil, nil
}

type fakeBankAccountRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*finance.BankAccount
}

func newFakeBankAccountRepo() *fakeBankAccountRepo {
	return &fakeBankAccountRepo{items: make(map[uuid.UUID]*finance.BankAccount)}
}

func (r *fakeBankAccountRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*finance.BankAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.items[id]
	if !ok || account.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	return account, nil
}

func (r *fakeBankAccountRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, activeOnly bool) ([]finance.BankAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []finance.BankAccount
	for _, account := range r.items {
		if account.TenantID == tenantID && (!activeOnly || account.Active) {
			out = append(out, *account)
		}
	}
	return out, nil
}

func (r *fakeBankAccountRepo) Save(_ context.Context, account *finance.BankAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[account.ID] = account
	return nil
}

var (
	_ finance.AccountPayableRepository    = (*fakePayableRepo)(nil)
	_ finance.AccountReceivableRepository = (*fakeReceivableRepo)(nil)
	_ finance.LedgerTransactionRepository = (*fakeLedgerRepo)(nil)
	_ finance.BankAccountRepository       = (*fakeBankAccountRepo)(nil)
)
