package finance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/domain/shared/valueobject"
)

// LedgerService provides read access to the ledger plus creation of
// free-standing entries. Settlement transactions are created only by
// SettlementService.
type LedgerService struct {
	ledgerRepo      finance.LedgerTransactionRepository
	bankAccountRepo finance.BankAccountRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(ledgerRepo finance.LedgerTransactionRepository, bankAccountRepo finance.BankAccountRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo, bankAccountRepo: bankAccountRepo}
}

// RecordEntry records a free-standing ledger entry such as a manual
// adjustment. It carries no settlement reference.
func (s *LedgerService) RecordEntry(ctx context.Context, tenantID uuid.UUID, req CreateLedgerEntryRequest) (*LedgerTransactionResponse, error) {
	account, err := s.bankAccountRepo.FindByIDForTenant(ctx, tenantID, req.BankAccountID)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Bank account is deactivated")
	}

	tx, err := finance.NewLedgerTransaction(
		tenantID,
		account.ID,
		finance.TransactionDirection(req.Direction),
		valueobject.NewMoneyBRL(req.Amount),
		req.Description,
		req.Category,
		req.TransactionDate,
	)
	if err != nil {
		return nil, err
	}
	if err := s.ledgerRepo.Save(ctx, tx); err != nil {
		return nil, err
	}

	resp := ledgerTransactionToResponse(tx)
	return &resp, nil
}

// Get returns a single ledger transaction
func (s *LedgerService) Get(ctx context.Context, tenantID, id uuid.UUID) (*LedgerTransactionResponse, error) {
	tx, err := s.ledgerRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ledgerTransactionToResponse(tx)
	return &resp, nil
}

// List returns ledger transactions for a tenant, newest first
func (s *LedgerService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]LedgerTransactionResponse, error) {
	txs, err := s.ledgerRepo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]LedgerTransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ledgerTransactionToResponse(&txs[i])
	}
	return responses, nil
}

// ListByBankAccount returns ledger transactions for one bank account
func (s *LedgerService) ListByBankAccount(ctx context.Context, tenantID, bankAccountID uuid.UUID, filter shared.Filter) ([]LedgerTransactionResponse, error) {
	txs, err := s.ledgerRepo.FindByBankAccount(ctx, tenantID, bankAccountID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]LedgerTransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ledgerTransactionToResponse(&txs[i])
	}
	return responses, nil
}

// MonthlyCashFlow aggregates income and expense per calendar month over
// [from, to].
func (s *LedgerService) MonthlyCashFlow(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]MonthlyCashFlowResponse, error) {
	months, err := s.ledgerRepo.SummarizeByMonth(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	responses := make([]MonthlyCashFlowResponse, len(months))
	for i, m := range months {
		responses[i] = MonthlyCashFlowResponse{
			Month:   m.Month.Format("2006-01"),
			Income:  m.Income,
			Expense: m.Expense,
			Net:     m.Net,
		}
	}
	return responses, nil
}
