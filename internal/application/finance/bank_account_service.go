package finance

import (
	"context"

	"github.com/google/uuid"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/shared/valueobject"
)

// BankAccountService provides application-level bank account operations
type BankAccountService struct {
	bankAccountRepo finance.BankAccountRepository
}

// NewBankAccountService creates a new BankAccountService
func NewBankAccountService(bankAccountRepo finance.BankAccountRepository) *BankAccountService {
	return &BankAccountService{bankAccountRepo: bankAccountRepo}
}

// Create creates a new active bank account
func (s *BankAccountService) Create(ctx context.Context, tenantID uuid.UUID, req CreateBankAccountRequest) (*BankAccountResponse, error) {
	account, err := finance.NewBankAccount(
		tenantID,
		req.Name,
		req.BankName,
		finance.BankAccountType(req.AccountType),
		req.AgencyNumber,
		req.AccountNumber,
		valueobject.NewMoneyBRL(req.InitialBalance),
	)
	if err != nil {
		return nil, err
	}
	if err := s.bankAccountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return bankAccountToResponse(account), nil
}

// Get returns a single bank account
func (s *BankAccountService) Get(ctx context.Context, tenantID, id uuid.UUID) (*BankAccountResponse, error) {
	account, err := s.bankAccountRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return bankAccountToResponse(account), nil
}

// List returns the tenant's bank accounts
func (s *BankAccountService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]BankAccountResponse, error) {
	accounts, err := s.bankAccountRepo.FindAllForTenant(ctx, tenantID, activeOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = *bankAccountToResponse(&accounts[i])
	}
	return responses, nil
}

// Deactivate disables a bank account for new settlements
func (s *BankAccountService) Deactivate(ctx context.Context, tenantID, id uuid.UUID) (*BankAccountResponse, error) {
	account, err := s.bankAccountRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	account.Deactivate()
	if err := s.bankAccountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return bankAccountToResponse(account), nil
}
