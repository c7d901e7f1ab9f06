package finance

import (
	"time"

	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccountType distinguishes kinds of monetary accounts
type BankAccountType string

const (
	BankAccountTypeChecking BankAccountType = "checking"
	BankAccountTypeSavings  BankAccountType = "savings"
	BankAccountTypeCash     BankAccountType = "cash"
)

// IsValid checks if the account type is valid
func (t BankAccountType) IsValid() bool {
	switch t {
	case BankAccountTypeChecking, BankAccountTypeSavings, BankAccountTypeCash:
		return true
	}
	return false
}

// BankAccount is a tenant-scoped monetary account targeted by settlements
type BankAccount struct {
	shared.TenantAggregateRoot
	Name           string          `json:"name"`
	BankName       string          `json:"bank_name"`
	AccountType    BankAccountType `json:"account_type"`
	AgencyNumber   string          `json:"agency_number"`
	AccountNumber  string          `json:"account_number"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Active         bool            `json:"active"`
}

// NewBankAccount creates a new active bank account
func NewBankAccount(
	tenantID uuid.UUID,
	name, bankName string,
	accountType BankAccountType,
	agencyNumber, accountNumber string,
	initialBalance valueobject.Money,
) (*BankAccount, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	if accountType == "" {
		accountType = BankAccountTypeChecking
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}

	return &BankAccount{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		BankName:            bankName,
		AccountType:         accountType,
		AgencyNumber:        agencyNumber,
		AccountNumber:       accountNumber,
		InitialBalance:      initialBalance.Amount(),
		Active:              true,
	}, nil
}

// Deactivate disables the account for new settlements
func (a *BankAccount) Deactivate() {
	a.Active = false
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
}

// Rename updates the display name
func (a *BankAccount) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Account name cannot be empty")
	}
	a.Name = name
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}
