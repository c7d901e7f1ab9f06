package models

import (
	"time"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountPayableModel is the persistence model for the AccountPayable
// aggregate root.
type AccountPayableModel struct {
	TenantAggregateModel
	Description   string                `gorm:"type:varchar(500);not null"`
	Amount        decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Category      string                `gorm:"type:varchar(100);index"`
	Source        finance.PayableSource `gorm:"type:varchar(30);not null;default:'manual'"`
	DueDate       time.Time             `gorm:"not null;index"`
	Status        finance.PayableStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaidDate      *time.Time
	BankAccountID *uuid.UUID `gorm:"type:uuid;index"`
	SupplierName  string     `gorm:"type:varchar(200)"`
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (AccountPayableModel) TableName() string {
	return "accounts_payable"
}

// ToDomain converts the persistence model to a domain AccountPayable
func (m *AccountPayableModel) ToDomain() *finance.AccountPayable {
	return &finance.AccountPayable{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Description:         m.Description,
		Amount:              m.Amount,
		Category:            m.Category,
		Source:              m.Source,
		DueDate:             m.DueDate,
		Status:              m.Status,
		PaidDate:            m.PaidDate,
		BankAccountID:       m.BankAccountID,
		SupplierName:        m.SupplierName,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
	}
}

// FromDomain populates the persistence model from a domain AccountPayable
func (m *AccountPayableModel) FromDomain(ap *finance.AccountPayable) {
	m.FromDomainTenantAggregateRoot(ap.TenantAggregateRoot)
	m.Description = ap.Description
	m.Amount = ap.Amount
	m.Category = ap.Category
	m.Source = ap.Source
	m.DueDate = ap.DueDate
	m.Status = ap.Status
	m.PaidDate = ap.PaidDate
	m.BankAccountID = ap.BankAccountID
	m.SupplierName = ap.SupplierName
	m.CancelledAt = ap.CancelledAt
	m.CancelReason = ap.CancelReason
}

// AccountPayableModelFromDomain creates a new persistence model from a domain AccountPayable
func AccountPayableModelFromDomain(ap *finance.AccountPayable) *AccountPayableModel {
	m := &AccountPayableModel{}
	m.FromDomain(ap)
	return m
}

// AccountReceivableModel is the persistence model for the AccountReceivable
// aggregate root.
type AccountReceivableModel struct {
	TenantAggregateModel
	Description   string                   `gorm:"type:varchar(500);not null"`
	Amount        decimal.Decimal          `gorm:"type:decimal(18,2);not null"`
	Category      string                   `gorm:"type:varchar(100);index"`
	Source        finance.ReceivableSource `gorm:"type:varchar(30);not null;default:'manual'"`
	DueDate       time.Time                `gorm:"not null;index"`
	Status        finance.ReceivableStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ReceivedDate  *time.Time
	BankAccountID *uuid.UUID `gorm:"type:uuid;index"`
	PayerName     string     `gorm:"type:varchar(200)"`
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (AccountReceivableModel) TableName() string {
	return "accounts_receivable"
}

// ToDomain converts the persistence model to a domain AccountReceivable
func (m *AccountReceivableModel) ToDomain() *finance.AccountReceivable {
	return &finance.AccountReceivable{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Description:         m.Description,
		Amount:              m.Amount,
		Category:            m.Category,
		Source:              m.Source,
		DueDate:             m.DueDate,
		Status:              m.Status,
		ReceivedDate:        m.ReceivedDate,
		BankAccountID:       m.BankAccountID,
		PayerName:           m.PayerName,
		CancelledAt:         m.CancelledAt,
		CancelReason:        m.CancelReason,
	}
}

// FromDomain populates the persistence model from a domain AccountReceivable
func (m *AccountReceivableModel) FromDomain(ar *finance.AccountReceivable) {
	m.FromDomainTenantAggregateRoot(ar.TenantAggregateRoot)
	m.Description = ar.Description
	m.Amount = ar.Amount
	m.Category = ar.Category
	m.Source = ar.Source
	m.DueDate = ar.DueDate
	m.Status = ar.Status
	m.ReceivedDate = ar.ReceivedDate
	m.BankAccountID = ar.BankAccountID
	m.PayerName = ar.PayerName
	m.CancelledAt = ar.CancelledAt
	m.CancelReason = ar.CancelReason
}

// AccountReceivableModelFromDomain creates a new persistence model from a domain AccountReceivable
func AccountReceivableModelFromDomain(ar *finance.AccountReceivable) *AccountReceivableModel {
	m := &AccountReceivableModel{}
	m.FromDomain(ar)
	return m
}

// LedgerTransactionModel is the persistence model for the LedgerTransaction
// aggregate root. The composite unique index on (reference_type,
// reference_id) is the database-level idempotence guarantee for settlement.
type LedgerTransactionModel struct {
	TenantAggregateModel
	BankAccountID   uuid.UUID                    `gorm:"type:uuid;not null;index"`
	Direction       finance.TransactionDirection `gorm:"type:varchar(10);not null;index"`
	Amount          decimal.Decimal              `gorm:"type:decimal(18,2);not null"`
	Description     string                       `gorm:"type:varchar(500);not null"`
	Category        string                       `gorm:"type:varchar(100);index"`
	TransactionDate time.Time                    `gorm:"not null;index"`
	ReferenceType   *finance.ReferenceType       `gorm:"type:varchar(30);uniqueIndex:idx_ledger_reference,priority:1"`
	ReferenceID     *uuid.UUID                   `gorm:"type:uuid;uniqueIndex:idx_ledger_reference,priority:2"`
}

// TableName returns the table name for GORM
func (LedgerTransactionModel) TableName() string {
	return "financial_transactions"
}

// ToDomain converts the persistence model to a domain LedgerTransaction
func (m *LedgerTransactionModel) ToDomain() *finance.LedgerTransaction {
	return &finance.LedgerTransaction{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		BankAccountID:       m.BankAccountID,
		Direction:           m.Direction,
		Amount:              m.Amount,
		Description:         m.Description,
		Category:            m.Category,
		TransactionDate:     m.TransactionDate,
		ReferenceType:       m.ReferenceType,
		ReferenceID:         m.ReferenceID,
	}
}

// FromDomain populates the persistence model from a domain LedgerTransaction
func (m *LedgerTransactionModel) FromDomain(tx *finance.LedgerTransaction) {
	m.FromDomainTenantAggregateRoot(tx.TenantAggregateRoot)
	m.BankAccountID = tx.BankAccountID
	m.Direction = tx.Direction
	m.Amount = tx.Amount
	m.Description = tx.Description
	m.Category = tx.Category
	m.TransactionDate = tx.TransactionDate
	m.ReferenceType = tx.ReferenceType
	m.ReferenceID = tx.ReferenceID
}

// LedgerTransactionModelFromDomain creates a new persistence model from a domain LedgerTransaction
func LedgerTransactionModelFromDomain(tx *finance.LedgerTransaction) *LedgerTransactionModel {
	m := &LedgerTransactionModel{}
	m.FromDomain(tx)
	return m
}

// BankAccountModel is the persistence model for the BankAccount aggregate root.
type BankAccountModel struct {
	TenantAggregateModel
	Name           string                  `gorm:"type:varchar(150);not null"`
	BankName       string                  `gorm:"type:varchar(150)"`
	AccountType    finance.BankAccountType `gorm:"type:varchar(20);not null;default:'checking'"`
	AgencyNumber   string                  `gorm:"type:varchar(20)"`
	AccountNumber  string                  `gorm:"type:varchar(30)"`
	InitialBalance decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	Active         bool                    `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BankAccountModel) TableName() string {
	return "bank_accounts"
}

// ToDomain converts the persistence model to a domain BankAccount
func (m *BankAccountModel) ToDomain() *finance.BankAccount {
	return &finance.BankAccount{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		BankName:            m.BankName,
		AccountType:         m.AccountType,
		AgencyNumber:        m.AgencyNumber,
		AccountNumber:       m.AccountNumber,
		InitialBalance:      m.InitialBalance,
		Active:              m.Active,
	}
}

// FromDomain populates the persistence model from a domain BankAccount
func (m *BankAccountModel) FromDomain(a *finance.BankAccount) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.Name = a.Name
	m.BankName = a.BankName
	m.AccountType = a.AccountType
	m.AgencyNumber = a.AgencyNumber
	m.AccountNumber = a.AccountNumber
	m.InitialBalance = a.InitialBalance
	m.Active = a.Active
}

// BankAccountModelFromDomain creates a new persistence model from a domain BankAccount
func BankAccountModelFromDomain(a *finance.BankAccount) *BankAccountModel {
	m := &BankAccountModel{}
	m.FromDomain(a)
	return m
}
