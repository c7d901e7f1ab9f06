package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finflow/backend/internal/domain/finance"
)

// PayableResponse represents an account payable in API responses. Status
// carries the derived overdue presentation, never the raw stored value.
type PayableResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Source        string          `json:"source"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	PaidDate      *time.Time      `json:"paid_date,omitempty"`
	BankAccountID *uuid.UUID      `json:"bank_account_id,omitempty"`
	SupplierName  string          `json:"supplier_name,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// ReceivableResponse represents an account receivable in API responses.
type ReceivableResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Source        string          `json:"source"`
	DueDate       time.Time       `json:"due_date"`
	Status        string          `json:"status"`
	ReceivedDate  *time.Time      `json:"received_date,omitempty"`
	BankAccountID *uuid.UUID      `json:"bank_account_id,omitempty"`
	PayerName     string          `json:"payer_name,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// LedgerTransactionResponse represents a ledger transaction in API responses
type LedgerTransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	TenantID        uuid.UUID       `json:"tenant_id"`
	BankAccountID   uuid.UUID       `json:"bank_account_id"`
	Direction       string          `json:"direction"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	Category        string          `json:"category,omitempty"`
	TransactionDate time.Time       `json:"transaction_date"`
	ReferenceType   *string         `json:"reference_type,omitempty"`
	ReferenceID     *uuid.UUID      `json:"reference_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// BankAccountResponse represents a bank account in API responses
type BankAccountResponse struct {
	ID             uuid.UUID       `json:"id"`
	TenantID       uuid.UUID       `json:"tenant_id"`
	Name           string          `json:"name"`
	BankName       string          `json:"bank_name,omitempty"`
	AccountType    string          `json:"account_type"`
	AgencyNumber   string          `json:"agency_number,omitempty"`
	AccountNumber  string          `json:"account_number,omitempty"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreatePayableRequest represents a request to create an account payable
type CreatePayableRequest struct {
	Description  string          `json:"description" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Category     string          `json:"category"`
	Source       string          `json:"source"`
	DueDate      time.Time       `json:"due_date" binding:"required"`
	SupplierName string          `json:"supplier_name"`
}

// CreateReceivableRequest represents a request to create an account receivable
type CreateReceivableRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Category    string          `json:"category"`
	Source      string          `json:"source"`
	DueDate     time.Time       `json:"due_date" binding:"required"`
	PayerName   string          `json:"payer_name"`
}

// SettleRequest represents a request to settle an obligation
type SettleRequest struct {
	BankAccountID uuid.UUID  `json:"bank_account_id" binding:"required"`
	SettledAt     *time.Time `json:"settled_at"` // Defaults to now
}

// CancelRequest represents a request to cancel an obligation
type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CreateBankAccountRequest represents a request to create a bank account
type CreateBankAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	BankName       string          `json:"bank_name"`
	AccountType    string          `json:"account_type"`
	AgencyNumber   string          `json:"agency_number"`
	AccountNumber  string          `json:"account_number"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

// CreateLedgerEntryRequest represents a request to record a free-standing
// ledger entry (one with no settlement reference).
type CreateLedgerEntryRequest struct {
	BankAccountID   uuid.UUID       `json:"bank_account_id" binding:"required"`
	Direction       string          `json:"direction" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	Category        string          `json:"category"`
	TransactionDate time.Time       `json:"transaction_date"`
}

// ObligationListFilter defines filtering options for payable/receivable lists
type ObligationListFilter struct {
	Status   string     `form:"status"`
	Category string     `form:"category"`
	DueFrom  *time.Time `form:"due_from"`
	DueTo    *time.Time `form:"due_to"`
	Page     int        `form:"page"`
	PageSize int        `form:"page_size"`
}

// MonthlyCashFlowResponse is one month's aggregated ledger movement
type MonthlyCashFlowResponse struct {
	Month   string          `json:"month"` // YYYY-MM
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// SettlementResponse is the result of a settlement call. Idempotent is true
// when the obligation had already been settled and the existing ledger
// transaction was returned instead of a new one.
type SettlementResponse struct {
	Transaction LedgerTransactionResponse `json:"transaction"`
	Payable     *PayableResponse          `json:"payable,omitempty"`
	Receivable  *ReceivableResponse       `json:"receivable,omitempty"`
	Idempotent  bool                      `json:"idempotent"`
}

func payableToResponse(ap *finance.AccountPayable, now time.Time) *PayableResponse {
	return &PayableResponse{
		ID:            ap.ID,
		TenantID:      ap.TenantID,
		Description:   ap.Description,
		Amount:        ap.Amount,
		Category:      ap.Category,
		Source:        string(ap.Source),
		DueDate:       ap.DueDate,
		Status:        ap.EffectiveStatus(now).String(),
		PaidDate:      ap.PaidDate,
		BankAccountID: ap.BankAccountID,
		SupplierName:  ap.SupplierName,
		CreatedAt:     ap.CreatedAt,
		UpdatedAt:     ap.UpdatedAt,
		Version:       ap.Version,
	}
}

func receivableToResponse(ar *finance.AccountReceivable, now time.Time) *ReceivableResponse {
	return &ReceivableResponse{
		ID:            ar.ID,
		TenantID:      ar.TenantID,
		Description:   ar.Description,
		Amount:        ar.Amount,
		Category:      ar.Category,
		Source:        string(ar.Source),
		DueDate:       ar.DueDate,
		Status:        ar.EffectiveStatus(now).String(),
		ReceivedDate:  ar.ReceivedDate,
		BankAccountID: ar.BankAccountID,
		PayerName:     ar.PayerName,
		CreatedAt:     ar.CreatedAt,
		UpdatedAt:     ar.UpdatedAt,
		Version:       ar.Version,
	}
}

func ledgerTransactionToResponse(tx *finance.LedgerTransaction) LedgerTransactionResponse {
	resp := LedgerTransactionResponse{
		ID:              tx.ID,
		TenantID:        tx.TenantID,
		BankAccountID:   tx.BankAccountID,
		Direction:       string(tx.Direction),
		Amount:          tx.Amount,
		Description:     tx.Description,
		Category:        tx.Category,
		TransactionDate: tx.TransactionDate,
		ReferenceID:     tx.ReferenceID,
		CreatedAt:       tx.CreatedAt,
	}
	if tx.ReferenceType != nil {
		rt := string(*tx.ReferenceType)
		resp.ReferenceType = &rt
	}
	return resp
}

func bankAccountToResponse(a *finance.BankAccount) *BankAccountResponse {
	return &BankAccountResponse{
		ID:             a.ID,
		TenantID:       a.TenantID,
		Name:           a.Name,
		BankName:       a.BankName,
		AccountType:    string(a.AccountType),
		AgencyNumber:   a.AgencyNumber,
		AccountNumber:  a.AccountNumber,
		InitialBalance: a.InitialBalance,
		Active:         a.Active,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (f ObligationListFilter) toDomain() finance.ObligationFilter {
	return finance.ObligationFilter{
		Status:   f.Status,
		Category: f.Category,
		DueFrom:  f.DueFrom,
		DueTo:    f.DueTo,
		Page:     f.Page,
		PageSize: f.PageSize,
	}
}
