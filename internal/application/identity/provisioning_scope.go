package identity

import (
	"context"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/identity"
)

// ProvisioningScope provides transactional access to the repositories
// tenant onboarding touches. Tenant, admin user, membership, default bank
// account and the audit record are created in one transaction so a failed
// onboarding leaves nothing behind.
type ProvisioningScope interface {
	// Execute runs fn within a database transaction. If fn returns an
	// error the transaction is rolled back; otherwise it is committed.
	Execute(ctx context.Context, fn func(repos ProvisioningRepositories) error) error
}

// ProvisioningRepositories provides access to the onboarding repositories
// within a transaction.
type ProvisioningRepositories interface {
	// Tenants returns the tenant repository scoped to the current transaction
	Tenants() identity.TenantRepository
	// Users returns the user repository scoped to the current transaction
	Users() identity.UserRepository
	// Memberships returns the membership repository scoped to the current transaction
	Memberships() identity.MembershipRepository
	// BankAccounts returns the bank account repository scoped to the current transaction
	BankAccounts() finance.BankAccountRepository
	// Audit returns the audit recorder scoped to the current transaction
	Audit() AuditRecorder
}
