package persistence

import (
	"context"

	"gorm.io/gorm"

	appidentity "github.com/finflow/backend/internal/application/identity"
	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/identity"
)

// GormProvisioningScope implements ProvisioningScope using GORM
// transactions. Tenant onboarding creates the tenant, the admin user, the
// membership, the default bank account and the audit record atomically.
type GormProvisioningScope struct {
	db *gorm.DB
}

// NewGormProvisioningScope creates a new GormProvisioningScope
func NewGormProvisioningScope(db *gorm.DB) *GormProvisioningScope {
	return &GormProvisioningScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormProvisioningScope) Execute(ctx context.Context, fn func(repos appidentity.ProvisioningRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProvisioningRepositories{tx: tx})
	})
}

// gormProvisioningRepositories provides repositories bound to one transaction
type gormProvisioningRepositories struct {
	tx *gorm.DB
}

// Tenants returns the tenant repository scoped to the current transaction
func (r *gormProvisioningRepositories) Tenants() identity.TenantRepository {
	return NewGormTenantRepository(r.tx)
}

// Users returns the user repository scoped to the current transaction
func (r *gormProvisioningRepositories) Users() identity.UserRepository {
	return NewGormUserRepository(r.tx)
}

// Memberships returns the membership repository scoped to the current transaction
func (r *gormProvisioningRepositories) Memberships() identity.MembershipRepository {
	return NewGormMembershipRepository(r.tx)
}

// BankAccounts returns the bank account repository scoped to the current transaction
func (r *gormProvisioningRepositories) BankAccounts() finance.BankAccountRepository {
	return NewGormBankAccountRepository(r.tx)
}

// Audit returns the audit recorder scoped to the current transaction
func (r *gormProvisioningRepositories) Audit() appidentity.AuditRecorder {
	return NewGormAuditLogRepository(r.tx)
}

// Ensure the implementations satisfy the application contracts
var (
	_ appidentity.ProvisioningScope        = (*GormProvisioningScope)(nil)
	_ appidentity.ProvisioningRepositories = (*gormProvisioningRepositories)(nil)
)
