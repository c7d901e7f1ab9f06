package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/identity"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/domain/shared/valueobject"
)

// TenantService manages tenant lifecycle and onboarding
type TenantService struct {
	tenantRepo    identity.TenantRepository
	provisioning  ProvisioningScope
	resolverCache CacheInvalidator
	logger        *zap.Logger
}

// NewTenantService creates a new TenantService
func NewTenantService(
	tenantRepo identity.TenantRepository,
	provisioning ProvisioningScope,
	resolverCache CacheInvalidator,
	logger *zap.Logger,
) *TenantService {
	return &TenantService{
		tenantRepo:    tenantRepo,
		provisioning:  provisioning,
		resolverCache: resolverCache,
		logger:        logger,
	}
}

// Onboard provisions a tenant with its first admin user, the admin's
// active membership, a default cash account and an audit record, all in
// one transaction.
func (s *TenantService) Onboard(ctx context.Context, req OnboardTenantRequest) (*OnboardTenantResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var result *OnboardTenantResponse
	var adminID uuid.UUID

	err = s.provisioning.Execute(ctx, func(repos ProvisioningRepositories) error {
		tenant, err := identity.NewTenant(req.CompanyName, req.ContactName, req.ContactEmail)
		if err != nil {
			return err
		}
		if err := repos.Tenants().Save(ctx, tenant); err != nil {
			return err
		}

		admin, err := identity.NewUser(req.AdminEmail, req.AdminFullName, string(hash))
		if err != nil {
			return err
		}
		exists, err := repos.Users().ExistsByEmail(ctx, admin.Email)
		if err != nil {
			return err
		}
		if exists {
			return shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
		}
		if err := repos.Users().Save(ctx, admin); err != nil {
			return err
		}
		adminID = admin.ID

		membership, err := identity.NewMembership(admin.ID, tenant.ID, identity.MembershipRoleAdmin)
		if err != nil {
			return err
		}
		if _, err := repos.Memberships().AssignActive(ctx, membership); err != nil {
			return err
		}

		cash, err := finance.NewBankAccount(
			tenant.ID,
			"Cash",
			"",
			finance.BankAccountTypeCash,
			"", "",
			valueobject.NewMoneyBRL(decimal.Zero),
		)
		if err != nil {
			return err
		}
		if err := repos.BankAccounts().Save(ctx, cash); err != nil {
			return err
		}

		if err := repos.Audit().Record(ctx, AuditEntry{
			TenantID: &tenant.ID,
			UserID:   &admin.ID,
			Action:   AuditActionTenantOnboarded,
			Detail:   tenant.CompanyName,
		}); err != nil {
			return err
		}

		result = &OnboardTenantResponse{
			Tenant: tenantToResponse(tenant),
			Admin:  userToResponse(admin),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// A failed signup retried before provisioning finished may have cached
	// a miss; make sure the fresh membership is visible immediately.
	if err := s.resolverCache.Invalidate(ctx, adminID); err != nil {
		s.logger.Warn("failed to invalidate resolver cache", zap.Error(err))
	}

	s.logger.Info("tenant onboarded",
		zap.String("tenant_id", result.Tenant.ID.String()),
		zap.String("company", result.Tenant.CompanyName))
	return result, nil
}

// Get returns a tenant by ID
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := tenantToResponse(tenant)
	return &resp, nil
}

// List returns tenants matching the filter
func (s *TenantService) List(ctx context.Context, filter shared.Filter) ([]TenantResponse, int64, error) {
	tenants, err := s.tenantRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tenantRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]TenantResponse, len(tenants))
	for i := range tenants {
		responses[i] = tenantToResponse(&tenants[i])
	}
	return responses, total, nil
}

// Activate promotes a trial tenant to active
func (s *TenantService) Activate(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	return s.transition(ctx, id, func(t *identity.Tenant) error { return t.Activate() })
}

// Suspend temporarily disables a tenant
func (s *TenantService) Suspend(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	return s.transition(ctx, id, func(t *identity.Tenant) error { return t.Suspend() })
}

// Block permanently disables a tenant
func (s *TenantService) Block(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	return s.transition(ctx, id, func(t *identity.Tenant) error { return t.Block() })
}

func (s *TenantService) transition(ctx context.Context, id uuid.UUID, fn func(*identity.Tenant) error) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(tenant); err != nil {
		return nil, err
	}
	if err := s.tenantRepo.Save(ctx, tenant); err != nil {
		return nil, err
	}
	resp := tenantToResponse(tenant)
	return &resp, nil
}
