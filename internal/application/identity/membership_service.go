package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finflow/backend/internal/domain/identity"
	"github.com/finflow/backend/internal/domain/shared"
)

// CacheInvalidator drops cached tenant resolutions for a user. Satisfied by
// TenantResolver.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// MembershipService manages user↔tenant assignments. Assignment is an
// atomic upsert: the repository deactivates any previous active membership
// and activates the new one in a single transaction, so the
// one-active-membership-per-user invariant holds even under concurrent
// assignments.
type MembershipService struct {
	membershipRepo identity.MembershipRepository
	tenantRepo     identity.TenantRepository
	userRepo       identity.UserRepository
	resolverCache  CacheInvalidator
	audit          AuditRecorder
	logger         *zap.Logger
}

// NewMembershipService creates a new MembershipService
func NewMembershipService(
	membershipRepo identity.MembershipRepository,
	tenantRepo identity.TenantRepository,
	userRepo identity.UserRepository,
	resolverCache CacheInvalidator,
	audit AuditRecorder,
	logger *zap.Logger,
) *MembershipService {
	return &MembershipService{
		membershipRepo: membershipRepo,
		tenantRepo:     tenantRepo,
		userRepo:       userRepo,
		resolverCache:  resolverCache,
		audit:          audit,
		logger:         logger,
	}
}

// Assign makes the user an active member of the tenant, displacing any
// previous active membership.
func (s *MembershipService) Assign(ctx context.Context, req AssignMembershipRequest) (*MembershipResponse, error) {
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, err
	}
	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if !tenant.Status.CanOperate() {
		return nil, shared.NewDomainError("INVALID_STATE", "Tenant is not accepting members")
	}

	membership, err := identity.NewMembership(req.UserID, req.TenantID, identity.MembershipRole(req.Role))
	if err != nil {
		return nil, err
	}

	active, err := s.membershipRepo.AssignActive(ctx, membership)
	if err != nil {
		return nil, err
	}

	// The next resolution must see the new tenant, not the cached one.
	if err := s.resolverCache.Invalidate(ctx, req.UserID); err != nil {
		s.logger.Warn("failed to invalidate resolver cache",
			zap.String("user_id", req.UserID.String()), zap.Error(err))
	}

	s.recordAudit(ctx, AuditEntry{
		TenantID: &active.TenantID,
		UserID:   &active.UserID,
		Action:   AuditActionMembershipAssign,
		Detail:   string(active.Role),
	})

	s.logger.Info("membership assigned",
		zap.String("user_id", req.UserID.String()),
		zap.String("tenant_id", req.TenantID.String()),
		zap.String("role", string(active.Role)))

	resp := membershipToResponse(active)
	return &resp, nil
}

// Remove deactivates the user's active membership in the given tenant. The
// membership row is kept for history; subsequent resolutions fail with
// NO_TENANT. Naming a tenant the user is not actively a member of is a
// NotFound, so a caller scoped to one tenant can never detach a user from
// another.
func (s *MembershipService) Remove(ctx context.Context, userID, tenantID uuid.UUID) error {
	membership, err := s.membershipRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return err
	}
	if membership.TenantID != tenantID {
		return shared.ErrNotFound
	}

	membership.Deactivate()
	if err := s.membershipRepo.Save(ctx, membership); err != nil {
		return err
	}

	if err := s.resolverCache.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("failed to invalidate resolver cache",
			zap.String("user_id", userID.String()), zap.Error(err))
	}

	s.recordAudit(ctx, AuditEntry{
		TenantID: &membership.TenantID,
		UserID:   &membership.UserID,
		Action:   AuditActionMembershipRemove,
	})

	s.logger.Info("membership removed",
		zap.String("user_id", userID.String()),
		zap.String("tenant_id", membership.TenantID.String()))
	return nil
}

// ListByTenant lists a tenant's memberships
func (s *MembershipService) ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]MembershipResponse, error) {
	memberships, err := s.membershipRepo.FindByTenant(ctx, tenantID, activeOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]MembershipResponse, len(memberships))
	for i := range memberships {
		responses[i] = membershipToResponse(&memberships[i])
	}
	return responses, nil
}

// GetActive returns the user's active membership
func (s *MembershipService) GetActive(ctx context.Context, userID uuid.UUID) (*MembershipResponse, error) {
	membership, err := s.membershipRepo.FindActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := membershipToResponse(membership)
	return &resp, nil
}

func (s *MembershipService) recordAudit(ctx context.Context, entry AuditEntry) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry", zap.String("action", entry.Action), zap.Error(err))
	}
}
