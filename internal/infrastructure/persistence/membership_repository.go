package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finflow/backend/internal/domain/identity"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/infrastructure/persistence/models"
)

// GormMembershipRepository implements MembershipRepository using GORM.
// Queries here are privileged: they deliberately bypass tenant scoping,
// because the active membership is what determines the tenant.
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GormMembershipRepository
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// FindByID finds a membership by its ID
func (r *GormMembershipRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Membership, error) {
	var model models.MembershipModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByUser finds the single active membership for a user.
// Connection-class failures are mapped to TRANSIENT_AUTH so the resolver
// applies its fixed-delay retry instead of treating them as terminal.
func (r *GormMembershipRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*identity.Membership, error) {
	var model models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		if isTransientLookupError(err) {
			return nil, shared.ErrTransientAuth
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserAndTenant finds a user's membership in a tenant, active or not
func (r *GormMembershipRepository) FindByUserAndTenant(ctx context.Context, userID, tenantID uuid.UUID) (*identity.Membership, error) {
	var model models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND tenant_id = ?", userID, tenantID).
		Order("active DESC, created_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTenant lists memberships of a tenant
func (r *GormMembershipRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]identity.Membership, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MembershipModel{}).
		Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var membershipModels []models.MembershipModel
	if err := query.Order("created_at DESC").Find(&membershipModels).Error; err != nil {
		return nil, err
	}

	memberships := make([]identity.Membership, len(membershipModels))
	for i, model := range membershipModels {
		memberships[i] = *model.ToDomain()
	}
	return memberships, nil
}

// Save creates or updates a membership
func (r *GormMembershipRepository) Save(ctx context.Context, m *identity.Membership) error {
	model := models.MembershipModelFromDomain(m)
	return r.db.WithContext(ctx).Save(model).Error
}

// AssignActive atomically makes m the user's only active membership. In one
// transaction it deactivates every other active membership of the user and
// upserts the new row against the partial unique index on (user_id) WHERE
// active: when a concurrent assignment already committed an active row, the
// insert turns into an update repointing that surviving row. The separate
// deactivate-then-insert sequence the clients used before had a window where
// a user could end up with zero or two active rows; the conditional upsert
// closes it without the constraint violation ever reaching the caller. A
// plain insert-then-recover would not work on postgres: a failed statement
// aborts the transaction, so the recovery query could never run.
func (r *GormMembershipRepository) AssignActive(ctx context.Context, m *identity.Membership) (*identity.Membership, error) {
	var result *identity.Membership

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(&models.MembershipModel{}).
			Where("user_id = ? AND active = ? AND id <> ?", m.UserID, true, m.ID).
			Updates(map[string]interface{}{
				"active":         false,
				"deactivated_at": now,
				"updated_at":     now,
			}).Error; err != nil {
			return err
		}

		// On conflict the insert waits on the competing transaction's row
		// lock, so racing assignments serialize here instead of erroring.
		model := models.MembershipModelFromDomain(m)
		if err := tx.Clauses(clause.OnConflict{
			Columns:     []clause.Column{{Name: "user_id"}},
			TargetWhere: clause.Where{Exprs: []clause.Expression{clause.Expr{SQL: "active"}}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"tenant_id":  model.TenantID,
				"role":       model.Role,
				"updated_at": now,
				"version":    gorm.Expr("tenant_memberships.version + 1"),
			}),
		}).Create(model).Error; err != nil {
			return err
		}

		// The conflict path keeps the surviving row's id, so read back
		// whichever row is active now rather than trusting model.ID.
		var active models.MembershipModel
		if err := tx.Where("user_id = ? AND active = ?", m.UserID, true).
			First(&active).Error; err != nil {
			return err
		}
		result = active.ToDomain()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// CountActiveByUser counts active memberships for a user
func (r *GormMembershipRepository) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MembershipModel{}).
		Where("user_id = ? AND active = ?", userID, true).
		Count(&count).Error
	return count, err
}

// isTransientLookupError reports whether err looks like a momentary
// connection, authentication, or serialization failure rather than a real
// lookup outcome. SQLSTATE class 08 covers lost connections, class 28
// invalid authorization, 40001 serialization failures and 57P03 a server
// that is still starting up.
func isTransientLookupError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{"SQLSTATE 08", "SQLSTATE 28", "SQLSTATE 40001", "SQLSTATE 57P03"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset")
}

// Ensure GormMembershipRepository implements MembershipRepository
var _ identity.MembershipRepository = (*GormMembershipRepository)(nil)
