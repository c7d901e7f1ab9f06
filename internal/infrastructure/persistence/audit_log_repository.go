package persistence

import (
	"context"

	"gorm.io/gorm"

	appidentity "github.com/finflow/backend/internal/application/identity"
	"github.com/finflow/backend/internal/infrastructure/persistence/models"
)

// GormAuditLogRepository persists append-only audit entries
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Record inserts one audit entry. Audit rows are never updated or deleted.
func (r *GormAuditLogRepository) Record(ctx context.Context, entry appidentity.AuditEntry) error {
	model := models.NewAuditLogModel(entry.TenantID, entry.UserID, entry.Action, entry.Detail)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByTenant lists audit entries of a tenant, newest first
func (r *GormAuditLogRepository) FindByTenant(ctx context.Context, tenantID string, limit int) ([]models.AuditLogModel, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	var logs []models.AuditLogModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// Ensure GormAuditLogRepository implements AuditRecorder
var _ appidentity.AuditRecorder = (*GormAuditLogRepository)(nil)
