package identity

import (
	"context"

	"github.com/google/uuid"
)

// Audit action names recorded by the identity services.
const (
	AuditActionTenantOnboarded  = "tenant.onboarded"
	AuditActionMembershipAssign = "membership.assigned"
	AuditActionMembershipRemove = "membership.removed"
	AuditActionUserSignup       = "user.signup"
	AuditActionTenantStatus     = "tenant.status_changed"
)

// AuditEntry is one append-only record of a sensitive identity operation.
type AuditEntry struct {
	TenantID *uuid.UUID
	UserID   *uuid.UUID
	Action   string
	Detail   string
}

// AuditRecorder persists audit entries. Recording failures must not abort
// the operation being audited unless the recorder is used inside a
// provisioning transaction.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry) error
}
