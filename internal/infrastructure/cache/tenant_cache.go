package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TenantCache caches resolved user→tenant assignments so that hot request
// paths do not hit the membership table on every call. Entries must be
// invalidated whenever a membership is assigned or removed.
type TenantCache interface {
	// Get returns the cached tenant for a user. The second return value
	// is false on a cache miss.
	Get(ctx context.Context, userID uuid.UUID) (uuid.UUID, bool, error)

	// Set stores the resolved tenant for a user with a TTL
	Set(ctx context.Context, userID, tenantID uuid.UUID, ttl time.Duration) error

	// Invalidate removes the cached entry for a user
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
