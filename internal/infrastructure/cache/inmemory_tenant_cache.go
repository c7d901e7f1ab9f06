package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryTenantCache implements TenantCache with a mutex-protected map.
// Suitable for single-instance deployments and tests.
type InMemoryTenantCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]tenantEntry
}

type tenantEntry struct {
	tenantID  uuid.UUID
	expiresAt time.Time
}

// NewInMemoryTenantCache creates an in-memory tenant cache
func NewInMemoryTenantCache() *InMemoryTenantCache {
	return &InMemoryTenantCache{
		entries: make(map[uuid.UUID]tenantEntry),
	}
}

// Get returns the cached tenant for a user
func (c *InMemoryTenantCache) Get(_ context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return uuid.Nil, false, nil
	}
	return entry.tenantID, true, nil
}

// Set stores the resolved tenant for a user
func (c *InMemoryTenantCache) Set(_ context.Context, userID, tenantID uuid.UUID, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[userID] = tenantEntry{
		tenantID:  tenantID,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Invalidate removes the cached entry for a user
func (c *InMemoryTenantCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
	return nil
}

// Ensure InMemoryTenantCache implements TenantCache
var _ TenantCache = (*InMemoryTenantCache)(nil)
