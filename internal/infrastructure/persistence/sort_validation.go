package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not whitelisted.
// Sort fields come from query strings, so they must never reach the ORDER BY
// clause unvalidated.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ObligationSortFields contains allowed sort fields for payables and receivables
var ObligationSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"due_date":   true,
	"amount":     true,
	"status":     true,
	"category":   true,
}

// LedgerSortFields contains allowed sort fields for ledger transactions
var LedgerSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"transaction_date": true,
	"amount":           true,
	"direction":        true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"company_name": true,
	"status":       true,
}
