package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")

	// ErrNoTenant is the terminal outcome of tenant resolution for a user that
	// has no active membership and will not get one. Distinct from
	// ErrNoMappingYet, which is retryable while provisioning completes.
	ErrNoTenant     = NewDomainError("NO_TENANT", "No tenant is associated with this user")
	ErrNoMappingYet = NewDomainError("NO_MAPPING_YET", "Tenant membership is still being provisioned")

	// ErrTransientAuth signals that a privileged lookup failed because the
	// authentication context has not propagated yet. Retried a fixed number
	// of times before escalating.
	ErrTransientAuth = NewDomainError("TRANSIENT_AUTH", "Authentication context not yet available")
)

// IsNotFound reports whether err is the NOT_FOUND domain error.
func IsNotFound(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == ErrNotFound.Code
}

// IsInvalidState reports whether err carries the INVALID_STATE code.
func IsInvalidState(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == ErrInvalidState.Code
}
