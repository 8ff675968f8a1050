package models

// ValidationResult is the outcome of running a named form through the
// field validator. Errors keeps the order in which rules failed.
type ValidationResult struct {
	// Form is the name of the form definition that was checked.
	Form string `json:"form,omitempty"`

	// Passed is true when Errors is empty.
	Passed bool `json:"passed"`

	// Errors holds human-readable messages, one per failed rule.
	Errors []string `json:"errors"`
}

// VersionResponse is returned by the version endpoint.
type VersionResponse struct {
	Version string `json:"version"`
}

// SessionResponse identifies the user behind a bearer token.
type SessionResponse struct {
	UserID int64 `json:"user_id"`
}
