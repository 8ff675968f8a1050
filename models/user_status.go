package models

// UserStatus is the account-state projection of a stored record.
// Record lookups performed during form validation only need these two flags.
type UserStatus struct {
	// Active reports whether the account has been validated.
	Active bool `json:"active"`

	// Banned reports whether the account is banned.
	Banned bool `json:"isbanned"`
}
