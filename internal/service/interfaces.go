package service

import (
	"context"

	"github.com/MKhiriev/go-community/internal/validation"
	"github.com/MKhiriev/go-community/models"
)

// AccountService registers and signs in community members. Every submission
// is checked against a named form before anything is stored.
type AccountService interface {
	// Register validates source against the "register" form and creates the
	// account. Validation failures are returned as *FormError.
	Register(ctx context.Context, source validation.Source) (models.User, error)

	// Login validates source against the "login" form, verifies the password
	// and issues a token.
	Login(ctx context.Context, source validation.Source) (models.Token, error)

	// CheckForm runs any named form without side effects.
	CheckForm(ctx context.Context, name string, source validation.Source) (models.ValidationResult, error)

	// ParseToken validates a token issued by Login.
	ParseToken(ctx context.Context, raw string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
