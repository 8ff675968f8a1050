package validation

//go:generate mockgen -source=interfaces.go -destination=../mock/validation_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-community/models"
)

// RecordStore is the read-only persistence collaborator queried by the
// unique, isactive and isbanned rules.
type RecordStore interface {
	// CountMatching returns the number of records in collection whose field
	// equals value.
	CountMatching(ctx context.Context, collection, field, value string) (int, error)

	// FindOne returns the account state of the first record in collection
	// whose field equals value. found is false when no record matches.
	FindOne(ctx context.Context, collection, field, value string) (status models.UserStatus, found bool, err error)
}

// Sanitizer escapes text before it is interpolated into a message.
type Sanitizer interface {
	Clean(text string) string
}
