package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-community/internal/logger"
	"github.com/stretchr/testify/require"
)

// newMockDB wraps sqlmock in a postgres flavoured DB without retry delays.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := newPostgresDB(conn, logger.Nop())
	db.retryDelays = nil

	return db, mock
}
