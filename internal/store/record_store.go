package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-community/internal/logger"
	"github.com/MKhiriev/go-community/internal/validation"
	"github.com/MKhiriev/go-community/models"
)

// recordStore answers the lookups of the unique, isactive and isbanned
// validation rules. Collections are tables, fields are columns.
type recordStore struct {
	db *DB
}

// NewRecordStore returns a validation.RecordStore backed by db.
func NewRecordStore(db *DB, log *logger.Logger) validation.RecordStore {
	log.Debug().Msg("creating record store")
	return &recordStore{db: db}
}

func (s *recordStore) CountMatching(ctx context.Context, collection, field, value string) (int, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountMatchingQuery(s.db.builder, collection, field, value)
	if err != nil {
		log.Err(err).Str("func", "*recordStore.CountMatching").Msg("error building query")
		return 0, err
	}

	var count int
	err = s.db.withRetry(ctx, func() error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	})
	if err != nil {
		log.Err(err).Str("func", "*recordStore.CountMatching").Str("collection", collection).Msg("error executing query")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (s *recordStore) FindOne(ctx context.Context, collection, field, value string) (models.UserStatus, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindStatusQuery(s.db.builder, collection, field, value)
	if err != nil {
		log.Err(err).Str("func", "*recordStore.FindOne").Msg("error building query")
		return models.UserStatus{}, false, err
	}

	var status models.UserStatus
	err = s.db.withRetry(ctx, func() error {
		return s.db.QueryRowContext(ctx, query, args...).Scan(&status.Active, &status.Banned)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.UserStatus{}, false, nil
	}
	if err != nil {
		log.Err(err).Str("func", "*recordStore.FindOne").Str("collection", collection).Msg("error executing query")
		return models.UserStatus{}, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return status, true, nil
}
