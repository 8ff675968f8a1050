package store

import (
	"github.com/MKhiriev/go-community/internal/logger"
	"github.com/MKhiriev/go-community/internal/validation"
)

// Storages bundles everything the services need from the database.
type Storages struct {
	RecordStore    validation.RecordStore
	UserRepository UserRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		RecordStore:    NewRecordStore(db, log),
		UserRepository: NewUserRepository(db, log),
	}
}
