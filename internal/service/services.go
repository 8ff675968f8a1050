package service

import (
	"github.com/MKhiriev/go-community/internal/config"
	"github.com/MKhiriev/go-community/internal/forms"
	"github.com/MKhiriev/go-community/internal/logger"
	"github.com/MKhiriev/go-community/internal/store"
)

type Services struct {
	AccountService AccountService
	AppInfoService AppInfoService
}

// NewServices wires the services. storages may be nil when no database is
// configured; forms using store-backed rules then fail as misconfigured.
func NewServices(storages *store.Storages, definitions forms.Definitions, cfg config.StructuredConfig, log *logger.Logger) (*Services, error) {
	if storages == nil {
		storages = &store.Storages{}
	}

	appInfoService, err := NewAppInfoService(cfg.App, log)
	if err != nil {
		return nil, err
	}

	return &Services{
		AccountService: NewAccountService(storages.UserRepository, storages.RecordStore, definitions, cfg.App, log),
		AppInfoService: appInfoService,
	}, nil
}
