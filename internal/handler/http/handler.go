package http

import (
	"github.com/MKhiriev/go-community/internal/logger"
	"github.com/MKhiriev/go-community/internal/sanitizer"
	"github.com/MKhiriev/go-community/internal/service"
	"github.com/MKhiriev/go-community/internal/utils"
)

type Handler struct {
	services *service.Services

	sanitizer *sanitizer.Sanitizer
	traceIDs  *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		sanitizer: sanitizer.New(),
		traceIDs:  utils.NewUUIDGenerator(),
		logger:    logger,
	}
}
