package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-community/internal/logger"
	"github.com/MKhiriev/go-community/internal/service"
	"github.com/MKhiriev/go-community/internal/store"
	"github.com/MKhiriev/go-community/internal/utils"
	"github.com/MKhiriev/go-community/internal/validation"
)

type errorStatus struct {
	target error
	status int
}

// errorStatuses is checked in order, the first match wins.
var errorStatuses = []errorStatus{
	{service.ErrValidationFailed, http.StatusUnprocessableEntity},
	{service.ErrUnknownForm, http.StatusNotFound},
	{service.ErrWrongCredentials, http.StatusUnauthorized},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized},
	{utils.ErrInvalidAuthorizationHeader, http.StatusUnauthorized},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized},
	{ErrUnsupportedContentType, http.StatusUnsupportedMediaType},
	{ErrMalformedBody, http.StatusBadRequest},

	{store.ErrUserAlreadyExists, http.StatusConflict},

	{service.ErrStorageUnavailable, http.StatusServiceUnavailable},
	{validation.ErrRecordStore, http.StatusServiceUnavailable},

	{validation.ErrUnknownRule, http.StatusInternalServerError},
	{validation.ErrInvalidRuleArgument, http.StatusInternalServerError},
	{validation.ErrRecordStoreNotBound, http.StatusInternalServerError},
	{store.ErrExecutingQuery, http.StatusInternalServerError},
}

// statusFromError returns the status for err and the sentinel it matched.
// Unknown errors map to 500 with a nil sentinel.
func statusFromError(err error) (int, error) {
	for _, e := range errorStatuses {
		if errors.Is(err, e.target) {
			return e.status, e.target
		}
	}
	return http.StatusInternalServerError, nil
}

// writeError answers with the mapped status. Client errors carry the
// sentinel message; server errors only the status text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, target := statusFromError(err)

	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Info().Err(err).Int("status", status).Msg("request rejected")
	http.Error(w, target.Error(), status)
}
