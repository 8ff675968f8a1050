package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-community/internal/logger"
	"github.com/MKhiriev/go-community/internal/service"
	"github.com/MKhiriev/go-community/internal/utils"
	"github.com/MKhiriev/go-community/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	source, err := readSource(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AccountService.Register(ctx, source)
	if err != nil {
		if h.writeFormError(w, r, err) {
			return
		}
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("user_id", user.UserID).Msg("user successfully registered")

	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	source, err := readSource(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := h.services.AccountService.Login(ctx, source)
	if err != nil {
		if h.writeFormError(w, r, err) {
			return
		}
		writeError(w, r, err)
		return
	}

	log.Debug().Int64("user_id", token.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	w.WriteHeader(http.StatusOK)
}

// session reports the user the bearer token was issued to.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, service.ErrTokenIsExpiredOrInvalid)
		return
	}

	utils.WriteJSON(w, models.SessionResponse{UserID: userID}, http.StatusOK)
}
