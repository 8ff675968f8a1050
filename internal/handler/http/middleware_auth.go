package http

import (
	"net/http"

	"github.com/MKhiriev/go-community/internal/logger"
	"github.com/MKhiriev/go-community/internal/utils"
)

// auth enforces bearer token authentication.
//
// The token from the "Authorization" header is validated through
// AccountService.ParseToken; on success the user id is stored in the request
// context (see [utils.GetUserIDFromContext]). Missing, malformed, expired or
// forged tokens are answered with 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, ErrEmptyAuthorizationHeader)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := r.Context()
		token, err := h.services.AccountService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		log.Debug().Int64("user_id", token.UserID).Msg("request authenticated")

		next.ServeHTTP(w, r.WithContext(utils.WithUserID(ctx, token.UserID)))
	})
}
