package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-community/internal/logger"
	"github.com/MKhiriev/go-community/internal/service"
	"github.com/MKhiriev/go-community/internal/utils"
	"github.com/MKhiriev/go-community/internal/validation"
	"github.com/MKhiriev/go-community/models"
)

// maxBodySize bounds submission bodies.
const maxBodySize = 1 << 20

// checkForm runs a named form without side effects. A failing submission is
// still a 200: the result carries passed=false and the messages.
func (h *Handler) checkForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	name := chi.URLParam(r, "form")

	source, err := readSource(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.AccountService.CheckForm(ctx, name, source)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("form", name).Bool("passed", result.Passed).Msg("form checked")

	h.writeResult(w, r, result, http.StatusOK)
}

// writeFormError answers a *service.FormError with 422 and reports whether
// err was one.
func (h *Handler) writeFormError(w http.ResponseWriter, r *http.Request, err error) bool {
	var formErr *service.FormError
	if !errors.As(err, &formErr) {
		return false
	}

	logger.FromRequest(r).Info().Str("form", formErr.Form).Strs("errors", formErr.Messages).Msg("submission rejected")

	h.writeResult(w, r, models.ValidationResult{
		Form:   formErr.Form,
		Passed: false,
		Errors: formErr.Messages,
	}, http.StatusUnprocessableEntity)

	return true
}

// writeResult renders result as JSON, or as an HTML list when the caller
// asked for markup.
func (h *Handler) writeResult(w http.ResponseWriter, r *http.Request, result models.ValidationResult, status int) {
	if wantsHTML(r) {
		utils.WriteHTML(w, h.renderMessages(result.Errors), status)
		return
	}

	utils.WriteJSON(w, result, status)
}

// renderMessages builds an unordered list of messages. Every message is
// purified, so markup smuggled into a message through a custom override
// is removed.
func (h *Handler) renderMessages(messages []string) string {
	var b strings.Builder
	b.WriteString(`<ul class="errors">`)
	for _, message := range messages {
		b.WriteString("<li>")
		b.WriteString(h.sanitizer.Purify(message))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// readSource extracts submitted values from a form encoded or JSON body.
// JSON bodies must be an object of strings.
func readSource(r *http.Request) (validation.Source, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodySize)

	contentType := r.Header.Get("Content-Type")
	mediaType := ""
	if contentType != "" {
		parsed, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedContentType, err)
		}
		mediaType = parsed
	}

	switch mediaType {
	case "application/json":
		source := validation.Source{}
		if err := json.NewDecoder(r.Body).Decode(&source); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		return source, nil

	case "", "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodySize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
		}
		return validation.SourceFromValues(r.PostForm), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, mediaType)
	}
}
