package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-community/internal/service"
	"github.com/MKhiriev/go-community/internal/validation"
	"github.com/MKhiriev/go-community/models"
)

func TestCheckForm(t *testing.T) {
	tests := []struct {
		name       string
		form       string
		accept     string
		hxRequest  string
		result     models.ValidationResult
		err        error
		wantStatus int
		wantType   string
		wantBody   string
	}{
		{
			name:       "passing submission",
			form:       "register",
			result:     models.ValidationResult{Form: "register", Passed: true, Errors: []string{}},
			wantStatus: http.StatusOK,
			wantType:   "application/json",
			wantBody:   `{"form":"register","passed":true,"errors":[]}`,
		},
		{
			name:       "failing submission is still 200",
			form:       "login",
			result:     models.ValidationResult{Form: "login", Errors: []string{"username is required"}},
			wantStatus: http.StatusOK,
			wantType:   "application/json",
			wantBody:   `{"form":"login","passed":false,"errors":["username is required"]}`,
		},
		{
			name:       "html fragment on Accept",
			form:       "login",
			accept:     "text/html,application/xhtml+xml",
			result:     models.ValidationResult{Form: "login", Errors: []string{"username is required", "password is required"}},
			wantStatus: http.StatusOK,
			wantType:   "text/html; charset=utf-8",
			wantBody:   `<ul class="errors"><li>username is required</li><li>password is required</li></ul>`,
		},
		{
			name:       "empty html fragment for htmx",
			form:       "login",
			hxRequest:  "true",
			result:     models.ValidationResult{Form: "login", Passed: true, Errors: []string{}},
			wantStatus: http.StatusOK,
			wantType:   "text/html; charset=utf-8",
			wantBody:   `<ul class="errors"></ul>`,
		},
		{
			name:       "unknown form",
			form:       "newsletter",
			err:        fmt.Errorf("%w: %q", service.ErrUnknownForm, "newsletter"),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "misconfigured form",
			form:       "register",
			err:        fmt.Errorf("checking form: %w", validation.ErrUnknownRule),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account := &mockAccountService{
				checkFormFn: func(_ context.Context, name string, source validation.Source) (models.ValidationResult, error) {
					assert.Equal(t, tt.form, name)
					assert.Equal(t, "alice", source["username"])
					return tt.result, tt.err
				},
			}

			router := newHandlerWithAccount(t, account).Init()

			req := httptest.NewRequest(http.MethodPost, "/api/forms/"+tt.form+"/check", formBody("username", "alice"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			if tt.hxRequest != "" {
				req.Header.Set("HX-Request", tt.hxRequest)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			}
			if tt.wantBody == "" {
				return
			}
			if json.Valid([]byte(tt.wantBody)) {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			} else {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRenderMessages_PurifiesMarkup(t *testing.T) {
	h := newHandlerWithAccount(t, &mockAccountService{})

	got := h.renderMessages([]string{`<a href="x">link</a> text`, "a &amp; b"})

	assert.Equal(t, `<ul class="errors"><li>link text</li><li>a &amp; b</li></ul>`, got)
}

func TestWantsHTML(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		want   bool
	}{
		{"plain", nil, false},
		{"htmx", map[string]string{"HX-Request": "true"}, true},
		{"htmx false", map[string]string{"HX-Request": "false"}, false},
		{"accept html", map[string]string{"Accept": "text/html"}, true},
		{"accept json", map[string]string{"Accept": "application/json"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, wantsHTML(req))
		})
	}
}
