// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/folio/internal/platform/middleware"
)

// stubAppConfig satisfies [middleware.AppConfig] for CORS tests.
type stubAppConfig struct {
	development  bool
	extraOrigins []string
}

func (c stubAppConfig) IsDevelopment() bool   { return c.development }
func (c stubAppConfig) CORSOrigins() []string { return c.extraOrigins }

func corsResponse(cfg stubAppConfig, method, origin string) *httptest.ResponseRecorder {
	handler := middleware.CORS(cfg)(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(method, "/api/v1/books", nil)
	if origin != "" {
		request.Header.Set("Origin", origin)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestCORS_Development tests that development mode reflects any origin.
*/
func TestCORS_Development(t *testing.T) {
	cfg := stubAppConfig{development: true}

	recorder := corsResponse(cfg, http.MethodGet, "http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestCORS_Production tests the production allow rules: the first-party domain
always passes, configured extra origins pass exactly, everything else is
refused without CORS headers.
*/
func TestCORS_Production(t *testing.T) {
	cfg := stubAppConfig{extraOrigins: []string{"https://staging.folio.dev"}}

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{"first_party", "https://www.folio.app", true},
		{"configured_extra", "https://staging.folio.dev", true},
		{"unknown_origin", "https://evil.example.com", false},
		{"extra_is_exact_match", "https://staging.folio.dev.attacker.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := corsResponse(cfg, http.MethodGet, tt.origin)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestCORS_Preflight tests that OPTIONS requests short-circuit with 204.
*/
func TestCORS_Preflight(t *testing.T) {
	cfg := stubAppConfig{extraOrigins: []string{"https://staging.folio.dev"}}

	recorder := corsResponse(cfg, http.MethodOptions, "https://staging.folio.dev")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://staging.folio.dev", recorder.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestCORS_NoOrigin tests that same-origin requests pass through untouched.
*/
func TestCORS_NoOrigin(t *testing.T) {
	recorder := corsResponse(stubAppConfig{}, http.MethodGet, "")
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}
