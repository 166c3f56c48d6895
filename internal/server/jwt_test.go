package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/vendor-profiler/internal/config"
	"github.com/jonathan/vendor-profiler/internal/server/middleware"
)

func testJWTService(secret string) *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: secret, ExpirationHours: 1})
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := testJWTService("test-secret")

	token, err := service.GenerateToken("reporting-service")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "reporting-service", claims.GetCallerID())

	// The promoted jwt.Claims accessor must stay reachable so that
	// ParseWithClaims can validate the registered claims.
	subject, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "reporting-service", subject)
}

func TestJWTService_ValidateToken_Errors(t *testing.T) {
	service := testJWTService("test-secret")
	token, err := service.GenerateToken("caller")
	require.NoError(t, err)

	tests := []struct {
		name    string
		service *JWTService
		token   string
	}{
		{name: "empty token", service: service, token: ""},
		{name: "malformed token", service: service, token: "not.a.jwt"},
		{name: "wrong secret", service: testJWTService("other-secret"), token: token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.service.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	service := testJWTService("test-secret")
	token, err := service.GenerateToken("caller")
	require.NoError(t, err)

	handler := middleware.AuthMiddleware(service.AsTokenValidator())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerID, err := middleware.GetCallerID(r)
			require.NoError(t, err)
			assert.Equal(t, "caller", callerID)
			w.WriteHeader(http.StatusOK)
		}),
	)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid bearer token", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "case-insensitive scheme", header: "bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer garbage", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/analyze", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
