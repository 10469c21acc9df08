package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_LogsRequestFields(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)

	h := NewZapLogger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req = req.WithContext(context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id"))
	h.ServeHTTP(httptest.NewRecorder(), req)

	logs := observed.FilterMessage("Request").All()
	require.Len(t, logs, 1)
	fields := logs[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/healthz", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.Equal(t, "test-req-id", fields["request_id"])
	assert.Contains(t, fields, "duration_ms")
}

func TestRequireBearerToken_SetsSubject(t *testing.T) {
	secret := []byte("secret")
	token, err := GenerateToken(secret, "coordinator-7", time.Minute)
	require.NoError(t, err)

	var subject string
	h := RequireBearerToken(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject, _ = SubjectFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "coordinator-7", subject)
}

func TestValidateToken(t *testing.T) {
	secret := []byte("secret")

	expired, err := GenerateToken(secret, "x", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(secret, expired)
	assert.EqualError(t, err, "token has expired")

	_, err = ValidateToken(secret, "not.a.token")
	assert.EqualError(t, err, "invalid token")

	valid, err := GenerateToken(secret, "x", time.Minute)
	require.NoError(t, err)
	claims, err := ValidateToken(secret, valid)
	require.NoError(t, err)
	assert.Equal(t, "x", claims.Subject)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(context.DeadlineExceeded))
}
