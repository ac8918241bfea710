package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innovatlas/country-innovation/pkg/errors"
)

type stubChecker struct {
	err error
}

func (s *stubChecker) Ready(context.Context) error { return s.err }

func healthRouter(checker ReadinessChecker) *gin.Engine {
	r := gin.New()
	h := NewHealthHandler(checker)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	return r
}

func TestHealthz(t *testing.T) {
	r := healthRouter(&stubChecker{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestReadyzReady(t *testing.T) {
	r := healthRouter(&stubChecker{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
}

func TestReadyzUnavailable(t *testing.T) {
	r := healthRouter(&stubChecker{err: errors.DataUnavailable("object store unreachable")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}
