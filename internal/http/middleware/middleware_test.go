package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rogerio-castellano/inventory-console/internal/auth"
	rl "github.com/rogerio-castellano/inventory-console/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-console/internal/models"
	"github.com/rogerio-castellano/inventory-console/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	auth.Configure("middleware-secret", time.Minute)
	token, err := auth.GenerateToken(models.User{ID: 3, Username: "staff", Role: models.RoleStaff, Permissions: []string{models.PermissionRead}})
	require.NoError(t, err)

	var seen auth.Principal
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = auth.PrincipalFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(h, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, seen.UserID)
	assert.Equal(t, "staff", seen.Username)

	w = serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing or invalid token")

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token+"x")
	w = serve(h, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestRequirePermission(t *testing.T) {
	h := RequirePermission(models.PermissionWrite)(okHandler)

	withPrincipal := func(p auth.Principal) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		return req.WithContext(auth.WithPrincipal(req.Context(), p))
	}

	assert.Equal(t, http.StatusOK, serve(h, withPrincipal(auth.Principal{Role: models.RoleManager, Permissions: []string{"read", "write"}})).Code)
	assert.Equal(t, http.StatusOK, serve(h, withPrincipal(auth.Principal{Role: models.RoleAdmin})).Code)
	assert.Equal(t, http.StatusForbidden, serve(h, withPrincipal(auth.Principal{Role: models.RoleStaff, Permissions: []string{"read"}})).Code)
	assert.Equal(t, http.StatusForbidden, serve(h, httptest.NewRequest(http.MethodPost, "/", nil)).Code)
}

func TestRateLimit(t *testing.T) {
	h := RateLimit(rl.New(0.001, 2))(okHandler)
	before := testutil.ToFloat64(telemetry.RateLimited)

	request := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		return serve(h, req).Code
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, request("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1:5002"), "ports of one host share a bucket")
	assert.Equal(t, http.StatusOK, request("10.0.0.2:5000"))
	assert.Equal(t, before+1, testutil.ToFloat64(telemetry.RateLimited))
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/widgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	counter := telemetry.HTTPRequests.WithLabelValues(http.MethodGet, "/widgets/{id}", "202")
	before := testutil.ToFloat64(counter)

	serve(r, httptest.NewRequest(http.MethodGet, "/widgets/1", nil))
	serve(r, httptest.NewRequest(http.MethodGet, "/widgets/2", nil))

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestLatency(t *testing.T) {
	t.Run("delays the response", func(t *testing.T) {
		start := time.Now()
		w := serve(Latency(30*time.Millisecond)(okHandler), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	})

	t.Run("gives up when the client leaves", func(t *testing.T) {
		called := false
		h := Latency(time.Minute)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		serve(h, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
		assert.False(t, called)
	})

	t.Run("zero is a pass through", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(Latency(0)(okHandler), httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	})
}
