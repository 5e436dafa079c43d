package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"amalkitchen-be/internal/identity"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func sessionFor(t *testing.T, u identity.User) string {
	t.Helper()
	token, err := identity.GenerateSessionToken(u)
	require.NoError(t, err)
	return token
}

func TestAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("Valid token attaches user", func(t *testing.T) {
		var got *identity.User
		handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = CurrentUser(r.Context())
		}))

		r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
		r.AddCookie(&http.Cookie{
			Name:  "access_token",
			Value: sessionFor(t, identity.User{ID: 7, Email: "fatima@example.com", Role: identity.RoleManager, Branch: "Durban"}),
		})
		handler.ServeHTTP(httptest.NewRecorder(), r)

		require.NotNil(t, got)
		assert.Equal(t, uint(7), got.ID)
		assert.Equal(t, identity.RoleManager, got.Role)
		assert.Equal(t, "Durban", got.Branch)
	})

	t.Run("Anonymous passes through", func(t *testing.T) {
		handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := CurrentUser(r.Context())
			assert.False(t, ok)
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})

	t.Run("Garbage token treated as anonymous", func(t *testing.T) {
		handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, ok := CurrentUser(r.Context())
			assert.False(t, ok)
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer not-a-jwt")
		handler.ServeHTTP(httptest.NewRecorder(), r)
	})
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	serve := func(u *identity.User) *httptest.ResponseRecorder {
		handler := Auth(RequireRole(identity.RoleManager)(okHandler()))
		r := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
		if u != nil {
			r.AddCookie(&http.Cookie{Name: "access_token", Value: sessionFor(t, *u)})
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w
	}

	t.Run("Anonymous rejected", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(nil).Code)
	})

	t.Run("Customer forbidden", func(t *testing.T) {
		w := serve(&identity.User{ID: 1, Role: identity.RoleCustomer})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Manager allowed", func(t *testing.T) {
		w := serve(&identity.User{ID: 2, Role: identity.RoleManager, Branch: "Durban"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Admin always allowed", func(t *testing.T) {
		w := serve(&identity.User{ID: 3, Role: identity.RoleAdmin})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("Strict tier on checkout", func(t *testing.T) {
		handler := RateLimit(okHandler())

		var last int
		for i := 0; i < burstStrict+1; i++ {
			r := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
			r.RemoteAddr = "10.1.2.3:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			last = w.Code
		}
		assert.Equal(t, http.StatusTooManyRequests, last)
	})

	t.Run("General tier reads survive the strict burst", func(t *testing.T) {
		handler := RateLimit(okHandler())

		for i := 0; i < burstStrict+1; i++ {
			r := httptest.NewRequest(http.MethodGet, "/api/products", nil)
			r.RemoteAddr = "10.9.8.7:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			assert.Equal(t, http.StatusOK, w.Code, fmt.Sprintf("request %d", i))
		}
	})

	t.Run("Separate visitors have separate buckets", func(t *testing.T) {
		handler := RateLimit(okHandler())

		for i := 0; i < burstStrict; i++ {
			r := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
			r.RemoteAddr = "10.0.0.1:1234"
			handler.ServeHTTP(httptest.NewRecorder(), r)
		}

		r := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
		r.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMetricsPassthrough(t *testing.T) {
	handler := Metrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/orders", nil))
	assert.Equal(t, http.StatusCreated, w.Code)
}
