package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
)

type fakeStore map[string]*domain.Session

func (s fakeStore) Get(id string) (*domain.Session, error) {
	session, ok := s[id]
	if !ok {
		return nil, errors.New("session not found")
	}
	return session, nil
}

func TestAuth(t *testing.T) {
	store := fakeStore{
		"abc": {ID: "abc", User: domain.User{Email: "ana@email.com", Role: domain.RoleClient}},
	}

	var seen *domain.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetSession(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := Auth(store, logger.Nop())(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "valid session", header: "abc", wantStatus: http.StatusNoContent},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "unknown session", header: "zzz", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.header != "" {
				req.Header.Set(SessionHeader, tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				require.NotNil(t, seen)
				assert.Equal(t, "ana@email.com", seen.User.Email)
			} else {
				assert.Nil(t, seen)
				assert.JSONEq(t, `{"code":401,"message":"sesión no válida o expirada"}`, rec.Body.String())
			}
		})
	}
}

func TestGetSession_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := GetSession(req.Context())
	assert.False(t, ok)
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(2, logger.Nop())
	handler := limiter.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))

	// другой адрес считается отдельно
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"))
}

func TestRateLimiter_Unlimited(t *testing.T) {
	limiter := NewRateLimiter(0, logger.Nop())
	handler := limiter.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	limiter := newRateLimiter(1, 50*time.Millisecond, logger.Nop())
	handler := limiter.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "10.0.0.3:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call())
	assert.Equal(t, http.StatusTooManyRequests, call())
	assert.Equal(t, 1, limiter.limiters.ItemCount())

	time.Sleep(100 * time.Millisecond)
	limiter.limiters.DeleteExpired()
	assert.Equal(t, 0, limiter.limiters.ItemCount())

	// новый лимитер после простоя
	assert.Equal(t, http.StatusOK, call())
}

type observation struct {
	method string
	route  string
	status int
}

type fakeObserver struct {
	observed []observation
}

func (o *fakeObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	o.observed = append(o.observed, observation{method: method, route: route, status: status})
}

func TestMetrics_UsesRouteTemplate(t *testing.T) {
	observer := &fakeObserver{}

	r := mux.NewRouter()
	r.Use(Metrics(observer))
	r.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/bookings/42", nil))

	require.Len(t, observer.observed, 1)
	assert.Equal(t, observation{
		method: http.MethodGet,
		route:  "/api/v1/bookings/{bookingId}",
		status: http.StatusNotFound,
	}, observer.observed[0])
}
