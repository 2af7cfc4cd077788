package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	var gotUserID string
	h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserIDHeader, "guest@example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "guest@example.com", gotUserID)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserIDHeader, "   ")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type recordedRequest struct {
	method, path string
	status       int
}

type fakeHTTPRecorder struct{ requests []recordedRequest }

func (f *fakeHTTPRecorder) RecordHTTPRequest(method, path string, status int, _ time.Duration) {
	f.requests = append(f.requests, recordedRequest{method: method, path: path, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	recorder := &fakeHTTPRecorder{}

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(recorder))
	r.HandleFunc("/api/v1/bookings/{bookingId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/rooms/{roomId}/bookings", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}).Methods(http.MethodGet)

	for _, path := range []string{"/api/v1/bookings/abc", "/api/v1/rooms/room-101/bookings"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	require.Len(t, recorder.requests, 2)
	assert.Equal(t, recordedRequest{http.MethodGet, "/api/v1/bookings/{bookingId}", http.StatusNotFound}, recorder.requests[0])
	assert.Equal(t, recordedRequest{http.MethodGet, "/api/v1/rooms/{roomId}/bookings", http.StatusOK}, recorder.requests[1])
}

func TestRateLimit(t *testing.T) {
	limiter := NewClientRateLimiter(1, 2)
	now := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	h := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(userID string) int {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set(UserIDHeader, userID)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusCreated, send("alice"))
	assert.Equal(t, http.StatusCreated, send("alice"))
	assert.Equal(t, http.StatusTooManyRequests, send("alice"))
	// у другого клиента свой bucket
	assert.Equal(t, http.StatusCreated, send("bob"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusCreated, send("alice"))
}

func TestClientRateLimiter_Cleanup(t *testing.T) {
	limiter := NewClientRateLimiter(1, 1)
	now := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("ip:10.0.0.1")
	now = now.Add(idleTTL / 2)
	limiter.Allow("ip:10.0.0.2")

	now = now.Add(idleTTL/2 + time.Second)
	limiter.Cleanup()

	assert.Len(t, limiter.visitors, 1)
	assert.Contains(t, limiter.visitors, "ip:10.0.0.2")
}
