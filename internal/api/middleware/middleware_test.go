package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/auth"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
)

type resolverFunc func(ctx context.Context, token string) (domain.Actor, error)

func (f resolverFunc) Resolve(ctx context.Context, token string) (domain.Actor, error) {
	return f(ctx, token)
}

func TestAuth(t *testing.T) {
	resolver := resolverFunc(func(_ context.Context, token string) (domain.Actor, error) {
		switch token {
		case "good":
			return domain.Actor{UserID: 7, Role: domain.RoleUser}, nil
		case "broken":
			return domain.Actor{}, errors.New("db down")
		}
		return domain.Actor{}, auth.ErrUnauthorized
	})

	var seen domain.Actor
	handler := Auth(resolver, logger.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		require.True(t, ok)
		seen = actor
		assert.Equal(t, "good", GetToken(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		header string
		status int
	}{
		{"Bearer good", http.StatusNoContent},
		{"bearer good", http.StatusNoContent},
		{"", http.StatusUnauthorized},
		{"Basic abc", http.StatusUnauthorized},
		{"Bearer expired", http.StatusUnauthorized},
		{"Bearer broken", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, tt.status, rec.Code, tt.header)
	}
	assert.Equal(t, int64(7), seen.UserID)
}

func TestClientAddress(t *testing.T) {
	_, proxyNet, err := net.ParseCIDR("10.0.0.0/8")
	require.NoError(t, err)
	trusted := []*net.IPNet{proxyNet}

	tests := []struct {
		name       string
		trustProxy bool
		trusted    []*net.IPNet
		remoteAddr string
		forwarded  string
		realIP     string
		want       string
	}{
		{"headers ignored without trust", false, nil, "198.51.100.4:52311", "203.0.113.9", "", "198.51.100.4"},
		{"single hop takes rightmost entry", true, nil, "10.0.0.5:4000", "1.1.1.1, 203.0.113.7", "", "203.0.113.7"},
		{"trusted hops skipped right to left", true, trusted, "10.0.0.5:4000", "1.1.1.1, 203.0.113.7, 10.0.0.9", "", "203.0.113.7"},
		{"untrusted peer headers ignored", true, trusted, "198.51.100.4:52311", "203.0.113.7", "", "198.51.100.4"},
		{"garbage entry falls back to peer", true, nil, "10.0.0.5:4000", "1.1.1.1, " + strings.Repeat("x", 200), "", "10.0.0.5"},
		{"chain of trusted proxies falls back to peer", true, trusted, "10.0.0.5:4000", "10.1.1.1", "", "10.0.0.5"},
		{"real ip used without forwarded", true, nil, "10.0.0.5:4000", "", "203.0.113.8", "203.0.113.8"},
		{"invalid real ip ignored", true, nil, "10.0.0.5:4000", "", "not-an-ip", "10.0.0.5"},
		{"ipv6 peer normalised", false, nil, "[2001:DB8::1]:443", "", "", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = GetClientAddress(r.Context())
			})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			ClientAddress(tt.trustProxy, tt.trusted)(next).ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientAddress_SpoofedLeftmostEntryKeepsOneKey(t *testing.T) {
	keys := make(map[string]struct{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys[GetClientAddress(r.Context())] = struct{}{}
	})
	handler := ClientAddress(true, nil)(next)

	for _, spoof := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
		req.RemoteAddr = "10.0.0.5:4000"
		req.Header.Set("X-Forwarded-For", spoof+", 203.0.113.7")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, map[string]struct{}{"203.0.113.7": {}}, keys)
}

type observed struct {
	method, route string
	status        int
}

type recorder struct{ calls []observed }

func (r *recorder) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	r.calls = append(r.calls, observed{method, route, status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	rec := &recorder{}
	router := mux.NewRouter()
	router.Use(MetricsMiddleware(rec))
	router.HandleFunc("/api/v1/rooms/{roomId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/rooms/42", nil))

	require.Len(t, rec.calls, 1)
	assert.Equal(t, observed{http.MethodGet, "/api/v1/rooms/{roomId}", http.StatusNotFound}, rec.calls[0])
}
