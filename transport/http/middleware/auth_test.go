package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestay/config"
	"homestay/infras/jwt"
	otelMocks "homestay/infras/otel/mocks"
	"homestay/permissions"
	"homestay/shared/constant"
	"homestay/shared/timezone"
	"homestay/transport/http/middleware"
)

var now = time.Date(2025, 1, 9, 10, 0, 0, 0, time.UTC)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "homestay"
	cfg.App.APIKey = "internal-key"
	cfg.JWT.AccessSecret = "access-secret"

	return cfg
}

// newRouter mounts an echo handler that reports the caller identity behind the full auth stack.
func newRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()

	perms := permissions.Get()
	require.NotNil(t, perms)

	mw := middleware.NewAuthRoleMiddleware(jwt.New(cfg, timezone.NewFixed(now)), otelMocks.NewOtel(), perms, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)
		w.Header().Set("X-User", userID)
		w.Header().Set("X-Role", role)
		w.WriteHeader(http.StatusOK)
	}

	r := chi.NewRouter()
	r.Use(mw.APIKey, mw.Auth, mw.RBAC)
	r.Route("/v1", func(r chi.Router) {
		r.Route("/bookings", func(r chi.Router) {
			r.Get("/", echo)
			r.Get("/availability", echo)
			r.Post("/{id}/approve", echo)
			r.Post("/{id}/cancel", echo)
		})
	})

	return r
}

func issue(t *testing.T, cfg *config.Config, userID, role string) string {
	t.Helper()

	return sign(t, cfg, userID, role, jwt.AccessToken)
}

func sign(t *testing.T, cfg *config.Config, userID, role string, typ jwt.TokenType) string {
	t.Helper()

	claims := jwt.Claims{
		UserID: userID,
		Email:  userID + "@example.com",
		Role:   role,
		Type:   typ,
		RegisteredClaims: gojwt.RegisteredClaims{
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(15 * time.Minute)),
		},
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.AccessSecret))
	require.NoError(t, err)

	return token
}

func TestAuthRole(t *testing.T) {
	cfg := testConfig()
	router := newRouter(t, cfg)

	tests := []struct {
		name     string
		method   string
		path     string
		header   map[string]string
		wantCode int
		wantUser string
		wantRole string
	}{
		{
			name:     "skip endpoint is anonymous",
			method:   http.MethodGet,
			path:     "/v1/bookings/availability",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing header",
			method:   http.MethodPost,
			path:     "/v1/bookings/b-1/cancel",
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "malformed header",
			method:   http.MethodPost,
			path:     "/v1/bookings/b-1/cancel",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "garbage token",
			method:   http.MethodPost,
			path:     "/v1/bookings/b-1/cancel",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Bearer not-a-jwt"},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "user may cancel",
			method:   http.MethodPost,
			path:     "/v1/bookings/b-1/cancel",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Bearer " + issue(t, cfg, "u-1", constant.RoleUser)},
			wantCode: http.StatusOK,
			wantUser: "u-1",
			wantRole: constant.RoleUser,
		},
		{
			name:     "user may not approve",
			method:   http.MethodPost,
			path:     "/v1/bookings/b-1/approve",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Bearer " + issue(t, cfg, "u-1", constant.RoleUser)},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "staff may approve",
			method:   http.MethodPost,
			path:     "/v1/bookings/b-1/approve",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Bearer " + issue(t, cfg, "s-1", constant.RoleStaff)},
			wantCode: http.StatusOK,
			wantUser: "s-1",
			wantRole: constant.RoleStaff,
		},
		{
			name:     "user may not list all bookings",
			method:   http.MethodGet,
			path:     "/v1/bookings/",
			header:   map[string]string{constant.RequestHeaderAuthorization: "Bearer " + issue(t, cfg, "u-1", constant.RoleUser)},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "api key acts as system",
			method:   http.MethodGet,
			path:     "/v1/bookings/",
			header:   map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
			wantUser: constant.RoleSystem,
			wantRole: constant.RoleSystem,
		},
		{
			name:     "wrong api key",
			method:   http.MethodGet,
			path:     "/v1/bookings/",
			header:   map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "api key prefix",
			method:   http.MethodGet,
			path:     "/v1/bookings/",
			header:   map[string]string{constant.RequestHeaderAPIKey: "internal"},
			wantCode: http.StatusForbidden,
		},
		{
			name:     "api key with trailing bytes",
			method:   http.MethodGet,
			path:     "/v1/bookings/",
			header:   map[string]string{constant.RequestHeaderAPIKey: "internal-key2"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusOK {
				assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
				assert.Equal(t, tt.wantRole, rec.Header().Get("X-Role"))
			}
		})
	}
}

func TestAuth_RefreshTokenRejected(t *testing.T) {
	cfg := testConfig()
	router := newRouter(t, cfg)

	token := sign(t, cfg, "u-1", constant.RoleUser, jwt.RefreshToken)

	req := httptest.NewRequest(http.MethodPost, "/v1/bookings/b-1/cancel", nil)
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
