package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukerupert/storefront/internal/cookie"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-bytes-long!!"

type seen struct {
	accountID uuid.UUID
	hasAcct   bool
	sessionID string
}

func identityHandler(t *testing.T, cookies *cookie.Config, got *seen) http.Handler {
	t.Helper()
	verifier := NewTokenVerifier(testSecret, "storefront-auth")
	return Identity(verifier, cookies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.accountID, got.hasAcct = AccountIDFromContext(r.Context())
		got.sessionID = SessionIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))
}

func TestIdentity_AnonymousIssuesSession(t *testing.T) {
	cookies := cookie.NewConfig("sid", "", false)
	var got seen
	h := identityHandler(t, cookies, &got)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, got.hasAcct)
	require.NotEmpty(t, got.sessionID)

	set := rec.Result().Cookies()
	require.Len(t, set, 1)
	assert.Equal(t, got.sessionID, set[0].Value)
}

func TestIdentity_ExistingSessionIsReused(t *testing.T) {
	cookies := cookie.NewConfig("sid", "", false)
	var got seen
	h := identityHandler(t, cookies, &got)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "existing"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "existing", got.sessionID)
	assert.Empty(t, rec.Result().Cookies())
}

func TestIdentity_BearerToken(t *testing.T) {
	cookies := cookie.NewConfig("sid", "", false)
	verifier := NewTokenVerifier(testSecret, "storefront-auth")
	accountID := uuid.New()

	t.Run("valid token sets account and skips session issue", func(t *testing.T) {
		var got seen
		h := identityHandler(t, cookies, &got)
		token, err := verifier.Sign(accountID, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, got.hasAcct)
		assert.Equal(t, accountID, got.accountID)
		assert.Empty(t, got.sessionID)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("account keeps the anonymous session for merge", func(t *testing.T) {
		var got seen
		h := identityHandler(t, cookies, &got)
		token, err := verifier.Sign(accountID, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/cart/merge", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "anon"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, accountID, got.accountID)
		assert.Equal(t, "anon", got.sessionID)
	})

	tests := []struct {
		name   string
		header func(t *testing.T) string
	}{
		{
			name: "expired",
			header: func(t *testing.T) string {
				token, err := verifier.Sign(accountID, -time.Hour)
				require.NoError(t, err)
				return "Bearer " + token
			},
		},
		{
			name: "wrong secret",
			header: func(t *testing.T) string {
				token, err := NewTokenVerifier("another-secret-another-secret-xx", "storefront-auth").Sign(accountID, time.Hour)
				require.NoError(t, err)
				return "Bearer " + token
			},
		},
		{
			name: "wrong issuer",
			header: func(t *testing.T) string {
				token, err := NewTokenVerifier(testSecret, "someone-else").Sign(accountID, time.Hour)
				require.NoError(t, err)
				return "Bearer " + token
			},
		},
		{
			name: "subject is not an account id",
			header: func(t *testing.T) string {
				claims := jwt.RegisteredClaims{
					Subject:   "user:42",
					Issuer:    "storefront-auth",
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				}
				token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
				require.NoError(t, err)
				return "Bearer " + token
			},
		},
		{
			name:   "not a bearer scheme",
			header: func(*testing.T) string { return "Basic Zm9vOmJhcg==" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got seen
			h := identityHandler(t, cookies, &got)

			req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
			req.Header.Set("Authorization", tt.header(t))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "unauthorized", body.Error.Code)
		})
	}
}

func TestRequireAccount(t *testing.T) {
	h := RequireAccount(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/checkout", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	req = req.WithContext(WithIdentity(req.Context(), uuid.New(), ""))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	accountID := uuid.New()

	for _, tc := range []struct {
		name  string
		roles []string
		want  int
	}{
		{"shopper", nil, http.StatusForbidden},
		{"other role", []string{"support"}, http.StatusForbidden},
		{"admin", []string{"support", RoleAdmin}, http.StatusNoContent},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/analytics/abandoned-carts", nil)
			req = req.WithContext(WithIdentity(req.Context(), accountID, "", tc.roles...))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestIdentity_RolesFromToken(t *testing.T) {
	cookies := cookie.NewConfig("sid", "", false)
	verifier := NewTokenVerifier(testSecret, "storefront-auth")
	token, err := verifier.Sign(uuid.New(), time.Hour, RoleAdmin)
	require.NoError(t, err)

	var admin bool
	h := Identity(verifier, cookies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin = HasRole(r.Context(), RoleAdmin)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/analytics/abandoned-carts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, admin)
}
