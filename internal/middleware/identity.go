package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dukerupert/storefront/internal/cookie"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccountIDContextKey contextKey = "account_id"
	SessionIDContextKey contextKey = "session_id"
	RolesContextKey     contextKey = "roles"
)

// RoleAdmin grants access to store-wide reporting.
const RoleAdmin = "admin"

// AccountClaims are the claims issued by the auth service. The subject
// carries the account id.
type AccountClaims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

// Principal is the verified caller behind a bearer token.
type Principal struct {
	AccountID uuid.UUID
	Roles     []string
}

// TokenVerifier validates bearer tokens and extracts the account id.
type TokenVerifier struct {
	secret []byte
	issuer string
	leeway time.Duration
}

// NewTokenVerifier returns a verifier for HS256 tokens signed with secret.
// An empty issuer skips the iss check.
func NewTokenVerifier(secret, issuer string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer, leeway: 30 * time.Second}
}

// Verify parses token and returns the account it was issued for.
func (v *TokenVerifier) Verify(token string) (Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &AccountClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Principal{}, fmt.Errorf("failed to parse token: %w", err)
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil || accountID == uuid.Nil {
		return Principal{}, errors.New("token subject is not an account id")
	}
	return Principal{AccountID: accountID, Roles: claims.Roles}, nil
}

// Sign issues a token for accountID. The auth service owns issuance in
// production; this is used by tests and local tooling.
func (v *TokenVerifier) Sign(accountID uuid.UUID, ttl time.Duration, roles ...string) (string, error) {
	now := time.Now()
	claims := AccountClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Roles: roles,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// Identity resolves who is calling. A bearer token, when present, must
// verify or the request is refused. The anonymous session cookie is
// read, and issued when the caller has neither a session nor an account.
func Identity(verifier *TokenVerifier, cookies *cookie.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if token, ok := bearerToken(r); ok {
				principal, err := verifier.Verify(token)
				if err != nil {
					GetLogger(ctx).Debug("rejected bearer token", "error", err)
					respondUnauthorized(w, r, "Invalid or expired token")
					return
				}
				ctx = context.WithValue(ctx, AccountIDContextKey, principal.AccountID)
				if len(principal.Roles) > 0 {
					ctx = context.WithValue(ctx, RolesContextKey, principal.Roles)
				}
			}

			sessionID := cookies.Session(r)
			if sessionID == "" && ctx.Value(AccountIDContextKey) == nil {
				id, err := cookie.GenerateSessionID()
				if err != nil {
					respondInternalError(w, r, err)
					return
				}
				sessionID = id
				cookies.SetSession(w, sessionID)
			}
			if sessionID != "" {
				ctx = context.WithValue(ctx, SessionIDContextKey, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAccount refuses requests without an authenticated account.
func RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := AccountIDFromContext(r.Context()); !ok {
			respondUnauthorized(w, r, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole refuses accounts whose token does not carry role. Run it
// behind RequireAccount.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !HasRole(r.Context(), role) {
				respondForbidden(w, r, "Access denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// HasRole reports whether the authenticated account holds role.
func HasRole(ctx context.Context, role string) bool {
	roles, _ := ctx.Value(RolesContextKey).([]string)
	return slices.Contains(roles, role)
}

// AccountIDFromContext returns the authenticated account, if any.
func AccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(AccountIDContextKey).(uuid.UUID)
	return id, ok && id != uuid.Nil
}

// SessionIDFromContext returns the anonymous cart session, or "".
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(SessionIDContextKey).(string)
	return id
}

// AccountLabel returns the account id as a string for error tracking.
func AccountLabel(ctx context.Context) string {
	if id, ok := AccountIDFromContext(ctx); ok {
		return id.String()
	}
	return ""
}

// WithIdentity returns ctx carrying the given identity. Handler tests use
// it instead of running the middleware.
func WithIdentity(ctx context.Context, accountID uuid.UUID, sessionID string, roles ...string) context.Context {
	if accountID != uuid.Nil {
		ctx = context.WithValue(ctx, AccountIDContextKey, accountID)
		if len(roles) > 0 {
			ctx = context.WithValue(ctx, RolesContextKey, roles)
		}
	}
	if sessionID != "" {
		ctx = context.WithValue(ctx, SessionIDContextKey, sessionID)
	}
	return ctx
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return strings.TrimSpace(token), true
}
