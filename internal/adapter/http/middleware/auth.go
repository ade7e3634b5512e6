package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ledgerly/ledgerly/internal/infrastructure/auth"
	"github.com/ledgerly/ledgerly/internal/infrastructure/logging"
	"github.com/ledgerly/ledgerly/internal/infrastructure/metrics"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// FamilyContextKey is the context key for the authenticated family
	FamilyContextKey ContextKey = "family"

	// DevFamilyHeader names the family when authentication is disabled.
	DevFamilyHeader = "X-Family-ID"
)

// AuthMiddleware verifies the Bearer token, checks that its scopes
// cover the request method, and puts the family ID on the context.
// GET and HEAD need the read scope, everything else needs write.
func AuthMiddleware(jwtManager *auth.JWTManager, m *metrics.Metrics) func(http.Handler) http.Handler {
	authFailure := func(reason string) {
		if m != nil {
			m.AuthFailures.WithLabelValues(reason).Inc()
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				authFailure("missing_header")
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				authFailure("malformed_header")
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				authFailure("invalid_token")
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			scope := auth.ScopeWrite
			if r.Method == http.MethodGet || r.Method == http.MethodHead {
				scope = auth.ScopeRead
			}

			if !claims.HasScope(scope) {
				authFailure("insufficient_scope")
				http.Error(w, "insufficient scope", http.StatusForbidden)
				return
			}

			ctx := withFamilyID(r.Context(), claims.FamilyID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// DevFamilyMiddleware resolves the family from a header instead of a
// token. Used only when authentication is disabled for local work.
func DevFamilyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		familyID := r.Header.Get(DevFamilyHeader)
		if familyID == "" {
			http.Error(w, "missing "+DevFamilyHeader+" header", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(withFamilyID(r.Context(), familyID)))
	})
}

func withFamilyID(ctx context.Context, familyID string) context.Context {
	ctx = context.WithValue(ctx, FamilyContextKey, familyID)
	// Mirror onto the logging key so request logs carry the family.
	return context.WithValue(ctx, logging.FamilyIDKey, familyID)
}

// FamilyFromContext extracts the authenticated family ID from context
func FamilyFromContext(ctx context.Context) (string, bool) {
	familyID, ok := ctx.Value(FamilyContextKey).(string)
	return familyID, ok && familyID != ""
}
