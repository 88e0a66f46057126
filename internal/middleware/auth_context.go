package middleware

import (
	"context"
	"net/http"
	"strings"

	"pet-registry/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// AuthContext:
// - Si viene Bearer token y hay verifier => intenta Verify() y setea claims.
// - En modo dev además acepta X-Debug-User-ID / X-Debug-User-Role.
// - Si no hay claims, el request sigue igual; los handlers deciden si exigen auth.
func AuthContext(verifier auth.TokenVerifier, devMode bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier != nil {
				if token := bearerToken(r.Header.Get("Authorization")); token != "" {
					claims, err := verifier.Verify(r.Context(), token)
					if err == nil {
						ctx := context.WithValue(r.Context(), claimsKey, claims)
						next.ServeHTTP(w, r.WithContext(ctx))
						return
					}
					// Token inválido: no cortamos aquí. El handler decide 401/403.
				}
			}

			if devMode {
				if uid := strings.TrimSpace(r.Header.Get("X-Debug-User-ID")); uid != "" {
					role := strings.TrimSpace(r.Header.Get("X-Debug-User-Role"))
					if role == "" {
						role = auth.RoleUser
					}
					claims := auth.Claims{UserID: uid, Role: role}
					ctx := context.WithValue(r.Context(), claimsKey, claims)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
