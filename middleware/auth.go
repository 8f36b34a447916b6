package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Dosada05/esports-hub/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
)

// Claims is the identity-provider token payload.
type Claims struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// PrincipalResolver maps verified token claims to a stored user.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, principal models.Principal) (*models.User, error)
}

// Authenticate verifies the HS256 bearer token and puts the resolved user
// on the request context. Browsers cannot set headers on websocket
// upgrades, so a "token" query parameter is accepted as well.
func Authenticate(secret string, resolver PrincipalResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context())

			tokenStr := bearerToken(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := ParseToken(secret, tokenStr)
			if err != nil {
				logger.Debug().Err(err).Msg("rejected bearer token")
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			user, err := resolver.ResolvePrincipal(r.Context(), models.Principal{
				Email: claims.Email,
				Name:  claims.Name,
				Image: claims.Picture,
			})
			if err != nil {
				logger.Warn().Err(err).Str("email", claims.Email).Msg("failed to resolve principal")
				writeError(w, http.StatusUnauthorized, "failed to identify current user")
				return
			}

			ctx := WithUser(r.Context(), user)
			l := logger.With().Int("user_id", user.ID).Logger()
			next.ServeHTTP(w, r.WithContext(l.WithContext(ctx)))
		})
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := GetUserFromContext(r.Context())
		if err != nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !user.IsAdmin() {
			writeError(w, http.StatusForbidden, "administrator role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		scheme, token, ok := strings.Cut(h, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.URL.Query().Get("token")
}

// ParseToken validates signature, algorithm and expiry. Tokens without
// an exp claim are rejected.
func ParseToken(secret, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	// jwt/v4 treats a missing exp as valid.
	if claims.ExpiresAt == nil {
		return nil, errors.New("token has no exp claim")
	}
	if claims.Email == "" {
		return nil, errors.New("token has no email claim")
	}
	return claims, nil
}

// IssueToken signs a token for email. Only the development token endpoint
// and tests issue tokens; production tokens come from the identity provider.
func IssueToken(secret string, claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	if claims.Subject == "" {
		claims.Subject = claims.Email
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
