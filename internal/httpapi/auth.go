package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fundacion-horas/horas-backend/internal/models"
	"github.com/fundacion-horas/horas-backend/internal/service"
	"github.com/golang-jwt/jwt/v5"
)

// AuthConfig holds the verification parameters for the bearer tokens issued
// by the identity provider. Token issuance is not this service's job; it only
// validates and extracts (user id, role).
type AuthConfig struct {
	Secret string
	Issuer string
}

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid bearer token")
)

// ParseToken validates an HS256 JWT and returns the actor it asserts. The
// subject is the user id; the custom "rol" claim carries the role.
func ParseToken(token string, cfg AuthConfig) (service.Actor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return service.Actor{}, errMissingToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithIssuer(cfg.Issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		return service.Actor{}, fmt.Errorf("%w: %v", errInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return service.Actor{}, errInvalidToken
	}

	sub, _ := claims["sub"].(string)
	rol, _ := claims["rol"].(string)
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return service.Actor{}, errInvalidToken
	}
	switch models.Role(rol) {
	case models.Becario, models.Administrador:
	default:
		return service.Actor{}, errInvalidToken
	}
	return service.Actor{ID: id, Rol: models.Role(rol)}, nil
}

type contextKey int

const actorKey contextKey = iota

func withActor(ctx context.Context, a service.Actor) context.Context {
	return context.WithValue(ctx, actorKey, a)
}

func actorFrom(ctx context.Context) (service.Actor, bool) {
	a, ok := ctx.Value(actorKey).(service.Actor)
	return a, ok
}

// RequireAuth rejects requests without a valid bearer token and stores the
// actor on the request context.
func RequireAuth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", errMissingToken.Error())
				return
			}
			if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
				writeError(w, http.StatusUnauthorized, "unauthorized", errInvalidToken.Error())
				return
			}
			actor, err := ParseToken(header[len("Bearer "):], cfg)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}
			next.ServeHTTP(w, r.WithContext(withActor(r.Context(), actor)))
		})
	}
}

// RequireAdmin sits behind RequireAuth on administrator-only routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorFrom(r.Context())
		if !ok || !actor.IsAdmin() {
			writeError(w, http.StatusForbidden, "permission", "administrator role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
