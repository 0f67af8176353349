package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fundacion-horas/horas-backend/internal/models"
	"github.com/fundacion-horas/horas-backend/internal/service"
)

var testAuth = AuthConfig{Secret: "test-secret", Issuer: "fundacion-horas"}

func signToken(t *testing.T, cfg AuthConfig, userID int64, rol string, opts ...func(jwt.MapClaims)) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"rol": rol,
		"iss": cfg.Issuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	for _, o := range opts {
		o(claims)
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestParseToken(t *testing.T) {
	tok := signToken(t, testAuth, 42, "administrador")
	actor, err := ParseToken(tok, testAuth)
	if err != nil {
		t.Fatal(err)
	}
	if actor.ID != 42 || actor.Rol != models.Administrador {
		t.Fatalf("actor = %+v", actor)
	}
	if !actor.IsAdmin() {
		t.Fatal("administrador token should yield an admin actor")
	}
}

func TestParseToken_Rejections(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"garbage":      "not.a.jwt",
		"wrong secret": signToken(t, AuthConfig{Secret: "other", Issuer: testAuth.Issuer}, 1, "becario"),
		"wrong issuer": signToken(t, AuthConfig{Secret: testAuth.Secret, Issuer: "someone-else"}, 1, "becario"),
		"bad role":     signToken(t, testAuth, 1, "superuser"),
		"zero subject": signToken(t, testAuth, 0, "becario"),
		"expired": signToken(t, testAuth, 1, "becario", func(c jwt.MapClaims) {
			c["exp"] = time.Now().Add(-time.Hour).Unix()
		}),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseToken(tok, testAuth); err == nil {
				t.Fatal("token should be rejected")
			}
		})
	}
}

func TestRequireAuthMiddleware(t *testing.T) {
	var seen service.Actor
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = actorFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequireAuth(testAuth)(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no header: status %d, want 401", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/records", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testAuth, 9, "becario"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("valid token: status %d, want 204", rec.Code)
	}
	if seen.ID != 9 || seen.Rol != models.Becario {
		t.Fatalf("actor on context = %+v", seen)
	}
}

func TestRequireAdminMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequireAuth(testAuth)(RequireAdmin(inner))

	req := httptest.NewRequest(http.MethodGet, "/api/records/pendientes", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testAuth, 9, "becario"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("intern on admin route: status %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/records/pendientes", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testAuth, 1, "administrador"))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("admin on admin route: status %d, want 204", rec.Code)
	}
}
