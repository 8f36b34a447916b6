package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/esports-hub/handlers"
	"github.com/Dosada05/esports-hub/middleware"
	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/rs/zerolog"
)

const testSecret = "routes-secret"

// policyResolver assigns roles the way the identity service does: from the
// admin email list only.
type policyResolver struct {
	policy services.AdminPolicy
}

func (r policyResolver) ResolvePrincipal(_ context.Context, p models.Principal) (*models.User, error) {
	return &models.User{ID: 1, Email: p.Email, Name: p.Name, Role: r.policy.RoleFor(p.Email)}, nil
}

type stubTeams struct {
	services.TeamService
}

func (stubTeams) ForceDeleteTeam(context.Context, *models.User, int) error {
	return nil
}

func newTestRouter(t *testing.T, opts Options) http.Handler {
	t.Helper()
	opts.JWTSecret = testSecret
	router := chi.NewRouter()
	h := Handlers{
		Auth:       handlers.NewAuthHandler(testSecret),
		User:       handlers.NewUserHandler(nil, nil, nil),
		Team:       handlers.NewTeamHandler(nil, nil),
		Invite:     handlers.NewInviteHandler(nil),
		Tournament: handlers.NewTournamentHandler(nil, nil),
		Payment:    handlers.NewPaymentHandler(nil),
		Admin:      handlers.NewAdminHandler(nil, stubTeams{}, nil),
		Dashboard:  handlers.NewDashboardHandler(nil),
		WebSocket:  handlers.NewWebSocketHandler(nil, nil, nil, nil),
	}
	resolver := policyResolver{policy: services.NewAdminPolicy([]string{"root@esports.test"})}
	SetupRoutes(router, h, resolver, opts, zerolog.Nop())
	return router
}

func bearer(t *testing.T, email string) string {
	t.Helper()
	token, err := middleware.IssueToken(testSecret, middleware.Claims{Email: email}, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	return "Bearer " + token
}

func serve(router http.Handler, method, target, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAdminRoutesRequireAdminEmail(t *testing.T) {
	router := newTestRouter(t, Options{})

	// A role claim in the token carries no weight.
	claimed := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "player@esports.test",
		"role":  "ADMIN",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	claimedAdmin, err := claimed.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}

	tests := []struct {
		name   string
		method string
		target string
		auth   string
		want   int
	}{
		{"anonymous", http.MethodGet, "/admin/users", "", http.StatusUnauthorized},
		{"player", http.MethodGet, "/admin/users", bearer(t, "player@esports.test"), http.StatusForbidden},
		{"player stats", http.MethodGet, "/admin/dashboard/stats", bearer(t, "player@esports.test"), http.StatusForbidden},
		{"player force delete", http.MethodDelete, "/admin/teams/4/force", bearer(t, "player@esports.test"), http.StatusForbidden},
		{"role claim", http.MethodDelete, "/admin/teams/4/force", "Bearer " + claimedAdmin, http.StatusForbidden},
		{"admin force delete", http.MethodDelete, "/admin/teams/4/force", bearer(t, "Root@esports.test"), http.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, tt.method, tt.target, tt.auth, "")
			if rec.Code != tt.want {
				t.Errorf("%s %s: status = %d, want %d", tt.method, tt.target, rec.Code, tt.want)
			}
		})
	}
}

func TestDevTokenMountedOnlyWhenEnabled(t *testing.T) {
	body := `{"email":"dev@esports.test"}`

	rec := serve(newTestRouter(t, Options{}), http.MethodPost, "/dev/token", "", body)
	if rec.Code != http.StatusNotFound {
		t.Errorf("default options: status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	rec = serve(newTestRouter(t, Options{DevTokens: true}), http.MethodPost, "/dev/token", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("dev tokens enabled: status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"token"`) {
		t.Errorf("response %s carries no token", rec.Body.String())
	}
}

func TestWebSocketRequiresAuthentication(t *testing.T) {
	router := newTestRouter(t, Options{})

	for _, target := range []string{"/ws", "/ws?room=admin", "/ws?token=garbage"} {
		rec := serve(router, http.MethodGet, target, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s: status = %d, want %d", target, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestUnknownRouteIsJSON(t *testing.T) {
	rec := serve(newTestRouter(t, Options{}), http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
}
