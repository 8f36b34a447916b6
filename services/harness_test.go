package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Dosada05/esports-hub/models"
	"github.com/rs/zerolog"
)

type harness struct {
	clock time.Time

	store         *memStore
	users         *fakeUserRepo
	teamRepo      *fakeTeamRepo
	tournamentRep *fakeTournamentRepo
	regRepo       *fakeRegistrationRepo
	paymentRepo   *fakePaymentRepo
	inviteRepo    *fakeInviteRepo
	tx            *fakeTransactor
	events        *recordingPublisher
	uploader      *memUploader

	identity      IdentityService
	teams         TeamService
	membership    MembershipService
	tournaments   TournamentService
	registrations RegistrationService
	payments      PaymentService
	invites       InviteService
	dashboard     DashboardService

	txCounter int
}

func newHarness(t *testing.T, cfg PaymentConfig) *harness {
	t.Helper()
	h := &harness{clock: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	now := func() time.Time { return h.clock }

	h.store = newMemStore(now)
	h.users = &fakeUserRepo{s: h.store}
	h.teamRepo = &fakeTeamRepo{s: h.store}
	h.tournamentRep = &fakeTournamentRepo{s: h.store}
	h.regRepo = &fakeRegistrationRepo{s: h.store}
	h.paymentRepo = &fakePaymentRepo{s: h.store}
	h.inviteRepo = &fakeInviteRepo{s: h.store}
	h.tx = &fakeTransactor{store: h.store}
	h.events = &recordingPublisher{}
	h.uploader = newMemUploader()

	authz := NewRoleAuthorizer()
	logger := zerolog.Nop()
	if cfg.TTL == 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.PixKey == "" {
		cfg.PixKey = "pix@esports.test"
	}

	h.identity = NewIdentityService(h.users, h.regRepo, NewAdminPolicy([]string{"root@esports.test"}), authz)
	h.teams = NewTeamService(h.teamRepo, h.users, h.regRepo, h.paymentRepo, h.uploader, authz, h.events, logger)
	h.membership = NewMembershipService(h.teamRepo, h.users, h.identity, h.tx, authz, h.events)
	h.tournaments = NewTournamentService(h.tournamentRep, h.regRepo, h.tx, authz, h.events, logger)

	regs := NewRegistrationService(h.regRepo, h.tournamentRep, h.teamRepo, h.paymentRepo, h.tx, authz, h.events)
	regs.(*registrationService).now = now
	h.registrations = regs

	payments := NewPaymentService(h.paymentRepo, h.regRepo, h.tournamentRep, h.teamRepo, h.tx, authz, h.events, cfg, logger)
	payments.(*paymentService).now = now
	payments.(*paymentService).newTxID = func() (string, error) {
		h.txCounter++
		return fmt.Sprintf("TX%023d", h.txCounter), nil
	}
	h.payments = payments

	h.invites = NewInviteService(h.inviteRepo, h.teamRepo, h.users, h.tx, authz, h.events)
	h.dashboard = NewDashboardService(h.users, h.teamRepo, h.tournamentRep, h.paymentRepo, h.regRepo, authz,
		func(context.Context) (time.Duration, error) { return 3 * time.Millisecond, nil }, "gru")
	return h
}

func (h *harness) user(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := h.identity.ResolvePrincipal(context.Background(), models.Principal{Email: email, Name: email})
	if err != nil {
		t.Fatalf("ResolvePrincipal(%s): %v", email, err)
	}
	return u
}

func (h *harness) admin(t *testing.T) *models.User {
	t.Helper()
	return h.user(t, "root@esports.test")
}

func (h *harness) team(t *testing.T, owner *models.User, name, game string) *models.Team {
	t.Helper()
	team, err := h.teams.CreateTeam(context.Background(), owner, CreateTeamInput{Name: name, Game: game})
	if err != nil {
		t.Fatalf("CreateTeam(%s): %v", name, err)
	}
	return team
}

func (h *harness) tournament(t *testing.T, maxTeams int, status models.TournamentStatus, priceCents int64) *models.Tournament {
	t.Helper()
	tour, err := h.tournaments.Create(context.Background(), h.admin(t), TournamentInput{
		Name:       fmt.Sprintf("Cup %d", h.store.nextID+1),
		Game:       "CS2",
		PriceCents: priceCents,
		MaxTeams:   maxTeams,
		Status:     &status,
		StartDate:  h.clock.Add(7 * 24 * time.Hour),
		EndDate:    h.clock.Add(8 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create tournament: %v", err)
	}
	return tour
}

// registered returns an owner with a team registered for tour.
func (h *harness) registered(t *testing.T, tour *models.Tournament, name string) (*models.User, *models.Team) {
	t.Helper()
	owner := h.user(t, name+"@esports.test")
	team := h.team(t, owner, name, "CS2")
	if _, err := h.registrations.Register(context.Background(), owner, tour.ID, team.ID); err != nil {
		t.Fatalf("Register(%s): %v", name, err)
	}
	return owner, team
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected error %v, got %v", target, err)
	}
}

func ptr[T any](v T) *T {
	return &v
}
