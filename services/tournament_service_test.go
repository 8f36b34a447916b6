package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/esports-hub/models"
)

func TestIsValidStatusTransition(t *testing.T) {
	tests := []struct {
		from, to models.TournamentStatus
		want     bool
	}{
		{models.TournamentUpcoming, models.TournamentActive, true},
		{models.TournamentActive, models.TournamentOngoing, true},
		{models.TournamentOngoing, models.TournamentCompleted, true},
		{models.TournamentInactive, models.TournamentActive, true},
		{models.TournamentOngoing, models.TournamentActive, false},
		{models.TournamentCompleted, models.TournamentOngoing, false},
		{models.TournamentInactive, models.TournamentCompleted, false},
		{models.TournamentCompleted, models.TournamentCompleted, true},
	}
	for _, tt := range tests {
		if got := isValidStatusTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func validTournamentInput(start time.Time) TournamentInput {
	return TournamentInput{
		Name:       "Major",
		Game:       "CS2",
		PriceCents: 10000,
		MaxTeams:   16,
		StartDate:  start,
		EndDate:    start.Add(48 * time.Hour),
	}
}

func TestCreateTournamentValidation(t *testing.T) {
	h := newHarness(t, PaymentConfig{})
	ctx := context.Background()
	admin := h.admin(t)
	player := h.user(t, "player@esports.test")
	start := h.clock.Add(24 * time.Hour)

	created, err := h.tournaments.Create(ctx, admin, validTournamentInput(start))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Status != models.TournamentUpcoming {
		t.Errorf("default status = %s, want UPCOMING", created.Status)
	}

	_, err = h.tournaments.Create(ctx, player, validTournamentInput(start))
	assertErrorIs(t, err, ErrAdminRequired)

	tests := []struct {
		name   string
		mutate func(*TournamentInput)
		want   error
	}{
		{"missing name", func(in *TournamentInput) { in.Name = "" }, ErrTournamentNameRequired},
		{"missing game", func(in *TournamentInput) { in.Game = " " }, ErrTournamentGameRequired},
		{"capacity", func(in *TournamentInput) { in.MaxTeams = 1 }, ErrTournamentInvalidCapacity},
		{"negative price", func(in *TournamentInput) { in.PriceCents = -1 }, ErrTournamentNegativeAmount},
		{"no dates", func(in *TournamentInput) { in.StartDate = time.Time{} }, ErrTournamentDatesRequired},
		{"end before start", func(in *TournamentInput) { in.EndDate = in.StartDate.Add(-time.Hour) }, ErrTournamentInvalidDates},
		{"bad status", func(in *TournamentInput) { in.Status = ptr(models.TournamentStatus("LIVE")) }, ErrTournamentInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validTournamentInput(start)
			tt.mutate(&in)
			_, err := h.tournaments.Create(ctx, admin, in)
			assertErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateTournament(t *testing.T) {
	h := newHarness(t, PaymentConfig{})
	ctx := context.Background()
	admin := h.admin(t)
	tour := h.tournament(t, 4, models.TournamentActive, 0)
	h.registered(t, tour, "one")
	h.registered(t, tour, "two")
	h.registered(t, tour, "three")

	in := validTournamentInput(tour.StartDate)
	in.MaxTeams = 2
	_, err := h.tournaments.Update(ctx, admin, tour.ID, in)
	assertErrorIs(t, err, ErrCapacityBelowRegistered)

	in.MaxTeams = 3
	in.Status = ptr(models.TournamentCompleted)
	_, err = h.tournaments.Update(ctx, admin, tour.ID, in)
	assertErrorIs(t, err, ErrInvalidStatusTransition)

	in.Status = ptr(models.TournamentOngoing)
	updated, err := h.tournaments.Update(ctx, admin, tour.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.MaxTeams != 3 || updated.Status != models.TournamentOngoing || updated.RegisteredTeams != 3 {
		t.Errorf("unexpected tournament %+v", updated)
	}

	_, err = h.tournaments.Update(ctx, admin, 9999, in)
	assertErrorIs(t, err, ErrTournamentNotFound)
}

func TestUpdateTournamentGameLockedByRegistrations(t *testing.T) {
	h := newHarness(t, PaymentConfig{})
	ctx := context.Background()
	admin := h.admin(t)
	tour := h.tournament(t, 4, models.TournamentActive, 0)
	owner, team := h.registered(t, tour, "locked")

	in := validTournamentInput(tour.StartDate)
	in.Game = "Dota 2"
	_, err := h.tournaments.Update(ctx, admin, tour.ID, in)
	assertErrorIs(t, err, ErrTournamentGameLocked)

	in.Game = "cs2"
	if _, err := h.tournaments.Update(ctx, admin, tour.ID, in); err != nil {
		t.Fatalf("Update with same game: %v", err)
	}

	if err := h.registrations.Withdraw(ctx, owner, tour.ID, team.ID); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	in.Game = "Dota 2"
	updated, err := h.tournaments.Update(ctx, admin, tour.ID, in)
	if err != nil {
		t.Fatalf("Update after withdraw: %v", err)
	}
	if updated.Game != "Dota 2" {
		t.Errorf("game = %q, want Dota 2", updated.Game)
	}
}

func TestAutoUpdateStatuses(t *testing.T) {
	h := newHarness(t, PaymentConfig{})
	ctx := context.Background()
	admin := h.admin(t)

	create := func(status models.TournamentStatus, start, end time.Time) *models.Tournament {
		t.Helper()
		tour, err := h.tournaments.Create(ctx, admin, TournamentInput{
			Name: "Auto", Game: "CS2", MaxTeams: 8, Status: &status, StartDate: start, EndDate: end,
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		return tour
	}

	now := h.clock
	started := create(models.TournamentActive, now.Add(-time.Hour), now.Add(time.Hour))
	finished := create(models.TournamentOngoing, now.Add(-48*time.Hour), now.Add(-time.Hour))
	skipped := create(models.TournamentUpcoming, now.Add(-72*time.Hour), now.Add(-24*time.Hour))
	future := create(models.TournamentUpcoming, now.Add(time.Hour), now.Add(2*time.Hour))
	inactive := create(models.TournamentInactive, now.Add(-time.Hour), now.Add(time.Hour))

	n, err := h.tournaments.AutoUpdateStatuses(ctx, now)
	if err != nil {
		t.Fatalf("AutoUpdateStatuses: %v", err)
	}
	if n != 3 {
		t.Errorf("updated %d tournaments, want 3", n)
	}

	want := map[int]models.TournamentStatus{
		started.ID:  models.TournamentOngoing,
		finished.ID: models.TournamentCompleted,
		skipped.ID:  models.TournamentCompleted,
		future.ID:   models.TournamentUpcoming,
		inactive.ID: models.TournamentInactive,
	}
	for id, status := range want {
		got, _ := h.tournaments.Get(ctx, id)
		if got.Status != status {
			t.Errorf("tournament %d status = %s, want %s", id, got.Status, status)
		}
	}
}

func TestListTournaments(t *testing.T) {
	h := newHarness(t, PaymentConfig{})
	ctx := context.Background()
	h.tournament(t, 8, models.TournamentActive, 0)
	h.tournament(t, 8, models.TournamentUpcoming, 0)
	h.tournament(t, 8, models.TournamentInactive, 0)

	open, total, err := h.tournaments.ListOpen(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListOpen: %v", err)
	}
	if total != 2 || len(open) != 2 {
		t.Errorf("open tournaments = %d of %d, want 2", len(open), total)
	}

	_, _, err = h.tournaments.List(ctx, models.ListTournamentsFilter{Statuses: []models.TournamentStatus{"LIVE"}})
	assertErrorIs(t, err, ErrTournamentInvalidStatus)
}

func TestDeleteTournament(t *testing.T) {
	h := newHarness(t, PaymentConfig{})
	ctx := context.Background()
	admin := h.admin(t)
	tour := h.tournament(t, 8, models.TournamentActive, 0)
	owner, team := h.registered(t, tour, "gone")

	assertErrorIs(t, h.tournaments.Delete(ctx, owner, tour.ID), ErrAdminRequired)
	if err := h.tournaments.Delete(ctx, admin, tour.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	regs, _ := h.regRepo.ListByTeam(ctx, team.ID)
	if len(regs) != 0 {
		t.Errorf("registrations survived tournament deletion: %+v", regs)
	}
	assertErrorIs(t, h.tournaments.Delete(ctx, admin, tour.ID), ErrTournamentNotFound)
}
