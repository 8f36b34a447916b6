package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/notify"
)

func TestReserveSlotIsIdempotentWhilePending(t *testing.T) {
	h := newHarness(t, PaymentConfig{})
	ctx := context.Background()
	tour := h.tournament(t, 8, models.TournamentActive, 5000)
	owner, team := h.registered(t, tour, "reserve")

	first, err := h.payments.ReserveSlot(ctx, owner, team.ID, &tour.ID)
	if err != nil {
		t.Fatalf("ReserveSlot: %v", err)
	}
	if first.Status != models.PaymentPending || first.AmountCents != 5000 {
		t.Fatalf("unexpected payment %+v", first)
	}
	if !strings.Contains(first.PixCode, first.Reference) || !strings.HasPrefix(first.PixCode, "000201") {
		t.Errorf("pix code %q does not carry reference %q", first.PixCode, first.Reference)
	}
	if !first.ExpiresAt.Equal(h.clock.Add(30 * time.Minute)) {
		t.Errorf("expires at %s", first.ExpiresAt)
	}

	second, err := h.payments.ReserveSlot(ctx, owner, team.ID, nil)
	if err != nil {
		t.Fatalf("ReserveSlot: %v", err)
	}
	if second.ID != first.ID || second.Reference != first.Reference {
		t.Errorf("expected the same pending payment, got %d and %d", first.ID, second.ID)
	}

	created := 0
	for _, typ := range h.events.types() {
		if typ == notify.EventPaymentCreated {
			created++
		}
	}
	if created != 1 {
		t.Errorf("payment.created published %d times, want 1", created)
	}
}

func TestReserveSlotAfterExpiryIssuesNewPayment(t *testing.T) {
	h := newHarness(t, PaymentConfig{TTL: 10 * time.Minute})
	ctx := context.Background()
	tour := h.tournament(t, 8, models.TournamentActive, 5000)
	owner, team := h.registered(t, tour, "slow")

	first, err := h.payments.ReserveSlot(ctx, owner, team.ID, nil)
	if err != nil {
		t.Fatalf("ReserveSlot: %v", err)
	}
	h.clock = h.clock.Add(11 * time.Minute)

	second, err := h.payments.ReserveSlot(ctx, owner, team.ID, nil)
	if err != nil {
		t.Fatalf("ReserveSlot: %v", err)
	}
	if second.ID == first.ID {
		t.Fatal("expected a fresh payment after expiry")
	}
	old, _ := h.paymentRepo.GetByID(ctx, first.ID)
	if old.Status != models.PaymentExpired {
		t.Errorf("old payment status = %s, want EXPIRED", old.Status)
	}
}

func TestReserveSlotRules(t *testing.T) {
	h := newHarness(t, PaymentConfig{})
	ctx := context.Background()
	admin := h.admin(t)
	tour := h.tournament(t, 8, models.TournamentActive, 5000)
	owner, team := h.registered(t, tour, "rules")
	lonely := h.team(t, owner, "unregistered", "CS2")
	stranger := h.user(t, "stranger@esports.test")

	_, err := h.payments.ReserveSlot(ctx, stranger, team.ID, nil)
	assertErrorIs(t, err, ErrOwnerActionForbidden)

	_, err = h.payments.ReserveSlot(ctx, owner, lonely.ID, nil)
	assertErrorIs(t, err, ErrNoActiveRegistration)

	p, err := h.payments.ReserveSlot(ctx, owner, team.ID, nil)
	if err != nil {
		t.Fatalf("ReserveSlot: %v", err)
	}
	if _, err := h.payments.Confirm(ctx, admin, p.ID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	_, err = h.payments.ReserveSlot(ctx, owner, team.ID, nil)
	assertErrorIs(t, err, ErrAlreadyPaid)

	other, otherTeam := h.registered(t, tour, "rejected")
	if _, err := h.registrations.Reject(ctx, admin, tour.ID, otherTeam.ID); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	_, err = h.payments.ReserveSlot(ctx, other, otherTeam.ID, &tour.ID)
	assertErrorIs(t, err, ErrNoActiveRegistration)
}

func TestPaymentTerminalStatesNeverRevert(t *testing.T) {
	h := newHarness(t, PaymentConfig{})
	ctx := context.Background()
	admin := h.admin(t)
	tour := h.tournament(t, 8, models.TournamentActive, 5000)
	owner, team := h.registered(t, tour, "terminal")

	p, err := h.payments.ReserveSlot(ctx, owner, team.ID, nil)
	if err != nil {
		t.Fatalf("ReserveSlot: %v", err)
	}

	_, err = h.payments.Confirm(ctx, owner, p.ID)
	assertErrorIs(t, err, ErrAdminRequired)

	paid, err := h.payments.Confirm(ctx, admin, p.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if paid.Status != models.PaymentPaid || paid.PaidAt == nil {
		t.Fatalf("unexpected payment %+v", paid)
	}

	if again, err := h.payments.Confirm(ctx, admin, p.ID); err != nil || again.Status != models.PaymentPaid {
		t.Errorf("repeat confirm = %v, %v; want no-op", again, err)
	}
	_, err = h.payments.Reject(ctx, admin, p.ID)
	assertErrorIs(t, err, ErrInvalidStatusTransition)
	_, err = h.payments.Cancel(ctx, owner, p.ID)
	assertErrorIs(t, err, ErrInvalidStatusTransition)

	// Auto approval is off, so the registration waits for an admin.
	reg, _ := h.regRepo.GetByTeamAndTournament(ctx, nil, team.ID, tour.ID)
	if reg.Status != models.RegistrationPending {
		t.Errorf("registration status = %s, want PENDING", reg.Status)
	}
}

func TestRejectedPaymentAllowsRetry(t *testing.T) {
	h := newHarness(t, PaymentConfig{})
	ctx := context.Background()
	admin := h.admin(t)
	tour := h.tournament(t, 8, models.TournamentActive, 5000)
	owner, team := h.registered(t, tour, "retry")

	p, _ := h.payments.ReserveSlot(ctx, owner, team.ID, nil)
	rejected, err := h.payments.Reject(ctx, admin, p.ID)
	if err != nil || rejected.Status != models.PaymentRejected {
		t.Fatalf("Reject = %v, %v", rejected, err)
	}
	_, err = h.payments.Confirm(ctx, admin, p.ID)
	assertErrorIs(t, err, ErrInvalidStatusTransition)

	next, err := h.payments.ReserveSlot(ctx, owner, team.ID, nil)
	if err != nil {
		t.Fatalf("ReserveSlot: %v", err)
	}
	if next.ID == p.ID {
		t.Error("expected a new payment after rejection")
	}
}

func TestConfirmAutoApprovesRegistration(t *testing.T) {
	h := newHarness(t, PaymentConfig{AutoApprove: true})
	ctx := context.Background()
	tour := h.tournament(t, 8, models.TournamentActive, 5000)
	owner, team := h.registered(t, tour, "auto")

	p, _ := h.payments.ReserveSlot(ctx, owner, team.ID, nil)
	if _, err := h.payments.Confirm(ctx, h.admin(t), p.ID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	reg, _ := h.regRepo.GetByTeamAndTournament(ctx, nil, team.ID, tour.ID)
	if reg.Status != models.RegistrationApproved {
		t.Errorf("registration status = %s, want APPROVED", reg.Status)
	}
}

func TestCancelByOwner(t *testing.T) {
	h := newHarness(t, PaymentConfig{})
	ctx := context.Background()
	tour := h.tournament(t, 8, models.TournamentActive, 5000)
	owner, team := h.registered(t, tour, "cancel")
	stranger := h.user(t, "stranger@esports.test")

	p, _ := h.payments.ReserveSlot(ctx, owner, team.ID, nil)
	_, err := h.payments.Cancel(ctx, stranger, p.ID)
	assertErrorIs(t, err, ErrOwnerActionForbidden)

	cancelled, err := h.payments.Cancel(ctx, owner, p.ID)
	if err != nil || cancelled.Status != models.PaymentCancelled {
		t.Fatalf("Cancel = %v, %v", cancelled, err)
	}
	_, err = h.payments.Cancel(ctx, owner, 9999)
	assertErrorIs(t, err, ErrPaymentNotFound)
}

func TestSimulateApproval(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled outside development", func(t *testing.T) {
		h := newHarness(t, PaymentConfig{})
		owner := h.user(t, "owner@esports.test")
		team := h.team(t, owner, "prod", "CS2")
		_, err := h.payments.SimulateApproval(ctx, owner, team.ID)
		assertErrorIs(t, err, ErrSimulationDisabled)
	})

	t.Run("marks pending payment paid", func(t *testing.T) {
		h := newHarness(t, PaymentConfig{Development: true})
		tour := h.tournament(t, 8, models.TournamentActive, 5000)
		owner, team := h.registered(t, tour, "dev")

		_, err := h.payments.SimulateApproval(ctx, owner, team.ID)
		assertErrorIs(t, err, ErrPaymentNotFound)

		reserved, _ := h.payments.ReserveSlot(ctx, owner, team.ID, nil)
		if !reserved.IsDevelopment {
			t.Error("payment should be flagged as development")
		}
		paid, err := h.payments.SimulateApproval(ctx, owner, team.ID)
		if err != nil {
			t.Fatalf("SimulateApproval: %v", err)
		}
		if paid.ID != reserved.ID || paid.Status != models.PaymentPaid {
			t.Errorf("unexpected payment %+v", paid)
		}
	})
}

func TestTransitionPastDeadlineExpiresPayment(t *testing.T) {
	ctx := context.Background()

	for _, tt := range []struct {
		name string
		act  func(t *testing.T, h *harness, owner *models.User, team *models.Team, p *models.Payment) error
	}{
		{"simulate approval", func(_ *testing.T, h *harness, owner *models.User, team *models.Team, _ *models.Payment) error {
			_, err := h.payments.SimulateApproval(ctx, owner, team.ID)
			return err
		}},
		{"admin confirm", func(t *testing.T, h *harness, _ *models.User, _ *models.Team, p *models.Payment) error {
			_, err := h.payments.Confirm(ctx, h.admin(t), p.ID)
			return err
		}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, PaymentConfig{TTL: 5 * time.Minute, Development: true})
			tour := h.tournament(t, 8, models.TournamentActive, 5000)
			owner, team := h.registered(t, tour, "late")
			p, err := h.payments.ReserveSlot(ctx, owner, team.ID, nil)
			if err != nil {
				t.Fatalf("ReserveSlot: %v", err)
			}

			h.clock = p.ExpiresAt
			assertErrorIs(t, tt.act(t, h, owner, team, p), ErrInvalidStatusTransition)

			stored, err := h.paymentRepo.GetByID(ctx, p.ID)
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if stored.Status != models.PaymentExpired || stored.PaidAt != nil {
				t.Errorf("stored payment %+v, want EXPIRED and unpaid", stored)
			}
			last := h.events.types()
			if last[len(last)-1] != notify.EventPaymentUpdated {
				t.Errorf("last event = %s, want %s", last[len(last)-1], notify.EventPaymentUpdated)
			}
		})
	}
}

func TestExpireStale(t *testing.T) {
	h := newHarness(t, PaymentConfig{TTL: 5 * time.Minute})
	ctx := context.Background()
	tour := h.tournament(t, 8, models.TournamentActive, 5000)
	ownerA, teamA := h.registered(t, tour, "a")
	ownerB, teamB := h.registered(t, tour, "b")

	if _, err := h.payments.ReserveSlot(ctx, ownerA, teamA.ID, nil); err != nil {
		t.Fatalf("ReserveSlot: %v", err)
	}
	h.clock = h.clock.Add(3 * time.Minute)
	if _, err := h.payments.ReserveSlot(ctx, ownerB, teamB.ID, nil); err != nil {
		t.Fatalf("ReserveSlot: %v", err)
	}

	n, err := h.payments.ExpireStale(ctx, h.clock.Add(3*time.Minute))
	if err != nil {
		t.Fatalf("ExpireStale: %v", err)
	}
	if n != 1 {
		t.Errorf("expired %d payments, want 1", n)
	}

	pending := models.PaymentPending
	list, total, err := h.payments.List(ctx, h.admin(t), models.PaymentFilter{Status: &pending})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || list[0].TeamID != teamB.ID {
		t.Errorf("pending payments = %+v", list)
	}

	_, _, err = h.payments.List(ctx, ownerA, models.PaymentFilter{})
	assertErrorIs(t, err, ErrAdminRequired)
}
