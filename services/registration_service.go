package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/notify"
	"github.com/Dosada05/esports-hub/repositories"
)

type RegistrationService interface {
	Register(ctx context.Context, actor *models.User, tournamentID, teamID int) (*models.Registration, error)
	Approve(ctx context.Context, actor *models.User, tournamentID, teamID int) (*models.Registration, error)
	Reject(ctx context.Context, actor *models.User, tournamentID, teamID int) (*models.Registration, error)
	Withdraw(ctx context.Context, actor *models.User, tournamentID, teamID int) error
	ListTournamentTeams(ctx context.Context, tournamentID int) (*models.TournamentTeams, error)
	ListPending(ctx context.Context, actor *models.User) ([]models.Registration, error)
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	tournamentRepo   repositories.TournamentRepository
	teamRepo         repositories.TeamRepository
	paymentRepo      repositories.PaymentRepository
	tx               repositories.Transactor
	authz            Authorizer
	events           notify.Publisher
	now              func() time.Time
}

func NewRegistrationService(
	registrationRepo repositories.RegistrationRepository,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	paymentRepo repositories.PaymentRepository,
	tx repositories.Transactor,
	authz Authorizer,
	events notify.Publisher,
) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		tournamentRepo:   tournamentRepo,
		teamRepo:         teamRepo,
		paymentRepo:      paymentRepo,
		tx:               tx,
		authz:            authz,
		events:           events,
		now:              time.Now,
	}
}

func (s *registrationService) publish(eventType string, reg *models.Registration) {
	s.events.Publish(eventType, reg,
		notify.TeamRoom(reg.TeamID), notify.TournamentRoom(reg.TournamentID), notify.AdminRoom)
}

// Register creates a PENDING registration. The tournament row stays locked
// between the capacity check and the insert.
func (s *registrationService) Register(ctx context.Context, actor *models.User, tournamentID, teamID int) (*models.Registration, error) {
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeamOwner(s.authz, actor, team); err != nil {
		return nil, err
	}

	reg := &models.Registration{
		TeamID:       teamID,
		TournamentID: tournamentID,
		Status:       models.RegistrationPending,
	}
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		tournament, err := s.tournamentRepo.LockByID(ctx, exec, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return err
		}
		if !tournament.Status.OpenForRegistration() {
			return ErrRegistrationNotOpen
		}
		if !strings.EqualFold(team.Game, tournament.Game) {
			return ErrGameMismatch
		}

		_, err = s.registrationRepo.GetByTeamAndTournament(ctx, exec, teamID, tournamentID)
		if err == nil {
			return ErrRegistrationConflict
		}
		if !errors.Is(err, repositories.ErrRegistrationNotFound) {
			return err
		}

		active, err := s.registrationRepo.CountActive(ctx, exec, tournamentID)
		if err != nil {
			return err
		}
		if active >= tournament.MaxTeams {
			return ErrTournamentFull
		}

		if err := s.registrationRepo.Create(ctx, exec, reg); err != nil {
			switch {
			case errors.Is(err, repositories.ErrRegistrationConflict):
				return ErrRegistrationConflict
			case errors.Is(err, repositories.ErrRegistrationRefInvalid):
				return ErrNotFound
			}
			return fmt.Errorf("failed to create registration: %w", err)
		}
		reg.Tournament = tournament
		return nil
	})
	if err != nil {
		return nil, err
	}

	reg.Team = team
	s.publish(notify.EventRegistrationCreated, reg)
	return reg, nil
}

func (s *registrationService) Approve(ctx context.Context, actor *models.User, tournamentID, teamID int) (*models.Registration, error) {
	return s.decide(ctx, actor, tournamentID, teamID, models.RegistrationApproved)
}

func (s *registrationService) Reject(ctx context.Context, actor *models.User, tournamentID, teamID int) (*models.Registration, error) {
	return s.decide(ctx, actor, tournamentID, teamID, models.RegistrationRejected)
}

// decide moves a PENDING registration to target. Repeating the same
// decision is a no-op; any other change of a decided registration fails.
func (s *registrationService) decide(ctx context.Context, actor *models.User, tournamentID, teamID int, target models.RegistrationStatus) (*models.Registration, error) {
	if err := requireAdmin(s.authz, actor); err != nil {
		return nil, err
	}

	reg, err := s.registrationRepo.GetByTeamAndTournament(ctx, nil, teamID, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRegistrationNotFound) {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	if reg.Status == target {
		return reg, nil
	}
	if reg.Status != models.RegistrationPending {
		return nil, fmt.Errorf("%w: registration is %s", ErrInvalidStatusTransition, reg.Status)
	}

	if err := s.registrationRepo.UpdateStatus(ctx, nil, reg.ID, models.RegistrationPending, target); err != nil {
		if errors.Is(err, repositories.ErrRegistrationStatusChanged) {
			return nil, fmt.Errorf("%w: registration changed concurrently", ErrInvalidStatusTransition)
		}
		return nil, err
	}
	reg.Status = target
	reg.UpdatedAt = s.now().UTC()

	s.publish(notify.EventRegistrationUpdated, reg)
	return reg, nil
}

// Withdraw deletes the registration whatever its status, unless the team
// is still holding an unexpired pending payment for the tournament.
func (s *registrationService) Withdraw(ctx context.Context, actor *models.User, tournamentID, teamID int) error {
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(s.authz, actor, team); err != nil {
		return err
	}

	var reg *models.Registration
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if _, err := s.tournamentRepo.LockByID(ctx, exec, tournamentID); err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return err
		}

		var err error
		reg, err = s.registrationRepo.GetByTeamAndTournament(ctx, exec, teamID, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrRegistrationNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		pending, err := s.paymentRepo.FindByTeamTournamentStatus(ctx, exec, teamID, tournamentID, models.PaymentPending)
		switch {
		case err == nil:
			if s.now().Before(pending.ExpiresAt) {
				return ErrPaymentInProgress
			}
			if err := s.paymentRepo.TransitionStatus(ctx, exec, pending.ID, models.PaymentPending, models.PaymentExpired, nil); err != nil &&
				!errors.Is(err, repositories.ErrPaymentStatusChanged) {
				return err
			}
		case !errors.Is(err, repositories.ErrPaymentNotFound):
			return err
		}

		if err := s.registrationRepo.Delete(ctx, exec, reg.ID); err != nil {
			if errors.Is(err, repositories.ErrRegistrationNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(notify.EventRegistrationWithdrawn, reg)
	return nil
}

func (s *registrationService) ListTournamentTeams(ctx context.Context, tournamentID int) (*models.TournamentTeams, error) {
	tournament, err := getTournament(ctx, s.tournamentRepo, tournamentID)
	if err != nil {
		return nil, err
	}
	regs, err := s.registrationRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations of tournament %d: %w", tournamentID, err)
	}

	total := 0
	for _, r := range regs {
		if r.Status.HoldsSlot() {
			total++
		}
	}
	return &models.TournamentTeams{
		TournamentID: tournamentID,
		Teams:        regs,
		Total:        total,
		MaxTeams:     tournament.MaxTeams,
	}, nil
}

func (s *registrationService) ListPending(ctx context.Context, actor *models.User) ([]models.Registration, error) {
	if err := requireAdmin(s.authz, actor); err != nil {
		return nil, err
	}
	return s.registrationRepo.ListByStatus(ctx, models.RegistrationPending)
}
