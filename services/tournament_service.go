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
	"github.com/rs/zerolog"
)

var (
	ErrTournamentNameRequired    = errors.New("tournament name is required")
	ErrTournamentGameRequired    = errors.New("tournament game is required")
	ErrTournamentDatesRequired   = errors.New("tournament start and end dates are required")
	ErrTournamentInvalidCapacity = fmt.Errorf("tournament max teams must be at least %d", models.MinTournamentTeams)
	ErrTournamentNegativeAmount  = errors.New("tournament price and prize pool cannot be negative")
)

// tournamentTransitions lists the manual status changes an administrator may make.
var tournamentTransitions = map[models.TournamentStatus][]models.TournamentStatus{
	models.TournamentUpcoming:  {models.TournamentActive, models.TournamentOngoing, models.TournamentInactive},
	models.TournamentActive:    {models.TournamentUpcoming, models.TournamentOngoing, models.TournamentInactive},
	models.TournamentOngoing:   {models.TournamentCompleted, models.TournamentInactive},
	models.TournamentInactive:  {models.TournamentUpcoming, models.TournamentActive},
	models.TournamentCompleted: {},
}

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	for _, allowed := range tournamentTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

type TournamentInput struct {
	Name           string                   `json:"name"`
	Game           string                   `json:"game"`
	Description    *string                  `json:"description"`
	PriceCents     int64                    `json:"price_cents"`
	PrizePoolCents int64                    `json:"prize_pool_cents"`
	MaxTeams       int                      `json:"max_teams"`
	Status         *models.TournamentStatus `json:"status"`
	StartDate      time.Time                `json:"start_date"`
	EndDate        time.Time                `json:"end_date"`
}

type TournamentService interface {
	Create(ctx context.Context, actor *models.User, input TournamentInput) (*models.Tournament, error)
	Update(ctx context.Context, actor *models.User, tournamentID int, input TournamentInput) (*models.Tournament, error)
	Delete(ctx context.Context, actor *models.User, tournamentID int) error
	Get(ctx context.Context, tournamentID int) (*models.Tournament, error)
	List(ctx context.Context, filter models.ListTournamentsFilter) ([]models.Tournament, int, error)
	ListOpen(ctx context.Context, limit, offset int) ([]models.Tournament, int, error)
	// AutoUpdateStatuses moves started tournaments to ONGOING and finished
	// ones to COMPLETED, returning how many changed.
	AutoUpdateStatuses(ctx context.Context, now time.Time) (int, error)
}

type tournamentService struct {
	tournamentRepo   repositories.TournamentRepository
	registrationRepo repositories.RegistrationRepository
	tx               repositories.Transactor
	authz            Authorizer
	events           notify.Publisher
	logger           zerolog.Logger
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	registrationRepo repositories.RegistrationRepository,
	tx repositories.Transactor,
	authz Authorizer,
	events notify.Publisher,
	logger zerolog.Logger,
) TournamentService {
	return &tournamentService{
		tournamentRepo:   tournamentRepo,
		registrationRepo: registrationRepo,
		tx:               tx,
		authz:            authz,
		events:           events,
		logger:           logger,
	}
}

func validateTournamentInput(input TournamentInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return ErrTournamentNameRequired
	}
	if strings.TrimSpace(input.Game) == "" {
		return ErrTournamentGameRequired
	}
	if input.MaxTeams < models.MinTournamentTeams {
		return ErrTournamentInvalidCapacity
	}
	if input.PriceCents < 0 || input.PrizePoolCents < 0 {
		return ErrTournamentNegativeAmount
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return ErrTournamentDatesRequired
	}
	if !input.EndDate.After(input.StartDate) {
		return fmt.Errorf("%w: start %s, end %s", ErrTournamentInvalidDates,
			input.StartDate.Format(time.RFC3339), input.EndDate.Format(time.RFC3339))
	}
	if input.Status != nil && !input.Status.Valid() {
		return ErrTournamentInvalidStatus
	}
	return nil
}

func (s *tournamentService) Create(ctx context.Context, actor *models.User, input TournamentInput) (*models.Tournament, error) {
	if err := requireAdmin(s.authz, actor); err != nil {
		return nil, err
	}
	if err := validateTournamentInput(input); err != nil {
		return nil, err
	}

	status := models.TournamentUpcoming
	if input.Status != nil {
		status = *input.Status
	}
	t := &models.Tournament{
		Name:        strings.TrimSpace(input.Name),
		Game:        strings.TrimSpace(input.Game),
		Description: input.Description,
		PriceCents:  input.PriceCents,
		PrizePool:   input.PrizePoolCents,
		MaxTeams:    input.MaxTeams,
		Status:      status,
		StartDate:   input.StartDate.UTC(),
		EndDate:     input.EndDate.UTC(),
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tournamentService) Update(ctx context.Context, actor *models.User, tournamentID int, input TournamentInput) (*models.Tournament, error) {
	if err := requireAdmin(s.authz, actor); err != nil {
		return nil, err
	}
	if err := validateTournamentInput(input); err != nil {
		return nil, err
	}

	var updated *models.Tournament
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		t, err := s.tournamentRepo.LockByID(ctx, exec, tournamentID)
		if err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return err
		}

		if input.Status != nil {
			if !isValidStatusTransition(t.Status, *input.Status) {
				return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, t.Status, *input.Status)
			}
			t.Status = *input.Status
		}

		active, err := s.registrationRepo.CountActive(ctx, exec, tournamentID)
		if err != nil {
			return err
		}
		if input.MaxTeams < active {
			return ErrCapacityBelowRegistered
		}
		if active > 0 && !strings.EqualFold(strings.TrimSpace(input.Game), t.Game) {
			return ErrTournamentGameLocked
		}

		t.Name = strings.TrimSpace(input.Name)
		t.Game = strings.TrimSpace(input.Game)
		t.Description = input.Description
		t.PriceCents = input.PriceCents
		t.PrizePool = input.PrizePoolCents
		t.MaxTeams = input.MaxTeams
		t.StartDate = input.StartDate.UTC()
		t.EndDate = input.EndDate.UTC()
		t.RegisteredTeams = active

		if err := s.tournamentRepo.Update(ctx, exec, t); err != nil {
			if errors.Is(err, repositories.ErrTournamentNotFound) {
				return ErrTournamentNotFound
			}
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(notify.EventTournamentUpdated, updated, notify.TournamentRoom(tournamentID))
	return updated, nil
}

func (s *tournamentService) Delete(ctx context.Context, actor *models.User, tournamentID int) error {
	if err := requireAdmin(s.authz, actor); err != nil {
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return fmt.Errorf("failed to delete tournament %d: %w", tournamentID, err)
	}
	return nil
}

func (s *tournamentService) Get(ctx context.Context, tournamentID int) (*models.Tournament, error) {
	return getTournament(ctx, s.tournamentRepo, tournamentID)
}

func (s *tournamentService) List(ctx context.Context, filter models.ListTournamentsFilter) ([]models.Tournament, int, error) {
	for _, st := range filter.Statuses {
		if !st.Valid() {
			return nil, 0, ErrTournamentInvalidStatus
		}
	}
	return s.tournamentRepo.List(ctx, filter)
}

func (s *tournamentService) ListOpen(ctx context.Context, limit, offset int) ([]models.Tournament, int, error) {
	return s.tournamentRepo.List(ctx, models.ListTournamentsFilter{
		Statuses: []models.TournamentStatus{models.TournamentActive, models.TournamentUpcoming},
		Limit:    limit,
		Offset:   offset,
	})
}

func (s *tournamentService) AutoUpdateStatuses(ctx context.Context, now time.Time) (int, error) {
	candidates, err := s.tournamentRepo.ListForAutoStatusUpdate(ctx, now)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, t := range candidates {
		next := t.Status
		if t.Status.OpenForRegistration() && !t.StartDate.After(now) {
			next = models.TournamentOngoing
		}
		if next == models.TournamentOngoing && !t.EndDate.After(now) {
			next = models.TournamentCompleted
		}
		if next == t.Status {
			continue
		}

		if err := s.tournamentRepo.UpdateStatus(ctx, t.ID, next); err != nil {
			s.logger.Error().Err(err).Int("tournament_id", t.ID).Msg("failed to auto-update tournament status")
			continue
		}
		s.logger.Info().Int("tournament_id", t.ID).
			Str("from", string(t.Status)).Str("to", string(next)).
			Msg("tournament status updated by scheduler")

		t.Status = next
		s.events.Publish(notify.EventTournamentUpdated, t, notify.TournamentRoom(t.ID))
		updated++
	}
	return updated, nil
}
