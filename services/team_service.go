package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/notify"
	"github.com/Dosada05/esports-hub/repositories"
	"github.com/Dosada05/esports-hub/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrTeamNameRequired = errors.New("team name is required")
	ErrTeamGameRequired = errors.New("team game is required")
)

type TeamService interface {
	CreateTeam(ctx context.Context, actor *models.User, input CreateTeamInput) (*models.Team, error)
	GetTeam(ctx context.Context, teamID int) (*models.Team, error)
	ListUserTeams(ctx context.Context, userID int) ([]models.Team, error)
	ListTeams(ctx context.Context, actor *models.User, limit, offset int) ([]models.Team, int, error)
	UpdateTeam(ctx context.Context, actor *models.User, teamID int, input UpdateTeamInput) (*models.Team, error)
	UploadLogo(ctx context.Context, actor *models.User, teamID int, contentType string, r io.Reader) (*models.Team, error)
	DeleteTeam(ctx context.Context, actor *models.User, teamID int) error
	ForceDeleteTeam(ctx context.Context, actor *models.User, teamID int) error
}

type CreateTeamInput struct {
	Name string `json:"name"`
	Game string `json:"game"`
}

type UpdateTeamInput struct {
	Name *string `json:"name"`
	Game *string `json:"game"`
}

type teamService struct {
	teamRepo         repositories.TeamRepository
	userRepo         repositories.UserRepository
	registrationRepo repositories.RegistrationRepository
	paymentRepo      repositories.PaymentRepository
	uploader         storage.FileUploader
	authz            Authorizer
	events           notify.Publisher
	logger           zerolog.Logger
}

// NewTeamService wires the team registry. uploader may be nil when object
// storage is not configured.
func NewTeamService(
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	registrationRepo repositories.RegistrationRepository,
	paymentRepo repositories.PaymentRepository,
	uploader storage.FileUploader,
	authz Authorizer,
	events notify.Publisher,
	logger zerolog.Logger,
) TeamService {
	return &teamService{
		teamRepo:         teamRepo,
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
		paymentRepo:      paymentRepo,
		uploader:         uploader,
		authz:            authz,
		events:           events,
		logger:           logger,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, actor *models.User, input CreateTeamInput) (*models.Team, error) {
	if actor == nil {
		return nil, ErrAuthenticationFailed
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	game := strings.TrimSpace(input.Game)
	if game == "" {
		return nil, ErrTeamGameRequired
	}

	team := &models.Team{
		Name:    name,
		Game:    game,
		OwnerID: actor.ID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamOwnerInvalid):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	team.Owner = actor
	team.Members = []models.TeamMember{}
	return team, nil
}

// GetTeam loads a team with its roster, registrations and payments and
// derives the latest registration and payment status.
func (s *teamService) GetTeam(ctx context.Context, teamID int) (*models.Team, error) {
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}

	var (
		owner         *models.User
		members       []models.TeamMember
		registrations []models.Registration
		payments      []models.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		owner, err = s.userRepo.GetByID(gctx, team.OwnerID)
		return err
	})
	g.Go(func() error {
		var err error
		members, err = s.teamRepo.ListMembers(gctx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		registrations, err = s.registrationRepo.ListByTeam(gctx, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.paymentRepo.ListByTeam(gctx, teamID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load details of team %d: %w", teamID, err)
	}

	team.Owner = owner
	team.Members = members
	team.Registrations = registrations
	team.Payments = payments
	if n := len(registrations); n > 0 {
		status := registrations[n-1].Status
		team.RegistrationStatus = &status
	}
	if len(payments) > 0 {
		status := payments[0].Status
		team.PaymentStatus = &status
	}
	populateTeamLogoURL(team, s.uploader)
	return team, nil
}

func (s *teamService) ListUserTeams(ctx context.Context, userID int) ([]models.Team, error) {
	teams, err := s.teamRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams of user %d: %w", userID, err)
	}
	for i := range teams {
		populateTeamLogoURL(&teams[i], s.uploader)
	}
	return teams, nil
}

func (s *teamService) ListTeams(ctx context.Context, actor *models.User, limit, offset int) ([]models.Team, int, error) {
	if err := requireAdmin(s.authz, actor); err != nil {
		return nil, 0, err
	}
	teams, total, err := s.teamRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list teams: %w", err)
	}
	for i := range teams {
		populateTeamLogoURL(&teams[i], s.uploader)
	}
	return teams, total, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, actor *models.User, teamID int, input UpdateTeamInput) (*models.Team, error) {
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeamOwner(s.authz, actor, team); err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = name
	}
	if input.Game != nil {
		game := strings.TrimSpace(*input.Game)
		if game == "" {
			return nil, ErrTeamGameRequired
		}
		if !strings.EqualFold(game, team.Game) {
			regs, err := s.registrationRepo.ListByTeam(ctx, teamID)
			if err != nil {
				return nil, err
			}
			if len(regs) > 0 {
				return nil, ErrTeamGameLocked
			}
		}
		team.Game = game
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to update team %d: %w", teamID, err)
	}

	populateTeamLogoURL(team, s.uploader)
	s.events.Publish(notify.EventTeamUpdated, team, notify.TeamRoom(teamID))
	return team, nil
}

func (s *teamService) UploadLogo(ctx context.Context, actor *models.User, teamID int, contentType string, r io.Reader) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeamOwner(s.authz, actor, team); err != nil {
		return nil, err
	}

	key, err := storage.TeamLogoKey(teamID, contentType, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedContentType) {
			return nil, ErrUnsupportedContentType
		}
		return nil, err
	}
	if _, err := s.uploader.Upload(ctx, key, contentType, r); err != nil {
		return nil, fmt.Errorf("failed to upload logo for team %d: %w", teamID, err)
	}

	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, teamID, &key); err != nil {
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.Warn().Err(delErr).Str("key", key).Msg("failed to clean up orphaned logo")
		}
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to store logo key for team %d: %w", teamID, err)
	}
	if oldKey != nil && *oldKey != "" {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn().Err(err).Str("key", *oldKey).Msg("failed to delete previous team logo")
		}
	}

	team.LogoKey = &key
	populateTeamLogoURL(team, s.uploader)
	s.events.Publish(notify.EventTeamUpdated, team, notify.TeamRoom(teamID))
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, actor *models.User, teamID int) error {
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return err
	}
	if err := requireOwnerOrAdmin(s.authz, actor, team); err != nil {
		return err
	}

	active, err := s.registrationRepo.CountNonRejectedByTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrTeamHasRegistrations
	}
	return s.removeTeam(ctx, team)
}

// ForceDeleteTeam removes a team regardless of its registrations. Registrations,
// payments, invites and memberships go with it through the foreign key cascades.
func (s *teamService) ForceDeleteTeam(ctx context.Context, actor *models.User, teamID int) error {
	if err := requireAdmin(s.authz, actor); err != nil {
		return err
	}
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return err
	}
	s.logger.Info().Int("team_id", teamID).Int("actor_id", actor.ID).Msg("force deleting team")
	return s.removeTeam(ctx, team)
}

func (s *teamService) removeTeam(ctx context.Context, team *models.Team) error {
	teamID := team.ID
	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", teamID, err)
	}

	if team.LogoKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
			s.logger.Warn().Err(err).Int("team_id", teamID).Msg("failed to delete team logo")
		}
	}
	s.events.Publish(notify.EventTeamDeleted, map[string]int{"team_id": teamID}, notify.TeamRoom(teamID), notify.AdminRoom)
	return nil
}
