package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/notify"
	"github.com/Dosada05/esports-hub/repositories"
)

type MembershipService interface {
	AddMember(ctx context.Context, actor *models.User, teamID int, input AddMemberInput) (*models.TeamMember, error)
	RemoveMember(ctx context.Context, actor *models.User, teamID int, email string) error
	// UpdateMemberProfile overwrites the non-nil profile fields of a roster
	// member, the owner included.
	UpdateMemberProfile(ctx context.Context, actor *models.User, teamID int, email string, profile models.GameProfile) (*models.User, error)
	// ListMembers returns the owner first, followed by members in join order.
	ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error)
}

type AddMemberInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type membershipService struct {
	teamRepo repositories.TeamRepository
	userRepo repositories.UserRepository
	identity IdentityService
	tx       repositories.Transactor
	authz    Authorizer
	events   notify.Publisher
}

func NewMembershipService(
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	identity IdentityService,
	tx repositories.Transactor,
	authz Authorizer,
	events notify.Publisher,
) MembershipService {
	return &membershipService{
		teamRepo: teamRepo,
		userRepo: userRepo,
		identity: identity,
		tx:       tx,
		authz:    authz,
		events:   events,
	}
}

func (s *membershipService) ownedTeam(ctx context.Context, actor *models.User, teamID int) (*models.Team, error) {
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeamOwner(s.authz, actor, team); err != nil {
		return nil, err
	}
	return team, nil
}

func (s *membershipService) AddMember(ctx context.Context, actor *models.User, teamID int, input AddMemberInput) (*models.TeamMember, error) {
	if _, err := s.ownedTeam(ctx, actor, teamID); err != nil {
		return nil, err
	}

	email := normalizeEmail(input.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if email == normalizeEmail(actor.Email) {
		return nil, ErrMemberConflict
	}

	user, err := s.identity.FindOrCreate(ctx, email, input.Name)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		return joinTeam(ctx, exec, s.teamRepo, teamID, user.ID)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(notify.EventTeamUpdated, map[string]interface{}{"team_id": teamID, "member_added": user.ID}, notify.TeamRoom(teamID))
	return &models.TeamMember{TeamID: teamID, UserID: user.ID, User: user}, nil
}

func (s *membershipService) RemoveMember(ctx context.Context, actor *models.User, teamID int, email string) error {
	team, err := s.ownedTeam(ctx, actor, teamID)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to get user by email: %w", err)
	}
	if user.ID == team.OwnerID {
		return ErrCannotRemoveOwner
	}

	if err := s.teamRepo.RemoveMember(ctx, teamID, user.ID); err != nil {
		if errors.Is(err, repositories.ErrTeamMemberNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to remove member %d from team %d: %w", user.ID, teamID, err)
	}

	s.events.Publish(notify.EventTeamUpdated, map[string]interface{}{"team_id": teamID, "member_removed": user.ID}, notify.TeamRoom(teamID))
	return nil
}

func (s *membershipService) UpdateMemberProfile(ctx context.Context, actor *models.User, teamID int, email string, profile models.GameProfile) (*models.User, error) {
	team, err := s.ownedTeam(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if user.ID != team.OwnerID {
		member, err := s.teamRepo.IsMember(ctx, teamID, user.ID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrMemberNotFound
		}
	}

	if err := s.userRepo.UpdateGameProfile(ctx, user.ID, profile); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to update profile of user %d: %w", user.ID, err)
	}
	return s.identity.GetByID(ctx, user.ID)
}

func (s *membershipService) ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error) {
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	owner, err := s.identity.GetByID(ctx, team.OwnerID)
	if err != nil {
		return nil, err
	}
	members, err := s.teamRepo.ListMembers(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members of team %d: %w", teamID, err)
	}

	roster := make([]models.TeamMember, 0, len(members)+1)
	roster = append(roster, models.TeamMember{TeamID: teamID, UserID: owner.ID, JoinedAt: team.CreatedAt, User: owner})
	return append(roster, members...), nil
}
