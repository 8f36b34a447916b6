package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/notify"
	"github.com/Dosada05/esports-hub/repositories"
)

type InviteService interface {
	Send(ctx context.Context, actor *models.User, teamID int, recipientEmail string) (*models.Invite, error)
	ListForUser(ctx context.Context, actor *models.User) ([]models.Invite, error)
	ListForTeam(ctx context.Context, actor *models.User, teamID int) ([]models.Invite, error)
	Respond(ctx context.Context, actor *models.User, inviteID int, accept bool) (*models.Invite, error)
}

type inviteService struct {
	inviteRepo repositories.InviteRepository
	teamRepo   repositories.TeamRepository
	userRepo   repositories.UserRepository
	tx         repositories.Transactor
	authz      Authorizer
	events     notify.Publisher
}

func NewInviteService(
	inviteRepo repositories.InviteRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	tx repositories.Transactor,
	authz Authorizer,
	events notify.Publisher,
) InviteService {
	return &inviteService{
		inviteRepo: inviteRepo,
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		tx:         tx,
		authz:      authz,
		events:     events,
	}
}

func (s *inviteService) Send(ctx context.Context, actor *models.User, teamID int, recipientEmail string) (*models.Invite, error) {
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeamOwner(s.authz, actor, team); err != nil {
		return nil, err
	}

	email := normalizeEmail(recipientEmail)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if email == normalizeEmail(actor.Email) {
		return nil, ErrMemberConflict
	}

	recipient, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		member, err := s.teamRepo.IsMember(ctx, teamID, recipient.ID)
		if err != nil {
			return nil, err
		}
		if member {
			return nil, ErrMemberConflict
		}
	case !errors.Is(err, repositories.ErrUserNotFound):
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	invite := &models.Invite{
		TeamID:         teamID,
		SenderID:       actor.ID,
		RecipientEmail: email,
		Status:         models.InvitePending,
	}
	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		switch {
		case errors.Is(err, repositories.ErrInvitePendingExists):
			return nil, ErrInviteConflict
		case errors.Is(err, repositories.ErrTeamNotFound):
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	invite.Team = team

	s.events.Publish(notify.EventInviteCreated, invite, notify.TeamRoom(teamID))
	return invite, nil
}

func (s *inviteService) ListForUser(ctx context.Context, actor *models.User) ([]models.Invite, error) {
	if actor == nil {
		return nil, ErrAuthenticationFailed
	}
	return s.inviteRepo.ListByRecipient(ctx, normalizeEmail(actor.Email))
}

func (s *inviteService) ListForTeam(ctx context.Context, actor *models.User, teamID int) ([]models.Invite, error) {
	team, err := getTeam(ctx, s.teamRepo, teamID)
	if err != nil {
		return nil, err
	}
	if err := requireTeamOwner(s.authz, actor, team); err != nil {
		return nil, err
	}
	return s.inviteRepo.ListByTeam(ctx, teamID)
}

// Respond answers a pending invite. Accepting joins the recipient to the
// team subject to the roster cap; if the team is full the invite stays pending.
func (s *inviteService) Respond(ctx context.Context, actor *models.User, inviteID int, accept bool) (*models.Invite, error) {
	if actor == nil {
		return nil, ErrAuthenticationFailed
	}
	invite, err := s.inviteRepo.GetByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, repositories.ErrInviteNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to get invite %d: %w", inviteID, err)
	}
	if invite.RecipientEmail != normalizeEmail(actor.Email) {
		return nil, ErrNotInviteRecipient
	}
	if invite.Status != models.InvitePending {
		return nil, ErrInviteAlreadyResolved
	}

	target := models.InviteDeclined
	if accept {
		target = models.InviteAccepted
	}

	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.inviteRepo.UpdateStatus(ctx, exec, invite.ID, models.InvitePending, target); err != nil {
			if errors.Is(err, repositories.ErrInviteStatusChanged) {
				return ErrInviteAlreadyResolved
			}
			return err
		}
		if accept {
			return joinTeam(ctx, exec, s.teamRepo, invite.TeamID, actor.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invite.Status = target
	invite.RespondedAt = &now
	s.events.Publish(notify.EventInviteUpdated, invite, notify.TeamRoom(invite.TeamID))
	return invite, nil
}
