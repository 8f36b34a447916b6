package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/repositories"
	"github.com/Dosada05/esports-hub/storage"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidationFailed)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email %q", ErrValidationFailed, email)
	}
	return nil
}

func getTeam(ctx context.Context, repo repositories.TeamRepository, teamID int) (*models.Team, error) {
	team, err := repo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}
	return team, nil
}

func getTournament(ctx context.Context, repo repositories.TournamentRepository, tournamentID int) (*models.Tournament, error) {
	tournament, err := repo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %d: %w", tournamentID, err)
	}
	return tournament, nil
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}

// joinTeam adds userID to the team under a row lock so concurrent joins
// cannot push the roster past the cap.
func joinTeam(ctx context.Context, tx repositories.SQLExecutor, teamRepo repositories.TeamRepository, teamID, userID int) error {
	team, err := teamRepo.LockByID(ctx, tx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to lock team %d: %w", teamID, err)
	}
	if team.OwnerID == userID {
		return ErrMemberConflict
	}

	count, err := teamRepo.CountMembers(ctx, tx, teamID)
	if err != nil {
		return err
	}
	if count >= models.MaxTeamMembers {
		return ErrTeamFull
	}

	if err := teamRepo.AddMember(ctx, tx, teamID, userID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamMemberConflict):
			return ErrMemberConflict
		case errors.Is(err, repositories.ErrTeamNotFound):
			return ErrTeamNotFound
		case errors.Is(err, repositories.ErrTeamMemberUserInvalid):
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to add member to team %d: %w", teamID, err)
	}
	return nil
}
