package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/esports-hub/models"
)

var (
	ErrInviteNotFound      = errors.New("invite not found")
	ErrInvitePendingExists = errors.New("a pending invite already exists for this recipient")
	ErrInviteStatusChanged = errors.New("invite status changed concurrently")
)

type InviteRepository interface {
	Create(ctx context.Context, invite *models.Invite) error
	GetByID(ctx context.Context, id int) (*models.Invite, error)
	ListByRecipient(ctx context.Context, email string) ([]models.Invite, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.Invite, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, from, to models.InviteStatus) error
}

const inviteColumns = `i.id, i.team_id, i.sender_id, i.recipient_email, i.status, i.created_at, i.responded_at`

type postgresInviteRepository struct {
	db *sql.DB
}

func NewPostgresInviteRepository(db *sql.DB) InviteRepository {
	return &postgresInviteRepository{db: db}
}

func scanInvite(s rowScanner, inv *models.Invite) error {
	return s.Scan(&inv.ID, &inv.TeamID, &inv.SenderID, &inv.RecipientEmail, &inv.Status, &inv.CreatedAt, &inv.RespondedAt)
}

func (r *postgresInviteRepository) Create(ctx context.Context, inv *models.Invite) error {
	query := `
		INSERT INTO invites (team_id, sender_id, recipient_email, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, inv.TeamID, inv.SenderID, inv.RecipientEmail, inv.Status).
		Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		code, constraint, ok := pqConstraint(err)
		if ok {
			switch {
			case code == pqUniqueViolation && constraint == "invites_one_pending_idx":
				return ErrInvitePendingExists
			case code == pqForeignKeyViolation && constraint == "invites_team_id_fkey":
				return ErrTeamNotFound
			}
		}
		return fmt.Errorf("failed to create invite: %w", err)
	}
	return nil
}

func (r *postgresInviteRepository) GetByID(ctx context.Context, id int) (*models.Invite, error) {
	inv := &models.Invite{}
	err := scanInvite(r.db.QueryRowContext(ctx, `SELECT `+inviteColumns+` FROM invites i WHERE i.id = $1`, id), inv)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to scan invite: %w", err)
	}
	return inv, nil
}

func (r *postgresInviteRepository) listWithTeam(ctx context.Context, where string, arg interface{}) ([]models.Invite, error) {
	query := `
		SELECT ` + inviteColumns + `, t.id, t.name, t.game, t.owner_id
		FROM invites i
		JOIN teams t ON t.id = i.team_id
		WHERE ` + where + `
		ORDER BY i.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list invites: %w", err)
	}
	defer rows.Close()

	invites := make([]models.Invite, 0)
	for rows.Next() {
		var inv models.Invite
		team := &models.Team{}
		if err := rows.Scan(&inv.ID, &inv.TeamID, &inv.SenderID, &inv.RecipientEmail, &inv.Status,
			&inv.CreatedAt, &inv.RespondedAt, &team.ID, &team.Name, &team.Game, &team.OwnerID); err != nil {
			return nil, fmt.Errorf("failed to scan invite row: %w", err)
		}
		inv.Team = team
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

func (r *postgresInviteRepository) ListByRecipient(ctx context.Context, email string) ([]models.Invite, error) {
	return r.listWithTeam(ctx, "i.recipient_email = $1", email)
}

func (r *postgresInviteRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Invite, error) {
	return r.listWithTeam(ctx, "i.team_id = $1", teamID)
}

func (r *postgresInviteRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, from, to models.InviteStatus) error {
	result, err := executor(r.db, exec).ExecContext(ctx,
		`UPDATE invites SET status = $1, responded_at = NOW() WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update invite status: %w", err)
	}
	return checkAffectedRows(result, ErrInviteStatusChanged)
}
