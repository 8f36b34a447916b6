package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/esports-hub/models"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamNameConflict      = errors.New("team name conflict")
	ErrTeamOwnerInvalid      = errors.New("team owner conflict or invalid")
	ErrTeamMemberNotFound    = errors.New("team member not found")
	ErrTeamMemberConflict    = errors.New("user is already a member of this team")
	ErrTeamMemberUserInvalid = errors.New("team member user conflict or invalid")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int) (*models.Team, error)
	// LockByID reads the team with a row lock held until exec's transaction ends.
	LockByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error)
	ListByUser(ctx context.Context, userID int) ([]models.Team, error)
	ListByOwner(ctx context.Context, ownerID int) ([]models.Team, error)
	List(ctx context.Context, limit, offset int) ([]models.Team, int, error)
	Update(ctx context.Context, team *models.Team) error
	UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)

	ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error)
	CountMembers(ctx context.Context, exec SQLExecutor, teamID int) (int, error)
	AddMember(ctx context.Context, exec SQLExecutor, teamID, userID int) error
	RemoveMember(ctx context.Context, teamID, userID int) error
	IsMember(ctx context.Context, teamID, userID int) (bool, error)
}

const teamColumns = `t.id, t.name, t.game, t.owner_id, t.logo_key, t.created_at`

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func scanTeam(s rowScanner, t *models.Team) error {
	return s.Scan(&t.ID, &t.Name, &t.Game, &t.OwnerID, &t.LogoKey, &t.CreatedAt)
}

func mapTeamWriteError(err error) error {
	code, constraint, ok := pqConstraint(err)
	if ok {
		switch {
		case code == pqUniqueViolation && constraint == "teams_name_key":
			return ErrTeamNameConflict
		case code == pqForeignKeyViolation && constraint == "teams_owner_id_fkey":
			return ErrTeamOwnerInvalid
		}
	}
	return err
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (name, game, owner_id, logo_key)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, team.Name, team.Game, team.OwnerID, team.LogoKey).
		Scan(&team.ID, &team.CreatedAt)
	if err != nil {
		return mapTeamWriteError(err)
	}
	return nil
}

func (r *postgresTeamRepository) getOne(ctx context.Context, exec SQLExecutor, query string, id int) (*models.Team, error) {
	t := &models.Team{}
	if err := scanTeam(exec.QueryRowContext(ctx, query, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to scan team: %w", err)
	}
	return t, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	return r.getOne(ctx, r.db, `SELECT `+teamColumns+` FROM teams t WHERE t.id = $1`, id)
}

func (r *postgresTeamRepository) LockByID(ctx context.Context, exec SQLExecutor, id int) (*models.Team, error) {
	return r.getOne(ctx, executor(r.db, exec), `SELECT `+teamColumns+` FROM teams t WHERE t.id = $1 FOR UPDATE`, id)
}

func (r *postgresTeamRepository) listTeams(ctx context.Context, query string, args ...interface{}) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := scanTeam(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan team row: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) ListByUser(ctx context.Context, userID int) ([]models.Team, error) {
	query := `
		SELECT ` + teamColumns + `
		FROM teams t
		WHERE t.owner_id = $1
		   OR EXISTS (SELECT 1 FROM team_members m WHERE m.team_id = t.id AND m.user_id = $1)
		ORDER BY t.created_at DESC`
	return r.listTeams(ctx, query, userID)
}

func (r *postgresTeamRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Team, error) {
	query := `SELECT ` + teamColumns + ` FROM teams t WHERE t.owner_id = $1 ORDER BY t.created_at DESC`
	return r.listTeams(ctx, query, ownerID)
}

func (r *postgresTeamRepository) List(ctx context.Context, limit, offset int) ([]models.Team, int, error) {
	limit, offset = normalizeLimit(limit, offset)

	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	teams, err := r.listTeams(ctx,
		`SELECT `+teamColumns+` FROM teams t ORDER BY t.created_at DESC LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *postgresTeamRepository) Update(ctx context.Context, team *models.Team) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET name = $1, game = $2 WHERE id = $3`,
		team.Name, team.Game, team.ID)
	if err != nil {
		return mapTeamWriteError(err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) UpdateLogoKey(ctx context.Context, teamID int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET logo_key = $1 WHERE id = $2`, logoKey, teamID)
	if err != nil {
		return fmt.Errorf("failed to update team logo key: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	return checkAffectedRows(result, ErrTeamNotFound)
}

func (r *postgresTeamRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return n, nil
}

func (r *postgresTeamRepository) ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error) {
	query := `
		SELECT m.team_id, m.user_id, m.joined_at,
			u.id, u.nickname, u.name, u.email, u.phone, u.image_url, u.role,
			u.steam_id, u.whatsapp, u.current_elo_gc, u.peak_rank_faceit, u.instagram, u.created_at
		FROM team_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = $1
		ORDER BY m.joined_at ASC`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	defer rows.Close()

	members := make([]models.TeamMember, 0, models.MaxTeamMembers)
	for rows.Next() {
		var m models.TeamMember
		u := &models.User{}
		if err := rows.Scan(
			&m.TeamID, &m.UserID, &m.JoinedAt,
			&u.ID, &u.Nickname, &u.Name, &u.Email, &u.Phone, &u.ImageURL, &u.Role,
			&u.SteamID, &u.Whatsapp, &u.CurrentEloGC, &u.PeakRankFaceit, &u.Instagram, &u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan team member row: %w", err)
		}
		m.User = u
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *postgresTeamRepository) CountMembers(ctx context.Context, exec SQLExecutor, teamID int) (int, error) {
	var n int
	err := executor(r.db, exec).
		QueryRowContext(ctx, `SELECT COUNT(*) FROM team_members WHERE team_id = $1`, teamID).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count team members: %w", err)
	}
	return n, nil
}

func (r *postgresTeamRepository) AddMember(ctx context.Context, exec SQLExecutor, teamID, userID int) error {
	_, err := executor(r.db, exec).ExecContext(ctx,
		`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`, teamID, userID)
	if err != nil {
		code, constraint, ok := pqConstraint(err)
		if ok {
			switch {
			case code == pqUniqueViolation && constraint == "team_members_pkey":
				return ErrTeamMemberConflict
			case code == pqForeignKeyViolation && constraint == "team_members_team_id_fkey":
				return ErrTeamNotFound
			case code == pqForeignKeyViolation && constraint == "team_members_user_id_fkey":
				return ErrTeamMemberUserInvalid
			}
		}
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

func (r *postgresTeamRepository) RemoveMember(ctx context.Context, teamID, userID int) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`, teamID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}
	return checkAffectedRows(result, ErrTeamMemberNotFound)
}

func (r *postgresTeamRepository) IsMember(ctx context.Context, teamID, userID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`,
		teamID, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check team membership: %w", err)
	}
	return exists, nil
}
