package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/esports-hub/models"
)

var (
	ErrRegistrationNotFound      = errors.New("registration not found")
	ErrRegistrationConflict      = errors.New("team is already registered for this tournament")
	ErrRegistrationStatusChanged = errors.New("registration status changed concurrently")
	ErrRegistrationRefInvalid    = errors.New("registration references a missing team or tournament")
)

type RegistrationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, reg *models.Registration) error
	GetByTeamAndTournament(ctx context.Context, exec SQLExecutor, teamID, tournamentID int) (*models.Registration, error)
	// CountActive counts PENDING and APPROVED registrations of a tournament.
	CountActive(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error)
	// UpdateStatus moves a registration from one status to another and
	// fails with ErrRegistrationStatusChanged if it no longer holds from.
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, from, to models.RegistrationStatus) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
	ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error)
	ListByTeam(ctx context.Context, teamID int) ([]models.Registration, error)
	ListByStatus(ctx context.Context, status models.RegistrationStatus) ([]models.Registration, error)
	CountNonRejectedByTeam(ctx context.Context, teamID int) (int, error)
	CountNonRejectedByOwner(ctx context.Context, ownerID int) (int, error)
	LatestActiveForTeam(ctx context.Context, teamID int) (*models.Registration, error)
	CountByStatus(ctx context.Context) (map[models.RegistrationStatus]int, error)
}

const registrationColumns = `r.id, r.team_id, r.tournament_id, r.status, r.created_at, r.updated_at`

type postgresRegistrationRepository struct {
	db *sql.DB
}

func NewPostgresRegistrationRepository(db *sql.DB) RegistrationRepository {
	return &postgresRegistrationRepository{db: db}
}

func scanRegistration(s rowScanner, reg *models.Registration) error {
	return s.Scan(&reg.ID, &reg.TeamID, &reg.TournamentID, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt)
}

func (r *postgresRegistrationRepository) Create(ctx context.Context, exec SQLExecutor, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (team_id, tournament_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query, reg.TeamID, reg.TournamentID, reg.Status).
		Scan(&reg.ID, &reg.CreatedAt, &reg.UpdatedAt)
	if err != nil {
		code, constraint, ok := pqConstraint(err)
		if ok {
			switch {
			case code == pqUniqueViolation && constraint == "registrations_team_id_tournament_id_key":
				return ErrRegistrationConflict
			case code == pqForeignKeyViolation:
				return ErrRegistrationRefInvalid
			}
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}
	return nil
}

func (r *postgresRegistrationRepository) GetByTeamAndTournament(ctx context.Context, exec SQLExecutor, teamID, tournamentID int) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations r WHERE r.team_id = $1 AND r.tournament_id = $2`
	reg := &models.Registration{}
	err := scanRegistration(executor(r.db, exec).QueryRowContext(ctx, query, teamID, tournamentID), reg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to scan registration: %w", err)
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) CountActive(ctx context.Context, exec SQLExecutor, tournamentID int) (int, error) {
	var n int
	err := executor(r.db, exec).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE tournament_id = $1 AND status IN ('PENDING', 'APPROVED')`,
		tournamentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count active registrations: %w", err)
	}
	return n, nil
}

func (r *postgresRegistrationRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, from, to models.RegistrationStatus) error {
	result, err := executor(r.db, exec).ExecContext(ctx,
		`UPDATE registrations SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3`,
		to, id, from)
	if err != nil {
		return fmt.Errorf("failed to update registration status: %w", err)
	}
	return checkAffectedRows(result, ErrRegistrationStatusChanged)
}

func (r *postgresRegistrationRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := executor(r.db, exec).ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	return checkAffectedRows(result, ErrRegistrationNotFound)
}

// listWithTeams loads registrations joined with their team and tournament names.
func (r *postgresRegistrationRepository) listWithTeams(ctx context.Context, where string, args ...interface{}) ([]models.Registration, error) {
	query := `
		SELECT ` + registrationColumns + `,
			tm.id, tm.name, tm.game, tm.owner_id, tm.logo_key, tm.created_at,
			tr.id, tr.name, tr.game, tr.max_teams, tr.status, tr.price_cents, tr.start_date, tr.end_date
		FROM registrations r
		JOIN teams tm ON tm.id = r.team_id
		JOIN tournaments tr ON tr.id = r.tournament_id
		WHERE ` + where + `
		ORDER BY r.created_at ASC, r.id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	regs := make([]models.Registration, 0)
	for rows.Next() {
		var reg models.Registration
		team := &models.Team{}
		tour := &models.Tournament{}
		if err := rows.Scan(
			&reg.ID, &reg.TeamID, &reg.TournamentID, &reg.Status, &reg.CreatedAt, &reg.UpdatedAt,
			&team.ID, &team.Name, &team.Game, &team.OwnerID, &team.LogoKey, &team.CreatedAt,
			&tour.ID, &tour.Name, &tour.Game, &tour.MaxTeams, &tour.Status, &tour.PriceCents, &tour.StartDate, &tour.EndDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		reg.Team = team
		reg.Tournament = tour
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *postgresRegistrationRepository) ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error) {
	return r.listWithTeams(ctx, "r.tournament_id = $1", tournamentID)
}

func (r *postgresRegistrationRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Registration, error) {
	return r.listWithTeams(ctx, "r.team_id = $1", teamID)
}

func (r *postgresRegistrationRepository) ListByStatus(ctx context.Context, status models.RegistrationStatus) ([]models.Registration, error) {
	return r.listWithTeams(ctx, "r.status = $1", status)
}

func (r *postgresRegistrationRepository) CountNonRejectedByTeam(ctx context.Context, teamID int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM registrations WHERE team_id = $1 AND status <> 'REJECTED'`, teamID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count team registrations: %w", err)
	}
	return n, nil
}

func (r *postgresRegistrationRepository) CountNonRejectedByOwner(ctx context.Context, ownerID int) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM registrations r
		JOIN teams t ON t.id = r.team_id
		WHERE t.owner_id = $1 AND r.status <> 'REJECTED'`, ownerID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count owner registrations: %w", err)
	}
	return n, nil
}

func (r *postgresRegistrationRepository) LatestActiveForTeam(ctx context.Context, teamID int) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations r
		WHERE r.team_id = $1 AND r.status <> 'REJECTED'
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT 1`
	reg := &models.Registration{}
	if err := scanRegistration(r.db.QueryRowContext(ctx, query, teamID), reg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to scan registration: %w", err)
	}
	return reg, nil
}

func (r *postgresRegistrationRepository) CountByStatus(ctx context.Context) (map[models.RegistrationStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM registrations GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count registrations by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.RegistrationStatus]int)
	for rows.Next() {
		var status models.RegistrationStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
