package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/esports-hub/models"
	"github.com/lib/pq"
)

var ErrTournamentNotFound = errors.New("tournament not found")

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	// LockByID reads the tournament with a row lock held until exec's transaction ends.
	LockByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error)
	List(ctx context.Context, filter models.ListTournamentsFilter) ([]models.Tournament, int, error)
	Update(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error
	Delete(ctx context.Context, id int) error
	CountByStatus(ctx context.Context) (map[models.TournamentStatus]int, error)
	ListForAutoStatusUpdate(ctx context.Context, now time.Time) ([]models.Tournament, error)
}

// registered counts slot-holding registrations alongside each tournament row.
const tournamentColumns = `t.id, t.name, t.game, t.description, t.price_cents, t.prize_pool_cents,
	t.max_teams, t.status, t.start_date, t.end_date, t.created_at,
	(SELECT COUNT(*) FROM registrations r
	  WHERE r.tournament_id = t.id AND r.status IN ('PENDING', 'APPROVED')) AS registered`

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func scanTournament(s rowScanner, t *models.Tournament) error {
	return s.Scan(
		&t.ID, &t.Name, &t.Game, &t.Description, &t.PriceCents, &t.PrizePool,
		&t.MaxTeams, &t.Status, &t.StartDate, &t.EndDate, &t.CreatedAt,
		&t.RegisteredTeams,
	)
}

func (r *postgresTournamentRepository) Create(ctx context.Context, t *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, game, description, price_cents, prize_pool_cents,
			max_teams, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		t.Name, t.Game, t.Description, t.PriceCents, t.PrizePool,
		t.MaxTeams, t.Status, t.StartDate, t.EndDate,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tournament: %w", err)
	}
	return nil
}

func (r *postgresTournamentRepository) getOne(ctx context.Context, exec SQLExecutor, query string, id int) (*models.Tournament, error) {
	t := &models.Tournament{}
	if err := scanTournament(exec.QueryRowContext(ctx, query, id), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament: %w", err)
	}
	return t, nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	return r.getOne(ctx, r.db, `SELECT `+tournamentColumns+` FROM tournaments t WHERE t.id = $1`, id)
}

func (r *postgresTournamentRepository) LockByID(ctx context.Context, exec SQLExecutor, id int) (*models.Tournament, error) {
	return r.getOne(ctx, executor(r.db, exec),
		`SELECT `+tournamentColumns+` FROM tournaments t WHERE t.id = $1 FOR UPDATE OF t`, id)
}

func (r *postgresTournamentRepository) List(ctx context.Context, filter models.ListTournamentsFilter) ([]models.Tournament, int, error) {
	limit, offset := normalizeLimit(filter.Limit, filter.Offset)

	var conds []string
	args := []interface{}{}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		conds = append(conds, fmt.Sprintf("t.status::text = ANY($%d)", len(args)))
	}
	if filter.Game != nil {
		args = append(args, *filter.Game)
		conds = append(conds, fmt.Sprintf("t.game = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tournaments t`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tournaments: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT ` + tournamentColumns + ` FROM tournaments t` + where +
		fmt.Sprintf(" ORDER BY t.start_date ASC, t.id ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0, limit)
	for rows.Next() {
		var t models.Tournament
		if err := scanTournament(rows, &t); err != nil {
			return nil, 0, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return tournaments, total, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = $1,
			game = $2,
			description = $3,
			price_cents = $4,
			prize_pool_cents = $5,
			max_teams = $6,
			status = $7,
			start_date = $8,
			end_date = $9
		WHERE id = $10`

	result, err := executor(r.db, exec).ExecContext(ctx, query,
		t.Name, t.Game, t.Description, t.PriceCents, t.PrizePool,
		t.MaxTeams, t.Status, t.StartDate, t.EndDate, t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tournament: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	result, err := r.db.ExecContext(ctx, `UPDATE tournaments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update tournament status: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tournament: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) CountByStatus(ctx context.Context) (map[models.TournamentStatus]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM tournaments GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count tournaments by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.TournamentStatus]int)
	for rows.Next() {
		var status models.TournamentStatus
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// ListForAutoStatusUpdate returns open tournaments that have started and
// ongoing tournaments that have ended.
func (r *postgresTournamentRepository) ListForAutoStatusUpdate(ctx context.Context, now time.Time) ([]models.Tournament, error) {
	query := `
		SELECT ` + tournamentColumns + `
		FROM tournaments t
		WHERE (t.status IN ('ACTIVE', 'UPCOMING') AND t.start_date <= $1)
		   OR (t.status = 'ONGOING' AND t.end_date <= $1)`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments for status update: %w", err)
	}
	defer rows.Close()

	var tournaments []models.Tournament
	for rows.Next() {
		var t models.Tournament
		if err := scanTournament(rows, &t); err != nil {
			return nil, fmt.Errorf("failed to scan tournament row: %w", err)
		}
		tournaments = append(tournaments, t)
	}
	return tournaments, rows.Err()
}
