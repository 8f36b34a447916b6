package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/esports-hub/models"
)

var (
	ErrPaymentNotFound          = errors.New("payment not found")
	ErrPaymentPendingConflict   = errors.New("a pending payment already exists for this team and tournament")
	ErrPaymentPaidConflict      = errors.New("a paid payment already exists for this team and tournament")
	ErrPaymentReferenceConflict = errors.New("payment reference conflict")
	ErrPaymentStatusChanged     = errors.New("payment status changed concurrently")
)

// PaymentTotals aggregates payments per status.
type PaymentTotals struct {
	Count       int
	AmountCents int64
}

type PaymentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, payment *models.Payment) error
	GetByID(ctx context.Context, id int) (*models.Payment, error)
	FindByTeamTournamentStatus(ctx context.Context, exec SQLExecutor, teamID, tournamentID int, status models.PaymentStatus) (*models.Payment, error)
	FindPendingByTeam(ctx context.Context, teamID int) (*models.Payment, error)
	// TransitionStatus moves a payment from one status to another and fails
	// with ErrPaymentStatusChanged if it no longer holds from.
	TransitionStatus(ctx context.Context, exec SQLExecutor, id int, from, to models.PaymentStatus, paidAt *time.Time) error
	ListByTeam(ctx context.Context, teamID int) ([]models.Payment, error)
	List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, int, error)
	// ExpireStale marks PENDING payments whose expiry passed as EXPIRED.
	ExpireStale(ctx context.Context, now time.Time) ([]models.Payment, error)
	TotalsByStatus(ctx context.Context) (map[models.PaymentStatus]PaymentTotals, error)
}

const paymentColumns = `p.id, p.team_id, p.tournament_id, p.amount_cents, p.status, p.reference,
	p.pix_code, p.created_at, p.expires_at, p.paid_at`

type postgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

func scanPayment(s rowScanner, p *models.Payment) error {
	return s.Scan(&p.ID, &p.TeamID, &p.TournamentID, &p.AmountCents, &p.Status, &p.Reference,
		&p.PixCode, &p.CreatedAt, &p.ExpiresAt, &p.PaidAt)
}

func (r *postgresPaymentRepository) Create(ctx context.Context, exec SQLExecutor, p *models.Payment) error {
	query := `
		INSERT INTO payments (team_id, tournament_id, amount_cents, status, reference, pix_code, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := executor(r.db, exec).QueryRowContext(ctx, query,
		p.TeamID, p.TournamentID, p.AmountCents, p.Status, p.Reference, p.PixCode, p.ExpiresAt,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		code, constraint, ok := pqConstraint(err)
		if ok && code == pqUniqueViolation {
			switch constraint {
			case "payments_one_pending_idx":
				return ErrPaymentPendingConflict
			case "payments_one_paid_idx":
				return ErrPaymentPaidConflict
			case "payments_reference_key":
				return ErrPaymentReferenceConflict
			}
		}
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

func (r *postgresPaymentRepository) getOne(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) (*models.Payment, error) {
	p := &models.Payment{}
	if err := scanPayment(exec.QueryRowContext(ctx, query, args...), p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return p, nil
}

func (r *postgresPaymentRepository) GetByID(ctx context.Context, id int) (*models.Payment, error) {
	return r.getOne(ctx, r.db, `SELECT `+paymentColumns+` FROM payments p WHERE p.id = $1`, id)
}

func (r *postgresPaymentRepository) FindByTeamTournamentStatus(ctx context.Context, exec SQLExecutor, teamID, tournamentID int, status models.PaymentStatus) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p
		WHERE p.team_id = $1 AND p.tournament_id = $2 AND p.status = $3
		ORDER BY p.created_at DESC
		LIMIT 1`
	return r.getOne(ctx, executor(r.db, exec), query, teamID, tournamentID, status)
}

func (r *postgresPaymentRepository) FindPendingByTeam(ctx context.Context, teamID int) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p
		WHERE p.team_id = $1 AND p.status = 'PENDING'
		ORDER BY p.created_at DESC
		LIMIT 1`
	return r.getOne(ctx, r.db, query, teamID)
}

func (r *postgresPaymentRepository) TransitionStatus(ctx context.Context, exec SQLExecutor, id int, from, to models.PaymentStatus, paidAt *time.Time) error {
	result, err := executor(r.db, exec).ExecContext(ctx,
		`UPDATE payments SET status = $1, paid_at = $2 WHERE id = $3 AND status = $4`,
		to, paidAt, id, from)
	if err != nil {
		code, constraint, ok := pqConstraint(err)
		if ok && code == pqUniqueViolation && constraint == "payments_one_paid_idx" {
			return ErrPaymentPaidConflict
		}
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return checkAffectedRows(result, ErrPaymentStatusChanged)
}

func (r *postgresPaymentRepository) queryPayments(ctx context.Context, query string, args ...interface{}) ([]models.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var p models.Payment
		if err := scanPayment(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *postgresPaymentRepository) ListByTeam(ctx context.Context, teamID int) ([]models.Payment, error) {
	return r.queryPayments(ctx,
		`SELECT `+paymentColumns+` FROM payments p WHERE p.team_id = $1 ORDER BY p.created_at DESC`, teamID)
}

func (r *postgresPaymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.Payment, int, error) {
	limit, offset := normalizeLimit(filter.Limit, filter.Offset)

	where := ""
	args := []interface{}{}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where = " WHERE p.status = $1"
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payments p`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	args = append(args, limit, offset)
	query := `
		SELECT ` + paymentColumns + `, t.name, tr.name
		FROM payments p
		JOIN teams t ON t.id = p.team_id
		JOIN tournaments tr ON tr.id = p.tournament_id` + where +
		fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]models.Payment, 0, limit)
	for rows.Next() {
		var p models.Payment
		team := &models.Team{}
		tour := &models.Tournament{}
		if err := rows.Scan(&p.ID, &p.TeamID, &p.TournamentID, &p.AmountCents, &p.Status, &p.Reference,
			&p.PixCode, &p.CreatedAt, &p.ExpiresAt, &p.PaidAt, &team.Name, &tour.Name); err != nil {
			return nil, 0, fmt.Errorf("failed to scan payment row: %w", err)
		}
		team.ID = p.TeamID
		tour.ID = p.TournamentID
		p.Team = team
		p.Tournament = tour
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *postgresPaymentRepository) ExpireStale(ctx context.Context, now time.Time) ([]models.Payment, error) {
	query := `
		UPDATE payments p SET status = 'EXPIRED'
		WHERE p.status = 'PENDING' AND p.expires_at <= $1
		RETURNING ` + paymentColumns
	return r.queryPayments(ctx, query, now)
}

func (r *postgresPaymentRepository) TotalsByStatus(ctx context.Context) (map[models.PaymentStatus]PaymentTotals, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT status, COUNT(*), COALESCE(SUM(amount_cents), 0) FROM payments GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments: %w", err)
	}
	defer rows.Close()

	totals := make(map[models.PaymentStatus]PaymentTotals)
	for rows.Next() {
		var status models.PaymentStatus
		var t PaymentTotals
		if err := rows.Scan(&status, &t.Count, &t.AmountCents); err != nil {
			return nil, err
		}
		totals[status] = t
	}
	return totals, rows.Err()
}
