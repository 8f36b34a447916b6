package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/esports-hub/models"
)

var (
	ErrUserNotFound         = errors.New("user not found")
	ErrUserEmailConflict    = errors.New("user email conflict")
	ErrUserNicknameConflict = errors.New("user nickname conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	SearchByNickname(ctx context.Context, prefix string, limit int) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	UpdateGameProfile(ctx context.Context, userID int, profile models.GameProfile) error
	Delete(ctx context.Context, id int) error
	List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error)
	CountByRole(ctx context.Context) (map[models.UserRole]int, error)
}

const userColumns = `id, nickname, name, email, phone, image_url, role,
	steam_id, whatsapp, current_elo_gc, peak_rank_faceit, instagram, created_at`

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func scanUser(s rowScanner, u *models.User) error {
	return s.Scan(
		&u.ID, &u.Nickname, &u.Name, &u.Email, &u.Phone, &u.ImageURL, &u.Role,
		&u.SteamID, &u.Whatsapp, &u.CurrentEloGC, &u.PeakRankFaceit, &u.Instagram, &u.CreatedAt,
	)
}

func mapUserWriteError(err error) error {
	code, constraint, ok := pqConstraint(err)
	if ok && code == pqUniqueViolation {
		switch constraint {
		case "users_email_key":
			return ErrUserEmailConflict
		case "users_nickname_key":
			return ErrUserNicknameConflict
		}
	}
	return err
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (nickname, name, email, phone, image_url, role)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.Nickname,
		user.Name,
		user.Email,
		user.Phone,
		user.ImageURL,
		user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return mapUserWriteError(err)
	}
	return nil
}

func (r *postgresUserRepository) findOne(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where
	u := &models.User{}
	if err := scanUser(r.db.QueryRowContext(ctx, query, arg), u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return u, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.findOne(ctx, "id = $1", id)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = $1", email)
}

func (r *postgresUserRepository) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return r.findOne(ctx, "LOWER(nickname) = LOWER($1)", nickname)
}

func (r *postgresUserRepository) SearchByNickname(ctx context.Context, prefix string, limit int) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE nickname ILIKE $1
		ORDER BY nickname ASC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, likeEscape(prefix)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *postgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			nickname = $1,
			name = $2,
			phone = $3,
			image_url = $4,
			role = $5
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		user.Nickname,
		user.Name,
		user.Phone,
		user.ImageURL,
		user.Role,
		user.ID,
	)
	if err != nil {
		return mapUserWriteError(err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

// UpdateGameProfile overwrites only the fields that are non-nil in profile.
func (r *postgresUserRepository) UpdateGameProfile(ctx context.Context, userID int, profile models.GameProfile) error {
	query := `
		UPDATE users SET
			steam_id = COALESCE($1, steam_id),
			whatsapp = COALESCE($2, whatsapp),
			current_elo_gc = COALESCE($3, current_elo_gc),
			peak_rank_faceit = COALESCE($4, peak_rank_faceit),
			instagram = COALESCE($5, instagram)
		WHERE id = $6`

	result, err := r.db.ExecContext(ctx, query,
		profile.SteamID,
		profile.Whatsapp,
		profile.CurrentEloGC,
		profile.PeakRankFaceit,
		profile.Instagram,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game profile: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

func (r *postgresUserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	limit, offset := normalizeLimit(filter.Limit, filter.Offset)

	where := " WHERE 1=1"
	args := []interface{}{}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (nickname ILIKE $%d OR email ILIKE $%d OR name ILIKE $%d)", len(args), len(args), len(args))
	}
	if filter.Role != nil {
		args = append(args, *filter.Role)
		where += fmt.Sprintf(" AND role = $%d", len(args))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	args = append(args, limit, offset)
	query := `SELECT ` + userColumns + ` FROM users` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0, limit)
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, 0, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *postgresUserRepository) CountByRole(ctx context.Context) (map[models.UserRole]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.UserRole]int)
	for rows.Next() {
		var role models.UserRole
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		counts[role] = n
	}
	return counts, rows.Err()
}
