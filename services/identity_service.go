package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/repositories"
)

const (
	maxNicknameAttempts = 10
	maxNicknameLength   = 32
	minNicknameLength   = 3
	defaultSearchLimit  = 10
)

var (
	nicknamePattern  = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	nicknameStripper = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)
)

// AdminPolicy lists the emails granted the ADMIN role. It is the only
// source of admin rights; token claims never grant them.
type AdminPolicy struct {
	emails map[string]struct{}
}

func NewAdminPolicy(emails []string) AdminPolicy {
	p := AdminPolicy{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		if e = normalizeEmail(e); e != "" {
			p.emails[e] = struct{}{}
		}
	}
	return p
}

func (p AdminPolicy) RoleFor(email string) models.UserRole {
	if _, ok := p.emails[normalizeEmail(email)]; ok {
		return models.RoleAdmin
	}
	return models.RolePlayer
}

type UpdateProfileInput struct {
	Nickname *string `json:"nickname"`
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
}

type IdentityService interface {
	// ResolvePrincipal maps the authenticated caller to a user, creating
	// one on first sight and re-applying the admin policy every time.
	ResolvePrincipal(ctx context.Context, principal models.Principal) (*models.User, error)
	FindOrCreate(ctx context.Context, email, name string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)
	SearchPlayers(ctx context.Context, prefix string, limit int) ([]models.User, error)
	UpdateProfile(ctx context.Context, actor *models.User, input UpdateProfileInput) (*models.User, error)
	ListUsers(ctx context.Context, actor *models.User, filter models.UserFilter) (*models.UserListResponse, error)
	DeleteUser(ctx context.Context, actor *models.User, userID int) error
}

type identityService struct {
	userRepo         repositories.UserRepository
	registrationRepo repositories.RegistrationRepository
	policy           AdminPolicy
	authz            Authorizer
}

func NewIdentityService(
	userRepo repositories.UserRepository,
	registrationRepo repositories.RegistrationRepository,
	policy AdminPolicy,
	authz Authorizer,
) IdentityService {
	return &identityService{
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
		policy:           policy,
		authz:            authz,
	}
}

func (s *identityService) ResolvePrincipal(ctx context.Context, principal models.Principal) (*models.User, error) {
	email := normalizeEmail(principal.Email)
	if err := validateEmail(email); err != nil {
		return nil, ErrAuthenticationFailed
	}
	role := s.policy.RoleFor(email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return s.syncPrincipal(ctx, user, principal, role)
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return s.create(ctx, email, principal.Name, principal.Image, role)
}

// syncPrincipal refreshes the role and fills profile fields the user never set.
func (s *identityService) syncPrincipal(ctx context.Context, user *models.User, principal models.Principal, role models.UserRole) (*models.User, error) {
	changed := false
	if user.Role != role {
		user.Role = role
		changed = true
	}
	if user.Name == "" && principal.Name != "" {
		user.Name = principal.Name
		changed = true
	}
	if user.ImageURL == nil && principal.Image != "" {
		image := principal.Image
		user.ImageURL = &image
		changed = true
	}
	if !changed {
		return user, nil
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to sync user %d: %w", user.ID, err)
	}
	return user, nil
}

func (s *identityService) FindOrCreate(ctx context.Context, email, name string) (*models.User, error) {
	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return s.create(ctx, email, strings.TrimSpace(name), "", s.policy.RoleFor(email))
}

func (s *identityService) create(ctx context.Context, email, name, image string, role models.UserRole) (*models.User, error) {
	base := nicknameFromEmail(email)
	user := &models.User{
		Email: email,
		Name:  name,
		Role:  role,
	}
	if image != "" {
		user.ImageURL = &image
	}

	for attempt := 1; attempt <= maxNicknameAttempts; attempt++ {
		user.Nickname = nicknameCandidate(base, attempt)
		err := s.userRepo.Create(ctx, user)
		if err == nil {
			return user, nil
		}
		switch {
		case errors.Is(err, repositories.ErrUserNicknameConflict):
			continue
		case errors.Is(err, repositories.ErrUserEmailConflict):
			// Lost a first-sight race; the other request created the user.
			return s.userRepo.GetByEmail(ctx, email)
		default:
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: could not derive a free nickname for %s after %d attempts", ErrUserNicknameConflict, email, maxNicknameAttempts)
}

func nicknameFromEmail(email string) string {
	local := email
	if i := strings.IndexByte(email, '@'); i >= 0 {
		local = email[:i]
	}
	nick := nicknameStripper.ReplaceAllString(local, "")
	if len(nick) < minNicknameLength {
		nick = "player" + nick
	}
	if len(nick) > maxNicknameLength-3 {
		nick = nick[:maxNicknameLength-3]
	}
	return nick
}

func nicknameCandidate(base string, attempt int) string {
	if attempt == 1 {
		return base
	}
	return base + strconv.Itoa(attempt)
}

func (s *identityService) GetByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

func (s *identityService) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	user, err := s.userRepo.GetByNickname(ctx, strings.TrimSpace(nickname))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by nickname: %w", err)
	}
	return user, nil
}

func (s *identityService) SearchPlayers(ctx context.Context, prefix string, limit int) ([]models.User, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []models.User{}, nil
	}
	if limit <= 0 || limit > 50 {
		limit = defaultSearchLimit
	}
	return s.userRepo.SearchByNickname(ctx, prefix, limit)
}

func (s *identityService) UpdateProfile(ctx context.Context, actor *models.User, input UpdateProfileInput) (*models.User, error) {
	if actor == nil {
		return nil, ErrAuthenticationFailed
	}
	user, err := s.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if input.Nickname != nil {
		nick := strings.TrimSpace(*input.Nickname)
		if len(nick) < minNicknameLength || len(nick) > maxNicknameLength || !nicknamePattern.MatchString(nick) {
			return nil, fmt.Errorf("%w: nickname must be %d-%d letters, digits, '.', '_' or '-'",
				ErrValidationFailed, minNicknameLength, maxNicknameLength)
		}
		user.Nickname = nick
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone == "" {
			user.Phone = nil
		} else {
			user.Phone = &phone
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNicknameConflict):
			return nil, ErrUserNicknameConflict
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return user, nil
}

func (s *identityService) ListUsers(ctx context.Context, actor *models.User, filter models.UserFilter) (*models.UserListResponse, error) {
	if err := requireAdmin(s.authz, actor); err != nil {
		return nil, err
	}
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &models.UserListResponse{
		Users:      users,
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}, nil
}

func (s *identityService) DeleteUser(ctx context.Context, actor *models.User, userID int) error {
	if err := requireAdmin(s.authz, actor); err != nil {
		return err
	}
	if actor.ID == userID {
		return ErrCannotDeleteSelf
	}

	active, err := s.registrationRepo.CountNonRejectedByOwner(ctx, userID)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrUserOwnsRegisteredTeam
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user %d: %w", userID, err)
	}
	return nil
}
