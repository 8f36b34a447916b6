package services

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/repositories"
	"github.com/Dosada05/esports-hub/storage"
)

// memStore is an in-memory stand-in for the Postgres schema, including its
// unique and foreign-key constraints.
type memStore struct {
	mu     sync.Mutex
	nextID int
	clock  func() time.Time

	users         map[int]models.User
	teams         map[int]models.Team
	members       map[int]map[int]time.Time
	tournaments   map[int]models.Tournament
	registrations map[int]models.Registration
	payments      map[int]models.Payment
	invites       map[int]models.Invite
}

func newMemStore(clock func() time.Time) *memStore {
	return &memStore{
		clock:         clock,
		users:         map[int]models.User{},
		teams:         map[int]models.Team{},
		members:       map[int]map[int]time.Time{},
		tournaments:   map[int]models.Tournament{},
		registrations: map[int]models.Registration{},
		payments:      map[int]models.Payment{},
		invites:       map[int]models.Invite{},
	}
}

func (s *memStore) id() int {
	s.nextID++
	return s.nextID
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type memSnapshot struct {
	nextID        int
	users         map[int]models.User
	teams         map[int]models.Team
	members       map[int]map[int]time.Time
	tournaments   map[int]models.Tournament
	registrations map[int]models.Registration
	payments      map[int]models.Payment
	invites       map[int]models.Invite
}

func (s *memStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	members := make(map[int]map[int]time.Time, len(s.members))
	for k, v := range s.members {
		members[k] = copyMap(v)
	}
	return memSnapshot{
		nextID:        s.nextID,
		users:         copyMap(s.users),
		teams:         copyMap(s.teams),
		members:       members,
		tournaments:   copyMap(s.tournaments),
		registrations: copyMap(s.registrations),
		payments:      copyMap(s.payments),
		invites:       copyMap(s.invites),
	}
}

func (s *memStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = snap.nextID
	s.users = snap.users
	s.teams = snap.teams
	s.members = snap.members
	s.tournaments = snap.tournaments
	s.registrations = snap.registrations
	s.payments = snap.payments
	s.invites = snap.invites
}

// fakeTransactor serialises transactions and rolls the store back on error.
type fakeTransactor struct {
	mu    sync.Mutex
	store *memStore
}

func (t *fakeTransactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := t.store.snapshot()
	if err := fn(nil); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}

func paginate(limit, offset, n int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := offset + limit
	if end > n {
		end = n
	}
	return offset, end
}

// --- users ---

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return repositories.ErrUserEmailConflict
		}
		if existing.Nickname == u.Nickname {
			return repositories.ErrUserNicknameConflict
		}
	}
	u.ID = r.s.id()
	u.CreatedAt = r.s.clock()
	if u.Role == "" {
		u.Role = models.RolePlayer
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *fakeUserRepo) find(match func(models.User) bool) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *fakeUserRepo) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return r.find(func(u models.User) bool { return strings.EqualFold(u.Nickname, nickname) })
}

func (r *fakeUserRepo) SearchByNickname(ctx context.Context, prefix string, limit int) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.User{}
	for _, u := range r.s.users {
		if strings.HasPrefix(strings.ToLower(u.Nickname), strings.ToLower(prefix)) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nickname < out[j].Nickname })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.users[u.ID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	for id, other := range r.s.users {
		if id != u.ID && other.Nickname == u.Nickname {
			return repositories.ErrUserNicknameConflict
		}
	}
	existing.Nickname = u.Nickname
	existing.Name = u.Name
	existing.Phone = u.Phone
	existing.ImageURL = u.ImageURL
	existing.Role = u.Role
	r.s.users[u.ID] = existing
	return nil
}

func (r *fakeUserRepo) UpdateGameProfile(ctx context.Context, userID int, p models.GameProfile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	coalesce := func(dst **string, src *string) {
		if src != nil {
			v := *src
			*dst = &v
		}
	}
	coalesce(&u.SteamID, p.SteamID)
	coalesce(&u.Whatsapp, p.Whatsapp)
	coalesce(&u.CurrentEloGC, p.CurrentEloGC)
	coalesce(&u.PeakRankFaceit, p.PeakRankFaceit)
	coalesce(&u.Instagram, p.Instagram)
	r.s.users[userID] = u
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repositories.ErrUserNotFound
	}
	delete(r.s.users, id)
	for _, m := range r.s.members {
		delete(m, id)
	}
	for teamID, t := range r.s.teams {
		if t.OwnerID == id {
			deleteTeamLocked(r.s, teamID)
		}
	}
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, f models.UserFilter) ([]models.User, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := []models.User{}
	for _, u := range r.s.users {
		if f.Role != nil && u.Role != *f.Role {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(u.Nickname+" "+u.Email+" "+u.Name), strings.ToLower(f.Search)) {
			continue
		}
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	from, to := paginate(f.Limit, f.Offset, len(all))
	return all[from:to], len(all), nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context) (map[models.UserRole]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[models.UserRole]int{}
	for _, u := range r.s.users {
		out[u.Role]++
	}
	return out, nil
}

// --- teams ---

type fakeTeamRepo struct{ s *memStore }

func deleteTeamLocked(s *memStore, teamID int) {
	delete(s.teams, teamID)
	delete(s.members, teamID)
	for id, reg := range s.registrations {
		if reg.TeamID == teamID {
			delete(s.registrations, id)
		}
	}
	for id, p := range s.payments {
		if p.TeamID == teamID {
			delete(s.payments, id)
		}
	}
	for id, inv := range s.invites {
		if inv.TeamID == teamID {
			delete(s.invites, id)
		}
	}
}

func (r *fakeTeamRepo) Create(ctx context.Context, t *models.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.teams {
		if other.Name == t.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	if _, ok := r.s.users[t.OwnerID]; !ok {
		return repositories.ErrTeamOwnerInvalid
	}
	t.ID = r.s.id()
	t.CreatedAt = r.s.clock()
	r.s.teams[t.ID] = models.Team{ID: t.ID, Name: t.Name, Game: t.Game, OwnerID: t.OwnerID, LogoKey: t.LogoKey, CreatedAt: t.CreatedAt}
	return nil
}

func (r *fakeTeamRepo) GetByID(ctx context.Context, id int) (*models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &t, nil
}

func (r *fakeTeamRepo) LockByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Team, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeTeamRepo) collect(match func(models.Team) bool) []models.Team {
	out := []models.Team{}
	for _, t := range r.s.teams {
		if match(t) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *fakeTeamRepo) ListByUser(ctx context.Context, userID int) ([]models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.collect(func(t models.Team) bool {
		_, member := r.s.members[t.ID][userID]
		return t.OwnerID == userID || member
	}), nil
}

func (r *fakeTeamRepo) ListByOwner(ctx context.Context, ownerID int) ([]models.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.collect(func(t models.Team) bool { return t.OwnerID == ownerID }), nil
}

func (r *fakeTeamRepo) List(ctx context.Context, limit, offset int) ([]models.Team, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.collect(func(models.Team) bool { return true })
	from, to := paginate(limit, offset, len(all))
	return all[from:to], len(all), nil
}

func (r *fakeTeamRepo) Update(ctx context.Context, t *models.Team) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.teams[t.ID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	for id, other := range r.s.teams {
		if id != t.ID && other.Name == t.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	existing.Name = t.Name
	existing.Game = t.Game
	r.s.teams[t.ID] = existing
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(ctx context.Context, teamID int, key *string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.LogoKey = key
	r.s.teams[teamID] = t
	return nil
}

func (r *fakeTeamRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	deleteTeamLocked(r.s, id)
	return nil
}

func (r *fakeTeamRepo) Count(ctx context.Context) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.teams), nil
}

func (r *fakeTeamRepo) ListMembers(ctx context.Context, teamID int) ([]models.TeamMember, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.TeamMember{}
	for userID, joined := range r.s.members[teamID] {
		u := r.s.users[userID]
		out = append(out, models.TeamMember{TeamID: teamID, UserID: userID, JoinedAt: joined, User: &u})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *fakeTeamRepo) CountMembers(ctx context.Context, exec repositories.SQLExecutor, teamID int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.members[teamID]), nil
}

func (r *fakeTeamRepo) AddMember(ctx context.Context, exec repositories.SQLExecutor, teamID, userID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.teams[teamID]; !ok {
		return repositories.ErrTeamNotFound
	}
	if _, ok := r.s.users[userID]; !ok {
		return repositories.ErrTeamMemberUserInvalid
	}
	if r.s.members[teamID] == nil {
		r.s.members[teamID] = map[int]time.Time{}
	}
	if _, ok := r.s.members[teamID][userID]; ok {
		return repositories.ErrTeamMemberConflict
	}
	r.s.members[teamID][userID] = r.s.clock()
	return nil
}

func (r *fakeTeamRepo) RemoveMember(ctx context.Context, teamID, userID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.members[teamID][userID]; !ok {
		return repositories.ErrTeamMemberNotFound
	}
	delete(r.s.members[teamID], userID)
	return nil
}

func (r *fakeTeamRepo) IsMember(ctx context.Context, teamID, userID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.members[teamID][userID]
	return ok, nil
}

// --- tournaments ---

type fakeTournamentRepo struct{ s *memStore }

func (r *fakeTournamentRepo) withCount(t models.Tournament) models.Tournament {
	t.RegisteredTeams = 0
	for _, reg := range r.s.registrations {
		if reg.TournamentID == t.ID && reg.Status.HoldsSlot() {
			t.RegisteredTeams++
		}
	}
	return t
}

func (r *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = r.s.id()
	t.CreatedAt = r.s.clock()
	r.s.tournaments[t.ID] = *t
	return nil
}

func (r *fakeTournamentRepo) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	t = r.withCount(t)
	return &t, nil
}

func (r *fakeTournamentRepo) LockByID(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Tournament, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeTournamentRepo) List(ctx context.Context, f models.ListTournamentsFilter) ([]models.Tournament, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := []models.Tournament{}
	for _, t := range r.s.tournaments {
		if len(f.Statuses) > 0 {
			found := false
			for _, st := range f.Statuses {
				found = found || st == t.Status
			}
			if !found {
				continue
			}
		}
		if f.Game != nil && t.Game != *f.Game {
			continue
		}
		all = append(all, r.withCount(t))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	from, to := paginate(f.Limit, f.Offset, len(all))
	return all[from:to], len(all), nil
}

func (r *fakeTournamentRepo) Update(ctx context.Context, exec repositories.SQLExecutor, t *models.Tournament) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.tournaments[t.ID]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	updated := *t
	updated.CreatedAt = existing.CreatedAt
	r.s.tournaments[t.ID] = updated
	return nil
}

func (r *fakeTournamentRepo) UpdateStatus(ctx context.Context, id int, status models.TournamentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	r.s.tournaments[id] = t
	return nil
}

func (r *fakeTournamentRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.s.tournaments, id)
	for rid, reg := range r.s.registrations {
		if reg.TournamentID == id {
			delete(r.s.registrations, rid)
		}
	}
	for pid, p := range r.s.payments {
		if p.TournamentID == id {
			delete(r.s.payments, pid)
		}
	}
	return nil
}

func (r *fakeTournamentRepo) CountByStatus(ctx context.Context) (map[models.TournamentStatus]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[models.TournamentStatus]int{}
	for _, t := range r.s.tournaments {
		out[t.Status]++
	}
	return out, nil
}

func (r *fakeTournamentRepo) ListForAutoStatusUpdate(ctx context.Context, now time.Time) ([]models.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Tournament
	for _, t := range r.s.tournaments {
		if (t.Status.OpenForRegistration() && !t.StartDate.After(now)) ||
			(t.Status == models.TournamentOngoing && !t.EndDate.After(now)) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- registrations ---

type fakeRegistrationRepo struct{ s *memStore }

func (r *fakeRegistrationRepo) Create(ctx context.Context, exec repositories.SQLExecutor, reg *models.Registration) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.teams[reg.TeamID]; !ok {
		return repositories.ErrRegistrationRefInvalid
	}
	if _, ok := r.s.tournaments[reg.TournamentID]; !ok {
		return repositories.ErrRegistrationRefInvalid
	}
	for _, other := range r.s.registrations {
		if other.TeamID == reg.TeamID && other.TournamentID == reg.TournamentID {
			return repositories.ErrRegistrationConflict
		}
	}
	reg.ID = r.s.id()
	reg.CreatedAt = r.s.clock()
	reg.UpdatedAt = reg.CreatedAt
	stored := *reg
	stored.Team, stored.Tournament = nil, nil
	r.s.registrations[reg.ID] = stored
	return nil
}

func (r *fakeRegistrationRepo) GetByTeamAndTournament(ctx context.Context, exec repositories.SQLExecutor, teamID, tournamentID int) (*models.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, reg := range r.s.registrations {
		if reg.TeamID == teamID && reg.TournamentID == tournamentID {
			reg := reg
			return &reg, nil
		}
	}
	return nil, repositories.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) CountActive(ctx context.Context, exec repositories.SQLExecutor, tournamentID int) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, reg := range r.s.registrations {
		if reg.TournamentID == tournamentID && reg.Status.HoldsSlot() {
			n++
		}
	}
	return n, nil
}

func (r *fakeRegistrationRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, from, to models.RegistrationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reg, ok := r.s.registrations[id]
	if !ok || reg.Status != from {
		return repositories.ErrRegistrationStatusChanged
	}
	reg.Status = to
	reg.UpdatedAt = r.s.clock()
	r.s.registrations[id] = reg
	return nil
}

func (r *fakeRegistrationRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.registrations[id]; !ok {
		return repositories.ErrRegistrationNotFound
	}
	delete(r.s.registrations, id)
	return nil
}

func (r *fakeRegistrationRepo) list(match func(models.Registration) bool) []models.Registration {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Registration{}
	for _, reg := range r.s.registrations {
		if !match(reg) {
			continue
		}
		team := r.s.teams[reg.TeamID]
		tour := r.s.tournaments[reg.TournamentID]
		reg.Team = &team
		reg.Tournament = &tour
		out = append(out, reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *fakeRegistrationRepo) ListByTournament(ctx context.Context, tournamentID int) ([]models.Registration, error) {
	return r.list(func(reg models.Registration) bool { return reg.TournamentID == tournamentID }), nil
}

func (r *fakeRegistrationRepo) ListByTeam(ctx context.Context, teamID int) ([]models.Registration, error) {
	return r.list(func(reg models.Registration) bool { return reg.TeamID == teamID }), nil
}

func (r *fakeRegistrationRepo) ListByStatus(ctx context.Context, status models.RegistrationStatus) ([]models.Registration, error) {
	return r.list(func(reg models.Registration) bool { return reg.Status == status }), nil
}

func (r *fakeRegistrationRepo) CountNonRejectedByTeam(ctx context.Context, teamID int) (int, error) {
	return len(r.list(func(reg models.Registration) bool {
		return reg.TeamID == teamID && reg.Status != models.RegistrationRejected
	})), nil
}

func (r *fakeRegistrationRepo) CountNonRejectedByOwner(ctx context.Context, ownerID int) (int, error) {
	regs := r.list(func(reg models.Registration) bool { return reg.Status != models.RegistrationRejected })
	n := 0
	for _, reg := range regs {
		if reg.Team.OwnerID == ownerID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRegistrationRepo) LatestActiveForTeam(ctx context.Context, teamID int) (*models.Registration, error) {
	regs := r.list(func(reg models.Registration) bool {
		return reg.TeamID == teamID && reg.Status != models.RegistrationRejected
	})
	if len(regs) == 0 {
		return nil, repositories.ErrRegistrationNotFound
	}
	latest := regs[len(regs)-1]
	return &latest, nil
}

func (r *fakeRegistrationRepo) CountByStatus(ctx context.Context) (map[models.RegistrationStatus]int, error) {
	out := map[models.RegistrationStatus]int{}
	for _, reg := range r.list(func(models.Registration) bool { return true }) {
		out[reg.Status]++
	}
	return out, nil
}

// --- payments ---

type fakePaymentRepo struct{ s *memStore }

func (r *fakePaymentRepo) Create(ctx context.Context, exec repositories.SQLExecutor, p *models.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.payments {
		if other.Reference == p.Reference {
			return repositories.ErrPaymentReferenceConflict
		}
		if other.TeamID == p.TeamID && other.TournamentID == p.TournamentID && other.Status == p.Status {
			switch p.Status {
			case models.PaymentPending:
				return repositories.ErrPaymentPendingConflict
			case models.PaymentPaid:
				return repositories.ErrPaymentPaidConflict
			}
		}
	}
	p.ID = r.s.id()
	p.CreatedAt = r.s.clock()
	stored := *p
	stored.Team, stored.Tournament = nil, nil
	r.s.payments[p.ID] = stored
	return nil
}

func (r *fakePaymentRepo) GetByID(ctx context.Context, id int) (*models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return nil, repositories.ErrPaymentNotFound
	}
	return &p, nil
}

func (r *fakePaymentRepo) sorted(match func(models.Payment) bool) []models.Payment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Payment{}
	for _, p := range r.s.payments {
		if match(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *fakePaymentRepo) FindByTeamTournamentStatus(ctx context.Context, exec repositories.SQLExecutor, teamID, tournamentID int, status models.PaymentStatus) (*models.Payment, error) {
	ps := r.sorted(func(p models.Payment) bool {
		return p.TeamID == teamID && p.TournamentID == tournamentID && p.Status == status
	})
	if len(ps) == 0 {
		return nil, repositories.ErrPaymentNotFound
	}
	return &ps[0], nil
}

func (r *fakePaymentRepo) FindPendingByTeam(ctx context.Context, teamID int) (*models.Payment, error) {
	ps := r.sorted(func(p models.Payment) bool { return p.TeamID == teamID && p.Status == models.PaymentPending })
	if len(ps) == 0 {
		return nil, repositories.ErrPaymentNotFound
	}
	return &ps[0], nil
}

func (r *fakePaymentRepo) TransitionStatus(ctx context.Context, exec repositories.SQLExecutor, id int, from, to models.PaymentStatus, paidAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok || p.Status != from {
		return repositories.ErrPaymentStatusChanged
	}
	if to == models.PaymentPaid {
		for otherID, other := range r.s.payments {
			if otherID != id && other.TeamID == p.TeamID && other.TournamentID == p.TournamentID && other.Status == models.PaymentPaid {
				return repositories.ErrPaymentPaidConflict
			}
		}
	}
	p.Status = to
	p.PaidAt = paidAt
	r.s.payments[id] = p
	return nil
}

func (r *fakePaymentRepo) ListByTeam(ctx context.Context, teamID int) ([]models.Payment, error) {
	return r.sorted(func(p models.Payment) bool { return p.TeamID == teamID }), nil
}

func (r *fakePaymentRepo) List(ctx context.Context, f models.PaymentFilter) ([]models.Payment, int, error) {
	all := r.sorted(func(p models.Payment) bool { return f.Status == nil || p.Status == *f.Status })
	from, to := paginate(f.Limit, f.Offset, len(all))
	return all[from:to], len(all), nil
}

func (r *fakePaymentRepo) ExpireStale(ctx context.Context, now time.Time) ([]models.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Payment
	for id, p := range r.s.payments {
		if p.Status == models.PaymentPending && !p.ExpiresAt.After(now) {
			p.Status = models.PaymentExpired
			r.s.payments[id] = p
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) TotalsByStatus(ctx context.Context) (map[models.PaymentStatus]repositories.PaymentTotals, error) {
	out := map[models.PaymentStatus]repositories.PaymentTotals{}
	for _, p := range r.sorted(func(models.Payment) bool { return true }) {
		t := out[p.Status]
		t.Count++
		t.AmountCents += p.AmountCents
		out[p.Status] = t
	}
	return out, nil
}

// --- invites ---

type fakeInviteRepo struct{ s *memStore }

func (r *fakeInviteRepo) Create(ctx context.Context, inv *models.Invite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.teams[inv.TeamID]; !ok {
		return repositories.ErrTeamNotFound
	}
	for _, other := range r.s.invites {
		if other.TeamID == inv.TeamID && other.RecipientEmail == inv.RecipientEmail && other.Status == models.InvitePending {
			return repositories.ErrInvitePendingExists
		}
	}
	inv.ID = r.s.id()
	inv.CreatedAt = r.s.clock()
	stored := *inv
	stored.Team, stored.Sender = nil, nil
	r.s.invites[inv.ID] = stored
	return nil
}

func (r *fakeInviteRepo) GetByID(ctx context.Context, id int) (*models.Invite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invites[id]
	if !ok {
		return nil, repositories.ErrInviteNotFound
	}
	return &inv, nil
}

func (r *fakeInviteRepo) list(match func(models.Invite) bool) []models.Invite {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []models.Invite{}
	for _, inv := range r.s.invites {
		if match(inv) {
			team := r.s.teams[inv.TeamID]
			inv.Team = &team
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *fakeInviteRepo) ListByRecipient(ctx context.Context, email string) ([]models.Invite, error) {
	return r.list(func(inv models.Invite) bool { return inv.RecipientEmail == email }), nil
}

func (r *fakeInviteRepo) ListByTeam(ctx context.Context, teamID int) ([]models.Invite, error) {
	return r.list(func(inv models.Invite) bool { return inv.TeamID == teamID }), nil
}

func (r *fakeInviteRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id int, from, to models.InviteStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.invites[id]
	if !ok || inv.Status != from {
		return repositories.ErrInviteStatusChanged
	}
	now := r.s.clock()
	inv.Status = to
	inv.RespondedAt = &now
	r.s.invites[id] = inv
	return nil
}

// --- collaborators ---

type publishedEvent struct {
	Type  string
	Rooms []string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(eventType string, payload interface{}, rooms ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Rooms: rooms})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type memUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemUploader() *memUploader {
	return &memUploader{objects: map[string][]byte{}}
}

func (u *memUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = buf.Bytes()
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *memUploader) Delete(ctx context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	return nil
}

func (u *memUploader) GetPublicURL(key string) string {
	return storage.PublicURL("https://cdn.test", key)
}
