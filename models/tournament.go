package models

import "time"

// TournamentStatus mirrors the tournament_status enum in the database.
type TournamentStatus string

const (
	TournamentActive    TournamentStatus = "ACTIVE"
	TournamentUpcoming  TournamentStatus = "UPCOMING"
	TournamentOngoing   TournamentStatus = "ONGOING"
	TournamentInactive  TournamentStatus = "INACTIVE"
	TournamentCompleted TournamentStatus = "COMPLETED"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case TournamentActive, TournamentUpcoming, TournamentOngoing, TournamentInactive, TournamentCompleted:
		return true
	}
	return false
}

// OpenForRegistration reports whether teams may still sign up.
func (s TournamentStatus) OpenForRegistration() bool {
	return s == TournamentActive || s == TournamentUpcoming
}

// MinTournamentTeams is the smallest bracket a tournament may be created with.
const MinTournamentTeams = 2

type Tournament struct {
	ID          int              `json:"id"`
	Name        string           `json:"name"`
	Game        string           `json:"game"`
	Description *string          `json:"description,omitempty"`
	PriceCents  int64            `json:"price_cents"`
	PrizePool   int64            `json:"prize_pool_cents"`
	MaxTeams    int              `json:"max_teams"`
	Status      TournamentStatus `json:"status"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	CreatedAt   time.Time        `json:"created_at"`

	// RegisteredTeams counts PENDING and APPROVED registrations.
	RegisteredTeams int `json:"registered_teams"`
}

type ListTournamentsFilter struct {
	Statuses []TournamentStatus
	Game     *string
	Limit    int
	Offset   int
}
