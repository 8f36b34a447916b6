package models

import "time"

type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "PENDING"
	RegistrationApproved RegistrationStatus = "APPROVED"
	RegistrationRejected RegistrationStatus = "REJECTED"
)

// HoldsSlot reports whether the registration counts against max_teams.
func (s RegistrationStatus) HoldsSlot() bool {
	return s == RegistrationPending || s == RegistrationApproved
}

type Registration struct {
	ID           int                `json:"id"`
	TeamID       int                `json:"team_id"`
	TournamentID int                `json:"tournament_id"`
	Status       RegistrationStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`

	Team       *Team       `json:"team,omitempty"`
	Tournament *Tournament `json:"tournament,omitempty"`
}

type TournamentTeams struct {
	TournamentID int            `json:"tournament_id"`
	Teams        []Registration `json:"teams"`
	Total        int            `json:"total"`
	MaxTeams     int            `json:"max_teams"`
}
