package models

import "time"

// MaxTeamHeadcount is the roster limit, owner included.
const MaxTeamHeadcount = 5

// MaxTeamMembers is the number of non-owner seats.
const MaxTeamMembers = MaxTeamHeadcount - 1

type Team struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Game      string    `json:"game"`
	OwnerID   int       `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`

	LogoKey *string `json:"-"`
	LogoURL *string `json:"logo_url,omitempty"`

	Owner         *User          `json:"owner,omitempty"`
	Members       []TeamMember   `json:"members,omitempty"`
	Registrations []Registration `json:"registrations,omitempty"`
	Payments      []Payment      `json:"payments,omitempty"`

	// Derived from the latest registration and payment.
	RegistrationStatus *RegistrationStatus `json:"registration_status,omitempty"`
	PaymentStatus      *PaymentStatus      `json:"payment_status,omitempty"`
}

// Headcount counts the owner plus loaded members.
func (t *Team) Headcount() int {
	return 1 + len(t.Members)
}

type TeamMember struct {
	TeamID   int       `json:"team_id"`
	UserID   int       `json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
	User     *User     `json:"user,omitempty"`
}
