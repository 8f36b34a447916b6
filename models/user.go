package models

import "time"

type UserRole string

const (
	RolePlayer UserRole = "PLAYER"
	RoleAdmin  UserRole = "ADMIN"
)

type User struct {
	ID        int       `json:"id"`
	Nickname  string    `json:"nickname"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`

	GameProfile
}

// GameProfile holds the external-game identifiers and contact handles a
// team owner keeps for each roster member.
type GameProfile struct {
	SteamID        *string `json:"steam_id,omitempty"`
	Whatsapp       *string `json:"whatsapp,omitempty"`
	CurrentEloGC   *string `json:"current_elo_gc,omitempty"`
	PeakRankFaceit *string `json:"peak_rank_faceit,omitempty"`
	Instagram      *string `json:"instagram,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Principal is the identity asserted by the identity provider token.
type Principal struct {
	Email string
	Name  string
	Image string
}

type UserFilter struct {
	Search string
	Role   *UserRole
	Limit  int
	Offset int
}

type UserListResponse struct {
	Users      []User `json:"users"`
	TotalCount int    `json:"total_count"`
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
}
