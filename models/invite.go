package models

import "time"

type InviteStatus string

const (
	InvitePending  InviteStatus = "PENDING"
	InviteAccepted InviteStatus = "ACCEPTED"
	InviteDeclined InviteStatus = "DECLINED"
)

type Invite struct {
	ID             int          `json:"id"`
	TeamID         int          `json:"team_id"`
	SenderID       int          `json:"sender_id"`
	RecipientEmail string       `json:"recipient_email"`
	Status         InviteStatus `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	RespondedAt    *time.Time   `json:"responded_at,omitempty"`

	Team   *Team `json:"team,omitempty"`
	Sender *User `json:"sender,omitempty"`
}
