package models

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentPaid      PaymentStatus = "PAID"
	PaymentRejected  PaymentStatus = "REJECTED"
	PaymentCancelled PaymentStatus = "CANCELLED"
	PaymentExpired   PaymentStatus = "EXPIRED"
)

// CanTransition reports whether a payment may move from s to next.
// Only PENDING has outgoing edges.
func (s PaymentStatus) CanTransition(next PaymentStatus) bool {
	if s != PaymentPending {
		return false
	}
	switch next {
	case PaymentPaid, PaymentRejected, PaymentCancelled, PaymentExpired:
		return true
	}
	return false
}

type Payment struct {
	ID           int           `json:"id"`
	TeamID       int           `json:"team_id"`
	TournamentID int           `json:"tournament_id"`
	AmountCents  int64         `json:"amount_cents"`
	Status       PaymentStatus `json:"status"`
	Reference    string        `json:"reference"`
	PixCode      string        `json:"pix_code"`
	CreatedAt    time.Time     `json:"created_at"`
	ExpiresAt    time.Time     `json:"expires_at"`
	PaidAt       *time.Time    `json:"paid_at,omitempty"`

	IsDevelopment bool `json:"is_development"`

	Team       *Team       `json:"team,omitempty"`
	Tournament *Tournament `json:"tournament,omitempty"`
}

type PaymentFilter struct {
	Status *PaymentStatus
	Limit  int
	Offset int
}
