package models

import "time"

type DashboardStats struct {
	Users struct {
		Total   int `json:"total"`
		Players int `json:"players"`
		Admins  int `json:"admins"`
	} `json:"users"`
	Teams struct {
		Total int `json:"total"`
	} `json:"teams"`
	Tournaments struct {
		Total     int `json:"total"`
		Active    int `json:"active"`
		Upcoming  int `json:"upcoming"`
		Ongoing   int `json:"ongoing"`
		Completed int `json:"completed"`
	} `json:"tournaments"`
	Payments struct {
		Total       int   `json:"total"`
		Pending     int   `json:"pending"`
		Paid        int   `json:"paid"`
		Cancelled   int   `json:"cancelled"`
		Expired     int   `json:"expired"`
		TotalAmount int64 `json:"total_amount_cents"`
		PaidAmount  int64 `json:"paid_amount_cents"`
	} `json:"payments"`
	Registrations struct {
		Pending int `json:"pending"`
	} `json:"registrations"`
}

type SystemStatus struct {
	Status            string        `json:"status"`
	DatabaseLatencyMS int64         `json:"database_latency_ms"`
	Database          string        `json:"database"`
	Region            string        `json:"region"`
	Platform          string        `json:"platform"`
	Timezone          string        `json:"timezone"`
	Uptime            time.Duration `json:"-"`
	UptimeSeconds     int64         `json:"uptime"`
	CheckedAt         time.Time     `json:"checked_at"`
}
