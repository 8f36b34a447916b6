package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// StatusFunc produces the payload of a system.status event.
type StatusFunc func(ctx context.Context) (interface{}, error)

// Telemetry periodically pushes system status to the admin room while it
// has subscribers.
type Telemetry struct {
	hub      *Hub
	status   StatusFunc
	interval time.Duration
	logger   zerolog.Logger
}

func NewTelemetry(hub *Hub, status StatusFunc, interval time.Duration, logger zerolog.Logger) *Telemetry {
	return &Telemetry{
		hub:      hub,
		status:   status,
		interval: interval,
		logger:   logger.With().Str("component", "telemetry").Logger(),
	}
}

func (t *Telemetry) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Tick(ctx)
		}
	}
}

// Tick publishes one status sample if anyone is listening.
func (t *Telemetry) Tick(ctx context.Context) {
	if t.hub.RoomSize(AdminRoom) == 0 {
		return
	}
	status, err := t.status(ctx)
	if err != nil {
		t.logger.Warn().Err(err).Msg("failed to collect system status")
		return
	}
	t.hub.Publish(EventSystemStatus, status, AdminRoom)
}
