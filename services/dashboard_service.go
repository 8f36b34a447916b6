package services

import (
	"context"
	"runtime"
	"time"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/repositories"
	"golang.org/x/sync/errgroup"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// PingFunc measures a database round trip.
type PingFunc func(ctx context.Context) (time.Duration, error)

type DashboardService interface {
	GetStats(ctx context.Context, actor *models.User) (*models.DashboardStats, error)
	// SystemStatus never fails; an unreachable database degrades the status.
	SystemStatus(ctx context.Context) *models.SystemStatus
}

type dashboardService struct {
	userRepo         repositories.UserRepository
	teamRepo         repositories.TeamRepository
	tournamentRepo   repositories.TournamentRepository
	paymentRepo      repositories.PaymentRepository
	registrationRepo repositories.RegistrationRepository
	authz            Authorizer
	ping             PingFunc
	region           string
	startedAt        time.Time
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	paymentRepo repositories.PaymentRepository,
	registrationRepo repositories.RegistrationRepository,
	authz Authorizer,
	ping PingFunc,
	region string,
) DashboardService {
	return &dashboardService{
		userRepo:         userRepo,
		teamRepo:         teamRepo,
		tournamentRepo:   tournamentRepo,
		paymentRepo:      paymentRepo,
		registrationRepo: registrationRepo,
		authz:            authz,
		ping:             ping,
		region:           region,
		startedAt:        time.Now(),
	}
}

func (s *dashboardService) GetStats(ctx context.Context, actor *models.User) (*models.DashboardStats, error) {
	if err := requireAdmin(s.authz, actor); err != nil {
		return nil, err
	}

	var (
		roles         map[models.UserRole]int
		teams         int
		tournaments   map[models.TournamentStatus]int
		payments      map[models.PaymentStatus]repositories.PaymentTotals
		registrations map[models.RegistrationStatus]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		roles, err = s.userRepo.CountByRole(gctx)
		return err
	})
	g.Go(func() (err error) {
		teams, err = s.teamRepo.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		tournaments, err = s.tournamentRepo.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		payments, err = s.paymentRepo.TotalsByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		registrations, err = s.registrationRepo.CountByStatus(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &models.DashboardStats{}
	stats.Users.Players = roles[models.RolePlayer]
	stats.Users.Admins = roles[models.RoleAdmin]
	stats.Users.Total = stats.Users.Players + stats.Users.Admins

	stats.Teams.Total = teams

	for _, n := range tournaments {
		stats.Tournaments.Total += n
	}
	stats.Tournaments.Active = tournaments[models.TournamentActive]
	stats.Tournaments.Upcoming = tournaments[models.TournamentUpcoming]
	stats.Tournaments.Ongoing = tournaments[models.TournamentOngoing]
	stats.Tournaments.Completed = tournaments[models.TournamentCompleted]

	for _, t := range payments {
		stats.Payments.Total += t.Count
		stats.Payments.TotalAmount += t.AmountCents
	}
	stats.Payments.Pending = payments[models.PaymentPending].Count
	stats.Payments.Paid = payments[models.PaymentPaid].Count
	stats.Payments.Cancelled = payments[models.PaymentCancelled].Count
	stats.Payments.Expired = payments[models.PaymentExpired].Count
	stats.Payments.PaidAmount = payments[models.PaymentPaid].AmountCents

	stats.Registrations.Pending = registrations[models.RegistrationPending]
	return stats, nil
}

func (s *dashboardService) SystemStatus(ctx context.Context) *models.SystemStatus {
	uptime := time.Since(s.startedAt)
	status := &models.SystemStatus{
		Status:        StatusOK,
		Database:      "connected",
		Region:        s.region,
		Platform:      runtime.GOOS + "/" + runtime.GOARCH,
		Timezone:      time.Local.String(),
		Uptime:        uptime,
		UptimeSeconds: int64(uptime.Seconds()),
		CheckedAt:     time.Now().UTC(),
	}

	latency, err := s.ping(ctx)
	if err != nil {
		status.Status = StatusDegraded
		status.Database = "unreachable"
		return status
	}
	status.DatabaseLatencyMS = latency.Milliseconds()
	return status
}
