package app

import (
	"context"
	"database/sql"
	"time"

	"github.com/Dosada05/esports-hub/config"
	"github.com/Dosada05/esports-hub/db"
	"github.com/Dosada05/esports-hub/handlers"
	"github.com/Dosada05/esports-hub/logger"
	"github.com/Dosada05/esports-hub/notify"
	"github.com/Dosada05/esports-hub/repositories"
	"github.com/Dosada05/esports-hub/services"
	"github.com/Dosada05/esports-hub/storage"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const dbConnectTimeout = 5 * time.Second

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(newLogger),
	fx.Provide(newDatabase),
	// repos
	fx.Provide(repositories.NewPostgresTransactor),
	fx.Provide(repositories.NewPostgresUserRepository),
	fx.Provide(repositories.NewPostgresTeamRepository),
	fx.Provide(repositories.NewPostgresTournamentRepository),
	fx.Provide(repositories.NewPostgresRegistrationRepository),
	fx.Provide(repositories.NewPostgresPaymentRepository),
	fx.Provide(repositories.NewPostgresInviteRepository),
	// infra
	fx.Provide(newHub),
	fx.Provide(newPublisher),
	fx.Provide(newUploader),
	fx.Provide(newTelemetry),
	// svc
	fx.Provide(services.NewRoleAuthorizer),
	fx.Provide(newAdminPolicy),
	fx.Provide(newPaymentConfig),
	fx.Provide(services.NewIdentityService),
	fx.Provide(services.NewTeamService),
	fx.Provide(services.NewMembershipService),
	fx.Provide(services.NewInviteService),
	fx.Provide(services.NewTournamentService),
	fx.Provide(services.NewRegistrationService),
	fx.Provide(services.NewPaymentService),
	fx.Provide(newDashboardService),
	// http
	fx.Provide(newAuthHandler),
	fx.Provide(handlers.NewUserHandler),
	fx.Provide(handlers.NewTeamHandler),
	fx.Provide(handlers.NewInviteHandler),
	fx.Provide(handlers.NewTournamentHandler),
	fx.Provide(handlers.NewPaymentHandler),
	fx.Provide(handlers.NewAdminHandler),
	fx.Provide(handlers.NewDashboardHandler),
	fx.Provide(newWebSocketHandler),
	fx.Provide(newRouter),
)

func newLogger(cfg *config.Config) zerolog.Logger {
	return logger.New(cfg.LogLevel).With().Str("env", cfg.Environment).Logger()
}

func newDatabase(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*sql.DB, error) {
	conn, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		return nil, err
	}
	logger.Info().Msg("database connection established")

	if err := db.Migrate(conn, logger); err != nil {
		_ = conn.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			if err := conn.Close(); err != nil {
				logger.Error().Err(err).Msg("failed to close database connection")
				return err
			}
			logger.Info().Msg("database connection closed")
			return nil
		},
	})
	return conn, nil
}

func newHub(logger zerolog.Logger) *notify.Hub {
	return notify.NewHub(logger)
}

func newPublisher(hub *notify.Hub) notify.Publisher {
	return hub
}

// newUploader returns a nil uploader when R2 is not configured; logo
// uploads then fail with ErrStorageUnavailable.
func newUploader(cfg *config.Config, logger zerolog.Logger) (storage.FileUploader, error) {
	if !cfg.StorageEnabled() {
		logger.Warn().Msg("R2 storage is not configured, team logo uploads are disabled")
		return nil, nil
	}

	uploader, err := storage.NewR2Uploader(context.Background(), storage.R2Config{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		return nil, err
	}
	logger.Info().Str("bucket", cfg.R2BucketName).Msg("Cloudflare R2 uploader initialized")
	return uploader, nil
}

func newAdminPolicy(cfg *config.Config) services.AdminPolicy {
	return services.NewAdminPolicy(cfg.AdminEmails)
}

func newPaymentConfig(cfg *config.Config) services.PaymentConfig {
	return services.PaymentConfig{
		PixKey:       cfg.PixKey,
		MerchantName: cfg.PixMerchantName,
		MerchantCity: cfg.PixMerchantCity,
		TTL:          cfg.PaymentTTL,
		AutoApprove:  cfg.PaymentAutoApprove,
		Development:  !cfg.IsProduction(),
	}
}

func newDashboardService(
	cfg *config.Config,
	conn *sql.DB,
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	paymentRepo repositories.PaymentRepository,
	registrationRepo repositories.RegistrationRepository,
	authz services.Authorizer,
) services.DashboardService {
	ping := func(ctx context.Context) (time.Duration, error) {
		return db.Ping(ctx, conn)
	}
	return services.NewDashboardService(userRepo, teamRepo, tournamentRepo, paymentRepo, registrationRepo, authz, ping, cfg.ServerRegion)
}

func newTelemetry(cfg *config.Config, hub *notify.Hub, dashboard services.DashboardService, logger zerolog.Logger) *notify.Telemetry {
	status := func(ctx context.Context) (interface{}, error) {
		return dashboard.SystemStatus(ctx), nil
	}
	return notify.NewTelemetry(hub, status, cfg.TelemetryInterval, logger)
}

func newAuthHandler(cfg *config.Config) *handlers.AuthHandler {
	return handlers.NewAuthHandler(cfg.JWTSecretKey)
}

func newWebSocketHandler(cfg *config.Config, hub *notify.Hub, teams services.TeamService, membership services.MembershipService) *handlers.WebSocketHandler {
	return handlers.NewWebSocketHandler(hub, teams, membership, cfg.CORSAllowedOrigins)
}
