package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Dosada05/esports-hub/config"
	"github.com/Dosada05/esports-hub/handlers"
	"github.com/Dosada05/esports-hub/notify"
	"github.com/Dosada05/esports-hub/routes"
	"github.com/Dosada05/esports-hub/services"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

type routerParams struct {
	fx.In

	Config   *config.Config
	Logger   zerolog.Logger
	Identity services.IdentityService

	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Team       *handlers.TeamHandler
	Invite     *handlers.InviteHandler
	Tournament *handlers.TournamentHandler
	Payment    *handlers.PaymentHandler
	Admin      *handlers.AdminHandler
	Dashboard  *handlers.DashboardHandler
	WebSocket  *handlers.WebSocketHandler
}

func newRouter(p routerParams) http.Handler {
	router := chi.NewRouter()
	routes.SetupRoutes(router, routes.Handlers{
		Auth:       p.Auth,
		User:       p.User,
		Team:       p.Team,
		Invite:     p.Invite,
		Tournament: p.Tournament,
		Payment:    p.Payment,
		Admin:      p.Admin,
		Dashboard:  p.Dashboard,
		WebSocket:  p.WebSocket,
	}, p.Identity, routes.Options{
		JWTSecret:      p.Config.JWTSecretKey,
		AllowedOrigins: p.Config.CORSAllowedOrigins,
		DevTokens:      p.Config.DevTokens,
	}, p.Logger)
	return router
}

// RunServer serves HTTP until the application stops.
func RunServer(lc fx.Lifecycle, cfg *config.Config, handler http.Handler, logger zerolog.Logger) {
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:     handler,
		ReadTimeout: 10 * time.Second,
		// websocket connections outlive any write timeout; the notify
		// client sets its own per-frame deadlines.
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
			}
			logger.Info().Str("address", srv.Addr).Msg("starting server")
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error().Err(err).Msg("server error")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Dur("timeout", shutdownTimeout).Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("graceful shutdown failed")
				return srv.Close()
			}
			logger.Info().Msg("server shutdown complete")
			return nil
		},
	})
}

// RunWorkers starts the notification hub, the telemetry publisher and the
// scheduler that advances tournament statuses and expires stale payments.
func RunWorkers(
	lc fx.Lifecycle,
	cfg *config.Config,
	hub *notify.Hub,
	telemetry *notify.Telemetry,
	tournaments services.TournamentService,
	payments services.PaymentService,
	logger zerolog.Logger,
) {
	ctx, cancel := context.WithCancel(context.Background())
	g, gctx := errgroup.WithContext(ctx)
	scheduler := newScheduler(tournaments, payments, cfg.SchedulerInterval, logger)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			g.Go(func() error {
				hub.Run(gctx)
				return nil
			})
			g.Go(func() error {
				telemetry.Run(gctx)
				return nil
			})
			g.Go(func() error {
				scheduler.Run(gctx)
				return nil
			})
			logger.Info().Dur("scheduler_interval", cfg.SchedulerInterval).Msg("background workers started")
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return g.Wait()
		},
	})
}
