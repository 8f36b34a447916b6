package routes

import (
	"net/http"

	_ "github.com/Dosada05/esports-hub/docs"
	"github.com/Dosada05/esports-hub/handlers"
	"github.com/Dosada05/esports-hub/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
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

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	// DevTokens mounts POST /dev/token; never enabled in production.
	DevTokens bool
}

func SetupRoutes(router chi.Router, h Handlers, resolver middleware.PrincipalResolver, opts Options, logger zerolog.Logger) {
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestID(logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(opts.JWTSecret, resolver)

	router.Get("/health", h.Dashboard.Health)
	router.Get("/swagger/*", httpSwagger.WrapHandler)
	if opts.DevTokens {
		router.Post("/dev/token", h.Auth.DevToken)
	}
	router.With(authenticate).Get("/ws", h.WebSocket.ServeWs)

	// Публичные маршруты
	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.Tournament.ListTournaments)
		r.Get("/open", h.Tournament.ListOpenTournaments)
		r.Get("/{tournamentID}", h.Tournament.GetTournament)
		r.Get("/{tournamentID}/teams", h.Tournament.ListTournamentTeams)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/{tournamentID}/register", h.Tournament.Register)
			r.Delete("/{tournamentID}/register/{teamID}", h.Tournament.Withdraw)
		})
	})
	router.Get("/players/search", h.User.SearchPlayers)
	router.Get("/players/{nickname}", h.User.GetPlayer)

	// Маршруты для аутентифицированных пользователей
	router.Group(func(r chi.Router) {
		r.Use(authenticate)

		r.Route("/me", func(r chi.Router) {
			r.Get("/", h.User.Me)
			r.Patch("/", h.User.UpdateMe)
			r.Get("/teams", h.User.MyTeams)
			r.Get("/invites", h.User.MyInvites)
		})
		r.Post("/users/find-or-create", h.User.FindOrCreate)

		r.Route("/teams", func(r chi.Router) {
			r.Post("/", h.Team.CreateTeam)
			r.Route("/{teamID}", func(r chi.Router) {
				r.Get("/", h.Team.GetTeam)
				r.Patch("/", h.Team.UpdateTeam)
				r.Delete("/", h.Team.DeleteTeam)
				r.Put("/logo", h.Team.UploadLogo)

				r.Get("/members", h.Team.ListMembers)
				r.Post("/members", h.Team.AddMember)
				r.Put("/members/profile", h.Team.UpdateMemberProfile)
				r.Delete("/members/{email}", h.Team.RemoveMember)

				r.Get("/invites", h.Invite.ListTeamInvites)
				r.Post("/invites", h.Invite.SendInvite)

				r.Post("/payment", h.Payment.ReserveSlot)
				r.Post("/payment/simulate-approval", h.Payment.SimulateApproval)
			})
		})

		r.Patch("/invites/{inviteID}", h.Invite.RespondInvite)
		r.Post("/payments/{paymentID}/cancel", h.Payment.Cancel)
	})

	// Маршруты администратора
	router.Route("/admin", func(r chi.Router) {
		r.Use(authenticate)
		r.Use(middleware.RequireAdmin)

		r.Get("/dashboard/stats", h.Dashboard.Stats)
		r.Get("/ping", h.Dashboard.Ping)
		r.Get("/db-status", h.Dashboard.DBStatus)
		r.Get("/server-info", h.Dashboard.ServerInfo)

		r.Get("/users", h.Admin.ListUsers)
		r.Delete("/users/{userID}", h.Admin.DeleteUser)
		r.Get("/teams", h.Admin.ListTeams)
		r.Delete("/teams/{teamID}", h.Admin.DeleteTeam)
		r.Delete("/teams/{teamID}/force", h.Admin.ForceDeleteTeam)

		r.Get("/tournaments", h.Tournament.ListTournaments)
		r.Post("/tournaments", h.Tournament.CreateTournament)
		r.Put("/tournaments/{tournamentID}", h.Tournament.UpdateTournament)
		r.Delete("/tournaments/{tournamentID}", h.Tournament.DeleteTournament)
		r.Patch("/tournaments/{tournamentID}/teams/{teamID}/approve", h.Admin.ApproveRegistration)
		r.Patch("/tournaments/{tournamentID}/teams/{teamID}/reject", h.Admin.RejectRegistration)
		r.Get("/registrations/pending", h.Admin.ListPendingRegistrations)

		r.Get("/payments", h.Payment.ListPayments)
		r.Put("/payments/{paymentID}/approve", h.Payment.Approve)
		r.Put("/payments/{paymentID}/reject", h.Payment.Reject)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"the requested resource could not be found"}` + "\n"))
	})
}
