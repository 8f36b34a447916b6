package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/notify"
	"github.com/Dosada05/esports-hub/services"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var errInvalidRoom = errors.New("room must be admin, team_<id> or tournament_<id>")

type WebSocketHandler struct {
	hub        *notify.Hub
	teams      services.TeamService
	membership services.MembershipService
	upgrader   websocket.Upgrader
}

// NewWebSocketHandler accepts upgrades only from allowedOrigins; "*" allows any.
func NewWebSocketHandler(hub *notify.Hub, teams services.TeamService, membership services.MembershipService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:        hub,
		teams:      teams,
		membership: membership,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// ServeWs подписывает клиента на комнату уведомлений.
// @Summary Подписка на события (WebSocket)
// @Tags notifications
// @Param room query string true "admin | team_<id> | tournament_<id>"
// @Param token query string false "JWT, если нельзя передать заголовок Authorization"
// @Success 101
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /ws [get]
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	room := strings.TrimSpace(r.URL.Query().Get("room"))
	if err := h.authorizeRoom(r.Context(), user, room); err != nil {
		if errors.Is(err, errInvalidRoom) {
			badRequestResponse(w, r, err)
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("room", room).Msg("websocket upgrade failed")
		return
	}
	zerolog.Ctx(r.Context()).Info().Str("room", room).Msg("websocket connected")

	notify.NewClient(h.hub, conn, room).Serve()
}

func (h *WebSocketHandler) authorizeRoom(ctx context.Context, user *models.User, room string) error {
	switch {
	case room == notify.AdminRoom:
		if !user.IsAdmin() {
			return services.ErrAdminRequired
		}
		return nil
	case strings.HasPrefix(room, "tournament_"):
		if _, err := roomID(room, "tournament_"); err != nil {
			return err
		}
		return nil
	case strings.HasPrefix(room, "team_"):
		teamID, err := roomID(room, "team_")
		if err != nil {
			return err
		}
		if user.IsAdmin() {
			return nil
		}
		team, err := h.teams.GetTeam(ctx, teamID)
		if err != nil {
			return err
		}
		if team.OwnerID == user.ID {
			return nil
		}
		members, err := h.membership.ListMembers(ctx, teamID)
		if err != nil {
			return err
		}
		for _, m := range members {
			if m.UserID == user.ID {
				return nil
			}
		}
		return services.ErrForbiddenOperation
	default:
		return errInvalidRoom
	}
}

func roomID(room, prefix string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(room, prefix))
	if err != nil || id <= 0 {
		return 0, errInvalidRoom
	}
	return id, nil
}
