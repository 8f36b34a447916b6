package handlers

import (
	"net/http"
	"time"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/services"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	identity services.IdentityService
	teams    services.TeamService
	invites  services.InviteService
}

func NewUserHandler(identity services.IdentityService, teams services.TeamService, invites services.InviteService) *UserHandler {
	return &UserHandler{
		identity: identity,
		teams:    teams,
		invites:  invites,
	}
}

// Me godoc
// @Summary Текущий пользователь
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /me [get]
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"user": user})
}

// UpdateMe godoc
// @Summary Обновить профиль текущего пользователя
// @Tags users
// @Accept json
// @Produce json
// @Param body body services.UpdateProfileInput true "Поля профиля"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Никнейм занят"
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /me [patch]
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.UpdateProfileInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	updated, err := h.identity.UpdateProfile(r.Context(), user, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"user": updated})
}

// FindOrCreate godoc
// @Summary Найти пользователя по email или создать его
// @Tags users
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /users/find-or-create [post]
func (h *UserHandler) FindOrCreate(w http.ResponseWriter, r *http.Request) {
	if _, ok := currentUser(w, r); !ok {
		return
	}

	var input struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.identity.FindOrCreate(r.Context(), input.Email, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"user": user})
}

func (h *UserHandler) MyTeams(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teams, err := h.teams.ListUserTeams(r.Context(), user.ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"teams": teams})
}

func (h *UserHandler) MyInvites(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	invites, err := h.invites.ListForUser(r.Context(), user)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"invites": invites})
}

// SearchPlayers godoc
// @Summary Поиск игроков по префиксу никнейма
// @Tags players
// @Produce json
// @Param q query string true "Префикс никнейма"
// @Param limit query int false "Максимум результатов (по умолчанию 10)"
// @Success 200 {object} map[string]interface{}
// @Router /players/search [get]
func (h *UserHandler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	players, err := h.identity.SearchPlayers(r.Context(), q.Get("q"), toInt(q.Get("limit"), 0))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"players": publicProfiles(players)})
}

// GetPlayer godoc
// @Summary Публичная страница игрока
// @Tags players
// @Produce json
// @Param nickname path string true "Никнейм"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /players/{nickname} [get]
func (h *UserHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	user, err := h.identity.GetByNickname(r.Context(), chi.URLParam(r, "nickname"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	teams, err := h.teams.ListUserTeams(r.Context(), user.ID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{
		"player": publicProfiles([]models.User{*user})[0],
		"teams":  teams,
	})
}

// playerProfile is the public view of a user: contact details stay private.
type playerProfile struct {
	ID             int       `json:"id"`
	Nickname       string    `json:"nickname"`
	Name           string    `json:"name"`
	ImageURL       *string   `json:"image_url,omitempty"`
	SteamID        *string   `json:"steam_id,omitempty"`
	CurrentEloGC   *string   `json:"current_elo_gc,omitempty"`
	PeakRankFaceit *string   `json:"peak_rank_faceit,omitempty"`
	Instagram      *string   `json:"instagram,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func publicProfiles(users []models.User) []playerProfile {
	out := make([]playerProfile, len(users))
	for i, u := range users {
		out[i] = playerProfile{
			ID:             u.ID,
			Nickname:       u.Nickname,
			Name:           u.Name,
			ImageURL:       u.ImageURL,
			SteamID:        u.SteamID,
			CurrentEloGC:   u.CurrentEloGC,
			PeakRankFaceit: u.PeakRankFaceit,
			Instagram:      u.Instagram,
			CreatedAt:      u.CreatedAt,
		}
	}
	return out
}
