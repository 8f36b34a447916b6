package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/services"
)

type AdminHandler struct {
	identity      services.IdentityService
	teams         services.TeamService
	registrations services.RegistrationService
}

func NewAdminHandler(identity services.IdentityService, teams services.TeamService, registrations services.RegistrationService) *AdminHandler {
	return &AdminHandler{
		identity:      identity,
		teams:         teams,
		registrations: registrations,
	}
}

// ListUsers godoc
// @Summary Получить список пользователей
// @Tags admin
// @Produce json
// @Param search query string false "Поиск по email, имени или нику"
// @Param role query string false "PLAYER | ADMIN"
// @Param limit query int false "Лимит (по умолчанию 50)"
// @Param offset query int false "Смещение"
// @Success 200 {object} models.UserListResponse
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := models.UserFilter{
		Search: strings.TrimSpace(q.Get("search")),
		Limit:  toInt(q.Get("limit"), 50),
		Offset: toInt(q.Get("offset"), 0),
	}
	if s := strings.ToUpper(strings.TrimSpace(q.Get("role"))); s != "" {
		role := models.UserRole(s)
		filter.Role = &role
	}

	list, err := h.identity.ListUsers(r.Context(), user, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, list)
}

// DeleteUser godoc
// @Summary Удалить пользователя
// @Tags admin
// @Param userID path int true "User ID"
// @Success 204
// @Failure 400 {object} map[string]string "Нельзя удалить себя"
// @Failure 409 {object} map[string]string "Пользователь владеет командой с заявками"
// @Security BearerAuth
// @Router /admin/users/{userID} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	userID, err := getIDFromURL(r, "userID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.identity.DeleteUser(r.Context(), user, userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListTeams godoc
// @Summary Все команды
// @Tags admin
// @Produce json
// @Param limit query int false "Лимит"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/teams [get]
func (h *AdminHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	teams, total, err := h.teams.ListTeams(r.Context(), user, toInt(q.Get("limit"), 50), toInt(q.Get("offset"), 0))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"teams": teams, "total": total})
}

// DeleteTeam godoc
// @Summary Удалить команду
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "teamID"
// @Success 204
// @Failure 409 {object} map[string]string "команда зарегистрирована в турнире"
// @Router /admin/teams/{teamID} [delete]
func (h *AdminHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	h.removeTeam(w, r, h.teams.DeleteTeam)
}

// ForceDeleteTeam godoc
// @Summary Удалить команду вместе с заявками и платежами
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param teamID path int true "teamID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/teams/{teamID}/force [delete]
func (h *AdminHandler) ForceDeleteTeam(w http.ResponseWriter, r *http.Request) {
	h.removeTeam(w, r, h.teams.ForceDeleteTeam)
}

func (h *AdminHandler) removeTeam(w http.ResponseWriter, r *http.Request, remove func(ctx context.Context, actor *models.User, teamID int) error) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := remove(r.Context(), user, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPendingRegistrations godoc
// @Summary Заявки, ожидающие решения
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/registrations/pending [get]
func (h *AdminHandler) ListPendingRegistrations(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	regs, err := h.registrations.ListPending(r.Context(), user)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"registrations": regs})
}

// ApproveRegistration godoc
// @Summary Одобрить заявку команды
// @Tags admin
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param teamID path int true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Требуются права администратора"
// @Failure 409 {object} map[string]string "Заявка уже отклонена"
// @Security BearerAuth
// @Router /admin/tournaments/{tournamentID}/teams/{teamID}/approve [patch]
func (h *AdminHandler) ApproveRegistration(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.registrations.Approve)
}

// RejectRegistration godoc
// @Summary Отклонить заявку команды
// @Tags admin
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param teamID path int true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/tournaments/{tournamentID}/teams/{teamID}/reject [patch]
func (h *AdminHandler) RejectRegistration(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.registrations.Reject)
}

type registrationDecision func(ctx context.Context, actor *models.User, tournamentID, teamID int) (*models.Registration, error)

func (h *AdminHandler) decide(w http.ResponseWriter, r *http.Request, decision registrationDecision) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	reg, err := decision(r.Context(), user, tournamentID, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"registration": reg})
}
