package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/services"
	"github.com/go-chi/chi/v5"
)

const maxLogoBytes = 5 << 20

type TeamHandler struct {
	teams      services.TeamService
	membership services.MembershipService
}

func NewTeamHandler(teams services.TeamService, membership services.MembershipService) *TeamHandler {
	return &TeamHandler{
		teams:      teams,
		membership: membership,
	}
}

// CreateTeam godoc
// @Summary Создать команду
// @Tags teams
// @Description Текущий пользователь становится владельцем команды.
// @Accept json
// @Produce json
// @Param body body services.CreateTeamInput true "Название и игра"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Название занято"
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teams.CreateTeam(r.Context(), user, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"team": team})
}

// GetTeam godoc
// @Summary Команда с составом, заявками и платежами
// @Tags teams
// @Produce json
// @Param teamID path int true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /teams/{teamID} [get]
func (h *TeamHandler) GetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teams.GetTeam(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// UpdateTeam godoc
// @Summary Изменить название или игру команды
// @Tags teams
// @Accept json
// @Produce json
// @Param teamID path int true "Team ID"
// @Param body body services.UpdateTeamInput true "Изменяемые поля"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Только владелец"
// @Failure 409 {object} map[string]string "Игру нельзя менять после заявки"
// @Security BearerAuth
// @Router /teams/{teamID} [patch]
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.UpdateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.Name == nil && input.Game == nil {
		badRequestResponse(w, r, errors.New("no fields provided for update"))
		return
	}

	team, err := h.teams.UpdateTeam(r.Context(), user, teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// DeleteTeam godoc
// @Summary Удалить команду
// @Tags teams
// @Param teamID path int true "Team ID"
// @Success 204
// @Failure 409 {object} map[string]string "Есть активные заявки"
// @Security BearerAuth
// @Router /teams/{teamID} [delete]
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.teams.DeleteTeam(r.Context(), user, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadLogo godoc
// @Summary Загрузить логотип команды
// @Tags teams
// @Accept multipart/form-data
// @Produce json
// @Param teamID path int true "Team ID"
// @Param logo formData file true "PNG, JPEG, WEBP или GIF до 5 МБ"
// @Success 200 {object} map[string]interface{}
// @Failure 415 {object} map[string]string
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Security BearerAuth
// @Router /teams/{teamID}/logo [put]
func (h *TeamHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoBytes+1024)
	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	if header.Size > maxLogoBytes {
		errorResponse(w, r, http.StatusRequestEntityTooLarge, "logo must not be larger than 5MB")
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content type required"))
		return
	}

	team, err := h.teams.UploadLogo(r.Context(), user, teamID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"team": team})
}

// ListMembers godoc
// @Summary Состав команды (владелец первым)
// @Tags members
// @Produce json
// @Param teamID path int true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /teams/{teamID}/members [get]
func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	members, err := h.membership.ListMembers(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"members": members, "max_members": models.MaxTeamHeadcount})
}

// AddMember godoc
// @Summary Добавить участника по email
// @Tags members
// @Description Пользователь создается, если email еще не встречался. В команде не более 5 человек, включая владельца.
// @Accept json
// @Produce json
// @Param teamID path int true "Team ID"
// @Param body body services.AddMemberInput true "Имя и email"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Команда заполнена или уже участник"
// @Security BearerAuth
// @Router /teams/{teamID}/members [post]
func (h *TeamHandler) AddMember(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.AddMemberInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	member, err := h.membership.AddMember(r.Context(), user, teamID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"member": member})
}

type memberProfileInput struct {
	Email string `json:"email"`
	models.GameProfile
}

// UpdateMemberProfile godoc
// @Summary Обновить игровой профиль участника
// @Tags members
// @Accept json
// @Produce json
// @Param teamID path int true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string "Не участник команды"
// @Security BearerAuth
// @Router /teams/{teamID}/members/profile [put]
func (h *TeamHandler) UpdateMemberProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input memberProfileInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	updated, err := h.membership.UpdateMemberProfile(r.Context(), user, teamID, input.Email, input.GameProfile)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"user": updated})
}

// RemoveMember godoc
// @Summary Исключить участника
// @Tags members
// @Param teamID path int true "Team ID"
// @Param email path string true "Email участника"
// @Success 204
// @Failure 400 {object} map[string]string "Владельца нельзя исключить"
// @Security BearerAuth
// @Router /teams/{teamID}/members/{email} [delete]
func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	email, err := url.PathUnescape(chi.URLParam(r, "email"))
	if err != nil || email == "" {
		badRequestResponse(w, r, errors.New("invalid member email in URL path"))
		return
	}

	if err := h.membership.RemoveMember(r.Context(), user, teamID, email); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
