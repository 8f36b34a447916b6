package handlers

import (
	"net/http"

	"github.com/Dosada05/esports-hub/services"
)

type InviteHandler struct {
	invites services.InviteService
}

func NewInviteHandler(invites services.InviteService) *InviteHandler {
	return &InviteHandler{invites: invites}
}

// SendInvite godoc
// @Summary Пригласить игрока в команду
// @Tags invites
// @Accept json
// @Produce json
// @Param teamID path int true "Team ID"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Приглашение уже отправлено"
// @Security BearerAuth
// @Router /teams/{teamID}/invites [post]
func (h *InviteHandler) SendInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Email string `json:"email"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	invite, err := h.invites.Send(r.Context(), user, teamID, input.Email)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"invite": invite})
}

func (h *InviteHandler) ListTeamInvites(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	invites, err := h.invites.ListForTeam(r.Context(), user, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"invites": invites})
}

// RespondInvite godoc
// @Summary Принять или отклонить приглашение
// @Tags invites
// @Accept json
// @Produce json
// @Param inviteID path int true "Invite ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Приглашение адресовано другому пользователю"
// @Failure 409 {object} map[string]string "Уже отвечено или команда заполнена"
// @Security BearerAuth
// @Router /invites/{inviteID} [patch]
func (h *InviteHandler) RespondInvite(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	inviteID, err := getIDFromURL(r, "inviteID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		Accept bool `json:"accept"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	invite, err := h.invites.Respond(r.Context(), user, inviteID, input.Accept)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"invite": invite})
}
