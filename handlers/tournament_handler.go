package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/services"
)

type TournamentHandler struct {
	tournaments   services.TournamentService
	registrations services.RegistrationService
}

func NewTournamentHandler(tournaments services.TournamentService, registrations services.RegistrationService) *TournamentHandler {
	return &TournamentHandler{
		tournaments:   tournaments,
		registrations: registrations,
	}
}

// ListTournaments godoc
// @Summary Список турниров
// @Tags tournaments
// @Produce json
// @Param status query string false "Статусы через запятую (ACTIVE,UPCOMING,...)"
// @Param game query string false "Игра"
// @Param limit query int false "Лимит (по умолчанию 20)"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string "Неизвестный статус"
// @Router /tournaments [get]
func (h *TournamentHandler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ListTournamentsFilter{
		Limit:  toInt(q.Get("limit"), 20),
		Offset: toInt(q.Get("offset"), 0),
	}
	for _, s := range strings.Split(q.Get("status"), ",") {
		if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
			filter.Statuses = append(filter.Statuses, models.TournamentStatus(s))
		}
	}
	if game := strings.TrimSpace(q.Get("game")); game != "" {
		filter.Game = &game
	}

	tournaments, total, err := h.tournaments.List(r.Context(), filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"tournaments": tournaments, "total": total})
}

// ListOpenTournaments godoc
// @Summary Турниры с открытой регистрацией
// @Tags tournaments
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /tournaments/open [get]
func (h *TournamentHandler) ListOpenTournaments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	tournaments, total, err := h.tournaments.ListOpen(r.Context(), toInt(q.Get("limit"), 20), toInt(q.Get("offset"), 0))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"tournaments": tournaments, "total": total})
}

// GetTournament godoc
// @Summary Турнир
// @Tags tournaments
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /tournaments/{tournamentID} [get]
func (h *TournamentHandler) GetTournament(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournaments.Get(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

// ListTournamentTeams godoc
// @Summary Заявки команд на турнир
// @Tags registrations
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 200 {object} models.TournamentTeams
// @Router /tournaments/{tournamentID}/teams [get]
func (h *TournamentHandler) ListTournamentTeams(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.registrations.ListTournamentTeams(r.Context(), tournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, teams)
}

// Register godoc
// @Summary Подать заявку команды на турнир
// @Tags registrations
// @Description Заявка создается в статусе PENDING и занимает место до решения администратора.
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Не владелец / регистрация закрыта"
// @Failure 409 {object} map[string]string "Уже зарегистрирована / мест нет"
// @Failure 422 {object} map[string]string "Игра команды не совпадает"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/register [post]
func (h *TournamentHandler) Register(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input struct {
		TeamID int `json:"team_id"`
	}
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.TeamID <= 0 {
		badRequestResponse(w, r, errors.New("invalid team_id in request body"))
		return
	}

	reg, err := h.registrations.Register(r.Context(), user, tournamentID, input.TeamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"registration": reg})
}

// Withdraw godoc
// @Summary Отозвать заявку команды
// @Tags registrations
// @Param tournamentID path int true "Tournament ID"
// @Param teamID path int true "Team ID"
// @Success 204
// @Failure 409 {object} map[string]string "Есть неоплаченный активный платеж"
// @Security BearerAuth
// @Router /tournaments/{tournamentID}/register/{teamID} [delete]
func (h *TournamentHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
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

	if err := h.registrations.Withdraw(r.Context(), user, tournamentID, teamID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateTournament godoc
// @Summary Создать турнир
// @Tags admin
// @Accept json
// @Produce json
// @Param body body services.TournamentInput true "Турнир"
// @Success 201 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /admin/tournaments [post]
func (h *TournamentHandler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var input services.TournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournaments.Create(r.Context(), user, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, jsonResponse{"tournament": tournament})
}

// UpdateTournament godoc
// @Summary Изменить турнир
// @Tags admin
// @Accept json
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param body body services.TournamentInput true "Турнир"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Недопустимый переход статуса / лимит ниже числа заявок"
// @Security BearerAuth
// @Router /admin/tournaments/{tournamentID} [put]
func (h *TournamentHandler) UpdateTournament(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.TournamentInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.tournaments.Update(r.Context(), user, tournamentID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"tournament": tournament})
}

func (h *TournamentHandler) DeleteTournament(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.tournaments.Delete(r.Context(), user, tournamentID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
