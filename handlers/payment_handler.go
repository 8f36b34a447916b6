package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Dosada05/esports-hub/models"
	"github.com/Dosada05/esports-hub/services"
)

type PaymentHandler struct {
	payments services.PaymentService
}

func NewPaymentHandler(payments services.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// ReserveSlot godoc
// @Summary Получить PIX-платеж за место в турнире
// @Tags payments
// @Description Возвращает открытый платеж команды или создает новый. Без tournament_id берется последняя активная заявка.
// @Accept json
// @Produce json
// @Param teamID path int true "Team ID"
// @Success 200 {object} models.Payment
// @Failure 409 {object} map[string]string "Нет активной заявки / уже оплачено"
// @Security BearerAuth
// @Router /teams/{teamID}/payment [post]
func (h *PaymentHandler) ReserveSlot(w http.ResponseWriter, r *http.Request) {
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
		TournamentID *int `json:"tournament_id"`
	}
	if err := readJSON(w, r, &input); err != nil && !errors.Is(err, errEmptyBody) {
		badRequestResponse(w, r, err)
		return
	}

	payment, err := h.payments.ReserveSlot(r.Context(), user, teamID, input.TournamentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"payment": payment})
}

// SimulateApproval godoc
// @Summary Симулировать оплату (только вне production)
// @Tags payments
// @Produce json
// @Param teamID path int true "Team ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Симуляция отключена"
// @Security BearerAuth
// @Router /teams/{teamID}/payment/simulate-approval [post]
func (h *PaymentHandler) SimulateApproval(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payment, err := h.payments.SimulateApproval(r.Context(), user, teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"payment": payment})
}

func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.payments.Cancel)
}

// Approve godoc
// @Summary Подтвердить оплату
// @Tags admin
// @Produce json
// @Param paymentID path int true "Payment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]string "Платеж уже в финальном статусе"
// @Security BearerAuth
// @Router /admin/payments/{paymentID}/approve [put]
func (h *PaymentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.payments.Confirm)
}

func (h *PaymentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, h.payments.Reject)
}

// ListPayments godoc
// @Summary Список платежей
// @Tags admin
// @Produce json
// @Param status query string false "PENDING | PAID | REJECTED | EXPIRED | CANCELLED"
// @Param limit query int false "Лимит"
// @Param offset query int false "Смещение"
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /admin/payments [get]
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := models.PaymentFilter{
		Limit:  toInt(q.Get("limit"), 50),
		Offset: toInt(q.Get("offset"), 0),
	}
	if s := strings.ToUpper(strings.TrimSpace(q.Get("status"))); s != "" {
		status := models.PaymentStatus(s)
		filter.Status = &status
	}

	payments, total, err := h.payments.List(r.Context(), user, filter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"payments": payments, "total": total})
}

type paymentAction func(ctx context.Context, actor *models.User, paymentID int) (*models.Payment, error)

func (h *PaymentHandler) changeStatus(w http.ResponseWriter, r *http.Request, action paymentAction) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	paymentID, err := getIDFromURL(r, "paymentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	payment, err := action(r.Context(), user, paymentID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{"payment": payment})
}
