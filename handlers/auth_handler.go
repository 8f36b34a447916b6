package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/Dosada05/esports-hub/middleware"
	"github.com/Dosada05/esports-hub/services"
)

const devTokenTTL = 24 * time.Hour

// AuthHandler issues locally signed tokens for development. It is mounted
// only when DEV_TOKENS is set. Tokens carry no role; admin rights come
// from ADMIN_EMAILS alone.
type AuthHandler struct {
	jwtSecret string
}

func NewAuthHandler(jwtSecret string) *AuthHandler {
	return &AuthHandler{jwtSecret: jwtSecret}
}

type devTokenInput struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// DevToken godoc
// @Summary Выпустить тестовый JWT (только при DEV_TOKENS=true)
// @Tags auth
// @Accept json
// @Produce json
// @Param body body devTokenInput true "Данные пользователя"
// @Success 200 {object} map[string]interface{}
// @Failure 422 {object} map[string]string
// @Router /dev/token [post]
func (h *AuthHandler) DevToken(w http.ResponseWriter, r *http.Request) {
	var input devTokenInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		mapServiceErrorToHTTP(w, r, services.ErrValidationFailed)
		return
	}

	token, err := middleware.IssueToken(h.jwtSecret, middleware.Claims{
		Email: email,
		Name:  strings.TrimSpace(input.Name),
	}, devTokenTTL)
	if err != nil {
		serverErrorResponse(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, jsonResponse{
		"token":      token,
		"expires_in": int(devTokenTTL.Seconds()),
	})
}
