package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"sentinel-auth-service/internal/model/requestresponse"
	"sentinel-auth-service/internal/ports"
	"sentinel-auth-service/internal/security"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// Profile godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает публичные поля пользователя, которому принадлежит access-токен
// @Tags Users
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.ProfileResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Токен отсутствует или невалиден"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userUUID, err := security.SubjectFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "не авторизован")
		return
	}

	user, err := h.UserService.GetProfile(r.Context(), userUUID)
	if err != nil {
		log.Println(err)
		sendAuthError(w, err)
		return
	}

	resp := requestresponse.ProfileResponse{Data: user}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}
