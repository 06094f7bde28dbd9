package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"sentinel-auth-service/internal/model/requestresponse"
	"sentinel-auth-service/internal/ports"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
}

func NewAuthenticationHandler(authenticationService ports.AuthenticationService) *AuthenticationHandler {
	return &AuthenticationHandler{authenticationService}
}

// Register godoc
// @Summary Регистрация нового пользователя
// @Description Создает пользователя с именем, email и паролем. Email должен быть уникален.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} requestresponse.RegisterResponse "Пользователь создан"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 409 {object} requestresponse.ErrorResponse "Email уже зарегистрирован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	user, err := h.AuthenticationService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		log.Println(err)
		sendAuthError(w, err)
		return
	}

	resp := requestresponse.RegisterResponse{
		Response: requestresponse.RegisterData{
			UUID:      user.UUID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt.Format(time.RFC3339),
		},
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Выдает access-токен и refresh-токен по email и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LoginResponse "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверные учетные данные"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	tokens, err := h.AuthenticationService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Println(err)
		sendAuthError(w, err)
		return
	}

	resp := requestresponse.LoginResponse{}
	resp.Response.AccessToken = tokens.AccessToken
	resp.Response.RefreshToken = tokens.RefreshToken

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Refresh godoc
// @Summary Ротация refresh-токена
// @Description Отзывает предъявленный refresh-токен и выдает новую пару токенов
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshTokenRequest true "Тело запроса"
// @Success 200 {object} requestresponse.RefreshTokenResponse "Новая пара токенов"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или отсутствующий токен"
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный, отозванный или просроченный токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/refresh [post]
func (h *AuthenticationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.RefreshTokenRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	tokens, err := h.AuthenticationService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		log.Println(err)
		sendAuthError(w, err)
		return
	}

	resp := requestresponse.RefreshTokenResponse{}
	resp.Response.AccessToken = tokens.AccessToken
	resp.Response.RefreshToken = tokens.RefreshToken

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// Logout godoc
// @Summary Завершение сессии
// @Description Отзывает предъявленный refresh-токен. Ответ одинаков для активного, отозванного и неизвестного токена.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LogoutRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LogoutResponse "Токен отозван"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или отсутствующий токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req requestresponse.LogoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.AuthenticationService.Logout(r.Context(), req.RefreshToken); err != nil {
		log.Println(err)
		sendAuthError(w, err)
		return
	}

	resp := requestresponse.LogoutResponse{}
	resp.Response.Revoked = true

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}
