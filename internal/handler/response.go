package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"sentinel-auth-service/internal/autherr"
	"sentinel-auth-service/internal/model/requestresponse"
)

// decodeJSON обрабатывает декодирование JSON и возвращает ответ об ошибке, если декодирование не удалось.
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(400)
		json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
			Error: requestresponse.ErrorDetail{
				Code: 400,
				Text: "invalid request body",
			},
		})
		return err
	}
	return nil
}

// sendErrorResponse отправляет ответ об ошибке JSON с указанным кодом статуса и сообщением
func sendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	})
}

// sendAuthError переводит типизированную ошибку бизнес-правила в статус-код.
// Ошибки токенов и учетных данных намеренно не детализируются дальше своего кода.
// Все прочие ошибки — инфраструктурные: наружу уходит общий ответ без подробностей.
func sendAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, autherr.ErrInvalidInput):
		sendErrorResponse(w, http.StatusBadRequest, "некорректные данные запроса")
	case errors.Is(err, autherr.ErrMissingToken):
		sendErrorResponse(w, http.StatusBadRequest, "refresh токен отсутствует")
	case errors.Is(err, autherr.ErrDuplicateEmail):
		sendErrorResponse(w, http.StatusConflict, "email уже зарегистрирован")
	case errors.Is(err, autherr.ErrInvalidCredentials):
		sendErrorResponse(w, http.StatusUnauthorized, "неверные учетные данные")
	case errors.Is(err, autherr.ErrInvalidToken),
		errors.Is(err, autherr.ErrRevokedToken),
		errors.Is(err, autherr.ErrExpiredToken):
		sendErrorResponse(w, http.StatusUnauthorized, "невалидный токен")
	case errors.Is(err, autherr.ErrUserNotFound):
		sendErrorResponse(w, http.StatusNotFound, "пользователь не найден")
	default:
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}
