package requestresponse

import "sentinel-auth-service/internal/model"

// ProfileResponse : успешный ответ с данными пользователя
type ProfileResponse struct {
	Data *model.User `json:"data"`
}

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"for example: invalid email or password"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
