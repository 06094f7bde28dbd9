// Package util содержит общие помощники логирования и отдачи ошибок HTTP.
package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// LogError пишет ошибку в лог и возвращает ее обернутой тем же сообщением.
// Используется на инфраструктурных ошибках (БД, Redis, подпись токенов):
// в лог попадают подробности, наружу уходит обернутая ошибка для errors.Is.
func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

// HandleError отдает JSON-ошибку с указанным статус-кодом.
// Применяется в middleware, где конверт requestresponse еще недоступен.
func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    int    `json:"code"`
	}{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	json.NewEncoder(w).Encode(errorResponse)
}
