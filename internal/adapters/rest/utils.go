package rest

import (
	"encoding/json"
	"net/http"
)

// ErrorResponseDTO - тело любого ответа с ошибкой
type ErrorResponseDTO struct {
	Error string `json:"error"`
}

// WriteJSONError отвечает {"error": message} с заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorResponseDTO{Error: message})
}

// RespondWithJSON отправляет payload как JSON. Ошибка сериализации - 500
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
