package controller

import (
	"encoding/json"
	"net/http"

	"github.com/eduadmin/academia/internal/service"
	"go.uber.org/zap"
)

// envelope — единый формат ответа API
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondData(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

func respondError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Success: false, Error: msg})
}

// respondServiceError переводит таксономию ошибок сервисов в HTTP-статусы:
// валидация и бизнес-конфликты — 400, отсутствие сущности — 404, остальное — 500
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case service.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case service.IsConflict(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case service.IsNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.Error("Unhandled service error",
			zap.String("path", r.URL.Path),
			zap.String("request_id", requestIDFromContext(r.Context())),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(out)
}
