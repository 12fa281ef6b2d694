package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Машиночитаемые виды ошибок в теле ответа
const (
	KindInvalidSlot       = "invalid_slot"
	KindExpertInactive    = "expert_inactive"
	KindSlotFull          = "slot_full"
	KindDuplicateBooking  = "duplicate_booking"
	KindConflict          = "conflict"
	KindNotFound          = "not_found"
	KindInvalidTransition = "invalid_transition"
	KindValidation        = "validation_error"
	KindUnauthorized      = "unauthorized"
	KindAccessDenied      = "access_denied"
	KindInternal          = "internal_error"
)

// ErrorInfo описание ошибки для клиента
type ErrorInfo struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
}

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error ErrorInfo `json:"error"`
}

// DecodeJSON декодирует JSON тело запроса в целевую структуру
func DecodeJSON(r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}

	return nil
}

// RespondJSON отправляет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload != nil {
		// Ошибку записи уже некому возвращать
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ответ с ошибкой указанного вида
func RespondError(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorInfo{Kind: kind, Message: message}})
}

// RespondRetryableError отправляет ответ с транзиентной ошибкой,
// которую клиент может безопасно повторить
func RespondRetryableError(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorInfo{Kind: kind, Message: message, Retryable: true}})
}

// RespondBadRequest отправляет 400 с ошибкой валидации
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, KindValidation, message)
}

// RespondUnprocessable отправляет 422 с указанным видом ошибки
func RespondUnprocessable(w http.ResponseWriter, kind, message string) {
	RespondError(w, http.StatusUnprocessableEntity, kind, message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, KindNotFound, message)
}

// RespondUnauthorized отправляет 401
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, KindUnauthorized, message)
}

// RespondForbidden отправляет 403
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, KindAccessDenied, message)
}

// RespondInternalError отправляет 500 без деталей внутренней ошибки
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, KindInternal, "внутренняя ошибка сервиса")
}
