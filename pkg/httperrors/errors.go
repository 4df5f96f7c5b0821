package httperrors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/sir_venger/mini_nas/internal/models"
)

// Body — тело ошибки: машиночитаемый вид и человекочитаемое сообщение.
type Body struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Status сопоставляет ошибку таксономии со статус-кодом HTTP.
func Status(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, models.ErrAlreadyExists), errors.Is(err, models.ErrNotEmpty):
		return http.StatusConflict
	case errors.Is(err, models.ErrInvalidRange), errors.Is(err, models.ErrRangeNotSatisfiable):
		return http.StatusRequestedRangeNotSatisfiable
	case errors.Is(err, models.ErrInvalidName):
		return http.StatusBadRequest
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Write отдаёт ошибку клиенту в JSON. Для 416 добавляет "Content-Range: bytes */size".
func Write(w http.ResponseWriter, err error) {
	status := Status(err)

	var rangeErr *models.RangeError
	if errors.As(err, &rangeErr) {
		w.Header().Set("Content-Range", "bytes */"+strconv.FormatInt(rangeErr.Size, 10))
	}

	kind := models.Kind(err)
	if status == http.StatusRequestEntityTooLarge {
		kind = "too_large"
	}

	WriteStatus(w, status, kind, err.Error())
}

// WriteStatus отдаёт ошибку, не входящую в таксономию (400 на кривой форме, 429 и т.п.).
func WriteStatus(w http.ResponseWriter, status int, kind, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Body{Error: kind, Message: message})
}
