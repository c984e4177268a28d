package httperr

import (
	"errors"
	"net/http"

	"roulette_casino/internal/model"
	"roulette_casino/pkg/resp"
)

// Status подбирает HTTP код для ошибки сервиса
func Status(err error) int {
	switch {
	case errors.Is(err, model.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, model.ErrInvalidBet), errors.Is(err, model.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrRevealInProgress):
		return http.StatusConflict
	case errors.Is(err, model.ErrNoSession):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrPlayerNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Write пишет ошибку сервиса. Подробности 5xx наружу не отдаём.
func Write(w http.ResponseWriter, err error) {
	status := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	resp.WriteError(w, status, msg)
}
