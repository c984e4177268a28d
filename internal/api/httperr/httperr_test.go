package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"roulette_casino/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", model.ErrInsufficientFunds), http.StatusPaymentRequired},
		{model.ErrInvalidBet, http.StatusBadRequest},
		{model.ErrInvalidName, http.StatusBadRequest},
		{model.ErrRevealInProgress, http.StatusConflict},
		{model.ErrNoSession, http.StatusUnauthorized},
		{model.ErrPlayerNotFound, http.StatusNotFound},
		{model.ErrPersistence, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Status(tt.err), tt.err.Error())
	}
}

func TestWriteHidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, fmt.Errorf("%w: connection reset", model.ErrPersistence))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", body["error"])
}
