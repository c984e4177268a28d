package resp

import (
	"encoding/json"
	"net/http"

	"roulette_casino/pkg/logger"
)

// WriteJSONResponse пишет статус и тело в формате JSON
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("write json response: %v", err)
	}
}

// WriteError пишет ошибку в виде {"error": "..."}
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSONResponse(w, status, map[string]string{"error": msg})
}
