package resthttp

import (
	"encoding/json"
	"net/http"

	"github.com/sir_venger/mini_nas/internal/logger"
)

// writeJSON отдаёт payload со статусом 200.
func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Warn("encode response: %v", err)
	}
}
