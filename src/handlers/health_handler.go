package handlers

import (
	"net/http"
	"time"

	"github.com/kotakitamaru/FinanceManager-v2/src/util"
)

var startTime = time.Now()

func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"uptime":    time.Since(startTime).Seconds(),
		})
	}
}
