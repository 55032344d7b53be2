package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"funews/internal/respond"
)

// pingTimeout bounds the database check behind /health.
const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health reports whether the API can reach its database.
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			slog.Error("health check failed", "error", err)
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
			return
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok", "database": "up"})
	}
}
